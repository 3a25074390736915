// Command-line decoder for AIS traffic.
//
// Reads AIVDM/AIVDO sentences (one per line, the usual output of an AIS
// receiver or a dump file) and emits the decoded messages as JSON. Lines
// that fail the checksum or carry an undecodable payload are counted and
// skipped, so a partially corrupted dump still yields its good messages.
//
// Usage:
//
//	ais_decode decode -input sentences.txt [-output out.json] [-pretty] [-stats] [-archive ais.db]
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ais_relay/internal/ais"
	"ais_relay/internal/sentence"
	"ais_relay/internal/storage"
)

// DecodeOut pairs a decoded message with its framing sentence.
type DecodeOut struct {
	Sentence string      `json:"sentence"`
	Channel  string      `json:"channel,omitempty"`
	Message  ais.Message `json:"message"`
}

// Stats counts decode outcomes across the whole input.
type Stats struct {
	Lines      int
	Decoded    int
	BadLine    int
	BadPayload int
	ByType     [28]int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ais_decode - commands:")
	fmt.Fprintln(w, "  decode  - read AIVDM/AIVDO lines and output decoded JSON")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ais_decode decode -input sentences.txt [-output out.json] [-pretty] [-stats] [-archive ais.db]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input is one sentence per line; blank lines are ignored.")
	fmt.Fprintln(w, "  - Multi-fragment sequences are skipped (counted under bad lines).")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "decode":
		runDecode(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	inPath := fs.String("input", "", "Input sentence file (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	showStats := fs.Bool("stats", false, "Print decode counters to stderr")
	archivePath := fs.String("archive", "", "Also store decoded messages in a SQLite archive")
	_ = fs.Parse(args)

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	var archive *storage.ArchiveDB
	if *archivePath != "" {
		var err error
		archive, err = storage.OpenArchive(*archivePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open archive: %v\n", err)
			os.Exit(1)
		}
		defer archive.Close()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), 64*1024)

	out := make([]DecodeOut, 0, 1024)
	st := &Stats{}
	now := time.Now()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		st.Lines++

		snt, err := sentence.Parse(line)
		if err != nil {
			st.BadLine++
			continue
		}
		buf, err := snt.BitBuffer()
		if err != nil {
			st.BadPayload++
			continue
		}
		msg, err := ais.Decode(buf)
		if err != nil {
			st.BadPayload++
			continue
		}

		st.Decoded++
		st.ByType[msg.Type()]++
		out = append(out, DecodeOut{Sentence: line, Channel: snt.Channel, Message: msg})

		if archive != nil {
			if _, err := archive.Insert(line, snt.Channel, msg, now); err != nil {
				fmt.Fprintf(os.Stderr, "Archive write failed: %v\n", err)
				os.Exit(1)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Input read error: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Output write error: %v\n", err)
		os.Exit(1)
	}

	if *showStats {
		fmt.Fprintf(os.Stderr, "lines=%d decoded=%d bad_lines=%d bad_payloads=%d\n",
			st.Lines, st.Decoded, st.BadLine, st.BadPayload)
		for t, n := range st.ByType {
			if n > 0 {
				fmt.Fprintf(os.Stderr, "  type %2d: %d\n", t, n)
			}
		}
	}
}
