// Package sentence frames AIS payloads as NMEA 0183 AIVDM/AIVDO
// sentences: prefix and checksum validation, armor payload extraction and
// single-sentence construction. Multi-fragment sentences are recognised
// but not reassembled; callers that need reassembly buffer fragments
// themselves.
package sentence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ais_relay/internal/sixbit"
)

var (
	// ErrSyntax reports a line that is not an AIVDM/AIVDO sentence.
	ErrSyntax = errors.New("sentence: malformed line")
	// ErrChecksum reports a checksum mismatch.
	ErrChecksum = errors.New("sentence: checksum mismatch")
	// ErrMultiFragment reports a sentence that is part of a fragment
	// sequence and cannot be decoded on its own.
	ErrMultiFragment = errors.New("sentence: multi-fragment sequence")
)

// Sentence is one parsed AIVDM/AIVDO line.
type Sentence struct {
	Talker        string `json:"talker"` // two characters, usually AI
	Own           bool   `json:"own"`    // true for VDO (own ship)
	FragmentCount int    `json:"fragment_count"`
	FragmentIndex int    `json:"fragment_index"`
	MessageID     string `json:"message_id,omitempty"` // sequential id, often empty
	Channel       string `json:"channel"`              // A, B or empty
	Payload       string `json:"payload"`              // armored six-bit text
	FillBits      int    `json:"fill_bits"`            // 0-5
}

// Bits returns the payload length in bits as declared by the sentence.
func (s *Sentence) Bits() int {
	return 6*len(s.Payload) - s.FillBits
}

// BitBuffer unpacks the armored payload into a bit buffer ready for
// message decoding.
func (s *Sentence) BitBuffer() (*sixbit.Buffer, error) {
	return sixbit.BufferFromArmor(s.Payload, s.FillBits)
}

// Parse reads one AIVDM/AIVDO line. The checksum is verified before any
// field is interpreted; fragment sequences are rejected with
// ErrMultiFragment after the checksum passes.
func Parse(line string) (*Sentence, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 2 || line[0] != '!' {
		return nil, fmt.Errorf("%w: missing '!' start", ErrSyntax)
	}
	star := strings.LastIndexByte(line, '*')
	if star < 0 || len(line)-star != 3 {
		return nil, fmt.Errorf("%w: missing *hh checksum", ErrSyntax)
	}
	want, err := strconv.ParseUint(line[star+1:], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: bad checksum digits %q", ErrSyntax, line[star+1:])
	}
	if got := xor(line[1:star]); got != byte(want) {
		return nil, fmt.Errorf("%w: computed %02X, sentence says %02X", ErrChecksum, got, want)
	}

	fields := strings.Split(line[1:star], ",")
	if len(fields) != 7 {
		return nil, fmt.Errorf("%w: %d fields, want 7", ErrSyntax, len(fields))
	}
	tag := fields[0]
	if len(tag) != 5 {
		return nil, fmt.Errorf("%w: bad tag %q", ErrSyntax, tag)
	}
	s := &Sentence{Talker: tag[:2], MessageID: fields[3], Channel: fields[4], Payload: fields[5]}
	switch tag[2:] {
	case "VDM":
	case "VDO":
		s.Own = true
	default:
		return nil, fmt.Errorf("%w: tag %q is not VDM or VDO", ErrSyntax, tag)
	}

	if s.FragmentCount, err = strconv.Atoi(fields[1]); err != nil {
		return nil, fmt.Errorf("%w: fragment count %q", ErrSyntax, fields[1])
	}
	if s.FragmentIndex, err = strconv.Atoi(fields[2]); err != nil {
		return nil, fmt.Errorf("%w: fragment index %q", ErrSyntax, fields[2])
	}
	if s.FillBits, err = strconv.Atoi(fields[6]); err != nil || s.FillBits < 0 || s.FillBits > 5 {
		return nil, fmt.Errorf("%w: fill bits %q", ErrSyntax, fields[6])
	}
	if s.Payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrSyntax)
	}
	if s.FragmentCount != 1 || s.FragmentIndex != 1 {
		return nil, fmt.Errorf("%w: fragment %d of %d", ErrMultiFragment, s.FragmentIndex, s.FragmentCount)
	}
	return s, nil
}

// Build constructs a single-fragment VDM line for an armored payload of
// the given bit length, computing fill bits and checksum. Build and Parse
// round-trip.
func Build(talker, channel, payload string, bits int) string {
	fill := 6*len(payload) - bits
	body := fmt.Sprintf("%sVDM,1,1,,%s,%s,%d", talker, channel, payload, fill)
	return fmt.Sprintf("!%s*%02X", body, xor(body))
}

// String renders the sentence back to wire form.
func (s *Sentence) String() string {
	tag := "VDM"
	if s.Own {
		tag = "VDO"
	}
	body := fmt.Sprintf("%s%s,%d,%d,%s,%s,%s,%d",
		s.Talker, tag, s.FragmentCount, s.FragmentIndex, s.MessageID, s.Channel, s.Payload, s.FillBits)
	return fmt.Sprintf("!%s*%02X", body, xor(body))
}

// xor is the NMEA checksum: XOR of every byte between '!' and '*'.
func xor(body string) byte {
	var c byte
	for i := 0; i < len(body); i++ {
		c ^= body[i]
	}
	return c
}
