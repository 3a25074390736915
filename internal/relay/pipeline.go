package relay

import (
	"bufio"
	"io"
	"log"

	"ais_relay/internal/ais"
	"ais_relay/internal/sentence"
)

// Stats counts pipeline outcomes.
type Stats struct {
	Received  uint64 // non-empty lines read
	Relayed   uint64 // well-formed sentences broadcast to clients
	Decoded   uint64 // sentences whose payload decoded to a message
	Malformed uint64 // rejected lines or payloads
}

// Handler receives each successfully decoded message together with its
// framing sentence.
type Handler func(*sentence.Sentence, ais.Message)

// Pump reads sentences from upstream until EOF, decoding each exactly
// once. Well-formed sentences are broadcast to connected clients whether
// or not the payload decodes; a failed parse or decode is counted and
// skipped, never fatal. The handler runs synchronously for each decoded
// message; a nil handler just relays.
func (s *Server) Pump(upstream io.Reader, handle Handler) (Stats, error) {
	var stats Stats
	sc := bufio.NewScanner(upstream)
	sc.Buffer(make([]byte, 4096), 64*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		stats.Received++

		snt, err := sentence.Parse(line)
		if err != nil {
			stats.Malformed++
			log.Printf("relay: dropping line: %v", err)
			continue
		}
		s.Broadcast(line)
		stats.Relayed++

		buf, err := snt.BitBuffer()
		if err != nil {
			stats.Malformed++
			log.Printf("relay: bad payload: %v", err)
			continue
		}
		msg, err := ais.Decode(buf)
		if err != nil {
			stats.Malformed++
			log.Printf("relay: undecodable payload: %v", err)
			continue
		}
		stats.Decoded++
		if handle != nil {
			handle(snt, msg)
		}
	}
	return stats, sc.Err()
}
