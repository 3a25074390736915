package sixbit

import (
	"fmt"
	"strings"
)

// Buffer is a read-only cursor over a six-bit-decoded binary sequence.
// Bits are packed MSB-first. The declared length may be shorter than the
// backing storage when the last armor character carried fill bits.
//
// Read methods come in two forms: ReadUint/ReadText return an explicit
// error, while Uint/Text latch the first error for a later Err check so a
// long fixed-layout decode does not need a check per field. The buffer does
// not verify that total consumption matches its declared length; that is
// the dispatcher's job, done once before any field is read.
type Buffer struct {
	data []byte // packed bits, MSB first
	bits int    // declared bit length
	pos  int
	err  error
}

// NewBuffer wraps packed bits with a declared bit length.
func NewBuffer(data []byte, bits int) *Buffer {
	return &Buffer{data: data, bits: bits}
}

// BufferFromArmor decodes a payload armor string into a Buffer. fillBits is
// the number of trailing padding bits in the final character (0-5).
func BufferFromArmor(payload string, fillBits int) (*Buffer, error) {
	if fillBits < 0 || fillBits > 5 {
		return nil, fmt.Errorf("sixbit: fill bits %d out of range", fillBits)
	}
	bits := 6*len(payload) - fillBits
	if bits < 0 {
		bits = 0
	}
	data := make([]byte, (len(payload)*6+7)/8)
	for i := 0; i < len(payload); i++ {
		v, err := armorValue(payload[i])
		if err != nil {
			return nil, fmt.Errorf("payload offset %d: %w", i, err)
		}
		setField(data, i*6, 6, uint64(v))
	}
	return &Buffer{data: data, bits: bits}, nil
}

// Bits returns the declared total bit length.
func (b *Buffer) Bits() int { return b.bits }

// Pos returns the cursor position in bits.
func (b *Buffer) Pos() int { return b.pos }

// Remaining returns the number of unread bits.
func (b *Buffer) Remaining() int { return b.bits - b.pos }

// Err returns the first error latched by Uint or Text.
func (b *Buffer) Err() error { return b.err }

// ReadUint reads n bits (0-64) as an unsigned value and advances the
// cursor. Fields up to 64 bits wide are supported; several AIS payloads
// carry values wider than 32 bits.
func (b *Buffer) ReadUint(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("sixbit: field width %d out of range", n)
	}
	if b.pos+n > b.bits {
		return 0, fmt.Errorf("%w: need %d bits at offset %d of %d", ErrExhausted, n, b.pos, b.bits)
	}
	v := getField(b.data, b.pos, n)
	b.pos += n
	return v, nil
}

// Uint is ReadUint with error latching: on failure it returns 0 and
// records the error for Err.
func (b *Buffer) Uint(n int) uint64 {
	v, err := b.ReadUint(n)
	if err != nil && b.err == nil {
		b.err = err
	}
	return v
}

// ReadText reads chars six-bit characters (6*chars bits) and decodes them
// through the text table. The result is cut at the first '@', which marks
// "not available" padding. The cursor always advances by the full width.
func (b *Buffer) ReadText(chars int) (string, error) {
	var sb strings.Builder
	done := false
	for i := 0; i < chars; i++ {
		v, err := b.ReadUint(6)
		if err != nil {
			return "", err
		}
		if done {
			continue
		}
		c := textChar(uint8(v))
		if c == '@' {
			done = true
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

// Text is ReadText with error latching.
func (b *Buffer) Text(chars int) string {
	s, err := b.ReadText(chars)
	if err != nil && b.err == nil {
		b.err = err
	}
	return s
}

// ReadBits reads n bits into a freshly packed MSB-first byte slice. Used
// for opaque binary payloads whose exact bit count must survive a
// decode-encode round trip.
func (b *Buffer) ReadBits(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("sixbit: negative bit count %d", n)
	}
	if b.pos+n > b.bits {
		return nil, fmt.Errorf("%w: need %d bits at offset %d of %d", ErrExhausted, n, b.pos, b.bits)
	}
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if getBit(b.data, b.pos+i) {
			out[i>>3] |= 0x80 >> (i & 7)
		}
	}
	b.pos += n
	return out, nil
}

func getBit(base []byte, offset int) bool {
	return base[offset>>3]&(0x80>>(offset&7)) != 0
}

func getField(base []byte, start, length int) uint64 {
	var v uint64
	for i := 0; i < length; i++ {
		v <<= 1
		if getBit(base, start+i) {
			v |= 1
		}
	}
	return v
}

func setField(base []byte, start, length int, v uint64) {
	for i := 0; i < length; i++ {
		if v>>(length-1-i)&1 != 0 {
			base[(start+i)>>3] |= 0x80 >> ((start + i) & 7)
		} else {
			base[(start+i)>>3] &^= 0x80 >> ((start + i) & 7)
		}
	}
}
