package sixbit

import "strings"

// Encoder is an append-only bit sequence builder. Values are written
// MSB-first; Armor emits the accumulated bits as payload armor text.
//
// No width-overflow check is performed: WriteUint keeps only the low n bits
// of the value, and WriteText pads or truncates to the requested character
// count. Callers are expected to supply bit-width-adjusted representations,
// matching what a reader would have produced.
type Encoder struct {
	data []byte
	bits int
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bits returns the number of bits written so far.
func (e *Encoder) Bits() int { return e.bits }

// Bytes returns the packed bits, MSB-first. The final byte is zero-padded.
func (e *Encoder) Bytes() []byte { return e.data }

func (e *Encoder) grow(n int) {
	need := (e.bits + n + 7) / 8
	for len(e.data) < need {
		e.data = append(e.data, 0)
	}
}

// WriteUint appends the low n bits of v.
func (e *Encoder) WriteUint(v uint64, n int) {
	e.grow(n)
	setField(e.data, e.bits, n, v)
	e.bits += n
}

// WriteBool appends one bit.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint(1, 1)
	} else {
		e.WriteUint(0, 1)
	}
}

// WriteText appends exactly chars six-bit characters: s truncated to chars,
// then padded with '@' ("not available").
func (e *Encoder) WriteText(s string, chars int) {
	for i := 0; i < chars; i++ {
		var c byte // '@'
		if i < len(s) {
			c = s[i]
		}
		e.WriteUint(uint64(textValue(c)), 6)
	}
}

// WriteString appends s at its natural length, one six-bit character per
// byte. Used for variable-width text fields (safety messages).
func (e *Encoder) WriteString(s string) {
	e.WriteText(s, len(s))
}

// WriteBits appends the first n bits of packed MSB-first data.
func (e *Encoder) WriteBits(data []byte, n int) {
	e.grow(n)
	for i := 0; i < n; i++ {
		var bit uint64
		if data[i>>3]&(0x80>>(i&7)) != 0 {
			bit = 1
		}
		setField(e.data, e.bits+i, 1, bit)
	}
	e.bits += n
}

// Armor returns the written bits as payload armor text together with the
// number of fill bits (0-5) that pad the final character.
func (e *Encoder) Armor() (payload string, fillBits int) {
	chars := (e.bits + 5) / 6
	fillBits = chars*6 - e.bits
	var sb strings.Builder
	sb.Grow(chars)
	for i := 0; i < chars; i++ {
		var v uint64
		for k := 0; k < 6; k++ {
			v <<= 1
			bit := i*6 + k
			if bit < e.bits && getBit(e.data, bit) {
				v |= 1
			}
		}
		sb.WriteByte(armorChar(uint8(v)))
	}
	return sb.String(), fillBits
}
