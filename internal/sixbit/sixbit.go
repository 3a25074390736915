// Package sixbit implements the packed six-bit binary layer used by AIS
// payloads: a cursor-based bit reader, an append-only bit writer, and the
// two six-bit character tables (payload armor and text).
//
// The armor alphabet maps the values 0-63 onto the printable characters
// carried inside an AIVDM/AIVDO sentence payload: 0-39 become '0'-'W' and
// 40-63 become '`'-'w'. The text alphabet is the AIS six-bit ASCII subset
// used for names, call signs and safety text, where value 0 ('@') marks
// "not available" padding.
package sixbit

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted is returned when a read requests more bits than remain
	// in the buffer.
	ErrExhausted = errors.New("sixbit: read past end of buffer")

	// ErrInvalidArmor is returned when a payload character falls outside
	// the armor alphabet.
	ErrInvalidArmor = errors.New("sixbit: invalid armor character")
)

// armorValue converts one payload armor character to its six-bit value.
func armorValue(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= 'W':
		return c - 48, nil
	case c >= '`' && c <= 'w':
		return c - 56, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidArmor, c)
}

// armorChar converts a six-bit value to its payload armor character.
func armorChar(v uint8) byte {
	if v < 40 {
		return v + 48
	}
	return v + 56
}

// textChar converts a six-bit value to its AIS text character.
func textChar(v uint8) byte {
	if v < 32 {
		return v + 64 // '@'..'_'
	}
	return v // ' '..'?'
}

// textValue converts a character to its six-bit text value. Lowercase
// letters fold to uppercase; anything outside the alphabet becomes '@' (0),
// matching the permissive write path.
func textValue(c byte) uint8 {
	switch {
	case c >= '@' && c < '`':
		return c - 64
	case c >= ' ' && c < '@':
		return c
	case c >= '`' && c < 128:
		return c - 96 // fold lowercase onto uppercase
	}
	return 0
}
