package ais

import (
	"errors"
	"testing"

	"ais_relay/internal/sixbit"
)

// padded returns an encoder preloaded with a 6-bit type discriminant and
// zero bits up to the given total.
func padded(msgType uint8, bits int) *sixbit.Encoder {
	enc := sixbit.NewEncoder()
	enc.WriteUint(uint64(msgType), 6)
	for n := bits - 6; n > 0; n -= 32 {
		w := n
		if w > 32 {
			w = 32
		}
		enc.WriteUint(0, w)
	}
	return enc
}

func TestDecodeUnknownType(t *testing.T) {
	for _, msgType := range []uint8{0, 28, 63} {
		enc := padded(msgType, 168)
		_, err := Decode(sixbit.NewBuffer(enc.Bytes(), enc.Bits()))
		if !errors.Is(err, ErrUnknownType) {
			t.Errorf("type %d: err = %v, want ErrUnknownType", msgType, err)
		}
	}
}

func TestDecodeWrongLength(t *testing.T) {
	cases := []struct {
		msgType uint8
		bits    int
	}{
		{1, 160},  // fixed 168
		{4, 169},  // fixed 168
		{5, 168},  // fixed 424
		{10, 80},  // fixed 72
		{15, 100}, // one of 88, 110, 160
		{16, 120}, // one of 96, 144
		{19, 168}, // fixed 312
		{24, 120}, // one of 160, 168
		{27, 168}, // fixed 96
		{6, 80},   // below the 88-bit minimum
		{8, 1014}, // above the 1008-bit maximum
	}
	for _, tc := range cases {
		enc := padded(tc.msgType, tc.bits)
		_, err := Decode(sixbit.NewBuffer(enc.Bytes(), enc.Bits()))
		if !errors.Is(err, ErrWrongLength) {
			t.Errorf("type %d at %d bits: err = %v, want ErrWrongLength", tc.msgType, tc.bits, err)
		}
	}
}

func TestDecodeShortHeader(t *testing.T) {
	_, err := Decode(sixbit.NewBuffer([]byte{0x04, 0x00, 0x00, 0x00}, 30))
	if !errors.Is(err, ErrWrongLength) {
		t.Errorf("err = %v, want ErrWrongLength", err)
	}
}

// Length validation happens before body decode, so subtype length rules
// surface as ErrWrongLength too.
func TestDecodeSubtypeLengthRules(t *testing.T) {
	// Type 7 with an acknowledgement region that is not a multiple of 32.
	enc := padded(7, 80)
	_, err := Decode(sixbit.NewBuffer(enc.Bytes(), enc.Bits()))
	if !errors.Is(err, ErrWrongLength) {
		t.Errorf("type 7 at 80 bits: err = %v, want ErrWrongLength", err)
	}

	// Type 24 part number 1 (B) inside a 160-bit (part A sized) message.
	enc = sixbit.NewEncoder()
	enc.WriteUint(24, 6)
	enc.WriteUint(0, 32) // repeat + mmsi
	enc.WriteUint(1, 2)  // part B discriminant
	for i := 0; i < 4; i++ {
		enc.WriteUint(0, 30)
	}
	if enc.Bits() != 160 {
		t.Fatalf("test frame is %d bits, want 160", enc.Bits())
	}
	_, err = Decode(sixbit.NewBuffer(enc.Bytes(), enc.Bits()))
	if !errors.Is(err, ErrWrongLength) {
		t.Errorf("type 24 part B at 160 bits: err = %v, want ErrWrongLength", err)
	}
}

func TestDecodeArmorInvalidCharacter(t *testing.T) {
	_, err := DecodeArmor("1}aaaaaaaaaaaaaaaaaaaaaaaaaa", 0)
	if !errors.Is(err, ErrMalformedField) {
		t.Errorf("err = %v, want ErrMalformedField", err)
	}
}

func TestDecodeArmorBadFillBits(t *testing.T) {
	_, err := DecodeArmor("177KQJ5000G?tO`K>RA1wUbN0TKH", 6)
	if !errors.Is(err, ErrMalformedField) {
		t.Errorf("err = %v, want ErrMalformedField", err)
	}
}
