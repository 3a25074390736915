// Package ais decodes and encodes ITU-R M.1371 AIS messages.
//
// The wire form is a packed six-bit binary stream (the payload of an
// AIVDM/AIVDO sentence). Decode unpacks a stream into one of 27 typed
// message records; Encode serialises any record back to a bit-identical
// stream. Raw field values, sentinels and spare bits are preserved exactly,
// so encode(decode(x)) reproduces x bit for bit.
//
// The codec is stateless and performs no I/O; any number of decodes and
// encodes may run concurrently.
package ais

import (
	"fmt"

	"ais_relay/internal/sixbit"
)

// headerBits is the width of the shared header: type (6), repeat
// indicator (2), source MMSI (30).
const headerBits = 38

// Header holds the fields common to every message type.
type Header struct {
	MessageType uint8  `json:"type"`   // 6 bits, 1-27
	Repeat      uint8  `json:"repeat"` // 2 bits, repeat indicator
	MMSI        uint32 `json:"mmsi"`   // 30 bits, source identifier
}

// Type returns the message type discriminant.
func (h *Header) Type() uint8 { return h.MessageType }

// Source returns the sender MMSI.
func (h *Header) Source() uint32 { return h.MMSI }

func (h *Header) header() *Header { return h }

// Message is one of the 27 typed AIS records. A Message is produced fully
// formed by Decode or built field by field for one Encode call; it is
// never partially initialised.
type Message interface {
	// Type returns the message type discriminant (1-27).
	Type() uint8
	// Source returns the sender MMSI.
	Source() uint32

	header() *Header
	decodeBody(buf *sixbit.Buffer) error
	encodeBody(enc *sixbit.Encoder)
}

// layout describes the mandated total bit length for a message type.
// Fixed-length types have min == max; variable types treat the remainder
// beyond their fixed fields as a sized payload. sizes, when set, lists the
// only permitted totals.
type layout struct {
	min, max int
	sizes    []int
	make     func() Message
}

func (l layout) lengthOK(bits int) bool {
	if l.sizes != nil {
		for _, s := range l.sizes {
			if bits == s {
				return true
			}
		}
		return false
	}
	return bits >= l.min && bits <= l.max
}

// layouts is the closed dispatch table, indexed by message type.
var layouts = [28]*layout{
	1:  {min: 168, max: 168, make: func() Message { return &PositionReport{} }},
	2:  {min: 168, max: 168, make: func() Message { return &PositionReport{} }},
	3:  {min: 168, max: 168, make: func() Message { return &PositionReport{} }},
	4:  {min: 168, max: 168, make: func() Message { return &BaseStationReport{} }},
	5:  {min: 424, max: 424, make: func() Message { return &StaticAndVoyageData{} }},
	6:  {min: 88, max: 1008, make: func() Message { return &AddressedBinaryMessage{} }},
	7:  {min: 72, max: 168, make: func() Message { return &BinaryAcknowledge{} }},
	8:  {min: 56, max: 1008, make: func() Message { return &BinaryBroadcastMessage{} }},
	9:  {min: 168, max: 168, make: func() Message { return &SARAircraftReport{} }},
	10: {min: 72, max: 72, make: func() Message { return &UTCDateInquiry{} }},
	11: {min: 168, max: 168, make: func() Message { return &BaseStationReport{} }},
	12: {min: 72, max: 1008, make: func() Message { return &AddressedSafetyMessage{} }},
	13: {min: 72, max: 168, make: func() Message { return &BinaryAcknowledge{} }},
	14: {min: 40, max: 1008, make: func() Message { return &SafetyBroadcastMessage{} }},
	15: {sizes: []int{88, 110, 160}, make: func() Message { return &Interrogation{} }},
	16: {sizes: []int{96, 144}, make: func() Message { return &AssignedModeCommand{} }},
	17: {min: 80, max: 816, make: func() Message { return &GNSSBroadcastMessage{} }},
	18: {min: 168, max: 168, make: func() Message { return &StandardClassBReport{} }},
	19: {min: 312, max: 312, make: func() Message { return &ExtendedClassBReport{} }},
	20: {min: 72, max: 160, make: func() Message { return &DataLinkManagement{} }},
	21: {min: 272, max: 360, make: func() Message { return &AidsToNavigationReport{} }},
	22: {min: 168, max: 168, make: func() Message { return &ChannelManagement{} }},
	23: {min: 160, max: 160, make: func() Message { return &GroupAssignmentCommand{} }},
	24: {sizes: []int{160, 168}, make: func() Message { return &StaticDataReport{} }},
	25: {min: 40, max: 168, make: func() Message { return &SingleSlotBinaryMessage{} }},
	26: {min: 60, max: 1064, make: func() Message { return &MultiSlotBinaryMessage{} }},
	27: {min: 96, max: 96, make: func() Message { return &LongRangeBroadcastMessage{} }},
}

// Decode reads one message from buf. The type discriminant is read first;
// the declared total length is then checked against the type's mandated
// length before any body field is read. There is no partial decode: on any
// failure the message is rejected as a whole.
func Decode(buf *sixbit.Buffer) (Message, error) {
	if buf.Bits() < headerBits {
		return nil, fmt.Errorf("%d bits is too short for a message header: %w", buf.Bits(), ErrWrongLength)
	}
	t, err := buf.ReadUint(6)
	if err != nil {
		return nil, fmt.Errorf("message type: %w", ErrMalformedField)
	}
	if t < 1 || t > 27 {
		return nil, fmt.Errorf("type %d: %w", t, ErrUnknownType)
	}
	l := layouts[t]
	if !l.lengthOK(buf.Bits()) {
		return nil, fmt.Errorf("message %d: %d bits declared, want %s: %w",
			t, buf.Bits(), l.wantString(), ErrWrongLength)
	}

	m := l.make()
	h := m.header()
	h.MessageType = uint8(t)
	h.Repeat = uint8(buf.Uint(2))
	h.MMSI = uint32(buf.Uint(30))
	if err := m.decodeBody(buf); err != nil {
		return nil, err
	}
	if err := buf.Err(); err != nil {
		return nil, fmt.Errorf("message %d: %v: %w", t, err, ErrMalformedField)
	}
	return m, nil
}

// DecodeArmor decodes a six-bit-armored payload with the given declared
// bit length (6*len(payload) minus the sentence fill bits).
func DecodeArmor(payload string, fillBits int) (Message, error) {
	buf, err := sixbit.BufferFromArmor(payload, fillBits)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedField)
	}
	return Decode(buf)
}

// Encode serialises a fully populated record. The result's bit length
// equals the mandated total for the record's type.
func Encode(m Message) *sixbit.Encoder {
	enc := sixbit.NewEncoder()
	h := m.header()
	enc.WriteUint(uint64(h.MessageType), 6)
	enc.WriteUint(uint64(h.Repeat), 2)
	enc.WriteUint(uint64(h.MMSI), 30)
	m.encodeBody(enc)
	return enc
}

// EncodeArmor serialises a record to armored payload text plus its bit
// length, ready for re-insertion into a sentence.
func EncodeArmor(m Message) (payload string, bits int) {
	enc := Encode(m)
	payload, _ = enc.Armor()
	return payload, enc.Bits()
}

func (l layout) wantString() string {
	if l.sizes != nil {
		return fmt.Sprintf("one of %v", l.sizes)
	}
	if l.min == l.max {
		return fmt.Sprintf("%d", l.min)
	}
	return fmt.Sprintf("%d-%d", l.min, l.max)
}

func flag(v uint64) bool { return v != 0 }
