package ais

import "ais_relay/internal/sixbit"

// SlotReservation is one reserved slot block in a type 20 message,
// 30 bits each.
type SlotReservation struct {
	Offset    uint16 `json:"offset"`    // 12 bits
	Slots     uint8  `json:"slots"`     // 4 bits
	Timeout   uint8  `json:"timeout"`   // 3 bits, minutes
	Increment uint16 `json:"increment"` // 11 bits
}

// DataLinkManagement is message type 20: a base station reserving data
// link slots. 1 to 4 reservation blocks; the single-block form is padded
// with 2 spare bits to reach 72.
type DataLinkManagement struct {
	Header
	Spare        uint8             `json:"spare"` // 2 bits
	Reservations []SlotReservation `json:"reservations"`
}

func (m *DataLinkManagement) decodeBody(buf *sixbit.Buffer) error {
	m.Spare = uint8(buf.Uint(2))
	for buf.Remaining() >= 30 && len(m.Reservations) < 4 && buf.Err() == nil {
		m.Reservations = append(m.Reservations, SlotReservation{
			Offset:    uint16(buf.Uint(12)),
			Slots:     uint8(buf.Uint(4)),
			Timeout:   uint8(buf.Uint(3)),
			Increment: uint16(buf.Uint(11)),
		})
	}
	// Trailing pad bits (the 72-bit form carries 2) are not meaningful.
	return nil
}

func (m *DataLinkManagement) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare), 2)
	for _, r := range m.Reservations {
		enc.WriteUint(uint64(r.Offset), 12)
		enc.WriteUint(uint64(r.Slots), 4)
		enc.WriteUint(uint64(r.Timeout), 3)
		enc.WriteUint(uint64(r.Increment), 11)
	}
	if len(m.Reservations) == 1 {
		enc.WriteUint(0, 2)
	}
}
