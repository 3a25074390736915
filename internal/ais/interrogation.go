package ais

import "ais_relay/internal/sixbit"

// InterrogationRequest is one requested message in a type 15
// interrogation: which station should transmit which message type at
// which slot offset.
type InterrogationRequest struct {
	DestMMSI    uint32 `json:"dest_mmsi"`    // 30 bits
	MessageType uint8  `json:"message_type"` // 6 bits
	SlotOffset  uint16 `json:"slot_offset"`  // 12 bits
}

// Interrogation is message type 15. One request is 88 bits total, a
// second request to the same station makes 110, and a request to a second
// station makes 160 (with interleaved spare bits).
type Interrogation struct {
	Header
	Spare    uint8                  `json:"spare"` // 2 bits
	Requests []InterrogationRequest `json:"requests"`
}

func (m *Interrogation) decodeBody(buf *sixbit.Buffer) error {
	m.Spare = uint8(buf.Uint(2))
	first := InterrogationRequest{
		DestMMSI:    uint32(buf.Uint(30)),
		MessageType: uint8(buf.Uint(6)),
		SlotOffset:  uint16(buf.Uint(12)),
	}
	m.Requests = []InterrogationRequest{first}
	if buf.Bits() >= 110 {
		buf.Uint(2) // spare
		m.Requests = append(m.Requests, InterrogationRequest{
			DestMMSI:    first.DestMMSI,
			MessageType: uint8(buf.Uint(6)),
			SlotOffset:  uint16(buf.Uint(12)),
		})
		buf.Uint(2) // spare, present in both the 110 and 160 bit forms
	}
	if buf.Bits() == 160 {
		m.Requests = append(m.Requests, InterrogationRequest{
			DestMMSI:    uint32(buf.Uint(30)),
			MessageType: uint8(buf.Uint(6)),
			SlotOffset:  uint16(buf.Uint(12)),
		})
		buf.Uint(2) // trailing spare
	}
	return nil
}

func (m *Interrogation) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare), 2)
	for i, r := range m.Requests {
		switch i {
		case 0:
			enc.WriteUint(uint64(r.DestMMSI), 30)
			enc.WriteUint(uint64(r.MessageType), 6)
			enc.WriteUint(uint64(r.SlotOffset), 12)
		case 1:
			enc.WriteUint(0, 2)
			enc.WriteUint(uint64(r.MessageType), 6)
			enc.WriteUint(uint64(r.SlotOffset), 12)
			enc.WriteUint(0, 2)
		case 2:
			enc.WriteUint(uint64(r.DestMMSI), 30)
			enc.WriteUint(uint64(r.MessageType), 6)
			enc.WriteUint(uint64(r.SlotOffset), 12)
			enc.WriteUint(0, 2)
		}
	}
}

// Assignment is one station assignment in a type 16 command.
type Assignment struct {
	DestMMSI   uint32 `json:"dest_mmsi"`   // 30 bits
	SlotOffset uint16 `json:"slot_offset"` // 12 bits
	Increment  uint16 `json:"increment"`   // 10 bits
}

// AssignedModeCommand is message type 16: a base station assigning
// transmission schedules. One assignment plus 4 spare bits is 96 bits;
// two assignments make 144.
type AssignedModeCommand struct {
	Header
	Spare       uint8        `json:"spare"` // 2 bits
	Assignments []Assignment `json:"assignments"`
	// Spare2 pads the single-assignment form to 96 bits; absent from the
	// two-assignment form.
	Spare2 uint8 `json:"spare2"` // 4 bits
}

func (m *AssignedModeCommand) decodeBody(buf *sixbit.Buffer) error {
	m.Spare = uint8(buf.Uint(2))
	m.Assignments = []Assignment{{
		DestMMSI:   uint32(buf.Uint(30)),
		SlotOffset: uint16(buf.Uint(12)),
		Increment:  uint16(buf.Uint(10)),
	}}
	if buf.Bits() == 144 {
		m.Assignments = append(m.Assignments, Assignment{
			DestMMSI:   uint32(buf.Uint(30)),
			SlotOffset: uint16(buf.Uint(12)),
			Increment:  uint16(buf.Uint(10)),
		})
	} else {
		m.Spare2 = uint8(buf.Uint(4))
	}
	return nil
}

func (m *AssignedModeCommand) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare), 2)
	for _, a := range m.Assignments {
		enc.WriteUint(uint64(a.DestMMSI), 30)
		enc.WriteUint(uint64(a.SlotOffset), 12)
		enc.WriteUint(uint64(a.Increment), 10)
	}
	if len(m.Assignments) == 1 {
		enc.WriteUint(uint64(m.Spare2), 4)
	}
}
