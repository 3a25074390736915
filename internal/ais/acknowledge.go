package ais

import (
	"fmt"

	"ais_relay/internal/sixbit"
)

// Acknowledgement is one destination/sequence pair in a type 7 or 13
// acknowledge message, 32 bits each.
type Acknowledgement struct {
	MMSI   uint32 `json:"mmsi"`    // 30 bits
	SeqNum uint8  `json:"seq_num"` // 2 bits
}

// BinaryAcknowledge is message type 7 (binary acknowledge) and type 13
// (safety acknowledge, identical layout): 1 to 4 acknowledgements,
// 72 to 168 bits in 32-bit increments.
type BinaryAcknowledge struct {
	Header
	Spare uint8             `json:"spare"` // 2 bits
	Acks  []Acknowledgement `json:"acks"`
}

func (m *BinaryAcknowledge) decodeBody(buf *sixbit.Buffer) error {
	m.Spare = uint8(buf.Uint(2))
	if rem := buf.Remaining(); rem%32 != 0 {
		return fmt.Errorf("message %d: %d acknowledgement bits is not a multiple of 32: %w",
			m.MessageType, rem, ErrWrongLength)
	}
	for buf.Remaining() >= 32 && buf.Err() == nil {
		m.Acks = append(m.Acks, Acknowledgement{
			MMSI:   uint32(buf.Uint(30)),
			SeqNum: uint8(buf.Uint(2)),
		})
	}
	return nil
}

func (m *BinaryAcknowledge) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare), 2)
	for _, a := range m.Acks {
		enc.WriteUint(uint64(a.MMSI), 30)
		enc.WriteUint(uint64(a.SeqNum), 2)
	}
}

// UTCDateInquiry is message type 10, a request for a UTC/date response
// (type 11) from a named station. 72 bits.
type UTCDateInquiry struct {
	Header
	Spare1   uint8  `json:"spare1"` // 2 bits
	DestMMSI uint32 `json:"dest_mmsi"`
	Spare2   uint8  `json:"spare2"` // 2 bits
}

func (m *UTCDateInquiry) decodeBody(buf *sixbit.Buffer) error {
	m.Spare1 = uint8(buf.Uint(2))
	m.DestMMSI = uint32(buf.Uint(30))
	m.Spare2 = uint8(buf.Uint(2))
	return nil
}

func (m *UTCDateInquiry) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare1), 2)
	enc.WriteUint(uint64(m.DestMMSI), 30)
	enc.WriteUint(uint64(m.Spare2), 2)
}
