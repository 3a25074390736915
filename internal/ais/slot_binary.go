package ais

import (
	"fmt"

	"ais_relay/internal/sixbit"
)

// SingleSlotBinaryMessage is message type 25, a short binary message
// fitting one slot (at most 168 bits). It may be addressed to one station
// and may carry a 16-bit application identifier in front of the payload.
type SingleSlotBinaryMessage struct {
	Header
	Addressed  bool       `json:"addressed"`
	Structured bool       `json:"structured"` // true = payload preceded by AppID
	DestMMSI   uint32     `json:"dest_mmsi,omitempty"`
	Spare      uint8      `json:"spare,omitempty"`  // 2 bits, addressed form only
	AppID      uint16     `json:"app_id,omitempty"` // 16 bits (DAC + FI)
	Data       BinaryData `json:"data"`
}

func (m *SingleSlotBinaryMessage) decodeBody(buf *sixbit.Buffer) error {
	m.Addressed = flag(buf.Uint(1))
	m.Structured = flag(buf.Uint(1))
	if m.Addressed {
		m.DestMMSI = uint32(buf.Uint(30))
		m.Spare = uint8(buf.Uint(2))
	}
	if m.Structured {
		m.AppID = uint16(buf.Uint(16))
	}
	if err := buf.Err(); err != nil {
		return nil // latched, reported by Decode
	}
	var err error
	m.Data, err = decodeBinaryData(buf, buf.Remaining())
	return err
}

func (m *SingleSlotBinaryMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteBool(m.Addressed)
	enc.WriteBool(m.Structured)
	if m.Addressed {
		enc.WriteUint(uint64(m.DestMMSI), 30)
		enc.WriteUint(uint64(m.Spare), 2)
	}
	if m.Structured {
		enc.WriteUint(uint64(m.AppID), 16)
	}
	m.Data.encode(enc)
}

// MultiSlotBinaryMessage is message type 26, a binary message spanning up
// to five slots (at most 1064 bits), with the same addressing scheme as
// type 25 plus a trailing 20-bit comm state block.
type MultiSlotBinaryMessage struct {
	Header
	Addressed   bool       `json:"addressed"`
	Structured  bool       `json:"structured"`
	DestMMSI    uint32     `json:"dest_mmsi,omitempty"`
	Spare       uint8      `json:"spare,omitempty"`  // 2 bits, addressed form only
	AppID       uint16     `json:"app_id,omitempty"` // 16 bits (DAC + FI)
	Data        BinaryData `json:"data"`
	CommStateCS bool       `json:"comm_state_cs"` // comm state selector
	RadioStatus uint32     `json:"radio_status"`  // 19 bits, raw comm state
}

func (m *MultiSlotBinaryMessage) decodeBody(buf *sixbit.Buffer) error {
	m.Addressed = flag(buf.Uint(1))
	m.Structured = flag(buf.Uint(1))
	if m.Addressed {
		m.DestMMSI = uint32(buf.Uint(30))
		m.Spare = uint8(buf.Uint(2))
	}
	if m.Structured {
		m.AppID = uint16(buf.Uint(16))
	}
	if err := buf.Err(); err != nil {
		return nil
	}
	dataBits := buf.Remaining() - 20
	if dataBits < 0 {
		return fmt.Errorf("message 26: %d bits declared leaves no room for the comm state: %w",
			buf.Bits(), ErrWrongLength)
	}
	var err error
	m.Data, err = decodeBinaryData(buf, dataBits)
	if err != nil {
		return err
	}
	m.CommStateCS = flag(buf.Uint(1))
	m.RadioStatus = uint32(buf.Uint(19))
	return nil
}

func (m *MultiSlotBinaryMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteBool(m.Addressed)
	enc.WriteBool(m.Structured)
	if m.Addressed {
		enc.WriteUint(uint64(m.DestMMSI), 30)
		enc.WriteUint(uint64(m.Spare), 2)
	}
	if m.Structured {
		enc.WriteUint(uint64(m.AppID), 16)
	}
	m.Data.encode(enc)
	enc.WriteBool(m.CommStateCS)
	enc.WriteUint(uint64(m.RadioStatus), 19)
}
