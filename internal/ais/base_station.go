package ais

import "ais_relay/internal/sixbit"

// BaseStationReport is message type 4 (base station report) and type 11
// (UTC/date response, identical layout). 168 bits.
type BaseStationReport struct {
	Header
	Year             uint16          `json:"year"`   // 14 bits, 0 = not available
	Month            uint8           `json:"month"`  // 4 bits
	Day              uint8           `json:"day"`    // 5 bits
	Hour             uint8           `json:"hour"`   // 5 bits
	Minute           uint8           `json:"minute"` // 6 bits
	Second           uint8           `json:"second"` // 6 bits
	PositionAccuracy bool            `json:"position_accuracy"`
	Pos              Position        `json:"pos"`
	FixType          PositionFixType `json:"fix_type"` // 4 bits
	Spare            uint16          `json:"spare"`    // 10 bits
	RAIM             bool            `json:"raim"`
	RadioStatus      uint32          `json:"radio_status"` // 19 bits, raw SOTDMA state
}

func (m *BaseStationReport) decodeBody(buf *sixbit.Buffer) error {
	m.Year = uint16(buf.Uint(14))
	m.Month = uint8(buf.Uint(4))
	m.Day = uint8(buf.Uint(5))
	m.Hour = uint8(buf.Uint(5))
	m.Minute = uint8(buf.Uint(6))
	m.Second = uint8(buf.Uint(6))
	m.PositionAccuracy = flag(buf.Uint(1))
	m.Pos = decodePosition(buf)
	m.FixType = PositionFixType(buf.Uint(4))
	m.Spare = uint16(buf.Uint(10))
	m.RAIM = flag(buf.Uint(1))
	m.RadioStatus = uint32(buf.Uint(19))
	return nil
}

func (m *BaseStationReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Year), 14)
	enc.WriteUint(uint64(m.Month), 4)
	enc.WriteUint(uint64(m.Day), 5)
	enc.WriteUint(uint64(m.Hour), 5)
	enc.WriteUint(uint64(m.Minute), 6)
	enc.WriteUint(uint64(m.Second), 6)
	enc.WriteBool(m.PositionAccuracy)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.FixType), 4)
	enc.WriteUint(uint64(m.Spare), 10)
	enc.WriteBool(m.RAIM)
	enc.WriteUint(uint64(m.RadioStatus), 19)
}
