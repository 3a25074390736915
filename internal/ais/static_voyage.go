package ais

import "ais_relay/internal/sixbit"

// StaticAndVoyageData is message type 5, the class A static and
// voyage-related data report. 424 bits.
type StaticAndVoyageData struct {
	Header
	AISVersion  uint8           `json:"ais_version"` // 2 bits
	IMONumber   uint32          `json:"imo_number"`  // 30 bits, 0 = not available
	CallSign    string          `json:"call_sign"`   // 7 six-bit chars
	ShipName    string          `json:"ship_name"`   // 20 six-bit chars
	ShipType    uint8           `json:"ship_type"`   // 8 bits
	Dim         Dimension       `json:"dim"`         // 30 bits
	FixType     PositionFixType `json:"fix_type"`    // 4 bits
	ETAMonth    uint8           `json:"eta_month"`   // 4 bits, 0 = not available
	ETADay      uint8           `json:"eta_day"`     // 5 bits
	ETAHour     uint8           `json:"eta_hour"`    // 5 bits, 24 = not available
	ETAMinute   uint8           `json:"eta_minute"`  // 6 bits, 60 = not available
	Draught     uint8           `json:"draught"`     // 8 bits, 1/10 m
	Destination string          `json:"destination"` // 20 six-bit chars
	DTE         bool            `json:"dte"`         // 1 bit, true = not ready
	Spare       uint8           `json:"spare"`       // 1 bit
}

func (m *StaticAndVoyageData) decodeBody(buf *sixbit.Buffer) error {
	m.AISVersion = uint8(buf.Uint(2))
	m.IMONumber = uint32(buf.Uint(30))
	m.CallSign = buf.Text(7)
	m.ShipName = buf.Text(20)
	m.ShipType = uint8(buf.Uint(8))
	m.Dim = decodeDimension(buf)
	m.FixType = PositionFixType(buf.Uint(4))
	m.ETAMonth = uint8(buf.Uint(4))
	m.ETADay = uint8(buf.Uint(5))
	m.ETAHour = uint8(buf.Uint(5))
	m.ETAMinute = uint8(buf.Uint(6))
	m.Draught = uint8(buf.Uint(8))
	m.Destination = buf.Text(20)
	m.DTE = flag(buf.Uint(1))
	m.Spare = uint8(buf.Uint(1))
	return nil
}

func (m *StaticAndVoyageData) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.AISVersion), 2)
	enc.WriteUint(uint64(m.IMONumber), 30)
	enc.WriteText(m.CallSign, 7)
	enc.WriteText(m.ShipName, 20)
	enc.WriteUint(uint64(m.ShipType), 8)
	m.Dim.encode(enc)
	enc.WriteUint(uint64(m.FixType), 4)
	enc.WriteUint(uint64(m.ETAMonth), 4)
	enc.WriteUint(uint64(m.ETADay), 5)
	enc.WriteUint(uint64(m.ETAHour), 5)
	enc.WriteUint(uint64(m.ETAMinute), 6)
	enc.WriteUint(uint64(m.Draught), 8)
	enc.WriteText(m.Destination, 20)
	enc.WriteBool(m.DTE)
	enc.WriteUint(uint64(m.Spare), 1)
}
