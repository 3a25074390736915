package ais

import (
	"fmt"

	"ais_relay/internal/sixbit"
)

// Part numbers for the type 24 static data report.
const (
	PartA uint8 = 0
	PartB uint8 = 1
)

// StaticDataReport is message type 24, the class B static data report.
// Part A (160 bits) carries the ship name; part B (168 bits) carries ship
// type, vendor ID, call sign and dimensions. The part number selects which
// field group is populated.
type StaticDataReport struct {
	Header
	PartNumber uint8 `json:"part_number"` // 2 bits

	// Part A.
	ShipName string `json:"ship_name,omitempty"` // 20 six-bit chars

	// Part B.
	ShipType uint8     `json:"ship_type,omitempty"`
	VendorID string    `json:"vendor_id,omitempty"` // 7 six-bit chars
	CallSign string    `json:"call_sign,omitempty"` // 7 six-bit chars
	Dim      Dimension `json:"dim,omitempty"`
	Spare    uint8     `json:"spare,omitempty"` // 6 bits
}

func (m *StaticDataReport) decodeBody(buf *sixbit.Buffer) error {
	m.PartNumber = uint8(buf.Uint(2))
	switch {
	case m.PartNumber == PartA && buf.Bits() == 160:
		m.ShipName = buf.Text(20)
	case m.PartNumber == PartB && buf.Bits() == 168:
		m.ShipType = uint8(buf.Uint(8))
		m.VendorID = buf.Text(7)
		m.CallSign = buf.Text(7)
		m.Dim = decodeDimension(buf)
		m.Spare = uint8(buf.Uint(6))
	default:
		return fmt.Errorf("message 24 part %d: %d bits declared: %w",
			m.PartNumber, buf.Bits(), ErrWrongLength)
	}
	return nil
}

func (m *StaticDataReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.PartNumber), 2)
	if m.PartNumber == PartA {
		enc.WriteText(m.ShipName, 20)
		return
	}
	enc.WriteUint(uint64(m.ShipType), 8)
	enc.WriteText(m.VendorID, 7)
	enc.WriteText(m.CallSign, 7)
	m.Dim.encode(enc)
	enc.WriteUint(uint64(m.Spare), 6)
}
