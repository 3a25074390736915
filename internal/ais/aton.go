package ais

import "ais_relay/internal/sixbit"

// AidsToNavigationReport is message type 21, the aids-to-navigation
// report. 272 bits of fixed fields plus an optional name extension of up
// to 14 six-bit characters.
type AidsToNavigationReport struct {
	Header
	AtoNType         uint8           `json:"aton_type"` // 5 bits
	Name             string          `json:"name"`      // 20 six-bit chars
	PositionAccuracy bool            `json:"position_accuracy"`
	Pos              Position        `json:"pos"`
	Dim              Dimension       `json:"dim"`
	FixType          PositionFixType `json:"fix_type"`
	UTCSecond        TimeStamp       `json:"utc_second"`
	OffPosition      bool            `json:"off_position"` // valid for floating aids
	Regional         uint8           `json:"regional"`     // 8 bits
	RAIM             bool            `json:"raim"`
	Virtual          bool            `json:"virtual"` // true = virtual aid
	Assigned         bool            `json:"assigned"`
	Spare            uint8           `json:"spare"`          // 1 bit
	NameExtension    string          `json:"name_extension"` // 0-14 six-bit chars
}

func (m *AidsToNavigationReport) decodeBody(buf *sixbit.Buffer) error {
	m.AtoNType = uint8(buf.Uint(5))
	m.Name = buf.Text(20)
	m.PositionAccuracy = flag(buf.Uint(1))
	m.Pos = decodePosition(buf)
	m.Dim = decodeDimension(buf)
	m.FixType = PositionFixType(buf.Uint(4))
	m.UTCSecond = TimeStamp(buf.Uint(6))
	m.OffPosition = flag(buf.Uint(1))
	m.Regional = uint8(buf.Uint(8))
	m.RAIM = flag(buf.Uint(1))
	m.Virtual = flag(buf.Uint(1))
	m.Assigned = flag(buf.Uint(1))
	m.Spare = uint8(buf.Uint(1))
	m.NameExtension = buf.Text(buf.Remaining() / 6)
	return nil
}

func (m *AidsToNavigationReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.AtoNType), 5)
	enc.WriteText(m.Name, 20)
	enc.WriteBool(m.PositionAccuracy)
	m.Pos.encode(enc)
	m.Dim.encode(enc)
	enc.WriteUint(uint64(m.FixType), 4)
	enc.WriteUint(uint64(m.UTCSecond), 6)
	enc.WriteBool(m.OffPosition)
	enc.WriteUint(uint64(m.Regional), 8)
	enc.WriteBool(m.RAIM)
	enc.WriteBool(m.Virtual)
	enc.WriteBool(m.Assigned)
	enc.WriteUint(uint64(m.Spare), 1)
	enc.WriteString(m.NameExtension)
}
