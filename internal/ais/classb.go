package ais

import "ais_relay/internal/sixbit"

// StandardClassBReport is message type 18, the standard class B equipment
// position report. 168 bits.
type StandardClassBReport struct {
	Header
	Spare1           uint8            `json:"spare1"` // 8 bits, regional reserved
	SOG              SpeedOverGround  `json:"sog"`
	PositionAccuracy bool             `json:"position_accuracy"`
	Pos              Position         `json:"pos"`
	COG              CourseOverGround `json:"cog"`
	TrueHeading      TrueHeading      `json:"true_heading"`
	UTCSecond        TimeStamp        `json:"utc_second"`
	Spare2           uint8            `json:"spare2"`     // 2 bits
	CSUnit           bool             `json:"cs_unit"`    // true = carrier sense unit
	Display          bool             `json:"display"`    // true = has display
	DSC              bool             `json:"dsc"`        // true = DSC capable
	Band             bool             `json:"band"`       // true = whole marine band
	Message22        bool             `json:"message_22"` // true = accepts channel assignment
	Assigned         bool             `json:"assigned"`   // true = assigned mode
	RAIM             bool             `json:"raim"`
	CommStateCS      bool             `json:"comm_state_cs"` // comm state selector, true = ITDMA
	RadioStatus      uint32           `json:"radio_status"`  // 19 bits, raw comm state
}

func (m *StandardClassBReport) decodeBody(buf *sixbit.Buffer) error {
	m.Spare1 = uint8(buf.Uint(8))
	m.SOG = SpeedOverGround(buf.Uint(10))
	m.PositionAccuracy = flag(buf.Uint(1))
	m.Pos = decodePosition(buf)
	m.COG = CourseOverGround(buf.Uint(12))
	m.TrueHeading = TrueHeading(buf.Uint(9))
	m.UTCSecond = TimeStamp(buf.Uint(6))
	m.Spare2 = uint8(buf.Uint(2))
	m.CSUnit = flag(buf.Uint(1))
	m.Display = flag(buf.Uint(1))
	m.DSC = flag(buf.Uint(1))
	m.Band = flag(buf.Uint(1))
	m.Message22 = flag(buf.Uint(1))
	m.Assigned = flag(buf.Uint(1))
	m.RAIM = flag(buf.Uint(1))
	m.CommStateCS = flag(buf.Uint(1))
	m.RadioStatus = uint32(buf.Uint(19))
	return nil
}

func (m *StandardClassBReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare1), 8)
	enc.WriteUint(uint64(m.SOG), 10)
	enc.WriteBool(m.PositionAccuracy)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.COG), 12)
	enc.WriteUint(uint64(m.TrueHeading), 9)
	enc.WriteUint(uint64(m.UTCSecond), 6)
	enc.WriteUint(uint64(m.Spare2), 2)
	enc.WriteBool(m.CSUnit)
	enc.WriteBool(m.Display)
	enc.WriteBool(m.DSC)
	enc.WriteBool(m.Band)
	enc.WriteBool(m.Message22)
	enc.WriteBool(m.Assigned)
	enc.WriteBool(m.RAIM)
	enc.WriteBool(m.CommStateCS)
	enc.WriteUint(uint64(m.RadioStatus), 19)
}

// ExtendedClassBReport is message type 19, the extended class B equipment
// position report. 312 bits.
//
// The layout carries a single 4-bit spare between the UTC second and the
// ship name. (Some implementations read a 2-bit spare immediately followed
// by a 4-bit one at that position, which is inconsistent with the 312-bit
// total and with their own encode path; the standard defines one 4-bit
// field.)
type ExtendedClassBReport struct {
	Header
	Spare1           uint8            `json:"spare1"` // 8 bits, regional reserved
	SOG              SpeedOverGround  `json:"sog"`
	PositionAccuracy bool             `json:"position_accuracy"`
	Pos              Position         `json:"pos"`
	COG              CourseOverGround `json:"cog"`
	TrueHeading      TrueHeading      `json:"true_heading"`
	UTCSecond        TimeStamp        `json:"utc_second"`
	Spare2           uint8            `json:"spare2"`    // 4 bits
	ShipName         string           `json:"ship_name"` // 20 six-bit chars
	ShipType         uint8            `json:"ship_type"` // 8 bits
	Dim              Dimension        `json:"dim"`       // 30 bits
	FixType          PositionFixType  `json:"fix_type"`  // 4 bits
	RAIM             bool             `json:"raim"`
	DTE              bool             `json:"dte"`      // true = not ready
	Assigned         bool             `json:"assigned"` // true = assigned mode
	Spare3           uint8            `json:"spare3"`   // 4 bits
}

func (m *ExtendedClassBReport) decodeBody(buf *sixbit.Buffer) error {
	m.Spare1 = uint8(buf.Uint(8))
	m.SOG = SpeedOverGround(buf.Uint(10))
	m.PositionAccuracy = flag(buf.Uint(1))
	m.Pos = decodePosition(buf)
	m.COG = CourseOverGround(buf.Uint(12))
	m.TrueHeading = TrueHeading(buf.Uint(9))
	m.UTCSecond = TimeStamp(buf.Uint(6))
	m.Spare2 = uint8(buf.Uint(4))
	m.ShipName = buf.Text(20)
	m.ShipType = uint8(buf.Uint(8))
	m.Dim = decodeDimension(buf)
	m.FixType = PositionFixType(buf.Uint(4))
	m.RAIM = flag(buf.Uint(1))
	m.DTE = flag(buf.Uint(1))
	m.Assigned = flag(buf.Uint(1))
	m.Spare3 = uint8(buf.Uint(4))
	return nil
}

func (m *ExtendedClassBReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare1), 8)
	enc.WriteUint(uint64(m.SOG), 10)
	enc.WriteBool(m.PositionAccuracy)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.COG), 12)
	enc.WriteUint(uint64(m.TrueHeading), 9)
	enc.WriteUint(uint64(m.UTCSecond), 6)
	enc.WriteUint(uint64(m.Spare2), 4)
	enc.WriteText(m.ShipName, 20)
	enc.WriteUint(uint64(m.ShipType), 8)
	m.Dim.encode(enc)
	enc.WriteUint(uint64(m.FixType), 4)
	enc.WriteBool(m.RAIM)
	enc.WriteBool(m.DTE)
	enc.WriteBool(m.Assigned)
	enc.WriteUint(uint64(m.Spare3), 4)
}
