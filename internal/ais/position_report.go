package ais

import "ais_relay/internal/sixbit"

// PositionReport is the class A position report, message types 1, 2 and 3
// (scheduled, assigned and special, respectively). 168 bits.
//
// The trailing 19 radio-status bits are SOTDMA state for types 1 and 2 and
// ITDMA state for type 3; they are kept raw so the distinction does not
// leak into the layout.
type PositionReport struct {
	Header
	NavStatus        NavigationStatus `json:"nav_status"`        // 4 bits
	RateOfTurn       int8             `json:"rate_of_turn"`      // 8 bits, -128 = not available
	SOG              SpeedOverGround  `json:"sog"`               // 10 bits
	PositionAccuracy bool             `json:"position_accuracy"` // 1 bit, true = high (<= 10 m)
	Pos              Position         `json:"pos"`               // 28 + 27 bits
	COG              CourseOverGround `json:"cog"`               // 12 bits
	TrueHeading      TrueHeading      `json:"true_heading"`      // 9 bits
	UTCSecond        TimeStamp        `json:"utc_second"`        // 6 bits
	SpecialManoeuvre uint8            `json:"special_manoeuvre"` // 2 bits
	Spare            uint8            `json:"spare"`             // 3 bits
	RAIM             bool             `json:"raim"`              // 1 bit
	RadioStatus      uint32           `json:"radio_status"`      // 19 bits, raw comm state
}

func (m *PositionReport) decodeBody(buf *sixbit.Buffer) error {
	m.NavStatus = NavigationStatus(buf.Uint(4))
	m.RateOfTurn = int8(buf.Uint(8))
	m.SOG = SpeedOverGround(buf.Uint(10))
	m.PositionAccuracy = flag(buf.Uint(1))
	m.Pos = decodePosition(buf)
	m.COG = CourseOverGround(buf.Uint(12))
	m.TrueHeading = TrueHeading(buf.Uint(9))
	m.UTCSecond = TimeStamp(buf.Uint(6))
	m.SpecialManoeuvre = uint8(buf.Uint(2))
	m.Spare = uint8(buf.Uint(3))
	m.RAIM = flag(buf.Uint(1))
	m.RadioStatus = uint32(buf.Uint(19))
	return nil
}

func (m *PositionReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.NavStatus), 4)
	enc.WriteUint(uint64(uint8(m.RateOfTurn)), 8)
	enc.WriteUint(uint64(m.SOG), 10)
	enc.WriteBool(m.PositionAccuracy)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.COG), 12)
	enc.WriteUint(uint64(m.TrueHeading), 9)
	enc.WriteUint(uint64(m.UTCSecond), 6)
	enc.WriteUint(uint64(m.SpecialManoeuvre), 2)
	enc.WriteUint(uint64(m.Spare), 3)
	enc.WriteBool(m.RAIM)
	enc.WriteUint(uint64(m.RadioStatus), 19)
}
