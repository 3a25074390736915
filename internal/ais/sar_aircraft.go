package ais

import "ais_relay/internal/sixbit"

// SARAircraftReport is message type 9, the position report for search and
// rescue aircraft. 168 bits. Altitude is in metres, 4095 = not available,
// 4094 = 4094 m or higher; speed is in whole knots for aircraft.
type SARAircraftReport struct {
	Header
	Altitude         uint16           `json:"altitude"` // 12 bits
	SOG              SpeedOverGround  `json:"sog"`      // 10 bits, whole knots here
	PositionAccuracy bool             `json:"position_accuracy"`
	Pos              Position         `json:"pos"`
	COG              CourseOverGround `json:"cog"`
	UTCSecond        TimeStamp        `json:"utc_second"`
	Regional         uint8            `json:"regional"` // 8 bits, regional reserved
	DTE              bool             `json:"dte"`      // true = not ready
	Spare            uint8            `json:"spare"`    // 3 bits
	Assigned         bool             `json:"assigned"`
	RAIM             bool             `json:"raim"`
	CommStateCS      bool             `json:"comm_state_cs"` // comm state selector
	RadioStatus      uint32           `json:"radio_status"`  // 19 bits, raw comm state
}

func (m *SARAircraftReport) decodeBody(buf *sixbit.Buffer) error {
	m.Altitude = uint16(buf.Uint(12))
	m.SOG = SpeedOverGround(buf.Uint(10))
	m.PositionAccuracy = flag(buf.Uint(1))
	m.Pos = decodePosition(buf)
	m.COG = CourseOverGround(buf.Uint(12))
	m.UTCSecond = TimeStamp(buf.Uint(6))
	m.Regional = uint8(buf.Uint(8))
	m.DTE = flag(buf.Uint(1))
	m.Spare = uint8(buf.Uint(3))
	m.Assigned = flag(buf.Uint(1))
	m.RAIM = flag(buf.Uint(1))
	m.CommStateCS = flag(buf.Uint(1))
	m.RadioStatus = uint32(buf.Uint(19))
	return nil
}

func (m *SARAircraftReport) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Altitude), 12)
	enc.WriteUint(uint64(m.SOG), 10)
	enc.WriteBool(m.PositionAccuracy)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.COG), 12)
	enc.WriteUint(uint64(m.UTCSecond), 6)
	enc.WriteUint(uint64(m.Regional), 8)
	enc.WriteBool(m.DTE)
	enc.WriteUint(uint64(m.Spare), 3)
	enc.WriteBool(m.Assigned)
	enc.WriteBool(m.RAIM)
	enc.WriteBool(m.CommStateCS)
	enc.WriteUint(uint64(m.RadioStatus), 19)
}
