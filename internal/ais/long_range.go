package ais

import "ais_relay/internal/sixbit"

// LongRangeBroadcastMessage is message type 27, the long-range (satellite)
// position report. 96 bits, with coarse 1/10-minute position, speed in
// whole knots (63 = not available) and course in whole degrees (511 = not
// available).
type LongRangeBroadcastMessage struct {
	Header
	PositionAccuracy bool             `json:"position_accuracy"`
	RAIM             bool             `json:"raim"`
	NavStatus        NavigationStatus `json:"nav_status"`       // 4 bits
	Pos              CoarsePosition   `json:"pos"`              // 18 + 17 bits
	SOG              uint8            `json:"sog"`              // 6 bits, knots
	COG              uint16           `json:"cog"`              // 9 bits, degrees
	PositionLatency  bool             `json:"position_latency"` // true = older than 5 s
	Spare            uint8            `json:"spare"`            // 1 bit
}

// Speed/course sentinels specific to the coarse long-range fields.
const (
	LongRangeSpeedNotAvailable  uint8  = 63
	LongRangeCourseNotAvailable uint16 = 511
)

func (m *LongRangeBroadcastMessage) decodeBody(buf *sixbit.Buffer) error {
	m.PositionAccuracy = flag(buf.Uint(1))
	m.RAIM = flag(buf.Uint(1))
	m.NavStatus = NavigationStatus(buf.Uint(4))
	m.Pos = decodeCoarsePosition(buf)
	m.SOG = uint8(buf.Uint(6))
	m.COG = uint16(buf.Uint(9))
	m.PositionLatency = flag(buf.Uint(1))
	m.Spare = uint8(buf.Uint(1))
	return nil
}

func (m *LongRangeBroadcastMessage) encodeBody(enc *sixbit.Encoder) {
	enc.WriteBool(m.PositionAccuracy)
	enc.WriteBool(m.RAIM)
	enc.WriteUint(uint64(m.NavStatus), 4)
	m.Pos.encode(enc)
	enc.WriteUint(uint64(m.SOG), 6)
	enc.WriteUint(uint64(m.COG), 9)
	enc.WriteBool(m.PositionLatency)
	enc.WriteUint(uint64(m.Spare), 1)
}
