package ais

import "ais_relay/internal/sixbit"

// ChannelManagement is message type 22: a base station managing VHF
// channels for a region or for two addressed stations. 168 bits.
//
// The 70 area bits hold either two corner coordinates (broadcast form) or
// two 30-bit MMSIs with padding (addressed form, Addressed true). They are
// stored raw as coordinates; interpret them only after checking Addressed.
type ChannelManagement struct {
	Header
	Spare1    uint8          `json:"spare1"`     // 2 bits
	ChannelA  uint16         `json:"channel_a"`  // 12 bits
	ChannelB  uint16         `json:"channel_b"`  // 12 bits
	TxRxMode  uint8          `json:"tx_rx_mode"` // 4 bits
	Power     bool           `json:"power"`      // true = high power
	NorthEast CoarsePosition `json:"north_east"` // 18 + 17 bits
	SouthWest CoarsePosition `json:"south_west"` // 18 + 17 bits
	Addressed bool           `json:"addressed"`
	BandA     bool           `json:"band_a"` // true = 12.5 kHz
	BandB     bool           `json:"band_b"`
	ZoneSize  uint8          `json:"zone_size"` // 3 bits, transitional zone nm
	Spare2    uint32         `json:"spare2"`    // 23 bits
}

func (m *ChannelManagement) decodeBody(buf *sixbit.Buffer) error {
	m.Spare1 = uint8(buf.Uint(2))
	m.ChannelA = uint16(buf.Uint(12))
	m.ChannelB = uint16(buf.Uint(12))
	m.TxRxMode = uint8(buf.Uint(4))
	m.Power = flag(buf.Uint(1))
	m.NorthEast = decodeCoarsePosition(buf)
	m.SouthWest = decodeCoarsePosition(buf)
	m.Addressed = flag(buf.Uint(1))
	m.BandA = flag(buf.Uint(1))
	m.BandB = flag(buf.Uint(1))
	m.ZoneSize = uint8(buf.Uint(3))
	m.Spare2 = uint32(buf.Uint(23))
	return nil
}

func (m *ChannelManagement) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare1), 2)
	enc.WriteUint(uint64(m.ChannelA), 12)
	enc.WriteUint(uint64(m.ChannelB), 12)
	enc.WriteUint(uint64(m.TxRxMode), 4)
	enc.WriteBool(m.Power)
	m.NorthEast.encode(enc)
	m.SouthWest.encode(enc)
	enc.WriteBool(m.Addressed)
	enc.WriteBool(m.BandA)
	enc.WriteBool(m.BandB)
	enc.WriteUint(uint64(m.ZoneSize), 3)
	enc.WriteUint(uint64(m.Spare2), 23)
}

// GroupAssignmentCommand is message type 23: a base station assigning
// reporting behaviour to all stations of a given type in a region.
// 160 bits.
type GroupAssignmentCommand struct {
	Header
	Spare1            uint8          `json:"spare1"` // 2 bits
	NorthEast         CoarsePosition `json:"north_east"`
	SouthWest         CoarsePosition `json:"south_west"`
	StationType       uint8          `json:"station_type"`       // 4 bits
	ShipType          uint8          `json:"ship_type"`          // 8 bits
	Spare2            uint32         `json:"spare2"`             // 22 bits
	TxRxMode          uint8          `json:"tx_rx_mode"`         // 2 bits
	ReportingInterval uint8          `json:"reporting_interval"` // 4 bits
	QuietTime         uint8          `json:"quiet_time"`         // 4 bits, minutes
	Spare3            uint8          `json:"spare3"`             // 6 bits
}

func (m *GroupAssignmentCommand) decodeBody(buf *sixbit.Buffer) error {
	m.Spare1 = uint8(buf.Uint(2))
	m.NorthEast = decodeCoarsePosition(buf)
	m.SouthWest = decodeCoarsePosition(buf)
	m.StationType = uint8(buf.Uint(4))
	m.ShipType = uint8(buf.Uint(8))
	m.Spare2 = uint32(buf.Uint(22))
	m.TxRxMode = uint8(buf.Uint(2))
	m.ReportingInterval = uint8(buf.Uint(4))
	m.QuietTime = uint8(buf.Uint(4))
	m.Spare3 = uint8(buf.Uint(6))
	return nil
}

func (m *GroupAssignmentCommand) encodeBody(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(m.Spare1), 2)
	m.NorthEast.encode(enc)
	m.SouthWest.encode(enc)
	enc.WriteUint(uint64(m.StationType), 4)
	enc.WriteUint(uint64(m.ShipType), 8)
	enc.WriteUint(uint64(m.Spare2), 22)
	enc.WriteUint(uint64(m.TxRxMode), 2)
	enc.WriteUint(uint64(m.ReportingInterval), 4)
	enc.WriteUint(uint64(m.QuietTime), 4)
	enc.WriteUint(uint64(m.Spare3), 6)
}
