package ais

import "ais_relay/internal/sixbit"

// Raw sentinel values meaning "position not available". Fine positions are
// 1/10000 minute fixed point (181 deg longitude, 91 deg latitude); coarse
// positions are 1/10 minute.
const (
	LongitudeNotAvailable uint32 = 0x6791AC0 // 181 * 600000
	LatitudeNotAvailable  uint32 = 0x3412140 // 91 * 600000

	CoarseLongitudeNotAvailable uint32 = 108600 // 181 * 600
	CoarseLatitudeNotAvailable  uint32 = 54600  // 91 * 600
)

// Position is a fine-resolution position: 28-bit longitude and 27-bit
// latitude in 1/10000 minute, two's complement. The raw fields hold the
// values exactly as transmitted, so decode followed by encode reproduces
// the original bits, sentinels included. Degree conversion is a view, not
// part of the wire path.
type Position struct {
	RawLongitude uint32 `json:"raw_longitude"`
	RawLatitude  uint32 `json:"raw_latitude"`
}

// PositionFromDegrees builds a Position from decimal degrees, for
// programmatic message construction.
func PositionFromDegrees(lon, lat float64) Position {
	return Position{
		RawLongitude: uint32(int32(lon*600000)) & 0xFFFFFFF,
		RawLatitude:  uint32(int32(lat*600000)) & 0x7FFFFFF,
	}
}

// Available reports whether both coordinates carry real values.
func (p Position) Available() bool {
	return p.RawLongitude != LongitudeNotAvailable && p.RawLatitude != LatitudeNotAvailable
}

// Longitude returns the longitude in decimal degrees, east positive.
func (p Position) Longitude() float64 {
	return float64(signExtend(uint64(p.RawLongitude), 28)) / 600000
}

// Latitude returns the latitude in decimal degrees, north positive.
func (p Position) Latitude() float64 {
	return float64(signExtend(uint64(p.RawLatitude), 27)) / 600000
}

func decodePosition(buf *sixbit.Buffer) Position {
	return Position{
		RawLongitude: uint32(buf.Uint(28)),
		RawLatitude:  uint32(buf.Uint(27)),
	}
}

func (p Position) encode(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(p.RawLongitude), 28)
	enc.WriteUint(uint64(p.RawLatitude), 27)
}

// CoarsePosition is the low-resolution position used by the GNSS broadcast
// (type 17) and the long-range broadcast (type 27): 18-bit longitude and
// 17-bit latitude in 1/10 minute.
type CoarsePosition struct {
	RawLongitude uint32 `json:"raw_longitude"`
	RawLatitude  uint32 `json:"raw_latitude"`
}

// Available reports whether both coordinates carry real values.
func (p CoarsePosition) Available() bool {
	return p.RawLongitude != CoarseLongitudeNotAvailable && p.RawLatitude != CoarseLatitudeNotAvailable
}

// Longitude returns the longitude in decimal degrees, east positive.
func (p CoarsePosition) Longitude() float64 {
	return float64(signExtend(uint64(p.RawLongitude), 18)) / 600
}

// Latitude returns the latitude in decimal degrees, north positive.
func (p CoarsePosition) Latitude() float64 {
	return float64(signExtend(uint64(p.RawLatitude), 17)) / 600
}

func decodeCoarsePosition(buf *sixbit.Buffer) CoarsePosition {
	return CoarsePosition{
		RawLongitude: uint32(buf.Uint(18)),
		RawLatitude:  uint32(buf.Uint(17)),
	}
}

func (p CoarsePosition) encode(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(p.RawLongitude), 18)
	enc.WriteUint(uint64(p.RawLatitude), 17)
}

func signExtend(v uint64, bits int) int64 {
	return int64(v<<(64-bits)) >> (64 - bits)
}
