package ais

import "ais_relay/internal/sixbit"

// Typed scalar fields. Raw on-wire values are stored exactly as
// transmitted so a decode-encode round trip is bit-identical; the methods
// interpret the reserved sentinel values.

// SpeedOverGround is a speed in 1/10 knot steps, 10 bits on the wire.
// 1023 means not available; 1022 means 102.2 knots or more.
type SpeedOverGround uint16

const (
	SpeedNotAvailable SpeedOverGround = 1023
	SpeedMaximum      SpeedOverGround = 1022
)

// Available reports whether the field carries a measurement.
func (s SpeedOverGround) Available() bool { return s != SpeedNotAvailable }

// AtMaximum reports the "102.2 knots or more" saturation value.
func (s SpeedOverGround) AtMaximum() bool { return s == SpeedMaximum }

// Knots returns the speed in knots. Only meaningful when Available.
func (s SpeedOverGround) Knots() float64 { return float64(s) / 10 }

// CourseOverGround is a course in 1/10 degree steps, 12 bits on the wire.
// 3600 means not available.
type CourseOverGround uint16

const CourseNotAvailable CourseOverGround = 3600

// Available reports whether the field carries a measurement.
func (c CourseOverGround) Available() bool { return c != CourseNotAvailable }

// Degrees returns the course in degrees. Only meaningful when Available.
func (c CourseOverGround) Degrees() float64 { return float64(c) / 10 }

// TrueHeading is a heading in whole degrees, 9 bits on the wire.
// 511 means not available.
type TrueHeading uint16

const HeadingNotAvailable TrueHeading = 511

// Available reports whether the field carries a measurement.
func (h TrueHeading) Available() bool { return h != HeadingNotAvailable }

// TimeStamp is the UTC second when a report was generated, 6 bits on the
// wire. 0-59 are seconds; 60-63 carry four distinct reserved meanings.
type TimeStamp uint8

const (
	// SecondNotAvailable means no time stamp is available (default).
	SecondNotAvailable TimeStamp = 60
	// SecondManualInput means the positioning system is in manual input mode.
	SecondManualInput TimeStamp = 61
	// SecondEstimated means the position is a dead-reckoning estimate.
	SecondEstimated TimeStamp = 62
	// SecondInoperative means the positioning system is inoperative.
	SecondInoperative TimeStamp = 63
)

// Valid reports whether the field is an actual second (0-59) rather than
// one of the reserved meanings.
func (t TimeStamp) Valid() bool { return t < 60 }

// PositionFixType is the type of electronic position fixing device,
// 4 bits on the wire. Values 9-14 are reserved.
type PositionFixType uint8

const (
	FixUndefined     PositionFixType = 0
	FixGPS           PositionFixType = 1
	FixGLONASS       PositionFixType = 2
	FixGPSGLONASS    PositionFixType = 3
	FixLoranC        PositionFixType = 4
	FixChayka        PositionFixType = 5
	FixIntegratedNav PositionFixType = 6
	FixSurveyed      PositionFixType = 7
	FixGalileo       PositionFixType = 8
	FixInternalGNSS  PositionFixType = 15
)

// NavigationStatus is the navigational status from class A position
// reports and the long-range broadcast, 4 bits on the wire.
type NavigationStatus uint8

const (
	StatusUnderWayEngine     NavigationStatus = 0
	StatusAtAnchor           NavigationStatus = 1
	StatusNotUnderCommand    NavigationStatus = 2
	StatusRestricted         NavigationStatus = 3
	StatusConstrainedDraught NavigationStatus = 4
	StatusMoored             NavigationStatus = 5
	StatusAground            NavigationStatus = 6
	StatusFishing            NavigationStatus = 7
	StatusUnderWaySailing    NavigationStatus = 8
	StatusAISSARTActive      NavigationStatus = 14
	StatusNotDefined         NavigationStatus = 15
)

// Dimension is the reference-point-to-hull distances reported by static
// data messages: bow and stern are 9 bits each, port and starboard 6 bits.
type Dimension struct {
	Bow       uint16 `json:"bow"`
	Stern     uint16 `json:"stern"`
	Port      uint8  `json:"port"`
	Starboard uint8  `json:"starboard"`
}

func decodeDimension(buf *sixbit.Buffer) Dimension {
	return Dimension{
		Bow:       uint16(buf.Uint(9)),
		Stern:     uint16(buf.Uint(9)),
		Port:      uint8(buf.Uint(6)),
		Starboard: uint8(buf.Uint(6)),
	}
}

func (d Dimension) encode(enc *sixbit.Encoder) {
	enc.WriteUint(uint64(d.Bow), 9)
	enc.WriteUint(uint64(d.Stern), 9)
	enc.WriteUint(uint64(d.Port), 6)
	enc.WriteUint(uint64(d.Starboard), 6)
}
