package ais

import (
	"reflect"
	"testing"

	"ais_relay/internal/sixbit"
)

// Every supported type: a validly populated record must encode to exactly
// the mandated bit length and decode back field for field, including
// sentinels and zeroed spares.
func TestRoundTripAllTypes(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		bits int
	}{
		{
			name: "type 1 position report",
			bits: 168,
			msg: &PositionReport{
				Header:           Header{MessageType: 1, Repeat: 0, MMSI: 366123456},
				NavStatus:        StatusUnderWayEngine,
				RateOfTurn:       -12,
				SOG:              137,
				PositionAccuracy: true,
				Pos:              PositionFromDegrees(-122.41, 37.77),
				COG:              2215,
				TrueHeading:      220,
				UTCSecond:        41,
				RadioStatus:      0x1234,
			},
		},
		{
			name: "type 3 special position report",
			bits: 168,
			msg: &PositionReport{
				Header:      Header{MessageType: 3, MMSI: 244660123},
				NavStatus:   StatusMoored,
				RateOfTurn:  -128, // not available
				SOG:         SpeedNotAvailable,
				Pos:         Position{RawLongitude: LongitudeNotAvailable, RawLatitude: LatitudeNotAvailable},
				COG:         CourseNotAvailable,
				TrueHeading: HeadingNotAvailable,
				UTCSecond:   SecondNotAvailable,
			},
		},
		{
			name: "type 4 base station report",
			bits: 168,
			msg: &BaseStationReport{
				Header:           Header{MessageType: 4, MMSI: 3669712},
				Year:             2024,
				Month:            11,
				Day:              30,
				Hour:             17,
				Minute:           5,
				Second:           59,
				PositionAccuracy: true,
				Pos:              PositionFromDegrees(4.42, 51.9),
				FixType:          FixGPS,
				RAIM:             true,
				RadioStatus:      0x7FFFF,
			},
		},
		{
			name: "type 5 static and voyage data",
			bits: 424,
			msg: &StaticAndVoyageData{
				Header:      Header{MessageType: 5, MMSI: 244660123},
				AISVersion:  1,
				IMONumber:   9311581,
				CallSign:    "PBKL",
				ShipName:    "EVER GIVEN",
				ShipType:    70,
				Dim:         Dimension{Bow: 200, Stern: 200, Port: 29, Starboard: 30},
				FixType:     FixGPS,
				ETAMonth:    3,
				ETADay:      23,
				ETAHour:     14,
				ETAMinute:   30,
				Draught:     145,
				Destination: "ROTTERDAM",
				DTE:         false,
				Spare:       0,
			},
		},
		{
			name: "type 6 addressed binary message",
			bits: 88 + 16,
			msg: &AddressedBinaryMessage{
				Header:   Header{MessageType: 6, MMSI: 265547250},
				SeqNum:   1,
				DestMMSI: 276008270,
				DAC:      1,
				FI:       12,
				Data:     BinaryData{NumBits: 16, Data: []byte{0xAB, 0xCD}},
			},
		},
		{
			name: "type 7 binary acknowledge",
			bits: 72 + 32,
			msg: &BinaryAcknowledge{
				Header: Header{MessageType: 7, MMSI: 265547250},
				Acks: []Acknowledgement{
					{MMSI: 276008270, SeqNum: 1},
					{MMSI: 211217560, SeqNum: 3},
				},
			},
		},
		{
			name: "type 8 binary broadcast",
			bits: 56 + 24,
			msg: &BinaryBroadcastMessage{
				Header: Header{MessageType: 8, MMSI: 366999712},
				DAC:    366,
				FI:     22,
				Data:   BinaryData{NumBits: 24, Data: []byte{0x01, 0x02, 0x03}},
			},
		},
		{
			name: "type 9 SAR aircraft report",
			bits: 168,
			msg: &SARAircraftReport{
				Header:      Header{MessageType: 9, MMSI: 111232511},
				Altitude:    303,
				SOG:         122,
				Pos:         PositionFromDegrees(-6.27, 58.14),
				COG:         1100,
				UTCSecond:   15,
				DTE:         true,
				RAIM:        false,
				RadioStatus: 0x2E19,
			},
		},
		{
			name: "type 10 UTC/date inquiry",
			bits: 72,
			msg: &UTCDateInquiry{
				Header:   Header{MessageType: 10, MMSI: 366814480},
				DestMMSI: 3669712,
			},
		},
		{
			name: "type 11 UTC/date response",
			bits: 168,
			msg: &BaseStationReport{
				Header: Header{MessageType: 11, MMSI: 366814480},
				Year:   2023,
				Month:  5,
				Day:    14,
				Hour:   11,
				Minute: 32,
				Second: 0,
				Pos:    PositionFromDegrees(-94.40, 29.54),
			},
		},
		{
			name: "type 12 addressed safety message",
			bits: 72 + 13*6,
			msg: &AddressedSafetyMessage{
				Header:     Header{MessageType: 12, MMSI: 271002099},
				SeqNum:     0,
				DestMMSI:   271002111,
				Retransmit: true,
				Text:       "MSG FROM 2711",
			},
		},
		{
			name: "type 13 safety acknowledge",
			bits: 72,
			msg: &BinaryAcknowledge{
				Header: Header{MessageType: 13, MMSI: 211378120},
				Acks:   []Acknowledgement{{MMSI: 211217560}},
			},
		},
		{
			name: "type 14 safety broadcast",
			bits: 40 + 14*6,
			msg: &SafetyBroadcastMessage{
				Header: Header{MessageType: 14, MMSI: 271000000},
				Text:   "RCVD YOUR TEST",
			},
		},
		{
			name: "type 15 interrogation, one request",
			bits: 88,
			msg: &Interrogation{
				Header:   Header{MessageType: 15, MMSI: 3669702},
				Requests: []InterrogationRequest{{DestMMSI: 367014320, MessageType: 3, SlotOffset: 516}},
			},
		},
		{
			name: "type 15 interrogation, two requests",
			bits: 110,
			msg: &Interrogation{
				Header: Header{MessageType: 15, MMSI: 3669702},
				Requests: []InterrogationRequest{
					{DestMMSI: 367014320, MessageType: 3, SlotOffset: 516},
					{DestMMSI: 367014320, MessageType: 5, SlotOffset: 617},
				},
			},
		},
		{
			name: "type 15 interrogation, second station",
			bits: 160,
			msg: &Interrogation{
				Header: Header{MessageType: 15, MMSI: 3669702},
				Requests: []InterrogationRequest{
					{DestMMSI: 367014320, MessageType: 3, SlotOffset: 516},
					{DestMMSI: 367014320, MessageType: 5, SlotOffset: 617},
					{DestMMSI: 338091445, MessageType: 18, SlotOffset: 1024},
				},
			},
		},
		{
			name: "type 16 assigned mode, one assignment",
			bits: 96,
			msg: &AssignedModeCommand{
				Header:      Header{MessageType: 16, MMSI: 2053501},
				Assignments: []Assignment{{DestMMSI: 224251000, SlotOffset: 200, Increment: 0}},
			},
		},
		{
			name: "type 16 assigned mode, two assignments",
			bits: 144,
			msg: &AssignedModeCommand{
				Header: Header{MessageType: 16, MMSI: 2053501},
				Assignments: []Assignment{
					{DestMMSI: 224251000, SlotOffset: 200, Increment: 0},
					{DestMMSI: 235009802, SlotOffset: 1717, Increment: 153},
				},
			},
		},
		{
			name: "type 17 GNSS broadcast",
			bits: 80 + 40,
			msg: &GNSSBroadcastMessage{
				Header: Header{MessageType: 17, MMSI: 2734450},
				Pos:    CoarsePosition{RawLongitude: 10802, RawLatitude: 35462},
				Data:   BinaryData{NumBits: 40, Data: []byte{0x7C, 0x05, 0xE0, 0x01, 0xFF}},
			},
		},
		{
			name: "type 18 standard class B report",
			bits: 168,
			msg: &StandardClassBReport{
				Header:      Header{MessageType: 18, MMSI: 338087471},
				SOG:         1,
				Pos:         PositionFromDegrees(-74.07, 40.68),
				COG:         799,
				TrueHeading: HeadingNotAvailable,
				UTCSecond:   49,
				CSUnit:      true,
				Band:        true,
				Message22:   true,
				CommStateCS: true,
				RadioStatus: 0x63110,
			},
		},
		{
			name: "type 20 data link management",
			bits: 100,
			msg: &DataLinkManagement{
				Header: Header{MessageType: 20, MMSI: 2243302},
				Reservations: []SlotReservation{
					{Offset: 200, Slots: 5, Timeout: 7, Increment: 750},
					{Offset: 1400, Slots: 1, Timeout: 7, Increment: 0},
				},
			},
		},
		{
			name: "type 21 aids-to-navigation report",
			bits: 272 + 8*6,
			msg: &AidsToNavigationReport{
				Header:        Header{MessageType: 21, MMSI: 992351000},
				AtoNType:      14,
				Name:          "CHANNEL MARKER 5",
				Pos:           PositionFromDegrees(1.28, 51.13),
				Dim:           Dimension{Bow: 1, Stern: 1, Port: 1, Starboard: 1},
				FixType:       FixSurveyed,
				UTCSecond:     SecondNotAvailable,
				Virtual:       false,
				NameExtension: "EXTENDED",
			},
		},
		{
			name: "type 22 channel management",
			bits: 168,
			msg: &ChannelManagement{
				Header:    Header{MessageType: 22, MMSI: 3160097},
				ChannelA:  2087,
				ChannelB:  2088,
				TxRxMode:  0,
				Power:     true,
				NorthEast: CoarsePosition{RawLongitude: 106400, RawLatitude: 24480},
				SouthWest: CoarsePosition{RawLongitude: 104320, RawLatitude: 23240},
				ZoneSize:  2,
			},
		},
		{
			name: "type 23 group assignment",
			bits: 160,
			msg: &GroupAssignmentCommand{
				Header:            Header{MessageType: 23, MMSI: 2268120},
				NorthEast:         CoarsePosition{RawLongitude: 1747, RawLatitude: 30210},
				SouthWest:         CoarsePosition{RawLongitude: 1420, RawLatitude: 30154},
				StationType:       6,
				ShipType:          0,
				TxRxMode:          0,
				ReportingInterval: 9,
				QuietTime:         0,
			},
		},
		{
			name: "type 24 static data report part A",
			bits: 160,
			msg: &StaticDataReport{
				Header:     Header{MessageType: 24, MMSI: 338091445},
				PartNumber: PartA,
				ShipName:   "HMS ANTELOPE",
			},
		},
		{
			name: "type 24 static data report part B",
			bits: 168,
			msg: &StaticDataReport{
				Header:     Header{MessageType: 24, MMSI: 338091445},
				PartNumber: PartB,
				ShipType:   36,
				VendorID:   "SRT",
				CallSign:   "WDE5328",
				Dim:        Dimension{Bow: 5, Stern: 4, Port: 3, Starboard: 2},
			},
		},
		{
			name: "type 25 single slot binary, addressed structured",
			bits: 40 + 32 + 16 + 24,
			msg: &SingleSlotBinaryMessage{
				Header:     Header{MessageType: 25, MMSI: 440006460},
				Addressed:  true,
				Structured: true,
				DestMMSI:   134218384,
				AppID:      0x5E02,
				Data:       BinaryData{NumBits: 24, Data: []byte{0xDE, 0xAD, 0x42}},
			},
		},
		{
			name: "type 26 multi slot binary with comm state",
			bits: 60 + 32,
			msg: &MultiSlotBinaryMessage{
				Header:      Header{MessageType: 26, MMSI: 602219999},
				Data:        BinaryData{NumBits: 32, Data: []byte{0x0A, 0x0B, 0x0C, 0x0D}},
				CommStateCS: false,
				RadioStatus: 0x60004,
			},
		},
		{
			name: "type 27 long range broadcast",
			bits: 96,
			msg: &LongRangeBroadcastMessage{
				Header:           Header{MessageType: 27, MMSI: 236091959},
				PositionAccuracy: false,
				RAIM:             false,
				NavStatus:        StatusNotDefined,
				Pos:              CoarsePosition{RawLongitude: 0x1A7CE, RawLatitude: 0xD152},
				SOG:              LongRangeSpeedNotAvailable,
				COG:              LongRangeCourseNotAvailable,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := Encode(tc.msg)
			if enc.Bits() != tc.bits {
				t.Fatalf("encoded length = %d bits, want %d", enc.Bits(), tc.bits)
			}
			got, err := Decode(sixbit.NewBuffer(enc.Bytes(), enc.Bits()))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.msg) {
				t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, tc.msg)
			}
		})
	}
}

// Armor text out of Encode must decode back through DecodeArmor.
func TestArmorRoundTrip(t *testing.T) {
	msg := &PositionReport{
		Header:    Header{MessageType: 2, MMSI: 356302000},
		NavStatus: StatusAtAnchor,
		SOG:       SpeedNotAvailable,
		Pos:       PositionFromDegrees(4.0, 52.0),
		COG:       CourseNotAvailable,
		UTCSecond: SecondInoperative,
	}
	payload, bits := EncodeArmor(msg)
	if bits != 168 {
		t.Fatalf("bits = %d, want 168", bits)
	}
	fill := 6*len(payload) - bits
	got, err := DecodeArmor(payload, fill)
	if err != nil {
		t.Fatalf("DecodeArmor: %v", err)
	}
	if !reflect.DeepEqual(got, msg) {
		t.Errorf("armor round trip mismatch:\n got  %#v\n want %#v", got, msg)
	}
}
