package storage

import (
	"strings"
	"testing"
	"time"

	"ais_relay/internal/ais"
)

func openTestArchive(t *testing.T) *ArchiveDB {
	t.Helper()
	db, err := OpenArchive(":memory:")
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestArchiveInsertAndQuery(t *testing.T) {
	db := openTestArchive(t)

	msg := &ais.PositionReport{
		Header:    ais.Header{MessageType: 1, MMSI: 477553000},
		NavStatus: ais.StatusMoored,
		Pos:       ais.PositionFromDegrees(-122.34, 47.58),
		SOG:       0,
		COG:       510,
	}
	raw := "!AIVDM,1,1,,B,177KQJ5000G?tO`K>RA1wUbN0TKH,0*5C"
	at := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	id, err := db.Insert(raw, "B", msg, at)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == 0 {
		t.Error("Insert returned id 0")
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}

	got, err := db.ByMMSI(477553000, 10)
	if err != nil {
		t.Fatalf("ByMMSI: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ByMMSI returned %d rows, want 1", len(got))
	}
	s := got[0]
	if s.MMSI != 477553000 || s.MessageType != 1 || s.Channel != "B" || s.Raw != raw {
		t.Errorf("row = %+v", s)
	}
	if !s.ReceivedAt.Equal(at) {
		t.Errorf("ReceivedAt = %v, want %v", s.ReceivedAt, at)
	}
	if !strings.Contains(s.DecodedJSON, `"mmsi":477553000`) {
		t.Errorf("DecodedJSON = %s", s.DecodedJSON)
	}
}

func TestArchiveByMMSIOrdering(t *testing.T) {
	db := openTestArchive(t)

	at := time.Now()
	for i := 0; i < 3; i++ {
		msg := &ais.UTCDateInquiry{
			Header:   ais.Header{MessageType: 10, MMSI: 3669712},
			DestMMSI: uint32(i),
		}
		if _, err := db.Insert("!AIVDM,...", "A", msg, at.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	got, err := db.ByMMSI(3669712, 2)
	if err != nil {
		t.Fatalf("ByMMSI: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].ID <= got[1].ID {
		t.Errorf("rows not newest first: ids %d, %d", got[0].ID, got[1].ID)
	}
}

func TestPositionRowFromMessage(t *testing.T) {
	at := time.Now()

	pr := &ais.PositionReport{
		Header:      ais.Header{MessageType: 1, MMSI: 477553000},
		NavStatus:   ais.StatusMoored,
		Pos:         ais.PositionFromDegrees(-122.34, 47.58),
		SOG:         137,
		COG:         510,
		TrueHeading: 181,
	}
	row, ok := PositionRowFromMessage(pr, at)
	if !ok {
		t.Fatal("position report must yield a row")
	}
	if row.MMSI != 477553000 || row.MessageType != 1 || !row.Available {
		t.Errorf("row = %+v", row)
	}
	if row.SOG != 137 || row.COG != 510 || row.Heading != 181 || row.NavStatus != uint8(ais.StatusMoored) {
		t.Errorf("row = %+v", row)
	}

	// Long-range values come in whole knots/degrees and are scaled to
	// tenths; sentinels map onto the fine-report sentinels.
	lr := &ais.LongRangeBroadcastMessage{
		Header: ais.Header{MessageType: 27, MMSI: 236091959},
		Pos:    ais.CoarsePosition{RawLongitude: 600, RawLatitude: 300},
		SOG:    12,
		COG:    ais.LongRangeCourseNotAvailable,
	}
	row, ok = PositionRowFromMessage(lr, at)
	if !ok {
		t.Fatal("long-range report must yield a row")
	}
	if row.SOG != 120 {
		t.Errorf("SOG = %d, want 120", row.SOG)
	}
	if row.COG != uint16(ais.CourseNotAvailable) {
		t.Errorf("COG = %d, want %d", row.COG, ais.CourseNotAvailable)
	}
	if row.Longitude != 1 || row.Latitude != 0.5 {
		t.Errorf("degrees = %v, %v, want 1, 0.5", row.Longitude, row.Latitude)
	}

	// No position in an acknowledge.
	ack := &ais.BinaryAcknowledge{Header: ais.Header{MessageType: 7, MMSI: 1}}
	if _, ok := PositionRowFromMessage(ack, at); ok {
		t.Error("acknowledge must not yield a row")
	}
}
