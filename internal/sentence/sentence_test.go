package sentence

import (
	"errors"
	"math"
	"testing"

	"ais_relay/internal/ais"
)

const sample = "!AIVDM,1,1,,B,177KQJ5000G?tO`K>RA1wUbN0TKH,0*5C"

func TestParse(t *testing.T) {
	s, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Talker != "AI" || s.Own {
		t.Errorf("Talker = %q, Own = %v, want AI, false", s.Talker, s.Own)
	}
	if s.Channel != "B" {
		t.Errorf("Channel = %q, want B", s.Channel)
	}
	if s.Payload != "177KQJ5000G?tO`K>RA1wUbN0TKH" {
		t.Errorf("Payload = %q", s.Payload)
	}
	if s.FillBits != 0 || s.Bits() != 168 {
		t.Errorf("FillBits = %d, Bits() = %d, want 0, 168", s.FillBits, s.Bits())
	}
}

func TestParseTrailingNewline(t *testing.T) {
	if _, err := Parse(sample + "\r\n"); err != nil {
		t.Errorf("Parse with CRLF: %v", err)
	}
}

func TestParseDecodeEndToEnd(t *testing.T) {
	s, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	buf, err := s.BitBuffer()
	if err != nil {
		t.Fatalf("BitBuffer: %v", err)
	}
	msg, err := ais.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pr, ok := msg.(*ais.PositionReport)
	if !ok {
		t.Fatalf("decoded %T, want *ais.PositionReport", msg)
	}
	if pr.MessageType != 1 || pr.MMSI != 477553000 {
		t.Errorf("type %d mmsi %d, want 1, 477553000", pr.MessageType, pr.MMSI)
	}
	if pr.NavStatus != ais.StatusMoored || pr.SOG != 0 {
		t.Errorf("NavStatus = %d, SOG = %d, want moored, 0", pr.NavStatus, pr.SOG)
	}
	if pr.COG != 510 || pr.TrueHeading != 181 || pr.UTCSecond != 15 {
		t.Errorf("COG = %d, heading = %d, second = %d", pr.COG, pr.TrueHeading, pr.UTCSecond)
	}
	if lon := pr.Pos.Longitude(); math.Abs(lon-(-122.345833)) > 1e-5 {
		t.Errorf("Longitude() = %v, want -122.345833", lon)
	}
	if lat := pr.Pos.Latitude(); math.Abs(lat-47.582833) > 1e-5 {
		t.Errorf("Latitude() = %v, want 47.582833", lat)
	}
}

func TestParseVDO(t *testing.T) {
	body := "AIVDO,1,1,,A,177KQJ5000G?tO`K>RA1wUbN0TKH,0"
	line := "!" + body + "*" + checksumHex(body)
	s, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !s.Own {
		t.Error("VDO must set Own")
	}
}

func TestParseRejectsChecksumMismatch(t *testing.T) {
	bad := sample[:len(sample)-2] + "00"
	if _, err := Parse(bad); !errors.Is(err, ErrChecksum) {
		t.Errorf("err = %v, want ErrChecksum", err)
	}
}

func TestParseRejectsMultiFragment(t *testing.T) {
	body := "AIVDM,2,1,3,B,55P5TL01VIaAL@7WKO@mBplU@<PDhh000000001S;AJ::4A80?4i@E53,0"
	line := "!" + body + "*" + checksumHex(body)
	if _, err := Parse(line); !errors.Is(err, ErrMultiFragment) {
		t.Errorf("err = %v, want ErrMultiFragment", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, line := range []string{
		"",
		"$GPGGA,123519,4807.038,N*47",
		"!AIVDM,1,1,,B,177KQJ5000G?tO`K>RA1wUbN0TKH,0",    // no checksum
		"!AIVDM,1,1,,B,177KQJ5000G?tO`K>RA1wUbN0TKH,0*Z9", // bad hex
	} {
		if _, err := Parse(line); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): err = %v, want ErrSyntax", line, err)
		}
	}
}

func TestParseRejectsBadFillBits(t *testing.T) {
	body := "AIVDM,1,1,,B,177KQJ5000G?tO`K>RA1wUbN0TKH,6"
	line := "!" + body + "*" + checksumHex(body)
	if _, err := Parse(line); !errors.Is(err, ErrSyntax) {
		t.Errorf("err = %v, want ErrSyntax", err)
	}
}

func TestBuildParseRoundTrip(t *testing.T) {
	line := Build("AI", "A", "177KQJ5000G?tO`K>RA1wUbN0TKH", 168)
	s, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(Build(...)): %v", err)
	}
	if s.Payload != "177KQJ5000G?tO`K>RA1wUbN0TKH" || s.FillBits != 0 || s.Channel != "A" {
		t.Errorf("round trip produced %+v", s)
	}
	if s.String() != line {
		t.Errorf("String() = %q, want %q", s.String(), line)
	}
}

func TestBuildFillBits(t *testing.T) {
	// 312 bits in 52 armor characters needs 0 fill; 424 bits in 71 needs 2.
	line := Build("AI", "B", "0123456789012345678901234567890123456789012345678901234567890123456789w", 424)
	s, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.FillBits != 2 || s.Bits() != 424 {
		t.Errorf("FillBits = %d, Bits() = %d, want 2, 424", s.FillBits, s.Bits())
	}
}

func checksumHex(body string) string {
	var c byte
	for i := 0; i < len(body); i++ {
		c ^= body[i]
	}
	const hexdigits = "0123456789ABCDEF"
	return string([]byte{hexdigits[c>>4], hexdigits[c&0xF]})
}
