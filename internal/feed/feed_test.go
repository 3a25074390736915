package feed

import (
	"encoding/json"
	"testing"
	"time"

	"ais_relay/internal/ais"
)

func TestSubject(t *testing.T) {
	if got := subject("ais.msg", 5); got != "ais.msg.5" {
		t.Errorf("subject = %q, want ais.msg.5", got)
	}
	if got := subject("ais.msg", 27); got != "ais.msg.27" {
		t.Errorf("subject = %q, want ais.msg.27", got)
	}
}

func TestEnvelopeJSON(t *testing.T) {
	at := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	env := Envelope{
		Sentence:   "!AIVDM,1,1,,B,177KQJ5000G?tO`K>RA1wUbN0TKH,0*5C",
		Channel:    "B",
		ReceivedAt: at,
		Message: &ais.PositionReport{
			Header:    ais.Header{MessageType: 1, MMSI: 477553000},
			NavStatus: ais.StatusMoored,
		},
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Sentence string `json:"sentence"`
		Channel  string `json:"channel"`
		Message  struct {
			Type      uint8  `json:"type"`
			MMSI      uint32 `json:"mmsi"`
			NavStatus uint8  `json:"nav_status"`
		} `json:"message"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Channel != "B" || decoded.Message.Type != 1 || decoded.Message.MMSI != 477553000 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Message.NavStatus != uint8(ais.StatusMoored) {
		t.Errorf("NavStatus = %d, want %d", decoded.Message.NavStatus, ais.StatusMoored)
	}
}
