package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ais_relay/internal/storage"
)

// mockStore implements VesselStore and TrackStore for testing.
type mockStore struct {
	vessels map[uint32]storage.Vessel
	tracks  map[uint32][]storage.PositionRow
}

func newMockStore() *mockStore {
	return &mockStore{
		vessels: make(map[uint32]storage.Vessel),
		tracks:  make(map[uint32][]storage.PositionRow),
	}
}

func (m *mockStore) GetVessel(_ context.Context, mmsi uint32) (*storage.Vessel, error) {
	if v, ok := m.vessels[mmsi]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *mockStore) ListVessels(_ context.Context, limit int) ([]storage.Vessel, error) {
	var out []storage.Vessel
	for _, v := range m.vessels {
		if len(out) == limit {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockStore) Track(_ context.Context, mmsi uint32, limit int) ([]storage.PositionRow, error) {
	track := m.tracks[mmsi]
	if len(track) > limit {
		track = track[:limit]
	}
	return track, nil
}

func TestHealthEndpoint(t *testing.T) {
	server := NewFleetServer(newMockStore(), nil, Config{Port: 8081})
	router := server.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestGetVessel(t *testing.T) {
	store := newMockStore()
	store.vessels[244660123] = storage.Vessel{
		MMSI:     244660123,
		Name:     "EVER GIVEN",
		ShipType: 70,
		LastSeen: time.Now(),
	}
	router := NewFleetServer(store, nil, Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/vessels/244660123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var v storage.Vessel
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if v.MMSI != 244660123 || v.Name != "EVER GIVEN" {
		t.Errorf("vessel = %+v", v)
	}
}

func TestGetVesselNotFound(t *testing.T) {
	router := NewFleetServer(newMockStore(), nil, Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/vessels/123456789", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestGetVesselBadMMSI(t *testing.T) {
	router := NewFleetServer(newMockStore(), nil, Config{}).Router()

	for _, path := range []string{"/vessels/notanumber", "/vessels/0", "/vessels/99999999999"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", path, rec.Code)
		}
	}
}

func TestListVessels(t *testing.T) {
	store := newMockStore()
	store.vessels[1000001] = storage.Vessel{MMSI: 1000001}
	store.vessels[1000002] = storage.Vessel{MMSI: 1000002}
	router := NewFleetServer(store, nil, Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/vessels", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var vessels []storage.Vessel
	if err := json.NewDecoder(rec.Body).Decode(&vessels); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(vessels) != 2 {
		t.Errorf("got %d vessels, want 2", len(vessels))
	}
}

func TestGetTrack(t *testing.T) {
	store := newMockStore()
	store.tracks[366123456] = []storage.PositionRow{
		{MMSI: 366123456, Longitude: -122.4, Latitude: 37.8, Available: true},
	}
	router := NewFleetServer(store, store, Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/vessels/366123456/track", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var track []storage.PositionRow
	if err := json.NewDecoder(rec.Body).Decode(&track); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(track) != 1 || track[0].MMSI != 366123456 {
		t.Errorf("track = %+v", track)
	}
}

func TestGetTrackNoSink(t *testing.T) {
	router := NewFleetServer(newMockStore(), nil, Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/vessels/366123456/track", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Errorf("expected status 501, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	server := NewFleetServer(newMockStore(), nil, Config{
		AuthEnabled: true,
		APIKeys:     []string{"test-key-123"},
	})
	router := server.Router()

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"no key", "", "", http.StatusUnauthorized},
		{"valid key", "X-API-Key", "test-key-123", http.StatusOK},
		{"invalid key", "X-API-Key", "wrong", http.StatusForbidden},
		{"bearer", "Authorization", "Bearer test-key-123", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
