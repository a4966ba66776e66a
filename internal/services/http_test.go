package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient("", "token"); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient("http://localhost:3000", ""); err != nil {
		t.Errorf("token is optional, got %v", err)
	}
}

func TestAssign_RequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Assign(context.Background(), "bk-1", "g-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/assignments" {
		t.Errorf("path = %s, want /api/assignments", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth = %q, want Bearer secret", gotAuth)
	}
	if gotBody["bookingId"] != "bk-1" || gotBody["guideId"] != "g-1" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestUnassign_OmitsGuide(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	if err := c.Unassign(context.Background(), "bk-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gotBody["guideId"]; ok {
		t.Error("unassign must omit guideId")
	}
}

func TestTimeShift_SendsStartTime(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	if err := c.TimeShift(context.Background(), "bk-1", "g-1", "09:15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/assignments/time-shift" {
		t.Errorf("path = %s, want /api/assignments/time-shift", gotPath)
	}
	if gotBody["startTime"] != "09:15" {
		t.Errorf("startTime = %v, want 09:15", gotBody["startTime"])
	}
}

func TestGuideTimelines_Decodes(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"timelines": [{
				"guide": {"id": "g-1", "firstName": "Marta", "lastName": "Ruiz", "vehicleCapacity": 8},
				"totalGuests": 6,
				"segments": [{
					"id": "seg-1", "type": "tour",
					"startTime": "09:00", "endTime": "11:00",
					"tourRunId": "run-1", "bookingIds": ["bk-1"], "guestCount": 6
				}]
			}]
		}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	timelines, err := c.GuideTimelines(context.Background(), "2026-09-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "date=2026-09-02" {
		t.Errorf("query = %s, want date=2026-09-02", gotQuery)
	}
	if len(timelines) != 1 {
		t.Fatalf("expected 1 timeline, got %d", len(timelines))
	}
	tl := timelines[0]
	if tl.Guide.FullName() != "Marta Ruiz" || tl.Guide.VehicleCapacity != 8 {
		t.Errorf("unexpected guide: %+v", tl.Guide)
	}
	if len(tl.Segments) != 1 || tl.Segments[0].Kind != "tour" {
		t.Errorf("unexpected segments: %+v", tl.Segments)
	}
}

func TestUnassignedBookings_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"bookings": [{
				"id": "bk-1", "referenceNumber": "R-100", "customerName": "Smith",
				"guests": {"adults": 2, "children": 1, "infants": 0},
				"pickupZone": {"id": "z-1", "name": "Old Town"},
				"tourTime": "10:00", "vip": true
			}]
		}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	bookings, err := c.UnassignedBookings(context.Background(), "2026-09-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	b := bookings[0]
	if b.Guests.Total() != 3 {
		t.Errorf("guests = %d, want 3", b.Guests.Total())
	}
	if !b.VIP || b.PickupZone.Name != "Old Town" {
		t.Errorf("unexpected booking: %+v", b)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "conflicting assignment at 09:00"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	err := c.Assign(context.Background(), "bk-1", "g-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "conflicting assignment") {
		t.Errorf("expected server message surfaced, got %v", err)
	}
	if !strings.Contains(err.Error(), "409") {
		t.Errorf("expected status code in message, got %v", err)
	}
}

func TestErrorEnvelope_NonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	err := c.Unassign(context.Background(), "bk-1")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected raw body surfaced, got %v", err)
	}
}
