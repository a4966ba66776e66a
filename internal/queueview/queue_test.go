package queueview

import (
	"testing"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func booking(id, name, ref, zone, tourTime string, guests int) schedule.Booking {
	return schedule.Booking{
		ID:              id,
		ReferenceNumber: ref,
		CustomerName:    name,
		TourTime:        tourTime,
		Guests:          schedule.GuestCount{Adults: guests},
		PickupZone:      schedule.Zone{ID: "z-" + zone, Name: zone},
	}
}

func TestPriorityScore(t *testing.T) {
	base := booking("bk-1", "Smith", "R-1", "Old Town", "10:00", 2)

	plain := PriorityScore(base)

	vip := base
	vip.VIP = true
	if got := PriorityScore(vip); got != plain+100 {
		t.Errorf("VIP bonus = %d, want %d", got-plain, 100)
	}

	occasion := base
	occasion.SpecialOccasion = true
	if got := PriorityScore(occasion); got != plain+50 {
		t.Errorf("occasion bonus = %d, want 50", got-plain)
	}

	first := base
	first.FirstTimer = true
	if got := PriorityScore(first); got != plain+25 {
		t.Errorf("first-timer bonus = %d, want 25", got-plain)
	}

	access := base
	access.AccessibilityNeeds = true
	if got := PriorityScore(access); got != plain+20 {
		t.Errorf("accessibility bonus = %d, want 20", got-plain)
	}

	// Party size contribution caps at 10.
	big := base
	big.Guests = schedule.GuestCount{Adults: 30}
	if got := PriorityScore(big); got != plain+8 {
		t.Errorf("oversized party bonus = %d, want 8 (capped)", got-plain)
	}

	// Earlier tours score higher.
	early := base
	early.TourTime = "08:00"
	if PriorityScore(early) <= plain {
		t.Error("earlier tour must outrank a later one")
	}
}

func TestBuild_SortPriority(t *testing.T) {
	vip := booking("bk-1", "Adams", "R-1", "Old Town", "12:00", 2)
	vip.VIP = true
	bookings := []schedule.Booking{
		booking("bk-2", "Baker", "R-2", "Harbor", "09:00", 2),
		vip,
	}

	entries := Build(bookings, Options{Sort: SortPriority})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Booking.ID != "bk-1" {
		t.Errorf("expected VIP first, got %s", entries[0].Booking.ID)
	}
}

func TestBuild_SortModes(t *testing.T) {
	bookings := []schedule.Booking{
		booking("bk-1", "Adams", "R-1", "Harbor", "12:00", 2),
		booking("bk-2", "Baker", "R-2", "Old Town", "09:00", 6),
	}

	t.Run("time", func(t *testing.T) {
		entries := Build(bookings, Options{Sort: SortTime})
		if entries[0].Booking.ID != "bk-2" {
			t.Errorf("expected earliest first, got %s", entries[0].Booking.ID)
		}
	})

	t.Run("zone", func(t *testing.T) {
		entries := Build(bookings, Options{Sort: SortZone})
		if entries[0].Booking.PickupZone.Name != "Harbor" {
			t.Errorf("expected Harbor first, got %s", entries[0].Booking.PickupZone.Name)
		}
	})

	t.Run("guests", func(t *testing.T) {
		entries := Build(bookings, Options{Sort: SortGuests})
		if entries[0].Booking.ID != "bk-2" {
			t.Errorf("expected largest party first, got %s", entries[0].Booking.ID)
		}
	})
}

func TestBuild_Search(t *testing.T) {
	bookings := []schedule.Booking{
		booking("bk-1", "Smith Family", "R-100", "Old Town", "10:00", 2),
		booking("bk-2", "Jones", "R-200", "Harbor", "11:00", 2),
	}

	tests := []struct {
		name   string
		search string
		wantID string
	}{
		{name: "by customer", search: "smith", wantID: "bk-1"},
		{name: "by reference", search: "r-200", wantID: "bk-2"},
		{name: "by zone", search: "harbor", wantID: "bk-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Build(bookings, Options{Search: tt.search})
			if len(entries) != 1 {
				t.Fatalf("expected 1 match, got %d", len(entries))
			}
			if entries[0].Booking.ID != tt.wantID {
				t.Errorf("matched %s, want %s", entries[0].Booking.ID, tt.wantID)
			}
		})
	}

	t.Run("no match", func(t *testing.T) {
		if entries := Build(bookings, Options{Search: "nothing"}); len(entries) != 0 {
			t.Errorf("expected no matches, got %d", len(entries))
		}
	})
}

func TestBuild_ZoneFilter(t *testing.T) {
	bookings := []schedule.Booking{
		booking("bk-1", "Smith", "R-1", "Old Town", "10:00", 2),
		booking("bk-2", "Jones", "R-2", "Harbor", "11:00", 2),
	}

	entries := Build(bookings, Options{Zones: map[string]bool{"z-Harbor": true}})
	if len(entries) != 1 || entries[0].Booking.ID != "bk-2" {
		t.Errorf("expected only the Harbor booking, got %+v", entries)
	}
}

func TestBuild_PendingAssignedMarkedNotHidden(t *testing.T) {
	bookings := []schedule.Booking{
		booking("bk-1", "Smith", "R-1", "Old Town", "10:00", 2),
		booking("bk-2", "Jones", "R-2", "Harbor", "11:00", 2),
	}

	entries := Build(bookings, Options{PendingAssigned: map[string]bool{"bk-1": true}})
	if len(entries) != 2 {
		t.Fatalf("pending bookings must stay visible, got %d entries", len(entries))
	}
	for _, e := range entries {
		want := e.Booking.ID == "bk-1"
		if e.PendingAssign != want {
			t.Errorf("PendingAssign for %s = %v, want %v", e.Booking.ID, e.PendingAssign, want)
		}
	}
}
