package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func boardDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := schedule.ParseBoardDate(s)
	if err != nil {
		t.Fatalf("parsing date: %v", err)
	}
	return d
}

func sampleChanges() []ledger.Change {
	return []ledger.Change{
		ledger.Reassign{
			TourRunID:   "run-1",
			SegmentID:   "seg-1",
			FromGuideID: "g-1",
			ToGuideID:   "g-2",
			BookingIDs:  []string{"bk-1", "bk-2"},
		},
		ledger.TimeShift{
			SegmentID:         "seg-2",
			GuideID:           "g-1",
			BookingIDs:        []string{"bk-3"},
			OriginalStartTime: "09:00",
			NewStartTime:      "09:30",
			OriginalEndTime:   "10:00",
			NewEndTime:        "10:30",
			DurationMinutes:   60,
		},
		ledger.Assign{
			BookingID:   "bk-4",
			ToGuideID:   "g-2",
			ToGuideName: "Luis",
			Booking: schedule.Booking{
				ID:       "bk-4",
				TourTime: "11:00",
				Guests:   schedule.GuestCount{Adults: 2, Children: 1},
			},
		},
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	date := boardDate(t, "2026-09-02")

	if err := j.SaveSession(ctx, date, sampleChanges()); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	loaded, err := j.LoadSession(ctx, date)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(loaded))
	}

	// Order is preserved.
	re, ok := loaded[0].(ledger.Reassign)
	if !ok {
		t.Fatalf("expected Reassign first, got %T", loaded[0])
	}
	if re.SegmentID != "seg-1" || re.ToGuideID != "g-2" || len(re.BookingIDs) != 2 {
		t.Errorf("unexpected reassign: %+v", re)
	}

	shift, ok := loaded[1].(ledger.TimeShift)
	if !ok {
		t.Fatalf("expected TimeShift second, got %T", loaded[1])
	}
	if shift.NewStartTime != "09:30" || shift.DurationMinutes != 60 {
		t.Errorf("unexpected time shift: %+v", shift)
	}

	a, ok := loaded[2].(ledger.Assign)
	if !ok {
		t.Fatalf("expected Assign third, got %T", loaded[2])
	}
	if a.BookingID != "bk-4" || a.Booking.Guests.Total() != 3 {
		t.Errorf("assign must carry the booking snapshot: %+v", a)
	}
}

func TestSaveSession_ReplacesPrevious(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	date := boardDate(t, "2026-09-02")

	if err := j.SaveSession(ctx, date, sampleChanges()); err != nil {
		t.Fatalf("saving session: %v", err)
	}
	if err := j.SaveSession(ctx, date, sampleChanges()[:1]); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	loaded, err := j.LoadSession(ctx, date)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("expected 1 change after replace, got %d", len(loaded))
	}
}

func TestSessions_KeyedByDate(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	tuesday := boardDate(t, "2026-09-01")
	wednesday := boardDate(t, "2026-09-02")

	if err := j.SaveSession(ctx, tuesday, sampleChanges()); err != nil {
		t.Fatalf("saving session: %v", err)
	}

	loaded, err := j.LoadSession(ctx, wednesday)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty session for other date, got %d changes", len(loaded))
	}

	has, err := j.HasSession(ctx, tuesday)
	if err != nil {
		t.Fatalf("checking session: %v", err)
	}
	if !has {
		t.Error("expected session for tuesday")
	}
	has, err = j.HasSession(ctx, wednesday)
	if err != nil {
		t.Fatalf("checking session: %v", err)
	}
	if has {
		t.Error("did not expect session for wednesday")
	}
}

func TestClearSession(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	date := boardDate(t, "2026-09-02")

	if err := j.SaveSession(ctx, date, sampleChanges()); err != nil {
		t.Fatalf("saving session: %v", err)
	}
	if err := j.ClearSession(ctx, date); err != nil {
		t.Fatalf("clearing session: %v", err)
	}

	has, err := j.HasSession(ctx, date)
	if err != nil {
		t.Fatalf("checking session: %v", err)
	}
	if has {
		t.Error("expected session cleared")
	}
}

func TestLoadedChanges_RestorableIntoLedger(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	date := boardDate(t, "2026-09-02")

	if err := j.SaveSession(ctx, date, sampleChanges()); err != nil {
		t.Fatalf("saving session: %v", err)
	}
	loaded, err := j.LoadSession(ctx, date)
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	led := ledger.New()
	led.Restore(loaded)

	if led.Len() != 3 {
		t.Fatalf("expected 3 restored changes, got %d", led.Len())
	}
	// Restore re-stamps identity dropped by serialization.
	for _, c := range led.Changes() {
		if c.ID() == "" {
			t.Error("expected restored change to carry a fresh id")
		}
	}
	if !led.HasPendingAssign("bk-4") {
		t.Error("expected restored assign for bk-4")
	}
}
