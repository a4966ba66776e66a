package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func testLedger() *Ledger {
	base := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	n := 0
	return NewWithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	})
}

func reassign(segmentID, from, to string) Reassign {
	return Reassign{
		SegmentID:   segmentID,
		FromGuideID: from,
		ToGuideID:   to,
		BookingIDs:  []string{"bk-1"},
	}
}

func timeShift(segmentID, newStart string) TimeShift {
	return TimeShift{
		SegmentID:         segmentID,
		GuideID:           "g-1",
		BookingIDs:        []string{"bk-1"},
		OriginalStartTime: "09:00",
		NewStartTime:      newStart,
		OriginalEndTime:   "10:00",
		NewEndTime:        "11:00",
		DurationMinutes:   60,
	}
}

func assign(bookingID, guideID string, guests int) Assign {
	return Assign{
		BookingID:   bookingID,
		ToGuideID:   guideID,
		ToGuideName: "Guide " + guideID,
		Booking: schedule.Booking{
			ID:       bookingID,
			TourTime: "10:00",
			Guests:   schedule.GuestCount{Adults: guests},
		},
	}
}

func TestAdd_StampsIdentity(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changes := l.Changes()
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].ID() == "" {
		t.Error("expected a stamped id")
	}
	if changes[0].When().IsZero() {
		t.Error("expected a stamped timestamp")
	}
}

func TestAdd_ReplacesSameSegmentInPlace(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(reassign("seg-2", "g-1", "g-3")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Re-drag seg-1 elsewhere: must replace entry 0, not append.
	if err := l.Add(reassign("seg-1", "g-1", "g-4")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changes := l.Changes()
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	first, ok := changes[0].(Reassign)
	if !ok {
		t.Fatalf("expected Reassign at position 0, got %T", changes[0])
	}
	if first.SegmentID != "seg-1" || first.ToGuideID != "g-4" {
		t.Errorf("expected seg-1 replaced in place with g-4, got %+v", first)
	}
}

func TestAdd_TimeShiftReplacesReassignForSameSegment(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(timeShift("seg-1", "11:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changes := l.Changes()
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if _, ok := changes[0].(TimeShift); !ok {
		t.Errorf("expected TimeShift, got %T", changes[0])
	}
}

func TestAdd_RejectsDuplicateAssign(t *testing.T) {
	l := testLedger()

	if err := l.Add(assign("bk-1", "g-1", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := l.Add(assign("bk-1", "g-2", 2))
	if !errors.Is(err, ErrDuplicateAssign) {
		t.Fatalf("expected ErrDuplicateAssign, got %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("expected ledger unmodified, got %d changes", l.Len())
	}
}

func TestHasPendingAssign(t *testing.T) {
	l := testLedger()

	if l.HasPendingAssign("bk-1") {
		t.Error("empty ledger should have no pending assign")
	}
	if err := l.Add(assign("bk-1", "g-1", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.HasPendingAssign("bk-1") {
		t.Error("expected pending assign for bk-1")
	}
	if l.HasPendingAssign("bk-2") {
		t.Error("did not expect pending assign for bk-2")
	}
}

func TestRemove(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := l.Changes()[0].ID()

	if !l.Remove(id) {
		t.Fatal("expected Remove to find the change")
	}
	if !l.IsEmpty() {
		t.Error("expected empty ledger after remove")
	}
	if l.Remove("chg-999") {
		t.Error("expected Remove to miss an unknown id")
	}
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(timeShift("seg-2", "11:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := l.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("after undo expected 1 change, got %d", l.Len())
	}

	if err := l.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("after redo expected 2 changes, got %d", l.Len())
	}
}

func TestUndo_Empty(t *testing.T) {
	l := testLedger()
	if err := l.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := l.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestAdd_ClearsRedoStack(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !l.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	if err := l.Add(reassign("seg-2", "g-1", "g-3")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.CanRedo() {
		t.Error("expected redo stack cleared by a new edit")
	}
}

func TestUndoHistory_Bounded(t *testing.T) {
	l := testLedger()

	for i := 0; i < maxHistory+10; i++ {
		if err := l.Add(reassign(fmt.Sprintf("seg-%d", i), "g-1", "g-2")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	undos := 0
	for l.CanUndo() {
		if err := l.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}
		undos++
	}
	if undos != maxHistory {
		t.Errorf("expected %d undos, got %d", maxHistory, undos)
	}
	// The oldest snapshots were evicted, so the floor is not empty.
	if l.Len() != 10 {
		t.Errorf("expected 10 changes at history floor, got %d", l.Len())
	}
}

func TestClear(t *testing.T) {
	l := testLedger()

	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Clear()
	if !l.IsEmpty() {
		t.Error("expected empty ledger after clear")
	}

	// Clear is undoable.
	if err := l.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("expected clear to be undone, got %d changes", l.Len())
	}
}

func TestRestore(t *testing.T) {
	l := testLedger()
	if err := l.Add(reassign("seg-0", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Restore([]Change{
		reassign("seg-1", "g-1", "g-2"),
		timeShift("seg-2", "11:00"),
	})

	if l.Len() != 2 {
		t.Fatalf("expected 2 restored changes, got %d", l.Len())
	}
	for _, c := range l.Changes() {
		if c.ID() == "" {
			t.Error("expected restored change to carry a fresh id")
		}
	}
	if l.CanUndo() || l.CanRedo() {
		t.Error("expected history reset by restore")
	}
}

func TestSummarize(t *testing.T) {
	l := testLedger()

	if err := l.Add(assign("bk-1", "g-1", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(assign("bk-2", "g-1", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(reassign("seg-1", "g-1", "g-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(timeShift("seg-2", "11:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := l.Summarize()
	if s.Total() != 4 {
		t.Errorf("Total() = %d, want 4", s.Total())
	}
	if len(s.Assignments) != 2 || len(s.Reassignments) != 1 || len(s.TimeShifts) != 1 {
		t.Errorf("unexpected grouping: %d/%d/%d",
			len(s.Assignments), len(s.Reassignments), len(s.TimeShifts))
	}

	impact, ok := s.ImpactByGuide["g-1"]
	if !ok {
		t.Fatal("expected impact for g-1")
	}
	if impact.GuestDelta != 5 {
		t.Errorf("GuestDelta = %d, want 5", impact.GuestDelta)
	}
	// Reassignments move guests, they do not add them.
	if _, ok := s.ImpactByGuide["g-2"]; ok {
		t.Error("reassignment target must not appear in guest deltas")
	}
}
