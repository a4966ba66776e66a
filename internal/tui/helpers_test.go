package tui

import (
	"testing"

	"github.com/saimali7/Tour-CRM-sub005/internal/queueview"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func TestGuideColCells(t *testing.T) {
	m := testModel(t)

	// Default column width is 200px at 8px per cell.
	if got := m.guideColCells(); got != 25 {
		t.Errorf("guideColCells() = %d, want 25", got)
	}

	m.config.Board.GuideColumnWidth = 40
	if got := m.guideColCells(); got != 12 {
		t.Errorf("guideColCells() floor = %d, want 12", got)
	}
}

func TestBoardCells(t *testing.T) {
	m := testModel(t)

	if got := m.boardCells(); got != 54 {
		t.Errorf("boardCells() = %d, want 54", got)
	}

	m.width = 20
	if got := m.boardCells(); got != 10 {
		t.Errorf("boardCells() floor = %d, want 10", got)
	}
}

func TestBoardPixelWidth(t *testing.T) {
	m := testModel(t)
	if got := m.boardPixelWidth(); got != 432.0 {
		t.Errorf("boardPixelWidth() = %f, want 432", got)
	}
}

func TestBoardRowAt(t *testing.T) {
	m := testModel(t)
	m.timelines = testTimelines()

	tests := []struct {
		name    string
		cellY   int
		wantRow int
		wantOK  bool
	}{
		{name: "first guide row", cellY: 2, wantRow: 0, wantOK: true},
		{name: "second guide row", cellY: 3, wantRow: 1, wantOK: true},
		{name: "header line", cellY: 0, wantOK: false},
		{name: "axis line", cellY: 1, wantOK: false},
		{name: "below board", cellY: 4, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := m.boardRowAt(tt.cellY)
			if ok != tt.wantOK {
				t.Fatalf("boardRowAt(%d) ok = %t, want %t", tt.cellY, ok, tt.wantOK)
			}
			if ok && row != tt.wantRow {
				t.Errorf("boardRowAt(%d) = %d, want %d", tt.cellY, row, tt.wantRow)
			}
		})
	}
}

func TestTrayAndQueueLines(t *testing.T) {
	m := testModel(t)
	m.timelines = testTimelines()
	m.entries = make([]queueview.Entry, 2)

	if got := m.trayLine(); got != 4 {
		t.Errorf("trayLine() = %d, want 4", got)
	}
	if got := m.queueStartLine(); got != 7 {
		t.Errorf("queueStartLine() = %d, want 7", got)
	}

	idx, ok := m.queueEntryAt(7)
	if !ok || idx != 0 {
		t.Errorf("queueEntryAt(7) = %d, %t, want 0, true", idx, ok)
	}
	idx, ok = m.queueEntryAt(8)
	if !ok || idx != 1 {
		t.Errorf("queueEntryAt(8) = %d, %t, want 1, true", idx, ok)
	}
	if _, ok := m.queueEntryAt(9); ok {
		t.Error("queueEntryAt(9) should miss past the entries")
	}
	if _, ok := m.queueEntryAt(6); ok {
		t.Error("queueEntryAt(6) should miss the queue header")
	}
}

func TestSegmentCells(t *testing.T) {
	m := testModel(t)
	seg := schedule.Segment{ID: "seg-1", Kind: schedule.SegmentTour, StartTime: "09:00", EndTime: "11:00"}

	// 7:00-20:00 window over 54 cells: 09:00 sits 2h in.
	start, width := m.segmentCells(seg)
	if start != 8 {
		t.Errorf("segment start cell = %d, want 8", start)
	}
	if width != 8 {
		t.Errorf("segment width cells = %d, want 8", width)
	}
}

func TestSegmentCells_MinimumWidth(t *testing.T) {
	m := testModel(t)
	seg := schedule.Segment{ID: "seg-1", Kind: schedule.SegmentPickup, StartTime: "09:00", EndTime: "09:05"}

	_, width := m.segmentCells(seg)
	if width != 1 {
		t.Errorf("tiny segment width = %d, want 1", width)
	}
}

func TestSegmentAt(t *testing.T) {
	m := testModel(t)
	tl := testTimelines()[0]

	seg, ok := m.segmentAt(tl, 35)
	if !ok {
		t.Fatal("expected a segment under the cursor")
	}
	if seg.ID != "seg-1" {
		t.Errorf("segmentAt hit %q, want seg-1", seg.ID)
	}

	if _, ok := m.segmentAt(tl, 24); ok {
		t.Error("guide column must not hit segments")
	}
	if _, ok := m.segmentAt(tl, 70); ok {
		t.Error("empty timeline area must not hit segments")
	}
}

func TestSegmentPayload(t *testing.T) {
	tl := testTimelines()[0]
	seg := tl.Segments[0]

	p := segmentPayload(tl, seg)
	if p.SegmentID != "seg-1" || p.GuideID != "g-1" || p.TourRunID != "run-1" {
		t.Errorf("unexpected payload identity: %+v", p)
	}
	if p.DurationMinutes != 120 {
		t.Errorf("payload duration = %d, want 120", p.DurationMinutes)
	}
	if p.SegmentKind != schedule.SegmentTour {
		t.Errorf("payload kind = %q, want tour", p.SegmentKind)
	}
}

func TestStagedAssign(t *testing.T) {
	bk := schedule.Booking{ID: "bk-1", ReferenceNumber: "TB-1001", Guests: schedule.GuestCount{Adults: 2}}
	a := stagedAssign(bk, "g-2", "Luis Vega", 1)
	if a.BookingID != "bk-1" || a.ToGuideID != "g-2" || a.ToGuideName != "Luis Vega" {
		t.Errorf("unexpected staged assign: %+v", a)
	}
	if a.Booking.Guests.Total() != 2 {
		t.Error("staged assign must carry the booking snapshot")
	}
}
