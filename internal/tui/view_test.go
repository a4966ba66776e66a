package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/saimali7/Tour-CRM-sub005/internal/config"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func forceTrueColor(t *testing.T) {
	t.Helper()
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})
}

func testModel(t *testing.T) *Model {
	t.Helper()
	date, err := schedule.ParseBoardDate("2026-09-02")
	if err != nil {
		t.Fatalf("parsing date: %v", err)
	}
	m := New(nil, nil, nil, config.Default(), date)
	m.width = 80
	m.height = 30
	return m
}

func testTimelines() []schedule.GuideTimeline {
	return []schedule.GuideTimeline{
		{
			Guide:       schedule.Guide{ID: "g-1", FirstName: "Marta", LastName: "Ruiz", VehicleCapacity: 8},
			TotalGuests: 4,
			Segments: []schedule.Segment{
				{ID: "seg-1", Kind: schedule.SegmentTour, StartTime: "09:00", EndTime: "11:00", TourRunID: "run-1", BookingIDs: []string{"bk-1"}, GuestCount: 4},
			},
		},
		{
			Guide:       schedule.Guide{ID: "g-2", FirstName: "Luis", LastName: "Vega", VehicleCapacity: 4},
			TotalGuests: 0,
		},
	}
}

func TestView_ZeroWidthShowsLoading(t *testing.T) {
	m := testModel(t)
	m.width = 0
	if got := m.View(); got != "loading..." {
		t.Errorf("View() = %q, want loading placeholder", got)
	}
}

func TestView_RendersBoardAndQueue(t *testing.T) {
	forceTrueColor(t)

	m := testModel(t)
	m.loading = false
	m.timelines = testTimelines()
	m.queue = []schedule.Booking{
		{ID: "bk-9", ReferenceNumber: "TB-1009", CustomerName: "Ada", TourTime: "10:00",
			Guests: schedule.GuestCount{Adults: 2}, PickupZone: schedule.Zone{ID: "z-1", Name: "Harbor"}},
	}
	m.rebuildQueue()

	out := m.View()
	if !strings.Contains(out, "Command Center") {
		t.Errorf("view missing title, got %q", out)
	}
	if !strings.Contains(out, "Marta Ruiz") {
		t.Errorf("view missing guide row, got %q", out)
	}
	if !strings.Contains(out, "Queue (1)") {
		t.Errorf("view missing queue header, got %q", out)
	}
	if !strings.Contains(out, "drop here to unassign") {
		t.Errorf("view missing unassign tray, got %q", out)
	}
}

func TestRenderQueue_VIPBadgeUsesThemeColor(t *testing.T) {
	forceTrueColor(t)

	m := testModel(t)
	m.queue = []schedule.Booking{
		{ID: "bk-1", ReferenceNumber: "TB-1001", CustomerName: "Ada", TourTime: "09:00",
			Guests: schedule.GuestCount{Adults: 2}, PickupZone: schedule.Zone{ID: "z-1", Name: "Harbor"}, VIP: true},
	}
	m.rebuildQueue()

	out := m.renderQueue()
	if !strings.Contains(out, "★") {
		t.Fatalf("expected VIP badge in queue, got %q", out)
	}
	// frappe vip is #ef9f76
	if !strings.Contains(out, "38;2;239;159;118") {
		t.Errorf("expected vip foreground sequence in output: %q", out)
	}
}

func TestRenderGuideRow_SegmentShowsStartTime(t *testing.T) {
	forceTrueColor(t)

	m := testModel(t)
	m.timelines = testTimelines()

	row := m.renderGuideRow(0)
	if !strings.Contains(row, "Marta Ruiz") {
		t.Errorf("row missing guide name, got %q", row)
	}
	if !strings.Contains(row, "4/8") {
		t.Errorf("row missing load indicator, got %q", row)
	}
	if !strings.Contains(row, "09:00") {
		t.Errorf("row missing segment start, got %q", row)
	}
}

func TestRenderHeader_TruncatesToWidth(t *testing.T) {
	forceTrueColor(t)

	m := testModel(t)
	m.width = 20
	got := m.renderHeader()
	if w := lipgloss.Width(got); w > 20 {
		t.Errorf("header width = %d, want at most 20", w)
	}
}

func TestRenderFooter_ShowsStatusAndHelp(t *testing.T) {
	forceTrueColor(t)

	m := testModel(t)
	m.statusMsg = "applied 2 changes"

	out := m.renderFooter()
	if !strings.Contains(out, "applied 2 changes") {
		t.Errorf("footer missing status, got %q", out)
	}
	if !strings.Contains(out, "q quit") {
		t.Errorf("footer missing help line, got %q", out)
	}
}

func TestSegmentLabel(t *testing.T) {
	seg := schedule.Segment{
		ID:         "seg-1",
		Kind:       schedule.SegmentTour,
		StartTime:  "09:00",
		EndTime:    "11:00",
		GuestCount: 4,
	}

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{name: "too narrow", width: 3, want: ""},
		{name: "full label", width: 16, want: "09:00 tour 4g   "},
		{name: "trimmed", width: 8, want: "09:00 to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentLabel(seg, tt.width); got != tt.want {
				t.Errorf("segmentLabel(width=%d) = %q, want %q", tt.width, got, tt.want)
			}
		})
	}
}

func TestSegmentLabel_NoGuestsOmitsCount(t *testing.T) {
	seg := schedule.Segment{Kind: schedule.SegmentDrive, StartTime: "08:30", EndTime: "08:45"}
	got := segmentLabel(seg, 14)
	if strings.Contains(got, "g") && strings.Contains(got, "0g") {
		t.Errorf("drive label must not carry a guest count, got %q", got)
	}
	if !strings.Contains(got, "08:30 drive") {
		t.Errorf("unexpected drive label %q", got)
	}
}

func TestPadOrTrim(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{name: "pads short", s: "ab", n: 4, want: "ab  "},
		{name: "trims long", s: "abcdef", n: 4, want: "abcd"},
		{name: "exact", s: "abcd", n: 4, want: "abcd"},
		{name: "zero width", s: "abcd", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padOrTrim(tt.s, tt.n); got != tt.want {
				t.Errorf("padOrTrim(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestCommitUndoLeft(t *testing.T) {
	if got := commitUndoLeft(time.Now()); got != 5 {
		t.Errorf("fresh action undo left = %d, want 5", got)
	}
	if got := commitUndoLeft(time.Now().Add(-10 * time.Second)); got != 0 {
		t.Errorf("expired action undo left = %d, want 0", got)
	}
}
