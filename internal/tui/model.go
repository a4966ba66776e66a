// Package tui provides the terminal command center for tour operations.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/config"
	"github.com/saimali7/Tour-CRM-sub005/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub005/internal/journal"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/queueview"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
	"github.com/saimali7/Tour-CRM-sub005/internal/services"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui/commands"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch      // Typing in the queue search field
)

// Focus identifies which panel keyboard navigation drives.
type Focus int

const (
	FocusBoard Focus = iota
	FocusQueue
)

// pixelsPerCell maps one terminal cell to the pointer-coordinate space
// the drag layer works in, so the activation threshold equals one cell
// of mouse travel.
const pixelsPerCell = 8.0

// searchDebounce is how long the queue search input sits idle before
// the queue is rebuilt.
const searchDebounce = 300 * time.Millisecond

// Position is the board cursor: a guide row and a segment within it.
type Position struct {
	Row int
	Seg int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	timelineSvc services.TimelineService
	committer   *commit.Committer
	ledger      *ledger.Ledger
	journal     *journal.Journal
	controller  *dispatch.Controller
	config      *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Board state
	boardDate  time.Time
	timelines  []schedule.GuideTimeline
	queue      []schedule.Booking
	entries    []queueview.Entry
	validation ledger.ValidationResult

	// State
	mode        Mode
	focus       Focus
	cursor      Position
	queueCursor int
	dragRow     int // hovered guide row while dragging, -1 for the tray
	loading     bool
	applying    bool

	// Queue controls
	search    textinput.Model
	searchSeq int
	sortMode  queueview.SortMode

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error
}

// New creates a new TUI model for one board date.
func New(svc services.TimelineService, committer *commit.Committer, j *journal.Journal, cfg *config.Config, date time.Time) *Model {
	search := textinput.New()
	search.Placeholder = "search bookings"
	search.CharLimit = 64
	search.Width = 24

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to frappe on error
		t, _ = theme.Load("frappe")
	}

	led := ledger.New()
	if committer == nil {
		// Offline board: staging works, direct commits fail loudly.
		committer = commit.New(offlineService{})
	}

	m := &Model{
		timelineSvc: svc,
		committer:   committer,
		ledger:      led,
		journal:     j,
		config:      cfg,
		theme:       t,
		styles:      NewStyles(t),
		boardDate:   date,
		mode:        ModeNormal,
		focus:       FocusBoard,
		dragRow:     -1,
		search:      search,
		sortMode:    queueview.SortPriority,
		loading:     true,
	}
	m.controller = dispatch.New(led, committer, m.boardCfg())
	return m
}

// ErrNoAssignmentService is returned by mutations on a board that was
// started without a backend client.
var ErrNoAssignmentService = errors.New("no assignment service configured")

// offlineService backs the committer when no backend client is wired.
type offlineService struct{}

func (offlineService) Assign(context.Context, string, string) error {
	return ErrNoAssignmentService
}

func (offlineService) Unassign(context.Context, string) error {
	return ErrNoAssignmentService
}

func (offlineService) TimeShift(context.Context, string, string, string) error {
	return ErrNoAssignmentService
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadBoard(m.timelineSvc, m.boardDate),
		commands.RestoreSession(m.journal, m.boardDate),
		commands.UndoTick(),
	)
}

// Run starts the TUI.
func Run(svc services.TimelineService, committer *commit.Committer, j *journal.Journal, cfg *config.Config, date time.Time) error {
	return RunWithDebug(svc, committer, j, cfg, date, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(svc services.TimelineService, committer *commit.Committer, j *journal.Journal, cfg *config.Config, date time.Time, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(svc, committer, j, cfg, date)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// rebuildQueue recomputes the presented queue from the raw bookings,
// the current filters, and the pending ledger.
func (m *Model) rebuildQueue() {
	pending := make(map[string]bool)
	for _, c := range m.ledger.Changes() {
		if a, ok := c.(ledger.Assign); ok {
			pending[a.BookingID] = true
		}
	}

	m.entries = queueview.Build(m.queue, queueview.Options{
		Search:          m.search.Value(),
		Sort:            m.sortMode,
		PendingAssigned: pending,
	})
	if m.queueCursor >= len(m.entries) {
		m.queueCursor = len(m.entries) - 1
	}
	if m.queueCursor < 0 {
		m.queueCursor = 0
	}
}

// revalidate recomputes batch validation for the pending ledger.
func (m *Model) revalidate() {
	m.validation = ledger.Validate(m.ledger.Changes(), m.timelines)
}

// setStatus shows a transient status message.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(3 * time.Second)
	return commands.ClearStatusAfter(3 * time.Second)
}

// currentSegment returns the segment under the board cursor.
func (m *Model) currentSegment() (schedule.GuideTimeline, schedule.Segment, bool) {
	if m.cursor.Row < 0 || m.cursor.Row >= len(m.timelines) {
		return schedule.GuideTimeline{}, schedule.Segment{}, false
	}
	tl := m.timelines[m.cursor.Row]
	if m.cursor.Seg < 0 || m.cursor.Seg >= len(tl.Segments) {
		return tl, schedule.Segment{}, false
	}
	return tl, tl.Segments[m.cursor.Seg], true
}

// clampCursor keeps the board cursor on a real row and segment.
func (m *Model) clampCursor() {
	if m.cursor.Row >= len(m.timelines) {
		m.cursor.Row = len(m.timelines) - 1
	}
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	if m.cursor.Row < len(m.timelines) {
		segs := len(m.timelines[m.cursor.Row].Segments)
		if m.cursor.Seg >= segs {
			m.cursor.Seg = segs - 1
		}
	}
	if m.cursor.Seg < 0 {
		m.cursor.Seg = 0
	}
}
