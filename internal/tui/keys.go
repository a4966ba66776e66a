package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub005/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/queueview"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Log keystroke
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Mode-specific handling
	if m.controller.State() == dispatch.StateDragging {
		return m.handleDragKeys(msg)
	}
	if m.mode == ModeSearch {
		return m.handleSearchKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.controller.AdjustMode() && !m.ledger.IsEmpty() {
			return m, m.setStatus("Pending changes! Press s to apply or Esc to discard")
		}
		return m, tea.Quit

	// Navigation
	case "j", "down":
		if m.focus == FocusQueue {
			if m.queueCursor < len(m.entries)-1 {
				m.queueCursor++
			}
			return m, nil
		}
		if m.cursor.Row < len(m.timelines)-1 {
			m.cursor.Row++
			m.cursor.Seg = 0
		}
		return m, nil
	case "k", "up":
		if m.focus == FocusQueue {
			if m.queueCursor > 0 {
				m.queueCursor--
			}
			return m, nil
		}
		if m.cursor.Row > 0 {
			m.cursor.Row--
			m.cursor.Seg = 0
		}
		return m, nil
	case "h", "left":
		if m.focus == FocusBoard && m.cursor.Seg > 0 {
			m.cursor.Seg--
		}
		return m, nil
	case "l", "right":
		if m.focus == FocusBoard {
			if tl, _, ok := m.currentSegment(); ok && m.cursor.Seg < len(tl.Segments)-1 {
				m.cursor.Seg++
			}
		}
		return m, nil
	case "tab":
		if m.focus == FocusBoard {
			m.focus = FocusQueue
		} else {
			m.focus = FocusBoard
		}
		return m, nil

	// Pick up the cursor's segment or queue entry
	case "enter":
		return m.beginKeyboardDrag()

	// Adjust mode
	case "a":
		if m.controller.AdjustMode() {
			if !m.ledger.IsEmpty() {
				return m, m.setStatus("Pending changes! Press s to apply or Esc to discard")
			}
			m.controller.SetAdjustMode(false)
			return m, m.setStatus("Adjust mode off")
		}
		m.controller.SetAdjustMode(true)
		return m, m.setStatus("Adjust mode: drops stage until you press s")

	case "s":
		return m.applyPending()

	case "esc":
		if m.controller.AdjustMode() && !m.ledger.IsEmpty() {
			m.ledger.Clear()
			m.controller.SetAdjustMode(false)
			m.rebuildQueue()
			m.revalidate()
			return m, tea.Batch(
				m.setStatus("Discarded pending changes"),
				commands.ClearSession(m.journal, m.boardDate),
			)
		}
		m.statusMsg = ""
		return m, nil

	// Undo and redo
	case "u", "ctrl+z":
		if m.controller.AdjustMode() {
			if err := m.ledger.Undo(); err != nil {
				return m, m.setStatus(fmt.Sprintf("%v", err))
			}
			m.rebuildQueue()
			m.revalidate()
			return m, tea.Batch(
				m.setStatus("Undone"),
				commands.SaveSession(m.journal, m.boardDate, m.ledger.Changes()),
			)
		}
		if !m.committer.CanUndo() {
			return m, m.setStatus("Nothing to undo")
		}
		return m, commands.UndoCommit(m.committer)

	case "ctrl+y", "ctrl+r":
		if !m.controller.AdjustMode() {
			return m, nil
		}
		if err := m.ledger.Redo(); err != nil {
			return m, m.setStatus(fmt.Sprintf("%v", err))
		}
		m.rebuildQueue()
		m.revalidate()
		return m, tea.Batch(
			m.setStatus("Redone"),
			commands.SaveSession(m.journal, m.boardDate, m.ledger.Changes()),
		)

	// Remove the pending change touching the cursor's segment
	case "x":
		return m.removePendingAtCursor()

	case "c":
		text := m.pendingCopyText()
		if text == "" {
			return m, m.setStatus("No pending changes to copy")
		}
		if err := clipboard.WriteAll(text); err != nil {
			return m, m.setStatus(fmt.Sprintf("Copy failed: %v", err))
		}
		return m, m.setStatus("Pending changes copied")

	// Queue controls
	case "/":
		m.mode = ModeSearch
		m.focus = FocusQueue
		m.search.Focus()
		return m, textinput.Blink
	case "o":
		m.sortMode = nextSortMode(m.sortMode)
		m.rebuildQueue()
		return m, m.setStatus(fmt.Sprintf("Sorted by %s", m.sortMode))

	case "g":
		if len(m.entries) == 0 {
			return m, m.setStatus("Queue is empty")
		}
		return m, tea.Batch(
			m.setStatus("Asking for suggestions..."),
			commands.Suggest(m.config, m.timelines, m.queue),
		)

	case "r":
		m.loading = true
		return m, commands.LoadBoard(m.timelineSvc, m.boardDate)
	}

	return m, nil
}

// handleDragKeys drives an active drag from the keyboard. The payload
// and drop path are identical to the pointer path.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.controller.Cancel()
		m.dragRow = -1
		return m, nil

	case "h", "left":
		if err := m.controller.MoveBy(-m.snapPixels()); err != nil {
			LogError("move", err)
		}
		return m, nil
	case "l", "right":
		if err := m.controller.MoveBy(m.snapPixels()); err != nil {
			LogError("move", err)
		}
		return m, nil

	case "j", "down":
		if m.dragRow < len(m.timelines)-1 {
			m.dragRow++
		}
		m.hoverRow(m.dragRow)
		return m, nil
	case "k", "up":
		if m.dragRow > 0 {
			m.dragRow--
		}
		m.hoverRow(m.dragRow)
		return m, nil

	case "x":
		m.dragRow = -1
		m.controller.DragOver(drag.UnassignTrayTarget{})
		return m, nil

	case "enter":
		target := m.dragTarget()
		outcome, err := m.controller.Drop(context.Background(), target)
		m.dragRow = -1
		return m.afterDrop(outcome, err)
	}

	return m, nil
}

// handleSearchKeys handles keys while typing in the queue search field.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Blur()
		m.mode = ModeNormal
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = ModeNormal
		m.rebuildQueue()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.searchSeq++
	return m, tea.Batch(cmd, commands.SearchDebounce(m.searchSeq, searchDebounce))
}

// beginKeyboardDrag picks up whatever is under the focused cursor.
func (m Model) beginKeyboardDrag() (tea.Model, tea.Cmd) {
	if m.focus == FocusQueue {
		if m.queueCursor >= len(m.entries) {
			return m, nil
		}
		entry := m.entries[m.queueCursor]
		if entry.PendingAssign {
			return m, m.setStatus("Booking already has a pending assignment")
		}
		payload := drag.QueuedBookingPayload{Booking: entry.Booking}
		if err := m.controller.BeginKeyboardDrag(payload, 0, m.boardPixelWidth()); err != nil {
			return m, m.setStatus(fmt.Sprintf("%v", err))
		}
		m.dragRow = 0
		m.hoverRow(0)
		return m, nil
	}

	tl, seg, ok := m.currentSegment()
	if !ok {
		return m, nil
	}
	startCell, _ := m.segmentCells(seg)
	originX := float64(startCell) * pixelsPerCell
	if err := m.controller.BeginKeyboardDrag(segmentPayload(tl, seg), originX, m.boardPixelWidth()); err != nil {
		return m, m.setStatus(fmt.Sprintf("%v", err))
	}
	m.dragRow = m.cursor.Row
	m.hoverRow(m.dragRow)
	LogDrag("pickup", m.controller)
	return m, nil
}

// applyPending drains the pending batch through the commit layer.
func (m Model) applyPending() (tea.Model, tea.Cmd) {
	if !m.controller.AdjustMode() || m.ledger.IsEmpty() {
		return m, nil
	}
	if m.applying {
		return m, m.setStatus("Apply already in progress")
	}
	if !m.validation.Valid {
		return m, m.setStatus("Fix validation issues before applying")
	}

	changes := m.ledger.Changes()
	m.ledger.Clear()
	m.applying = true
	m.rebuildQueue()
	return m, tea.Batch(
		m.setStatus(fmt.Sprintf("Applying %d change(s)...", len(changes))),
		commands.ApplyChanges(m.committer, changes),
	)
}

// removePendingAtCursor drops the staged change for the segment or
// queue entry under the cursor.
func (m Model) removePendingAtCursor() (tea.Model, tea.Cmd) {
	if !m.controller.AdjustMode() {
		return m, nil
	}

	var id string
	if m.focus == FocusQueue {
		if m.queueCursor < len(m.entries) {
			id = m.pendingChangeForBooking(m.entries[m.queueCursor].Booking.ID)
		}
	} else if _, seg, ok := m.currentSegment(); ok {
		id = m.pendingChangeForSegment(seg.ID)
	}
	if id == "" {
		return m, m.setStatus("No pending change here")
	}

	m.ledger.Remove(id)
	m.rebuildQueue()
	m.revalidate()
	return m, tea.Batch(
		m.setStatus("Removed pending change"),
		commands.SaveSession(m.journal, m.boardDate, m.ledger.Changes()),
	)
}

// hoverRow routes a keyboard hover through the same path as the mouse.
func (m *Model) hoverRow(row int) {
	if row < 0 || row >= len(m.timelines) {
		m.controller.ClearHover()
		return
	}
	tl := m.timelines[row]
	m.controller.DragOver(drag.GuideRowTarget{
		GuideID:         tl.Guide.ID,
		GuideName:       tl.Guide.FullName(),
		VehicleCapacity: tl.Guide.VehicleCapacity,
		TimelineIndex:   row,
	})
}

// dragTarget resolves the keyboard drag's hovered row into a target.
func (m *Model) dragTarget() drag.Target {
	if m.dragRow < 0 || m.dragRow >= len(m.timelines) {
		return drag.UnassignTrayTarget{}
	}
	tl := m.timelines[m.dragRow]
	return drag.GuideRowTarget{
		GuideID:         tl.Guide.ID,
		GuideName:       tl.Guide.FullName(),
		VehicleCapacity: tl.Guide.VehicleCapacity,
		TimelineIndex:   m.dragRow,
	}
}

// snapPixels is one snap interval expressed in drag-layer pixels.
func (m *Model) snapPixels() float64 {
	cfg := m.boardCfg()
	total := cfg.TotalMinutes()
	if total <= 0 {
		return pixelsPerCell
	}
	return float64(cfg.SnapMinutes) / float64(total) * m.boardPixelWidth()
}

// pendingChangeForSegment finds the staged change id touching a segment.
func (m *Model) pendingChangeForSegment(segmentID string) string {
	for _, c := range m.ledger.Changes() {
		switch v := c.(type) {
		case ledger.Reassign:
			if v.SegmentID == segmentID {
				return v.ID()
			}
		case ledger.TimeShift:
			if v.SegmentID == segmentID {
				return v.ID()
			}
		}
	}
	return ""
}

// pendingChangeForBooking finds the staged assignment id for a booking.
func (m *Model) pendingChangeForBooking(bookingID string) string {
	for _, c := range m.ledger.Changes() {
		if v, ok := c.(ledger.Assign); ok && v.BookingID == bookingID {
			return v.ID()
		}
	}
	return ""
}

// pendingCopyText renders the pending batch as plain text for sharing.
func (m *Model) pendingCopyText() string {
	summary := m.ledger.Summarize()
	if summary.Total() == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pending changes for %s\n", schedule.FormatBoardDate(m.boardDate))
	for _, a := range summary.Assignments {
		fmt.Fprintf(&b, "- assign %s (%s) to %s\n", a.Booking.ReferenceNumber, a.Booking.CustomerName, a.ToGuideName)
	}
	for _, r := range summary.Reassignments {
		fmt.Fprintf(&b, "- move segment %s from %s to %s\n", r.SegmentID, r.FromGuideID, r.ToGuideID)
	}
	for _, t := range summary.TimeShifts {
		fmt.Fprintf(&b, "- shift segment %s from %s to %s\n", t.SegmentID, t.OriginalStartTime, t.NewStartTime)
	}
	return b.String()
}

// nextSortMode cycles the queue sort order.
func nextSortMode(mode queueview.SortMode) queueview.SortMode {
	modes := queueview.SortModes
	for i, s := range modes {
		if s == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}
