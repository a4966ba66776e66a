package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub005/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.BoardLoadedMsg:
		m.timelines = msg.Timelines
		m.queue = msg.Queue
		m.loading = false
		m.controller.SetTimelines(msg.Timelines)
		m.clampCursor()
		m.rebuildQueue()
		m.revalidate()
		return m, nil

	case commands.SessionRestoredMsg:
		if len(msg.Changes) == 0 {
			return m, nil
		}
		m.ledger.Restore(msg.Changes)
		m.controller.SetAdjustMode(true)
		m.rebuildQueue()
		m.revalidate()
		return m, m.setStatus(fmt.Sprintf("Restored %d pending change(s) from last session", len(msg.Changes)))

	case commands.SessionSavedMsg:
		LogSession("saved", msg.Count)
		return m, nil

	case commands.ApplyDoneMsg:
		m.applying = false
		if msg.Err != nil {
			// The unattempted tail goes back into the ledger so
			// nothing staged is silently lost.
			m.ledger.Restore(msg.Remaining)
			m.revalidate()
			cmds = append(cmds,
				m.setStatus(fmt.Sprintf("Applied %d, stopped: %v", msg.Applied, msg.Err)),
				commands.SaveSession(m.journal, m.boardDate, m.ledger.Changes()),
				commands.LoadBoard(m.timelineSvc, m.boardDate),
			)
			return m, tea.Batch(cmds...)
		}
		m.ledger.Clear()
		m.controller.SetAdjustMode(false)
		m.revalidate()
		cmds = append(cmds,
			m.setStatus(fmt.Sprintf("Applied %d change(s)", msg.Applied)),
			commands.ClearSession(m.journal, m.boardDate),
			commands.LoadBoard(m.timelineSvc, m.boardDate),
		)
		return m, tea.Batch(cmds...)

	case commands.CommitUndoneMsg:
		m.loading = true
		cmds = append(cmds,
			m.setStatus("Undone"),
			commands.LoadBoard(m.timelineSvc, m.boardDate),
		)
		return m, tea.Batch(cmds...)

	case commands.SuggestionsMsg:
		return m.applySuggestionsMsg(msg)

	case commands.SearchDebounceMsg:
		// Stale ticks from older keystrokes are dropped.
		if msg.Seq == m.searchSeq {
			m.rebuildQueue()
		}
		return m, nil

	case commands.UndoTickMsg:
		// Re-render so the undo countdown in the footer stays live.
		return m, commands.UndoTick()

	case commands.ErrMsg:
		m.err = msg.Err
		LogError("update", msg.Err)
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, commands.ClearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Handle search input when in search mode
	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applySuggestionsMsg surfaces LLM suggestions as staged assignments.
func (m Model) applySuggestionsMsg(msg commands.SuggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.Response == nil || len(msg.Response.Suggestions) == 0 {
		return m, m.setStatus("No suggestions")
	}
	if len(msg.Problems) > 0 {
		return m, m.setStatus(fmt.Sprintf("Suggestions rejected: %s", msg.Problems[0]))
	}

	bookingByID := make(map[string]int, len(m.queue))
	for i, bk := range m.queue {
		bookingByID[bk.ID] = i
	}
	guideName := make(map[string]string, len(m.timelines))
	guideIndex := make(map[string]int, len(m.timelines))
	for i, tl := range m.timelines {
		guideName[tl.Guide.ID] = tl.Guide.FullName()
		guideIndex[tl.Guide.ID] = i
	}

	m.controller.SetAdjustMode(true)
	staged := 0
	for _, sug := range msg.Response.Suggestions {
		i, ok := bookingByID[sug.BookingID]
		if !ok {
			continue
		}
		err := m.ledger.Add(stagedAssign(m.queue[i], sug.GuideID, guideName[sug.GuideID], guideIndex[sug.GuideID]))
		if err != nil {
			continue
		}
		staged++
	}
	m.rebuildQueue()
	m.revalidate()
	return m, tea.Batch(
		m.setStatus(fmt.Sprintf("Staged %d suggested assignment(s)", staged)),
		commands.SaveSession(m.journal, m.boardDate, m.ledger.Changes()),
	)
}

// handleMouseMsg drives the pointer side of the drag state machine.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := float64(msg.X) * pixelsPerCell
	y := float64(msg.Y) * pixelsPerCell

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		payload, ok := m.payloadAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		if err := m.controller.PressPointer(payload, x, y, m.boardPixelWidth()); err != nil {
			LogError("press", err)
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.controller.MovePointer(x, y) {
			return m, nil
		}
		target, row, ok := m.targetAt(msg.Y)
		if !ok {
			m.dragRow = -1
			m.controller.ClearHover()
			return m, nil
		}
		m.dragRow = row
		m.controller.DragOver(target)
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return m, nil
		}
		target, _, ok := m.targetAt(msg.Y)
		if !ok {
			m.controller.Cancel()
			m.dragRow = -1
			return m, nil
		}
		outcome, err := m.controller.ReleasePointer(context.Background(), target)
		m.dragRow = -1
		return m.afterDrop(outcome, err)
	}

	return m, nil
}

// afterDrop folds a drop outcome into status, journal, and reload work.
func (m Model) afterDrop(outcome dispatch.Outcome, err error) (tea.Model, tea.Cmd) {
	LogDrag("drop", m.controller)
	if err != nil {
		LogError("drop", err)
		return m, m.setStatus(fmt.Sprintf("Error: %v", err))
	}

	var cmds []tea.Cmd
	switch outcome.Kind {
	case dispatch.OutcomeStaged:
		m.rebuildQueue()
		m.revalidate()
		cmds = append(cmds,
			m.setStatus(outcome.Message),
			commands.SaveSession(m.journal, m.boardDate, m.ledger.Changes()),
		)
	case dispatch.OutcomeCommitted, dispatch.OutcomePartial:
		m.loading = true
		cmds = append(cmds,
			m.setStatus(outcome.Message),
			commands.LoadBoard(m.timelineSvc, m.boardDate),
		)
	case dispatch.OutcomeInfo:
		cmds = append(cmds, m.setStatus(outcome.Message))
	}
	return m, tea.Batch(cmds...)
}

// payloadAt hit-tests a cell position into a drag payload.
func (m *Model) payloadAt(cellX, cellY int) (drag.Payload, bool) {
	if row, ok := m.boardRowAt(cellY); ok {
		tl := m.timelines[row]
		seg, ok := m.segmentAt(tl, cellX)
		if !ok {
			return nil, false
		}
		return segmentPayload(tl, seg), true
	}
	if idx, ok := m.queueEntryAt(cellY); ok {
		entry := m.entries[idx]
		if entry.PendingAssign {
			return nil, false
		}
		return drag.QueuedBookingPayload{Booking: entry.Booking}, true
	}
	return nil, false
}

// targetAt hit-tests a cell row into a drop target. The second return
// is the board row index, or -1 for the tray.
func (m *Model) targetAt(cellY int) (drag.Target, int, bool) {
	if row, ok := m.boardRowAt(cellY); ok {
		tl := m.timelines[row]
		return drag.GuideRowTarget{
			GuideID:         tl.Guide.ID,
			GuideName:       tl.Guide.FullName(),
			VehicleCapacity: tl.Guide.VehicleCapacity,
			TimelineIndex:   row,
		}, row, true
	}
	if cellY == m.trayLine() {
		return drag.UnassignTrayTarget{}, -1, true
	}
	return nil, 0, false
}
