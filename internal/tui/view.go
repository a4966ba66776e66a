package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// barCell is one rendered cell of a timeline bar.
type barCell struct {
	ch    byte
	style *lipgloss.Style
}

// View renders the command center board.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderAxis())
	b.WriteString("\n")

	for i := range m.timelines {
		b.WriteString(m.renderGuideRow(i))
		b.WriteString("\n")
	}

	b.WriteString(m.renderTray())
	b.WriteString("\n\n")
	b.WriteString(m.renderQueue())
	b.WriteString(m.renderPending())
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with mode badges.
func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("Command Center")
	date := m.styles.HeaderStyle.Render(schedule.FormatBoardDate(m.boardDate))

	var badges []string
	if m.controller.AdjustMode() {
		badges = append(badges, m.styles.AdjustBadgeStyle.Render(fmt.Sprintf("ADJUST %d", m.ledger.Len())))
	}
	if action := m.committer.LastAction(); action != nil {
		left := commitUndoLeft(action.Timestamp)
		badges = append(badges, m.styles.UndoBadgeStyle.Render(fmt.Sprintf("undo %ds", left)))
	}
	if m.loading {
		badges = append(badges, m.styles.HeaderStyle.Render("loading..."))
	}

	parts := append([]string{title, date}, badges...)
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "")
}

// renderAxis renders the hour marks over the timeline area.
func (m Model) renderAxis() string {
	cells := m.boardCells()
	axis := make([]byte, cells)
	for i := range axis {
		axis[i] = ' '
	}

	hours := m.config.Board.EndHour - m.config.Board.StartHour
	for h := 0; h < hours; h++ {
		pos := h * cells / hours
		label := fmt.Sprintf("%d", m.config.Board.StartHour+h)
		for i := 0; i < len(label) && pos+i < cells; i++ {
			axis[pos+i] = label[i]
		}
	}

	pad := strings.Repeat(" ", m.guideColCells())
	return pad + m.styles.AxisStyle.Render(string(axis))
}

// renderGuideRow renders one guide's name column and timeline bar.
func (m Model) renderGuideRow(row int) string {
	tl := m.timelines[row]

	name := fmt.Sprintf("%s %d/%d", tl.Guide.FullName(), tl.TotalGuests, tl.Guide.VehicleCapacity)
	name = padOrTrim(name, m.guideColCells())
	nameStyle := m.styles.GuideNameStyle
	if m.focus == FocusBoard && row == m.cursor.Row {
		nameStyle = m.styles.GuideSelectedStyle
	}

	return nameStyle.Render(name) + m.renderTimelineBar(row, tl)
}

// renderTimelineBar paints the segment blocks for one guide row.
func (m Model) renderTimelineBar(row int, tl schedule.GuideTimeline) string {
	cells := m.boardCells()
	bar := make([]barCell, cells)
	for i := range bar {
		bar[i] = barCell{ch: ' '}
	}

	pendingSegs := m.pendingSegmentIDs()

	for si, seg := range tl.Segments {
		start, width := m.segmentCells(seg)
		style := m.styles.SegmentStyle(string(seg.Kind))
		if pendingSegs[seg.ID] {
			style = m.styles.SegmentPendingStyle
		}
		if m.focus == FocusBoard && row == m.cursor.Row && si == m.cursor.Seg {
			style = m.styles.SegmentSelectedStyle
		}

		label := segmentLabel(seg, width)
		for i := 0; i < width && start+i < cells; i++ {
			ch := byte(' ')
			if i < len(label) {
				ch = label[i]
			}
			bar[start+i] = barCell{ch: ch, style: &style}
		}
	}

	m.overlayGhost(row, bar)

	// Coalesce runs that share a style into single Render calls.
	var b strings.Builder
	i := 0
	for i < cells {
		j := i
		for j < cells && bar[j].style == bar[i].style {
			j++
		}
		run := make([]byte, j-i)
		for k := i; k < j; k++ {
			run[k-i] = bar[k].ch
		}
		if bar[i].style != nil {
			b.WriteString(bar[i].style.Render(string(run)))
		} else {
			b.Write(run)
		}
		i = j
	}
	return b.String()
}

// overlayGhost paints the drag ghost onto the hovered row's bar.
func (m Model) overlayGhost(row int, bar []barCell) {
	ghost := m.controller.Ghost()
	if !ghost.IsActive() || row != m.dragRow {
		return
	}
	target, ok := ghost.Target().(drag.GuideRowTarget)
	if !ok || target.TimelineIndex != row {
		return
	}

	start, width, label := m.ghostBlock()
	if width <= 0 {
		return
	}
	style := m.styles.GhostStyle(ghost.Impact())
	for i := 0; i < width && start+i < len(bar); i++ {
		ch := byte(' ')
		if i < len(label) {
			ch = label[i]
		}
		bar[start+i] = barCell{ch: ch, style: &style}
	}
}

// ghostBlock computes the ghost's cell position and label.
func (m Model) ghostBlock() (int, int, string) {
	cfg := m.boardCfg()
	cells := m.boardCells()

	switch p := m.controller.Payload().(type) {
	case drag.SegmentPayload:
		start := p.StartTime
		if lt := m.controller.LiveTime(); lt != "" {
			start = lt
		}
		col := int(cfg.TimeToPercent(start) / 100 * float64(cells))
		width := int(cfg.DurationToWidthPercent(p.DurationMinutes) / 100 * float64(cells))
		if width < 1 {
			width = 1
		}
		return col, width, m.ghostLabel(width)
	case drag.QueuedBookingPayload:
		start := p.Booking.TourTime
		if start == "" {
			start = p.Booking.PickupTime
		}
		duration := p.Booking.TourDurationMinutes
		if duration <= 0 {
			duration = 120
		}
		col := int(cfg.TimeToPercent(start) / 100 * float64(cells))
		width := int(cfg.DurationToWidthPercent(duration) / 100 * float64(cells))
		if width < 1 {
			width = 1
		}
		return col, width, m.ghostLabel(width)
	}
	return 0, 0, ""
}

// ghostLabel summarizes the hovered drop's impact inside the block.
func (m Model) ghostLabel(width int) string {
	impact := m.controller.Ghost().Impact()
	if impact == nil {
		return padOrTrim("...", width)
	}
	label := fmt.Sprintf("+%dm %d%%", impact.DriveTimeDeltaMinutes, impact.CapacityUtilizationPercent)
	if impact.ExceedsCapacity {
		label = "OVER " + label
	}
	return padOrTrim(label, width)
}

// renderTray renders the unassign tray line.
func (m Model) renderTray() string {
	hovered := false
	if ghost := m.controller.Ghost(); ghost.IsActive() {
		_, hovered = ghost.Target().(drag.UnassignTrayTarget)
	}

	label := " drop here to unassign "
	line := strings.Repeat("─", max(0, (m.width-len(label))/2))
	text := line + label + line
	if hovered {
		return m.styles.TrayHoveredStyle.Render(text)
	}
	return m.styles.TrayStyle.Render(text)
}

// renderQueue renders the unassigned bookings panel.
func (m Model) renderQueue() string {
	var b strings.Builder

	header := fmt.Sprintf("Queue (%d)  sort:%s", len(m.entries), m.sortMode)
	if m.mode == ModeSearch || m.search.Value() != "" {
		header += "  /" + m.search.View()
	}
	b.WriteString(m.styles.QueueHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, entry := range m.entries {
		if i >= queueVisibleMax {
			b.WriteString(m.styles.HelpStyle.Render(fmt.Sprintf("  ... %d more", len(m.entries)-queueVisibleMax)))
			b.WriteString("\n")
			break
		}

		bk := entry.Booking
		badge := " "
		if bk.VIP {
			badge = m.styles.QueueVIPStyle.Render("★")
		}
		line := fmt.Sprintf("%s %-24s %2d guests  %s %s  p%d",
			badge, padOrTrim(bk.CustomerName+" "+bk.ReferenceNumber, 24),
			bk.Guests.Total(), bk.TourTime, padOrTrim(bk.PickupZone.Name, 12), entry.Priority)

		style := m.styles.QueueEntryStyle
		if entry.PendingAssign {
			style = m.styles.QueuePendingStyle
		}
		if m.focus == FocusQueue && i == m.queueCursor {
			style = m.styles.QueueSelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderPending renders the pending-changes panel in adjust mode.
func (m Model) renderPending() string {
	if !m.controller.AdjustMode() || m.ledger.IsEmpty() {
		return ""
	}

	var b strings.Builder
	summary := m.ledger.Summarize()

	b.WriteString(m.styles.PendingHeaderStyle.Render(fmt.Sprintf("Pending (%d)", summary.Total())))
	b.WriteString("\n")

	for _, a := range summary.Assignments {
		b.WriteString(m.styles.PendingEntryStyle.Render(
			fmt.Sprintf("  assign %s to %s", a.Booking.ReferenceNumber, a.ToGuideName)))
		b.WriteString("\n")
	}
	for _, r := range summary.Reassignments {
		b.WriteString(m.styles.PendingEntryStyle.Render(
			fmt.Sprintf("  move %s: %s -> %s", r.SegmentID, r.FromGuideID, r.ToGuideID)))
		b.WriteString("\n")
	}
	for _, t := range summary.TimeShifts {
		b.WriteString(m.styles.PendingEntryStyle.Render(
			fmt.Sprintf("  shift %s: %s -> %s", t.SegmentID, t.OriginalStartTime, t.NewStartTime)))
		b.WriteString("\n")
	}

	for guideID, impact := range summary.ImpactByGuide {
		name := impact.GuideName
		if name == "" {
			name = guideID
		}
		b.WriteString(m.styles.HelpStyle.Render(fmt.Sprintf("  %s: %+d guests", name, impact.GuestDelta)))
		b.WriteString("\n")
	}

	for _, issue := range m.validation.Issues {
		b.WriteString(m.styles.IssueStyle.Render("  ! " + issue.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFooter renders help, drag feedback, and the status line.
func (m Model) renderFooter() string {
	var b strings.Builder

	if m.controller.State() == dispatch.StateDragging {
		feedback := "dragging: h/l move, j/k row, x tray, Enter drop, Esc cancel"
		if lt := m.controller.LiveTime(); lt != "" {
			feedback = fmt.Sprintf("-> %s  %s", schedule.FormatTimeDisplay(lt), feedback)
		}
		if rec := m.controller.Ghost().Recommendation(); rec != nil {
			feedback += fmt.Sprintf("  (try %s: %s)", rec.GuideName, rec.Reason)
		}
		b.WriteString(ansi.Truncate(m.styles.StatusStyle.Render(feedback), m.width, ""))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString(ansi.Truncate(m.styles.StatusStyle.Render(m.statusMsg), m.width, ""))
		b.WriteString("\n")
	}

	help := "j/k/h/l nav  Tab panel  Enter pick up  a adjust  s apply  u undo  / search  o sort  g suggest  r reload  q quit"
	b.WriteString(ansi.Truncate(m.styles.HelpStyle.Render(help), m.width, ""))
	return b.String()
}

// pendingSegmentIDs collects segment ids touched by staged changes.
func (m Model) pendingSegmentIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, c := range m.ledger.Changes() {
		switch v := c.(type) {
		case ledger.Reassign:
			ids[v.SegmentID] = true
		case ledger.TimeShift:
			ids[v.SegmentID] = true
		}
	}
	return ids
}

// segmentLabel renders a short label that fits the block width.
func segmentLabel(seg schedule.Segment, width int) string {
	if width < 4 {
		return ""
	}
	label := fmt.Sprintf("%s %s", seg.StartTime, seg.Kind)
	if seg.GuestCount > 0 {
		label = fmt.Sprintf("%s %dg", label, seg.GuestCount)
	}
	return padOrTrim(label, width)
}

// commitUndoLeft returns the whole seconds left in the undo window.
func commitUndoLeft(ts time.Time) int {
	left := int(commit.UndoWindow.Seconds()) - int(time.Since(ts).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// padOrTrim fits a string to exactly n characters.
func padOrTrim(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}
