package tui

import (
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// Fixed chrome lines above the guide rows: header and time axis.
const boardTopLines = 2

// queueVisibleMax caps how many queue entries render at once.
const queueVisibleMax = 8

// boardCfg builds the timeline geometry from config.
func (m *Model) boardCfg() schedule.TimelineConfig {
	return schedule.TimelineConfig{
		StartHour:        m.config.Board.StartHour,
		EndHour:          m.config.Board.EndHour,
		SnapMinutes:      m.config.Board.SnapMinutes,
		GuideColumnWidth: m.config.Board.GuideColumnWidth,
	}
}

// guideColCells is the guide-name column width in terminal cells.
func (m *Model) guideColCells() int {
	cells := int(float64(m.config.Board.GuideColumnWidth) / pixelsPerCell)
	if cells < 12 {
		cells = 12
	}
	return cells
}

// boardCells is the drawable timeline width in terminal cells.
func (m *Model) boardCells() int {
	cells := m.width - m.guideColCells() - 1
	if cells < 10 {
		cells = 10
	}
	return cells
}

// boardPixelWidth is the timeline width in the drag layer's pixel space.
func (m *Model) boardPixelWidth() float64 {
	return float64(m.boardCells()) * pixelsPerCell
}

// boardRowAt maps a terminal line to a guide row index.
func (m *Model) boardRowAt(cellY int) (int, bool) {
	row := cellY - boardTopLines
	if row < 0 || row >= len(m.timelines) {
		return 0, false
	}
	return row, true
}

// trayLine is the terminal line of the unassign tray.
func (m *Model) trayLine() int {
	return boardTopLines + len(m.timelines)
}

// queueStartLine is the terminal line of the first queue entry.
func (m *Model) queueStartLine() int {
	// Tray, blank, queue header.
	return m.trayLine() + 3
}

// queueEntryAt maps a terminal line to a visible queue entry index.
func (m *Model) queueEntryAt(cellY int) (int, bool) {
	idx := cellY - m.queueStartLine()
	if idx < 0 || idx >= len(m.entries) || idx >= queueVisibleMax {
		return 0, false
	}
	return idx, true
}

// segmentAt maps a terminal column on a guide row to the segment under it.
func (m *Model) segmentAt(tl schedule.GuideTimeline, cellX int) (schedule.Segment, bool) {
	col := cellX - m.guideColCells()
	if col < 0 || col >= m.boardCells() {
		return schedule.Segment{}, false
	}

	cfg := m.boardCfg()
	pct := float64(col) / float64(m.boardCells()) * 100
	for _, seg := range tl.Segments {
		start := cfg.TimeToPercent(seg.StartTime)
		width := cfg.DurationToWidthPercent(seg.DurationMinutes())
		if pct >= start && pct < start+width {
			return seg, true
		}
	}
	return schedule.Segment{}, false
}

// segmentCells converts a segment to a start column and width in cells.
func (m *Model) segmentCells(seg schedule.Segment) (int, int) {
	cfg := m.boardCfg()
	cells := m.boardCells()
	start := int(cfg.TimeToPercent(seg.StartTime) / 100 * float64(cells))
	width := int(cfg.DurationToWidthPercent(seg.DurationMinutes()) / 100 * float64(cells))
	if width < 1 {
		width = 1
	}
	if start+width > cells {
		width = cells - start
	}
	return start, width
}

// segmentPayload builds the drag payload for a timeline segment.
func segmentPayload(tl schedule.GuideTimeline, seg schedule.Segment) drag.SegmentPayload {
	return drag.SegmentPayload{
		SegmentID:       seg.ID,
		GuideID:         tl.Guide.ID,
		TourRunID:       seg.TourRunID,
		SegmentKind:     seg.Kind,
		BookingIDs:      seg.BookingIDs,
		StartTime:       seg.StartTime,
		EndTime:         seg.EndTime,
		DurationMinutes: seg.DurationMinutes(),
		GuestCount:      seg.GuestCount,
	}
}

// stagedAssign builds the pending change for an accepted suggestion.
func stagedAssign(bk schedule.Booking, guideID, guideName string, timelineIndex int) ledger.Assign {
	return ledger.Assign{
		BookingID:     bk.ID,
		ToGuideID:     guideID,
		ToGuideName:   guideName,
		TimelineIndex: timelineIndex,
		Booking:       bk,
	}
}
