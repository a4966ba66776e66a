package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/saimali7/Tour-CRM-sub005/internal/preview"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and chrome
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	AxisStyle   lipgloss.Style

	// Guide column
	GuideNameStyle     lipgloss.Style
	GuideSelectedStyle lipgloss.Style

	// Segment styles
	SegmentPickupStyle   lipgloss.Style
	SegmentTourStyle     lipgloss.Style
	SegmentDriveStyle    lipgloss.Style
	SegmentIdleStyle     lipgloss.Style
	SegmentSelectedStyle lipgloss.Style
	SegmentPendingStyle  lipgloss.Style

	// Ghost preview styles, one per drive-time tier
	GhostEfficientStyle    lipgloss.Style
	GhostAcceptableStyle   lipgloss.Style
	GhostInefficientStyle  lipgloss.Style
	GhostOverCapacityStyle lipgloss.Style

	// Unassign tray
	TrayStyle        lipgloss.Style
	TrayHoveredStyle lipgloss.Style

	// Queue panel
	QueueHeaderStyle   lipgloss.Style
	QueueEntryStyle    lipgloss.Style
	QueueSelectedStyle lipgloss.Style
	QueuePendingStyle  lipgloss.Style
	QueueVIPStyle      lipgloss.Style

	// Pending panel
	PendingHeaderStyle lipgloss.Style
	PendingEntryStyle  lipgloss.Style
	IssueStyle         lipgloss.Style

	// Mode badges
	AdjustBadgeStyle lipgloss.Style
	UndoBadgeStyle   lipgloss.Style

	// Status message
	StatusStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		HeaderStyle: lipgloss.NewStyle().Foreground(p.FgMuted),
		AxisStyle:   lipgloss.NewStyle().Foreground(p.FgMuted),

		GuideNameStyle:     lipgloss.NewStyle().Foreground(p.Fg),
		GuideSelectedStyle: lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection).Bold(true),

		SegmentPickupStyle:   lipgloss.NewStyle().Foreground(p.TextOnPickup).Background(p.PickupBg),
		SegmentTourStyle:     lipgloss.NewStyle().Foreground(p.TextOnTour).Background(p.TourBg),
		SegmentDriveStyle:    lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.DriveBg),
		SegmentIdleStyle:     lipgloss.NewStyle().Foreground(p.FgMuted),
		SegmentSelectedStyle: lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection).Bold(true),
		SegmentPendingStyle:  lipgloss.NewStyle().Foreground(p.TextOnWarning).Background(p.PendingBg).Italic(true),

		GhostEfficientStyle:    lipgloss.NewStyle().Foreground(p.Pickup).Background(p.GhostBg),
		GhostAcceptableStyle:   lipgloss.NewStyle().Foreground(p.Warning).Background(p.GhostBg),
		GhostInefficientStyle:  lipgloss.NewStyle().Foreground(p.Danger).Background(p.GhostBg),
		GhostOverCapacityStyle: lipgloss.NewStyle().Foreground(p.TextOnDanger).Background(p.Danger).Bold(true),

		TrayStyle:        lipgloss.NewStyle().Foreground(p.FgMuted),
		TrayHoveredStyle: lipgloss.NewStyle().Foreground(p.TextOnDanger).Background(p.Danger).Bold(true),

		QueueHeaderStyle:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		QueueEntryStyle:    lipgloss.NewStyle().Foreground(p.Fg),
		QueueSelectedStyle: lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection),
		QueuePendingStyle:  lipgloss.NewStyle().Foreground(p.FgMuted).Strikethrough(true),
		QueueVIPStyle:      lipgloss.NewStyle().Foreground(p.VIP).Bold(true),

		PendingHeaderStyle: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		PendingEntryStyle:  lipgloss.NewStyle().Foreground(p.Fg),
		IssueStyle:         lipgloss.NewStyle().Foreground(p.Danger),

		AdjustBadgeStyle: lipgloss.NewStyle().Foreground(p.TextOnWarning).Background(p.Warning).Bold(true).Padding(0, 1),
		UndoBadgeStyle:   lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Padding(0, 1),

		StatusStyle: lipgloss.NewStyle().Foreground(p.Warning),
		HelpStyle:   lipgloss.NewStyle().Foreground(p.FgMuted),
	}
}

// GhostStyle picks the ghost style for a computed impact.
func (s *Styles) GhostStyle(impact *preview.Impact) lipgloss.Style {
	if impact == nil {
		return s.GhostEfficientStyle
	}
	if impact.ExceedsCapacity {
		return s.GhostOverCapacityStyle
	}
	switch impact.Tier {
	case preview.TierEfficient:
		return s.GhostEfficientStyle
	case preview.TierAcceptable:
		return s.GhostAcceptableStyle
	default:
		return s.GhostInefficientStyle
	}
}

// SegmentStyle picks the base style for a segment kind.
func (s *Styles) SegmentStyle(kind string) lipgloss.Style {
	switch kind {
	case "pickup":
		return s.SegmentPickupStyle
	case "tour":
		return s.SegmentTourStyle
	case "drive":
		return s.SegmentDriveStyle
	default:
		return s.SegmentIdleStyle
	}
}
