package schedule

import "math"

// Timeline geometry defaults.
const (
	DefaultStartHour        = 7
	DefaultEndHour          = 20
	DefaultSnapMinutes      = 15
	DefaultGuideColumnWidth = 200
)

// TimelineConfig describes the visible board window and its geometry.
type TimelineConfig struct {
	StartHour        int // First visible hour (inclusive)
	EndHour          int // Last visible hour (exclusive)
	SnapMinutes      int // Drag snap granularity
	GuideColumnWidth int // Fixed width of the guide-name column, in pixels
}

// DefaultTimelineConfig returns the standard board window.
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		StartHour:        DefaultStartHour,
		EndHour:          DefaultEndHour,
		SnapMinutes:      DefaultSnapMinutes,
		GuideColumnWidth: DefaultGuideColumnWidth,
	}
}

// TotalMinutes returns the length of the visible window in minutes.
func (c TimelineConfig) TotalMinutes() int {
	return (c.EndHour - c.StartHour) * 60
}

// TimeToPercent converts "HH:MM" to a percentage position on the
// visible window. Times outside the window clamp to 0 or 100.
func (c TimelineConfig) TimeToPercent(t string) float64 {
	total := c.TotalMinutes()
	if total <= 0 {
		return 0
	}
	offset := TimeToMinutes(t) - c.StartHour*60
	pct := float64(offset) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// DurationToWidthPercent converts a duration in minutes to a width
// percentage of the visible window.
func (c TimelineConfig) DurationToWidthPercent(minutes int) float64 {
	total := c.TotalMinutes()
	if total <= 0 || minutes <= 0 {
		return 0
	}
	pct := float64(minutes) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// TimeShift is the result of converting a horizontal drag into a new
// segment position.
type TimeShift struct {
	NewStartTime string
	NewEndTime   string

	// Changed is true only when the snapped start moved by at least one
	// snap interval. Sub-snap jitter must not produce an edit.
	Changed bool
}

// CalculateTimeShift converts a horizontal pixel delta into a snapped,
// clamped time shift for a segment of the given duration.
//
// The pixel delta scales to minutes proportionally to the visible
// window over the container width, the new start rounds to the nearest
// snap interval, and the result clamps so the segment never extends
// past the visible window.
func (c TimelineConfig) CalculateTimeShift(deltaPixels float64, originalStart string, durationMinutes int, containerWidthPixels float64) TimeShift {
	origMinutes := TimeToMinutes(originalStart)

	shift := TimeShift{
		NewStartTime: MinutesToTime(origMinutes),
		NewEndTime:   MinutesToTime(origMinutes + durationMinutes),
	}
	if containerWidthPixels <= 0 || c.TotalMinutes() <= 0 {
		return shift
	}

	snap := c.SnapMinutes
	if snap <= 0 {
		snap = DefaultSnapMinutes
	}

	deltaMinutes := deltaPixels * float64(c.TotalMinutes()) / containerWidthPixels
	newMinutes := float64(origMinutes) + deltaMinutes

	// Round to the nearest snap interval.
	snapped := int(math.Round(newMinutes/float64(snap))) * snap

	// Clamp so the segment stays inside the visible window.
	minStart := c.StartHour * 60
	maxStart := c.EndHour*60 - durationMinutes
	if snapped < minStart {
		snapped = minStart
	}
	if snapped > maxStart {
		snapped = maxStart
	}

	shift.NewStartTime = MinutesToTime(snapped)
	shift.NewEndTime = MinutesToTime(snapped + durationMinutes)
	shift.Changed = abs(snapped-origMinutes) >= snap
	return shift
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
