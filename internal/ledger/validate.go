package ledger

import (
	"fmt"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// defaultTourDurationMinutes sizes synthetic segments for assignments
// whose booking carries no tour duration.
const defaultTourDurationMinutes = 120

// IssueKind classifies a batch validation issue.
type IssueKind string

const (
	IssueOverlap  IssueKind = "overlap"
	IssueCapacity IssueKind = "capacity"
)

// Issue is a single problem found while validating the pending batch.
type Issue struct {
	Kind      IssueKind
	GuideID   string
	GuideName string
	Message   string
}

// String returns a formatted issue message.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.GuideName, i.Message)
}

// ValidationResult is the outcome of validating the whole pending
// batch. Both overlap and capacity issues block commit.
type ValidationResult struct {
	Valid  bool
	Issues []Issue
}

// ExceedsCapacity reports whether the batch overloads the given guide.
func (r ValidationResult) ExceedsCapacity(guideID string) bool {
	for _, i := range r.Issues {
		if i.Kind == IssueCapacity && i.GuideID == guideID {
			return true
		}
	}
	return false
}

// Validate checks the pending batch against the real guide timelines.
// It constructs a hypothetical per-guide schedule by applying every
// TimeShift (replacing the matching segment's times) and every Assign
// (appending a synthetic segment sized by the booking's tour duration)
// and then checks each guide for pairwise tour/pickup overlaps and for
// capacity overflow. The result is recomputed from scratch whenever
// the ledger or base timelines change; nothing is maintained
// incrementally.
func Validate(changes []Change, timelines []schedule.GuideTimeline) ValidationResult {
	type hypothetical struct {
		guide    schedule.Guide
		guests   int
		segments []schedule.Segment
	}

	byGuide := make(map[string]*hypothetical, len(timelines))
	order := make([]string, 0, len(timelines))
	for _, tl := range timelines {
		h := &hypothetical{guide: tl.Guide, guests: tl.TotalGuests}
		h.segments = append(h.segments, tl.Segments...)
		byGuide[tl.Guide.ID] = h
		order = append(order, tl.Guide.ID)
	}

	for _, c := range changes {
		switch v := c.(type) {
		case TimeShift:
			h, ok := byGuide[v.GuideID]
			if !ok {
				continue
			}
			for i := range h.segments {
				if h.segments[i].ID == v.SegmentID {
					h.segments[i].StartTime = v.NewStartTime
					h.segments[i].EndTime = v.NewEndTime
				}
			}
		case Assign:
			h, ok := byGuide[v.ToGuideID]
			if !ok {
				continue
			}
			duration := v.Booking.TourDurationMinutes
			if duration <= 0 {
				duration = defaultTourDurationMinutes
			}
			start := v.Booking.TourTime
			if start == "" {
				start = v.Booking.PickupTime
			}
			h.segments = append(h.segments, schedule.Segment{
				ID:         "pending:" + v.BookingID,
				Kind:       schedule.SegmentTour,
				StartTime:  start,
				EndTime:    schedule.MinutesToTime(schedule.TimeToMinutes(start) + duration),
				BookingIDs: []string{v.BookingID},
				GuestCount: v.Booking.Guests.Total(),
			})
			h.guests += v.Booking.Guests.Total()
		}
	}

	result := ValidationResult{Valid: true}
	for _, guideID := range order {
		h := byGuide[guideID]

		// Pairwise overlap over owned (tour/pickup) segments only;
		// drive and idle blocks are derived and may legitimately touch.
		owned := h.segments[:0:0]
		for _, s := range h.segments {
			if s.Kind == schedule.SegmentTour || s.Kind == schedule.SegmentPickup {
				owned = append(owned, s)
			}
		}
		for i := 0; i < len(owned); i++ {
			for j := i + 1; j < len(owned); j++ {
				if owned[i].Overlaps(owned[j]) {
					result.Issues = append(result.Issues, Issue{
						Kind:      IssueOverlap,
						GuideID:   guideID,
						GuideName: h.guide.FullName(),
						Message: fmt.Sprintf("%s (%s-%s) overlaps %s (%s-%s)",
							owned[i].ID, owned[i].StartTime, owned[i].EndTime,
							owned[j].ID, owned[j].StartTime, owned[j].EndTime),
					})
				}
			}
		}

		if h.guide.VehicleCapacity > 0 && h.guests > h.guide.VehicleCapacity {
			result.Issues = append(result.Issues, Issue{
				Kind:      IssueCapacity,
				GuideID:   guideID,
				GuideName: h.guide.FullName(),
				Message: fmt.Sprintf("%d guests exceed vehicle capacity of %d",
					h.guests, h.guide.VehicleCapacity),
			})
		}
	}

	result.Valid = len(result.Issues) == 0
	return result
}
