package dispatch

import (
	"context"
	"fmt"

	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
)

// dropSegmentOnTray unassigns every booking tied to the segment,
// best-effort: one failing id does not abort the rest. Tray drops
// always go through the optimistic layer, even in adjust mode.
func (c *Controller) dropSegmentOnTray(ctx context.Context, p drag.SegmentPayload) (Outcome, error) {
	if !p.Draggable() {
		return Outcome{Kind: OutcomeNone}, fmt.Errorf("%w: %s", ErrNotDraggable, p.SegmentKind)
	}
	if len(p.BookingIDs) == 0 {
		return Outcome{Kind: OutcomeNone}, commit.ErrNoBookings
	}

	failures := c.committer.UnassignAll(ctx, p.BookingIDs, p.GuideID)
	if len(failures) == 0 {
		return Outcome{
			Kind:    OutcomeCommitted,
			Message: fmt.Sprintf("unassigned %d booking(s)", len(p.BookingIDs)),
		}, nil
	}
	return Outcome{
		Kind:     OutcomePartial,
		Message:  fmt.Sprintf("unassigned %d of %d booking(s)", len(p.BookingIDs)-len(failures), len(p.BookingIDs)),
		Failures: failures,
	}, nil
}

// dropTimeShift resolves a same-guide drop into a snapped time shift.
// A pixel delta below snap granularity yields no change at all.
func (c *Controller) dropTimeShift(ctx context.Context, p drag.SegmentPayload, pixelDelta, containerWidth float64) (Outcome, error) {
	if p.StartTime == "" {
		return Outcome{Kind: OutcomeNone}, nil
	}

	shift := c.cfg.CalculateTimeShift(pixelDelta, p.StartTime, p.DurationMinutes, containerWidth)
	if !shift.Changed {
		return Outcome{Kind: OutcomeNone}, nil
	}

	if c.adjustMode {
		err := c.ledger.Add(ledger.TimeShift{
			SegmentID:         p.SegmentID,
			GuideID:           p.GuideID,
			BookingIDs:        p.BookingIDs,
			OriginalStartTime: p.StartTime,
			NewStartTime:      shift.NewStartTime,
			OriginalEndTime:   p.EndTime,
			NewEndTime:        shift.NewEndTime,
			DurationMinutes:   p.DurationMinutes,
		})
		if err != nil {
			return Outcome{Kind: OutcomeNone}, err
		}
		return Outcome{
			Kind:    OutcomeStaged,
			Message: fmt.Sprintf("staged time shift to %s", shift.NewStartTime),
		}, nil
	}

	for _, bookingID := range p.BookingIDs {
		if err := c.committer.TimeShift(ctx, bookingID, p.GuideID, p.StartTime, shift.NewStartTime); err != nil {
			return Outcome{Kind: OutcomeNone}, err
		}
	}
	return Outcome{
		Kind:    OutcomeCommitted,
		Message: fmt.Sprintf("moved segment to %s", shift.NewStartTime),
	}, nil
}

// dropReassign resolves a cross-guide segment drop.
func (c *Controller) dropReassign(ctx context.Context, p drag.SegmentPayload, t drag.GuideRowTarget) (Outcome, error) {
	if !p.Draggable() {
		return Outcome{Kind: OutcomeNone}, fmt.Errorf("%w: %s", ErrNotDraggable, p.SegmentKind)
	}

	if c.adjustMode {
		err := c.ledger.Add(ledger.Reassign{
			TourRunID:   p.TourRunID,
			SegmentID:   p.SegmentID,
			FromGuideID: p.GuideID,
			ToGuideID:   t.GuideID,
			BookingIDs:  p.BookingIDs,
		})
		if err != nil {
			return Outcome{Kind: OutcomeNone}, err
		}
		return Outcome{
			Kind:    OutcomeStaged,
			Message: fmt.Sprintf("staged reassignment to %s", t.GuideName),
		}, nil
	}

	for _, bookingID := range p.BookingIDs {
		if err := c.committer.Reassign(ctx, bookingID, p.GuideID, t.GuideID); err != nil {
			return Outcome{Kind: OutcomeNone}, err
		}
	}
	return Outcome{
		Kind:    OutcomeCommitted,
		Message: fmt.Sprintf("reassigned to %s", t.GuideName),
	}, nil
}

// dropAssign resolves a queued-booking drop onto a guide row. The
// pending change carries the full booking snapshot so downstream UI
// never re-fetches.
func (c *Controller) dropAssign(ctx context.Context, p drag.QueuedBookingPayload, t drag.GuideRowTarget) (Outcome, error) {
	if c.adjustMode {
		err := c.ledger.Add(ledger.Assign{
			BookingID:     p.Booking.ID,
			ToGuideID:     t.GuideID,
			ToGuideName:   t.GuideName,
			TimelineIndex: t.TimelineIndex,
			Booking:       p.Booking,
		})
		if err != nil {
			return Outcome{Kind: OutcomeNone}, err
		}
		return Outcome{
			Kind:    OutcomeStaged,
			Message: fmt.Sprintf("staged %s onto %s", p.Booking.ReferenceNumber, t.GuideName),
		}, nil
	}

	if err := c.committer.Assign(ctx, p.Booking.ID, t.GuideID); err != nil {
		return Outcome{Kind: OutcomeNone}, err
	}
	return Outcome{
		Kind:    OutcomeCommitted,
		Message: fmt.Sprintf("assigned %s to %s", p.Booking.ReferenceNumber, t.GuideName),
	}, nil
}
