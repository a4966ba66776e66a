// Package services defines the CRM backend boundaries the command
// center consumes: assignment mutations and timeline queries.
package services

import (
	"context"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// AssignmentService mediates every schedule mutation. The command
// center never writes timeline data directly.
type AssignmentService interface {
	// Assign schedules a booking onto a guide.
	Assign(ctx context.Context, bookingID, guideID string) error

	// Unassign returns a booking to the unassigned pool.
	Unassign(ctx context.Context, bookingID string) error

	// TimeShift moves a booking's pickup to a new start time on the
	// same guide.
	TimeShift(ctx context.Context, bookingID, guideID, newStartTime string) error
}

// TimelineService supplies the read-side data the board renders and
// validates against. Invalidation after a successful commit is the
// caller's responsibility.
type TimelineService interface {
	// GuideTimelines returns every guide's timeline for a board date
	// (YYYY-MM-DD).
	GuideTimelines(ctx context.Context, date string) ([]schedule.GuideTimeline, error)

	// UnassignedBookings returns the pool of not-yet-scheduled bookings
	// for a board date.
	UnassignedBookings(ctx context.Context, date string) ([]schedule.Booking, error)
}
