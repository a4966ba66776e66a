package commit

import (
	"errors"
	"fmt"
	"strings"
)

// Commit layer errors.
var (
	ErrNoBookings      = errors.New("segment has no bookings to unassign")
	ErrAlreadyInFlight = errors.New("booking mutation already in flight")
	ErrUndoExpired     = errors.New("undo window has expired")
	ErrNothingToUndo   = errors.New("no recent action to undo")
)

// conflictMarker is the substring the assignment service includes in
// scheduling-conflict errors.
const conflictMarker = "conflicting assignment"

// ConflictError marks a scheduling conflict reported by the assignment
// service, distinct from generic failures, so the UI can show a
// guide-specific actionable message.
type ConflictError struct {
	BookingID string
	GuideID   string
	Err       error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("guide %s already has a conflicting assignment for booking %s: %v",
		e.GuideID, e.BookingID, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// IsConflict reports whether err is a scheduling conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), conflictMarker)
}

// CompensationError marks a failed compensating call: the system can
// no longer guarantee which state the booking is in.
type CompensationError struct {
	BookingID string
	Err       error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("booking %s may be unassigned, refresh and retry: %v", e.BookingID, e.Err)
}

func (e *CompensationError) Unwrap() error { return e.Err }

// classify wraps a raw service error, promoting conflicts.
func classify(err error, bookingID, guideID string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), conflictMarker) {
		return &ConflictError{BookingID: bookingID, GuideID: guideID, Err: err}
	}
	return err
}
