// Package commit applies single-booking mutations immediately against
// the assignment service, independent of adjust-mode batching, with a
// short-lived single-step undo.
package commit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saimali7/Tour-CRM-sub005/internal/services"
)

// UndoWindow is how long a committed action remains undoable.
const UndoWindow = 5 * time.Second

// ActionKind identifies the mutation a CommittedAction recorded.
type ActionKind string

const (
	ActionAssign    ActionKind = "assign"
	ActionUnassign  ActionKind = "unassign"
	ActionReassign  ActionKind = "reassign"
	ActionTimeShift ActionKind = "time-shift"
)

// CommittedAction remembers enough state to invert the most recent
// mutation. At most one is remembered; arming a new action replaces
// any previous one.
type CommittedAction struct {
	ID            string
	Kind          ActionKind
	BookingID     string
	PrevGuideID   string
	NewGuideID    string
	PrevStartTime string
	NewStartTime  string
	Timestamp     time.Time
}

// Committer is the optimistic commit layer. Sequential calls for one
// booking are awaited in order; across different bookings, mutations
// may be in flight concurrently, tracked independently.
type Committer struct {
	svc services.AssignmentService

	mu       sync.Mutex
	inFlight map[string]bool
	last     *CommittedAction
	nextID   int

	now func() time.Time
}

// New creates a committer over the assignment service.
func New(svc services.AssignmentService) *Committer {
	return &Committer{
		svc:      svc,
		inFlight: make(map[string]bool),
		now:      time.Now,
	}
}

// NewWithClock creates a committer with an injected clock, for tests.
func NewWithClock(svc services.AssignmentService, now func() time.Time) *Committer {
	c := New(svc)
	c.now = now
	return c
}

// IsPending reports whether a mutation for the booking is in flight.
func (c *Committer) IsPending(bookingID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[bookingID]
}

// PendingCount returns the number of in-flight bookings.
func (c *Committer) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inFlight)
}

// Assign immediately assigns a booking to a guide and arms undo.
func (c *Committer) Assign(ctx context.Context, bookingID, guideID string) error {
	release, err := c.acquire(bookingID)
	if err != nil {
		return err
	}
	defer release()

	if err := classify(c.svc.Assign(ctx, bookingID, guideID), bookingID, guideID); err != nil {
		return err
	}
	c.arm(CommittedAction{Kind: ActionAssign, BookingID: bookingID, NewGuideID: guideID})
	return nil
}

// Unassign immediately returns a booking to the queue and arms undo.
// prevGuideID is remembered so undo can re-assign.
func (c *Committer) Unassign(ctx context.Context, bookingID, prevGuideID string) error {
	release, err := c.acquire(bookingID)
	if err != nil {
		return err
	}
	defer release()

	if err := classify(c.svc.Unassign(ctx, bookingID), bookingID, prevGuideID); err != nil {
		return err
	}
	c.arm(CommittedAction{Kind: ActionUnassign, BookingID: bookingID, PrevGuideID: prevGuideID})
	return nil
}

// UnassignAll unassigns every booking with best-effort semantics: a
// failure for one id is reported but does not abort the rest, since
// each booking's unassignment is independent. Returns the per-id
// failures, keyed by booking id.
func (c *Committer) UnassignAll(ctx context.Context, bookingIDs []string, prevGuideID string) map[string]error {
	failures := make(map[string]error)
	for _, id := range bookingIDs {
		if err := c.Unassign(ctx, id, prevGuideID); err != nil {
			failures[id] = err
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}

// Reassign moves a booking between guides as unassign-then-assign,
// awaited in order. If the assign fails after the unassign succeeded,
// one compensating re-assign to the original guide is attempted before
// giving up.
func (c *Committer) Reassign(ctx context.Context, bookingID, fromGuideID, toGuideID string) error {
	release, err := c.acquire(bookingID)
	if err != nil {
		return err
	}
	defer release()

	if err := classify(c.svc.Unassign(ctx, bookingID), bookingID, fromGuideID); err != nil {
		return err
	}

	if err := classify(c.svc.Assign(ctx, bookingID, toGuideID), bookingID, toGuideID); err != nil {
		if compErr := c.svc.Assign(ctx, bookingID, fromGuideID); compErr != nil {
			return &CompensationError{BookingID: bookingID, Err: compErr}
		}
		return err
	}

	c.arm(CommittedAction{
		Kind:        ActionReassign,
		BookingID:   bookingID,
		PrevGuideID: fromGuideID,
		NewGuideID:  toGuideID,
	})
	return nil
}

// TimeShift immediately moves a booking's pickup time and arms undo.
func (c *Committer) TimeShift(ctx context.Context, bookingID, guideID, prevStart, newStart string) error {
	release, err := c.acquire(bookingID)
	if err != nil {
		return err
	}
	defer release()

	if err := classify(c.svc.TimeShift(ctx, bookingID, guideID, newStart), bookingID, guideID); err != nil {
		return err
	}
	c.arm(CommittedAction{
		Kind:          ActionTimeShift,
		BookingID:     bookingID,
		NewGuideID:    guideID,
		PrevGuideID:   guideID,
		PrevStartTime: prevStart,
		NewStartTime:  newStart,
	})
	return nil
}

// LastAction returns the armed action if its undo window is still
// open, or nil.
func (c *Committer) LastAction() *CommittedAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil || c.now().Sub(c.last.Timestamp) > UndoWindow {
		return nil
	}
	action := *c.last
	return &action
}

// CanUndo reports whether an undo is currently available.
func (c *Committer) CanUndo() bool {
	return c.LastAction() != nil
}

// Undo inverts the most recent action with compensating service calls:
// assign becomes unassign, unassign re-assigns to the remembered
// guide, and reassign unassigns then re-assigns to the original guide
// in two sequential calls. A partial failure of the second call leaves
// the booking unassigned rather than silently wrong, surfaced as a
// CompensationError. Outside the undo window this is a no-op error.
func (c *Committer) Undo(ctx context.Context) error {
	c.mu.Lock()
	action := c.last
	if action == nil {
		c.mu.Unlock()
		return ErrNothingToUndo
	}
	if c.now().Sub(action.Timestamp) > UndoWindow {
		c.last = nil
		c.mu.Unlock()
		return ErrUndoExpired
	}
	c.last = nil
	c.mu.Unlock()

	switch action.Kind {
	case ActionAssign:
		return classify(c.svc.Unassign(ctx, action.BookingID), action.BookingID, action.NewGuideID)
	case ActionUnassign:
		return classify(c.svc.Assign(ctx, action.BookingID, action.PrevGuideID), action.BookingID, action.PrevGuideID)
	case ActionReassign:
		if err := classify(c.svc.Unassign(ctx, action.BookingID), action.BookingID, action.NewGuideID); err != nil {
			return err
		}
		if err := c.svc.Assign(ctx, action.BookingID, action.PrevGuideID); err != nil {
			return &CompensationError{BookingID: action.BookingID, Err: err}
		}
		return nil
	case ActionTimeShift:
		return classify(c.svc.TimeShift(ctx, action.BookingID, action.PrevGuideID, action.PrevStartTime),
			action.BookingID, action.PrevGuideID)
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

// acquire marks a booking in flight for the duration of one mutation.
func (c *Committer) acquire(bookingID string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[bookingID] {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInFlight, bookingID)
	}
	c.inFlight[bookingID] = true
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.inFlight, bookingID)
	}, nil
}

// arm records the action as the single undoable one, replacing any
// previous action.
func (c *Committer) arm(action CommittedAction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	action.ID = fmt.Sprintf("act-%d", c.nextID)
	action.Timestamp = c.now()
	c.last = &action
}
