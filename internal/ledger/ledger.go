package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Ledger errors.
var (
	ErrDuplicateAssign = errors.New("booking already has a pending assignment")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
)

// maxHistory bounds both history stacks; the oldest snapshot is
// evicted when the cap is reached.
const maxHistory = 50

// Ledger is the ordered, deduplicated set of pending changes for one
// adjust-mode session, plus snapshot-based undo/redo history. It is
// owned by a single editing session and is not safe for concurrent use.
type Ledger struct {
	changes []Change

	undoStack [][]Change
	redoStack [][]Change

	// replaying guards undo/redo from pushing onto history themselves.
	replaying bool

	nextID int
	now    func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{now: time.Now}
}

// NewWithClock creates a ledger with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Ledger {
	return &Ledger{now: now}
}

// Changes returns the current entries in order. The returned slice is
// a copy; entries themselves are immutable.
func (l *Ledger) Changes() []Change {
	out := make([]Change, len(l.changes))
	copy(out, l.changes)
	return out
}

// Len returns the number of pending changes.
func (l *Ledger) Len() int { return len(l.changes) }

// IsEmpty reports whether the ledger has no pending changes.
func (l *Ledger) IsEmpty() bool { return len(l.changes) == 0 }

// HasPendingAssign reports whether the booking is already claimed by a
// pending Assign change.
func (l *Ledger) HasPendingAssign(bookingID string) bool {
	for _, c := range l.changes {
		if a, ok := c.(Assign); ok && a.BookingID == bookingID {
			return true
		}
	}
	return false
}

// Add stages a change. For Assign, a booking that already has a
// pending Assign is rejected with ErrDuplicateAssign and the ledger is
// left unmodified. Otherwise the current state is snapshotted to the
// undo stack, the redo stack is cleared, and the change either
// replaces the existing entry for the same entity (preserving ledger
// order) or is appended with a fresh id and timestamp.
func (l *Ledger) Add(c Change) error {
	if a, ok := c.(Assign); ok && l.HasPendingAssign(a.BookingID) {
		return fmt.Errorf("%w: booking %s", ErrDuplicateAssign, a.BookingID)
	}

	l.pushHistory()
	stamped := l.stamp(c)

	for i, existing := range l.changes {
		if existing.key() == stamped.key() {
			l.changes[i] = stamped
			return nil
		}
	}
	l.changes = append(l.changes, stamped)
	return nil
}

// Remove deletes the change with the given id. A no-op removal does
// not pollute undo history.
func (l *Ledger) Remove(id string) bool {
	for i, c := range l.changes {
		if c.ID() == id {
			l.pushHistory()
			l.changes = append(l.changes[:i:i], l.changes[i+1:]...)
			return true
		}
	}
	return false
}

// Clear discards all pending changes. Clearing an empty ledger does
// not pollute undo history.
func (l *Ledger) Clear() {
	if len(l.changes) == 0 {
		return
	}
	l.pushHistory()
	l.changes = nil
}

// CanUndo reports whether an undo is available.
func (l *Ledger) CanUndo() bool { return len(l.undoStack) > 0 }

// CanRedo reports whether a redo is available.
func (l *Ledger) CanRedo() bool { return len(l.redoStack) > 0 }

// Undo restores the most recent snapshot, pushing the current state
// onto the redo stack.
func (l *Ledger) Undo() error {
	if len(l.undoStack) == 0 {
		return ErrNothingToUndo
	}

	l.replaying = true
	defer func() { l.replaying = false }()

	snapshot := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]

	l.redoStack = appendSnapshot(l.redoStack, l.changes)
	l.changes = cloneChanges(snapshot)
	return nil
}

// Redo reverses the most recent undo.
func (l *Ledger) Redo() error {
	if len(l.redoStack) == 0 {
		return ErrNothingToRedo
	}

	l.replaying = true
	defer func() { l.replaying = false }()

	snapshot := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]

	l.undoStack = appendSnapshot(l.undoStack, l.changes)
	l.changes = cloneChanges(snapshot)
	return nil
}

// Restore replaces the ledger contents with previously journaled
// changes, stamping fresh ids. History is reset.
func (l *Ledger) Restore(changes []Change) {
	l.changes = nil
	l.undoStack = nil
	l.redoStack = nil
	for _, c := range changes {
		l.changes = append(l.changes, l.stamp(c))
	}
}

// pushHistory snapshots the current state onto the undo stack and
// clears the redo stack. Skipped while replaying undo/redo.
func (l *Ledger) pushHistory() {
	if l.replaying {
		return
	}
	l.undoStack = appendSnapshot(l.undoStack, l.changes)
	l.redoStack = nil
}

// stamp returns a copy of the change carrying a fresh id and timestamp.
func (l *Ledger) stamp(c Change) Change {
	l.nextID++
	m := meta{id: fmt.Sprintf("chg-%d", l.nextID), timestamp: l.now()}
	switch v := c.(type) {
	case Reassign:
		v.meta = m
		return v
	case TimeShift:
		v.meta = m
		return v
	case Assign:
		v.meta = m
		return v
	default:
		return c
	}
}

func appendSnapshot(stack [][]Change, changes []Change) [][]Change {
	if len(stack) >= maxHistory {
		stack = stack[1:]
	}
	return append(stack, cloneChanges(changes))
}

func cloneChanges(changes []Change) []Change {
	if changes == nil {
		return nil
	}
	out := make([]Change, len(changes))
	copy(out, changes)
	return out
}
