// Package ledger holds the ordered set of pending, not-yet-applied
// schedule edits staged during an adjust-mode session, with bounded
// undo/redo history and batch validation.
package ledger

import (
	"time"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// ChangeKind discriminates the pending-change variants.
type ChangeKind string

const (
	KindReassign  ChangeKind = "reassign"
	KindTimeShift ChangeKind = "time-shift"
	KindAssign    ChangeKind = "assign"
)

// Change is the tagged union of staged edits. Each variant carries an
// opaque id and a timestamp assigned by the ledger when added.
type Change interface {
	Kind() ChangeKind
	ID() string
	When() time.Time

	// key identifies the entity the change edits: a segment for
	// Reassign/TimeShift, a booking for Assign. The ledger keeps at
	// most one change per key.
	key() string
}

// meta is the common identity embedded in every variant.
type meta struct {
	id        string
	timestamp time.Time
}

func (m meta) ID() string      { return m.id }
func (m meta) When() time.Time { return m.timestamp }

// Reassign moves a segment's bookings from one guide to another.
type Reassign struct {
	meta
	TourRunID   string
	SegmentID   string
	FromGuideID string
	ToGuideID   string
	BookingIDs  []string
}

// Kind implements Change.
func (Reassign) Kind() ChangeKind { return KindReassign }

func (r Reassign) key() string { return "segment:" + r.SegmentID }

// TimeShift moves a segment to a new start time on the same guide.
type TimeShift struct {
	meta
	SegmentID         string
	GuideID           string
	BookingIDs        []string
	OriginalStartTime string
	NewStartTime      string
	OriginalEndTime   string
	NewEndTime        string
	DurationMinutes   int
}

// Kind implements Change.
func (TimeShift) Kind() ChangeKind { return KindTimeShift }

func (t TimeShift) key() string { return "segment:" + t.SegmentID }

// Assign schedules a queued booking onto a guide. It carries a full
// booking snapshot so downstream consumers never need to re-fetch.
type Assign struct {
	meta
	BookingID     string
	ToGuideID     string
	ToGuideName   string
	TimelineIndex int
	Booking       schedule.Booking
}

// Kind implements Change.
func (Assign) Kind() ChangeKind { return KindAssign }

func (a Assign) key() string { return "booking:" + a.BookingID }
