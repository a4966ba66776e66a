// Package drag defines the data carried by drag sources and drop
// targets on the command center board.
package drag

import "github.com/saimali7/Tour-CRM-sub005/internal/schedule"

// PayloadKind discriminates the drag payload variants.
type PayloadKind string

const (
	PayloadSegment       PayloadKind = "segment"
	PayloadQueuedBooking PayloadKind = "queued-booking"
)

// Payload is the tagged union carried by a draggable source. Exactly
// one variant is active per drag session; consumers narrow with
// AsSegment / AsQueuedBooking, which are total and mutually exclusive.
type Payload interface {
	Kind() PayloadKind
}

// SegmentPayload is carried when dragging a timeline segment.
type SegmentPayload struct {
	SegmentID   string
	GuideID     string
	TourRunID   string
	SegmentKind schedule.SegmentKind

	BookingIDs      []string
	StartTime       string // "HH:MM", optional
	EndTime         string // "HH:MM", optional
	DurationMinutes int
	GuestCount      int
}

// Kind implements Payload.
func (SegmentPayload) Kind() PayloadKind { return PayloadSegment }

// Draggable returns true if this segment may be picked up at all.
func (p SegmentPayload) Draggable() bool {
	return p.SegmentKind.Draggable()
}

// QueuedBookingPayload is carried when dragging a booking out of the
// unassigned queue. It holds a full booking snapshot so drop targets
// never need to re-fetch.
type QueuedBookingPayload struct {
	Booking schedule.Booking
}

// Kind implements Payload.
func (QueuedBookingPayload) Kind() PayloadKind { return PayloadQueuedBooking }

// AsSegment narrows a payload to the segment variant.
func AsSegment(p Payload) (SegmentPayload, bool) {
	s, ok := p.(SegmentPayload)
	return s, ok
}

// AsQueuedBooking narrows a payload to the queued-booking variant.
func AsQueuedBooking(p Payload) (QueuedBookingPayload, bool) {
	b, ok := p.(QueuedBookingPayload)
	return b, ok
}
