// Package schedule defines the core domain types for the command center.
package schedule

import "errors"

// Domain errors.
var (
	ErrGuideNotFound   = errors.New("guide not found")
	ErrSegmentNotFound = errors.New("segment not found")
)

// SegmentKind represents the type of a timeline segment.
type SegmentKind string

const (
	SegmentPickup SegmentKind = "pickup"
	SegmentTour   SegmentKind = "tour"
	SegmentDrive  SegmentKind = "drive"
	SegmentIdle   SegmentKind = "idle"
)

// Draggable returns true if segments of this kind can be moved by the
// operator. Drive and idle blocks are derived scheduling artifacts and
// are never moved directly.
func (k SegmentKind) Draggable() bool {
	return k == SegmentPickup || k == SegmentTour
}

// Zone represents a pickup zone.
type Zone struct {
	ID    string
	Name  string
	Color string
}

// GuestCount breaks a party down by age group.
type GuestCount struct {
	Adults   int
	Children int
	Infants  int
}

// Total returns the total number of guests.
func (g GuestCount) Total() int {
	return g.Adults + g.Children + g.Infants
}

// Booking represents a guided-tour booking.
type Booking struct {
	ID                  string
	ReferenceNumber     string
	CustomerName        string
	Guests              GuestCount
	PickupZone          Zone
	PickupTime          string // "HH:MM"
	TourName            string
	TourTime            string // "HH:MM"
	TourRunKey          string
	TourDurationMinutes int

	VIP                bool
	FirstTimer         bool
	SpecialOccasion    bool
	AccessibilityNeeds bool
}

// Guide represents a tour guide and their vehicle.
type Guide struct {
	ID              string
	FirstName       string
	LastName        string
	VehicleCapacity int
}

// FullName returns the guide's display name.
func (g Guide) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

// Segment is a contiguous block of a guide's day on the timeline.
type Segment struct {
	ID         string
	Kind       SegmentKind
	StartTime  string // "HH:MM"
	EndTime    string // "HH:MM"
	TourRunID  string
	BookingIDs []string
	GuestCount int
}

// DurationMinutes returns the segment length in minutes.
func (s Segment) DurationMinutes() int {
	return TimeToMinutes(s.EndTime) - TimeToMinutes(s.StartTime)
}

// Overlaps returns true if the two segments' time ranges overlap.
func (s Segment) Overlaps(other Segment) bool {
	return TimesOverlap(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// GuideTimeline is one guide's schedule for a single board date, as
// supplied by the timeline query service. The command center never
// mutates it directly.
type GuideTimeline struct {
	Guide       Guide
	TotalGuests int
	Segments    []Segment

	// BaseZone is the zone of the guide's first pickup, when known.
	// Used only by the drive-time heuristic.
	BaseZone *Zone
}

// Segment returns the segment with the given id, if present.
func (t GuideTimeline) Segment(id string) (Segment, bool) {
	for _, s := range t.Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}
