// Package queueview presents the pool of unassigned bookings: filtered,
// sorted, and marked against pending assignments.
package queueview

import (
	"sort"
	"strings"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// SortMode selects the queue ordering.
type SortMode string

const (
	SortPriority SortMode = "priority"
	SortTime     SortMode = "time"
	SortZone     SortMode = "zone"
	SortGuests   SortMode = "guests"
)

// SortModes lists the modes in cycle order for the UI.
var SortModes = []SortMode{SortPriority, SortTime, SortZone, SortGuests}

// Options filters and orders the queue.
type Options struct {
	// Search is a case-insensitive substring matched against customer
	// name, reference, tour name, and zone name.
	Search string

	// Zones restricts to the selected zone ids; empty means all.
	Zones map[string]bool

	Sort SortMode

	// PendingAssigned marks bookings already claimed by a pending
	// Assign change; they stay visible but are excluded from further
	// drag interaction.
	PendingAssigned map[string]bool
}

// Entry is one row of the presented queue.
type Entry struct {
	Booking       schedule.Booking
	Priority      int
	PendingAssign bool
}

// PriorityScore ranks a booking for dispatch attention. A deliberately
// simple, tunable heuristic: flagged guests first, then party size
// (capped), then earlier tours.
func PriorityScore(b schedule.Booking) int {
	score := 0
	if b.VIP {
		score += 100
	}
	if b.SpecialOccasion {
		score += 50
	}
	if b.FirstTimer {
		score += 25
	}
	if b.AccessibilityNeeds {
		score += 20
	}
	score += min(b.Guests.Total(), 10)
	score += 24 - schedule.TimeToMinutes(b.TourTime)/60
	return score
}

// Build filters, sorts, and marks the booking pool for display.
func Build(bookings []schedule.Booking, opts Options) []Entry {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	entries := make([]Entry, 0, len(bookings))
	for _, b := range bookings {
		if len(opts.Zones) > 0 && !opts.Zones[b.PickupZone.ID] {
			continue
		}
		if search != "" && !matches(b, search) {
			continue
		}
		entries = append(entries, Entry{
			Booking:       b,
			Priority:      PriorityScore(b),
			PendingAssign: opts.PendingAssigned[b.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch opts.Sort {
		case SortTime:
			return a.Booking.TourTime < b.Booking.TourTime
		case SortZone:
			if a.Booking.PickupZone.Name != b.Booking.PickupZone.Name {
				return a.Booking.PickupZone.Name < b.Booking.PickupZone.Name
			}
			return a.Booking.TourTime < b.Booking.TourTime
		case SortGuests:
			return a.Booking.Guests.Total() > b.Booking.Guests.Total()
		default: // SortPriority
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			return a.Booking.TourTime < b.Booking.TourTime
		}
	})

	return entries
}

func matches(b schedule.Booking, search string) bool {
	for _, field := range []string{b.CustomerName, b.ReferenceNumber, b.TourName, b.PickupZone.Name} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
