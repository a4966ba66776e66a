package ui

import (
	"fmt"
	"strings"

	"github.com/saimali7/Tour-CRM-sub005/internal/queueview"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// printTimelines renders guide schedules as indented segment lists.
func printTimelines(timelines []schedule.GuideTimeline) {
	for i, tl := range timelines {
		if i > 0 {
			fmt.Println()
		}

		load := fmt.Sprintf("%d/%d guests", tl.TotalGuests, tl.Guide.VehicleCapacity)
		if tl.Guide.VehicleCapacity > 0 && tl.TotalGuests > tl.Guide.VehicleCapacity {
			load = formatDanger(load)
		} else {
			load = formatMuted(load)
		}
		fmt.Printf("%s  %s\n", formatHeader(tl.Guide.FullName()), load)

		if len(tl.Segments) == 0 {
			fmt.Println(formatMuted("  no segments"))
			continue
		}
		for _, seg := range tl.Segments {
			fmt.Printf("  %s\n", formatSegment(seg))
		}
	}
}

// formatSegment renders one timeline segment line.
func formatSegment(seg schedule.Segment) string {
	window := fmt.Sprintf("%s-%s", seg.StartTime, seg.EndTime)
	label := string(seg.Kind)
	if seg.GuestCount > 0 {
		label = fmt.Sprintf("%s (%d guests)", label, seg.GuestCount)
	}

	switch seg.Kind {
	case schedule.SegmentPickup:
		return fmt.Sprintf("%s %s", window, formatPickup(label))
	case schedule.SegmentTour:
		return fmt.Sprintf("%s %s", window, formatTour(label))
	default:
		return fmt.Sprintf("%s %s", window, formatMuted(label))
	}
}

// printQueue renders the presented unassigned queue.
func printQueue(entries []queueview.Entry) {
	if len(entries) == 0 {
		fmt.Println("No unassigned bookings.")
		return
	}

	width := termWidth()
	for _, entry := range entries {
		bk := entry.Booking

		badge := "  "
		if bk.VIP {
			badge = formatVIP("★ ")
		}

		flags := bookingFlags(bk)
		line := fmt.Sprintf("%s%-10s %-20s %2d guests  %s %s  %s p%d",
			badge, bk.ReferenceNumber, truncate(bk.CustomerName, 20),
			bk.Guests.Total(), bk.TourTime, truncate(bk.PickupZone.Name, 14),
			flags, entry.Priority)
		if entry.PendingAssign {
			line = formatMuted(line + "  (pending)")
		}
		if len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
	}
}

// bookingFlags renders the priority-relevant booking flags.
func bookingFlags(bk schedule.Booking) string {
	var flags []string
	if bk.SpecialOccasion {
		flags = append(flags, "occasion")
	}
	if bk.FirstTimer {
		flags = append(flags, "first")
	}
	if bk.AccessibilityNeeds {
		flags = append(flags, "access")
	}
	if len(flags) == 0 {
		return "      "
	}
	return formatWarning(strings.Join(flags, ","))
}

// truncate shortens a string to max characters.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
