package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func (a *App) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <booking-id> <guide-id>",
		Short: "Assign an unassigned booking to a guide",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runAssign(args[0], args[1])
		},
	}
}

func (a *App) runAssign(bookingID, guideID string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	committer := commit.New(client)

	if err := committer.Assign(context.Background(), bookingID, guideID); err != nil {
		return fmt.Errorf("assigning booking: %w", err)
	}

	fmt.Printf("Assigned %s to %s\n", bookingID, guideID)
	return nil
}

func (a *App) unassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <booking-id>",
		Short: "Return a booking to the unassigned queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runUnassign(args[0])
		},
	}
}

func (a *App) runUnassign(bookingID string) error {
	date, err := schedule.ParseBoardDate(a.date)
	if err != nil {
		return err
	}

	guideID, _, err := a.locateBooking(bookingID, date)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	committer := commit.New(client)

	if err := committer.Unassign(context.Background(), bookingID, guideID); err != nil {
		return fmt.Errorf("unassigning booking: %w", err)
	}

	fmt.Printf("Unassigned %s from %s\n", bookingID, guideID)
	return nil
}

func (a *App) shiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shift <booking-id> <new-start>",
		Short: "Move a booking's pickup to a new start time",
		Long: `Move an assigned booking's pickup to a new start time (HH:MM)
on the same guide.

Example:
  tourcrm shift bk_123 09:15`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runShift(args[0], args[1])
		},
	}
}

func (a *App) runShift(bookingID, newStart string) error {
	if !schedule.ValidTime(newStart) {
		return fmt.Errorf("invalid start time %q, want HH:MM", newStart)
	}

	date, err := schedule.ParseBoardDate(a.date)
	if err != nil {
		return err
	}

	guideID, prevStart, err := a.locateBooking(bookingID, date)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	committer := commit.New(client)

	if err := committer.TimeShift(context.Background(), bookingID, guideID, prevStart, newStart); err != nil {
		return fmt.Errorf("shifting booking: %w", err)
	}

	fmt.Printf("Shifted %s from %s to %s\n", bookingID, prevStart, newStart)
	return nil
}

// locateBooking finds which guide currently holds the booking and the
// start time of its segment on the board.
func (a *App) locateBooking(bookingID string, date time.Time) (guideID, startTime string, err error) {
	svc, err := a.timelineClient()
	if err != nil {
		return "", "", err
	}

	timelines, err := svc.GuideTimelines(context.Background(), schedule.FormatBoardDate(date))
	if err != nil {
		return "", "", fmt.Errorf("loading timelines: %w", err)
	}

	for _, tl := range timelines {
		for _, seg := range tl.Segments {
			for _, id := range seg.BookingIDs {
				if id == bookingID {
					return tl.Guide.ID, seg.StartTime, nil
				}
			}
		}
	}
	return "", "", fmt.Errorf("booking %s not found on the board for %s", bookingID, schedule.FormatBoardDate(date))
}
