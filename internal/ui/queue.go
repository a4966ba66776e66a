package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub005/internal/queueview"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func (a *App) queueCmd() *cobra.Command {
	var (
		search string
		sortBy string
		zones  []string
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "List unassigned bookings",
		Long: `List the unassigned booking queue for a board date.

Bookings are ranked by dispatch priority: VIPs and flagged guests
first, then larger parties, then earlier tours.

Example:
  tourcrm queue
  tourcrm queue --date 2026-09-02 --sort time
  tourcrm queue --search smith`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runQueue(search, sortBy, zones)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by customer, reference, tour, or zone")
	cmd.Flags().StringVar(&sortBy, "sort", "priority", "Sort order: priority, time, zone, guests")
	cmd.Flags().StringSliceVar(&zones, "zone", nil, "Restrict to pickup zone ids")

	return cmd
}

func (a *App) runQueue(search, sortBy string, zones []string) error {
	date, err := schedule.ParseBoardDate(a.date)
	if err != nil {
		return err
	}

	svc, err := a.timelineClient()
	if err != nil {
		return err
	}

	bookings, err := svc.UnassignedBookings(context.Background(), schedule.FormatBoardDate(date))
	if err != nil {
		return fmt.Errorf("loading unassigned queue: %w", err)
	}

	opts := queueview.Options{
		Search: search,
		Sort:   queueview.SortMode(sortBy),
	}
	if len(zones) > 0 {
		opts.Zones = make(map[string]bool, len(zones))
		for _, z := range zones {
			opts.Zones[z] = true
		}
	}

	entries := queueview.Build(bookings, opts)

	fmt.Printf("%s  %d unassigned\n\n", formatHeader("Queue "+schedule.FormatBoardDate(date)), len(entries))
	printQueue(entries)
	return nil
}

func (a *App) boardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timelines",
		Short: "Print guide timelines for a board date",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTimelines()
		},
	}
}

func (a *App) runTimelines() error {
	date, err := schedule.ParseBoardDate(a.date)
	if err != nil {
		return err
	}

	svc, err := a.timelineClient()
	if err != nil {
		return err
	}

	timelines, err := svc.GuideTimelines(context.Background(), schedule.FormatBoardDate(date))
	if err != nil {
		return fmt.Errorf("loading timelines: %w", err)
	}

	fmt.Printf("%s\n\n", formatHeader("Board "+schedule.FormatBoardDate(date)))
	printTimelines(timelines)
	return nil
}
