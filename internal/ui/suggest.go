package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub005/internal/assist"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

func (a *App) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest guide assignments for the unassigned queue",
		Long: `Ask the configured LLM to propose guide assignments for the
unassigned bookings on a board date. Suggestions are validated against
guide capacity before printing; nothing is committed.

Example:
  tourcrm suggest
  tourcrm suggest --date 2026-09-02`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runSuggest()
		},
	}
}

func (a *App) runSuggest() error {
	date, err := schedule.ParseBoardDate(a.date)
	if err != nil {
		return err
	}
	dateKey := schedule.FormatBoardDate(date)

	svc, err := a.timelineClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	timelines, err := svc.GuideTimelines(ctx, dateKey)
	if err != nil {
		return fmt.Errorf("loading timelines: %w", err)
	}
	queue, err := svc.UnassignedBookings(ctx, dateKey)
	if err != nil {
		return fmt.Errorf("loading unassigned queue: %w", err)
	}

	if len(queue) == 0 {
		fmt.Println("No unassigned bookings.")
		return nil
	}

	client, err := assist.NewClient(a.config.Assist.Provider, a.config.Assist.Model, a.config.Assist.BaseURL)
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	fmt.Printf("Requesting suggestions for %d bookings...\n\n", len(queue))

	suggester := assist.NewSuggester(client)
	resp, problems, err := suggester.SuggestWithRetry(ctx, timelines, queue, 1)
	if err != nil {
		return fmt.Errorf("requesting suggestions: %w", err)
	}

	guides := guidesByID(timelines)
	bookings := bookingsByID(queue)

	for _, s := range resp.Suggestions {
		bk, ok := bookings[s.BookingID]
		if !ok {
			continue
		}
		guide := s.GuideID
		if g, ok := guides[s.GuideID]; ok {
			guide = g.FullName()
		}
		fmt.Printf("%s %s (%d guests, %s) %s %s\n",
			formatHeader(bk.ReferenceNumber), bk.CustomerName,
			bk.Guests.Total(), bk.TourTime, formatTour("->"), formatHeader(guide))
		if s.Reason != "" {
			fmt.Printf("  %s\n", formatMuted(s.Reason))
		}
	}

	for _, w := range resp.Warnings {
		fmt.Printf("%s %s\n", formatWarning("!"), w)
	}
	for _, p := range problems {
		fmt.Printf("%s %s\n", formatDanger("!"), p)
	}

	if len(resp.Suggestions) > 0 {
		fmt.Printf("\nApply with: tourcrm assign <booking-id> <guide-id>\n")
	}
	return nil
}

func guidesByID(timelines []schedule.GuideTimeline) map[string]schedule.Guide {
	out := make(map[string]schedule.Guide, len(timelines))
	for _, tl := range timelines {
		out[tl.Guide.ID] = tl.Guide
	}
	return out
}

func bookingsByID(bookings []schedule.Booking) map[string]schedule.Booking {
	out := make(map[string]schedule.Booking, len(bookings))
	for _, b := range bookings {
		out[b.ID] = b
	}
	return out
}
