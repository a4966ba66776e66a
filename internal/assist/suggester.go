package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// ErrMaxRetriesExceeded is returned when all retry attempts fail validation.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, validation still failing")

// Suggestion proposes placing one queued booking onto a guide.
type Suggestion struct {
	BookingID string `json:"booking_id"`
	GuideID   string `json:"guide_id"`
	Reason    string `json:"reason"`
}

// SuggestResponse is the JSON shape the model must return.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// Suggester asks an LLM for assignment suggestions and validates them
// against the live board before they are shown to the operator.
type Suggester struct {
	client Client
}

// NewSuggester creates a suggester over the given client.
func NewSuggester(client Client) *Suggester {
	return &Suggester{client: client}
}

// SuggestWithRetry asks for assignments of the queued bookings onto the
// guide timelines. Invalid suggestions are fed back to the model once
// per retry; when retries are exhausted the last validation errors are
// returned alongside whatever valid suggestions survived.
func (s *Suggester) SuggestWithRetry(ctx context.Context, timelines []schedule.GuideTimeline, queue []schedule.Booking, maxRetries int) (*SuggestResponse, []string, error) {
	messages := []Message{
		{Role: "system", Content: suggestSystemPrompt},
		{Role: "user", Content: buildSuggestPrompt(timelines, queue)},
	}

	var lastErrors []string
	var lastResp *SuggestResponse
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var resp SuggestResponse
		if err := s.client.ChatJSON(ctx, messages, &resp); err != nil {
			return nil, nil, fmt.Errorf("requesting suggestions (attempt %d): %w", attempt+1, err)
		}
		lastResp = &resp

		lastErrors = validateSuggestions(resp.Suggestions, timelines, queue)
		if len(lastErrors) == 0 {
			return &resp, nil, nil
		}

		if attempt < maxRetries {
			respJSON, _ := json.Marshal(resp)
			messages = append(messages,
				Message{Role: "assistant", Content: string(respJSON)},
				Message{Role: "user", Content: formatSuggestErrors(lastErrors)},
			)
		}
	}

	return lastResp, lastErrors, nil
}

const suggestSystemPrompt = `You are a dispatcher for a tour operator. You place unassigned bookings onto guide schedules.
Rules:
- Only suggest booking ids and guide ids that appear in the data given to you.
- A guide's total guests after your suggestions must not exceed the vehicle capacity.
- Prefer guides whose existing pickups are in the same zone as the booking.
Respond with JSON only: {"suggestions": [{"booking_id": "...", "guide_id": "...", "reason": "..."}], "warnings": []}`

// buildSuggestPrompt renders the board state for the model.
func buildSuggestPrompt(timelines []schedule.GuideTimeline, queue []schedule.Booking) string {
	var b strings.Builder

	b.WriteString("Guides:\n")
	for _, tl := range timelines {
		zone := "unknown zone"
		if tl.BaseZone != nil {
			zone = tl.BaseZone.Name
		}
		fmt.Fprintf(&b, "- %s (%s): capacity %d, currently %d guests, base %s\n",
			tl.Guide.ID, tl.Guide.FullName(), tl.Guide.VehicleCapacity, tl.TotalGuests, zone)
	}

	b.WriteString("\nUnassigned bookings:\n")
	for _, bk := range queue {
		fmt.Fprintf(&b, "- %s (%s): %d guests, pickup %s in %s, tour at %s\n",
			bk.ID, bk.ReferenceNumber, bk.Guests.Total(), bk.PickupTime, bk.PickupZone.Name, bk.TourTime)
	}

	b.WriteString("\nSuggest an assignment for each booking that fits, or leave it out with a warning.")
	return b.String()
}

// validateSuggestions checks suggestions against the live board and
// returns human-readable problems, one per bad suggestion.
func validateSuggestions(suggestions []Suggestion, timelines []schedule.GuideTimeline, queue []schedule.Booking) []string {
	guideByID := make(map[string]schedule.GuideTimeline, len(timelines))
	for _, tl := range timelines {
		guideByID[tl.Guide.ID] = tl
	}
	bookingByID := make(map[string]schedule.Booking, len(queue))
	for _, bk := range queue {
		bookingByID[bk.ID] = bk
	}

	// Accumulate suggested guests per guide so a batch cannot overload
	// a guide one booking at a time.
	addedGuests := make(map[string]int)
	seenBookings := make(map[string]bool)

	var problems []string
	for _, sug := range suggestions {
		bk, ok := bookingByID[sug.BookingID]
		if !ok {
			problems = append(problems, fmt.Sprintf("booking %q is not in the unassigned queue", sug.BookingID))
			continue
		}
		if seenBookings[sug.BookingID] {
			problems = append(problems, fmt.Sprintf("booking %q is suggested more than once", sug.BookingID))
			continue
		}
		seenBookings[sug.BookingID] = true

		tl, ok := guideByID[sug.GuideID]
		if !ok {
			problems = append(problems, fmt.Sprintf("guide %q does not exist on this board", sug.GuideID))
			continue
		}

		newTotal := tl.TotalGuests + addedGuests[sug.GuideID] + bk.Guests.Total()
		if newTotal > tl.Guide.VehicleCapacity {
			problems = append(problems, fmt.Sprintf("assigning %s to %s would carry %d guests over capacity %d",
				sug.BookingID, sug.GuideID, newTotal, tl.Guide.VehicleCapacity))
			continue
		}
		addedGuests[sug.GuideID] += bk.Guests.Total()
	}
	return problems
}

// formatSuggestErrors renders validation problems as retry feedback.
func formatSuggestErrors(problems []string) string {
	var b strings.Builder
	b.WriteString("Your suggestions have problems. Fix them and respond with the full corrected JSON:\n")
	for _, p := range problems {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}
