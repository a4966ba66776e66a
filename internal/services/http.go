package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

const defaultTimeout = 30 * time.Second

// Client talks JSON over HTTP to the CRM backend. It implements both
// AssignmentService and TimelineService.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a backend client.
func NewClient(baseURL, apiToken string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("service base URL is required")
	}
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// apiError mirrors the backend's error envelope.
type apiError struct {
	Error string `json:"error"`
}

type assignRequest struct {
	BookingID string `json:"bookingId"`
	GuideID   string `json:"guideId,omitempty"`
	StartTime string `json:"startTime,omitempty"`
}

// Assign implements AssignmentService.
func (c *Client) Assign(ctx context.Context, bookingID, guideID string) error {
	return c.post(ctx, "/api/assignments", assignRequest{BookingID: bookingID, GuideID: guideID})
}

// Unassign implements AssignmentService.
func (c *Client) Unassign(ctx context.Context, bookingID string) error {
	return c.post(ctx, "/api/assignments/unassign", assignRequest{BookingID: bookingID})
}

// TimeShift implements AssignmentService.
func (c *Client) TimeShift(ctx context.Context, bookingID, guideID, newStartTime string) error {
	return c.post(ctx, "/api/assignments/time-shift", assignRequest{
		BookingID: bookingID,
		GuideID:   guideID,
		StartTime: newStartTime,
	})
}

// timelineResponse mirrors the backend's timeline payload.
type timelineResponse struct {
	Timelines []guideTimelineJSON `json:"timelines"`
}

type guideTimelineJSON struct {
	Guide struct {
		ID              string `json:"id"`
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		VehicleCapacity int    `json:"vehicleCapacity"`
	} `json:"guide"`
	TotalGuests int `json:"totalGuests"`
	Segments    []struct {
		ID         string   `json:"id"`
		Type       string   `json:"type"`
		StartTime  string   `json:"startTime"`
		EndTime    string   `json:"endTime"`
		TourRunID  string   `json:"tourRunId"`
		BookingIDs []string `json:"bookingIds"`
		GuestCount int      `json:"guestCount"`
	} `json:"segments"`
}

// GuideTimelines implements TimelineService.
func (c *Client) GuideTimelines(ctx context.Context, date string) ([]schedule.GuideTimeline, error) {
	var resp timelineResponse
	if err := c.get(ctx, "/api/timelines?date="+url.QueryEscape(date), &resp); err != nil {
		return nil, fmt.Errorf("fetching timelines: %w", err)
	}

	timelines := make([]schedule.GuideTimeline, 0, len(resp.Timelines))
	for _, tl := range resp.Timelines {
		out := schedule.GuideTimeline{
			Guide: schedule.Guide{
				ID:              tl.Guide.ID,
				FirstName:       tl.Guide.FirstName,
				LastName:        tl.Guide.LastName,
				VehicleCapacity: tl.Guide.VehicleCapacity,
			},
			TotalGuests: tl.TotalGuests,
		}
		for _, seg := range tl.Segments {
			out.Segments = append(out.Segments, schedule.Segment{
				ID:         seg.ID,
				Kind:       schedule.SegmentKind(seg.Type),
				StartTime:  seg.StartTime,
				EndTime:    seg.EndTime,
				TourRunID:  seg.TourRunID,
				BookingIDs: seg.BookingIDs,
				GuestCount: seg.GuestCount,
			})
		}
		timelines = append(timelines, out)
	}
	return timelines, nil
}

// bookingJSON mirrors the backend's booking payload.
type bookingJSON struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	CustomerName    string `json:"customerName"`
	Guests          struct {
		Adults   int `json:"adults"`
		Children int `json:"children"`
		Infants  int `json:"infants"`
	} `json:"guests"`
	PickupZone struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"pickupZone"`
	PickupTime          string `json:"pickupTime"`
	TourName            string `json:"tourName"`
	TourTime            string `json:"tourTime"`
	TourRunKey          string `json:"tourRunKey"`
	TourDurationMinutes int    `json:"tourDurationMinutes"`
	VIP                 bool   `json:"vip"`
	FirstTimer          bool   `json:"firstTimer"`
	SpecialOccasion     bool   `json:"specialOccasion"`
	AccessibilityNeeds  bool   `json:"accessibilityNeeds"`
}

// UnassignedBookings implements TimelineService.
func (c *Client) UnassignedBookings(ctx context.Context, date string) ([]schedule.Booking, error) {
	var resp struct {
		Bookings []bookingJSON `json:"bookings"`
	}
	if err := c.get(ctx, "/api/bookings/unassigned?date="+url.QueryEscape(date), &resp); err != nil {
		return nil, fmt.Errorf("fetching unassigned bookings: %w", err)
	}

	bookings := make([]schedule.Booking, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		bookings = append(bookings, schedule.Booking{
			ID:              b.ID,
			ReferenceNumber: b.ReferenceNumber,
			CustomerName:    b.CustomerName,
			Guests: schedule.GuestCount{
				Adults:   b.Guests.Adults,
				Children: b.Guests.Children,
				Infants:  b.Guests.Infants,
			},
			PickupZone: schedule.Zone{
				ID:    b.PickupZone.ID,
				Name:  b.PickupZone.Name,
				Color: b.PickupZone.Color,
			},
			PickupTime:          b.PickupTime,
			TourName:            b.TourName,
			TourTime:            b.TourTime,
			TourRunKey:          b.TourRunKey,
			TourDurationMinutes: b.TourDurationMinutes,
			VIP:                 b.VIP,
			FirstTimer:          b.FirstTimer,
			SpecialOccasion:     b.SpecialOccasion,
			AccessibilityNeeds:  b.AccessibilityNeeds,
		})
	}
	return bookings, nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.checkStatus(resp)
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}

// checkStatus surfaces the server's own message text on failure so
// callers can classify errors (e.g. conflicting assignments) from it.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, envelope.Error)
	}
	return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(body))
}
