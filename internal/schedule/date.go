package schedule

import (
	"errors"
	"time"
)

// ErrInvalidDateFormat is returned for board dates not in YYYY-MM-DD form.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// ParseBoardDate parses a YYYY-MM-DD board date. An empty string
// defaults to today.
func ParseBoardDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatBoardDate renders a board date as YYYY-MM-DD.
func FormatBoardDate(t time.Time) string {
	return t.Format("2006-01-02")
}
