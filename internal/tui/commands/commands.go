// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub005/internal/assist"
	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/config"
	"github.com/saimali7/Tour-CRM-sub005/internal/journal"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
	"github.com/saimali7/Tour-CRM-sub005/internal/services"
)

// BoardLoadedMsg is sent when the board data for a date is loaded.
type BoardLoadedMsg struct {
	Timelines []schedule.GuideTimeline
	Queue     []schedule.Booking
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// UndoTickMsg refreshes the undo countdown in the footer.
type UndoTickMsg struct{}

// CommitUndoneMsg is sent when a committed action was inverted.
type CommitUndoneMsg struct{}

// ApplyDoneMsg is sent when an adjust-session batch finished applying.
// Err is non-nil when the batch stopped early; Remaining holds the
// changes that were not attempted.
type ApplyDoneMsg struct {
	Applied   int
	Remaining []ledger.Change
	Err       error
}

// SessionRestoredMsg is sent when a journaled session was loaded.
type SessionRestoredMsg struct {
	Changes []ledger.Change
}

// SessionSavedMsg is sent when the session journal was written.
type SessionSavedMsg struct {
	Count int
}

// SuggestionsMsg is sent when assignment suggestions are ready.
type SuggestionsMsg struct {
	Response *assist.SuggestResponse
	Problems []string
}

// SearchDebounceMsg fires after the search input has been idle.
type SearchDebounceMsg struct {
	Seq int
}

// LoadBoard loads the guide timelines and the unassigned queue for a date.
func LoadBoard(svc services.TimelineService, date time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		dateKey := schedule.FormatBoardDate(date)

		timelines, err := svc.GuideTimelines(ctx, dateKey)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading timelines: %w", err)}
		}

		queue, err := svc.UnassignedBookings(ctx, dateKey)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading unassigned queue: %w", err)}
		}

		return BoardLoadedMsg{Timelines: timelines, Queue: queue}
	}
}

// ClearStatusAfter clears the status line after the delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// UndoTick drives the undo-window countdown once per second.
func UndoTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return UndoTickMsg{}
	})
}

// SearchDebounce fires a debounce message after the idle interval. The
// sequence number lets the model drop stale ticks from older input.
func SearchDebounce(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	})
}

// ApplyChanges drains an adjust-session batch through the commit layer
// in order. The batch stops at the first failure so the operator can
// inspect the conflict; the unattempted tail is returned for restaging.
func ApplyChanges(committer *commit.Committer, changes []ledger.Change) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		for i, c := range changes {
			if err := applyOne(ctx, committer, c); err != nil {
				return ApplyDoneMsg{
					Applied:   i,
					Remaining: changes[i:],
					Err:       err,
				}
			}
		}
		return ApplyDoneMsg{Applied: len(changes)}
	}
}

// applyOne replays one staged change against the commit layer.
func applyOne(ctx context.Context, committer *commit.Committer, c ledger.Change) error {
	switch v := c.(type) {
	case ledger.Assign:
		return committer.Assign(ctx, v.BookingID, v.ToGuideID)
	case ledger.Reassign:
		for _, bookingID := range v.BookingIDs {
			if err := committer.Reassign(ctx, bookingID, v.FromGuideID, v.ToGuideID); err != nil {
				return err
			}
		}
		return nil
	case ledger.TimeShift:
		for _, bookingID := range v.BookingIDs {
			if err := committer.TimeShift(ctx, bookingID, v.GuideID, v.OriginalStartTime, v.NewStartTime); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown change kind %q", c.Kind())
	}
}

// UndoCommit inverts the most recent committed action.
func UndoCommit(committer *commit.Committer) tea.Cmd {
	return func() tea.Msg {
		if err := committer.Undo(context.Background()); err != nil {
			return ErrMsg{Err: err}
		}
		return CommitUndoneMsg{}
	}
}

// SaveSession journals the current pending batch for the board date.
func SaveSession(j *journal.Journal, date time.Time, changes []ledger.Change) tea.Cmd {
	return func() tea.Msg {
		if j == nil {
			return SessionSavedMsg{Count: len(changes)}
		}
		if err := j.SaveSession(context.Background(), date, changes); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving session: %w", err)}
		}
		return SessionSavedMsg{Count: len(changes)}
	}
}

// RestoreSession loads a journaled batch for the board date, if any.
func RestoreSession(j *journal.Journal, date time.Time) tea.Cmd {
	return func() tea.Msg {
		if j == nil {
			return SessionRestoredMsg{}
		}
		changes, err := j.LoadSession(context.Background(), date)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("restoring session: %w", err)}
		}
		return SessionRestoredMsg{Changes: changes}
	}
}

// ClearSession discards the journaled batch for the board date.
func ClearSession(j *journal.Journal, date time.Time) tea.Cmd {
	return func() tea.Msg {
		if j == nil {
			return nil
		}
		if err := j.ClearSession(context.Background(), date); err != nil {
			return ErrMsg{Err: fmt.Errorf("clearing session: %w", err)}
		}
		return nil
	}
}

// Suggest asks the configured LLM for assignment suggestions.
func Suggest(cfg *config.Config, timelines []schedule.GuideTimeline, queue []schedule.Booking) tea.Cmd {
	return func() tea.Msg {
		client, err := assist.NewClient(cfg.Assist.Provider, cfg.Assist.Model, cfg.Assist.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		suggester := assist.NewSuggester(client)
		resp, problems, err := suggester.SuggestWithRetry(context.Background(), timelines, queue, 1)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("requesting suggestions: %w", err)}
		}

		return SuggestionsMsg{Response: resp, Problems: problems}
	}
}
