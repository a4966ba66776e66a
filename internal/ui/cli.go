// Package ui provides the command line interface for the tour
// operations command center.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/config"
	"github.com/saimali7/Tour-CRM-sub005/internal/journal"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
	"github.com/saimali7/Tour-CRM-sub005/internal/services"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	debug  bool   // Enable debug logging
	date   string // Board date (YYYY-MM-DD), empty for today
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "tourcrm",
		Short: "A command center for tour dispatch",
		Long: `Tourcrm is the operations command center for a guided-tour business.

It shows every guide's day on a timeline, lets dispatchers drag
bookings between guides, batch changes in adjust mode, and push them
to the CRM backend in one go.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runBoard()
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")
	a.root.PersistentFlags().StringVar(&a.date, "date", "", "Board date (YYYY-MM-DD, defaults to today)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.boardCmd())
	a.root.AddCommand(a.boardListCmd())
	a.root.AddCommand(a.queueCmd())
	a.root.AddCommand(a.assignCmd())
	a.root.AddCommand(a.unassignCmd())
	a.root.AddCommand(a.shiftCmd())
	a.root.AddCommand(a.suggestCmd())

	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tourcrm %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive command center board",
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runBoard()
		},
	}
}

// runBoard wires the backend client, commit layer, and session journal
// into the TUI.
func (a *App) runBoard() error {
	date, err := schedule.ParseBoardDate(a.date)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	committer := commit.New(client)

	timelineSvc, err := a.timelineClient()
	if err != nil {
		return err
	}

	j, err := journal.New(a.config.Storage.JournalPath)
	if err != nil {
		return fmt.Errorf("opening session journal: %w", err)
	}
	defer func() { _ = j.Close() }()

	return tui.RunWithDebug(timelineSvc, committer, j, a.config, date, a.debug)
}

// client builds the CRM backend client from config.
func (a *App) client() (*services.Client, error) {
	return services.NewClient(a.config.Services.AssignmentURL, a.config.Services.APIToken)
}

// timelineClient builds the read-side client from config. Timeline
// reads may come from a different backend than mutations.
func (a *App) timelineClient() (*services.Client, error) {
	return services.NewClient(a.config.Services.TimelineURL, a.config.Services.APIToken)
}
