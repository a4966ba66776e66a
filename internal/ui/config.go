package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub005/internal/config"
	"github.com/saimali7/Tour-CRM-sub005/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  tourcrm config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Board.StartHour = promptInt(reader, "Board start hour", cfg.Board.StartHour)
	cfg.Board.EndHour = promptInt(reader, "Board end hour", cfg.Board.EndHour)
	cfg.Board.SnapMinutes = promptInt(reader, "Snap minutes", cfg.Board.SnapMinutes)
	cfg.Services.AssignmentURL = promptValue(reader, "Assignment service URL", cfg.Services.AssignmentURL)
	cfg.Services.TimelineURL = promptValue(reader, "Timeline service URL", cfg.Services.TimelineURL)
	cfg.Services.APIToken = promptValue(reader, "API token (empty to keep)", cfg.Services.APIToken)
	cfg.Assist.Provider = promptValue(reader, "Assist provider", cfg.Assist.Provider)
	cfg.Assist.Model = promptValue(reader, "Assist model", cfg.Assist.Model)
	cfg.Assist.BaseURL = promptValue(reader, "Assist base URL (Ollama)", cfg.Assist.BaseURL)
	cfg.Storage.JournalPath = promptValue(reader, "Session journal path", cfg.Storage.JournalPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[board]")
	fmt.Printf("  start_hour         = %d\n", cfg.Board.StartHour)
	fmt.Printf("  end_hour           = %d\n", cfg.Board.EndHour)
	fmt.Printf("  snap_minutes       = %d\n", cfg.Board.SnapMinutes)
	fmt.Printf("  guide_column_width = %d\n", cfg.Board.GuideColumnWidth)
	fmt.Println("\n[services]")
	fmt.Printf("  assignment_url     = %s\n", cfg.Services.AssignmentURL)
	fmt.Printf("  timeline_url       = %s\n", cfg.Services.TimelineURL)
	fmt.Printf("  api_token          = %s\n", maskToken(cfg.Services.APIToken))
	fmt.Println("\n[assist]")
	fmt.Printf("  provider           = %s\n", cfg.Assist.Provider)
	fmt.Printf("  model              = %s\n", cfg.Assist.Model)
	fmt.Printf("  base_url           = %s\n", cfg.Assist.BaseURL)
	fmt.Println("\n[storage]")
	fmt.Printf("  journal_path       = %s\n", cfg.Storage.JournalPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme              = %s\n", cfg.UI.Theme)
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Printf("  Invalid number %q\n", value)
			continue
		}
		return n
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
