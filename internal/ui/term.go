package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Pickup segments: green for movement
	colorPickup = color.New(color.FgGreen)

	// Tour segments: bold cyan, the main event
	colorTour = color.New(color.FgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Warnings: yellow for capacity pressure and pending state
	colorWarning = color.New(color.FgYellow)

	// Danger: red for overruns and conflicts
	colorDanger = color.New(color.FgRed, color.Bold)

	// VIP badges: magenta to stand out in the queue
	colorVIP = color.New(color.FgMagenta, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatPickup formats text for pickup segments.
func formatPickup(s string) string {
	return colorPickup.Sprint(s)
}

// formatTour formats text for tour segments.
func formatTour(s string) string {
	return colorTour.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatWarning formats text for warnings.
func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

// formatDanger formats text for conflicts and overruns.
func formatDanger(s string) string {
	return colorDanger.Sprint(s)
}

// formatVIP formats a VIP badge.
func formatVIP(s string) string {
	return colorVIP.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
