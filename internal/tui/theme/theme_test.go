package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "empty name defaults to frappe", themeName: "", wantName: "frappe"},
		{name: "invalid theme falls back to frappe", themeName: "nonexistent", wantName: "frappe"},
		{name: "case insensitive", themeName: "Mocha", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", name, err)
			}

			colors := map[string]string{
				"Bg":          theme.Bg,
				"BgHighlight": theme.BgHighlight,
				"BgSelection": theme.BgSelection,
				"Fg":          theme.Fg,
				"FgMuted":     theme.FgMuted,
				"Accent":      theme.Accent,
				"Pickup":      theme.Pickup,
				"Tour":        theme.Tour,
				"Warning":     theme.Warning,
				"Danger":      theme.Danger,
				"VIP":         theme.VIP,
			}

			for field, hex := range colors {
				if len(hex) != 7 {
					t.Errorf("theme.%s = %q, want 7-char hex string", field, hex)
					continue
				}
				if hex[0] != '#' {
					t.Errorf("theme.%s = %q, want hex string starting with #", field, hex)
				}
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	available := Available()

	expected := []string{"mocha", "macchiato", "frappe", "latte"}
	if len(available) != len(expected) {
		t.Errorf("Available() returned %d themes, want %d", len(available), len(expected))
	}

	for i, want := range expected {
		if i >= len(available) {
			break
		}
		if available[i] != want {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "frappe", expected: true},
		{name: "case insensitive", theme: "Frappe", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestColor(t *testing.T) {
	hex := "#ca9ee6"
	c := Color(hex)
	if string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
