package schedule

import "testing"

func testConfig() TimelineConfig {
	return TimelineConfig{
		StartHour:        7,
		EndHour:          20,
		SnapMinutes:      15,
		GuideColumnWidth: 200,
	}
}

func TestTimeToPercent(t *testing.T) {
	cfg := testConfig() // 7:00-20:00, 780 minutes

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "window start", input: "07:00", want: 0},
		{name: "before window clamps", input: "06:00", want: 0},
		{name: "after window clamps", input: "21:00", want: 100},
		{name: "window end", input: "20:00", want: 100},
		{name: "midpoint", input: "13:30", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.TimeToPercent(tt.input)
			if got != tt.want {
				t.Errorf("TimeToPercent(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDurationToWidthPercent(t *testing.T) {
	cfg := testConfig()

	if got := cfg.DurationToWidthPercent(780); got != 100 {
		t.Errorf("full window width = %v, want 100", got)
	}
	if got := cfg.DurationToWidthPercent(390); got != 50 {
		t.Errorf("half window width = %v, want 50", got)
	}
	if got := cfg.DurationToWidthPercent(0); got != 0 {
		t.Errorf("zero duration width = %v, want 0", got)
	}
	if got := cfg.DurationToWidthPercent(2000); got != 100 {
		t.Errorf("oversized duration width = %v, want 100 (clamped)", got)
	}
}

func TestCalculateTimeShift(t *testing.T) {
	cfg := testConfig()
	// 780 px container: 1 px per minute.
	const containerWidth = 780.0

	tests := []struct {
		name        string
		deltaPixels float64
		origStart   string
		duration    int
		wantStart   string
		wantEnd     string
		wantChanged bool
	}{
		{
			name:        "snaps to nearest interval",
			deltaPixels: 20, // +20 minutes from 09:00 rounds to 09:15
			origStart:   "09:00",
			duration:    60,
			wantStart:   "09:15",
			wantEnd:     "10:15",
			wantChanged: true,
		},
		{
			name:        "sub-snap jitter is not a change",
			deltaPixels: 5,
			origStart:   "09:00",
			duration:    60,
			wantStart:   "09:00",
			wantEnd:     "10:00",
			wantChanged: false,
		},
		{
			name:        "clamps at window start",
			deltaPixels: -300,
			origStart:   "08:00",
			duration:    60,
			wantStart:   "07:00",
			wantEnd:     "08:00",
			wantChanged: true,
		},
		{
			name:        "clamps so segment fits before window end",
			deltaPixels: 600,
			origStart:   "18:00",
			duration:    90,
			wantStart:   "18:30",
			wantEnd:     "20:00",
			wantChanged: true,
		},
		{
			name:        "negative shift snaps",
			deltaPixels: -22, // -22 minutes from 10:00 rounds to 09:45
			origStart:   "10:00",
			duration:    30,
			wantStart:   "09:45",
			wantEnd:     "10:15",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.CalculateTimeShift(tt.deltaPixels, tt.origStart, tt.duration, containerWidth)
			if got.NewStartTime != tt.wantStart {
				t.Errorf("NewStartTime = %q, want %q", got.NewStartTime, tt.wantStart)
			}
			if got.NewEndTime != tt.wantEnd {
				t.Errorf("NewEndTime = %q, want %q", got.NewEndTime, tt.wantEnd)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", got.Changed, tt.wantChanged)
			}
		})
	}
}

func TestCalculateTimeShift_ZeroWidthContainer(t *testing.T) {
	cfg := testConfig()
	got := cfg.CalculateTimeShift(100, "09:00", 60, 0)
	if got.Changed {
		t.Error("expected no change for zero-width container")
	}
	if got.NewStartTime != "09:00" {
		t.Errorf("NewStartTime = %q, want 09:00", got.NewStartTime)
	}
}
