package schedule

import "fmt"

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Malformed or truncated input is lenient: missing components are
// treated as 0, and the function never fails.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		if len(t) >= 2 && isDigit(t[0]) && isDigit(t[1]) {
			return (int(t[0]-'0')*10 + int(t[1]-'0')) * 60
		}
		return 0
	}
	var hours, mins int
	if isDigit(t[0]) && isDigit(t[1]) {
		hours = int(t[0]-'0')*10 + int(t[1]-'0')
	}
	if isDigit(t[3]) && isDigit(t[4]) {
		mins = int(t[3]-'0')*10 + int(t[4]-'0')
	}
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values outside the day are clamped.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TimesOverlap returns true if two time ranges overlap.
// Two ranges overlap if: start1 < end2 AND start2 < end1.
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// FormatTimeDisplay renders "HH:MM" as a 12-hour clock label, e.g.
// "09:30" becomes "9:30 AM".
func FormatTimeDisplay(t string) string {
	m := TimeToMinutes(t)
	hours := m / 60
	mins := m % 60
	suffix := "AM"
	switch {
	case hours == 0:
		hours = 12
	case hours == 12:
		suffix = "PM"
	case hours > 12:
		hours -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hours, mins, suffix)
}

// ValidTime reports whether t is a well-formed "HH:MM" clock time.
func ValidTime(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	if !isDigit(t[0]) || !isDigit(t[1]) || !isDigit(t[3]) || !isDigit(t[4]) {
		return false
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours < 24 && mins < 60
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
