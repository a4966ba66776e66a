package ledger

// GuideImpact accumulates the guest delta a batch would cause for one
// guide.
type GuideImpact struct {
	GuideName  string
	GuestDelta int
}

// Summary groups the current entries for the pending-changes panel.
type Summary struct {
	Assignments   []Assign
	Reassignments []Reassign
	TimeShifts    []TimeShift

	// ImpactByGuide accumulates only Assign entries' guest counts:
	// reassignments move guests between guides without changing totals,
	// so they are excluded from delta accounting.
	ImpactByGuide map[string]GuideImpact
}

// Total returns the number of pending changes across all groups.
func (s Summary) Total() int {
	return len(s.Assignments) + len(s.Reassignments) + len(s.TimeShifts)
}

// Summarize groups the current entries for display.
func (l *Ledger) Summarize() Summary {
	s := Summary{ImpactByGuide: make(map[string]GuideImpact)}
	for _, c := range l.changes {
		switch v := c.(type) {
		case Assign:
			s.Assignments = append(s.Assignments, v)
			impact := s.ImpactByGuide[v.ToGuideID]
			impact.GuideName = v.ToGuideName
			impact.GuestDelta += v.Booking.Guests.Total()
			s.ImpactByGuide[v.ToGuideID] = impact
		case Reassign:
			s.Reassignments = append(s.Reassignments, v)
		case TimeShift:
			s.TimeShifts = append(s.TimeShifts, v)
		}
	}
	return s
}
