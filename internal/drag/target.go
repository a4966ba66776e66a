package drag

// TargetKind discriminates the drop target variants.
type TargetKind string

const (
	TargetGuideRow     TargetKind = "guide-row"
	TargetUnassignTray TargetKind = "unassign-tray"
)

// Target is the tagged union describing where a payload is hovering or
// dropped.
type Target interface {
	Kind() TargetKind
}

// GuideRowTarget is a guide's row on the board.
type GuideRowTarget struct {
	GuideID         string
	GuideName       string
	VehicleCapacity int
	TimelineIndex   int
}

// Kind implements Target.
func (GuideRowTarget) Kind() TargetKind { return TargetGuideRow }

// UnassignTrayTarget is the tray that returns bookings to the
// unassigned queue.
type UnassignTrayTarget struct{}

// Kind implements Target.
func (UnassignTrayTarget) Kind() TargetKind { return TargetUnassignTray }

// AsGuideRow narrows a target to the guide-row variant.
func AsGuideRow(t Target) (GuideRowTarget, bool) {
	g, ok := t.(GuideRowTarget)
	return g, ok
}

// AsUnassignTray narrows a target to the tray variant.
func AsUnassignTray(t Target) (UnassignTrayTarget, bool) {
	u, ok := t.(UnassignTrayTarget)
	return u, ok
}
