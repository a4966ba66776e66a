// Package preview maintains the ghost projection shown while a drag is
// in flight: what would happen if this drop completed now.
package preview

import "github.com/saimali7/Tour-CRM-sub005/internal/drag"

// Ghost is the single mutable projection for one drag gesture. It is
// created empty, populated by StartDrag/SetTarget during the gesture,
// and fully reset by EndDrag before any drop side effects run, so a
// failed drop never leaves stale preview state visible.
type Ghost struct {
	active         bool
	source         drag.Payload
	target         drag.Target
	impact         *Impact
	recommendation *Recommendation
}

// NewGhost returns an inactive ghost.
func NewGhost() *Ghost {
	return &Ghost{}
}

// IsActive reports whether a drag gesture is in flight.
func (g *Ghost) IsActive() bool { return g.active }

// Source returns the payload being dragged, or nil.
func (g *Ghost) Source() drag.Payload { return g.source }

// Target returns the currently hovered target, or nil.
func (g *Ghost) Target() drag.Target { return g.target }

// Impact returns the computed drop impact, or nil when no valid target
// is hovered.
func (g *Ghost) Impact() *Impact { return g.impact }

// Recommendation returns the better-alternative suggestion, or nil.
func (g *Ghost) Recommendation() *Recommendation { return g.recommendation }

// StartDrag activates the ghost for a new gesture. Called exactly once
// per gesture, at its start. Any target state left over from a prior
// gesture is cleared.
func (g *Ghost) StartDrag(source drag.Payload) {
	g.active = true
	g.source = source
	g.target = nil
	g.impact = nil
	g.recommendation = nil
}

// SetTarget replaces the target-dependent fields. Called on every
// hover-target change; re-entering the same target is idempotent.
func (g *Ghost) SetTarget(target drag.Target, impact *Impact, rec *Recommendation) {
	g.target = target
	g.impact = impact
	g.recommendation = rec
}

// ClearTarget nulls the target-dependent fields while leaving the
// source and active flag untouched. Called when hover leaves all valid
// drop zones.
func (g *Ghost) ClearTarget() {
	g.target = nil
	g.impact = nil
	g.recommendation = nil
}

// EndDrag resets the ghost to its initial state. Called unconditionally
// on drag end or cancel.
func (g *Ghost) EndDrag() {
	g.active = false
	g.source = nil
	g.target = nil
	g.impact = nil
	g.recommendation = nil
}
