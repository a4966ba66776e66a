// Package dispatch owns the drag interaction state machine for the
// command center board: activation, hover resolution, and the drop
// policies that either commit immediately or stage a pending change.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/saimali7/Tour-CRM-sub005/internal/commit"
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
	"github.com/saimali7/Tour-CRM-sub005/internal/ledger"
	"github.com/saimali7/Tour-CRM-sub005/internal/preview"
	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// Controller errors.
var (
	ErrNotDraggable = errors.New("segment kind cannot be dragged")
	ErrNotDragging  = errors.New("no drag in progress")
)

// ActivationThresholdPixels is the pointer travel required before a
// press becomes a drag, so plain clicks never start one.
const ActivationThresholdPixels = 8.0

// State is the controller's interaction state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

// OutcomeKind classifies what a drop did.
type OutcomeKind string

const (
	OutcomeNone      OutcomeKind = "none"      // nothing happened (sub-snap move, cancel)
	OutcomeStaged    OutcomeKind = "staged"    // a pending change was added to the ledger
	OutcomeCommitted OutcomeKind = "committed" // the optimistic layer committed immediately
	OutcomeInfo      OutcomeKind = "info"      // informational no-op
	OutcomePartial   OutcomeKind = "partial"   // best-effort batch, some ids failed
)

// Outcome describes a resolved drop for the status line.
type Outcome struct {
	Kind    OutcomeKind
	Message string

	// Failures carries per-booking errors for best-effort batches.
	Failures map[string]error
}

// Controller coordinates one board's drag gestures. It owns the ghost
// preview and routes drops to the ledger (adjust mode) or the
// optimistic commit layer (direct mode). It is driven by a single UI
// event loop and is not safe for concurrent use.
type Controller struct {
	ghost     *preview.Ghost
	ledger    *ledger.Ledger
	committer *commit.Committer
	cfg       schedule.TimelineConfig
	estimator preview.DriveTimeEstimator

	timelines  []schedule.GuideTimeline
	adjustMode bool

	state          State
	payload        drag.Payload
	originX        float64
	currentX       float64
	containerWidth float64
	liveTime       string

	// Pointer press candidate, pre-activation.
	pressed      bool
	pressPayload drag.Payload
	pressX       float64
	pressY       float64
}

// New creates a controller for one board session.
func New(led *ledger.Ledger, committer *commit.Committer, cfg schedule.TimelineConfig) *Controller {
	return &Controller{
		ghost:     preview.NewGhost(),
		ledger:    led,
		committer: committer,
		cfg:       cfg,
		estimator: preview.HeuristicEstimator{},
	}
}

// SetEstimator swaps the drive-time estimator.
func (c *Controller) SetEstimator(est preview.DriveTimeEstimator) {
	if est != nil {
		c.estimator = est
	}
}

// SetTimelines supplies the current guide timelines used for impact
// computation during hover.
func (c *Controller) SetTimelines(timelines []schedule.GuideTimeline) {
	c.timelines = timelines
}

// SetAdjustMode toggles between staging drops in the ledger and
// committing them immediately.
func (c *Controller) SetAdjustMode(on bool) { c.adjustMode = on }

// AdjustMode reports whether drops are being staged.
func (c *Controller) AdjustMode() bool { return c.adjustMode }

// State returns the interaction state.
func (c *Controller) State() State { return c.state }

// Ghost exposes the preview projection for rendering.
func (c *Controller) Ghost() *preview.Ghost { return c.ghost }

// LiveTime returns the transient target time computed during a
// horizontal segment drag, or "" when not applicable.
func (c *Controller) LiveTime() string { return c.liveTime }

// Payload returns the active drag payload, or nil.
func (c *Controller) Payload() drag.Payload {
	if c.state != StateDragging {
		return nil
	}
	return c.payload
}

// PressPointer records a pointer press as a drag candidate. The drag
// itself only begins once the pointer travels the activation
// threshold.
func (c *Controller) PressPointer(p drag.Payload, x, y, containerWidth float64) error {
	if seg, ok := drag.AsSegment(p); ok && !seg.Draggable() {
		return fmt.Errorf("%w: %s", ErrNotDraggable, seg.SegmentKind)
	}
	c.pressed = true
	c.pressPayload = p
	c.pressX = x
	c.pressY = y
	c.containerWidth = containerWidth
	return nil
}

// MovePointer advances a press candidate or an active drag. It returns
// true once a drag is active.
func (c *Controller) MovePointer(x, y float64) bool {
	if c.state == StateDragging {
		c.dragMove(x)
		return true
	}
	if !c.pressed {
		return false
	}
	if math.Hypot(x-c.pressX, y-c.pressY) < ActivationThresholdPixels {
		return false
	}
	c.beginDrag(c.pressPayload, c.pressX, c.containerWidth)
	c.dragMove(x)
	return true
}

// ReleasePointer ends a press. If no drag activated it was a plain
// click and nothing happens.
func (c *Controller) ReleasePointer(ctx context.Context, target drag.Target) (Outcome, error) {
	c.pressed = false
	if c.state != StateDragging {
		return Outcome{Kind: OutcomeNone}, nil
	}
	return c.Drop(ctx, target)
}

// BeginKeyboardDrag starts a drag through the keyboard path. It
// produces the same payload and downstream behavior as a pointer drag.
func (c *Controller) BeginKeyboardDrag(p drag.Payload, originX, containerWidth float64) error {
	if seg, ok := drag.AsSegment(p); ok && !seg.Draggable() {
		return fmt.Errorf("%w: %s", ErrNotDraggable, seg.SegmentKind)
	}
	c.beginDrag(p, originX, containerWidth)
	return nil
}

// MoveBy shifts an active keyboard drag horizontally by deltaPixels.
func (c *Controller) MoveBy(deltaPixels float64) error {
	if c.state != StateDragging {
		return ErrNotDragging
	}
	c.dragMove(c.currentX + deltaPixels)
	return nil
}

func (c *Controller) beginDrag(p drag.Payload, originX, containerWidth float64) {
	c.state = StateDragging
	c.payload = p
	c.originX = originX
	c.currentX = originX
	c.containerWidth = containerWidth
	c.liveTime = ""
	c.ghost.StartDrag(p)
}

// dragMove recomputes the transient target time for segment drags.
// This is UI feedback only, not yet a committed change.
func (c *Controller) dragMove(x float64) {
	c.currentX = x
	seg, ok := drag.AsSegment(c.payload)
	if !ok || seg.StartTime == "" || c.containerWidth <= 0 {
		return
	}
	shift := c.cfg.CalculateTimeShift(x-c.originX, seg.StartTime, seg.DurationMinutes, c.containerWidth)
	c.liveTime = shift.NewStartTime
}

// DragOver resolves a hover over a candidate target, either populating
// the ghost preview or clearing it for rejected hovers.
func (c *Controller) DragOver(target drag.Target) {
	if c.state != StateDragging {
		return
	}

	switch t := target.(type) {
	case drag.UnassignTrayTarget:
		seg, isSegment := drag.AsSegment(c.payload)
		if isSegment && (!seg.Draggable() || len(seg.BookingIDs) == 0) {
			// Dropping would be a no-op; don't advertise the tray.
			c.ghost.ClearTarget()
			return
		}
		if _, isQueued := drag.AsQueuedBooking(c.payload); isQueued {
			// Already unassigned.
			c.ghost.ClearTarget()
			return
		}
		c.ghost.SetTarget(t, nil, nil)

	case drag.GuideRowTarget:
		if seg, ok := drag.AsSegment(c.payload); ok && seg.GuideID == t.GuideID {
			// Same-guide hover is a time shift, previewed via LiveTime.
			c.ghost.ClearTarget()
			return
		}

		guests, zone := c.incoming()
		tl, ok := c.timeline(t.GuideID)
		if !ok {
			c.ghost.SetTarget(t, nil, nil)
			return
		}
		impact := preview.ComputeImpact(tl, guests, zone, c.estimator)
		rec := preview.Recommend(c.timelines, t.GuideID, guests, zone, c.estimator)
		c.ghost.SetTarget(t, &impact, rec)
	}
}

// ClearHover clears the hovered target when the pointer leaves all
// valid drop zones.
func (c *Controller) ClearHover() {
	c.ghost.ClearTarget()
}

// Cancel aborts the gesture with no partial effects.
func (c *Controller) Cancel() {
	c.pressed = false
	if c.state != StateDragging {
		return
	}
	c.reset()
}

// Drop resolves the gesture against the target. The ghost is always
// reset before any resolution side effects run.
func (c *Controller) Drop(ctx context.Context, target drag.Target) (Outcome, error) {
	if c.state != StateDragging {
		return Outcome{Kind: OutcomeNone}, ErrNotDragging
	}

	payload := c.payload
	pixelDelta := c.currentX - c.originX
	containerWidth := c.containerWidth
	c.reset()

	switch p := payload.(type) {
	case drag.SegmentPayload:
		switch t := target.(type) {
		case drag.UnassignTrayTarget:
			return c.dropSegmentOnTray(ctx, p)
		case drag.GuideRowTarget:
			if t.GuideID == p.GuideID {
				return c.dropTimeShift(ctx, p, pixelDelta, containerWidth)
			}
			return c.dropReassign(ctx, p, t)
		}
	case drag.QueuedBookingPayload:
		switch t := target.(type) {
		case drag.UnassignTrayTarget:
			return Outcome{Kind: OutcomeInfo, Message: "booking is already unassigned"}, nil
		case drag.GuideRowTarget:
			return c.dropAssign(ctx, p, t)
		}
	}
	return Outcome{Kind: OutcomeNone}, nil
}

// reset returns the controller to idle. The ghost resets first so a
// failed drop never leaves stale preview state visible.
func (c *Controller) reset() {
	c.ghost.EndDrag()
	c.state = StateIdle
	c.payload = nil
	c.liveTime = ""
	c.originX = 0
	c.currentX = 0
}

func (c *Controller) incoming() (int, schedule.Zone) {
	switch p := c.payload.(type) {
	case drag.SegmentPayload:
		return p.GuestCount, schedule.Zone{}
	case drag.QueuedBookingPayload:
		return p.Booking.Guests.Total(), p.Booking.PickupZone
	default:
		return 0, schedule.Zone{}
	}
}

func (c *Controller) timeline(guideID string) (schedule.GuideTimeline, bool) {
	for _, tl := range c.timelines {
		if tl.Guide.ID == guideID {
			return tl, true
		}
	}
	return schedule.GuideTimeline{}, false
}
