package preview

import (
	"math"

	"github.com/saimali7/Tour-CRM-sub005/internal/schedule"
)

// EfficiencyTier grades a drop by its estimated drive-time cost.
type EfficiencyTier string

const (
	TierEfficient   EfficiencyTier = "efficient"
	TierAcceptable  EfficiencyTier = "acceptable"
	TierInefficient EfficiencyTier = "inefficient"
)

// TierForDelta maps a drive-time delta in minutes to a tier.
func TierForDelta(minutes int) EfficiencyTier {
	switch {
	case minutes <= 5:
		return TierEfficient
	case minutes <= 15:
		return TierAcceptable
	default:
		return TierInefficient
	}
}

// Impact describes the effect of completing the current drop.
type Impact struct {
	DriveTimeDeltaMinutes      int
	Tier                       EfficiencyTier
	ExceedsCapacity            bool
	CapacityUtilizationPercent int
}

// Recommendation suggests a better drop target than the hovered one.
type Recommendation struct {
	GuideID   string
	GuideName string
	Reason    string
}

// DriveTimeEstimator estimates the extra drive time a pickup adds to a
// guide's day. The default heuristic is a UI affordance, not a routing
// engine; callers may substitute a real estimator.
type DriveTimeEstimator interface {
	EstimateDelta(timeline schedule.GuideTimeline, pickupZone schedule.Zone) int
}

// HeuristicEstimator is the stock coarse estimator. Same-zone pickups
// cost a flat 5 minutes plus one per existing pickup; cross-zone or
// zone-unknown pickups cost progressively more. Existing pickups are
// approximated as half the guide's current guest count.
type HeuristicEstimator struct{}

// EstimateDelta implements DriveTimeEstimator.
func (HeuristicEstimator) EstimateDelta(timeline schedule.GuideTimeline, pickupZone schedule.Zone) int {
	existingPickups := timeline.TotalGuests / 2

	switch {
	case pickupZone.ID == "" || timeline.BaseZone == nil:
		return 10 + existingPickups*2
	case timeline.BaseZone.ID == pickupZone.ID:
		return 5 + existingPickups*1
	default:
		return 15 + existingPickups*3
	}
}

// ComputeImpact evaluates dropping incomingGuests from pickupZone onto
// the given guide timeline. Capacity and delta are recomputed on every
// hover-target change, never cached.
func ComputeImpact(timeline schedule.GuideTimeline, incomingGuests int, pickupZone schedule.Zone, est DriveTimeEstimator) Impact {
	if est == nil {
		est = HeuristicEstimator{}
	}

	newTotal := timeline.TotalGuests + incomingGuests
	capacity := timeline.Guide.VehicleCapacity

	impact := Impact{
		DriveTimeDeltaMinutes: est.EstimateDelta(timeline, pickupZone),
		ExceedsCapacity:       capacity > 0 && newTotal > capacity,
	}
	impact.Tier = TierForDelta(impact.DriveTimeDeltaMinutes)
	if capacity > 0 {
		impact.CapacityUtilizationPercent = int(math.Round(float64(newTotal) / float64(capacity) * 100))
	}
	return impact
}

// Recommend scans the other guides for a drop that beats the hovered
// one: it must fit capacity and cost strictly less drive time. Returns
// nil when the hovered guide is already the best option.
func Recommend(timelines []schedule.GuideTimeline, hoveredGuideID string, incomingGuests int, pickupZone schedule.Zone, est DriveTimeEstimator) *Recommendation {
	if est == nil {
		est = HeuristicEstimator{}
	}

	hoveredDelta := -1
	for _, tl := range timelines {
		if tl.Guide.ID == hoveredGuideID {
			hoveredDelta = est.EstimateDelta(tl, pickupZone)
			break
		}
	}
	if hoveredDelta < 0 {
		return nil
	}

	var best *schedule.GuideTimeline
	bestDelta := hoveredDelta
	for i := range timelines {
		tl := &timelines[i]
		if tl.Guide.ID == hoveredGuideID {
			continue
		}
		if tl.Guide.VehicleCapacity > 0 && tl.TotalGuests+incomingGuests > tl.Guide.VehicleCapacity {
			continue
		}
		if delta := est.EstimateDelta(*tl, pickupZone); delta < bestDelta {
			best = tl
			bestDelta = delta
		}
	}
	if best == nil {
		return nil
	}

	return &Recommendation{
		GuideID:   best.Guide.ID,
		GuideName: best.Guide.FullName(),
		Reason:    "shorter estimated drive time",
	}
}
