// Package scenario models what-if adjustments to future velocity:
// time-bounded multipliers and team-size changes with ramp-up curves.
// Adjustments address absolute sprint indices (1-based) of a simulation
// and are evaluated per sprint, never averaged into a single factor.
package scenario

import (
	"fmt"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

// ProductivityCurve describes how added team capacity reaches full
// contribution.
type ProductivityCurve string

const (
	// CurveLinear ramps contribution linearly from zero to full over
	// the ramp-up window.
	CurveLinear ProductivityCurve = "linear"
	// CurveStep applies the full contribution immediately at the
	// effective sprint.
	CurveStep ProductivityCurve = "step"
)

// IsValid checks that the curve is a recognized value.
func (c ProductivityCurve) IsValid() bool {
	switch c {
	case CurveLinear, CurveStep, "":
		return true
	}
	return false
}

// VelocityAdjustment multiplies velocity by Factor for every sprint in
// the window [SprintStart, SprintEnd]. SprintEnd 0 means the adjustment
// never expires. Sprint indices are absolute simulation sprints.
type VelocityAdjustment struct {
	SprintStart int     `yaml:"sprint_start" json:"sprint_start"`
	SprintEnd   int     `yaml:"sprint_end,omitempty" json:"sprint_end,omitempty"`
	Factor      float64 `yaml:"factor" json:"factor"`
	Reason      string  `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// AppliesTo returns true if the adjustment window contains the sprint.
func (a VelocityAdjustment) AppliesTo(sprint int) bool {
	if sprint < a.SprintStart {
		return false
	}
	return a.SprintEnd == 0 || sprint <= a.SprintEnd
}

// TeamChange alters effective headcount from Sprint onward. Change may
// be fractional or negative. RampUpSprints 0 means the change lands
// instantaneously; with a positive ramp the contribution follows Curve.
type TeamChange struct {
	Sprint        int               `yaml:"sprint" json:"sprint"`
	Change        float64           `yaml:"change" json:"change"`
	RampUpSprints float64           `yaml:"ramp_up_sprints,omitempty" json:"ramp_up_sprints,omitempty"`
	Curve         ProductivityCurve `yaml:"curve,omitempty" json:"curve,omitempty"`
	Reason        string            `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// ContributionAt returns the effective headcount delta this change
// contributes at the given sprint.
func (tc TeamChange) ContributionAt(sprint int) float64 {
	if sprint < tc.Sprint {
		return 0
	}
	if tc.Curve == CurveStep || tc.RampUpSprints <= 0 {
		return tc.Change
	}
	// Linear ramp: zero at the effective sprint, full after
	// RampUpSprints sprints.
	progress := float64(sprint-tc.Sprint) / tc.RampUpSprints
	if progress > 1 {
		progress = 1
	}
	return tc.Change * progress
}

// Scenario is an ordered set of velocity adjustments and team changes
// describing one hypothetical future.
type Scenario struct {
	Name        string               `yaml:"name" json:"name"`
	Adjustments []VelocityAdjustment `yaml:"adjustments,omitempty" json:"adjustments,omitempty"`
	TeamChanges []TeamChange         `yaml:"team_changes,omitempty" json:"team_changes,omitempty"`
}

// IsEmpty returns true when the scenario would not modify any sprint.
func (s *Scenario) IsEmpty() bool {
	return s == nil || (len(s.Adjustments) == 0 && len(s.TeamChanges) == 0)
}

// Validate returns all problems found as human-readable strings.
func (s *Scenario) Validate() []string {
	var errs []string
	for i, a := range s.Adjustments {
		if a.SprintStart < 1 {
			errs = append(errs, fmt.Sprintf("adjustment %d: sprint_start must be >= 1, got %d", i+1, a.SprintStart))
		}
		if a.SprintEnd != 0 && a.SprintEnd < a.SprintStart {
			errs = append(errs, fmt.Sprintf("adjustment %d: sprint_end %d precedes sprint_start %d", i+1, a.SprintEnd, a.SprintStart))
		}
		if a.Factor <= 0 {
			errs = append(errs, fmt.Sprintf("adjustment %d: factor must be positive, got %.2f", i+1, a.Factor))
		}
	}
	for i, tc := range s.TeamChanges {
		if tc.Sprint < 1 {
			errs = append(errs, fmt.Sprintf("team change %d: sprint must be >= 1, got %d", i+1, tc.Sprint))
		}
		if tc.RampUpSprints < 0 {
			errs = append(errs, fmt.Sprintf("team change %d: ramp_up_sprints must not be negative, got %.1f", i+1, tc.RampUpSprints))
		}
		if !tc.Curve.IsValid() {
			errs = append(errs, fmt.Sprintf("team change %d: unknown productivity curve %q", i+1, tc.Curve))
		}
	}
	return errs
}

// FactorAt returns the compound velocity multiplier in effect at the
// given absolute sprint: the product of all applicable adjustment
// factors times the team-capacity ratio. baseTeamSize <= 0 is treated
// as one effective unit, making team changes direct fractions of
// current capacity.
func (s *Scenario) FactorAt(sprint int, baseTeamSize float64) float64 {
	factor := 1.0
	for _, a := range s.Adjustments {
		if a.AppliesTo(sprint) {
			factor *= a.Factor
		}
	}
	if len(s.TeamChanges) > 0 {
		base := baseTeamSize
		if base <= 0 {
			base = 1
		}
		capacity := base
		for _, tc := range s.TeamChanges {
			capacity += tc.ContributionAt(sprint)
		}
		if capacity < 0 {
			capacity = 0
		}
		factor *= capacity / base
	}
	return factor
}

// SprintFactor returns a per-sprint factor function suitable for
// passing into a simulation. The returned function is pure and safe for
// concurrent calls.
func (s *Scenario) SprintFactor(baseTeamSize float64) forecasting.SprintFactor {
	return func(sprint int) float64 {
		return s.FactorAt(sprint, baseTeamSize)
	}
}

// AverageFactor averages FactorAt over the first lookahead sprints.
// This is an approximation for display purposes only; feeding it into a
// simulation instead of the per-sprint factor materially distorts
// results for temporary adjustments and ramps.
func (s *Scenario) AverageFactor(lookahead int, baseTeamSize float64) float64 {
	if lookahead < 1 {
		lookahead = 1
	}
	total := 0.0
	for sprint := 1; sprint <= lookahead; sprint++ {
		total += s.FactorAt(sprint, baseTeamSize)
	}
	return total / float64(lookahead)
}
