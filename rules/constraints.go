package rules

import (
	"math"

	"github.com/paulmach/orb/planar"

	"github.com/stusiojan/CityWeaver/model"
)

// Constraint priorities. Lower runs first; cheap geometric gates come
// before scans over existing infrastructure.
const (
	priBoundary  = 10
	priTerrain   = 15
	priAngle     = 20
	priProximity = 25
	priDistrict  = 30
)

// BoundaryConstraint rejects candidates that leave the city rectangle.
func BoundaryConstraint() *ConstraintRule {
	return &ConstraintRule{
		Name:       "boundary",
		Priority:   priBoundary,
		AppliesSrc: `true`,
		Evaluate: func(q model.QueryAttributes, env Env) ConstraintResult {
			b := env.Config.CityBounds
			if !b.Contains(q.Start) || !b.Contains(q.End()) {
				return fail(q, "Outside city bounds")
			}
			return succeed(q)
		},
	}
}

// TerrainConstraint rejects candidates starting on missing, steep or
// unurbanized ground.
func TerrainConstraint() *ConstraintRule {
	return &ConstraintRule{
		Name:       "terrain",
		Priority:   priTerrain,
		AppliesSrc: `true`,
		Evaluate: func(q model.QueryAttributes, env Env) ConstraintResult {
			s, ok := env.Terrain.Sample(q.Start)
			if !ok {
				return fail(q, "No terrain data")
			}
			if s.Slope > env.Config.MaxSlope {
				return fail(q, "Slope too steep")
			}
			if s.Urbanization < env.Config.MinUrbanization {
				return fail(q, "Low urbanization factor")
			}
			return succeed(q)
		},
	}
}

// AngleConstraint rejects candidates meeting nearby roads at a bad angle.
// Only start-point proximity is checked, not full segment intersection.
func AngleConstraint() *ConstraintRule {
	return &ConstraintRule{
		Name:       "angle",
		Priority:   priAngle,
		AppliesSrc: `HasSegments()`,
		Evaluate: func(q model.QueryAttributes, env Env) ConstraintResult {
			min, max := env.Config.InternalAngleMin, env.Config.InternalAngleMax
			if q.IsMainRoad {
				min, max = env.Config.MainAngleMin, env.Config.MainAngleMax
			}
			for _, seg := range env.Segments {
				if planar.Distance(seg.Attrs.Start, q.Start) > env.Config.IntersectionSpacing {
					continue
				}
				d := normalizeAngle(q.Angle - seg.Attrs.Angle)
				if d < min || d > max {
					return fail(q, "Invalid intersection angle")
				}
			}
			return succeed(q)
		},
	}
}

// ProximityConstraint rejects candidates ending too close to where an
// existing road ends. Compares end points only, not full
// segment-to-segment distance.
func ProximityConstraint() *ConstraintRule {
	return &ConstraintRule{
		Name:       "proximity",
		Priority:   priProximity,
		AppliesSrc: `HasSegments()`,
		Evaluate: func(q model.QueryAttributes, env Env) ConstraintResult {
			end := q.End()
			for _, seg := range env.Segments {
				if planar.Distance(end, seg.Attrs.End()) < env.Config.MinRoadDistance {
					return fail(q, "Too close to existing road")
				}
			}
			return succeed(q)
		},
	}
}

// DistrictBoundaryConstraint keeps ordinary roads inside one district.
// Main roads cross freely; terrain misses pass permissively.
func DistrictBoundaryConstraint() *ConstraintRule {
	return &ConstraintRule{
		Name:       "district-boundary",
		Priority:   priDistrict,
		AppliesSrc: `true`,
		Evaluate: func(q model.QueryAttributes, env Env) ConstraintResult {
			from, okFrom := env.Terrain.Sample(q.Start)
			to, okTo := env.Terrain.Sample(q.End())
			if !okFrom || !okTo {
				return succeed(q)
			}
			if from.District != to.District && !q.IsMainRoad {
				return fail(q, "Cannot cross district boundary")
			}
			return succeed(q)
		},
	}
}

// normalizeAngle folds an angular difference into [0, pi].
func normalizeAngle(d float64) float64 {
	d = math.Mod(math.Abs(d), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
