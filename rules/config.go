package rules

import (
	"fmt"
	"math"

	"github.com/stusiojan/CityWeaver/model"
)

// Bounds is the axis-aligned city rectangle. Containment is half-open:
// [MinX, MaxX) x [MinY, MaxY).
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside the rectangle.
func (b Bounds) Contains(p model.Point) bool {
	return p[0] >= b.MinX && p[0] < b.MaxX && p[1] >= b.MinY && p[1] < b.MaxY
}

// DistrictRules sets how roads branch inside one district type.
// BranchAngles[0] is the straight continuation; later entries are turn
// offsets in radians.
type DistrictRules struct {
	BranchProbability float64
	LengthMultiplier  float64
	BranchAngles      []float64
}

// Config is the parameter bag read by every rule. Treated as read-only
// once handed to the engine; replace it via UpdateConfiguration.
type Config struct {
	CityBounds Bounds

	// Intersection-angle windows (radians, normalized difference in [0, pi]).
	MainAngleMin     float64
	MainAngleMax     float64
	InternalAngleMin float64
	InternalAngleMax float64

	IntersectionSpacing float64 // start-point radius for the angle check
	MinRoadDistance     float64 // minimum end-to-end spacing between roads

	MaxSlope        float64 // terrain steeper than this is unbuildable
	MinUrbanization float64 // ground below this score is unbuildable

	DefaultDelay int // ticks before a straight continuation is considered
	BranchDelay  int // ticks before a branch is considered

	Districts       map[model.DistrictType]DistrictRules
	DefaultDistrict model.DistrictType

	// Seed for the goal-rule rng (random seed chosen if zero).
	Seed int64

	// Safety valves absent from untamed configurations: generation stops
	// once either limit is exceeded. Zero means unbounded.
	MaxSegments int
	MaxTick     int
}

// DefaultConfig returns a balanced baseline configuration for a
// 1000x1000 map.
func DefaultConfig() Config {
	return Config{
		CityBounds:          Bounds{0, 0, 1000, 1000},
		MainAngleMin:        math.Pi / 6,
		MainAngleMax:        math.Pi,
		InternalAngleMin:    math.Pi / 4,
		InternalAngleMax:    3 * math.Pi / 4,
		IntersectionSpacing: 25,
		MinRoadDistance:     10,
		MaxSlope:            0.3,
		MinUrbanization:     0.2,
		DefaultDelay:        1,
		BranchDelay:         3,
		Districts: map[model.DistrictType]DistrictRules{
			model.Residential: {BranchProbability: 0.6, LengthMultiplier: 0.95, BranchAngles: []float64{0, math.Pi / 2, -math.Pi / 2}},
			model.Commercial:  {BranchProbability: 0.7, LengthMultiplier: 0.9, BranchAngles: []float64{0, math.Pi / 2, -math.Pi / 2}},
			model.Industrial:  {BranchProbability: 0.4, LengthMultiplier: 1.0, BranchAngles: []float64{0, math.Pi / 2}},
			model.Downtown:    {BranchProbability: 0.8, LengthMultiplier: 0.85, BranchAngles: []float64{0, math.Pi / 2, -math.Pi / 2}},
			model.Coastal:     {BranchProbability: 0.5, LengthMultiplier: 0.9, BranchAngles: []float64{0, math.Pi / 3}},
		},
		DefaultDistrict: model.Residential,
		MaxSegments:     5000,
	}
}

// Validate rejects configurations that would produce nonsensical geometry
// or break queue-tick monotonicity. Called on construction and on every
// UpdateConfiguration.
func (c Config) Validate() error {
	if c.CityBounds.MaxX <= c.CityBounds.MinX || c.CityBounds.MaxY <= c.CityBounds.MinY {
		return fmt.Errorf("city bounds are empty: %+v", c.CityBounds)
	}
	if c.MainAngleMin > c.MainAngleMax {
		return fmt.Errorf("main angle range inverted: min %f > max %f", c.MainAngleMin, c.MainAngleMax)
	}
	if c.InternalAngleMin > c.InternalAngleMax {
		return fmt.Errorf("internal angle range inverted: min %f > max %f", c.InternalAngleMin, c.InternalAngleMax)
	}
	if c.IntersectionSpacing < 0 {
		return fmt.Errorf("negative intersection spacing: %f", c.IntersectionSpacing)
	}
	if c.MinRoadDistance < 0 {
		return fmt.Errorf("negative min road distance: %f", c.MinRoadDistance)
	}
	if c.MaxSlope < 0 || c.MaxSlope > 1 {
		return fmt.Errorf("max slope outside [0,1]: %f", c.MaxSlope)
	}
	if c.MinUrbanization < 0 || c.MinUrbanization > 1 {
		return fmt.Errorf("min urbanization outside [0,1]: %f", c.MinUrbanization)
	}
	if c.DefaultDelay < 1 {
		return fmt.Errorf("default delay must be positive, got %d", c.DefaultDelay)
	}
	if c.BranchDelay < 1 {
		return fmt.Errorf("branch delay must be positive, got %d", c.BranchDelay)
	}
	for d, dr := range c.Districts {
		if dr.BranchProbability < 0 || dr.BranchProbability > 1 {
			return fmt.Errorf("district %q branch probability outside [0,1]: %f", d, dr.BranchProbability)
		}
		if dr.LengthMultiplier < 0 {
			return fmt.Errorf("district %q has negative length multiplier: %f", d, dr.LengthMultiplier)
		}
	}
	if c.MaxSegments < 0 {
		return fmt.Errorf("negative max segments: %d", c.MaxSegments)
	}
	if c.MaxTick < 0 {
		return fmt.Errorf("negative max tick: %d", c.MaxTick)
	}
	return nil
}

// districtRules resolves the branching parameters for a district,
// falling back to the default district, then to a safe baseline.
func (c Config) districtRules(d model.DistrictType) DistrictRules {
	if dr, ok := c.Districts[d]; ok {
		return dr
	}
	if dr, ok := c.Districts[c.DefaultDistrict]; ok {
		return dr
	}
	return DistrictRules{BranchProbability: 0.5, LengthMultiplier: 0.9, BranchAngles: []float64{0}}
}
