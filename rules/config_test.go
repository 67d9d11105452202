package rules

import (
	"math"
	"testing"

	"github.com/stusiojan/CityWeaver/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig should validate: %v", err)
	}
}

func TestValidateRejectsInvertedAngleRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MainAngleMin = math.Pi
	cfg.MainAngleMax = math.Pi / 4
	if err := cfg.Validate(); err == nil {
		t.Error("inverted main angle range should fail validation")
	}

	cfg = DefaultConfig()
	cfg.InternalAngleMin = math.Pi
	cfg.InternalAngleMax = math.Pi / 4
	if err := cfg.Validate(); err == nil {
		t.Error("inverted internal angle range should fail validation")
	}
}

func TestValidateRejectsNonPositiveDelays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultDelay = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero default delay should fail validation")
	}

	cfg = DefaultConfig()
	cfg.BranchDelay = -2
	if err := cfg.Validate(); err == nil {
		t.Error("negative branch delay should fail validation")
	}
}

func TestValidateRejectsBadProbability(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Districts[model.Residential] = DistrictRules{BranchProbability: 1.5, LengthMultiplier: 1, BranchAngles: []float64{0}}
	if err := cfg.Validate(); err == nil {
		t.Error("branch probability above 1 should fail validation")
	}
}

func TestValidateRejectsEmptyBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CityBounds = Bounds{100, 100, 100, 200}
	if err := cfg.Validate(); err == nil {
		t.Error("zero-width bounds should fail validation")
	}
}

func TestValidateRejectsThresholdsOutsideUnitRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSlope = 1.2
	if err := cfg.Validate(); err == nil {
		t.Error("max slope above 1 should fail validation")
	}

	cfg = DefaultConfig()
	cfg.MinUrbanization = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("negative min urbanization should fail validation")
	}
}

func TestBoundsContainmentIsHalfOpen(t *testing.T) {
	b := Bounds{0, 0, 100, 100}
	if !b.Contains(model.Point{0, 0}) {
		t.Error("min corner should be inside")
	}
	if b.Contains(model.Point{100, 50}) {
		t.Error("max edge should be outside")
	}
	if b.Contains(model.Point{50, 100}) {
		t.Error("max edge should be outside")
	}
}

func TestDistrictRulesFallbackChain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Districts = map[model.DistrictType]DistrictRules{
		model.Residential: {BranchProbability: 0.3, LengthMultiplier: 0.7, BranchAngles: []float64{0}},
	}
	cfg.DefaultDistrict = model.Residential

	// Unconfigured district resolves to the default district.
	if got := cfg.districtRules(model.Downtown); got.LengthMultiplier != 0.7 {
		t.Errorf("fallback multiplier = %f, want 0.7", got.LengthMultiplier)
	}

	// No districts at all resolves to the safe baseline.
	cfg.Districts = nil
	got := cfg.districtRules(model.Downtown)
	if len(got.BranchAngles) == 0 {
		t.Error("baseline fallback should still offer a straight continuation")
	}
}
