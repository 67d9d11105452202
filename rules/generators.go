package rules

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"

	"github.com/stusiojan/CityWeaver/model"
)

// LocalConstraints builds the active constraint list for the current city
// conditions. Boundary, Terrain, Proximity and DistrictBoundary are always
// present; the intersection-angle check only joins once the city has aged
// past its founding tick. Pure function of its inputs, sorted ascending by
// priority with every appliesTo condition compiled.
func LocalConstraints(city model.CityState, terrain model.TerrainMap, cfg Config) ([]*ConstraintRule, error) {
	active := []*ConstraintRule{
		BoundaryConstraint(),
		TerrainConstraint(),
		ProximityConstraint(),
		DistrictBoundaryConstraint(),
	}
	if city.Age > 0 {
		active = append(active, AngleConstraint())
	}
	if err := compileConstraints(active); err != nil {
		return nil, err
	}
	sortConstraints(active)
	return active, nil
}

// GlobalGoals builds the active goal list. District patterns and coastal
// growth run from the start; the connectivity goal only joins once the
// city is old enough to need arterials.
func GlobalGoals(city model.CityState, terrain model.TerrainMap, cfg Config) ([]*GoalRule, error) {
	active := []*GoalRule{
		DistrictPatternGoal(),
		CoastalGrowthGoal(),
	}
	if city.Age > 5 {
		active = append(active, ConnectivityGoal())
	}
	if err := compileGoals(active); err != nil {
		return nil, err
	}
	sortGoals(active)
	return active, nil
}

func compileConstraints(rules []*ConstraintRule) error {
	for _, r := range rules {
		prog, err := expr.Compile(r.AppliesSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile constraint %q: %w", r.Name, err)
		}
		r.program = prog
	}
	return nil
}

func compileGoals(rules []*GoalRule) error {
	for _, r := range rules {
		prog, err := expr.Compile(r.AppliesSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile goal %q: %w", r.Name, err)
		}
		r.program = prog
	}
	return nil
}

func sortConstraints(rules []*ConstraintRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}

func sortGoals(rules []*GoalRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}
