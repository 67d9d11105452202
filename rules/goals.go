package rules

import (
	"github.com/stusiojan/CityWeaver/model"
)

// Goal priorities. Lower runs first.
const (
	priCoastal      = 5
	priConnectivity = 8
	priPattern      = 10
)

// DistrictPatternGoal grows the network according to the district the
// accepted segment starts in. Each configured branch angle survives an
// independent probability draw; survivors continue from the segment's end
// point. The straight continuation (angle offset index 0) is scheduled
// with the short default delay, branches with the longer branch delay, so
// trunks extend before side streets fill in.
func DistrictPatternGoal() *GoalRule {
	return &GoalRule{
		Name:       "district-pattern",
		Priority:   priPattern,
		AppliesSrc: `true`,
		Generate: func(q model.QueryAttributes, attrs model.RoadAttributes, env Env) []model.RoadProposal {
			district := env.DistrictAt(attrs.Start)
			if district == "" {
				district = env.Config.DefaultDistrict
			}
			dr := env.Config.districtRules(district)

			end := attrs.End()
			var out []model.RoadProposal
			for i, offset := range dr.BranchAngles {
				if env.Rand.Float64() > dr.BranchProbability {
					continue
				}
				next := model.QueryAttributes{
					Start:      end,
					Angle:      attrs.Angle + offset,
					Length:     attrs.Length * dr.LengthMultiplier,
					Class:      attrs.Class,
					IsMainRoad: q.IsMainRoad,
				}
				delay := env.Config.BranchDelay
				if i == 0 {
					delay = env.Config.DefaultDelay
				}
				out = append(out, model.RoadProposal{Attrs: next.Attrs(), Query: next, Delay: delay})
			}
			return out
		},
	}
}

// CoastalGrowthGoal extends shoreline roads along their current heading,
// slightly shortened each step so growth tapers off.
func CoastalGrowthGoal() *GoalRule {
	return &GoalRule{
		Name:       "coastal-growth",
		Priority:   priCoastal,
		AppliesSrc: `InCoastalDistrict()`,
		Generate: func(q model.QueryAttributes, attrs model.RoadAttributes, env Env) []model.RoadProposal {
			next := model.QueryAttributes{
				Start:      attrs.End(),
				Angle:      attrs.Angle,
				Length:     attrs.Length * 0.9,
				Class:      attrs.Class,
				IsMainRoad: q.IsMainRoad,
			}
			return []model.RoadProposal{{Attrs: next.Attrs(), Query: next, Delay: env.Config.DefaultDelay}}
		},
	}
}

// ConnectivityGoal keeps arterial roads running: every accepted main road
// spawns exactly one straight continuation that stays a main road.
func ConnectivityGoal() *GoalRule {
	return &GoalRule{
		Name:       "connectivity",
		Priority:   priConnectivity,
		AppliesSrc: `IsMainRoad()`,
		Generate: func(q model.QueryAttributes, attrs model.RoadAttributes, env Env) []model.RoadProposal {
			next := model.QueryAttributes{
				Start:      attrs.End(),
				Angle:      attrs.Angle,
				Length:     attrs.Length,
				Class:      attrs.Class,
				IsMainRoad: true,
			}
			return []model.RoadProposal{{Attrs: next.Attrs(), Query: next, Delay: env.Config.DefaultDelay}}
		},
	}
}
