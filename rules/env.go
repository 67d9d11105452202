package rules

import (
	"math/rand"

	"github.com/stusiojan/CityWeaver/model"
)

// Env is the per-candidate evaluation context. The engine builds a fresh
// one for every popped queue entry; rules read it, never store it.
// Exported methods are callable from expr appliesTo conditions.
type Env struct {
	Location model.Point
	Terrain  model.TerrainMap
	City     model.CityState
	Segments []model.RoadSegment // snapshot of accepted segments at pop time
	Query    model.QueryAttributes
	Config   Config
	Rand     *rand.Rand
}

// HasSegments reports whether any road has been accepted yet.
func (e Env) HasSegments() bool { return len(e.Segments) > 0 }

// IsMainRoad reports the candidate's main/arterial flag.
func (e Env) IsMainRoad() bool { return e.Query.IsMainRoad }

// CityAge returns the city age in ticks/years.
func (e Env) CityAge() int { return e.City.Age }

// InCoastalDistrict reports whether the current location sits in a zone
// tagged as coastal. Terrain misses count as inland.
func (e Env) InCoastalDistrict() bool {
	if e.Terrain == nil {
		return false
	}
	s, ok := e.Terrain.Sample(e.Location)
	return ok && s.District == model.Coastal
}

// DistrictAt looks up the district tag at a point, empty on a miss.
func (e Env) DistrictAt(p model.Point) model.DistrictType {
	if e.Terrain == nil {
		return ""
	}
	s, ok := e.Terrain.Sample(p)
	if !ok {
		return ""
	}
	return s.District
}
