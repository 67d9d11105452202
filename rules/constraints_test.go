package rules

import (
	"math"
	"testing"

	"github.com/stusiojan/CityWeaver/model"
)

// flatTerrain returns a single-zone map covering everything the tests
// touch, with the given sample everywhere.
func flatTerrain(s model.TerrainSample) *model.GridTerrain {
	g := &model.GridTerrain{Cols: 1, Rows: 1, CellW: 10000, CellH: 10000}
	g.Fill(s)
	return g
}

func buildable() *model.GridTerrain {
	return flatTerrain(model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Residential})
}

func testEnv(q model.QueryAttributes, terrain model.TerrainMap, segments []model.RoadSegment) Env {
	return Env{
		Location: q.Start,
		Terrain:  terrain,
		Segments: segments,
		Query:    q,
		Config:   DefaultConfig(),
	}
}

func TestBoundaryConstraintRejectsOutOfBounds(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{50, 50}, Angle: 0, Length: 100}
	env := testEnv(q, buildable(), nil)
	env.Config.CityBounds = Bounds{0, 0, 100, 100}

	res := BoundaryConstraint().Evaluate(q, env)
	if res.State != Failed {
		t.Fatal("candidate ending at x=150 should fail in 100x100 bounds")
	}
	if res.Reason != "Outside city bounds" {
		t.Errorf("reason = %q, want %q", res.Reason, "Outside city bounds")
	}
}

func TestBoundaryConstraintAcceptsInBounds(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{50, 50}, Angle: 0, Length: 100}
	env := testEnv(q, buildable(), nil)
	env.Config.CityBounds = Bounds{0, 0, 1000, 1000}

	if res := BoundaryConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("candidate inside 1000x1000 bounds failed: %q", res.Reason)
	}
}

func TestBoundaryContainmentIsHalfOpen(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{50, 50}, Angle: 0, Length: 50}
	env := testEnv(q, buildable(), nil)
	env.Config.CityBounds = Bounds{0, 0, 100, 100}

	// End lands exactly on MaxX, which is outside a half-open rectangle.
	if res := BoundaryConstraint().Evaluate(q, env); res.State != Failed {
		t.Error("end point on the max edge should be out of bounds")
	}
}

func TestTerrainConstraintNoData(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{-5, -5}, Angle: 0, Length: 10}
	env := testEnv(q, buildable(), nil)

	res := TerrainConstraint().Evaluate(q, env)
	if res.State != Failed || res.Reason != "No terrain data" {
		t.Errorf("got (%v, %q), want (Failed, \"No terrain data\")", res.State, res.Reason)
	}
}

func TestTerrainConstraintSteepSlope(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{10, 10}, Angle: 0, Length: 10}
	env := testEnv(q, flatTerrain(model.TerrainSample{Slope: 0.9, Urbanization: 0.5}), nil)

	res := TerrainConstraint().Evaluate(q, env)
	if res.State != Failed || res.Reason != "Slope too steep" {
		t.Errorf("got (%v, %q), want (Failed, \"Slope too steep\")", res.State, res.Reason)
	}
}

func TestTerrainConstraintLowUrbanization(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{10, 10}, Angle: 0, Length: 10}
	env := testEnv(q, flatTerrain(model.TerrainSample{Slope: 0.1, Urbanization: 0.05}), nil)

	res := TerrainConstraint().Evaluate(q, env)
	if res.State != Failed || res.Reason != "Low urbanization factor" {
		t.Errorf("got (%v, %q), want (Failed, \"Low urbanization factor\")", res.State, res.Reason)
	}
}

func TestTerrainConstraintAcceptsBuildableGround(t *testing.T) {
	q := model.QueryAttributes{Start: model.Point{10, 10}, Angle: 0, Length: 10}
	env := testEnv(q, buildable(), nil)

	if res := TerrainConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("buildable ground rejected: %q", res.Reason)
	}
}

func TestAngleConstraintRejectsShallowIntersection(t *testing.T) {
	existing := []model.RoadSegment{
		{ID: "a", Attrs: model.RoadAttributes{Start: model.Point{100, 100}, Angle: 0, Length: 30}},
	}
	// Nearly parallel candidate starting at the same point.
	q := model.QueryAttributes{Start: model.Point{102, 100}, Angle: 0.05, Length: 30}
	env := testEnv(q, buildable(), existing)

	res := AngleConstraint().Evaluate(q, env)
	if res.State != Failed || res.Reason != "Invalid intersection angle" {
		t.Errorf("got (%v, %q), want (Failed, \"Invalid intersection angle\")", res.State, res.Reason)
	}
}

func TestAngleConstraintAcceptsPerpendicular(t *testing.T) {
	existing := []model.RoadSegment{
		{ID: "a", Attrs: model.RoadAttributes{Start: model.Point{100, 100}, Angle: 0, Length: 30}},
	}
	q := model.QueryAttributes{Start: model.Point{102, 100}, Angle: math.Pi / 2, Length: 30}
	env := testEnv(q, buildable(), existing)

	if res := AngleConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("perpendicular intersection rejected: %q", res.Reason)
	}
}

func TestAngleConstraintIgnoresDistantRoads(t *testing.T) {
	existing := []model.RoadSegment{
		{ID: "a", Attrs: model.RoadAttributes{Start: model.Point{500, 500}, Angle: 0, Length: 30}},
	}
	// Same shallow angle, but far outside the intersection spacing radius.
	q := model.QueryAttributes{Start: model.Point{100, 100}, Angle: 0.05, Length: 30}
	env := testEnv(q, buildable(), existing)

	if res := AngleConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("distant road should not trigger the angle check: %q", res.Reason)
	}
}

func TestNormalizeAngleFoldsIntoHalfTurn(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{math.Pi, math.Pi},
		{3 * math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{-math.Pi / 2, math.Pi / 2},
	}
	for _, c := range cases {
		if got := normalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("normalizeAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestProximityConstraintRejectsCloseEndPoints(t *testing.T) {
	existing := []model.RoadSegment{
		{ID: "a", Attrs: model.RoadAttributes{Start: model.Point{100, 100}, Angle: 0, Length: 50}},
	}
	// Ends at (153, 100): 3 units from the existing end at (150, 100).
	q := model.QueryAttributes{Start: model.Point{103, 100}, Angle: 0, Length: 50}
	env := testEnv(q, buildable(), existing)

	res := ProximityConstraint().Evaluate(q, env)
	if res.State != Failed || res.Reason != "Too close to existing road" {
		t.Errorf("got (%v, %q), want (Failed, \"Too close to existing road\")", res.State, res.Reason)
	}
}

func TestProximityConstraintAcceptsSpacedRoads(t *testing.T) {
	existing := []model.RoadSegment{
		{ID: "a", Attrs: model.RoadAttributes{Start: model.Point{100, 100}, Angle: 0, Length: 50}},
	}
	q := model.QueryAttributes{Start: model.Point{100, 200}, Angle: 0, Length: 50}
	env := testEnv(q, buildable(), existing)

	if res := ProximityConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("well-spaced road rejected: %q", res.Reason)
	}
}

func TestDistrictBoundaryBlocksOrdinaryRoads(t *testing.T) {
	g := &model.GridTerrain{Cols: 2, Rows: 1, CellW: 100, CellH: 100}
	g.Fill(model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Residential})
	g.SetZone(1, 0, model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Industrial})

	q := model.QueryAttributes{Start: model.Point{90, 50}, Angle: 0, Length: 40, IsMainRoad: false}
	env := testEnv(q, g, nil)

	res := DistrictBoundaryConstraint().Evaluate(q, env)
	if res.State != Failed || res.Reason != "Cannot cross district boundary" {
		t.Errorf("got (%v, %q), want (Failed, \"Cannot cross district boundary\")", res.State, res.Reason)
	}
}

func TestDistrictBoundaryAllowsMainRoads(t *testing.T) {
	g := &model.GridTerrain{Cols: 2, Rows: 1, CellW: 100, CellH: 100}
	g.Fill(model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Residential})
	g.SetZone(1, 0, model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Industrial})

	q := model.QueryAttributes{Start: model.Point{90, 50}, Angle: 0, Length: 40, IsMainRoad: true}
	env := testEnv(q, g, nil)

	if res := DistrictBoundaryConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("main road blocked at district boundary: %q", res.Reason)
	}
}

func TestDistrictBoundaryPermissiveOnTerrainMiss(t *testing.T) {
	g := &model.GridTerrain{Cols: 1, Rows: 1, CellW: 100, CellH: 100}
	g.Fill(model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Residential})

	// End falls off the mapped area: the rule passes rather than rejects.
	q := model.QueryAttributes{Start: model.Point{90, 50}, Angle: 0, Length: 40, IsMainRoad: false}
	env := testEnv(q, g, nil)

	if res := DistrictBoundaryConstraint().Evaluate(q, env); res.State != Succeeded {
		t.Errorf("terrain miss should pass permissively: %q", res.Reason)
	}
}
