package model

// DistrictType tags a terrain zone with a rough land-use category.
type DistrictType string

const (
	Residential DistrictType = "residential" // housing, local streets
	Commercial  DistrictType = "commercial"  // shops, offices
	Industrial  DistrictType = "industrial"  // factories, warehouses
	Downtown    DistrictType = "downtown"    // dense core, wide grids
	Coastal     DistrictType = "coastal"     // shoreline strip
)

// TerrainSample is the data the generator reads at a single point.
// Slope and Urbanization are normalized to [0,1]. District is empty for
// untagged ground.
type TerrainSample struct {
	Slope        float64
	Urbanization float64
	District     DistrictType
}

// TerrainMap supplies terrain data to the rule set. Sample reports false
// when the point falls outside the mapped area.
type TerrainMap interface {
	Sample(p Point) (TerrainSample, bool)
}

// GridTerrain is a coarse rectangular grid of terrain samples anchored at
// the origin. Each zone covers CellW x CellH map units and stores a single
// TerrainSample.
type GridTerrain struct {
	Cols    int
	Rows    int
	CellW   float64
	CellH   float64
	Samples []TerrainSample // row-major: Samples[row*Cols + col]
}

// Sample converts map coordinates to grid coordinates and returns the
// sample there. Out-of-bounds points miss.
func (g *GridTerrain) Sample(p Point) (TerrainSample, bool) {
	if g.CellW <= 0 || g.CellH <= 0 {
		return TerrainSample{}, false
	}
	col := int(p[0] / g.CellW)
	row := int(p[1] / g.CellH)
	if p[0] < 0 || p[1] < 0 || col >= g.Cols || row >= g.Rows {
		return TerrainSample{}, false
	}
	return g.Samples[row*g.Cols+col], true
}

// Fill sets every zone to the same sample. Handy for tests and flat maps.
func (g *GridTerrain) Fill(s TerrainSample) {
	if g.Samples == nil {
		g.Samples = make([]TerrainSample, g.Cols*g.Rows)
	}
	for i := range g.Samples {
		g.Samples[i] = s
	}
}

// SetZone overwrites the sample of the zone at grid coordinates (col, row).
// Out-of-bounds coordinates are ignored.
func (g *GridTerrain) SetZone(col, row int, s TerrainSample) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return
	}
	g.Samples[row*g.Cols+col] = s
}
