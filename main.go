package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/stusiojan/CityWeaver/engine"
	"github.com/stusiojan/CityWeaver/model"
	"github.com/stusiojan/CityWeaver/rules"
)

const banner = `
 ██████╗██╗████████╗██╗   ██╗██╗    ██╗███████╗ █████╗ ██╗   ██╗███████╗██████╗
██╔════╝██║╚══██╔══╝╚██╗ ██╔╝██║    ██║██╔════╝██╔══██╗██║   ██║██╔════╝██╔══██╗
██║     ██║   ██║    ╚████╔╝ ██║ █╗ ██║█████╗  ███████║██║   ██║█████╗  ██████╔╝
██║     ██║   ██║     ╚██╔╝  ██║███╗██║██╔══╝  ██╔══██║╚██╗ ██╔╝██╔══╝  ██╔══██╗
╚██████╗██║   ██║      ██║   ╚███╔███╔╝███████╗██║  ██║ ╚████╔╝ ███████╗██║  ██║
 ╚═════╝╚═╝   ╚═╝      ╚═╝    ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝

Procedural Road Network Generation`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	terrain := demoTerrain()
	cfg := rules.DefaultConfig()
	cfg.Seed = 42
	city := model.CityState{Population: 12000, Density: 0.4, EconomicLevel: 0.6, Age: 3}

	eng, err := engine.New(city, terrain, cfg)
	if err != nil {
		slog.Error("engine setup failed", "error", err)
		os.Exit(1)
	}

	seed := model.RoadAttributes{Start: model.Point{500, 500}, Angle: 0, Length: 40, Class: "avenue"}
	seedQuery := model.QueryAttributes{Start: seed.Start, Angle: seed.Angle, Length: seed.Length, Class: seed.Class, IsMainRoad: true}

	segments := eng.GenerateNetwork(seed, seedQuery)

	slog.Info("generation finished", "segments", len(segments), "queued", eng.QueueSize())
	for _, s := range segments[:min(len(segments), 10)] {
		slog.Info("segment", "id", s.ID, "tick", s.Tick,
			"x", fmt.Sprintf("%.1f", s.Attrs.Start[0]), "y", fmt.Sprintf("%.1f", s.Attrs.Start[1]),
			"angle", fmt.Sprintf("%.2f", s.Attrs.Angle), "length", fmt.Sprintf("%.1f", s.Attrs.Length))
	}
}

// demoTerrain builds a 16x16 grid over the default 1000x1000 bounds:
// buildable residential ground with a commercial core, an industrial
// corner, a coastal strip along the west edge and a steep ridge in the
// north-east.
func demoTerrain() *model.GridTerrain {
	g := &model.GridTerrain{Cols: 16, Rows: 16, CellW: 62.5, CellH: 62.5}
	g.Fill(model.TerrainSample{Slope: 0.1, Urbanization: 0.5, District: model.Residential})

	for row := 6; row < 10; row++ {
		for col := 6; col < 10; col++ {
			g.SetZone(col, row, model.TerrainSample{Slope: 0.05, Urbanization: 0.9, District: model.Downtown})
		}
	}
	for row := 12; row < 16; row++ {
		for col := 12; col < 16; col++ {
			g.SetZone(col, row, model.TerrainSample{Slope: 0.15, Urbanization: 0.4, District: model.Industrial})
		}
	}
	for row := 0; row < 16; row++ {
		g.SetZone(0, row, model.TerrainSample{Slope: 0.05, Urbanization: 0.6, District: model.Coastal})
	}
	for row := 0; row < 4; row++ {
		for col := 12; col < 16; col++ {
			g.SetZone(col, row, model.TerrainSample{Slope: 0.7 + 0.05*math.Abs(float64(col-14)), Urbanization: 0.1})
		}
	}
	return g
}
