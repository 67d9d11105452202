package model

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a 2D map coordinate, copied by value.
type Point = orb.Point

// RoadAttributes is the committed geometry of a road: where it starts,
// which way it heads (radians) and how far it runs. Immutable once a
// segment exists.
type RoadAttributes struct {
	Start  Point
	Angle  float64
	Length float64
	Class  string
}

// End computes the far endpoint from start + heading * length.
func (r RoadAttributes) End() Point {
	return Point{
		r.Start[0] + math.Cos(r.Angle)*r.Length,
		r.Start[1] + math.Sin(r.Angle)*r.Length,
	}
}

// QueryAttributes describes a candidate road under evaluation. Constraint
// rules may hand back an adjusted copy; the adjustment feeds goal
// generation, never committed geometry.
type QueryAttributes struct {
	Start      Point
	Angle      float64
	Length     float64
	Class      string
	IsMainRoad bool
}

// End computes the candidate's far endpoint.
func (q QueryAttributes) End() Point {
	return Point{
		q.Start[0] + math.Cos(q.Angle)*q.Length,
		q.Start[1] + math.Sin(q.Angle)*q.Length,
	}
}

// Attrs converts the candidate to committed-geometry form.
func (q QueryAttributes) Attrs() RoadAttributes {
	return RoadAttributes{Start: q.Start, Angle: q.Angle, Length: q.Length, Class: q.Class}
}

// RoadProposal is a follow-on candidate emitted by a goal rule. Delay is
// the number of ticks to wait before the candidate is considered; it must
// be positive so queue ticks stay monotonically non-decreasing.
type RoadProposal struct {
	Attrs RoadAttributes
	Query QueryAttributes
	Delay int
}

// RoadSegment is a committed, immutable result. Created only by the engine
// when a candidate passes every active constraint.
type RoadSegment struct {
	ID    string
	Attrs RoadAttributes
	Tick  int
}
