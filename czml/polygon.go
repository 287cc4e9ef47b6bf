// czml/polygon.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import (
	"encoding/json"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/math"
)

// Position is a longitude, latitude, and height in meters.
type Position [3]float64

func MakePosition(p math.Point2LL, height float64) Position {
	return Position{p.Longitude(), p.Latitude(), height}
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartographicDegrees{CartographicDegrees: p[:]})
}

// Positions marshals as a single flattened list of coordinates.
type Positions []Position

func (p Positions) MarshalJSON() ([]byte, error) {
	flat := make([]float64, 0, 3*len(p))
	for _, pos := range p {
		flat = append(flat, pos[:]...)
	}
	return json.Marshal(cartographicDegrees{CartographicDegrees: flat})
}

type cartographicDegrees struct {
	CartographicDegrees []float64 `json:"cartographicDegrees"`
}

// BuildPositions flattens the polygon's boundary into a list of
// positions, all at the given height. Arcs given by their endpoints are
// always followed by their end point as given, even when it is not
// exactly on the arc.
func (c *Compiler) BuildPositions(poly *av.Polygon, height float64) Positions {
	var pos Positions
	for _, seg := range poly.Segments {
		switch s := seg.(type) {
		case av.PointSegment:
			pos = append(pos, MakePosition(s.P, height))

		case av.ArcSegment:
			for _, p := range c.tessellate(s) {
				pos = append(pos, MakePosition(p, height))
			}

		case av.Arc:
			for _, p := range c.tessellate(ResolveArc(s)) {
				pos = append(pos, MakePosition(p, height))
			}
			pos = append(pos, MakePosition(s.To, height))

		default:
			c.lg.Warnf("%T: unexpected polygon segment ignored", seg)
		}
	}
	return pos
}

type arcKey struct {
	center     math.Point2LL
	radius     float64
	start, end float64
	dir        av.Direction
}

// tessellate returns the points along the arc segment. The returned
// slice may be shared and must not be modified.
func (c *Compiler) tessellate(s av.ArcSegment) []math.Point2LL {
	key := arcKey{center: s.Center, radius: s.Radius, start: s.StartBearing, end: s.EndBearing, dir: s.Direction}
	if c.arcs != nil {
		if pts, ok := c.arcs.Get(key); ok {
			return pts
		}
	}

	pts := TessellateArc(s.Center, s.Radius, s.StartBearing, s.EndBearing, s.Direction)
	if c.arcs != nil {
		c.arcs.Add(key, pts)
	}
	return pts
}
