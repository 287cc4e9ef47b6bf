// czml/arc.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import (
	gomath "math"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/math"
)

// arcEndTolerance is how close, in degrees, the last stepped bearing must
// be to the end bearing for the end point not to be added separately.
const arcEndTolerance = 1e-6

// NormalizeArcBearings adjusts start or end by 360 degrees so that
// walking from start to end in the given direction is a single monotonic
// sweep: increasing for clockwise arcs and decreasing for
// counter-clockwise ones.
func NormalizeArcBearings(start, end float64, dir av.Direction) (float64, float64) {
	if dir == av.Clockwise && start > end {
		end += 360
	} else if dir == av.CounterClockwise && start < end {
		start += 360
	}
	return start, end
}

// ArcStep returns the angular step in degrees used to tessellate an arc of
// the given radius in meters.
func ArcStep(radius float64) float64 {
	switch {
	case radius < 10000:
		return 5
	case radius < 25000:
		return 3
	case radius < 50000:
		return 2
	default:
		return 1
	}
}

// arcBearings returns the bearings of the points that approximate the
// arc. Bearings are not reduced to [0,360).
func arcBearings(radius, start, end float64, dir av.Direction) []float64 {
	if gomath.IsNaN(start) || gomath.IsInf(start, 0) || gomath.IsNaN(end) || gomath.IsInf(end, 0) {
		return nil
	}

	s, e := NormalizeArcBearings(start, end, dir)
	step := ArcStep(radius)
	if dir == av.CounterClockwise {
		step = -step
	}

	var bearings []float64
	for i := 0; ; i++ {
		// Computed from the index rather than accumulated so that rounding
		// error doesn't build up along the arc.
		b := s + float64(i)*step
		if (step > 0 && b > e) || (step < 0 && b < e) {
			break
		}
		bearings = append(bearings, b)
	}

	if len(bearings) == 0 || math.HeadingDifference(bearings[len(bearings)-1], end) > arcEndTolerance {
		// e is end, possibly offset by 360, which keeps the sequence monotonic.
		bearings = append(bearings, e)
	}
	return bearings
}

// TessellateArc returns points along the arc around center with the given
// radius in meters from startBearing to endBearing. The last point is
// always at endBearing. A zero radius gives just the center.
func TessellateArc(center math.Point2LL, radius, startBearing, endBearing float64, dir av.Direction) []math.Point2LL {
	if radius == 0 {
		return []math.Point2LL{center}
	}

	bearings := arcBearings(radius, startBearing, endBearing, dir)
	pts := make([]math.Point2LL, len(bearings))
	for i, b := range bearings {
		pts[i] = math.Offset(center, b, radius)
	}
	return pts
}

// ResolveArc finds the radius and bearings of an arc given by its
// endpoints. The radius is the distance from the center to the start
// point; the end point may not lie exactly on the resulting circle.
func ResolveArc(arc av.Arc) av.ArcSegment {
	return av.ArcSegment{
		Center:       arc.Center,
		Direction:    arc.Direction,
		Radius:       math.Distance(arc.Center, arc.From),
		StartBearing: math.Course(arc.Center, arc.From),
		EndBearing:   math.Course(arc.Center, arc.To),
	}
}
