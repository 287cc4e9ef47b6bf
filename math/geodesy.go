// math/geodesy.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// These are all great-circle computations on a spherical earth with
// orb.EarthRadius; Distance, Course, and Offset are mutually consistent,
// so Offset(c, Course(c, p), Distance(c, p)) returns p to within
// floating-point error.

const FeetToMeters = 0.3048
const MetersToFeet = 1 / FeetToMeters
const NauticalMilesToMeters = 1852

func (p Point2LL) orb() orb.Point {
	return orb.Point{p[0], p[1]}
}

// Distance returns the great-circle distance in meters between the two
// points.
func Distance(a, b Point2LL) float64 {
	return geo.DistanceHaversine(a.orb(), b.orb())
}

// Course returns the initial bearing from |from| to |to|, in degrees
// clockwise from true north in [0,360).
func Course(from, to Point2LL) float64 {
	return NormalizeHeading(geo.Bearing(from.orb(), to.orb()))
}

// Offset returns the point that is |dist| meters away from |p| along the
// great circle with initial bearing |bearing|.
func Offset(p Point2LL, bearing float64, dist float64) Point2LL {
	q := geo.PointAtBearingAndDistance(p.orb(), bearing, dist)
	return Point2LL{q.Lon(), q.Lat()}
}
