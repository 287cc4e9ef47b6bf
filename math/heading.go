// math/heading.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and bearings

// NormalizeHeading reduces it to [0,360).
func NormalizeHeading(h float64) float64 {
	if h < 0 {
		h = 360 - NormalizeHeading(-h)
	}
	h = Mod(h, 360)
	if h >= 360 { // 360 - tiny can round up
		h = 0
	}
	return h
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float64, b float64) float64 {
	d := Abs(NormalizeHeading(a) - NormalizeHeading(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
