// czml/color.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import (
	"strconv"

	av "github.com/mmp/airspace3d/aviation"
)

const DefaultColor = "C0C0C0"

const (
	fillAlpha      = 128
	outlineAlpha   = 255
	outlineDarken  = 0.2
	defaultChannel = 0xC0
)

// RGBA holds 8-bit color channels; it marshals as [r,g,b,a].
type RGBA [4]int

// ColorFromAirspace returns the fill color for the airspace or, if
// outline is set, its darker opaque outline color. Colors that don't
// parse as RRGGBB hex give the default color.
func ColorFromAirspace(a *av.Airspace, outline bool) RGBA {
	r, g, b := parseHexColor(a.Color)
	if outline {
		darken := func(c int) int { return int(float64(c) - float64(c)*outlineDarken) }
		return RGBA{darken(r), darken(g), darken(b), outlineAlpha}
	}
	return RGBA{r, g, b, fillAlpha}
}

func parseHexColor(s string) (r, g, b int) {
	if s == "" {
		s = DefaultColor
	}
	if len(s) == 6 {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil {
			return int(v>>16) & 0xff, int(v>>8) & 0xff, int(v) & 0xff
		}
	}
	return defaultChannel, defaultChannel, defaultChannel
}
