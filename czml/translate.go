// czml/translate.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import (
	"fmt"
	"strings"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/util"
)

// Translate returns the packet for the airspace. It returns nil and no
// error if the airspace is a polygon with an empty boundary.
func (c *Compiler) Translate(a *av.Airspace) (*Packet, error) {
	if !a.Floor.Type.Valid() {
		return nil, fmt.Errorf("%s: floor %v: %w", a.Name, a.Floor.Type, ErrUnknownAltitudeType)
	}
	if !a.Ceiling.Type.Valid() {
		return nil, fmt.Errorf("%s: ceiling %v: %w", a.Name, a.Ceiling.Type, ErrUnknownAltitudeType)
	}

	floor := HeightFromAltitude(a.Floor)
	height := HeightFromAltitude(a.Ceiling) - floor
	ref := HeightReferenceFromAltitude(a.Floor)
	fill := MakeMaterial(ColorFromAirspace(a, false))
	outline := &Color{RGBA: ColorFromAirspace(a, true)}

	p := &Packet{
		Id:          util.Slugify(a.Name),
		Name:        a.Name,
		Description: describe(a),
	}

	switch g := a.Geometry.(type) {
	case *av.Circle:
		if g == nil {
			break
		}
		pos := MakePosition(g.Center, floor)
		p.Position = &pos
		p.Cylinder = &Cylinder{
			Length:          height,
			TopRadius:       g.Radius,
			BottomRadius:    g.Radius,
			HeightReference: ref,
			Material:        fill,
			Outline:         true,
			OutlineColor:    outline,
		}
		return p, nil

	case *av.Polygon:
		if g == nil {
			break
		}
		positions := c.BuildPositions(g, floor)
		if len(positions) == 0 {
			c.lg.Debugf("%s: empty boundary; skipping", a.Name)
			return nil, nil
		}
		p.Polygon = &PolygonGraphics{
			Positions:       positions,
			Height:          floor,
			ExtrudedHeight:  height,
			HeightReference: ref,
			Material:        fill,
			Outline:         true,
			OutlineColor:    outline,
		}
		return p, nil
	}

	return nil, fmt.Errorf("%s: %T: %w", a.Name, a.Geometry, ErrUnknownGeometry)
}

// describe returns the HTML description of the airspace shown by the
// viewer.
func describe(a *av.Airspace) string {
	class := a.Class
	if a.Type != "" {
		class += " (" + a.Type + ")"
	}

	lines := []string{
		a.Name,
		strings.TrimSpace(class),
		a.Floor.String() + " - " + a.Ceiling.String(),
		strings.TrimSpace(a.Description),
	}
	if a.Frequency != "" {
		lines = append(lines, "Frequency: "+a.Frequency)
	}
	if a.CallSign != "" {
		lines = append(lines, "Call sign: "+a.CallSign)
	}

	s := util.CollapseBlankLines(strings.Join(lines, "\n"))
	return toHTML(strings.TrimSpace(s))
}

func toHTML(s string) string {
	return strings.ReplaceAll(s, "\n", "<br/>")
}
