// kmlout/kml.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package kmlout writes compiled airspaces as a KML document, for viewers
// that don't read CZML.
package kmlout

import (
	"fmt"
	"image/color"
	"io"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/czml"
	"github.com/mmp/airspace3d/math"

	kml "github.com/twpayne/go-kml"
)

// Write translates the airspaces with the given compiler and writes them
// to w as a KML document. Each airspace becomes a placemark holding a
// polygon at its ceiling, extruded down to the ground.
func Write(w io.Writer, c *czml.Compiler, name string, airspaces []av.Airspace) error {
	var styles []kml.Element
	styleIds := make(map[czml.RGBA]string)
	var placemarks []kml.Element

	for i := range airspaces {
		p, err := c.Translate(&airspaces[i])
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}

		ring, ref, fill, outline := footprint(p)

		id, ok := styleIds[fill]
		if !ok {
			id = fmt.Sprintf("style-%d", len(styleIds))
			styleIds[fill] = id
			styles = append(styles, kml.SharedStyle(id,
				kml.PolyStyle(kml.Color(toColor(fill))),
				kml.LineStyle(kml.Color(toColor(outline)), kml.Width(2)),
			))
		}

		placemarks = append(placemarks, kml.Placemark(
			kml.Name(p.Name),
			kml.Description(p.Description),
			kml.StyleURL("#"+id),
			kml.Polygon(
				kml.AltitudeMode(altitudeMode(ref)),
				kml.Extrude(true),
				kml.Tessellate(false),
				kml.OuterBoundaryIs(kml.LinearRing(kml.Coordinates(ring...))),
			),
		))
	}

	children := []kml.Element{kml.Name(name), kml.Open(true)}
	children = append(children, styles...)
	children = append(children, placemarks...)
	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

// footprint returns the closed boundary ring of the packet at the
// airspace's ceiling along with its height reference and colors.
func footprint(p *czml.Packet) (ring []kml.Coordinate, ref czml.HeightReference, fill, outline czml.RGBA) {
	if cyl := p.Cylinder; cyl != nil {
		center := math.Point2LL{p.Position[0], p.Position[1]}
		top := p.Position[2] + cyl.Length
		pts := czml.TessellateArc(center, cyl.TopRadius, 0, 360, av.Clockwise)
		if len(pts) > 1 {
			// The point at 360 duplicates the one at 0; closeRing adds it back exactly.
			pts = pts[:len(pts)-1]
		}
		for _, pt := range pts {
			ring = append(ring, kml.Coordinate{Lon: pt.Longitude(), Lat: pt.Latitude(), Alt: top})
		}
		return closeRing(ring), cyl.HeightReference, cyl.Material.SolidColor.Color.RGBA, cyl.OutlineColor.RGBA
	}

	poly := p.Polygon
	top := poly.Height + poly.ExtrudedHeight
	for _, pos := range poly.Positions {
		ring = append(ring, kml.Coordinate{Lon: pos[0], Lat: pos[1], Alt: top})
	}
	return closeRing(ring), poly.HeightReference, poly.Material.SolidColor.Color.RGBA, poly.OutlineColor.RGBA
}

func closeRing(ring []kml.Coordinate) []kml.Coordinate {
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func altitudeMode(ref czml.HeightReference) kml.AltitudeModeEnum {
	switch ref {
	case czml.HeightReferenceClampToGround:
		return kml.AltitudeModeClampToGround
	case czml.HeightReferenceRelativeToGround:
		return kml.AltitudeModeRelativeToGround
	default:
		return kml.AltitudeModeAbsolute
	}
}

func toColor(c czml.RGBA) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: uint8(c[3])}
}
