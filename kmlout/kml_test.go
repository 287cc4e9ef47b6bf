// kmlout/kml_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kmlout

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/czml"
	"github.com/mmp/airspace3d/math"

	"github.com/twpayne/go-kml"
)

func testAirspaces() []av.Airspace {
	return []av.Airspace{
		{
			Name:     "Circle",
			Color:    "FF0000",
			Floor:    av.Altitude{Type: av.AltitudeGND},
			Ceiling:  av.Altitude{Type: av.AltitudeAMSL, Value: 2500},
			Geometry: &av.Circle{Center: math.Point2LL{8.5, 50}, Radius: 5000},
		},
		{
			Name:    "Triangle",
			Color:   "FF0000",
			Floor:   av.Altitude{Type: av.AltitudeAMSL, Value: 2500},
			Ceiling: av.Altitude{Type: av.AltitudeFlightLevel, Value: 65},
			Geometry: &av.Polygon{Segments: []av.Segment{
				av.PointSegment{P: math.Point2LL{8, 50}},
				av.PointSegment{P: math.Point2LL{8.1, 50}},
				av.PointSegment{P: math.Point2LL{8.1, 50.1}},
			}},
		},
		{
			Name:     "Empty",
			Floor:    av.Altitude{Type: av.AltitudeGND},
			Ceiling:  av.Altitude{Type: av.AltitudeGND},
			Geometry: &av.Polygon{},
		},
		{
			Name:     "Above Ground",
			Color:    "0000FF",
			Floor:    av.Altitude{Type: av.AltitudeAGL, Value: 500},
			Ceiling:  av.Altitude{Type: av.AltitudeUnlimited},
			Geometry: &av.Circle{Center: math.Point2LL{8.7, 50.2}, Radius: 2000},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, czml.NewCompiler(nil), "Test", testAirspaces()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := buf.String()

	if n := strings.Count(s, "<Placemark>"); n != 3 {
		t.Errorf("got %d placemarks, expected 3", n)
	}
	// Two distinct colors give two shared styles.
	if n := strings.Count(s, "<Style id="); n != 2 {
		t.Errorf("got %d styles, expected 2", n)
	}
	for _, expected := range []string{
		"<name>Test</name>",
		"<name>Circle</name>",
		"<name>Triangle</name>",
		"<name>Above Ground</name>",
		"clampToGround",
		"absolute",
		"relativeToGround",
	} {
		if !strings.Contains(s, expected) {
			t.Errorf("output does not contain %q", expected)
		}
	}
	if strings.Contains(s, "<name>Empty</name>") {
		t.Errorf("empty airspace should be skipped")
	}

	// Make sure it's well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		if _, err := dec.Token(); err != nil {
			if err != io.EOF {
				t.Errorf("invalid XML: %v", err)
			}
			break
		}
	}
}

func TestWriteFails(t *testing.T) {
	airspaces := testAirspaces()
	airspaces[1].Geometry = nil

	var buf bytes.Buffer
	err := Write(&buf, czml.NewCompiler(nil), "Test", airspaces)
	if !errors.Is(err, czml.ErrUnknownGeometry) {
		t.Errorf("got %v, expected ErrUnknownGeometry", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failure")
	}
}

func TestFootprint(t *testing.T) {
	c := czml.NewCompiler(nil)
	a := testAirspaces()

	p, err := c.Translate(&a[0])
	if err != nil {
		t.Fatal(err)
	}
	ring, ref, fill, outline := footprint(p)
	if ref != czml.HeightReferenceClampToGround {
		t.Errorf("got reference %s", ref)
	}
	if fill != (czml.RGBA{255, 0, 0, 128}) || outline != (czml.RGBA{204, 0, 0, 255}) {
		t.Errorf("got colors %v %v", fill, outline)
	}
	// 0 to 360 degrees at 5 degree steps
	if len(ring) != 73 {
		t.Errorf("got %d ring points, expected 73", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Errorf("ring not closed")
	}
	for _, c := range ring {
		if math.Abs(c.Alt-2500*math.FeetToMeters) > 1e-9 {
			t.Errorf("got altitude %f, expected the ceiling", c.Alt)
			break
		}
	}

	p, err = c.Translate(&a[1])
	if err != nil {
		t.Fatal(err)
	}
	ring, _, _, _ = footprint(p)
	if len(ring) != 4 || ring[0] != ring[3] {
		t.Errorf("got ring %v, expected closed triangle", ring)
	}
	if math.Abs(ring[1].Alt-6500*math.FeetToMeters) > 1e-6 {
		t.Errorf("got altitude %f, expected FL65", ring[1].Alt)
	}
}

func TestAltitudeMode(t *testing.T) {
	for ref, expected := range map[czml.HeightReference]kml.AltitudeModeEnum{
		czml.HeightReferenceClampToGround:    kml.AltitudeModeClampToGround,
		czml.HeightReferenceRelativeToGround: kml.AltitudeModeRelativeToGround,
		czml.HeightReferenceNone:             kml.AltitudeModeAbsolute,
	} {
		if m := altitudeMode(ref); m != expected {
			t.Errorf("%s: got %s, expected %s", ref, m, expected)
		}
	}
}
