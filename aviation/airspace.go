// aviation/airspace.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strings"

	"github.com/mmp/airspace3d/math"
)

// Airspace is a volume bounded horizontally by a circle or polygon and
// vertically by a floor and a ceiling.
type Airspace struct {
	Name        string
	Class       string
	Type        string
	Description string
	Frequency   string
	CallSign    string
	Color       string // RRGGBB hex; empty for the default
	Floor       Altitude
	Ceiling     Altitude
	Geometry    Geometry
}

// Geometry is implemented by *Circle and *Polygon only.
type Geometry interface {
	isGeometry()
}

type Circle struct {
	Center math.Point2LL
	Radius float64 // meters
}

type Polygon struct {
	Segments []Segment
}

func (*Circle) isGeometry()  {}
func (*Polygon) isGeometry() {}

// Segment is one piece of a polygon boundary: a PointSegment, an Arc, or
// an ArcSegment.
type Segment interface {
	isSegment()
}

type PointSegment struct {
	P math.Point2LL
}

// Arc is an arc around Center given by its endpoints; its radius and
// bearings must be derived from them.
type Arc struct {
	From, To  math.Point2LL
	Center    math.Point2LL
	Direction Direction
}

// ArcSegment is an arc given by its radius and start and end bearings,
// measured in degrees from true north.
type ArcSegment struct {
	Center       math.Point2LL
	Direction    Direction
	Radius       float64 // meters
	StartBearing float64
	EndBearing   float64
}

func (PointSegment) isSegment() {}
func (Arc) isSegment()          {}
func (ArcSegment) isSegment()   {}

type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise", "+":
		return Clockwise, nil
	case "ccw", "counterclockwise", "counter-clockwise", "anticlockwise", "-":
		return CounterClockwise, nil
	default:
		return 0, fmt.Errorf("%q: unknown arc direction", s)
	}
}

func (d *Direction) UnmarshalText(b []byte) error {
	dir, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
