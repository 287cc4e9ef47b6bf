// czml/packet.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

// Packet is a single element of a document. The first packet of a
// document is its header; the rest each hold either a Cylinder, with its
// Position, or a Polygon. Field order matches what the viewer expects.
type Packet struct {
	Id          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Version     string           `json:"version,omitempty"`
	Position    *Position        `json:"position,omitempty"`
	Cylinder    *Cylinder        `json:"cylinder,omitempty"`
	Polygon     *PolygonGraphics `json:"polygon,omitempty"`
}

type Cylinder struct {
	Length          float64         `json:"length"`
	TopRadius       float64         `json:"topRadius"`
	BottomRadius    float64         `json:"bottomRadius"`
	HeightReference HeightReference `json:"heightReference"`
	Material        *Material       `json:"material"`
	Outline         bool            `json:"outline"`
	OutlineColor    *Color          `json:"outlineColor"`
}

type PolygonGraphics struct {
	Positions       Positions       `json:"positions"`
	Height          float64         `json:"height"`
	ExtrudedHeight  float64         `json:"extrudedHeight"`
	HeightReference HeightReference `json:"heightReference"`
	Material        *Material       `json:"material"`
	Outline         bool            `json:"outline"`
	OutlineColor    *Color          `json:"outlineColor"`
}

type Material struct {
	SolidColor SolidColor `json:"solidColor"`
}

type SolidColor struct {
	Color Color `json:"color"`
}

type Color struct {
	RGBA RGBA `json:"rgba"`
}

func MakeMaterial(c RGBA) *Material {
	return &Material{SolidColor: SolidColor{Color: Color{RGBA: c}}}
}
