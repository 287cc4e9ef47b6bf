// aviation/load.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmp/airspace3d/log"
	"github.com/mmp/airspace3d/math"
	"github.com/mmp/airspace3d/util"

	"github.com/brunoga/deep"
	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v2"
)

// Definition is the contents of an airspace definition file.
type Definition struct {
	Name        string
	Description []string
	Airspaces   []Airspace
}

type definitionFile struct {
	Name        string        `json:"name" yaml:"name"`
	Description []string      `json:"description" yaml:"description"`
	Airspaces   []airspaceDef `json:"-" yaml:"airspaces"`
}

type airspaceDef struct {
	Name        string        `json:"name" yaml:"name"`
	Class       string        `json:"class" yaml:"class"`
	Type        string        `json:"type" yaml:"type"`
	Description string        `json:"description" yaml:"description"`
	Frequency   string        `json:"frequency" yaml:"frequency"`
	CallSign    string        `json:"callsign" yaml:"callsign"`
	Color       string        `json:"color" yaml:"color"`
	Floor       string        `json:"floor" yaml:"floor"`
	Ceiling     string        `json:"ceiling" yaml:"ceiling"`
	Circle      *circleDef    `json:"circle" yaml:"circle"`
	Boundary    []segmentDef  `json:"boundary" yaml:"boundary"`
	Volumes     []airspaceDef `json:"volumes" yaml:"volumes"`
}

type circleDef struct {
	Center   string  `json:"center" yaml:"center"`
	Radius   float64 `json:"radius" yaml:"radius"`
	RadiusNM float64 `json:"radius_nm" yaml:"radius_nm"`
}

// segmentDef holds exactly one of its fields.
type segmentDef struct {
	Point      string         `json:"point" yaml:"point"`
	Arc        *arcDef        `json:"arc" yaml:"arc"`
	ArcSegment *arcSegmentDef `json:"arcsegment" yaml:"arcsegment"`
}

type arcDef struct {
	Center string `json:"center" yaml:"center"`
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Dir    string `json:"dir" yaml:"dir"`
}

type arcSegmentDef struct {
	Center   string  `json:"center" yaml:"center"`
	Radius   float64 `json:"radius" yaml:"radius"`
	RadiusNM float64 `json:"radius_nm" yaml:"radius_nm"`
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end" yaml:"end"`
	Dir      string  `json:"dir" yaml:"dir"`
}

// FormatForPath returns "yaml" or "json" according to the extension of
// the given path; a trailing ".zst" is ignored.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(util.TrimCompressedExt(path))) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// LoadAirspacesFile loads the airspace definitions in the given file,
// which may be zstd compressed. If the file doesn't name the document,
// its base name is used.
func LoadAirspacesFile(path string, lg *log.Logger) (*Definition, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	b, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}

	def, err := LoadAirspaces(b, format, lg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		base := filepath.Base(util.TrimCompressedExt(path))
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}

// LoadAirspaces parses airspace definitions in the given format ("yaml"
// or "json"). The top level is either a list of airspaces or an object
// with "name", "description", and "airspaces" members; in JSON,
// "airspaces" may also be an object keyed by airspace name, in which case
// the file's order is preserved. All validation errors are reported
// together, wrapped in ErrInvalidDefinition.
func LoadAirspaces(b []byte, format string, lg *log.Logger) (*Definition, error) {
	var f definitionFile
	var err error
	switch format {
	case "yaml":
		err = parseYAML(b, &f)
	case "json":
		err = parseJSON(b, &f)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	var e util.ErrorLogger
	def := &Definition{Name: f.Name, Description: f.Description}
	for i := range f.Airspaces {
		d := &f.Airspaces[i]
		if d.Name != "" {
			e.Push("airspace " + d.Name)
		} else {
			e.Push(fmt.Sprintf("airspace %d", i+1))
		}
		def.Airspaces = append(def.Airspaces, d.build(nil, &e, lg)...)
		e.Pop()
	}

	if len(f.Airspaces) == 0 {
		e.ErrorString("no airspaces defined")
	}
	if e.HaveErrors() {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidDefinition, e.String())
	}

	lg.Debugf("loaded %d airspaces from %d definitions", len(def.Airspaces), len(f.Airspaces))
	return def, nil
}

func parseYAML(b []byte, f *definitionFile) error {
	var probe any
	if err := yaml.Unmarshal(b, &probe); err != nil {
		return err
	}
	if _, ok := probe.([]any); ok {
		return yaml.UnmarshalStrict(b, &f.Airspaces)
	}
	return yaml.UnmarshalStrict(b, f)
}

func parseJSON(b []byte, f *definitionFile) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("empty JSON file")
	}
	if b[0] == '[' {
		return util.UnmarshalJSONBytes(b, &f.Airspaces)
	}

	var doc struct {
		Name        string          `json:"name"`
		Description []string        `json:"description"`
		Airspaces   json.RawMessage `json:"airspaces"`
	}
	if err := util.UnmarshalJSONBytes(b, &doc); err != nil {
		return err
	}
	f.Name, f.Description = doc.Name, doc.Description

	airspaces := bytes.TrimSpace(doc.Airspaces)
	if len(airspaces) == 0 {
		return nil
	} else if airspaces[0] == '[' {
		return util.UnmarshalJSONBytes(airspaces, &f.Airspaces)
	}

	// Keyed by name; orderedmap gives us the keys in file order.
	om := orderedmap.New()
	if err := json.Unmarshal(airspaces, om); err != nil {
		return err
	}
	var byName map[string]json.RawMessage
	if err := util.UnmarshalJSONBytes(airspaces, &byName); err != nil {
		return err
	}
	for _, name := range om.Keys() {
		var d airspaceDef
		if err := util.UnmarshalJSONBytes(byName[name], &d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d.Name == "" {
			d.Name = name
		}
		f.Airspaces = append(f.Airspaces, d)
	}
	return nil
}

// build returns the airspace described by d, followed by those of its
// volumes. Fields that d doesn't specify are taken from parent, if
// provided. An entry without geometry whose volumes all have geometry
// serves only as a template for them.
func (d *airspaceDef) build(parent *Airspace, e *util.ErrorLogger, lg *log.Logger) []Airspace {
	var a Airspace
	if parent != nil {
		a = deep.MustCopy(*parent)
	}

	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&a.Name, d.Name)
	override(&a.Class, d.Class)
	override(&a.Type, d.Type)
	override(&a.Description, d.Description)
	override(&a.Frequency, d.Frequency)
	override(&a.CallSign, d.CallSign)
	override(&a.Color, d.Color)
	if d.Floor != "" {
		a.Floor = ParseAltitude(d.Floor)
	}
	if d.Ceiling != "" {
		a.Ceiling = ParseAltitude(d.Ceiling)
	}

	if d.Circle != nil && d.Boundary != nil {
		e.ErrorString(`cannot specify both "circle" and "boundary"`)
	} else if d.Circle != nil {
		e.Push("circle")
		a.Geometry = d.Circle.circle(e)
		e.Pop()
	} else if d.Boundary != nil {
		e.Push("boundary")
		a.Geometry = buildPolygon(d.Boundary, e)
		e.Pop()
	}

	template := a.Geometry == nil && len(d.Volumes) > 0
	if !template {
		a.PostDeserialize(e, lg)
	}

	var result []Airspace
	if !template {
		result = append(result, a)
	}
	for i := range d.Volumes {
		e.Push(fmt.Sprintf("volume %d", i+1))
		result = append(result, d.Volumes[i].build(&a, e, lg)...)
		e.Pop()
	}
	return result
}

// PostDeserialize checks that a fully-specified airspace is usable.
func (a *Airspace) PostDeserialize(e *util.ErrorLogger, lg *log.Logger) {
	if a.Name == "" {
		e.ErrorString(`must provide "name" with airspace`)
	}
	if a.Floor.Type == AltitudeUnknown {
		e.ErrorString(`must provide "floor" with airspace`)
	}
	if a.Ceiling.Type == AltitudeUnknown {
		e.ErrorString(`must provide "ceiling" with airspace`)
	}
	if a.Geometry == nil {
		e.ErrorString(`must provide "circle" or "boundary" with airspace`)
	}
	if a.Color != "" && !validHexColor(a.Color) {
		lg.Warnf("%s: color %q is not of the form RRGGBB; the default will be used", a.Name, a.Color)
	}
}

func validHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, ch := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return false
		}
	}
	return true
}

func parsePoint(s, what string, e *util.ErrorLogger) (math.Point2LL, bool) {
	if s == "" {
		e.ErrorString("must provide %q", what)
		return math.Point2LL{}, false
	}
	p, err := math.ParseLatLong([]byte(strings.TrimSpace(s)))
	if err != nil {
		e.ErrorString("%q: %v", what, err)
		return math.Point2LL{}, false
	}
	return p, true
}

func parseDirection(s string, e *util.ErrorLogger) Direction {
	if s == "" {
		return Clockwise
	}
	dir, err := ParseDirection(s)
	if err != nil {
		e.Error(err)
	}
	return dir
}

func radiusMeters(m, nm float64, e *util.ErrorLogger) float64 {
	if m != 0 && nm != 0 {
		e.ErrorString(`cannot specify both "radius" and "radius_nm"`)
	}
	r := m
	if nm != 0 {
		r = nm * math.NauticalMilesToMeters
	}
	if r < 0 {
		e.ErrorString("radius %f cannot be negative", r)
	}
	return r
}

func (c *circleDef) circle(e *util.ErrorLogger) *Circle {
	center, _ := parsePoint(c.Center, "center", e)
	r := radiusMeters(c.Radius, c.RadiusNM, e)
	if r == 0 {
		e.ErrorString(`must provide "radius" with circle`)
	}
	return &Circle{Center: center, Radius: r}
}

func buildPolygon(segs []segmentDef, e *util.ErrorLogger) *Polygon {
	poly := &Polygon{}

	// Arcs may omit "from", in which case they start at the end of the
	// previous segment.
	var last math.Point2LL
	haveLast := false

	for i, s := range segs {
		e.Push(fmt.Sprintf("segment %d", i+1))

		n := 0
		if s.Point != "" {
			n++
		}
		if s.Arc != nil {
			n++
		}
		if s.ArcSegment != nil {
			n++
		}

		if n != 1 {
			e.ErrorString(`must provide exactly one of "point", "arc", or "arcsegment"`)
		} else if s.Point != "" {
			if p, ok := parsePoint(s.Point, "point", e); ok {
				poly.Segments = append(poly.Segments, PointSegment{P: p})
				last, haveLast = p, true
			}
		} else if s.Arc != nil {
			arc := Arc{Direction: parseDirection(s.Arc.Dir, e)}
			ok := true
			if s.Arc.From == "" && haveLast {
				arc.From = last
			} else {
				arc.From, ok = parsePoint(s.Arc.From, "from", e)
			}
			var ok2, ok3 bool
			arc.To, ok2 = parsePoint(s.Arc.To, "to", e)
			arc.Center, ok3 = parsePoint(s.Arc.Center, "center", e)
			if ok && ok2 && ok3 {
				poly.Segments = append(poly.Segments, arc)
				last, haveLast = arc.To, true
			}
		} else {
			as := s.ArcSegment
			seg := ArcSegment{
				Direction:    parseDirection(as.Dir, e),
				Radius:       radiusMeters(as.Radius, as.RadiusNM, e),
				StartBearing: as.Start,
				EndBearing:   as.End,
			}
			for _, b := range []float64{seg.StartBearing, seg.EndBearing} {
				if b < 0 || b > 360 {
					e.ErrorString("bearing %f must be between 0 and 360", b)
				}
			}
			var ok bool
			if seg.Center, ok = parsePoint(as.Center, "center", e); ok {
				poly.Segments = append(poly.Segments, seg)
				last = math.Offset(seg.Center, seg.EndBearing, seg.Radius)
				haveLast = true
			}
		}

		e.Pop()
	}

	return poly
}
