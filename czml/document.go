// czml/document.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package czml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/log"
	"github.com/mmp/airspace3d/math"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DocumentId = "document"
	Version    = "1.0"
)

// arcCacheSize is the number of tessellated arcs a Compiler remembers.
const arcCacheSize = 4096

// Compiler translates airspaces to documents. A Compiler may be used
// concurrently; its zero value is usable but doesn't cache arc
// tessellations.
type Compiler struct {
	// Indent causes written documents to be indented.
	Indent bool

	lg   *log.Logger
	arcs *lru.Cache[arcKey, []math.Point2LL]
}

func NewCompiler(lg *log.Logger) *Compiler {
	arcs, err := lru.New[arcKey, []math.Point2LL](arcCacheSize)
	if err != nil {
		// Only possible with a non-positive size.
		panic(err)
	}
	return &Compiler{lg: lg, arcs: arcs}
}

// Document is the header packet followed by one packet per airspace.
type Document []*Packet

// Compile returns the document for the airspaces, in the order given.
// Airspaces with empty boundaries are skipped; any other failure fails
// the whole document.
func (c *Compiler) Compile(name string, airspaces []av.Airspace, descriptionLines []string) (Document, error) {
	doc := Document{{
		Id:          DocumentId,
		Name:        name,
		Description: toHTML(strings.Join(descriptionLines, "\n")),
		Version:     Version,
	}}

	ids := map[string]int{DocumentId: 1}
	for i := range airspaces {
		p, err := c.Translate(&airspaces[i])
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}

		p.Id = uniqueId(p.Id, ids)
		doc = append(doc, p)
	}

	c.lg.Debugf("%s: compiled %d of %d airspaces", name, len(doc)-1, len(airspaces))
	return doc, nil
}

// uniqueId returns id, or id with a numeric suffix if it has already been
// used.
func uniqueId(id string, ids map[string]int) string {
	if id == "" {
		id = "airspace"
	}
	base := id
	for ids[id] > 0 {
		ids[base]++
		id = fmt.Sprintf("%s-%d", base, ids[base])
	}
	ids[id]++
	return id
}

// Encode writes the document as JSON to w.
func (d Document) Encode(w io.Writer, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(d)
}

// WriteTo compiles the airspaces and writes the resulting document to w.
// Nothing is written if compilation fails.
func (c *Compiler) WriteTo(w io.Writer, name string, airspaces []av.Airspace, descriptionLines []string) error {
	doc, err := c.Compile(name, airspaces, descriptionLines)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf, c.Indent); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// Write returns the document for the airspaces as a string.
func (c *Compiler) Write(name string, airspaces []av.Airspace, descriptionLines []string) (string, error) {
	var sb strings.Builder
	if err := c.WriteTo(&sb, name, airspaces, descriptionLines); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
