// cmd/airspace3d/export.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"strings"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/czml"
	"github.com/mmp/airspace3d/kmlout"
	"github.com/mmp/airspace3d/log"
	"github.com/mmp/airspace3d/util"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

// maxCacheBytes bounds the size of the compiled document cache.
const maxCacheBytes = 256 * 1024 * 1024

// cacheRevision is part of every cache key; bump it when compiled output
// changes for the same input.
const cacheRevision = "1"

// Document is a compiled definition file.
type Document struct {
	Input  string
	Output string
	Name   string // slug used to serve it
	Format string
	Data   []byte // uncompressed
}

type cachedDocument struct {
	Format string
	Data   []byte
}

// exportAll compiles each input file concurrently and writes the
// results. If any fails, none of the outputs are written and existing
// files at the output paths are left unchanged.
func exportAll(ctx context.Context, cfg *Config, inputs []string, lg *log.Logger) ([]*Document, error) {
	compiler := czml.NewCompiler(lg)
	compiler.Indent = cfg.Indent

	var cache *util.Cache[cachedDocument]
	if cfg.Cache {
		var err error
		if cache, err = util.OpenCache[cachedDocument]("documents", maxCacheBytes, lg); err != nil {
			lg.Warnf("document cache: %v", err)
		}
	}

	docs := make([]*Document, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, input := range inputs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := compileFile(cfg, compiler, cache, input, lg)
			docs[i] = doc
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	outputs := util.MakeOutputSet(lg)
	for _, doc := range docs {
		if err := writeOutput(outputs, doc); err != nil {
			outputs.Abort()
			return nil, err
		}
	}
	if err := outputs.Commit(); err != nil {
		return nil, err
	}
	return docs, nil
}

// compileFile loads and compiles a single definition file. cache may be
// nil.
func compileFile(cfg *Config, compiler *czml.Compiler, cache *util.Cache[cachedDocument], input string,
	lg *log.Logger) (*Document, error) {
	doc := &Document{
		Input:  input,
		Output: cfg.OutputPath(input),
		Format: cfg.Format,
	}
	base := filepath.Base(util.TrimCompressedExt(doc.Output))
	doc.Name = util.Slugify(strings.TrimSuffix(base, filepath.Ext(base)))

	src, err := util.ReadFile(input)
	if err != nil {
		return nil, err
	}
	key := util.HashStrings(string(src), cfg.Format, cfg.Name,
		strings.Join(cfg.Description, "\n"), boolString(cfg.Indent), czml.Version, cacheRevision)

	if !cfg.Dump {
		if cd, ok := cache.Get(key); ok && cd.Format == cfg.Format {
			lg.Debugf("%s: using cached document", input)
			doc.Data = cd.Data
			return doc, nil
		}
	}

	def, err := av.LoadAirspacesFile(input, lg)
	if err != nil {
		return nil, err
	}
	if cfg.Dump {
		godump.Dump(def.Airspaces)
	}

	name := def.Name
	if cfg.Name != "" {
		name = cfg.Name
	}
	desc := def.Description
	if len(cfg.Description) > 0 {
		desc = cfg.Description
	}

	var buf bytes.Buffer
	switch cfg.Format {
	case "kml":
		err = kmlout.Write(&buf, compiler, name, def.Airspaces)
	default:
		err = compiler.WriteTo(&buf, name, def.Airspaces, desc)
	}
	if err != nil {
		return nil, err
	}
	doc.Data = buf.Bytes()
	lg.Infof("%s: compiled %d airspaces, %d bytes", input, len(def.Airspaces), len(doc.Data))

	if err := cache.Put(key, cachedDocument{Format: cfg.Format, Data: doc.Data}); err != nil {
		lg.Warnf("%s: unable to cache document: %v", input, err)
	}

	return doc, nil
}

// writeOutput stages the document, compressed if its output path asks
// for it, in outputs.
func writeOutput(outputs *util.OutputSet, doc *Document) error {
	f, err := outputs.Create(doc.Output)
	if err != nil {
		return err
	}

	w, err := util.CompressedWriter(f, doc.Output)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := w.Write(doc.Data); err != nil {
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
