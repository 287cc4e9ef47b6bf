// cmd/airspace3d/main_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	av "github.com/mmp/airspace3d/aviation"
	"github.com/mmp/airspace3d/czml"
	"github.com/mmp/airspace3d/util"
)

func TestConfigFlags(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	err := fs.Parse([]string{"-o", "out.kml.zst", "-desc", "one", "-desc", "two", "-indent", "in.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(fs.Args()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "kml" {
		t.Errorf("got format %q, expected kml from the output name", cfg.Format)
	}
	if strings.Join(cfg.Description, "|") != "one|two" || !cfg.Indent {
		t.Errorf("got %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("got log level %q, expected the default", cfg.LogLevel)
	}
	if p := cfg.OutputPath("in.yaml"); p != "out.kml.zst" {
		t.Errorf("got output %q", p)
	}
}

func TestConfigValidate(t *testing.T) {
	for _, test := range []struct {
		name   string
		cfg    Config
		inputs []string
		ok     bool
	}{
		{"NoInputs", Config{}, nil, false},
		{"OutputWithMultiple", Config{Output: "x.czml"}, []string{"a.yaml", "b.yaml"}, false},
		{"OpenWithoutServe", Config{Open: true}, []string{"a.yaml"}, false},
		{"BadFormat", Config{Format: "svg"}, []string{"a.yaml"}, false},
		{"Defaults", Config{}, []string{"a.yaml", "b.json"}, true},
		{"UpperFormat", Config{Format: "KML"}, []string{"a.yaml"}, true},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate(test.inputs)
			if test.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			} else if !test.ok && err == nil {
				t.Errorf("expected an error")
			}
		})
	}

	cfg := Config{}
	cfg.Validate([]string{"a.yaml"})
	if cfg.Format != "czml" {
		t.Errorf("got default format %q, expected czml", cfg.Format)
	}
	for input, expected := range map[string]string{
		"a.yaml":         "a.czml",
		"dir/b.json":     "dir/b.czml",
		"dir/c.yaml.zst": "dir/c.czml",
		"no-extension":   "no-extension.czml",
	} {
		if p := cfg.OutputPath(input); p != expected {
			t.Errorf("%s: got %q, expected %q", input, p, expected)
		}
	}
}

const testDefinition = `
name: Test Area
description: [Line one, Line two]
airspaces:
- name: Alpha CTR
  class: D
  color: FF0000
  floor: GND
  ceiling: 3280.8 ft
  circle: { center: "50.0, 8.5", radius: 5000 }
- name: Bravo TMA
  class: C
  floor: 1500 ft
  ceiling: FL65
  boundary:
  - point: 500000N 0080000E
  - arc: { center: 500000N 0083000E, to: 500000N 0090000E, dir: cw }
`

func writeTestFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.yaml", testDefinition)
	b := writeTestFile(t, dir, "b.yaml", strings.Replace(testDefinition, "Test Area", "Other", 1))

	cfg := Config{}
	if err := cfg.Validate([]string{a, b}); err != nil {
		t.Fatal(err)
	}
	docs, err := exportAll(context.Background(), &cfg, []string{a, b}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 || docs[0].Input != a || docs[1].Input != b {
		t.Fatalf("got %+v", docs)
	}

	out, err := os.ReadFile(filepath.Join(dir, "a.czml"))
	if err != nil {
		t.Fatal(err)
	}
	var packets []map[string]any
	if err := json.Unmarshal(out, &packets); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(packets) != 3 {
		t.Fatalf("got %d packets, expected 3", len(packets))
	}
	if packets[0]["name"] != "Test Area" || packets[0]["description"] != "Line one<br/>Line two" {
		t.Errorf("got header %v", packets[0])
	}
	if packets[1]["id"] != "alpha-ctr" || packets[1]["cylinder"] == nil {
		t.Errorf("got %v", packets[1])
	}
	if packets[2]["id"] != "bravo-tma" || packets[2]["polygon"] == nil {
		t.Errorf("got %v", packets[2])
	}

	if _, err := os.Stat(filepath.Join(dir, "b.czml")); err != nil {
		t.Errorf("b.czml: %v", err)
	}
}

func TestExportCompressedKML(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "area.yaml", testDefinition)

	cfg := Config{Output: filepath.Join(dir, "area.kml.zst")}
	if err := cfg.Validate([]string{in}); err != nil {
		t.Fatal(err)
	}
	docs, err := exportAll(context.Background(), &cfg, []string{in}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Name != "area" || docs[0].Format != "kml" {
		t.Errorf("got %+v", docs[0])
	}

	b, err := util.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "<Placemark>") || string(b) != string(docs[0].Data) {
		t.Errorf("unexpected KML output")
	}
}

func TestExportFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "good.yaml", testDefinition)
	bad := writeTestFile(t, dir, "bad.yaml", "- name: Broken\n  floor: GND\n")

	cfg := Config{}
	if err := cfg.Validate([]string{good, bad}); err != nil {
		t.Fatal(err)
	}
	_, err := exportAll(context.Background(), &cfg, []string{good, bad}, nil)
	if !errors.Is(err, av.ErrInvalidDefinition) {
		t.Errorf("got %v, expected ErrInvalidDefinition", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".yaml") {
			t.Errorf("unexpected file %s after failed export", e.Name())
		}
	}
}

func TestExportFailedCommitRestoresOutputs(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.yaml", testDefinition)
	b := writeTestFile(t, dir, "b.yaml", testDefinition)

	// b.czml can't be replaced since it's a non-empty directory.
	if err := os.MkdirAll(filepath.Join(dir, "b.czml", "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := Config{}
	if err := cfg.Validate([]string{a, b}); err != nil {
		t.Fatal(err)
	}
	expectFiles := func(names ...string) {
		t.Helper()
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, e := range entries {
			got = append(got, e.Name())
		}
		if strings.Join(got, " ") != strings.Join(names, " ") {
			t.Errorf("got files %v, expected %v", got, names)
		}
	}

	if _, err := exportAll(context.Background(), &cfg, []string{a, b}, nil); err == nil {
		t.Fatal("expected an error writing b.czml")
	}
	expectFiles("a.yaml", "b.czml", "b.yaml")

	// An existing a.czml is left as it was.
	writeTestFile(t, dir, "a.czml", "previous")
	if _, err := exportAll(context.Background(), &cfg, []string{a, b}, nil); err == nil {
		t.Fatal("expected an error writing b.czml")
	}
	expectFiles("a.czml", "a.yaml", "b.czml", "b.yaml")
	if out, err := os.ReadFile(filepath.Join(dir, "a.czml")); err != nil || string(out) != "previous" {
		t.Errorf("a.czml: got %q, %v, expected the previous contents", out, err)
	}
}

func TestExportCache(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	t.Setenv("HOME", cacheDir)

	dir := t.TempDir()
	in := writeTestFile(t, dir, "area.yaml", testDefinition)

	cfg := Config{Cache: true}
	if err := cfg.Validate([]string{in}); err != nil {
		t.Fatal(err)
	}
	cache, err := util.OpenCache[cachedDocument]("documents", maxCacheBytes, nil)
	if err != nil {
		t.Fatal(err)
	}
	compiler := czml.NewCompiler(nil)
	first, err := compileFile(&cfg, compiler, cache, in, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(cacheDir, "airspace3d", "documents"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("got cache entries %v, %v, expected one", entries, err)
	}

	second, err := compileFile(&cfg, compiler, cache, in, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Data) != string(second.Data) {
		t.Errorf("cached document differs")
	}

	// A different name gives a different key and a different document.
	cfg.Name = "Renamed"
	third, err := compileFile(&cfg, compiler, cache, in, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(third.Data), `"name":"Renamed"`) {
		t.Errorf("expected renamed document, got %s", third.Data[:80])
	}
}

func TestRouter(t *testing.T) {
	docs := []*Document{
		{Name: "alpha", Format: "czml", Data: []byte(`[{"id":"document"}]`)},
		{Name: "bravo", Format: "kml", Data: []byte(`<kml/>`)},
		{Name: "alpha", Format: "czml", Data: []byte(`[]`)},
	}
	srv := httptest.NewServer(newRouter(docs, nil))
	defer srv.Close()

	get := func(path string) (int, string, string) {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, resp.Header.Get("Content-Type"), string(b)
	}

	if code, _, body := get("/health"); code != http.StatusOK || body != "ok" {
		t.Errorf("/health: got %d %q", code, body)
	}
	if code, ct, body := get("/documents/alpha"); code != http.StatusOK || ct != "application/json" || body != `[{"id":"document"}]` {
		t.Errorf("/documents/alpha: got %d %q %q", code, ct, body)
	}
	if code, ct, _ := get("/documents/bravo"); code != http.StatusOK || ct != "application/vnd.google-earth.kml+xml" {
		t.Errorf("/documents/bravo: got %d %q", code, ct)
	}
	if code, _, _ := get("/documents/charlie"); code != http.StatusNotFound {
		t.Errorf("/documents/charlie: got %d, expected 404", code)
	}
	if _, _, body := get("/documents"); strings.TrimSpace(body) != `["alpha","bravo"]` {
		t.Errorf("/documents: got %q", body)
	}
}
