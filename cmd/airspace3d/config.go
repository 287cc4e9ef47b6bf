// cmd/airspace3d/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmp/airspace3d/util"
)

// Config holds the command-line options.
type Config struct {
	Output      string
	Format      string
	Name        string
	Description stringList
	Indent      bool
	LogLevel    string
	LogDir      string
	Cache       bool
	Dump        bool
	Serve       string
	Open        bool
}

// stringList is a flag.Value that accumulates repeated flags.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Output, "o", "", "output file (only with a single input); a .zst suffix compresses it")
	fs.StringVar(&c.Format, "format", "", "output format: czml or kml (default: from the output name, else czml)")
	fs.StringVar(&c.Name, "name", "", "document name (default: from the definition file)")
	fs.Var(&c.Description, "desc", "document description line (may be repeated)")
	fs.BoolVar(&c.Indent, "indent", false, "indent CZML output")
	fs.StringVar(&c.LogLevel, "loglevel", "info", "logging level: debug, info, warn, error")
	fs.StringVar(&c.LogDir, "logdir", "", "log file directory")
	fs.BoolVar(&c.Cache, "cache", false, "reuse previously compiled documents")
	fs.BoolVar(&c.Dump, "dump", false, "dump the loaded airspaces to stdout")
	fs.StringVar(&c.Serve, "serve", "", "after exporting, serve the documents over HTTP at this address (e.g., localhost:8080)")
	fs.BoolVar(&c.Open, "open", false, "open the served documents in a web browser")
}

// Validate checks the options for consistency with the given input files
// and fills in the output format if it wasn't given.
func (c *Config) Validate(inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("no airspace definition files specified")
	}
	if c.Output != "" && len(inputs) > 1 {
		return errors.New("-o may only be used with a single input file")
	}
	if c.Open && c.Serve == "" {
		return errors.New("-open requires -serve")
	}

	if c.Format == "" {
		if c.Output != "" && strings.EqualFold(filepath.Ext(util.TrimCompressedExt(c.Output)), ".kml") {
			c.Format = "kml"
		} else {
			c.Format = "czml"
		}
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format != "czml" && c.Format != "kml" {
		return fmt.Errorf("%q: unknown output format", c.Format)
	}
	return nil
}

// OutputPath returns the path of the file that the document compiled
// from input is written to.
func (c *Config) OutputPath(input string) string {
	if c.Output != "" {
		return c.Output
	}
	base := util.TrimCompressedExt(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + c.Format
}
