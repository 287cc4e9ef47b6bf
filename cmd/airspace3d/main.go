// cmd/airspace3d/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// airspace3d compiles airspace definition files into CZML or KML
// documents for 3D viewers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mmp/airspace3d/log"
)

func main() {
	var cfg Config
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: airspace3d [flags] definitions.{yaml,json}...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize the logging system first and foremost.
	lg := log.New(cfg.LogLevel, cfg.LogDir)
	defer lg.CatchAndReportCrash()

	if err := cfg.Validate(flag.Args()); err != nil {
		errorExit(lg, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	docs, err := exportAll(ctx, &cfg, flag.Args(), lg)
	if err != nil {
		errorExit(lg, err)
	}
	for _, doc := range docs {
		fmt.Printf("%s: wrote %s\n", doc.Input, doc.Output)
	}

	if cfg.Serve != "" {
		if err := serve(ctx, &cfg, docs, lg); err != nil {
			errorExit(lg, err)
		}
	}
}

func errorExit(lg *log.Logger, err error) {
	lg.Errorf("export failed: %v", err)
	fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
	os.Exit(1)
}
