// log/stack.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// maxFrames bounds how far up a record's call chain is followed; the
// loader and compiler are never more than a few calls deep.
const maxFrames = 8

// callstack is the chain of calls that led to a log record, innermost
// first. It is logged as a single string such as
// "load.go:240:aviation.build < load.go:101:aviation.LoadAirspaces".
type callstack []frame

type frame struct {
	file     string
	line     int
	function string
}

// callers returns the callstack of the caller of the Logger method that
// invoked it.
func callers() callstack {
	var pcs [maxFrames]uintptr
	// Skip runtime.Callers, callers, and the Logger method.
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	cs := make(callstack, 0, n)
	for {
		f, more := frames.Next()
		if f.Function == "" || strings.HasPrefix(f.Function, "runtime.") ||
			strings.HasPrefix(f.Function, "testing.") {
			break
		}
		fn := strings.TrimPrefix(f.Function, "github.com/mmp/airspace3d/")
		cs = append(cs, frame{
			file:     filepath.Base(f.File),
			line:     f.Line,
			function: strings.TrimPrefix(fn, "main."),
		})
		if !more || f.Function == "main.main" {
			break
		}
	}
	return cs
}

func (f frame) String() string {
	return f.file + ":" + strconv.Itoa(f.line) + ":" + f.function
}

func (cs callstack) String() string {
	s := make([]string, len(cs))
	for i, f := range cs {
		s[i] = f.String()
	}
	return strings.Join(s, " < ")
}

func (cs callstack) LogValue() slog.Value {
	return slog.StringValue(cs.String())
}
