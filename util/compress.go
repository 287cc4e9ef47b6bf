// util/compress.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CompressedWriter returns a writer for output that will end up at the
// given path: if it has a .zst extension, what is written is zstd
// compressed. The returned writer must be closed to flush it; closing it
// does not close w.
func CompressedWriter(w io.Writer, path string) (io.WriteCloser, error) {
	if filepath.Ext(path) != ".zst" {
		return nopWriteCloser{w}, nil
	}
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	return zw, nil
}
