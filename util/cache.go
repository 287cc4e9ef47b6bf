// util/cache.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mmp/airspace3d/log"

	"github.com/klauspost/compress/flate"
	"github.com/vmihailenco/msgpack/v5"
)

const cacheExt = ".msgpack.z"

// Cache is an on-disk store of values of type T in a named directory
// under the user's cache directory. Entries are msgpack-encoded and
// flate-compressed; keys are expected to be hashes of everything that
// determines the value (see HashStrings). A nil *Cache never hits and
// discards stores.
type Cache[T any] struct {
	dir      string
	maxBytes int64
	lg       *log.Logger
}

type cacheEntry[T any] struct {
	Key   string
	Value T
}

// OpenCache returns the cache with the given name, creating its directory
// if necessary. After each store, the least recently used entries are
// removed until the cache holds no more than maxBytes; maxBytes <= 0
// leaves it unbounded.
func OpenCache[T any](name string, maxBytes int64, lg *log.Logger) (*Cache[T], error) {
	cd, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(cd, "airspace3d", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache[T]{dir: dir, maxBytes: maxBytes, lg: lg}, nil
}

func (c *Cache[T]) path(key string) string {
	return filepath.Join(c.dir, key+cacheExt)
}

// Get returns the value stored under key. Unreadable entries, and entries
// recorded under a different key, are misses. A hit marks the entry as
// recently used.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	path := c.path(key)
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.lg.Warnf("%s: %v", path, err)
		}
		return zero, false
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	var e cacheEntry[T]
	if err := msgpack.NewDecoder(fr).Decode(&e); err != nil || e.Key != key {
		c.lg.Debugf("%s: discarding cache entry: %v", path, err)
		os.Remove(path)
		return zero, false
	}

	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		c.lg.Debugf("%s: %v", path, err)
	}
	return e.Value, true
}

// Put stores v under key. The entry is written to a temporary file and
// renamed into place, so concurrent readers never see a partial entry.
func (c *Cache[T]) Put(key string, v T) error {
	if c == nil {
		return nil
	}

	f, err := os.CreateTemp(c.dir, ".put-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return err
	}

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return fail(err)
	}
	if err := msgpack.NewEncoder(fw).Encode(cacheEntry[T]{Key: key, Value: v}); err != nil {
		return fail(err)
	}
	if err := fw.Close(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		os.Remove(tmp)
		return err
	}

	if c.maxBytes > 0 {
		return c.Cull()
	}
	return nil
}

// Cull removes entries, least recently used first, until the cache holds
// no more than its maximum size.
func (c *Cache[T]) Cull() error {
	if c == nil {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	type entryInfo struct {
		path    string
		size    int64
		modTime time.Time
	}
	var infos []entryInfo
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), cacheExt) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue // removed concurrently
		}
		infos = append(infos, entryInfo{
			path:    filepath.Join(c.dir, e.Name()),
			size:    fi.Size(),
			modTime: fi.ModTime(),
		})
		total += fi.Size()
	}

	slices.SortFunc(infos, func(a, b entryInfo) int { return a.modTime.Compare(b.modTime) })

	for len(infos) > 0 && total > max(c.maxBytes, 0) {
		if err := os.Remove(infos[0].path); err == nil {
			total -= infos[0].size
			c.lg.Debugf("%s: culled from cache", infos[0].path)
		}
		infos = infos[1:]
	}
	return nil
}
