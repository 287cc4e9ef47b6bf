// util/outputs.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mmp/airspace3d/log"
)

// OutputSet stages a group of output files so that they appear together
// or not at all. Each file is written to a temporary file next to its
// destination; Commit renames them all into place, and if any rename
// fails, the ones already made are undone and any files they replaced
// are restored.
type OutputSet struct {
	mu     sync.Mutex
	staged []stagedOutput
	lg     *log.Logger
}

type stagedOutput struct {
	tmp, path string
}

type committedOutput struct {
	path, backup string // backup is empty if path didn't exist
}

func MakeOutputSet(lg *log.Logger) *OutputSet {
	return &OutputSet{lg: lg}
}

// Create returns a temporary file that will become path when the set is
// committed. The caller must close it before calling Commit.
func (s *OutputSet) Create(path string) (*os.File, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.staged = append(s.staged, stagedOutput{tmp: f.Name(), path: path})
	s.mu.Unlock()
	return f, nil
}

// Commit moves every staged file into place, in the order they were
// created. On error, the destinations are left as they were before.
func (s *OutputSet) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var done []committedOutput
	for _, st := range s.staged {
		c, err := s.commit(st)
		if err != nil {
			s.rollback(done)
			s.removeStaged()
			return err
		}
		done = append(done, c)
	}

	for _, c := range done {
		if c.backup != "" {
			if err := os.Remove(c.backup); err != nil {
				s.lg.Warnf("%s: %v", c.backup, err)
			}
		}
	}
	s.staged = nil
	return nil
}

func (s *OutputSet) commit(st stagedOutput) (committedOutput, error) {
	c := committedOutput{path: st.path}

	fi, err := os.Stat(st.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, err
	} else if err == nil {
		if !fi.Mode().IsRegular() {
			return c, fmt.Errorf("%s: not a regular file", st.path)
		}
		// Move the existing file aside so that it can be restored.
		bf, err := os.CreateTemp(filepath.Dir(st.path), "."+filepath.Base(st.path)+".bak.*")
		if err != nil {
			return c, err
		}
		bf.Close()
		if err := os.Rename(st.path, bf.Name()); err != nil {
			os.Remove(bf.Name())
			return c, err
		}
		c.backup = bf.Name()
	}

	if err := os.Rename(st.tmp, st.path); err != nil {
		s.rollback([]committedOutput{c})
		return c, err
	}
	return c, nil
}

// rollback undoes commits, most recent first.
func (s *OutputSet) rollback(done []committedOutput) {
	for i := len(done) - 1; i >= 0; i-- {
		c := done[i]
		var err error
		if c.backup != "" {
			err = os.Rename(c.backup, c.path)
		} else {
			err = os.Remove(c.path)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.lg.Errorf("%s: unable to restore: %v", c.path, err)
		}
	}
}

// Abort discards every staged file; nothing at the destinations changes.
func (s *OutputSet) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeStaged()
}

func (s *OutputSet) removeStaged() {
	for _, st := range s.staged {
		if err := os.Remove(st.tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.lg.Warnf("%s: %v", st.tmp, err)
		}
	}
	s.staged = nil
}
