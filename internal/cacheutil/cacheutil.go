// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/apex/log"

	"github.com/staranto/f1ctlgo/internal/fault"
)

// ErrNotFound is wrapped by Read when nothing was ever written for a key.
var ErrNotFound = fs.ErrNotExist

// Key identifies a cached artifact. Year is optional and, when set, becomes a
// subdirectory of the base cache directory.
type Key struct {
	Year     string
	Filename string
}

// String returns the identity of the key, Year/Filename.
func (k Key) String() string {
	if k.Year == "" {
		return k.Filename
	}
	return path.Join(k.Year, k.Filename)
}

// Entry represents a cached artifact on disk.
type Entry struct {
	Key     Key
	Path    string
	Size    int64
	ModTime time.Time
}

// Store maps keys to raw payloads beneath a base directory. Entries are
// create-once: nothing here expires or deletes them.
type Store struct {
	Base string
}

// NewStore returns a Store rooted at base.
func NewStore(base string) *Store {
	return &Store{Base: base}
}

// Dir resolves the base cache directory.
// Precedence:
//  1. F1CTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/f1ctl
//
// Returns ("", false) if a base cannot be resolved.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("F1CTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "f1ctl"), true
	}
	return "", false
}

// EnsureBaseDir creates the base cache directory. Returns the path, whether it
// is usable, and an error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	base, ok := Dir()
	if !ok {
		return "", false, errors.New("unable to determine a cache directory; set F1CTL_CACHE_DIR")
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fault.New(fault.KindIO, "create cache directory", base, err)
	}
	return base, true, nil
}

// ResolvePath joins the base directory, the optional year and the filename.
// It never touches the filesystem.
func (s *Store) ResolvePath(key Key) string {
	return filepath.Join(s.Base, key.Year, key.Filename)
}

// Exists reports whether a regular file is present for key.
func (s *Store) Exists(key Key) bool {
	info, err := os.Stat(s.ResolvePath(key))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the bytes previously written for key, exactly as written.
func (s *Store) Read(key Key) ([]byte, error) {
	p := s.ResolvePath(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fault.New(fault.KindIO, "read cache", p, err)
	}
	log.Debugf("cache read: %s (%d bytes)", p, len(b))
	return b, nil
}

// Write stores data for key, creating directories as needed. An existing
// entry is overwritten.
func (s *Store) Write(key Key, data []byte) error {
	p := s.ResolvePath(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fault.New(fault.KindIO, "create cache directory", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fault.New(fault.KindIO, "write cache", p, err)
	}
	log.Debugf("cache write: %s (%d bytes)", p, len(data))
	return nil
}

// Entries walks the store and returns every cached file, sorted by key.
// A missing base directory yields no entries.
func (s *Store) Entries() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(s.Base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == s.Base {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.Base, p)
		if err != nil {
			return err
		}
		dir, file := filepath.Split(rel)
		entries = append(entries, Entry{
			Key:     Key{Year: filepath.Clean(dir), Filename: file},
			Path:    p,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fault.New(fault.KindIO, "list cache", s.Base, err)
	}

	for i := range entries {
		if entries[i].Key.Year == "." {
			entries[i].Key.Year = ""
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.String() < entries[j].Key.String()
	})

	return entries, nil
}

func (s *Store) String() string {
	return fmt.Sprintf("Store(%s)", s.Base)
}
