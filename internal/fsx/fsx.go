// Package fsx is the minimal filesystem capability used for existence and
// size checks. It works over io/fs so tests can substitute an in-memory
// fstest.MapFS for the working directory.
package fsx

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OS returns the real filesystem rooted at dir.
func OS(dir string) fs.FS {
	if dir == "" {
		dir = "."
	}
	return os.DirFS(dir)
}

// Exists reports whether name exists in fsys and is a regular file.
func Exists(fsys fs.FS, name string) bool {
	fi, err := fs.Stat(fsys, name)
	return err == nil && fi.Mode().IsRegular()
}

// Size returns the byte size of the regular file name.
func Size(fsys fs.FS, name string) (int64, error) {
	fi, err := fs.Stat(fsys, name)
	if err != nil {
		return 0, err
	}
	if !fi.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: not a regular file", name)
	}
	return fi.Size(), nil
}

// Rel converts an OS path relative to dir into an fs.FS name. Absolute
// paths are made relative to dir first. Paths that escape dir are rejected.
func Rel(dir, path string) (string, error) {
	if dir == "" {
		dir = "."
	}
	p := path
	if filepath.IsAbs(path) {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		if p, err = filepath.Rel(absDir, path); err != nil {
			return "", err
		}
	}
	name := filepath.ToSlash(filepath.Clean(p))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%s: outside working directory %s", path, dir)
	}
	return name, nil
}
