// Package fsutil provides the small set of file primitives the repository
// layer is written against: read, atomic write, list, exists and remove.
// Every helper takes an afero.Fs so callers can run against the OS or an
// in-memory file system.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// ReadFile returns the full contents of path.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

// WriteFile atomically replaces path with data. Parent directories are
// created as needed. Data is written to a temp file in the same directory
// and then renamed into place.
func WriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write %s: mkdir: %w", path, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: tmpfile: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		return multierr.Combine(
			fmt.Errorf("write %s: %w", path, err),
			tmp.Close(),
			fs.Remove(tmpName),
		)
	}
	if err := tmp.Close(); err != nil {
		return multierr.Append(fmt.Errorf("write %s: close: %w", path, err), fs.Remove(tmpName))
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		return multierr.Append(fmt.Errorf("write %s: chmod: %w", path, err), fs.Remove(tmpName))
	}
	if err := fs.Rename(tmpName, path); err != nil {
		return multierr.Append(fmt.Errorf("write %s: rename: %w", path, err), fs.Remove(tmpName))
	}
	return nil
}

// ListFiles returns the sorted names of the plain files directly inside dir.
// A missing dir yields an empty list.
func ListFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !e.Mode().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListDirs returns the sorted names of the directories directly inside dir.
func ListDirs(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether path exists.
func Exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}

// IsFile reports whether path exists and is a regular file.
func IsFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes path. Removing a missing file is not an error.
func Remove(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
