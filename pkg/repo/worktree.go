package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/fsutil"
	"github.com/odvcencio/gitlet/pkg/object"
)

// workPath maps a tracked name to its location in the working tree.
func (r *Repo) workPath(name string) string {
	return filepath.Join(r.RootDir, filepath.FromSlash(name))
}

func (r *Repo) readWorkFile(name string) ([]byte, error) {
	data, err := fsutil.ReadFile(r.FS, r.workPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *Repo) writeWorkFile(name string, data []byte) error {
	return fsutil.WriteFile(r.FS, r.workPath(name), data, 0o644)
}

func (r *Repo) removeWorkFile(name string) error {
	return fsutil.Remove(r.FS, r.workPath(name))
}

func (r *Repo) workFileExists(name string) bool {
	return fsutil.IsFile(r.FS, r.workPath(name))
}

// listWorkFiles returns the plain files at the top level of the working
// tree, sorted. Subdirectories, including .gitlet/, are not descended into.
func (r *Repo) listWorkFiles() ([]string, error) {
	names, err := fsutil.ListFiles(r.FS, r.RootDir)
	if err != nil {
		return nil, fmt.Errorf("list working tree: %w", err)
	}
	return names, nil
}

// hashWorkFile returns the blob hash the working copy of name would have,
// and whether the file exists.
func (r *Repo) hashWorkFile(name string) (object.Hash, bool, error) {
	data, err := r.readWorkFile(name)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return object.HashBytes(data), true, nil
}

// writeBlobToWork copies the blob h into the working tree as name.
func (r *Repo) writeBlobToWork(name string, h object.Hash) error {
	blob, err := r.Store.ReadBlob(h)
	if err != nil {
		return fmt.Errorf("read blob %s for %q: %w", h.Short(7), name, err)
	}
	if err := r.writeWorkFile(name, blob.Data); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}
