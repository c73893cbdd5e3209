package repo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsutil"
	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// Staging holds the pending changes for the next commit: files staged for
// addition (name -> blob hash) and files staged for removal. A name is
// never in both sets.
type Staging struct {
	Staged  map[string]object.Hash `json:"staged"`
	Removed map[string]bool        `json:"removed"`
}

// NewStaging returns an empty staging area.
func NewStaging() *Staging {
	return &Staging{
		Staged:  make(map[string]object.Hash),
		Removed: make(map[string]bool),
	}
}

// IsEmpty reports whether nothing is staged for addition or removal.
func (s *Staging) IsEmpty() bool {
	return len(s.Staged) == 0 && len(s.Removed) == 0
}

// Stage records name for addition with blob h and cancels a pending removal.
func (s *Staging) Stage(name string, h object.Hash) {
	s.Staged[name] = h
	delete(s.Removed, name)
}

// MarkRemoved records name for removal and drops any staged addition.
func (s *Staging) MarkRemoved(name string) {
	delete(s.Staged, name)
	s.Removed[name] = true
}

// StagedNames returns the names staged for addition, sorted.
func (s *Staging) StagedNames() []string {
	names := make([]string, 0, len(s.Staged))
	for name := range s.Staged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemovedNames returns the names staged for removal, sorted.
func (s *Staging) RemovedNames() []string {
	names := make([]string, 0, len(s.Removed))
	for name := range s.Removed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns the tracked map of base with staged additions applied and
// staged removals dropped. base is not modified.
func (s *Staging) Apply(base *object.CommitObj) map[string]object.Hash {
	out := base.CopyTracked()
	for name, h := range s.Staged {
		out[name] = h
	}
	for name := range s.Removed {
		delete(out, name)
	}
	return out
}

// indexPath returns the filesystem path to the staging index file.
func (r *Repo) indexPath() string {
	return filepath.Join(r.GitletDir, "index")
}

// ReadStaging loads the staging area from .gitlet/index. If the file does
// not exist, an empty Staging is returned (no error).
func (r *Repo) ReadStaging() (*Staging, error) {
	data, err := fsutil.ReadFile(r.FS, r.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewStaging(), nil
		}
		return nil, fmt.Errorf("read staging: %w", err)
	}

	stg := NewStaging()
	if err := json.Unmarshal(data, stg); err != nil {
		return nil, fmt.Errorf("read staging: unmarshal: %w", err)
	}
	if stg.Staged == nil {
		stg.Staged = make(map[string]object.Hash)
	}
	if stg.Removed == nil {
		stg.Removed = make(map[string]bool)
	}
	return stg, nil
}

// WriteStaging atomically writes the staging area to .gitlet/index.
func (r *Repo) WriteStaging(s *Staging) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("write staging: marshal: %w", err)
	}
	if err := fsutil.WriteFile(r.FS, r.indexPath(), data, 0o644); err != nil {
		return fmt.Errorf("write staging: %w", err)
	}
	return nil
}

// Add stages the given files. For each name:
//  1. Fail with ErrFileNotFound if the working file does not exist.
//  2. If the current commit tracks identical content, drop any staged entry
//     (re-adding an unchanged file unstages it).
//  3. Otherwise write the blob and stage it.
//  4. Cancel any pending removal.
//
// The staging area is written once, after every name succeeded.
func (r *Repo) Add(names ...string) error {
	st, err := r.LoadState()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	for _, raw := range names {
		name, err := r.workName(raw)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		content, err := r.readWorkFile(name)
		if err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
		blobHash := object.HashBytes(content)

		if tracked, ok := st.Head.Tracked[name]; ok && tracked == blobHash {
			delete(st.Index.Staged, name)
			r.log.Debug("unstaged unchanged file", zap.String("name", name))
		} else if st.Index.Staged[name] != blobHash {
			if _, err := r.Store.WriteBlob(&object.Blob{Data: content}); err != nil {
				return fmt.Errorf("add %q: write blob: %w", name, err)
			}
			st.Index.Staged[name] = blobHash
			r.log.Debug("staged file", zap.String("name", name), zap.String("blob", string(blobHash)))
		}
		delete(st.Index.Removed, name)
	}

	if err := r.WriteStaging(st.Index); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// Remove unstages the given files and, for files tracked by the current
// commit, stages their removal and deletes them from the working tree.
// Returns ErrNothingToRemove for a name that is neither staged nor tracked.
func (r *Repo) Remove(names ...string) error {
	st, err := r.LoadState()
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}

	for _, raw := range names {
		name, err := r.workName(raw)
		if err != nil {
			return fmt.Errorf("rm: %w", err)
		}
		_, staged := st.Index.Staged[name]
		_, tracked := st.Head.Tracked[name]
		if !staged && !tracked {
			return fmt.Errorf("rm %q: %w", name, ErrNothingToRemove)
		}

		delete(st.Index.Staged, name)
		if tracked {
			st.Index.Removed[name] = true
			if err := r.removeWorkFile(name); err != nil {
				return fmt.Errorf("rm %q: %w", name, err)
			}
		}
		r.log.Debug("removed file", zap.String("name", name), zap.Bool("tracked", tracked))
	}

	if err := r.WriteStaging(st.Index); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	return nil
}

// workName converts a path (absolute, or relative to the working root) into
// a slash-separated name relative to the working root.
func (r *Repo) workName(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty file name: %w", ErrFileNotFound)
	}
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, ErrFileNotFound)
		}
		p = rel
	}
	name := filepath.ToSlash(filepath.Clean(p))
	if name == "." || name == ".." || strings.HasPrefix(name, "../") ||
		name == DirName || strings.HasPrefix(name, DirName+"/") || strings.Contains(name, "\n") {
		return "", fmt.Errorf("%q is outside the working tree: %w", p, ErrFileNotFound)
	}
	return name, nil
}
