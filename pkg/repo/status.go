package repo

import (
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ChangeKind describes how a working file differs from what is tracked or
// staged.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// ModifiedEntry is a file with changes that are not staged for commit.
type ModifiedEntry struct {
	Name string
	Kind ChangeKind
}

// StatusReport is a snapshot of the repository's branches, staging area
// and working tree. Every list is sorted.
type StatusReport struct {
	Branch    string // current branch
	Branches  []string
	Staged    []string
	Removed   []string
	Modified  []ModifiedEntry
	Untracked []string
}

// Status computes the status of the repository.
//
// A file is reported as not staged for commit when it is:
//   - tracked, changed in the working tree and not staged;
//   - staged, with different content in the working tree;
//   - staged, but deleted from the working tree;
//   - tracked, not staged for removal, and deleted from the working tree.
//
// A working file is untracked when it is not staged and is either not
// tracked or staged for removal. Only the top level of the working tree is
// scanned for untracked files, and names matched by .gitletignore are
// skipped.
func (r *Repo) Status() (*StatusReport, error) {
	st, err := r.LoadState()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	branches, err := r.ListBranches()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	report := &StatusReport{
		Branch:   st.Branch,
		Branches: branches,
		Staged:   st.Index.StagedNames(),
		Removed:  st.Index.RemovedNames(),
	}

	candidates := make(map[string]struct{}, len(st.Head.Tracked)+len(st.Index.Staged))
	for name := range st.Head.Tracked {
		candidates[name] = struct{}{}
	}
	for name := range st.Index.Staged {
		candidates[name] = struct{}{}
	}
	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		work, exists, err := r.hashWorkFile(name)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		if kind, changed := unstagedChange(st, name, work, exists); changed {
			report.Modified = append(report.Modified, ModifiedEntry{Name: name, Kind: kind})
		}
	}

	workFiles, err := r.listWorkFiles()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	ignore, err := r.NewIgnoreChecker()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	for _, name := range workFiles {
		if _, staged := st.Index.Staged[name]; staged {
			continue
		}
		if ignore.IsIgnored(name) {
			continue
		}
		_, tracked := st.Head.Tracked[name]
		if !tracked || st.Index.Removed[name] {
			report.Untracked = append(report.Untracked, name)
		}
	}
	return report, nil
}

func unstagedChange(st *State, name string, work object.Hash, exists bool) (ChangeKind, bool) {
	staged, isStaged := st.Index.Staged[name]
	tracked, isTracked := st.Head.Tracked[name]

	if isStaged {
		switch {
		case !exists:
			return ChangeDeleted, true
		case work != staged:
			return ChangeModified, true
		}
		return "", false
	}
	if !isTracked || st.Index.Removed[name] {
		return "", false
	}
	switch {
	case !exists:
		return ChangeDeleted, true
	case exists && work != tracked:
		return ChangeModified, true
	}
	return "", false
}
