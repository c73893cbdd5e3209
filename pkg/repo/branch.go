package repo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsutil"
	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// CreateBranch creates a new branch pointing at the given target hash.
// It writes the hash to .gitlet/refs/heads/<name>. Returns
// ErrDuplicateBranch if the branch already exists.
func (r *Repo) CreateBranch(name string, target object.Hash) error {
	if err := validateBranchName(name); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	if r.BranchExists(name) {
		return fmt.Errorf("create branch %q: %w", name, ErrDuplicateBranch)
	}
	if err := r.UpdateRef(branchRef(name), target, "branch: created from "+target.Short(7)); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	return nil
}

// CreateBranchAtHead creates a branch pointing at the current commit.
func (r *Repo) CreateBranchAtHead(name string) error {
	head, err := r.ResolveRef("HEAD")
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return r.CreateBranch(name, head)
}

// DeleteBranch removes the branch ref file .gitlet/refs/heads/<name> and
// its reflog. The commits it pointed at are kept. Returns
// ErrCurrentBranchOp for the checked-out branch and ErrUnknownBranch for a
// missing one.
func (r *Repo) DeleteBranch(name string) error {
	if !r.BranchExists(name) {
		return fmt.Errorf("delete branch %q: %w", name, ErrUnknownBranch)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if current == name {
		return fmt.Errorf("delete branch %q: cannot remove the current branch: %w", name, ErrCurrentBranchOp)
	}

	refPath := filepath.Join(r.GitletDir, filepath.FromSlash(branchRef(name)))
	if err := fsutil.Remove(r.FS, refPath); err != nil {
		return fmt.Errorf("delete branch %q: %w", name, err)
	}
	if err := r.deleteReflog(branchRef(name)); err != nil {
		return fmt.Errorf("delete branch %q: %w", name, err)
	}

	r.log.Debug("deleted branch", zap.String("branch", name))
	return nil
}

// BranchExists reports whether refs/heads/<name> exists.
func (r *Repo) BranchExists(name string) bool {
	if validateBranchName(name) != nil {
		return false
	}
	return fsutil.IsFile(r.FS, filepath.Join(r.GitletDir, filepath.FromSlash(branchRef(name))))
}

// ListBranches reads .gitlet/refs/heads/ and returns the branch names sorted
// alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	names, err := fsutil.ListFiles(r.FS, filepath.Join(r.GitletDir, "refs", "heads"))
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	out := names[:0]
	for _, n := range names {
		if validateBranchName(n) == nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func validateBranchName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidBranchName)
	case strings.ContainsAny(name, "/\\ \t\n"):
		return fmt.Errorf("%w: %q contains a separator or whitespace", ErrInvalidBranchName, name)
	case strings.HasPrefix(name, ".") || strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidBranchName, name)
	case name == "HEAD":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidBranchName, name)
	}
	return nil
}
