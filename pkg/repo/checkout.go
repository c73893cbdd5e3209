package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// CheckoutBranch switches to branch name: the working tree is replaced by
// the branch tip's files, the staging area is cleared and HEAD moves.
//
// Fails with ErrUnknownBranch, ErrCurrentBranchOp when name is already
// checked out, or ErrUntrackedOverwrite when an untracked working file
// would be replaced.
func (r *Repo) CheckoutBranch(name string) error {
	targetHash, err := r.ResolveRef(branchRef(name))
	if err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}
	st, err := r.LoadState()
	if err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}
	if name == st.Branch {
		return fmt.Errorf("checkout %q: %w", name, ErrCurrentBranchOp)
	}
	target, err := r.ReadCommit(targetHash)
	if err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}
	if err := r.checkUntracked(st.Head, target); err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}
	if err := r.restoreCommit(st.Head, target); err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}
	if err := r.setHead(name); err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}

	r.log.Debug("checked out branch",
		zap.String("from", st.Branch),
		zap.String("to", name),
		zap.String("commit", string(target.Hash)))
	return nil
}

// CheckoutFile restores file from the current commit into the working
// tree. The staging area is not touched.
func (r *Repo) CheckoutFile(file string) error {
	st, err := r.LoadState()
	if err != nil {
		return fmt.Errorf("checkout -- %s: %w", file, err)
	}
	if err := r.checkoutFileFrom(st.Head, file); err != nil {
		return fmt.Errorf("checkout -- %s: %w", file, err)
	}
	return nil
}

// CheckoutFileAt restores file from the commit named by prefix into the
// working tree. The staging area is not touched.
func (r *Repo) CheckoutFileAt(prefix, file string) error {
	c, err := r.ResolveCommit(prefix)
	if err != nil {
		return fmt.Errorf("checkout %s -- %s: %w", prefix, file, err)
	}
	if err := r.checkoutFileFrom(c, file); err != nil {
		return fmt.Errorf("checkout %s -- %s: %w", prefix, file, err)
	}
	return nil
}

func (r *Repo) checkoutFileFrom(c *object.CommitObj, file string) error {
	name, err := r.workName(file)
	if err != nil {
		return err
	}
	h, ok := c.Tracked[name]
	if !ok {
		return fmt.Errorf("%q not in commit %s: %w", name, c.Hash.Short(7), ErrFileNotFound)
	}
	return r.writeBlobToWork(name, h)
}

// checkUntracked returns ErrUntrackedOverwrite if a working file is not
// tracked by head but is tracked by target, so replacing the working tree
// would destroy it.
func (r *Repo) checkUntracked(head, target *object.CommitObj) error {
	for _, name := range target.TrackedNames() {
		if _, tracked := head.Tracked[name]; tracked {
			continue
		}
		if r.workFileExists(name) {
			return fmt.Errorf("%q: %w", name, ErrUntrackedOverwrite)
		}
	}
	return nil
}

// restoreCommit replaces the working tree's tracked files: every file of
// target is written, files tracked by head but absent from target are
// deleted, and the staging area is cleared. Refs are not moved.
func (r *Repo) restoreCommit(head, target *object.CommitObj) error {
	for _, name := range target.TrackedNames() {
		if err := r.writeBlobToWork(name, target.Tracked[name]); err != nil {
			return err
		}
	}
	for _, name := range head.TrackedNames() {
		if _, keep := target.Tracked[name]; keep {
			continue
		}
		if err := r.removeWorkFile(name); err != nil {
			return err
		}
	}
	return r.WriteStaging(NewStaging())
}
