package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// Reset checks out every file of the commit named by prefix, removes files
// that commit does not track, clears the staging area and moves the current
// branch to it.
func (r *Repo) Reset(prefix string) (*object.CommitObj, error) {
	target, err := r.ResolveCommit(prefix)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	st, err := r.LoadState()
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	if err := r.checkUntracked(st.Head, target); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	if err := r.restoreCommit(st.Head, target); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	if err := r.UpdateRef(branchRef(st.Branch), target.Hash, "reset: moving to "+target.Hash.Short(7)); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}

	r.log.Debug("reset branch",
		zap.String("branch", st.Branch),
		zap.String("from", string(st.Head.Hash)),
		zap.String("to", string(target.Hash)))
	return target, nil
}
