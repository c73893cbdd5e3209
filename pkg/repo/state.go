package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// State is the durable repository state a command works against: the
// checked-out branch, its tip commit and the staging area. It is loaded
// once at the start of an operation and discarded at its end.
type State struct {
	Branch string
	Head   *object.CommitObj
	Index  *Staging
}

// LoadState resolves HEAD to its branch and commit and reads the staging
// area.
func (r *Repo) LoadState() (*State, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	headHash, err := r.ResolveRef(branchRef(branch))
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	head, err := r.ReadCommit(headHash)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return &State{Branch: branch, Head: head, Index: stg}, nil
}
