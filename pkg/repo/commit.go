package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// Commit snapshots the current commit's tracked files plus the staging area
// into a new commit on the current branch.
//
//  1. Reject an empty message, then an empty staging area.
//  2. Start from the head commit's tracked map, apply staged additions and
//     drop staged removals.
//  3. Write the commit, advance the branch and clear the staging area.
func (r *Repo) Commit(message string) (*object.CommitObj, error) {
	if message == "" {
		return nil, fmt.Errorf("commit: %w", ErrEmptyMessage)
	}

	st, err := r.LoadState()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if st.Index.IsEmpty() {
		return nil, fmt.Errorf("commit: %w", ErrNothingStaged)
	}

	c, err := r.commitState(st, message, []object.Hash{st.Head.Hash}, "commit: "+firstLine(message))
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

// commitState writes a commit whose snapshot is st.Head's tracked files
// with st.Index applied, advances st.Branch to it and clears the staging
// area. st is updated to reflect the new head.
func (r *Repo) commitState(st *State, message string, parents []object.Hash, reason string) (*object.CommitObj, error) {
	c := &object.CommitObj{
		Message:   message,
		Timestamp: r.now().Unix(),
		Parents:   parents,
		Tracked:   st.Index.Apply(st.Head),
	}
	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return nil, fmt.Errorf("write commit: %w", err)
	}
	r.getCommitCache().store(c)

	if err := r.UpdateRef(branchRef(st.Branch), h, reason); err != nil {
		return nil, err
	}
	st.Head = c
	st.Index = NewStaging()
	if err := r.WriteStaging(st.Index); err != nil {
		return nil, err
	}

	r.log.Debug("created commit",
		zap.String("branch", st.Branch),
		zap.String("commit", string(h)),
		zap.Int("parents", len(parents)),
		zap.Int("files", len(c.Tracked)))
	return c, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
