package main

import (
	"errors"

	"github.com/odvcencio/gitlet/pkg/repo"
)

// diagnostics maps repository error kinds to the one-line message printed
// before exiting. The first matching kind wins.
var diagnostics = []struct {
	kind error
	msg  string
}{
	{repo.ErrNotInitialized, "Not in an initialized Gitlet directory."},
	{repo.ErrAlreadyInitialized, "A Gitlet version-control system already exists in the current directory."},
	{repo.ErrFileNotFound, "File does not exist."},
	{repo.ErrNothingStaged, "No changes added to the commit."},
	{repo.ErrEmptyMessage, "Please enter a commit message."},
	{repo.ErrNothingToRemove, "No reason to remove the file."},
	{repo.ErrAmbiguousPrefix, "Commit id prefix is ambiguous."},
	{repo.ErrUnknownObject, "No commit with that id exists."},
	{repo.ErrUnknownBranch, "No such branch exists."},
	{repo.ErrDuplicateBranch, "A branch with that name already exists."},
	{repo.ErrCurrentBranchOp, "Operation not allowed on the current branch."},
	{repo.ErrUntrackedOverwrite, "There is an untracked file in the way; delete it, or add and commit it first."},
	{repo.ErrUncommittedChanges, "You have uncommitted changes."},
	{repo.ErrSelfMerge, "Cannot merge a branch with itself."},
	{repo.ErrNoMatchingCommit, "Found no commit with that message."},
	{repo.ErrNoCommonAncestor, "Branches share no common ancestor."},
	{repo.ErrInvalidBranchName, "Invalid branch name."},
}

// commandError replaces the generic diagnostic for err with msg.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// withMessage gives err a command-specific diagnostic when it is of kind.
func withMessage(err, kind error, msg string) error {
	if err != nil && errors.Is(err, kind) {
		return &commandError{msg: msg, err: err}
	}
	return err
}

// diagnostic returns the single line printed for err.
func diagnostic(err error) string {
	var ce *commandError
	if errors.As(err, &ce) {
		return ce.msg
	}
	for _, d := range diagnostics {
		if errors.Is(err, d.kind) {
			return d.msg
		}
	}
	return err.Error()
}
