package repo

import "errors"

// Sentinel errors, one per failure condition a command can report. Callers
// test for them with errors.Is; the wrapping message carries the details.
var (
	ErrNotInitialized     = errors.New("not in an initialized gitlet directory")
	ErrAlreadyInitialized = errors.New("a gitlet version-control system already exists in the current directory")
	ErrFileNotFound       = errors.New("file does not exist")
	ErrNothingStaged      = errors.New("no changes added to the commit")
	ErrEmptyMessage       = errors.New("please enter a commit message")
	ErrNothingToRemove    = errors.New("no reason to remove the file")
	ErrUnknownObject      = errors.New("no commit with that id exists")
	ErrAmbiguousPrefix    = errors.New("commit id prefix is ambiguous")
	ErrUnknownBranch      = errors.New("no such branch exists")
	ErrDuplicateBranch    = errors.New("a branch with that name already exists")
	ErrCurrentBranchOp    = errors.New("operation not allowed on the current branch")
	ErrUntrackedOverwrite = errors.New("there is an untracked file in the way; delete it, or add and commit it first")
	ErrUncommittedChanges = errors.New("you have uncommitted changes")
	ErrSelfMerge          = errors.New("cannot merge a branch with itself")
	ErrNoMatchingCommit   = errors.New("found no commit with that message")
	ErrNoCommonAncestor   = errors.New("commits share no common ancestor")
	ErrInvalidBranchName  = errors.New("invalid branch name")
)
