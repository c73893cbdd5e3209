package repo

import (
	"errors"
	"fmt"
	"iter"

	"github.com/odvcencio/gitlet/pkg/object"
)

// maxTraversalSteps bounds every walk over the commit graph so a corrupt
// store with a parent cycle cannot hang a command.
const maxTraversalSteps = 1_000_000

// ReadCommit returns the commit with full hash h, memoized for the lifetime
// of r. A missing commit is reported as ErrUnknownObject.
func (r *Repo) ReadCommit(h object.Hash) (*object.CommitObj, error) {
	cache := r.getCommitCache()
	if c, ok := cache.load(h); ok {
		return c, nil
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("read commit %s: %w: %w", h.Short(7), ErrUnknownObject, err)
		}
		return nil, fmt.Errorf("read commit %s: %w", h.Short(7), err)
	}
	cache.store(c)
	return c, nil
}

// ResolveCommit expands an abbreviated commit hash and reads the commit.
// Returns ErrUnknownObject when nothing matches and ErrAmbiguousPrefix when
// more than one commit does.
func (r *Repo) ResolveCommit(prefix string) (*object.CommitObj, error) {
	h, err := r.Store.ResolvePrefix(object.TypeCommit, prefix)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrAmbiguous):
			return nil, fmt.Errorf("%w: %w", ErrAmbiguousPrefix, err)
		case errors.Is(err, object.ErrNotFound):
			return nil, fmt.Errorf("%w: %w", ErrUnknownObject, err)
		default:
			return nil, err
		}
	}
	return r.ReadCommit(h)
}

// Ancestors yields start and then each first parent in turn, ending at the
// root commit. Iteration stops after the first error.
func (r *Repo) Ancestors(start object.Hash) iter.Seq2[*object.CommitObj, error] {
	return func(yield func(*object.CommitObj, error) bool) {
		current := start
		for steps := 0; current != ""; steps++ {
			if steps >= maxTraversalSteps {
				yield(nil, fmt.Errorf("walk history from %s: exceeded %d steps", start.Short(7), maxTraversalSteps))
				return
			}
			c, err := r.ReadCommit(current)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(c, nil) {
				return
			}
			current = c.FirstParent()
		}
	}
}

// Log returns up to limit commits from start along first parents, newest
// first. A limit <= 0 means no limit.
func (r *Repo) Log(start object.Hash, limit int) ([]*object.CommitObj, error) {
	var commits []*object.CommitObj
	for c, err := range r.Ancestors(start) {
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		commits = append(commits, c)
		if limit > 0 && len(commits) >= limit {
			break
		}
	}
	return commits, nil
}

// AllCommits returns every commit in the store, in hash order.
func (r *Repo) AllCommits() ([]*object.CommitObj, error) {
	hashes, err := r.Store.List(object.TypeCommit)
	if err != nil {
		return nil, fmt.Errorf("global log: %w", err)
	}
	commits := make([]*object.CommitObj, 0, len(hashes))
	for _, h := range hashes {
		c, err := r.ReadCommit(h)
		if err != nil {
			return nil, fmt.Errorf("global log: %w", err)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// Find returns the hashes of every commit whose message equals message
// exactly, in hash order. Returns ErrNoMatchingCommit if there are none.
func (r *Repo) Find(message string) ([]object.Hash, error) {
	commits, err := r.AllCommits()
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	var out []object.Hash
	for _, c := range commits {
		if c.Message == message {
			out = append(out, c.Hash)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("find %q: %w", message, ErrNoMatchingCommit)
	}
	return out, nil
}
