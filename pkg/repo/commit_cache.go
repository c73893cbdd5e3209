package repo

import (
	"github.com/odvcencio/gitlet/pkg/object"
	gocache "github.com/patrickmn/go-cache"
)

// commitCache memoizes decoded commits for the lifetime of a Repo. Commits
// are immutable once written, so entries never expire and no janitor runs.
type commitCache struct {
	commits *gocache.Cache
}

func newCommitCache() *commitCache {
	return &commitCache{
		commits: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *commitCache) load(h object.Hash) (*object.CommitObj, bool) {
	v, ok := c.commits.Get(string(h))
	if !ok {
		return nil, false
	}
	commit, ok := v.(*object.CommitObj)
	return commit, ok
}

func (c *commitCache) store(commit *object.CommitObj) {
	if commit == nil || commit.Hash == "" {
		return
	}
	// Add keeps the first decoded instance so callers share one pointer.
	_ = c.commits.Add(string(commit.Hash), commit, gocache.NoExpiration)
}

func (c *commitCache) size() int {
	return c.commits.ItemCount()
}
