package object

import "sort"

// Hash is a 64-character hex-encoded BLAKE2b-256 digest.
type Hash string

// ObjectType identifies the namespace an object is stored in.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeCommit ObjectType = "commit"
)

// HashLen is the length of a full hex digest.
const HashLen = 64

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// CommitObj is an immutable snapshot of the tracked file set.
//
// Hash is an in-memory annotation set when the commit is read or written;
// it is never part of the serialized form.
type CommitObj struct {
	Hash      Hash
	Message   string
	Timestamp int64 // unix seconds; 0 for the root commit
	Parents   []Hash
	Tracked   map[string]Hash // file name -> blob hash
}

// TrackedNames returns the tracked file names in sorted order.
func (c *CommitObj) TrackedNames() []string {
	names := make([]string, 0, len(c.Tracked))
	for name := range c.Tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CopyTracked returns a fresh copy of the tracked map, safe to mutate.
func (c *CommitObj) CopyTracked() map[string]Hash {
	out := make(map[string]Hash, len(c.Tracked))
	for name, h := range c.Tracked {
		out[name] = h
	}
	return out
}

// FirstParent returns the first parent hash, or "" for the root commit.
func (c *CommitObj) FirstParent() Hash {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// IsMerge reports whether the commit has two parents.
func (c *CommitObj) IsMerge() bool {
	return len(c.Parents) > 1
}
