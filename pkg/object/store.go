package object

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsutil"
	"github.com/spf13/afero"
)

// Store is a content-addressed object store. Commits and blobs live in
// separate namespaces:
//
//	objects/commits/ab/cdef0123...   (2-character fan-out)
//	objects/blobs/abcdef0123...      (flat)
//
// Objects are written once and never deleted.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectories are created lazily on first write.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

func (s *Store) namespaceDir(objType ObjectType) string {
	switch objType {
	case TypeCommit:
		return filepath.Join(s.root, "objects", "commits")
	default:
		return filepath.Join(s.root, "objects", "blobs")
	}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(objType ObjectType, h Hash) string {
	if objType == TypeCommit && len(h) > 2 {
		return filepath.Join(s.namespaceDir(objType), string(h[:2]), string(h[2:]))
	}
	return filepath.Join(s.namespaceDir(objType), string(h))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(objType ObjectType, h Hash) bool {
	if h == "" {
		return false
	}
	return fsutil.IsFile(s.fs, s.objectPath(objType, h))
}

// Write stores data under its content hash and returns the hash. Writing
// an object that already exists is a no-op.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	h := HashBytes(data)

	// Fast path: already exists.
	if s.Has(objType, h) {
		return h, nil
	}

	if err := fsutil.WriteFile(s.fs, s.objectPath(objType, h), data, 0o444); err != nil {
		return "", fmt.Errorf("object write %s %s: %w", objType, h, err)
	}
	return h, nil
}

// Read retrieves the raw content of an object by hash.
func (s *Store) Read(objType ObjectType, h Hash) ([]byte, error) {
	if h == "" {
		return nil, fmt.Errorf("object read %s: empty hash: %w", objType, ErrNotFound)
	}
	data, err := fsutil.ReadFile(s.fs, s.objectPath(objType, h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object read %s %s: %w", objType, h, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s %s: %w", objType, h, err)
	}
	return data, nil
}

// ResolvePrefix expands an abbreviated hash to the single stored hash that
// starts with it. Prefixes shorter than MinPrefixLen are rejected before
// any scan.
func (s *Store) ResolvePrefix(objType ObjectType, prefix string) (Hash, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < MinPrefixLen {
		return "", fmt.Errorf("resolve %s %q: %w", objType, prefix, ErrPrefixTooShort)
	}
	if len(prefix) > HashLen || !IsHex(prefix) {
		return "", fmt.Errorf("resolve %s %q: %w", objType, prefix, ErrNotFound)
	}
	if len(prefix) == HashLen {
		if s.Has(objType, Hash(prefix)) {
			return Hash(prefix), nil
		}
		return "", fmt.Errorf("resolve %s %q: %w", objType, prefix, ErrNotFound)
	}

	matches, err := s.scanPrefix(objType, prefix)
	if err != nil {
		return "", fmt.Errorf("resolve %s %q: %w", objType, prefix, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resolve %s %q: %w", objType, prefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("resolve %s %q (%d candidates): %w", objType, prefix, len(matches), ErrAmbiguous)
	}
}

func (s *Store) scanPrefix(objType ObjectType, prefix string) ([]Hash, error) {
	dir := s.namespaceDir(objType)
	var matches []Hash

	if objType == TypeCommit {
		// Only the fan-out directory named by the first two characters
		// can hold candidates.
		names, err := fsutil.ListFiles(s.fs, filepath.Join(dir, prefix[:2]))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if strings.HasPrefix(name, prefix[2:]) && len(name) == HashLen-2 {
				matches = append(matches, Hash(prefix[:2]+name))
			}
		}
		return matches, nil
	}

	names, err := fsutil.ListFiles(s.fs, dir)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if strings.HasPrefix(name, prefix) && len(name) == HashLen {
			matches = append(matches, Hash(name))
		}
	}
	return matches, nil
}

// List returns every stored hash in the namespace, sorted.
func (s *Store) List(objType ObjectType) ([]Hash, error) {
	dir := s.namespaceDir(objType)
	var out []Hash

	if objType == TypeCommit {
		shards, err := fsutil.ListDirs(s.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", objType, err)
		}
		for _, shard := range shards {
			names, err := fsutil.ListFiles(s.fs, filepath.Join(dir, shard))
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", objType, err)
			}
			for _, name := range names {
				if len(shard)+len(name) == HashLen {
					out = append(out, Hash(shard+name))
				}
			}
		}
	} else {
		names, err := fsutil.ListFiles(s.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", objType, err)
		}
		for _, name := range names {
			if len(name) == HashLen {
				out = append(out, Hash(name))
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	data, err := s.Read(TypeBlob, h)
	if err != nil {
		return nil, err
	}
	return UnmarshalBlob(data)
}

// WriteCommit serializes and stores a CommitObj, annotating c with its hash.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	h, err := s.Write(TypeCommit, MarshalCommit(c))
	if err != nil {
		return "", err
	}
	c.Hash = h
	return h, nil
}

// ReadCommit reads and deserializes a CommitObj, annotating it with h.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	data, err := s.Read(TypeCommit, h)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	c.Hash = h
	return c, nil
}

// ReadCommitPrefix resolves an abbreviated commit hash and reads the commit.
func (s *Store) ReadCommitPrefix(prefix string) (*CommitObj, error) {
	h, err := s.ResolvePrefix(TypeCommit, prefix)
	if err != nil {
		return nil, err
	}
	return s.ReadCommit(h)
}
