package repo

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testRoot = "/work"

// tickingClock returns a clock that advances one second per call, so
// commits with identical content still get distinct hashes.
func tickingClock() func() time.Time {
	t := time.Unix(1_700_000_000, 0)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// newTestRepo initializes a repository on an in-memory file system.
func newTestRepo(t *testing.T, opts ...Option) *Repo {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	opts = append([]Option{WithFS(fs), WithClock(tickingClock())}, opts...)
	r, err := Init(testRoot, opts...)
	require.NoError(t, err)
	return r
}

func writeWork(t *testing.T, r *Repo, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(r.FS, filepath.Join(r.RootDir, name), []byte(content), 0o644))
}

func readWork(t *testing.T, r *Repo, name string) string {
	t.Helper()
	data, err := afero.ReadFile(r.FS, filepath.Join(r.RootDir, name))
	require.NoError(t, err)
	return string(data)
}

func deleteWork(t *testing.T, r *Repo, name string) {
	t.Helper()
	require.NoError(t, r.FS.Remove(filepath.Join(r.RootDir, name)))
}

func workExists(r *Repo, name string) bool {
	ok, err := afero.Exists(r.FS, filepath.Join(r.RootDir, name))
	return err == nil && ok
}

// commitFiles writes each file, stages it and commits.
func commitFiles(t *testing.T, r *Repo, message string, files map[string]string) *object.CommitObj {
	t.Helper()
	for name, content := range files {
		writeWork(t, r, name, content)
		require.NoError(t, r.Add(name))
	}
	c, err := r.Commit(message)
	require.NoError(t, err)
	return c
}

func headHash(t *testing.T, r *Repo) object.Hash {
	t.Helper()
	h, err := r.ResolveRef("HEAD")
	require.NoError(t, err)
	return h
}
