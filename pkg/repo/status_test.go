package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Clean(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "a", map[string]string{"a.txt": "a"})
	require.NoError(t, r.CreateBranchAtHead("side"))

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, "master", st.Branch)
	assert.Equal(t, []string{"master", "side"}, st.Branches)
	assert.Empty(t, st.Staged)
	assert.Empty(t, st.Removed)
	assert.Empty(t, st.Modified)
	assert.Empty(t, st.Untracked)
}

func TestStatus_StagedAndRemoved(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "a", map[string]string{"a.txt": "a", "b.txt": "b"})

	writeWork(t, r, "c.txt", "c")
	require.NoError(t, r.Add("c.txt"))
	require.NoError(t, r.Remove("b.txt"))

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt"}, st.Staged)
	assert.Equal(t, []string{"b.txt"}, st.Removed)
	assert.Empty(t, st.Modified)
	assert.Empty(t, st.Untracked)
}

func TestStatus_ModificationsNotStaged(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "base", map[string]string{
		"changed.txt":  "v1",
		"deleted.txt":  "v1",
		"restaged.txt": "v1",
		"vanished.txt": "v1",
	})

	// Tracked, changed, not staged.
	writeWork(t, r, "changed.txt", "v2")
	// Tracked, deleted, not staged for removal.
	deleteWork(t, r, "deleted.txt")
	// Staged, then changed again.
	writeWork(t, r, "restaged.txt", "v2")
	require.NoError(t, r.Add("restaged.txt"))
	writeWork(t, r, "restaged.txt", "v3")
	// Staged, then deleted.
	writeWork(t, r, "vanished.txt", "v2")
	require.NoError(t, r.Add("vanished.txt"))
	deleteWork(t, r, "vanished.txt")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []ModifiedEntry{
		{Name: "changed.txt", Kind: ChangeModified},
		{Name: "deleted.txt", Kind: ChangeDeleted},
		{Name: "restaged.txt", Kind: ChangeModified},
		{Name: "vanished.txt", Kind: ChangeDeleted},
	}, st.Modified)
	assert.Equal(t, []string{"restaged.txt", "vanished.txt"}, st.Staged)
}

func TestStatus_Untracked(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "a", map[string]string{"a.txt": "a", "b.txt": "b"})
	writeWork(t, r, "new.txt", "n")
	require.NoError(t, r.FS.MkdirAll(testRoot+"/dir", 0o755))
	writeWork(t, r, "dir/nested.txt", "n")

	require.NoError(t, r.Remove("b.txt"))
	writeWork(t, r, "b.txt", "back")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "new.txt"}, st.Untracked)
	assert.Equal(t, []string{"b.txt"}, st.Removed)
	assert.Empty(t, st.Modified)
}

func TestStatus_StagedFileIsNotUntracked(t *testing.T) {
	r := newTestRepo(t)
	writeWork(t, r, "new.txt", "n")
	require.NoError(t, r.Add("new.txt"))

	st, err := r.Status()
	require.NoError(t, err)
	assert.Empty(t, st.Untracked)
	assert.Empty(t, st.Modified)
	assert.Equal(t, []string{"new.txt"}, st.Staged)
}
