package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset_MovesBranchAndWorkingTree(t *testing.T) {
	r := newTestRepo(t)
	v1 := commitFiles(t, r, "v1", map[string]string{"f.txt": "v1"})
	commitFiles(t, r, "v2", map[string]string{"f.txt": "v2", "g.txt": "g"})
	writeWork(t, r, "h.txt", "h")
	require.NoError(t, r.Add("h.txt"))

	got, err := r.Reset(string(v1.Hash[:10]))
	require.NoError(t, err)
	assert.Equal(t, v1.Hash, got.Hash)

	assert.Equal(t, v1.Hash, headHash(t, r))
	assert.Equal(t, "v1", readWork(t, r, "f.txt"))
	assert.False(t, workExists(r, "g.txt"))
	assert.True(t, workExists(r, "h.txt"), "untracked files are left alone")

	stg, err := r.ReadStaging()
	require.NoError(t, err)
	assert.True(t, stg.IsEmpty())

	entries, err := r.ReadReflog("", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "reset: moving to "+v1.Hash.Short(7), entries[0].Reason)
}

func TestReset_Errors(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "v1", map[string]string{"f.txt": "v1"})

	_, err := r.Reset("ffffffff")
	require.ErrorIs(t, err, ErrUnknownObject)
}

func TestReset_UntrackedOverwrite(t *testing.T) {
	r := newTestRepo(t)
	root := headHash(t, r)
	require.NoError(t, r.CreateBranchAtHead("side"))
	require.NoError(t, r.CheckoutBranch("side"))
	side := commitFiles(t, r, "side", map[string]string{"f.txt": "side"})
	require.NoError(t, r.CheckoutBranch("master"))
	writeWork(t, r, "f.txt", "mine")

	_, err := r.Reset(string(side.Hash))
	require.ErrorIs(t, err, ErrUntrackedOverwrite)
	assert.Equal(t, root, headHash(t, r))
}
