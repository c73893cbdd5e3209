package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutBranch_SwitchesWorkingTree(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "base", map[string]string{"shared.txt": "base", "gone.txt": "gone"})
	require.NoError(t, r.CreateBranchAtHead("side"))

	require.NoError(t, r.CheckoutBranch("side"))
	require.NoError(t, r.Remove("gone.txt"))
	side := commitFiles(t, r, "side work", map[string]string{"shared.txt": "side", "new.txt": "new"})

	require.NoError(t, r.CheckoutBranch("master"))
	assert.Equal(t, "base", readWork(t, r, "shared.txt"))
	assert.Equal(t, "gone", readWork(t, r, "gone.txt"))
	assert.False(t, workExists(r, "new.txt"))

	require.NoError(t, r.CheckoutBranch("side"))
	assert.Equal(t, "side", readWork(t, r, "shared.txt"))
	assert.Equal(t, "new", readWork(t, r, "new.txt"))
	assert.False(t, workExists(r, "gone.txt"))
	assert.Equal(t, side.Hash, headHash(t, r))

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "side", branch)
}

func TestCheckoutBranch_ClearsIndex(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.CreateBranchAtHead("side"))
	writeWork(t, r, "staged.txt", "x")
	require.NoError(t, r.Add("staged.txt"))

	require.NoError(t, r.CheckoutBranch("side"))

	stg, err := r.ReadStaging()
	require.NoError(t, err)
	assert.True(t, stg.IsEmpty())
}

func TestCheckoutBranch_Errors(t *testing.T) {
	r := newTestRepo(t)

	require.ErrorIs(t, r.CheckoutBranch("nope"), ErrUnknownBranch)
	require.ErrorIs(t, r.CheckoutBranch("master"), ErrCurrentBranchOp)
}

func TestCheckoutBranch_UntrackedOverwrite(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.CreateBranchAtHead("side"))
	require.NoError(t, r.CheckoutBranch("side"))
	commitFiles(t, r, "side file", map[string]string{"f.txt": "side"})
	require.NoError(t, r.CheckoutBranch("master"))

	writeWork(t, r, "f.txt", "precious")
	err := r.CheckoutBranch("side")
	require.ErrorIs(t, err, ErrUntrackedOverwrite)
	assert.Equal(t, "precious", readWork(t, r, "f.txt"))

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestCheckoutFile_FromHead(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "v1", map[string]string{"f.txt": "v1"})
	writeWork(t, r, "f.txt", "scratch")
	require.NoError(t, r.Add("f.txt"))

	require.NoError(t, r.CheckoutFile("f.txt"))
	assert.Equal(t, "v1", readWork(t, r, "f.txt"))

	stg, err := r.ReadStaging()
	require.NoError(t, err)
	assert.Equal(t, []string{"f.txt"}, stg.StagedNames(), "file checkout must not touch the index")
}

func TestCheckoutFileAt_OlderCommit(t *testing.T) {
	r := newTestRepo(t)
	v1 := commitFiles(t, r, "v1", map[string]string{"f.txt": "v1"})
	commitFiles(t, r, "v2", map[string]string{"f.txt": "v2"})

	require.NoError(t, r.CheckoutFileAt(string(v1.Hash[:6]), "f.txt"))
	assert.Equal(t, "v1", readWork(t, r, "f.txt"))
}

func TestCheckoutFile_Errors(t *testing.T) {
	r := newTestRepo(t)
	v1 := commitFiles(t, r, "v1", map[string]string{"f.txt": "v1"})

	require.ErrorIs(t, r.CheckoutFile("missing.txt"), ErrFileNotFound)
	require.ErrorIs(t, r.CheckoutFileAt(string(v1.Hash[:8]), "missing.txt"), ErrFileNotFound)
	require.ErrorIs(t, r.CheckoutFileAt("ffffffff", "f.txt"), ErrUnknownObject)
}
