package repo

import (
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMergeRepo commits base on master, creates branch "other" at that
// commit and stays on master.
func setupMergeRepo(t *testing.T, base map[string]string) *Repo {
	t.Helper()
	r := newTestRepo(t)
	commitFiles(t, r, "base", base)
	require.NoError(t, r.CreateBranchAtHead("other"))
	return r
}

// onBranch checks out branch, runs fn and switches back to master.
func onBranch(t *testing.T, r *Repo, branch string, fn func()) {
	t.Helper()
	require.NoError(t, r.CheckoutBranch(branch))
	fn()
	require.NoError(t, r.CheckoutBranch("master"))
}

func removeAndCommit(t *testing.T, r *Repo, message string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, r.Remove(name))
	}
	_, err := r.Commit(message)
	require.NoError(t, err)
}

func TestMerge_OtherModifiedTakesOther(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other edits f", map[string]string{"f.txt": "other"})
	})
	commitFiles(t, r, "head adds g", map[string]string{"g.txt": "g"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, MergeCommitted, report.Outcome)
	assert.False(t, report.HasConflicts)
	assert.Equal(t, []FileMergeReport{{Name: "f.txt", Action: ActionTakeOther}}, report.Files)

	assert.Equal(t, "other", readWork(t, r, "f.txt"))
	assert.Equal(t, object.HashBytes([]byte("other")), report.Commit.Tracked["f.txt"])
	assert.Equal(t, object.HashBytes([]byte("g")), report.Commit.Tracked["g.txt"])
}

func TestMerge_BothModifiedConflict(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other edits f", map[string]string{"f.txt": "other"})
	})
	commitFiles(t, r, "head edits f", map[string]string{"f.txt": "head"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.True(t, report.HasConflicts)
	assert.Equal(t, []string{"f.txt"}, report.Conflicts())

	want := "<<<<<<< HEAD\nhead\n=======\nother\n>>>>>>>\n"
	assert.Equal(t, want, readWork(t, r, "f.txt"))
	assert.Equal(t, object.HashBytes([]byte(want)), report.Commit.Tracked["f.txt"])

	blob, err := r.Store.ReadBlob(report.Commit.Tracked["f.txt"])
	require.NoError(t, err)
	assert.Equal(t, want, string(blob.Data))
}

func TestMerge_HeadDeletedOtherUnmodifiedStaysDeleted(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other adds g", map[string]string{"g.txt": "g"})
	})
	removeAndCommit(t, r, "head removes f", "f.txt")

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.False(t, report.HasConflicts)
	assert.False(t, workExists(r, "f.txt"))
	assert.NotContains(t, report.Commit.Tracked, "f.txt")
	assert.Contains(t, report.Commit.Tracked, "g.txt")
}

func TestMerge_OtherDeletedUnmodifiedIsRemoved(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base", "keep.txt": "k"})
	onBranch(t, r, "other", func() {
		removeAndCommit(t, r, "other removes f", "f.txt")
	})
	commitFiles(t, r, "head adds g", map[string]string{"g.txt": "g"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, []FileMergeReport{{Name: "f.txt", Action: ActionRemove}}, report.Files)
	assert.False(t, workExists(r, "f.txt"))
	assert.Equal(t, []string{"g.txt", "keep.txt"}, report.Commit.TrackedNames())
}

func TestMerge_HeadModifiedOtherUnmodifiedKeepsHead(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other adds g", map[string]string{"g.txt": "g"})
	})
	commitFiles(t, r, "head edits f", map[string]string{"f.txt": "head"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, "head", readWork(t, r, "f.txt"))
	assert.Equal(t, object.HashBytes([]byte("head")), report.Commit.Tracked["f.txt"])
}

func TestMerge_ConvergedEditsNoConflict(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other edits f", map[string]string{"f.txt": "same"})
	})
	commitFiles(t, r, "head edits f", map[string]string{"f.txt": "same"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.False(t, report.HasConflicts)
	assert.Empty(t, report.Files)
}

func TestMerge_ModifyDeleteConflicts(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"h.txt": "base", "o.txt": "base"})
	onBranch(t, r, "other", func() {
		removeAndCommit(t, r, "other removes h", "h.txt")
		commitFiles(t, r, "other edits o", map[string]string{"o.txt": "other"})
	})
	removeAndCommit(t, r, "head removes o", "o.txt")
	commitFiles(t, r, "head edits h", map[string]string{"h.txt": "head"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.True(t, report.HasConflicts)
	assert.Equal(t, []string{"h.txt", "o.txt"}, report.Conflicts())

	assert.Equal(t, "<<<<<<< HEAD\nhead\n=======\n>>>>>>>\n", readWork(t, r, "h.txt"))
	assert.Equal(t, "<<<<<<< HEAD\n=======\nother\n>>>>>>>\n", readWork(t, r, "o.txt"))
}

func TestMerge_FilesNewOnOther(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other adds", map[string]string{"new.txt": "new", "both.txt": "theirs\n"})
	})
	commitFiles(t, r, "head adds", map[string]string{"both.txt": "ours\n", "mine.txt": "mine"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, []FileMergeReport{
		{Name: "both.txt", Action: ActionConflict},
		{Name: "new.txt", Action: ActionTakeOther},
	}, report.Files)
	assert.Equal(t, "new", readWork(t, r, "new.txt"))
	assert.Equal(t, "mine", readWork(t, r, "mine.txt"))
	assert.Equal(t, "<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>>\n", readWork(t, r, "both.txt"))
}

func TestMerge_CommitShape(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	var otherTip *object.CommitObj
	onBranch(t, r, "other", func() {
		otherTip = commitFiles(t, r, "other", map[string]string{"o.txt": "o"})
	})
	headTip := commitFiles(t, r, "head", map[string]string{"h.txt": "h"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	c := report.Commit
	assert.Equal(t, "Merged other into master.", c.Message)
	assert.Equal(t, []object.Hash{headTip.Hash, otherTip.Hash}, c.Parents)
	assert.True(t, c.IsMerge())
	assert.Equal(t, c.Hash, headHash(t, r))

	stg, err := r.ReadStaging()
	require.NoError(t, err)
	assert.True(t, stg.IsEmpty())

	log, err := r.Log(c.Hash, 0)
	require.NoError(t, err)
	assert.Equal(t, headTip.Hash, log[1].Hash, "log follows the first parent")
}

func TestMerge_CommitsEvenWithoutChanges(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other edits f", map[string]string{"f.txt": "same"})
	})
	head := commitFiles(t, r, "head edits f", map[string]string{"f.txt": "same"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, MergeCommitted, report.Outcome)
	assert.Equal(t, head.Tracked, report.Commit.Tracked)
}

func TestMerge_FastForward(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	var tip *object.CommitObj
	onBranch(t, r, "other", func() {
		tip = commitFiles(t, r, "ahead", map[string]string{"f.txt": "ahead", "g.txt": "g"})
	})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, MergeFastForward, report.Outcome)
	assert.Equal(t, tip.Hash, report.Commit.Hash)
	assert.Equal(t, tip.Hash, headHash(t, r))
	assert.Equal(t, "ahead", readWork(t, r, "f.txt"))
	assert.Equal(t, "g", readWork(t, r, "g.txt"))

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestMerge_Ancestor(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	head := commitFiles(t, r, "ahead", map[string]string{"f.txt": "ahead"})

	report, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, MergeAncestor, report.Outcome)
	assert.Equal(t, head.Hash, headHash(t, r))
	assert.Equal(t, "ahead", readWork(t, r, "f.txt"))
}

func TestMerge_Preconditions(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})

	_, err := r.Merge("nope")
	require.ErrorIs(t, err, ErrUnknownBranch)

	_, err = r.Merge("master")
	require.ErrorIs(t, err, ErrSelfMerge)

	writeWork(t, r, "staged.txt", "x")
	require.NoError(t, r.Add("staged.txt"))
	_, err = r.Merge("other")
	require.ErrorIs(t, err, ErrUncommittedChanges)
}

func TestMerge_UntrackedOverwrite(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other adds u", map[string]string{"u.txt": "theirs"})
	})
	head := commitFiles(t, r, "head", map[string]string{"h.txt": "h"})
	writeWork(t, r, "u.txt", "untracked")

	_, err := r.Merge("other")
	require.ErrorIs(t, err, ErrUntrackedOverwrite)
	assert.Equal(t, "untracked", readWork(t, r, "u.txt"))
	assert.Equal(t, head.Hash, headHash(t, r))
}

func TestMerge_ConflictLabelFromConfig(t *testing.T) {
	r := setupMergeRepo(t, map[string]string{"f.txt": "base"})
	cfg := DefaultConfig()
	cfg.Merge.ConflictHeadLabel = "master"
	require.NoError(t, r.WriteConfig(cfg))

	onBranch(t, r, "other", func() {
		commitFiles(t, r, "other", map[string]string{"f.txt": "o"})
	})
	commitFiles(t, r, "head", map[string]string{"f.txt": "h"})

	_, err := r.Merge("other")
	require.NoError(t, err)
	assert.Equal(t, "<<<<<<< master\nh\n=======\no\n>>>>>>>\n", readWork(t, r, "f.txt"))
}

func TestRenderConflict(t *testing.T) {
	tests := []struct {
		name        string
		head, other string
		want        string
	}{
		{"both", "head", "other", "<<<<<<< HEAD\nhead\n=======\nother\n>>>>>>>\n"},
		{"trailing newlines", "a\n", "b\n", "<<<<<<< HEAD\na\n=======\nb\n>>>>>>>\n"},
		{"head absent", "", "b", "<<<<<<< HEAD\n=======\nb\n>>>>>>>\n"},
		{"other absent", "a", "", "<<<<<<< HEAD\na\n=======\n>>>>>>>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderConflict("HEAD", []byte(tt.head), []byte(tt.other))
			assert.Equal(t, tt.want, string(got))
		})
	}
}
