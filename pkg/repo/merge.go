package repo

import (
	"bytes"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// MergeOutcome classifies how Merge finished.
type MergeOutcome string

const (
	// MergeCommitted means a two-parent merge commit was created.
	MergeCommitted MergeOutcome = "merged"
	// MergeAncestor means the other branch was already contained in the
	// current one; nothing changed.
	MergeAncestor MergeOutcome = "ancestor"
	// MergeFastForward means the current branch was moved to the other tip.
	MergeFastForward MergeOutcome = "fast-forward"
)

// FileAction is what the merge did to one file name.
type FileAction string

const (
	ActionTakeOther FileAction = "take-other"
	ActionRemove    FileAction = "remove"
	ActionConflict  FileAction = "conflict"
)

// FileMergeReport records the merge action taken for a single file.
type FileMergeReport struct {
	Name   string
	Action FileAction
}

// MergeReport is the overall result of a repository-level merge.
type MergeReport struct {
	Outcome      MergeOutcome
	Branch       string // branch merged in
	SplitPoint   object.Hash
	Files        []FileMergeReport
	HasConflicts bool
	Commit       *object.CommitObj // merge commit, or the new head on fast-forward
}

// Conflicts returns the names of the conflicted files.
func (m *MergeReport) Conflicts() []string {
	var out []string
	for _, f := range m.Files {
		if f.Action == ActionConflict {
			out = append(out, f.Name)
		}
	}
	return out
}

// Merge merges branchName into the current branch.
//
//  1. Refuse with a non-empty staging area, an unknown branch, the current
//     branch, or an untracked working file the other tip would overwrite.
//  2. Find the split point. If it is the other tip there is nothing to do;
//     if it is the current tip, fast-forward.
//  3. Otherwise apply the three-way decision per file name and commit the
//     result with parents [current tip, other tip]. Conflicts are written
//     to the working tree, staged and committed; they are reported, not
//     returned as errors.
func (r *Repo) Merge(branchName string) (*MergeReport, error) {
	st, err := r.LoadState()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if !st.Index.IsEmpty() {
		return nil, fmt.Errorf("merge: %w", ErrUncommittedChanges)
	}
	otherHash, err := r.ResolveRef(branchRef(branchName))
	if err != nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, err)
	}
	if branchName == st.Branch {
		return nil, fmt.Errorf("merge %q: %w", branchName, ErrSelfMerge)
	}
	other, err := r.ReadCommit(otherHash)
	if err != nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, err)
	}
	if err := r.checkUntracked(st.Head, other); err != nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, err)
	}

	split, err := r.FindSplitPoint(st.Head.Hash, other.Hash)
	if err != nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, err)
	}
	if split == nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, ErrNoCommonAncestor)
	}

	report := &MergeReport{Branch: branchName, SplitPoint: split.Hash}
	switch split.Hash {
	case other.Hash:
		report.Outcome = MergeAncestor
		report.Commit = st.Head
		r.log.Debug("merge: given branch is an ancestor", zap.String("branch", branchName))
		return report, nil
	case st.Head.Hash:
		if err := r.restoreCommit(st.Head, other); err != nil {
			return nil, fmt.Errorf("merge %q: fast-forward: %w", branchName, err)
		}
		if err := r.UpdateRef(branchRef(st.Branch), other.Hash, "merge "+branchName+": fast-forward"); err != nil {
			return nil, fmt.Errorf("merge %q: %w", branchName, err)
		}
		report.Outcome = MergeFastForward
		report.Commit = other
		r.log.Debug("merge: fast-forwarded",
			zap.String("branch", st.Branch),
			zap.String("commit", string(other.Hash)))
		return report, nil
	}

	if err := r.mergeFiles(st.Index, split, st.Head, other, report); err != nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, err)
	}

	message := fmt.Sprintf("Merged %s into %s.", branchName, st.Branch)
	c, err := r.commitState(st, message, []object.Hash{st.Head.Hash, other.Hash}, "merge "+branchName)
	if err != nil {
		return nil, fmt.Errorf("merge %q: %w", branchName, err)
	}
	report.Outcome = MergeCommitted
	report.Commit = c

	r.log.Debug("merge: committed",
		zap.String("branch", st.Branch),
		zap.String("other", branchName),
		zap.String("split", string(split.Hash)),
		zap.Int("files", len(report.Files)),
		zap.Bool("conflicts", report.HasConflicts))
	return report, nil
}

// mergeFiles runs the per-name three-way decision, updating stg and the
// working tree and appending every action taken to report.
func (r *Repo) mergeFiles(stg *Staging, split, head, other *object.CommitObj, report *MergeReport) error {
	for _, name := range split.TrackedNames() {
		s := split.Tracked[name]
		h, inHead := head.Tracked[name]
		o, inOther := other.Tracked[name]

		var action FileAction
		switch {
		case inHead && inOther:
			switch {
			case h == s && o != s:
				action = ActionTakeOther
			case h != s && o != s && h != o:
				action = ActionConflict
			}
		case inHead && !inOther:
			if h == s {
				action = ActionRemove
			} else {
				action = ActionConflict
			}
		case !inHead && inOther:
			if o != s {
				action = ActionConflict
			}
		}
		if err := r.applyMergeAction(stg, name, action, h, o, report); err != nil {
			return err
		}
	}

	for _, name := range other.TrackedNames() {
		if _, inSplit := split.Tracked[name]; inSplit {
			continue
		}
		o := other.Tracked[name]
		h, inHead := head.Tracked[name]

		var action FileAction
		switch {
		case !inHead:
			action = ActionTakeOther
		case h != o:
			action = ActionConflict
		}
		if err := r.applyMergeAction(stg, name, action, h, o, report); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) applyMergeAction(stg *Staging, name string, action FileAction, h, o object.Hash, report *MergeReport) error {
	switch action {
	case "":
		return nil
	case ActionTakeOther:
		if err := r.writeBlobToWork(name, o); err != nil {
			return err
		}
		stg.Stage(name, o)
	case ActionRemove:
		if err := r.removeWorkFile(name); err != nil {
			return err
		}
		stg.MarkRemoved(name)
	case ActionConflict:
		headData, err := r.blobData(h)
		if err != nil {
			return err
		}
		otherData, err := r.blobData(o)
		if err != nil {
			return err
		}
		content := renderConflict(r.Config.Merge.ConflictHeadLabel, headData, otherData)
		if err := r.writeWorkFile(name, content); err != nil {
			return fmt.Errorf("write conflict %q: %w", name, err)
		}
		blobHash, err := r.Store.WriteBlob(&object.Blob{Data: content})
		if err != nil {
			return fmt.Errorf("write conflict blob %q: %w", name, err)
		}
		stg.Stage(name, blobHash)
		report.HasConflicts = true
	}
	report.Files = append(report.Files, FileMergeReport{Name: name, Action: action})
	return nil
}

// blobData returns the content of blob h, or nil when h is empty (the file
// is absent on that side).
func (r *Repo) blobData(h object.Hash) ([]byte, error) {
	if h == "" {
		return nil, nil
	}
	b, err := r.Store.ReadBlob(h)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", h.Short(7), err)
	}
	return b.Data, nil
}

// renderConflict builds the conflicted working-file content. Each non-empty
// side is terminated with a newline so the markers start their own lines.
func renderConflict(headLabel string, head, other []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< " + headLabel + "\n")
	buf.Write(head)
	if len(head) > 0 && head[len(head)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("=======\n")
	buf.Write(other)
	if len(other) > 0 && other[len(other)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes()
}
