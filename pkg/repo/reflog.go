package repo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsutil"
	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/multierr"
)

const zeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// ReflogEntry records one move of a branch ref.
type ReflogEntry struct {
	Ref       string
	OldHash   object.Hash
	NewHash   object.Hash
	Timestamp int64
	Reason    string
}

func (r *Repo) reflogPath(ref string) string {
	return filepath.Join(r.GitletDir, "logs", filepath.FromSlash(ref))
}

func (r *Repo) appendReflog(ref string, oldHash, newHash object.Hash, reason string) (err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if strings.TrimSpace(reason) == "" {
		reason = "update"
	}
	// One entry per line.
	reason = strings.ReplaceAll(reason, "\n", " ")

	logPath := r.reflogPath(ref)
	if err := r.FS.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("reflog mkdir: %w", err)
	}

	old := string(oldHash)
	if strings.TrimSpace(old) == "" {
		old = zeroHash
	}
	newVal := string(newHash)
	if strings.TrimSpace(newVal) == "" {
		newVal = zeroHash
	}
	line := fmt.Sprintf("%s %s %d %s\n", old, newVal, r.now().Unix(), reason)

	f, err := r.FS.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("reflog open: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("reflog write: %w", err)
	}
	return nil
}

// ReadReflog returns the reflog of a branch, newest first. An empty branch
// name means the current branch. limit <= 0 returns every entry.
func (r *Repo) ReadReflog(branch string, limit int) ([]ReflogEntry, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		current, err := r.CurrentBranch()
		if err != nil {
			return nil, fmt.Errorf("read reflog: %w", err)
		}
		branch = current
	}
	refName := branchRef(branch)

	f, err := r.FS.Open(r.reflogPath(refName))
	if err != nil {
		if os.IsNotExist(err) {
			if _, resolveErr := r.ResolveRef(refName); resolveErr != nil {
				return nil, fmt.Errorf("read reflog: %w", resolveErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read reflog: %w", err)
	}
	defer f.Close()

	var entries []ReflogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 4)
		if len(parts) < 4 {
			continue
		}
		ts, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, ReflogEntry{
			Ref:       refName,
			OldHash:   object.Hash(parts[0]),
			NewHash:   object.Hash(parts[1]),
			Timestamp: ts,
			Reason:    parts[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reflog: %w", err)
	}

	// Return newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *Repo) deleteReflog(ref string) error {
	return fsutil.Remove(r.FS, r.reflogPath(ref))
}
