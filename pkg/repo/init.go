package repo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsutil"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	headRefPrefix  = "ref: "
	branchRefsRoot = "refs/heads/"

	initialCommitMessage = "initial commit"
)

// Init creates a new repository at path. It creates the .gitlet/ directory
// structure (HEAD, objects/, refs/heads/, index, config), writes the root
// commit and points the default branch at it. Returns ErrAlreadyInitialized
// if a .gitlet/ directory already exists.
func Init(path string, opts ...Option) (*Repo, error) {
	o := buildOptions(opts)
	r := newRepo(path, o)

	if fsutil.Exists(r.FS, r.GitletDir) {
		return nil, fmt.Errorf("init %s: %w", r.GitletDir, ErrAlreadyInitialized)
	}

	cfg := DefaultConfig()
	if o.defaultBranch != "" {
		cfg.Core.DefaultBranch = o.defaultBranch
	}
	if err := validateBranchName(cfg.Core.DefaultBranch); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	// Create directory structure.
	dirs := []string{
		filepath.Join(r.GitletDir, "objects", "commits"),
		filepath.Join(r.GitletDir, "objects", "blobs"),
		filepath.Join(r.GitletDir, "refs", "heads"),
		filepath.Join(r.GitletDir, "logs", "refs", "heads"),
	}
	for _, d := range dirs {
		if err := r.FS.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	if err := r.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	// The root commit is identical in every repository: fixed message,
	// epoch timestamp, no parents, no files.
	root := &object.CommitObj{
		Message:   initialCommitMessage,
		Timestamp: 0,
		Tracked:   make(map[string]object.Hash),
	}
	rootHash, err := r.Store.WriteCommit(root)
	if err != nil {
		return nil, fmt.Errorf("init: write root commit: %w", err)
	}
	r.getCommitCache().store(root)

	branch := cfg.Core.DefaultBranch
	if err := r.UpdateRef(branchRef(branch), rootHash, "commit (initial): "+initialCommitMessage); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.setHead(branch); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.WriteStaging(NewStaging()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.log.Debug("initialized repository",
		zap.String("dir", r.GitletDir),
		zap.String("branch", branch),
		zap.String("commit", string(rootHash)))
	return r, nil
}

// Open searches upward from path for a .gitlet/ directory and opens the
// repository. Returns ErrNotInitialized if no .gitlet/ directory is found.
func Open(path string, opts ...Option) (*Repo, error) {
	o := buildOptions(opts)

	cur := filepath.Clean(path)
	if _, onDisk := o.fs.(*afero.OsFs); onDisk {
		abs, err := filepath.Abs(cur)
		if err != nil {
			return nil, fmt.Errorf("open: abs path: %w", err)
		}
		cur = abs
	}

	for {
		info, err := o.fs.Stat(filepath.Join(cur, DirName))
		if err == nil && info.IsDir() {
			r := newRepo(cur, o)
			cfg, err := r.ReadConfig()
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			r.Config = cfg
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .gitlet/.
			return nil, fmt.Errorf("open %s: %w", path, ErrNotInitialized)
		}
		cur = parent
	}
}

func branchRef(name string) string {
	return branchRefsRoot + name
}

// Head reads .gitlet/HEAD and returns the ref path it names
// (e.g. "refs/heads/master").
func (r *Repo) Head() (string, error) {
	data, err := fsutil.ReadFile(r.FS, filepath.Join(r.GitletDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, headRefPrefix+branchRefsRoot) {
		return "", fmt.Errorf("head: malformed HEAD %q", content)
	}
	return strings.TrimPrefix(content, headRefPrefix), nil
}

// CurrentBranch returns the name of the branch HEAD points at.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimPrefix(head, branchRefsRoot), nil
}

func (r *Repo) setHead(branch string) error {
	content := headRefPrefix + branchRef(branch) + "\n"
	if err := fsutil.WriteFile(r.FS, filepath.Join(r.GitletDir, "HEAD"), []byte(content), 0o644); err != nil {
		return fmt.Errorf("update HEAD: %w", err)
	}
	return nil
}

// ResolveRef resolves a ref name to a commit hash.
//
// Resolution order:
//  1. "HEAD" resolves the branch HEAD points at.
//  2. Names starting with "refs/" are read from .gitlet/<name>.
//  3. Anything else is treated as a branch name under refs/heads/.
//
// A missing ref yields ErrUnknownBranch.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	if name == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return "", err
		}
		return r.ResolveRef(head)
	}

	refName := name
	if !strings.HasPrefix(refName, "refs/") {
		refName = branchRef(name)
	}
	if branch, ok := strings.CutPrefix(refName, branchRefsRoot); ok && validateBranchName(branch) != nil {
		return "", fmt.Errorf("resolve ref %q: %w", name, ErrUnknownBranch)
	}

	data, err := fsutil.ReadFile(r.FS, filepath.Join(r.GitletDir, filepath.FromSlash(refName)))
	if err != nil {
		return "", fmt.Errorf("resolve ref %q: %w", name, ErrUnknownBranch)
	}
	h := object.Hash(strings.TrimSpace(string(data)))
	if h == "" {
		return "", fmt.Errorf("resolve ref %q: empty ref: %w", name, ErrUnknownBranch)
	}
	return h, nil
}

// UpdateRef atomically writes a hash to the named ref file under .gitlet/
// and records the move in the ref's reflog.
func (r *Repo) UpdateRef(name string, h object.Hash, reason string) error {
	refPath := filepath.Join(r.GitletDir, filepath.FromSlash(name))
	oldHash, _ := readRefHash(r, refPath)

	if err := fsutil.WriteFile(r.FS, refPath, []byte(string(h)+"\n"), 0o644); err != nil {
		return fmt.Errorf("update ref %q: %w", name, err)
	}
	if err := r.appendReflog(name, oldHash, h, reason); err != nil {
		return fmt.Errorf("update ref %q: reflog: %w", name, err)
	}

	r.log.Debug("updated ref",
		zap.String("ref", name),
		zap.String("old", string(oldHash)),
		zap.String("new", string(h)))
	return nil
}

func readRefHash(r *Repo, refPath string) (object.Hash, error) {
	data, err := fsutil.ReadFile(r.FS, refPath)
	if err != nil {
		return "", err
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}
