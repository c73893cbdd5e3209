package repo

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DirName is the name of the repository metadata directory inside the
// working root.
const DirName = ".gitlet"

// Repo represents an opened gitlet repository. A Repo is meant to live for
// a single command invocation; it memoizes commits it reads and is not safe
// for concurrent use.
type Repo struct {
	RootDir   string        // working directory root
	GitletDir string        // .gitlet/ directory
	FS        afero.Fs      // file system holding both
	Store     *object.Store // content-addressed object store
	Config    *Config

	log *zap.Logger
	now func() time.Time

	commitCacheOnce sync.Once
	commitCache     *commitCache
}

// Option configures Init and Open.
type Option func(*options)

type options struct {
	fs            afero.Fs
	logger        *zap.Logger
	now           func() time.Time
	defaultBranch string
}

// WithFS selects the file system the repository lives on. The default is
// the OS file system.
func WithFS(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClock overrides the wall clock used to timestamp commits.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithDefaultBranch names the branch Init creates. Ignored by Open.
func WithDefaultBranch(name string) Option {
	return func(o *options) {
		o.defaultBranch = name
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

func newRepo(root string, o *options) *Repo {
	gitletDir := filepath.Join(root, DirName)
	return &Repo{
		RootDir:   root,
		GitletDir: gitletDir,
		FS:        o.fs,
		Store:     object.NewStore(o.fs, gitletDir),
		Config:    DefaultConfig(),
		log:       o.logger,
		now:       o.now,
	}
}

// SetLogger replaces the repository logger. A nil logger disables logging.
func (r *Repo) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	r.log = l
}

func (r *Repo) getCommitCache() *commitCache {
	r.commitCacheOnce.Do(func() {
		r.commitCache = newCommitCache()
	})
	return r.commitCache
}
