package repo

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/fsutil"
)

// IgnoreFileName is the working-tree file listing names status should not
// report as untracked.
const IgnoreFileName = ".gitletignore"

// IgnoreChecker decides whether an untracked working file is hidden from
// status. Patterns use path.Match syntax against the file name; a leading
// "!" re-includes a name. The last matching pattern wins.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern string
	negated bool
}

// NewIgnoreChecker reads .gitletignore from the working root. A missing
// file yields a checker that ignores nothing.
func (r *Repo) NewIgnoreChecker() (*IgnoreChecker, error) {
	data, err := fsutil.ReadFile(r.FS, filepath.Join(r.RootDir, IgnoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &IgnoreChecker{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", IgnoreFileName, err)
	}
	return ParseIgnore(data), nil
}

// ParseIgnore builds a checker from ignore-file content. Blank lines and
// lines starting with "#" are skipped.
func ParseIgnore(data []byte) *IgnoreChecker {
	ic := &IgnoreChecker{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if p, ok := parseIgnoreLine(scanner.Text()); ok {
			ic.patterns = append(ic.patterns, p)
		}
	}
	return ic
}

func parseIgnoreLine(line string) (ignorePattern, bool) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return ignorePattern{}, false
	}
	p := ignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return ignorePattern{}, false
	}
	// Malformed globs never match; drop them up front.
	if _, err := path.Match(line, ""); err != nil {
		return ignorePattern{}, false
	}
	p.pattern = line
	return p, true
}

// IsIgnored reports whether name matches the ignore patterns.
func (ic *IgnoreChecker) IsIgnored(name string) bool {
	ignored := false
	for _, p := range ic.patterns {
		if ok, _ := path.Match(p.pattern, name); ok {
			ignored = !p.negated
		}
	}
	return ignored
}
