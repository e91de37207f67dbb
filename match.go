package srcbundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/pattern"
)

// globMatcher matches slash-separated relative paths against a shell
// pattern. root is the pattern's leading run of literal directories, which
// is where a walk has to start.
type globMatcher struct {
	pattern string
	root    string
	re      *regexp.Regexp
}

func compileGlob(pat string) (*globMatcher, error) {
	if pat == "" {
		return nil, errors.New("empty glob pattern")
	}
	pat = filepath.ToSlash(pat)
	if path.IsAbs(pat) || filepath.IsAbs(pat) {
		return nil, fmt.Errorf("glob pattern %q must be relative", pat)
	}
	pat = strings.TrimPrefix(path.Clean(pat), "./")
	expr, err := pattern.Regexp(pat, pattern.Filenames)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pat, err)
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pat, err)
	}
	return &globMatcher{pattern: pat, root: literalRoot(pat), re: re}, nil
}

func (m *globMatcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// literalRoot returns the directory part of pat that contains no glob
// metacharacters, or "." if the first element already has some.
func literalRoot(pat string) string {
	elems := strings.Split(pat, "/")
	n := 0
	for n < len(elems)-1 && !strings.ContainsAny(elems[n], `*?[\{`) {
		n++
	}
	if n == 0 {
		return "."
	}
	return path.Join(elems[:n]...)
}

func glob(dir, pat string) ([]string, error) {
	m, err := compileGlob(pat)
	if err != nil {
		return nil, err
	}
	start := filepath.Join(dir, filepath.FromSlash(m.root))
	var paths []string
	err = filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == start && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return &ReadError{Path: p, Err: err}
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !m.Match(rel) {
			return nil
		}
		ok, err := isRegular(p, d)
		if err != nil {
			return &ReadError{Path: rel, Err: err}
		}
		if !ok {
			return nil
		}
		if strings.ContainsRune(rel, '\n') {
			return fmt.Errorf("unsupported newline in file name %q", rel)
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// isRegular reports whether d is a regular file, following a symlink.
func isRegular(p string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular(), nil
	}
	info, err := os.Stat(p)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
