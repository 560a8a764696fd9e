package fsutil

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// GlobSet matches paths relative to a working directory against ignore
// patterns. '*' stays within one path segment and '**' crosses segments.
type GlobSet struct {
	globs []glob.Glob
}

// CompileGlobs compiles patterns into a GlobSet. A pattern starting with
// "**/" also matches at the top level, so "**/bin" matches "bin".
func CompileGlobs(patterns []string) (*GlobSet, error) {
	set := &GlobSet{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if err := set.add(pattern); err != nil {
			return nil, err
		}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			if err := set.add(rest); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func (s *GlobSet) add(pattern string) error {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	s.globs = append(s.globs, g)
	return nil
}

// Len returns the number of compiled patterns.
func (s *GlobSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.globs)
}

// Match reports whether rel or its base name matches a pattern. For a
// directory, rel+"/" is tried as well so "obj/**" prunes obj itself.
func (s *GlobSet) Match(rel string, dir bool) bool {
	if s.Len() == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, g := range s.globs {
		if g.Match(rel) || g.Match(base) || (dir && g.Match(rel+"/")) {
			return true
		}
	}
	return false
}
