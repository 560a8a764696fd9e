package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/syntree/pkg/fsutil"
	"github.com/yaklabco/syntree/pkg/langdetect"
)

// detectLimit caps the bytes read to detect the language of a file
// without an extension.
const detectLimit = 64 << 10

// Discover finds the C# sources named by opts.Paths, resolved against
// opts.WorkingDir. Directories are walked recursively; hidden, vendored
// and ignored directories are pruned, and directory symlinks are not
// followed. The result is a sorted list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	ignore, err := fsutil.CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("ignore patterns: %w", err)
	}

	d := &discovery{
		ctx:        ctx,
		workDir:    workDir,
		extensions: make(map[string]struct{}),
		ignore:     ignore,
		detect:     opts.DetectLanguage,
		seen:       make(map[string]struct{}),
	}
	for _, ext := range opts.effectiveExtensions() {
		d.extensions[strings.ToLower(ext)] = struct{}{}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(input); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type discovery struct {
	ctx        context.Context
	workDir    string
	extensions map[string]struct{}
	ignore     *fsutil.GlobSet
	detect     bool

	seen  map[string]struct{}
	files []string
}

// add resolves one user path. Named files only have to pass the
// extension and ignore checks; hidden and vendored names are pruned
// during walks alone.
func (d *discovery) add(input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(d.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return d.walk(abs)
	}
	if d.wants(abs) {
		d.keep(abs)
	}
	return nil
}

func (d *discovery) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if d.prune(path, path == root, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				return nil //nolint:nilerr // broken links and directory links are skipped
			}
		}
		if d.wants(path) {
			d.keep(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// prune reports whether a directory is left out. The walk root is only
// subject to the ignore patterns.
func (d *discovery) prune(path string, isRoot bool, name string) bool {
	rel := d.rel(path)
	if d.ignore.Match(rel, true) {
		return true
	}
	if isRoot {
		return false
	}
	return strings.HasPrefix(name, ".") || langdetect.Skip(filepath.ToSlash(rel)+"/", nil)
}

// wants reports whether a file is analyzed: it is not ignored and either
// carries a configured extension or, with detection on, has no extension
// and reads as C#.
func (d *discovery) wants(path string) bool {
	if d.ignore.Match(d.rel(path), false) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := d.extensions[ext]; ok {
		return true
	}
	return d.detect && ext == "" && detectCSharp(path)
}

func (d *discovery) keep(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discovery) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// detectCSharp reads the head of an extension-less file and reports
// whether it looks like C#.
func detectCSharp(path string) bool {
	content, _, err := fsutil.ReadFile(context.Background(), path, fsutil.DefaultMaxFileSize)
	if err != nil {
		return false
	}
	if len(content) > detectLimit {
		content = content[:detectLimit]
	}
	return langdetect.IsCSharp(content)
}
