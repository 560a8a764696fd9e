package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/syntree/pkg/runner"
)

// writeFiles creates files under dir, keyed by slash-separated path.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("Rel(%s): %v", f, err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	layout := map[string]string{
		"Program.cs":              "class Program { }",
		"src/Models/Item.cs":      "class Item { }",
		"src/Models/Item.g.cs":    "class ItemGen { }",
		"src/notes.txt":           "notes",
		"docs/guide.md":           "# Guide",
		"app/Generated.cs":        "class Generated { }",
		".hidden/Secret.cs":       "class Secret { }",
		"src/.Local.cs":           "class Local { }",
		"scripts/run":             "using System;\nnamespace Tools;\nclass Run { }\n",
		"scripts/readme":          "just some words here",
		"node_modules/pkg/Dep.cs": "class Dep { }",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{"Program.cs", "app/Generated.cs", "src/Models/Item.cs", "src/Models/Item.g.cs"},
		},
		{
			name: "markdown extensions",
			opts: runner.Options{Extensions: append(runner.DefaultExtensions(), runner.MarkdownExtensions()...)},
			want: []string{"Program.cs", "app/Generated.cs", "docs/guide.md", "src/Models/Item.cs", "src/Models/Item.g.cs"},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"app/**", "*.g.cs"}},
			want: []string{"Program.cs", "src/Models/Item.cs"},
		},
		{
			name: "directory pattern at any depth",
			opts: runner.Options{ExcludeGlobs: []string{"**/Models"}},
			want: []string{"Program.cs", "app/Generated.cs"},
		},
		{
			name: "top-level match of a double-star pattern",
			opts: runner.Options{ExcludeGlobs: []string{"**/app"}},
			want: []string{"Program.cs", "src/Models/Item.cs", "src/Models/Item.g.cs"},
		},
		{
			name: "ignored file named explicitly",
			opts: runner.Options{Paths: []string{"Program.cs", "src/Models/Item.g.cs"}, ExcludeGlobs: []string{"*.g.cs"}},
			want: []string{"Program.cs"},
		},
		{
			name: "explicit paths are deduplicated",
			opts: runner.Options{Paths: []string{"src", "src/Models/Item.cs", "Program.cs"}},
			want: []string{"Program.cs", "src/Models/Item.cs", "src/Models/Item.g.cs"},
		},
		{
			name: "language detection",
			opts: runner.Options{Paths: []string{"scripts"}, DetectLanguage: true},
			want: []string{"scripts/run"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, layout)

			opts := testCase.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got := relative(t, dir, files); !slices.Equal(got, testCase.want) {
				t.Errorf("Discover() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for non-existent path")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"A.cs": "class A { }"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Error("Discover() with a cancelled context should fail")
	}
}

func TestDiscover_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"["},
	})
	if err == nil {
		t.Fatal("expected error for a malformed ignore pattern")
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"real/Doc.cs": "class Doc { }"})

	external := t.TempDir()
	writeFiles(t, external, map[string]string{"External.cs": "class External { }"})

	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(external, "External.cs"), filepath.Join(dir, "Alias.cs")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone.cs"), filepath.Join(dir, "Broken.cs")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	// File links are analyzed; directory links and broken links are not.
	want := []string{"Alias.cs", "real/Doc.cs"}
	if got := relative(t, dir, files); !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !slices.Equal(got, []string{".cs"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
	if got := runner.MarkdownExtensions(); !slices.Equal(got, []string{".md", ".markdown"}) {
		t.Errorf("MarkdownExtensions() = %v", got)
	}
}
