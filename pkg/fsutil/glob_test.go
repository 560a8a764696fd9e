package fsutil_test

import (
	"testing"

	"github.com/yaklabco/syntree/pkg/fsutil"
)

func TestGlobSet_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		rel      string
		dir      bool
		want     bool
	}{
		{name: "extension on base name", patterns: []string{"*.g.cs"}, rel: "src/Models/Item.g.cs", want: true},
		{name: "star stays in one segment", patterns: []string{"src/*.cs"}, rel: "src/Models/Item.cs", want: false},
		{name: "star in segment", patterns: []string{"src/*.cs"}, rel: "src/Item.cs", want: true},
		{name: "double star crosses segments", patterns: []string{"src/**/*.cs"}, rel: "src/a/b/Item.cs", want: true},
		{name: "directory prefix prunes itself", patterns: []string{"obj/**"}, rel: "obj", dir: true, want: true},
		{name: "directory prefix needs the directory flag", patterns: []string{"obj/**"}, rel: "obj", want: false},
		{name: "leading double star at top level", patterns: []string{"**/bin"}, rel: "bin", dir: true, want: true},
		{name: "leading double star nested", patterns: []string{"**/bin"}, rel: "tools/bin", dir: true, want: true},
		{name: "alternatives", patterns: []string{"*.{Designer,g}.cs"}, rel: "Form1.Designer.cs", want: true},
		{name: "no patterns", rel: "Program.cs", want: false},
		{name: "unrelated", patterns: []string{"docs/**"}, rel: "src/Program.cs", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set, err := fsutil.CompileGlobs(tt.patterns)
			if err != nil {
				t.Fatalf("CompileGlobs() error = %v", err)
			}
			if got := set.Match(tt.rel, tt.dir); got != tt.want {
				t.Errorf("Match(%q, %v) = %v, want %v", tt.rel, tt.dir, got, tt.want)
			}
		})
	}
}

func TestCompileGlobs(t *testing.T) {
	t.Parallel()

	set, err := fsutil.CompileGlobs([]string{"**/bin", "*.cs"})
	if err != nil {
		t.Fatalf("CompileGlobs() error = %v", err)
	}
	if got := set.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	if _, err := fsutil.CompileGlobs([]string{"["}); err == nil {
		t.Error("CompileGlobs() should reject an unclosed range")
	}

	var empty *fsutil.GlobSet
	if empty.Len() != 0 || empty.Match("Program.cs", false) {
		t.Error("a nil GlobSet matches nothing")
	}
}
