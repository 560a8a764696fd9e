package treesitter_test

import (
	"context"
	"os"
	"testing"

	"github.com/yaklabco/syntree/pkg/parser/treesitter"
	"github.com/yaklabco/syntree/pkg/source"
)

func BenchmarkParse(b *testing.B) {
	data, err := os.ReadFile("../csharp/testdata/sample.cs")
	if err != nil {
		b.Fatalf("read sample: %v", err)
	}
	src, err := source.Load(data)
	if err != nil {
		b.Fatalf("load sample: %v", err)
	}
	parser := treesitter.New()

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(context.Background(), "sample.cs", src); err != nil {
			b.Fatal(err)
		}
	}
}
