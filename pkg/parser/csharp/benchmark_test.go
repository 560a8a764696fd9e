package csharp_test

import (
	"context"
	"os"
	"testing"

	"github.com/yaklabco/syntree/pkg/parser/csharp"
	"github.com/yaklabco/syntree/pkg/source"
)

func BenchmarkParse(b *testing.B) {
	data, err := os.ReadFile("testdata/sample.cs")
	if err != nil {
		b.Fatalf("read sample: %v", err)
	}
	src, err := source.Load(data)
	if err != nil {
		b.Fatalf("load sample: %v", err)
	}
	parser := csharp.New()

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(context.Background(), "sample.cs", src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLex(b *testing.B) {
	data, err := os.ReadFile("testdata/sample.cs")
	if err != nil {
		b.Fatalf("read sample: %v", err)
	}
	content := string(data)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		csharp.Lex(content)
	}
}
