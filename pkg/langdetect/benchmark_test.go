package langdetect

import (
	"testing"
)

func BenchmarkDetectCSharp(b *testing.B) {
	code := []byte(`using System;

namespace Demo
{
    class Program
    {
        static void Main(string[] args)
        {
            Console.WriteLine("Hello, World!");
        }
    }
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}

func BenchmarkDetectClassifier(b *testing.B) {
	code := []byte(`public final class Greeter {
    private final String name;

    public Greeter(String name) {
        this.name = name;
    }
}`)
	b.ResetTimer()
	for range b.N {
		Detect(code)
	}
}
