package cripple

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// Benchmark data - a small program using every statement form.
var benchmarkData, _ = os.ReadFile("testfile/example.cc")

// BenchmarkLexer measures the performance of tokenizing a source file.
func BenchmarkLexer(b *testing.B) {
	if benchmarkData == nil {
		b.Skip("Cannot read benchmark data file")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewLexer(benchmarkData).Tokenize()
	}
}

// BenchmarkStreamLexer measures tokenizing through the io.Reader path.
func BenchmarkStreamLexer(b *testing.B) {
	if benchmarkData == nil {
		b.Skip("Cannot read benchmark data file")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewStreamLexer(bytes.NewReader(benchmarkData)).Tokenize()
	}
}

// BenchmarkParser measures lexing plus parsing.
func BenchmarkParser(b *testing.B) {
	if benchmarkData == nil {
		b.Skip("Cannot read benchmark data file")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseSource(benchmarkData, WithParser(WithErrorHook(nil)))
	}
}

// BenchmarkLint measures the full front end with the analyzer.
func BenchmarkLint(b *testing.B) {
	if benchmarkData == nil {
		b.Skip("Cannot read benchmark data file")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Lint(benchmarkData)
	}
}

// BenchmarkEncode measures the tree printer and the JSON encoder.
func BenchmarkEncode(b *testing.B) {
	if benchmarkData == nil {
		b.Skip("Cannot read benchmark data file")
	}
	forest, err := ParseSource(benchmarkData, WithParser(WithErrorHook(nil)))
	if err != nil {
		b.Fatal(err)
	}
	b.Run("tree", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			NewEncoder(io.Discard).Encode(forest)
		}
	})
	b.Run("json", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			NewEncoder(io.Discard, WithFormat(FormatJSON)).Encode(forest)
		}
	})
}
