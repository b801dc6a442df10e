package cripple

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultExtension is the only source file extension accepted by ParseFile
// unless WithExtension says otherwise.
const DefaultExtension = ".cc"

// WithExtension changes the extension ParseFile requires.
func WithExtension(ext string) Option {
	return func(f *frontEnd) {
		f.extension = ext
	}
}

// CheckExtension reports whether path ends in ext.
func CheckExtension(path, ext string) bool {
	return ext != "" && filepath.Ext(path) == ext
}

// ParseFile validates the extension of path, reads it and parses it.
func ParseFile(path string, opts ...Option) ([]*Node, error) {
	f := newFrontEnd(opts)
	if !CheckExtension(path, f.extension) {
		return nil, fmt.Errorf("unknown file type %q, expecting %q files", filepath.Ext(path), f.extension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	return ParseSource(data, opts...)
}

// ParseReader 从 io.Reader 中读取源代码并解析.
// 它使用流式词法分析器, 不会一次性将整个输入读入内存.
func ParseReader(r io.Reader, opts ...Option) ([]*Node, error) {
	f := newFrontEnd(opts)
	l := NewStreamLexer(r, f.lexer...)
	tokens := l.Tokenize()
	if err := l.Err(); err != nil {
		return nil, fmt.Errorf("could not read source: %w", err)
	}
	return Parse(tokens, f.parser...)
}
