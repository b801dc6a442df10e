package cripple

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// This file contains the stream-based character source.

// streamSource 是一个从 io.Reader 读取字符的输入源.
type streamSource struct {
	r   *bufio.Reader
	err error

	bad     byte
	invalid bool
}

// NewStreamLexer creates a lexer that reads its input from r instead of
// requiring the whole source in memory. Read errors other than io.EOF end
// the scan early and are reported by Err.
func NewStreamLexer(r io.Reader, opts ...LexerOption) *Lexer {
	return newLexer(&streamSource{r: bufio.NewReader(r)}, opts)
}

func (s *streamSource) readRune() (rune, bool) {
	if s.err != nil {
		return 0, false
	}
	r, size, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, false
	}
	s.invalid = r == utf8.RuneError && size == 1
	if s.invalid {
		// 重新读取原始字节
		_ = s.r.UnreadRune()
		s.bad, _ = s.r.ReadByte()
	}
	return r, true
}

func (s *streamSource) invalidByte() (byte, bool) {
	return s.bad, s.invalid
}

func (s *streamSource) peekRune() rune {
	if s.err != nil {
		return 0
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		return 0
	}
	_ = s.r.UnreadRune()
	return r
}

// Err returns the first non-EOF read error hit by a stream lexer.
func (l *Lexer) Err() error {
	s, ok := l.src.(*streamSource)
	if !ok || s.err == io.EOF {
		return nil
	}
	return s.err
}
