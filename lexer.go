package cripple

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// byteSource reads characters from an in-memory input without copying it.
type byteSource struct {
	input   []byte
	pos     int
	invalid bool
}

func (s *byteSource) readRune() (rune, bool) {
	if s.pos >= len(s.input) {
		return 0, false
	}
	r, size := utf8.DecodeRune(s.input[s.pos:])
	s.invalid = r == utf8.RuneError && size == 1
	s.pos += size
	return r, true
}

func (s *byteSource) invalidByte() (byte, bool) {
	if !s.invalid {
		return 0, false
	}
	return s.input[s.pos-1], true
}

func (s *byteSource) peekRune() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(s.input[s.pos:])
	return r
}

type LexerOption func(*lexerOptions)

type lexerOptions struct {
	numericLiterals bool
}

// WithNumericLiterals enables classification of numeric-looking words into
// the INT/UINT/BIGINT/UBIGINT/FLOAT/DOUBLE family. When disabled (the
// default) such words are emitted as IDENT and left to later passes.
func WithNumericLiterals(enabled bool) LexerOption {
	return func(o *lexerOptions) {
		o.numericLiterals = enabled
	}
}

// Lexer turns source text into a flat token sequence in one left-to-right
// pass. It never fails; malformed input degrades to best-effort tokens.
type Lexer struct {
	src  source
	opts lexerOptions

	ch     rune
	line   int
	column int

	nextLine   int
	nextColumn int

	inString    bool
	pending     strings.Builder
	pendingLine int
	pendingCol  int

	tokens      []Token
	diagnostics []Diagnostic
}

func NewLexer(input []byte, opts ...LexerOption) *Lexer {
	return newLexer(&byteSource{input: input}, opts)
}

func newLexer(src source, opts []LexerOption) *Lexer {
	l := &Lexer{src: src, nextLine: 1, nextColumn: 1}
	for _, opt := range opts {
		opt(&l.opts)
	}
	return l
}

// Diagnostics returns the warnings recorded while tokenizing.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diagnostics
}

func (l *Lexer) readChar() bool {
	r, ok := l.src.readRune()
	if !ok {
		l.ch = 0
		return false
	}
	l.ch = r
	l.line, l.column = l.nextLine, l.nextColumn
	if r == '\n' {
		l.nextLine++
		l.nextColumn = 1
	} else {
		l.nextColumn++
	}
	return true
}

// Tokenize scans the whole input and returns the token sequence.
func (l *Lexer) Tokenize() []Token {
	var strLine, strCol int
	for l.readChar() {
		c := l.ch
		if l.inString {
			switch {
			case c == '\\' && l.src.peekRune() == '"':
				l.readChar()
				l.pending.WriteRune('"')
			case c == '"':
				l.emit(STRING, l.pending.String(), strLine, strCol)
				l.pending.Reset()
				l.inString = false
			default:
				l.writeChar(c)
			}
			continue
		}

		switch c {
		case '"':
			l.flush()
			l.inString = true
			strLine, strCol = l.line, l.column
		case ';':
			l.flushAndEmit(SEMICOLON)
		case '{':
			l.flushAndEmit(LBRACE)
		case '}':
			l.flushAndEmit(RBRACE)
		case '(':
			l.flushAndEmit(LPAREN)
		case ')':
			l.flushAndEmit(RPAREN)
		case ',':
			l.flushAndEmit(COMMA)
		case '=':
			l.flush()
			line, col := l.line, l.column
			if l.src.peekRune() == '=' {
				l.readChar()
				l.emit(EQ, "==", line, col)
			} else {
				l.emit(ASSIGN, "=", line, col)
			}
		default:
			if unicode.IsSpace(c) {
				l.flush()
				continue
			}
			if l.pending.Len() == 0 {
				l.pendingLine, l.pendingCol = l.line, l.column
			}
			l.writeChar(c)
		}
	}

	if l.inString {
		l.diagnostics = append(l.diagnostics, Diagnostic{
			Line:    strLine,
			Column:  strCol,
			Index:   len(l.tokens),
			Message: "unterminated string literal",
			Level:   LevelWarning,
			Type:    ErrUnterminatedString,
		})
		l.emit(STRING, l.pending.String(), strLine, strCol)
		l.pending.Reset()
		l.inString = false
	}
	l.flush()
	return l.tokens
}

// writeChar appends c to the pending buffer. Bytes that are not valid UTF-8
// are copied as they are.
func (l *Lexer) writeChar(c rune) {
	if b, ok := l.src.invalidByte(); ok {
		l.pending.WriteByte(b)
		return
	}
	l.pending.WriteRune(c)
}

func (l *Lexer) flushAndEmit(t TokenType) {
	l.flush()
	l.emit(t, string(t), l.line, l.column)
}

// flush classifies the pending word. An empty buffer produces nothing.
func (l *Lexer) flush() {
	if l.pending.Len() == 0 {
		return
	}
	word := l.pending.String()
	l.pending.Reset()
	l.emit(l.classify(word), word, l.pendingLine, l.pendingCol)
}

func (l *Lexer) classify(word string) TokenType {
	if t := LookupIdentifier(word); t != IDENT {
		return t
	}
	if l.opts.numericLiterals && looksNumeric(word) {
		return classifyNumber(word)
	}
	return IDENT
}

func (l *Lexer) emit(t TokenType, literal string, line, col int) {
	l.tokens = append(l.tokens, Token{Type: t, Literal: literal, Line: line, Column: col})
}

// looksNumeric keeps words such as "inf" or "NaN" out of the float parsers.
// Digit separators are rejected: ParseFloat accepts them, ParseInt does not.
func looksNumeric(word string) bool {
	if strings.ContainsRune(word, '_') {
		return false
	}
	s := word
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// classifyNumber tries the narrowest representation first:
// int32, uint32, int64, uint64, float32, float64.
func classifyNumber(word string) TokenType {
	if _, err := strconv.ParseInt(word, 10, 32); err == nil {
		return INT
	}
	if _, err := strconv.ParseUint(word, 10, 32); err == nil {
		return UINT
	}
	if _, err := strconv.ParseInt(word, 10, 64); err == nil {
		return BIGINT
	}
	if _, err := strconv.ParseUint(word, 10, 64); err == nil {
		return UBIGINT
	}
	if _, err := strconv.ParseFloat(word, 32); err == nil {
		return FLOAT
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return DOUBLE
	}
	return IDENT
}
