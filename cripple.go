package cripple

import (
	"bytes"
	"fmt"
)

// Option configures the one-call front end (ParseSource, Lint, ParseFile).
type Option func(*frontEnd)

type frontEnd struct {
	lexer     []LexerOption
	parser    []ParserOption
	extension string
}

func WithLexer(opts ...LexerOption) Option {
	return func(f *frontEnd) {
		f.lexer = append(f.lexer, opts...)
	}
}

func WithParser(opts ...ParserOption) Option {
	return func(f *frontEnd) {
		f.parser = append(f.parser, opts...)
	}
}

func newFrontEnd(opts []Option) *frontEnd {
	f := &frontEnd{extension: DefaultExtension}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Tokenize runs the lexer over src.
func Tokenize(src string, opts ...LexerOption) []Token {
	return NewLexer(StringToBytes(src), opts...).Tokenize()
}

// Parse builds the AST forest from an already lexed token sequence.
func Parse(tokens []Token, opts ...ParserOption) ([]*Node, error) {
	p := getParser(tokens, opts)
	defer putParser(p)
	return p.ParseProgram()
}

// ParseSource lexes and parses data in one step.
func ParseSource(data []byte, opts ...Option) ([]*Node, error) {
	f := newFrontEnd(opts)
	tokens := NewLexer(data, f.lexer...).Tokenize()
	return Parse(tokens, f.parser...)
}

// Lint parses data and runs the structural checks that the parser itself
// leaves to later passes. Warnings from the lexer and parser are included.
// On a fatal parse error the forest is nil and the fatal diagnostic is the
// last entry.
func Lint(data []byte, opts ...Option) ([]*Node, []Diagnostic) {
	f := newFrontEnd(opts)
	l := NewLexer(data, f.lexer...)
	tokens := l.Tokenize()
	all := append([]Diagnostic(nil), l.Diagnostics()...)

	p := getParser(tokens, append([]ParserOption{WithErrorHook(nil)}, f.parser...))
	defer putParser(p)
	forest, err := p.ParseProgram()
	all = append(all, p.Diagnostics()...)
	if err != nil {
		d, ok := err.(Diagnostic)
		if !ok {
			d = Diagnostic{Message: err.Error(), Level: LevelFatal}
		}
		return nil, append(all, d)
	}

	analyzer := &astAnalyzer{
		errors:   all,
		declared: make(map[string]*Node),
		used:     make(map[string]bool),
	}
	analyzer.Analyze(forest)
	return forest, analyzer.errors
}

// Format renders forest with opts.
func Format(forest []*Node, opts FormatOptions) []byte {
	var out bytes.Buffer
	FormatForest(&out, forest, opts)
	return out.Bytes()
}

type astAnalyzer struct {
	errors   []Diagnostic
	order    []string
	declared map[string]*Node
	used     map[string]bool
	params   []map[string]bool // one set per enclosing func
}

func (a *astAnalyzer) Analyze(forest []*Node) {
	// First pass: collect declared variables.
	for _, n := range forest {
		Walk(n, a.collect)
	}

	// Second pass: check statements and record references.
	for _, n := range forest {
		a.check(n)
	}

	// Post-pass: check for unused variables.
	for _, name := range a.order {
		if a.used[name] {
			continue
		}
		tok := a.declared[name].Children[0].Token
		a.errors = append(a.errors, Diagnostic{
			Line:    tok.Line,
			Column:  tok.Column,
			Index:   -1,
			Message: fmt.Sprintf("variable %q is declared but not used", name),
			Level:   LevelLint,
			Type:    ErrUnusedVariable,
			Args:    []string{name},
		})
	}
}

func (a *astAnalyzer) collect(n *Node, _ int) bool {
	if n.Token.Type != VAR || len(n.Children) == 0 || n.Children[0].Token.Type != IDENT {
		return true
	}
	name := n.Children[0].Token.Literal
	if _, ok := a.declared[name]; !ok {
		a.order = append(a.order, name)
	}
	a.declared[name] = n
	return false
}

func (a *astAnalyzer) check(n *Node) {
	switch n.Token.Type {
	case VAR:
		if !isVarTriple(n) {
			a.lint(n.Token, ErrVarArity, fmt.Sprintf("var declaration must have the form 'var name = value', got %d parts", len(n.Children)))
		}
		// The declared name is not a reference.
		for i, c := range n.Children {
			if i > 0 {
				a.check(c)
			}
		}
		return
	case IF:
		if len(n.Children) == 0 || n.Children[0].Token.Type != LPAREN || len(n.Children[0].Children) == 0 {
			a.lint(n.Token, ErrEmptyCondition, "if statement has no condition")
		}
	case FUNC:
		a.params = append(a.params, funcParams(n))
		defer func() { a.params = a.params[:len(a.params)-1] }()
		// The function name is a declaration, not a reference.
		for i, c := range n.Children {
			if i == 0 && c.Token.Type == IDENT {
				continue
			}
			a.check(c)
		}
		return
	case PRINT:
		for _, c := range n.Children {
			if c.Token.Type == IDENT {
				if !a.isDeclared(c.Token.Literal) {
					a.lint(c.Token, ErrUndefinedReference, fmt.Sprintf("%q is not declared", c.Token.Literal))
				}
			}
		}
	case IDENT:
		a.used[n.Token.Literal] = true
	}
	for _, c := range n.Children {
		a.check(c)
	}
}

func (a *astAnalyzer) isDeclared(name string) bool {
	if _, ok := a.declared[name]; ok {
		return true
	}
	for _, scope := range a.params {
		if scope[name] {
			return true
		}
	}
	return false
}

// funcParams returns the identifiers of the first parenthesized group of a
// func node.
func funcParams(n *Node) map[string]bool {
	params := make(map[string]bool)
	for _, c := range n.Children {
		if c.Token.Type != LPAREN {
			continue
		}
		for _, p := range c.Children {
			if p.Token.Type == IDENT {
				params[p.Token.Literal] = true
			}
		}
		break
	}
	return params
}

func (a *astAnalyzer) lint(tok Token, typ ErrorType, msg string) {
	a.errors = append(a.errors, Diagnostic{
		Line:    tok.Line,
		Column:  tok.Column,
		Index:   -1,
		Message: msg,
		Level:   LevelLint,
		Type:    typ,
	})
}

func isVarTriple(n *Node) bool {
	if len(n.Children) != 3 {
		return false
	}
	name, op, value := n.Children[0].Token, n.Children[1].Token, n.Children[2].Token
	return name.Type == IDENT && op.Type == ASSIGN && (value.Type == IDENT || value.Type.IsLiteral())
}
