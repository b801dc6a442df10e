package cripple

import "fmt"

type ParserOption func(*Parser)

// WithErrorHook installs the hook that receives fatal diagnostics.
// Passing nil disables reporting; the error is still returned.
func WithErrorHook(hook ErrorHook) ParserOption {
	return func(p *Parser) {
		p.hook = hook
	}
}

// Parser 是递归下降解析器. 所有语句处理函数共享同一个游标 pos,
// 任一处理函数返回后, pos 恰好指向它消费的最后一个 token 之后.
type Parser struct {
	tokens      []Token
	pos         int
	depth       int
	hook        ErrorHook
	diagnostics []Diagnostic
}

func NewParser(tokens []Token, opts ...ParserOption) *Parser {
	p := &Parser{tokens: tokens, hook: StderrHook}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset re-initializes the parser with a new token sequence for pool reuse.
func (p *Parser) Reset(tokens []Token) {
	p.tokens = tokens
	p.pos = 0
	p.depth = 0
	p.diagnostics = p.diagnostics[:0]
}

// Diagnostics returns the non-fatal warnings recorded during the last parse.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// Pos returns the cursor position.
func (p *Parser) Pos() int {
	return p.pos
}

// ParseProgram parses the whole token sequence into a forest. The only
// error it returns is a fatal Diagnostic; in that case no forest is
// produced.
func (p *Parser) ParseProgram() ([]*Node, error) {
	forest, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return forest, nil
}

func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) curTokenIs(t TokenType) bool {
	return !p.atEnd() && p.tokens[p.pos].Type == t
}

// parseNested runs the dispatch loop one nesting level deeper.
func (p *Parser) parseNested() ([]*Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	return p.parseBlock()
}

func (p *Parser) parseBlock() ([]*Node, error) {
	var nodes []*Node
	for !p.atEnd() {
		tok := p.cur()
		switch tok.Type {
		case MAIN, FOR:
			node, err := p.parseMain()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case PRINT, VAR:
			nodes = append(nodes, p.parseFlat())
		case IF:
			node, err := p.parseCompound(true)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case FUNC:
			node, err := p.parseCompound(false)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case RBRACE:
			// Left for the caller to consume.
			if p.depth == 0 {
				p.strayClose(tok, p.pos)
			}
			return nodes, nil
		case LPAREN:
			p.pos++
			children, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes,
				&Node{Token: tok, Children: children},
				&Node{Token: p.sentinel()},
			)
		case RPAREN:
			p.pos++
			if p.depth == 0 {
				p.strayClose(tok, p.pos-1)
			}
			return nodes, nil
		default:
			nodes = append(nodes, newLeaf(tok))
			p.pos++
		}
	}
	return nodes, nil
}

// parseMain handles main and for: the keyword must be followed directly by
// a block.
func (p *Parser) parseMain() (*Node, error) {
	tag := p.cur()
	p.pos++
	if !p.curTokenIs(LBRACE) {
		return nil, p.fatal(tag)
	}
	p.pos++
	children, err := p.parseNested()
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(RBRACE) {
		p.pos++
	} else if p.atEnd() {
		p.warn(tag, ErrMissingTerminator, fmt.Sprintf("%s block is not closed before end of input", tag.String()))
	}
	return &Node{Token: tag, Children: children}, nil
}

// parseFlat handles print and var: every token up to the semicolon becomes a
// leaf child, parentheses included.
func (p *Parser) parseFlat() *Node {
	node := &Node{Token: p.cur()}
	p.pos++
	for !p.atEnd() {
		tok := p.cur()
		p.pos++
		if tok.Type == SEMICOLON {
			return node
		}
		node.Children = append(node.Children, newLeaf(tok))
	}
	p.warn(node.Token, ErrMissingTerminator, fmt.Sprintf("%s statement is missing ';'", node.Token.String()))
	return node
}

// parseCompound handles if and func. A parenthesized group becomes an
// open-expression child and a braced block a result child. The closing brace
// ends the statement; for if it is recorded as a trailing close-expression
// sentinel.
func (p *Parser) parseCompound(sentinelOnClose bool) (*Node, error) {
	node := &Node{Token: p.cur()}
	p.pos++
	for !p.atEnd() {
		tok := p.cur()
		switch tok.Type {
		case SEMICOLON:
			p.pos++
			return node, nil
		case LPAREN:
			p.pos++
			children, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, &Node{Token: tok, Children: children})
		case LBRACE:
			p.pos++
			children, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			result := Token{Type: RESULT, Line: tok.Line, Column: tok.Column}
			node.Children = append(node.Children, &Node{Token: result, Children: children})
		case RBRACE:
			p.pos++
			if sentinelOnClose {
				node.Children = append(node.Children, &Node{Token: p.sentinel()})
			}
			return node, nil
		default:
			node.Children = append(node.Children, newLeaf(tok))
			p.pos++
		}
	}
	p.warn(node.Token, ErrMissingTerminator, fmt.Sprintf("%s statement is not closed before end of input", node.Token.String()))
	return node, nil
}

// sentinel builds a close-expression marker positioned at the last
// consumed token.
func (p *Parser) sentinel() Token {
	tok := Token{Type: RPAREN, Literal: string(RPAREN)}
	if p.pos > 0 && p.pos <= len(p.tokens) {
		last := p.tokens[p.pos-1]
		tok.Line, tok.Column = last.Line, last.Column
	}
	return tok
}

func (p *Parser) fatal(tag Token) error {
	d := Diagnostic{
		Line:   tag.Line,
		Column: tag.Column,
		Index:  p.pos,
		Level:  LevelFatal,
		Type:   ErrMissingBlockOpen,
	}
	if p.atEnd() {
		d.Message = fmt.Sprintf("expected '{' after %s, got end of input", tag.String())
	} else {
		got := p.cur()
		d.Line, d.Column = got.Line, got.Column
		d.Message = fmt.Sprintf("expected '{' after %s, got %s", tag.String(), got)
		d.Args = []string{tag.String(), got.String()}
	}
	if p.hook != nil {
		p.hook(d)
	}
	return d
}

func (p *Parser) warn(tok Token, typ ErrorType, msg string) {
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Line:    tok.Line,
		Column:  tok.Column,
		Index:   p.pos,
		Message: msg,
		Level:   LevelWarning,
		Type:    typ,
	})
}

func (p *Parser) strayClose(tok Token, index int) {
	rest := len(p.tokens) - p.pos
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Line:    tok.Line,
		Column:  tok.Column,
		Index:   index,
		Message: fmt.Sprintf("unexpected %q at top level, %d remaining tokens ignored", tok.String(), rest),
		Level:   LevelWarning,
		Type:    ErrStrayClose,
		Args:    []string{tok.String()},
	})
}
