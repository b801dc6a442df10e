package cripple

import (
	"errors"
	"testing"
)

func leaf(t TokenType, literal string) *Node {
	return &Node{Token: Token{Type: t, Literal: literal}}
}

func node(t TokenType, literal string, children ...*Node) *Node {
	return &Node{Token: Token{Type: t, Literal: literal}, Children: children}
}

func ident(name string) *Node { return leaf(IDENT, name) }

func closeExpr() *Node { return leaf(RPAREN, ")") }

func parseString(t *testing.T, input string) ([]*Node, *Parser) {
	t.Helper()
	p := NewParser(Tokenize(input), WithErrorHook(func(d Diagnostic) {
		t.Errorf("unexpected fatal error: %v", d)
	}))
	forest, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() returned error: %v", err)
	}
	return forest, p
}

func checkForest(t *testing.T, got, want []*Node) {
	t.Helper()
	if !EqualForest(got, want) {
		t.Fatalf("forest mismatch.\nGot:\n%s\nWant:\n%s", ForestString(got), ForestString(want))
	}
}

func TestParseProgram(t *testing.T) {
	input := `
main {
    var x = "hi";
    print x;
}
`
	forest, p := parseString(t, input)
	checkForest(t, forest, []*Node{
		node(MAIN, "main",
			node(VAR, "var", ident("x"), leaf(ASSIGN, "="), leaf(STRING, "hi")),
			node(PRINT, "print", ident("x")),
		),
	})
	if p.Pos() != 11 {
		t.Errorf("cursor should be past the last token. expected=11, got=%d", p.Pos())
	}
	if len(p.Diagnostics()) != 0 {
		t.Errorf("expected no warnings, got %v", p.Diagnostics())
	}
}

func TestParseMainMissingBrace(t *testing.T) {
	tests := []struct {
		input   string
		message string
		args    []string
		index   int
	}{
		{`main print "x";`, "expected '{' after main, got print", []string{"main", "print"}, 1},
		{`main`, "expected '{' after main, got end of input", nil, 1},
		{`main { for x }`, "expected '{' after for, got x", []string{"for", "x"}, 3},
	}

	for i, tt := range tests {
		var hooked []Diagnostic
		p := NewParser(Tokenize(tt.input), WithErrorHook(func(d Diagnostic) {
			hooked = append(hooked, d)
		}))
		forest, err := p.ParseProgram()
		if forest != nil {
			t.Errorf("tests[%d] - expected nil forest on fatal error, got %s", i, ForestString(forest))
		}
		var d Diagnostic
		if !errors.As(err, &d) {
			t.Fatalf("tests[%d] - expected Diagnostic error, got %T: %v", i, err, err)
		}
		if !d.IsFatal() || d.Type != ErrMissingBlockOpen {
			t.Errorf("tests[%d] - unexpected diagnostic: %+v", i, d)
		}
		if d.Message != tt.message {
			t.Errorf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.message, d.Message)
		}
		if d.Index != tt.index {
			t.Errorf("tests[%d] - index wrong. expected=%d, got=%d", i, tt.index, d.Index)
		}
		if len(d.Args) != len(tt.args) {
			t.Errorf("tests[%d] - args wrong. expected=%v, got=%v", i, tt.args, d.Args)
		}
		if len(hooked) != 1 || hooked[0].Message != d.Message {
			t.Errorf("tests[%d] - hook should see the fatal error exactly once, got %v", i, hooked)
		}
	}
}

func TestParseFatalPosition(t *testing.T) {
	p := NewParser(Tokenize("main\n  print;"), WithErrorHook(nil))
	_, err := p.ParseProgram()
	var d Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("expected Diagnostic, got %v", err)
	}
	if d.Line != 2 || d.Column != 3 {
		t.Errorf("expected error at the offending token 2:3, got %d:%d", d.Line, d.Column)
	}
	if d.Error() != "line 2:3: expected '{' after main, got print" {
		t.Errorf("unexpected Error(): %q", d.Error())
	}
}

func TestParseIf(t *testing.T) {
	tests := []struct {
		input    string
		expected *Node
	}{
		{
			`if (a == b) { print a; }`,
			node(IF, "if",
				node(LPAREN, "(", ident("a"), leaf(EQ, "=="), ident("b")),
				node(RESULT, "", node(PRINT, "print", ident("a"))),
				closeExpr(),
			),
		},
		{
			`if ( a equals b ) { print "yes" ; }`,
			node(IF, "if",
				node(LPAREN, "(", ident("a"), leaf(EQUALS, "equals"), ident("b")),
				node(RESULT, "", node(PRINT, "print", leaf(STRING, "yes"))),
				closeExpr(),
			),
		},
	}

	for i, tt := range tests {
		forest, _ := parseString(t, tt.input)
		if len(forest) != 1 || !forest[0].Equal(tt.expected) {
			t.Fatalf("tests[%d] - forest mismatch.\nGot:\n%s\nWant:\n%s", i, ForestString(forest), tt.expected)
		}
		if n := len(forest[0].Children); n != 3 {
			t.Fatalf("tests[%d] - if node should have 3 children, got %d", i, n)
		}
		if forest[0].Children[1].Token.String() != "result" {
			t.Errorf("tests[%d] - body wrapper should print as result, got %q", i, forest[0].Children[1].Token.String())
		}
	}
}

func TestParseNestedIf(t *testing.T) {
	input := `
main {
    if (x) {
        if (y) { print z; }
    }
}
`
	forest, p := parseString(t, input)
	inner := node(IF, "if",
		node(LPAREN, "(", ident("y")),
		node(RESULT, "", node(PRINT, "print", ident("z"))),
		closeExpr(),
	)
	checkForest(t, forest, []*Node{
		node(MAIN, "main",
			node(IF, "if",
				node(LPAREN, "(", ident("x")),
				node(RESULT, "", inner),
				closeExpr(),
			),
		),
	})
	if len(p.Diagnostics()) != 0 {
		t.Errorf("expected no warnings, got %v", p.Diagnostics())
	}
}

func TestParseFunc(t *testing.T) {
	forest, _ := parseString(t, `func add(a, b) { return a; } print add;`)
	checkForest(t, forest, []*Node{
		node(FUNC, "func",
			ident("add"),
			node(LPAREN, "(", ident("a"), leaf(COMMA, ","), ident("b")),
			node(RESULT, "", leaf(RETURN, "return"), ident("a"), leaf(SEMICOLON, ";")),
		),
		node(PRINT, "print", ident("add")),
	})
}

func TestParseFuncSemicolon(t *testing.T) {
	forest, p := parseString(t, `func f; print x;`)
	checkForest(t, forest, []*Node{
		node(FUNC, "func", ident("f")),
		node(PRINT, "print", ident("x")),
	})
	if p.Pos() != 6 {
		t.Errorf("expected cursor at 6, got %d", p.Pos())
	}
}

func TestParseBlockParen(t *testing.T) {
	forest, _ := parseString(t, `(a b) print x;`)
	checkForest(t, forest, []*Node{
		node(LPAREN, "(", ident("a"), ident("b")),
		closeExpr(),
		node(PRINT, "print", ident("x")),
	})
}

func TestParseFlatKeepsParens(t *testing.T) {
	forest, _ := parseString(t, `print (a) "b"; var y = (z);`)
	checkForest(t, forest, []*Node{
		node(PRINT, "print", leaf(LPAREN, "("), ident("a"), leaf(RPAREN, ")"), leaf(STRING, "b")),
		node(VAR, "var", ident("y"), leaf(ASSIGN, "="), leaf(LPAREN, "("), ident("z"), leaf(RPAREN, ")")),
	})
}

func TestParseLeaves(t *testing.T) {
	forest, _ := parseString(t, `x y "z" , =`)
	checkForest(t, forest, []*Node{
		ident("x"), ident("y"), leaf(STRING, "z"), leaf(COMMA, ","), leaf(ASSIGN, "="),
	})
	for i, n := range forest {
		if !n.IsLeaf() {
			t.Errorf("tests[%d] - expected leaf, got %s", i, n)
		}
	}
}

func TestParseFor(t *testing.T) {
	forest, _ := parseString(t, `for { print i; } main { }`)
	checkForest(t, forest, []*Node{
		node(FOR, "for", node(PRINT, "print", ident("i"))),
		node(MAIN, "main"),
	})
}

func TestParseWarnings(t *testing.T) {
	tests := []struct {
		input    string
		want     []*Node
		warnType ErrorType
		pos      int
	}{
		{`print x`, []*Node{node(PRINT, "print", ident("x"))}, ErrMissingTerminator, 2},
		{`main { print a;`, []*Node{node(MAIN, "main", node(PRINT, "print", ident("a")))}, ErrMissingTerminator, 5},
		{`if (a) { print a;`, []*Node{node(IF, "if", node(LPAREN, "(", ident("a")), node(RESULT, "", node(PRINT, "print", ident("a"))))}, ErrMissingTerminator, 8},
		{`print a; } print b;`, []*Node{node(PRINT, "print", ident("a"))}, ErrStrayClose, 3},
		{`a ) b`, []*Node{ident("a")}, ErrStrayClose, 2},
	}

	for i, tt := range tests {
		forest, p := parseString(t, tt.input)
		if !EqualForest(forest, tt.want) {
			t.Errorf("tests[%d] - forest mismatch.\nGot:\n%s\nWant:\n%s", i, ForestString(forest), ForestString(tt.want))
		}
		diags := p.Diagnostics()
		if len(diags) != 1 {
			t.Fatalf("tests[%d] - expected 1 warning, got %v", i, diags)
		}
		if diags[0].Type != tt.warnType || diags[0].Level != LevelWarning {
			t.Errorf("tests[%d] - unexpected warning: %+v", i, diags[0])
		}
		if p.Pos() != tt.pos {
			t.Errorf("tests[%d] - cursor wrong. expected=%d, got=%d", i, tt.pos, p.Pos())
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	tokens := Tokenize(`main { var a = "1"; if (a) { print a; } (a) }`)
	first, err := Parse(tokens, WithErrorHook(nil))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Parse(tokens, WithErrorHook(nil))
		if err != nil {
			t.Fatalf("Parse() returned error: %v", err)
		}
		checkForest(t, again, first)
	}
}

func TestParserReset(t *testing.T) {
	p := NewParser(Tokenize(`print x`), WithErrorHook(nil))
	if _, err := p.ParseProgram(); err != nil {
		t.Fatal(err)
	}
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("expected 1 warning before reset, got %d", len(p.Diagnostics()))
	}

	p.Reset(Tokenize(`print y;`))
	if p.Pos() != 0 || len(p.Diagnostics()) != 0 {
		t.Fatalf("Reset should clear cursor and warnings, got pos=%d diags=%v", p.Pos(), p.Diagnostics())
	}
	forest, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	checkForest(t, forest, []*Node{node(PRINT, "print", ident("y"))})
}

func TestSentinelPosition(t *testing.T) {
	forest, _ := parseString(t, "if (a) {\n}")
	closing := forest[0].Children[len(forest[0].Children)-1]
	if closing.Token.Type != RPAREN || closing.Token.Line != 2 || closing.Token.Column != 1 {
		t.Errorf("sentinel should sit at the closing brace 2:1, got %#v", closing.Token)
	}
}
