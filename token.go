package cripple

import (
	"fmt"
	"strconv"
)

type TokenType string

// Token 是词法分析的最小单元. 一旦生成便不可修改.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	IDENT   TokenType = "IDENT"
	STRING  TokenType = "STRING"
	INT     TokenType = "INT"
	UINT    TokenType = "UINT"
	BIGINT  TokenType = "BIGINT"
	UBIGINT TokenType = "UBIGINT"
	FLOAT   TokenType = "FLOAT"
	DOUBLE  TokenType = "DOUBLE"

	ASSIGN    TokenType = "="
	EQ        TokenType = "=="
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"

	PRINT   TokenType = "PRINT"
	FUNC    TokenType = "FUNC"
	MAIN    TokenType = "MAIN"
	VAR     TokenType = "VAR"
	IF      TokenType = "IF"
	FOR     TokenType = "FOR"
	AND     TokenType = "AND"
	OR      TokenType = "OR"
	EQUALS  TokenType = "EQUALS"
	RETURN  TokenType = "RETURN"
	THROUGH TokenType = "THROUGH"

	// RESULT never comes out of the lexer; the parser uses it to tag the
	// body wrapper of an if/func statement.
	RESULT TokenType = "RESULT"
)

var keywords = map[string]TokenType{
	"print":   PRINT,
	"func":    FUNC,
	"main":    MAIN,
	"var":     VAR,
	"if":      IF,
	"for":     FOR,
	"and":     AND,
	"or":      OR,
	"equals":  EQUALS,
	"return":  RETURN,
	"through": THROUGH,
}

// LookupIdentifier 检查 ident 是否是关键字. 匹配区分大小写.
func LookupIdentifier(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	switch t {
	case PRINT, FUNC, MAIN, VAR, IF, FOR, AND, OR, EQUALS, RETURN, THROUGH:
		return true
	}
	return false
}

// IsLiteral reports whether tokens of type t carry a literal payload.
func (t TokenType) IsLiteral() bool {
	switch t {
	case STRING, INT, UINT, BIGINT, UBIGINT, FLOAT, DOUBLE:
		return true
	}
	return false
}

// IsNumeric reports whether t belongs to the numeric literal family.
func (t TokenType) IsNumeric() bool {
	return t.IsLiteral() && t != STRING
}

// Equal reports structural equality. Positions are ignored.
func (t Token) Equal(o Token) bool {
	return t.Type == o.Type && t.Literal == o.Literal
}

// Value returns the typed payload of literal and identifier tokens, or nil
// for markers and keywords.
func (t Token) Value() any {
	switch t.Type {
	case STRING, IDENT:
		return t.Literal
	case INT:
		v, _ := strconv.ParseInt(t.Literal, 10, 32)
		return int32(v)
	case UINT:
		v, _ := strconv.ParseUint(t.Literal, 10, 32)
		return uint32(v)
	case BIGINT:
		v, _ := strconv.ParseInt(t.Literal, 10, 64)
		return v
	case UBIGINT:
		v, _ := strconv.ParseUint(t.Literal, 10, 64)
		return v
	case FLOAT:
		v, _ := strconv.ParseFloat(t.Literal, 32)
		return float32(v)
	case DOUBLE:
		v, _ := strconv.ParseFloat(t.Literal, 64)
		return v
	}
	return nil
}

// String renders the token the way the tree printer shows it.
func (t Token) String() string {
	switch t.Type {
	case STRING:
		return strconv.Quote(t.Literal)
	case RESULT:
		return "result"
	}
	if t.Literal != "" {
		return t.Literal
	}
	if t.Type.IsKeyword() {
		for word, typ := range keywords {
			if typ == t.Type {
				return word
			}
		}
	}
	return string(t.Type)
}

// GoString is used by %#v and in test failure output.
func (t Token) GoString() string {
	return fmt.Sprintf("Line:%d, Col:%d, Type:%s, Literal:`%s`", t.Line, t.Column, t.Type, t.Literal)
}
