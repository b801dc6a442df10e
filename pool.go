package cripple

import (
	"bytes"
	"sync"
)

// Scratch pools. Nodes and tokens handed to callers are never pooled.
var (
	bufferPool = sync.Pool{New: func() interface{} { return &bytes.Buffer{} }}
	parserPool = sync.Pool{New: func() interface{} { return new(Parser) }}
)

func getParser(tokens []Token, opts []ParserOption) *Parser {
	p := parserPool.Get().(*Parser)
	p.Reset(tokens)
	p.hook = StderrHook
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// putParser returns p to the pool. Its diagnostics must have been copied out
// before this call.
func putParser(p *Parser) {
	p.tokens = nil
	p.hook = nil
	parserPool.Put(p)
}
