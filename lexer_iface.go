package cripple

// source 是对字符输入进行抽象的接口.
// 基于字节切片的 byteSource 和基于流的 streamSource 都实现了此接口,
// 这使得词法分析器(Lexer)可以无差别地使用它们.
type source interface {
	// readRune returns the next character, or 0 and false at end of input.
	readRune() (rune, bool)
	// peekRune returns the following character without consuming it.
	peekRune() rune
	// invalidByte returns the raw byte behind the last readRune when it was
	// not valid UTF-8 and came back as utf8.RuneError.
	invalidByte() (byte, bool)
}
