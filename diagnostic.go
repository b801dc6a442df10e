package cripple

import (
	"fmt"
	"io"
	"os"
)

// ProductTag prefixes every message written through LogError.
const ProductTag = "CRIPPLE CODE"

type ErrorLevel int

const (
	LevelWarning ErrorLevel = iota
	LevelLint
	LevelFatal
)

func (el ErrorLevel) String() string {
	switch el {
	case LevelWarning:
		return "WARNING"
	case LevelLint:
		return "LINT"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrMissingBlockOpen
	ErrUnterminatedString
	ErrMissingTerminator
	ErrStrayClose
	ErrVarArity
	ErrEmptyCondition
	ErrUnusedVariable
	ErrUndefinedReference
)

func (et ErrorType) String() string {
	switch et {
	case ErrMissingBlockOpen:
		return "missing-block-open"
	case ErrUnterminatedString:
		return "unterminated-string"
	case ErrMissingTerminator:
		return "missing-terminator"
	case ErrStrayClose:
		return "stray-close"
	case ErrVarArity:
		return "var-arity"
	case ErrEmptyCondition:
		return "empty-condition"
	case ErrUnusedVariable:
		return "unused-variable"
	case ErrUndefinedReference:
		return "undefined-reference"
	default:
		return "unknown"
	}
}

// Diagnostic 描述一个带位置信息的问题. Index 是触发问题的 token 下标.
type Diagnostic struct {
	Line    int        `json:"line" yaml:"line"`
	Column  int        `json:"column" yaml:"column"`
	Index   int        `json:"index" yaml:"index"`
	Message string     `json:"message" yaml:"message"`
	Level   ErrorLevel `json:"level" yaml:"level"`
	Type    ErrorType  `json:"type" yaml:"type"`
	Args    []string   `json:"args,omitempty" yaml:"args,omitempty"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d:%d: %s", d.Line, d.Column, d.Message)
}

// IsFatal reports whether d aborted the parse.
func (d Diagnostic) IsFatal() bool {
	return d.Level == LevelFatal
}

// ErrorHook receives fatal diagnostics as they happen.
type ErrorHook func(Diagnostic)

// LogError writes msg to w with the product tag.
func LogError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s: ERROR: %s\n", ProductTag, msg)
}

// StderrHook is the default error hook.
func StderrHook(d Diagnostic) {
	LogError(os.Stderr, d.Error())
}
