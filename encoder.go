package cripple

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// EncodeFormat selects how an Encoder serializes tokens and forests.
type EncodeFormat int

const (
	FormatTree EncodeFormat = iota
	FormatSExpr
	FormatJSON
	FormatYAML
)

func (f EncodeFormat) String() string {
	switch f {
	case FormatTree:
		return "tree"
	case FormatSExpr:
		return "sexpr"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (EncodeFormat, error) {
	switch strings.ToLower(s) {
	case "", "tree":
		return FormatTree, nil
	case "sexpr", "single-line":
		return FormatSExpr, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported format: %s (supported: tree, sexpr, json, yaml)", s)
	}
}

type EncoderOption func(*encoderOptions)

type encoderOptions struct {
	format    EncodeFormat
	text      FormatOptions
	positions bool
}

func WithFormat(f EncodeFormat) EncoderOption {
	return func(o *encoderOptions) {
		o.format = f
	}
}

func WithIndent(indent string) EncoderOption {
	return func(o *encoderOptions) {
		o.text.Indent = indent
	}
}

// WithColorizer decorates node labels in the text formats.
func WithColorizer(fn func(tok Token, label string) string) EncoderOption {
	return func(o *encoderOptions) {
		o.text.Colorize = fn
	}
}

// WithPositions includes line and column numbers in every encoded token.
func WithPositions() EncoderOption {
	return func(o *encoderOptions) {
		o.positions = true
	}
}

// Encoder writes tokens or forests to an output stream.
type Encoder struct {
	w    io.Writer
	opts encoderOptions
}

func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	enc := &Encoder{w: w}
	enc.opts.text = FormatOptions{Style: StyleDefault, Indent: DefaultIndent}
	for _, opt := range opts {
		opt(&enc.opts)
	}
	if enc.opts.format == FormatSExpr {
		enc.opts.text.Style = StyleSingleLine
	}
	return enc
}

// Marshal returns the encoding of forest.
func Marshal(forest []*Node, opts ...EncoderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(forest); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encodedNode struct {
	Type     TokenType      `json:"type" yaml:"type"`
	Literal  string         `json:"literal,omitempty" yaml:"literal,omitempty"`
	Line     int            `json:"line,omitzero" yaml:"line,omitempty"`
	Column   int            `json:"column,omitzero" yaml:"column,omitempty"`
	Children []*encodedNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func (enc *Encoder) encodeNode(n *Node) *encodedNode {
	out := &encodedNode{Type: n.Token.Type, Literal: n.Token.Literal}
	if enc.opts.positions {
		out.Line, out.Column = n.Token.Line, n.Token.Column
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, enc.encodeNode(c))
	}
	return out
}

// Encode writes forest in the configured format.
func (enc *Encoder) Encode(forest []*Node) error {
	switch enc.opts.format {
	case FormatJSON, FormatYAML:
		nodes := make([]*encodedNode, 0, len(forest))
		for _, n := range forest {
			nodes = append(nodes, enc.encodeNode(n))
		}
		return enc.encodeData(nodes)
	default:
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		FormatForest(buf, forest, enc.opts.text)
		_, err := enc.w.Write(buf.Bytes())
		return err
	}
}

// EncodeTokens writes a token sequence in the configured format. The text
// formats print one token per line.
func (enc *Encoder) EncodeTokens(tokens []Token) error {
	switch enc.opts.format {
	case FormatJSON, FormatYAML:
		out := make([]*encodedNode, 0, len(tokens))
		for _, t := range tokens {
			out = append(out, enc.encodeNode(&Node{Token: t}))
		}
		return enc.encodeData(out)
	default:
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		for _, t := range tokens {
			label := t.String()
			if fn := enc.opts.text.Colorize; fn != nil {
				label = fn(t, label)
			}
			if enc.opts.positions {
				fmt.Fprintf(buf, "%d:%d\t", t.Line, t.Column)
			}
			fmt.Fprintf(buf, "%-8s %s\n", t.Type, label)
		}
		_, err := enc.w.Write(buf.Bytes())
		return err
	}
}

// EncodeDiagnostics writes diagnostics as JSON or YAML. Text formats fall
// back to one Error() line per diagnostic.
func (enc *Encoder) EncodeDiagnostics(diags []Diagnostic) error {
	switch enc.opts.format {
	case FormatJSON, FormatYAML:
		if diags == nil {
			diags = []Diagnostic{}
		}
		return enc.encodeData(diags)
	default:
		for _, d := range diags {
			if _, err := fmt.Fprintf(enc.w, "[%s] %s\n", d.Level, d.Error()); err != nil {
				return err
			}
		}
		return nil
	}
}

func (enc *Encoder) encodeData(v any) error {
	if enc.opts.format == FormatYAML {
		ye := yaml.NewEncoder(enc.w)
		ye.SetIndent(2)
		if err := ye.Encode(v); err != nil {
			return fmt.Errorf("could not marshal yaml: %w", err)
		}
		return ye.Close()
	}
	indent := enc.opts.text.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	if err := json.MarshalWrite(enc.w, v, jsontext.Multiline(true), jsontext.WithIndent(indent)); err != nil {
		return fmt.Errorf("could not marshal json: %w", err)
	}
	_, err := io.WriteString(enc.w, "\n")
	return err
}
