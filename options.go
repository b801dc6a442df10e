package cripple

// OutputStyle defines the different layouts for rendering a forest.
type OutputStyle int

const (
	// StyleTree is the default style. Each node is printed on its own line,
	// children are indented one level below their parent.
	StyleTree OutputStyle = iota

	// StyleSingleLine renders every top-level node as an s-expression on
	// one line. Leaves are printed bare, inner nodes as "(tag children...)".
	StyleSingleLine
)

const (
	// StyleDefault is an alias for StyleTree.
	StyleDefault = StyleTree

	// DefaultIndent is the per-level indentation of StyleTree.
	DefaultIndent = "  "
)

// FormatOptions provides options for controlling the printer's output.
type FormatOptions struct {
	Style  OutputStyle
	Indent string // Per-level indentation for StyleTree.
	// Colorize, if set, decorates the label of each node. Used by the CLI
	// for terminal highlighting.
	Colorize func(tok Token, label string) string
}
