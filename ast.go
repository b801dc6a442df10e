package cripple

import "bytes"

// Node 是AST中的节点. Token 既是节点的标签, 对叶子节点来说也是其内容.
// 每个节点独占其子节点, 不存在共享或反向引用.
type Node struct {
	Token    Token
	Children []*Node
}

func newLeaf(tok Token) *Node {
	return &Node{Token: tok}
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

func (n *Node) TokenLiteral() string { return n.Token.Literal }

// Equal reports deep structural equality, ignoring token positions.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if !n.Token.Equal(o.Token) || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer bufferPool.Put(buf)
	buf.Reset()
	n.Format(buf, "", FormatOptions{Style: StyleDefault, Indent: DefaultIndent})
	return buf.String()
}

// Format writes n and its subtree to w.
func (n *Node) Format(w *bytes.Buffer, indent string, opts FormatOptions) {
	label := n.Token.String()
	if opts.Colorize != nil {
		label = opts.Colorize(n.Token, label)
	}
	if opts.Style == StyleSingleLine {
		if n.IsLeaf() {
			w.WriteString(label)
			return
		}
		w.WriteString("(")
		w.WriteString(label)
		for _, c := range n.Children {
			w.WriteString(" ")
			c.Format(w, "", opts)
		}
		w.WriteString(")")
		return
	}
	w.WriteString(indent)
	w.WriteString(label)
	w.WriteString("\n")
	for _, c := range n.Children {
		c.Format(w, indent+opts.Indent, opts)
	}
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// EqualForest compares two forests node by node.
func EqualForest(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// FormatForest renders every top-level node of a forest.
func FormatForest(w *bytes.Buffer, forest []*Node, opts FormatOptions) {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	for i, n := range forest {
		if opts.Style == StyleSingleLine && i > 0 {
			w.WriteString(" ")
		}
		n.Format(w, "", opts)
	}
	if opts.Style == StyleSingleLine && len(forest) > 0 {
		w.WriteString("\n")
	}
}

// ForestString is a convenience wrapper around FormatForest.
func ForestString(forest []*Node) string {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer bufferPool.Put(buf)
	buf.Reset()
	FormatForest(buf, forest, FormatOptions{Style: StyleDefault, Indent: DefaultIndent})
	return buf.String()
}
