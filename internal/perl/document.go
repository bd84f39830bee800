package perl

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrNotText is returned when the input cannot be Perl source (binary data).
var ErrNotText = errors.New("input is not perl source text")

// Document is an immutable scan of one Perl source. It satisfies the tree
// contract the version engine needs: first-match existence traversal plus
// node introspection. A Document is safe for unsynchronized concurrent reads.
type Document struct {
	nodes []Node
}

// NewDocument scans src into a Document. It fails for non-text input and for
// source the scanner cannot get through (unterminated strings, quote-like
// operators or heredocs); a failed scan is terminal, there is no partial
// document.
func NewDocument(src []byte) (*Document, error) {
	if bytes.IndexByte(src, 0) >= 0 {
		return nil, ErrNotText
	}

	nodes, err := lex(src)
	if err != nil {
		return nil, fmt.Errorf("scan perl source: %w", err)
	}

	return &Document{nodes: nodes}, nil
}

// Exists reports whether any node satisfies pred. Traversal stops at the
// first match and is exhaustive otherwise.
func (d *Document) Exists(pred func(Node) bool) bool {
	for _, n := range d.nodes {
		if pred(n) {
			return true
		}
	}

	return false
}

// Nodes returns the node sequence in source order. Callers must treat it as
// read-only.
func (d *Document) Nodes() []Node {
	return d.nodes
}
