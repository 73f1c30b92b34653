// Package erase implements the core of the transform: a single
// depth-first walk over a tree-sitter TypeScript parse tree that erases
// type-only syntax to whitespace of identical byte length and rewrites
// `import`/`export` declarations into a CommonJS shape, per spec.md.
package erase

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Transform parses src as TypeScript and returns the equivalent
// ECMAScript text, wrapped in the standard CommonJS prologue/epilogue
// (spec.md §6). path is substituted verbatim into any `import.meta`
// replacement; it is not validated or escaped (see SPEC_FULL.md §9).
// This is the entry point the boundary contract of spec.md §6 uses —
// the core guarantee only ever applies to TypeScript input. Use
// TransformLang directly for JavaScript/TSX (dev CLI convenience only).
//
// A non-nil error is always one of ErrParse, ErrUnsupported, or
// ErrInternal (wrapped with context), matching the taxonomy in spec.md
// §7. No partial output is ever returned alongside an error.
func Transform(src []byte, path string) (string, error) {
	return TransformLang(src, path, TypeScript)
}

// TransformLang is Transform generalized to any supported grammar. The
// walker and every policy/rewrite rule are grammar-agnostic beyond the
// node-kind names they dispatch on, which is what lets the same code
// erase-and-round-trip plain JavaScript/TSX (no type syntax to erase, so
// it degenerates to the round-trip property of spec.md §8).
func TransformLang(src []byte, path string, lang Language) (string, error) {
	tree, err := lang.parse(src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return "", fmt.Errorf("%w: parse returned nil root node", ErrInternal)
	}

	if root.HasError() {
		if msg := collectParseDiagnostics(root, src); msg != "" {
			return "", fmt.Errorf("%w: %s", ErrParse, msg)
		}
	}

	c := newContext(src, path)
	c.out.WriteString(prologue)

	if err := c.walk(root); err != nil {
		return "", err
	}
	c.emitGapTo(uint(len(src)))

	if len(c.exports) > 0 {
		c.out.WriteByte('\n')
		for _, name := range c.exports {
			fmt.Fprintf(&c.out, "module.exports.%s = %s;\n", name, name)
		}
	}
	c.out.WriteString(epilogue)

	return c.out.String(), nil
}

// collectParseDiagnostics renders every ERROR/MISSING node the parser
// produced, concatenated with newlines (spec.md §7's "Parse failure").
func collectParseDiagnostics(root *ts.Node, src []byte) string {
	var msgs []string
	var visit func(n *ts.Node)
	visit = func(n *ts.Node) {
		if n == nil {
			return
		}
		switch {
		case n.IsMissing():
			msgs = append(msgs, fmt.Sprintf("missing %s at byte %d", n.Kind(), n.StartByte()))
		case n.IsError():
			msgs = append(msgs, fmt.Sprintf("syntax error at byte %d near %q", n.StartByte(), excerpt(src, n)))
		}
		count := n.ChildCount()
		for i := uint(0); i < count; i++ {
			visit(n.Child(i))
		}
	}
	visit(root)
	return strings.Join(msgs, "\n")
}

func excerpt(src []byte, n *ts.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(src)) {
		end = uint(len(src))
	}
	if start >= end {
		return ""
	}
	const max = 40
	s := src[start:end]
	if len(s) > max {
		s = s[:max]
	}
	return string(s)
}
