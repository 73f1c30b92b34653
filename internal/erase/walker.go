package erase

import (
	"bytes"
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// prologue and epilogue wrap the transformed body as the CommonJS shape
// spec.md §4.5 and §6 require: the host evaluates this expression with
// (exports, require, module) bound to call into the produced module.
const (
	prologue = "(function(exports,require,module){"
	epilogue = "\n})"
)

// tokenKey identifies a token within one parse tree. A token's start
// byte offset is unique within a tree (no two distinct tokens share a
// start position), so it doubles as a stable map key without needing a
// separate identity facility from the parser — see SPEC_FULL.md §3.1.
type tokenKey = uint

// context is the per-invocation walk state spec.md §9 calls for: one
// value, passed explicitly to every helper, never hung off package-level
// state. A single context is built, walked once, and discarded.
type context struct {
	src  []byte
	path string

	// blank holds token keys recorded during node-enter that must be
	// emitted as same-length whitespace when the walker later reaches
	// them as a token. Entries are consumed (deleted) on first use.
	blank map[tokenKey]struct{}

	exports []string
	out     strings.Builder
	cursor  uint
}

func newContext(src []byte, path string) *context {
	return &context{
		src:   src,
		path:  path,
		blank: make(map[tokenKey]struct{}),
	}
}

// walk performs the single depth-first traversal described in spec.md §2
// and §4.5. Node kinds that are pure type syntax, or that the module
// rewriter owns, are handled and the subtree is not recursed into; every
// other node is either a leaf (a token, emitted per the blank-set rule)
// or an interior node whose children are walked in document order.
func (c *context) walk(n *ts.Node) error {
	if n == nil {
		return fmt.Errorf("%w: unexpected nil node", ErrInternal)
	}

	switch n.Kind() {
	case "type_parameters", "type_arguments", "type_annotation",
		"interface_declaration", "type_alias_declaration":
		c.blankSubtree(n)
		return nil

	case "ambient_declaration":
		return c.handleAmbientDeclaration(n)

	case "enum_declaration":
		return unsupportedf(n, "enum declaration")

	case "export_assignment":
		return unsupportedf(n, "export =")

	case "import_alias", "import_require_clause":
		return unsupportedf(n, "import T = require(...)")

	case "optional_parameter":
		if err := c.blankOptionalMarker(n); err != nil {
			return err
		}

	case "non_null_expression":
		if err := c.blankNonNull(n); err != nil {
			return err
		}

	case "as_expression":
		if err := c.blankAsExpression(n); err != nil {
			return err
		}

	case "satisfies_expression":
		if err := c.blankSatisfiesExpression(n); err != nil {
			return err
		}

	case "type_assertion":
		if err := c.blankTypeAssertion(n); err != nil {
			return err
		}

	case "required_parameter":
		if isThisParameter(n) {
			return unsupportedf(n, "this parameter")
		}

	case "import_meta":
		c.replaceSubtree(n, fmt.Sprintf("({ url: '%s' })", c.path))
		return nil

	case "call_expression":
		if isDynamicImportCall(n) {
			c.replaceSubtree(n, dynamicImportStub(n))
			return nil
		}

	case "import_statement":
		return c.rewriteImport(n)

	case "export_statement":
		return c.rewriteExport(n)
	}

	count := n.ChildCount()
	if count == 0 {
		c.emitToken(n)
		return nil
	}
	for i := uint(0); i < count; i++ {
		if err := c.walk(n.Child(i)); err != nil {
			return err
		}
	}
	return nil
}

// emitGapTo copies source bytes verbatim from the cursor up to pos. This
// is how leading trivia (comments, whitespace) between tokens reaches
// the output: rather than requiring the parser to attach trivia to a
// specific token, the walker just copies whatever lies between the end
// of the last emitted byte and the start of the next one.
func (c *context) emitGapTo(pos uint) {
	if pos > uint(len(c.src)) {
		pos = uint(len(c.src))
	}
	if pos > c.cursor {
		c.out.Write(c.src[c.cursor:pos])
		c.cursor = pos
	}
}

// emitToken is the token-enter event of spec.md §4.5: flush the gap
// before it, then emit blanked or verbatim text depending on blank-set
// membership, consuming the entry on a hit.
func (c *context) emitToken(n *ts.Node) {
	c.emitGapTo(n.StartByte())
	key := tokenKey(n.StartByte())
	text := c.src[n.StartByte():n.EndByte()]
	if _, ok := c.blank[key]; ok {
		delete(c.blank, key)
		c.out.WriteString(blankBytes(text))
	} else {
		c.out.Write(text)
	}
	c.cursor = n.EndByte()
}

// blankSubtree emits a node's entire byte range as same-length
// whitespace (spec.md §4.1) and advances the cursor past it without
// recursing — the "walker skips the subtree" behavior for whole
// type-only constructs.
func (c *context) blankSubtree(n *ts.Node) {
	c.emitGapTo(n.StartByte())
	c.out.WriteString(blankBytes(c.src[n.StartByte():n.EndByte()]))
	c.cursor = n.EndByte()
}

// replaceSubtree emits arbitrary replacement text in place of a node's
// entire byte range (used for import.meta and dynamic import()), and
// advances the cursor past it without recursing.
func (c *context) replaceSubtree(n *ts.Node, text string) {
	c.replaceSpan(n, n, text)
}

// replaceSpan emits text in place of the byte range [start.StartByte(),
// end.EndByte()], preserving whatever trivia precedes start.
func (c *context) replaceSpan(start, end *ts.Node, text string) {
	c.emitGapTo(start.StartByte())
	c.out.WriteString(text)
	c.cursor = end.EndByte()
}

// replaceStatement emits replacement in place of n's entire range, then
// appends one newline per newline present in n's own text so that line
// counts after the statement are unaffected by the rewrite (spec.md
// §4.3's "preserving line count across the rewrite").
func (c *context) replaceStatement(n *ts.Node, replacement string) {
	c.emitGapTo(n.StartByte())
	if replacement != "" {
		c.out.WriteString(replacement)
	}
	nl := bytes.Count(c.src[n.StartByte():n.EndByte()], []byte{'\n'})
	if nl > 0 {
		c.out.WriteString(strings.Repeat("\n", nl))
	}
	c.cursor = n.EndByte()
}

// registerBlank records a single token's key for later blanking.
func (c *context) registerBlank(n *ts.Node) {
	c.blank[tokenKey(n.StartByte())] = struct{}{}
}

// registerBlankSubtree records every leaf token under n for blanking,
// without emitting anything itself — used for the type operand of `as`,
// `satisfies`, and angle-bracket assertions, where the surrounding
// expression must still be walked normally but every token making up
// the type must come out as whitespace.
func (c *context) registerBlankSubtree(n *ts.Node) {
	if n == nil {
		return
	}
	count := n.ChildCount()
	if count == 0 {
		c.registerBlank(n)
		return
	}
	for i := uint(0); i < count; i++ {
		c.registerBlankSubtree(n.Child(i))
	}
}

// blankBytes replaces every non-whitespace byte with a space, preserving
// ASCII whitespace bytes verbatim so embedded newlines keep line numbers
// stable (spec.md §3 invariants, §8 "whitespace character fidelity").
func blankBytes(b []byte) string {
	out := make([]byte, len(b))
	for i, ch := range b {
		switch ch {
		case '\n', '\t', '\r', '\f', '\v':
			out[i] = ch
		default:
			out[i] = ' '
		}
	}
	return string(out)
}

func unsupportedf(n *ts.Node, what string) error {
	return fmt.Errorf("%w at byte %d: %s", ErrUnsupported, n.StartByte(), what)
}

func text(src []byte, n *ts.Node) string {
	return string(src[n.StartByte():n.EndByte()])
}

func findChildByKind(n *ts.Node, kind string) *ts.Node {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		if ch.Kind() == kind {
			return ch
		}
	}
	return nil
}

func hasChildKind(n *ts.Node, kind string) bool {
	return findChildByKind(n, kind) != nil
}
