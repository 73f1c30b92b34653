package erase

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// handleAmbientDeclaration implements the `declare ...` family. A bare
// `declare function`/`declare const`/`declare class` has no runtime
// representation at all, so its whole span is blanked like an
// interface or type alias. `declare module`/`declare global` and
// `declare enum` are refused per spec.md §4.1 and §7.
func (c *context) handleAmbientDeclaration(n *ts.Node) error {
	count := n.ChildCount()
	var body *ts.Node
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		if ch.Kind() != "declare" {
			body = ch
			break
		}
	}
	if body == nil {
		return fmt.Errorf("%w: ambient_declaration has no body", ErrInternal)
	}

	switch body.Kind() {
	case "function_signature", "lexical_declaration", "variable_declaration",
		"class_declaration", "abstract_class_declaration", "interface_declaration",
		"type_alias_declaration":
		c.blankSubtree(n)
		return nil
	case "enum_declaration":
		return unsupportedf(n, "enum declaration")
	case "internal_module", "module", "global":
		return unsupportedf(n, "declare module/global")
	default:
		return fmt.Errorf("%w: unexpected ambient_declaration body %q", ErrInternal, body.Kind())
	}
}

// blankOptionalMarker handles the `?` on a formal parameter (spec.md
// §4.1): only the marker token is blanked, the parameter's pattern and
// any type annotation are walked normally (the latter gets erased by
// its own type_annotation dispatch when the walker reaches it).
func (c *context) blankOptionalMarker(n *ts.Node) error {
	tok := findChildByKind(n, "?")
	if tok == nil {
		return fmt.Errorf("%w: optional_parameter missing '?'", ErrInternal)
	}
	c.registerBlank(tok)
	return nil
}

// blankNonNull handles postfix `!` (spec.md §4.1): the operand is
// walked normally, only the bang token is blanked.
func (c *context) blankNonNull(n *ts.Node) error {
	count := n.ChildCount()
	if count < 2 {
		return fmt.Errorf("%w: non_null_expression missing '!'", ErrInternal)
	}
	bang := n.Child(count - 1)
	if bang.Kind() != "!" {
		return fmt.Errorf("%w: non_null_expression malformed", ErrInternal)
	}
	c.registerBlank(bang)
	return nil
}

// blankAsExpression handles `expr as Type` (spec.md §4.1): the `as`
// keyword and every token of the type operand are blanked; the left
// expression is walked normally.
func (c *context) blankAsExpression(n *ts.Node) error {
	if n.ChildCount() != 3 {
		return fmt.Errorf("%w: as_expression malformed", ErrInternal)
	}
	asTok := n.Child(1)
	if asTok.Kind() != "as" {
		return fmt.Errorf("%w: as_expression missing 'as'", ErrInternal)
	}
	c.registerBlank(asTok)
	c.registerBlankSubtree(n.Child(2))
	return nil
}

// blankSatisfiesExpression handles `expr satisfies Type`, mirroring
// blankAsExpression.
func (c *context) blankSatisfiesExpression(n *ts.Node) error {
	if n.ChildCount() != 3 {
		return fmt.Errorf("%w: satisfies_expression malformed", ErrInternal)
	}
	kw := n.Child(1)
	if kw.Kind() != "satisfies" {
		return fmt.Errorf("%w: satisfies_expression missing 'satisfies'", ErrInternal)
	}
	c.registerBlank(kw)
	c.registerBlankSubtree(n.Child(2))
	return nil
}

// blankTypeAssertion handles `<T>expr`: the angle brackets and every
// token of the type operand are blanked; the operand expression is
// walked normally.
func (c *context) blankTypeAssertion(n *ts.Node) error {
	if n.ChildCount() != 4 {
		return fmt.Errorf("%w: type_assertion malformed", ErrInternal)
	}
	lt, typeNode, gt := n.Child(0), n.Child(1), n.Child(2)
	if lt.Kind() != "<" || gt.Kind() != ">" {
		return fmt.Errorf("%w: type_assertion malformed", ErrInternal)
	}
	c.registerBlank(lt)
	c.registerBlankSubtree(typeNode)
	c.registerBlank(gt)
	return nil
}

// isThisParameter reports whether a required_parameter's pattern is the
// reserved word `this` (spec.md §4.1's unsupported "this parameter").
func isThisParameter(n *ts.Node) bool {
	if n.ChildCount() == 0 {
		return false
	}
	return n.Child(0).Kind() == "this"
}

// isDynamicImportCall reports whether a call_expression's callee is the
// special `import` token, i.e. it is `import(...)` rather than a call to
// an identifier named import.
func isDynamicImportCall(n *ts.Node) bool {
	fn := n.ChildByFieldName("function")
	if fn == nil && n.ChildCount() > 0 {
		fn = n.Child(0)
	}
	return fn != nil && fn.Kind() == "import"
}

// dynamicImportStub builds the equal-length `{ ... }` replacement for a
// dynamic import() call (spec.md §4.2): an object literal of identical
// byte length, trivially valid wherever an expression is expected.
func dynamicImportStub(n *ts.Node) string {
	length := int(n.EndByte() - n.StartByte())
	if length < 2 {
		return strings.Repeat("{", length)
	}
	return "{" + strings.Repeat(" ", length-2) + "}"
}
