package erase

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// exportSpecifier is one entry of a named export list: `local as
// exported`, or `local` alone when local == exported.
type exportSpecifier struct {
	local    string
	exported string
	typeOnly bool
}

// rewriteExport dispatches on the shape of an export_statement per the
// clause table in spec.md §4.4.
func (c *context) rewriteExport(n *ts.Node) error {
	count := n.ChildCount()
	if count < 2 {
		return fmt.Errorf("%w: export_statement too short", ErrInternal)
	}
	exportTok := n.Child(0)
	if exportTok.Kind() != "export" {
		return fmt.Errorf("%w: export_statement missing 'export'", ErrInternal)
	}
	second := n.Child(1)

	switch second.Kind() {
	case "default":
		return c.rewriteExportDefault(n, exportTok, second)
	case "export_clause":
		return c.rewriteExportClause(n, second)
	case "type":
		// `export type { ... }` (optionally `from "S"`): wholly type-only.
		c.blankSubtree(n)
		return nil
	case "*":
		return unsupportedf(n, "export * from")
	case "as":
		return unsupportedf(n, "export as namespace")
	case "=":
		return unsupportedf(n, "export =")
	default:
		return c.rewriteExportDeclaration(n, exportTok, second)
	}
}

// rewriteExportDeclaration implements spec.md §4.4(a): blank only the
// `export` keyword, collect declared names for the footer, and let the
// declaration itself round-trip (or self-erase, for a type-only one).
func (c *context) rewriteExportDeclaration(n, exportTok, decl *ts.Node) error {
	switch decl.Kind() {
	case "lexical_declaration", "variable_declaration":
		c.exports = append(c.exports, collectBindingNames(decl, c.src)...)
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration":
		if name := declaredName(decl, c.src); name != "" {
			c.exports = append(c.exports, name)
		}
	case "interface_declaration", "type_alias_declaration",
		"ambient_declaration", "enum_declaration":
		// Type-only (or enum, which errors via its own dispatch below):
		// nothing is exported at runtime.
	default:
		return fmt.Errorf("%w: unexpected export declaration %q", ErrInternal, decl.Kind())
	}

	c.registerBlank(exportTok)
	return c.walkChildren(n)
}

// rewriteExportDefault implements spec.md §4.4(b)/(c): `export` and
// `default` are replaced in one span by `module.exports.default =`,
// then the declaration/expression is walked normally (the source
// whitespace after `default` supplies the space after `=`). A type-only
// default (an interface, or an ambient declaration) has no runtime
// representation at all, so the entire statement is blanked as one
// subtree instead — same-length whitespace, not a deletion.
func (c *context) rewriteExportDefault(n, exportTok, defaultTok *ts.Node) error {
	if n.ChildCount() < 3 {
		return fmt.Errorf("%w: export_statement default malformed", ErrInternal)
	}
	decl := n.Child(2)

	switch decl.Kind() {
	case "ambient_declaration", "interface_declaration":
		c.blankSubtree(n)
		return nil
	default:
		c.replaceSpan(exportTok, defaultTok, "module.exports.default =")
	}

	for i := uint(2); i < n.ChildCount(); i++ {
		if err := c.walk(n.Child(i)); err != nil {
			return err
		}
	}
	return nil
}

// rewriteExportClause implements spec.md §4.4(d) and (e): named export
// lists, with or without a `from` source.
func (c *context) rewriteExportClause(n, clause *ts.Node) error {
	if hasChildKind(clause, "type") {
		// `export type { ... }` (optionally `from "S"`): wholly type-only.
		c.blankSubtree(n)
		return nil
	}

	var source *ts.Node
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		if ch := n.Child(i); ch.Kind() == "string" {
			source = ch
		}
	}

	specs := filterTypeOnlyExport(parseExportSpecifiers(clause, c.src))

	var replacement string
	switch {
	case len(specs) == 0:
		replacement = ""
	case source != nil:
		spec := stringLiteralValue(c.src, source)
		replacement = fmt.Sprintf("Object.assign(module.exports, { %s });", joinExportSpecifiersFrom(specs, spec))
	default:
		replacement = fmt.Sprintf("Object.assign(module.exports, { %s });", joinExportSpecifiers(specs))
	}

	c.replaceStatement(n, replacement)
	return nil
}

// walkChildren walks every child of n in order; used where a rewrite
// only needs to intercept bookkeeping (what to blank, what to collect)
// before falling back to ordinary recursive emission.
func (c *context) walkChildren(n *ts.Node) error {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		if err := c.walk(n.Child(i)); err != nil {
			return err
		}
	}
	return nil
}

func parseExportSpecifiers(clause *ts.Node, src []byte) []exportSpecifier {
	var out []exportSpecifier
	count := clause.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := clause.Child(i)
		if ch.Kind() != "export_specifier" {
			continue
		}
		out = append(out, parseExportSpecifier(ch, src))
	}
	return out
}

func parseExportSpecifier(n *ts.Node, src []byte) exportSpecifier {
	var idents []string
	typeOnly := false
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		switch ch.Kind() {
		case "type":
			typeOnly = true
		case "identifier", "string":
			idents = append(idents, text(src, ch))
		}
	}
	switch len(idents) {
	case 1:
		return exportSpecifier{local: idents[0], exported: idents[0], typeOnly: typeOnly}
	case 2:
		return exportSpecifier{local: idents[0], exported: idents[1], typeOnly: typeOnly}
	default:
		return exportSpecifier{typeOnly: typeOnly}
	}
}

func filterTypeOnlyExport(specs []exportSpecifier) []exportSpecifier {
	out := specs[:0:0]
	for _, s := range specs {
		if !s.typeOnly {
			out = append(out, s)
		}
	}
	return out
}

func joinExportSpecifiers(specs []exportSpecifier) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		if s.exported == s.local {
			parts[i] = s.exported
		} else {
			parts[i] = fmt.Sprintf("%s: %s", s.exported, s.local)
		}
	}
	return strings.Join(parts, ", ")
}

func joinExportSpecifiersFrom(specs []exportSpecifier, sourceSpec string) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = fmt.Sprintf("%s: require('%s').%s", s.exported, sourceSpec, s.local)
	}
	return strings.Join(parts, ", ")
}

// collectBindingNames walks a variable_declaration/lexical_declaration's
// declarators, recursively descending binding patterns per spec.md
// §4.4(a).
func collectBindingNames(decl *ts.Node, src []byte) []string {
	var names []string
	count := decl.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := decl.Child(i)
		if ch.Kind() != "variable_declarator" {
			continue
		}
		if ch.ChildCount() == 0 {
			continue
		}
		names = append(names, collectPatternNames(ch.Child(0), src)...)
	}
	return names
}

func collectPatternNames(n *ts.Node, src []byte) []string {
	switch n.Kind() {
	case "identifier":
		return []string{text(src, n)}

	case "array_pattern":
		var names []string
		count := n.ChildCount()
		for i := uint(0); i < count; i++ {
			ch := n.Child(i)
			switch ch.Kind() {
			case "[", "]", ",":
				continue
			case "rest_pattern":
				if t := restTarget(ch); t != nil {
					names = append(names, collectPatternNames(t, src)...)
				}
			default:
				names = append(names, collectPatternNames(ch, src)...)
			}
		}
		return names

	case "object_pattern":
		var names []string
		count := n.ChildCount()
		for i := uint(0); i < count; i++ {
			ch := n.Child(i)
			switch ch.Kind() {
			case "{", "}", ",":
				continue
			case "shorthand_property_identifier_pattern":
				names = append(names, text(src, ch))
			case "rest_pattern":
				if t := restTarget(ch); t != nil {
					names = append(names, collectPatternNames(t, src)...)
				}
			case "pair_pattern":
				if v := pairPatternValue(ch); v != nil {
					names = append(names, collectPatternNames(v, src)...)
				}
			}
		}
		return names

	case "assignment_pattern":
		if n.ChildCount() > 0 {
			return collectPatternNames(n.Child(0), src)
		}
		return nil

	default:
		return nil
	}
}

func restTarget(n *ts.Node) *ts.Node {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		if ch := n.Child(i); ch.Kind() != "..." {
			return ch
		}
	}
	return nil
}

func pairPatternValue(n *ts.Node) *ts.Node {
	if v := n.ChildByFieldName("value"); v != nil {
		return v
	}
	if n.ChildCount() >= 3 {
		return n.Child(2)
	}
	return nil
}

// declaredName returns the `name` field of a function/class declaration.
func declaredName(n *ts.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return text(src, name)
	}
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		if ch.Kind() == "identifier" || ch.Kind() == "type_identifier" {
			return text(src, ch)
		}
	}
	return ""
}
