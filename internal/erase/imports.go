package erase

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// namedSpecifier is one entry of a named import list: `imported as local`,
// or `imported` alone when imported == local.
type namedSpecifier struct {
	imported string
	local    string
	typeOnly bool
}

// rewriteImport implements spec.md §4.3: synthesize a CommonJS
// replacement for a static import declaration and skip the original
// subtree, preserving the declaration's line count.
func (c *context) rewriteImport(n *ts.Node) error {
	var clause, source *ts.Node
	wholeTypeOnly := false

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		switch ch.Kind() {
		case "type":
			wholeTypeOnly = true
		case "import_clause", "namespace_import", "named_imports":
			clause = ch
		case "string":
			source = ch
		case "import_require_clause":
			return unsupportedf(n, "import T = require(...)")
		}
	}
	if source == nil {
		return fmt.Errorf("%w: import_statement missing source", ErrInternal)
	}
	spec := stringLiteralValue(c.src, source)

	var replacement string
	switch {
	case wholeTypeOnly:
		replacement = ""
	case clause == nil:
		replacement = fmt.Sprintf("require('%s');", spec)
	default:
		replacement = c.renderImportClause(clause, spec)
	}

	c.replaceStatement(n, replacement)
	return nil
}

// renderImportClause implements the clause-shape table of spec.md §4.3.
func (c *context) renderImportClause(clause *ts.Node, spec string) string {
	defaultName, namespaceName, named := gatherClauseParts(clause, c.src)
	named = filterTypeOnlyNamed(named)

	switch {
	case namespaceName != "" && defaultName != "":
		return fmt.Sprintf("const %s = require('%s'); const %s = %s.default;",
			namespaceName, spec, defaultName, namespaceName)
	case namespaceName != "":
		return fmt.Sprintf("const %s = require('%s');", namespaceName, spec)
	case defaultName != "" && len(named) > 0:
		return fmt.Sprintf("const { %s, default: %s } = require('%s');",
			joinNamedSpecifiers(named), defaultName, spec)
	case defaultName != "":
		return fmt.Sprintf("const %s = require('%s').default;", defaultName, spec)
	case len(named) > 0:
		return fmt.Sprintf("const { %s } = require('%s');", joinNamedSpecifiers(named), spec)
	default:
		return ""
	}
}

// gatherClauseParts extracts the default binding name, namespace binding
// name, and named specifier list from an import_clause (or directly from
// a bare namespace_import/named_imports/identifier node, in case the
// grammar omits the import_clause wrapper for a single-form clause).
func gatherClauseParts(n *ts.Node, src []byte) (defaultName, namespaceName string, named []namedSpecifier) {
	switch n.Kind() {
	case "import_clause":
		count := n.ChildCount()
		for i := uint(0); i < count; i++ {
			ch := n.Child(i)
			switch ch.Kind() {
			case "identifier":
				defaultName = text(src, ch)
			case "namespace_import":
				namespaceName = namedBindingOf(ch, src)
			case "named_imports":
				named = parseNamedSpecifiers(ch, src)
			}
		}
	case "namespace_import":
		namespaceName = namedBindingOf(n, src)
	case "named_imports":
		named = parseNamedSpecifiers(n, src)
	case "identifier":
		defaultName = text(src, n)
	}
	return
}

// namedBindingOf returns the bound identifier of a `* as N` clause.
func namedBindingOf(n *ts.Node, src []byte) string {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		if ch.Kind() == "identifier" {
			return text(src, ch)
		}
	}
	return ""
}

func parseNamedSpecifiers(n *ts.Node, src []byte) []namedSpecifier {
	var out []namedSpecifier
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		ch := n.Child(i)
		if ch.Kind() != "import_specifier" {
			continue
		}
		out = append(out, parseImportSpecifier(ch, src))
	}
	return out
}

func parseImportSpecifier(n *ts.Node, src []byte) namedSpecifier {
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
		return namedSpecifier{imported: idents[0], local: idents[0], typeOnly: typeOnly}
	case 2:
		return namedSpecifier{imported: idents[0], local: idents[1], typeOnly: typeOnly}
	default:
		return namedSpecifier{typeOnly: typeOnly}
	}
}

func filterTypeOnlyNamed(named []namedSpecifier) []namedSpecifier {
	out := named[:0:0]
	for _, ns := range named {
		if !ns.typeOnly {
			out = append(out, ns)
		}
	}
	return out
}

func joinNamedSpecifiers(named []namedSpecifier) string {
	parts := make([]string, len(named))
	for i, ns := range named {
		parts[i] = fmt.Sprintf("%s: %s", ns.imported, ns.local)
	}
	return strings.Join(parts, ", ")
}

// stringLiteralValue strips the surrounding quotes from a `string` node.
// The parser has already validated the literal; per spec.md §4.3 the
// specifier is used "already unquoted/unescaped", so no further escape
// processing is applied here (see SPEC_FULL.md §9 open question on
// import.meta path escaping for the analogous caveat).
func stringLiteralValue(src []byte, n *ts.Node) string {
	raw := src[n.StartByte():n.EndByte()]
	if len(raw) >= 2 {
		return string(raw[1 : len(raw)-1])
	}
	return string(raw)
}
