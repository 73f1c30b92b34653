package erase

import (
	"fmt"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language selects a grammar to parse with. The core boundary contract
// (spec.md §6) only ever uses TypeScript; JavaScript and TSX exist so
// the dev CLI (cmd/tsblank) can round-trip plain .js/.tsx input through
// the same walker for local convenience, per SPEC_FULL.md §1.2.
type Language int

const (
	TypeScript Language = iota
	JavaScript
	TSX
)

func (l Language) grammar() (unsafe.Pointer, error) {
	switch l {
	case TypeScript:
		return tstypescript.LanguageTypescript(), nil
	case JavaScript:
		return tsjavascript.Language(), nil
	case TSX:
		return tstypescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("%w: unknown language %d", ErrInternal, l)
	}
}

func (l Language) parse(src []byte) (*ts.Tree, error) {
	grammar, err := l.grammar()
	if err != nil {
		return nil, err
	}
	parser := ts.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(ts.NewLanguage(grammar)); err != nil {
		return nil, fmt.Errorf("%w: setting language: %v", ErrInternal, err)
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: parser returned no tree", ErrInternal)
	}
	return tree, nil
}

// DumpTree returns the S-expression representation of src parsed under
// lang, for inspecting what node kinds a given input actually produces —
// useful when extending the node-kind table in SPEC_FULL.md §4.6.
func DumpTree(src []byte, lang Language) (string, error) {
	tree, err := lang.parse(src)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return "", fmt.Errorf("%w: parse returned nil root node", ErrInternal)
	}
	return root.ToSexp(), nil
}
