package erase

import (
	"strings"
	"testing"
)

// wrapBody returns the CommonJS shape spec.md §6 mandates for a given
// already-erased body, with no exported names in the footer.
func wrapBody(body string) string {
	return prologue + body + epilogue
}

func TestTransform_PureErasure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "type annotation on binding",
			input: "let x: number = 1;",
			want:  "let x         = 1;",
		},
		{
			name:  "non-null and as",
			input: "const y = (z as string)!;",
			want:  "const y = (z          ) ;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transform([]byte(tt.input), "virtual.ts")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := wrapBody(tt.want)
			if got != want {
				t.Errorf("output mismatch:\n  got:  %q\n  want: %q", got, want)
			}
		})
	}
}

func TestTransform_InterfaceDeclarationErased(t *testing.T) {
	input := "interface Foo {\n  bar: string;\n}\nconst x = 1;"
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(got, prologue), epilogue)
	if len(body) != len(input) {
		t.Errorf("body length = %d, want %d", len(body), len(input))
	}
	if strings.Count(body, "\n") != strings.Count(input, "\n") {
		t.Errorf("newline count changed: got %d, want %d", strings.Count(body, "\n"), strings.Count(input, "\n"))
	}
	if strings.Contains(body, "interface") || strings.Contains(body, "Foo") || strings.Contains(body, "bar") {
		t.Errorf("interface declaration not fully erased: %q", body)
	}
	if !strings.Contains(body, "const x = 1;") {
		t.Errorf("statement after interface declaration should round-trip verbatim: %q", body)
	}
}

func TestTransform_LengthAndLinePreservation(t *testing.T) {
	input := `function f<T>(a: T, b?: number): T {
  return a;
}
`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(got, prologue), epilogue)
	if len(body) != len(input) {
		t.Errorf("body length = %d, want %d (input unchanged in length for pure erasure)", len(body), len(input))
	}
	if strings.Count(body, "\n") != strings.Count(input, "\n") {
		t.Errorf("newline count changed: got %d, want %d", strings.Count(body, "\n"), strings.Count(input, "\n"))
	}
}

func TestTransform_RoundTripNonTypeCode(t *testing.T) {
	input := `function add(a, b) {
  return a + b;
}
const x = add(1, 2);
`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(input)
	if got != want {
		t.Errorf("non-type code did not round-trip:\n  got:  %q\n  want: %q", got, want)
	}
}

func TestTransform_NamedImportWithRenameAndTypeMember(t *testing.T) {
	input := `import { a, type T, b as c } from "m";`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`const { a: a, b: c } = require('m');`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_CombinedImport(t *testing.T) {
	input := `import D, { a } from "m";`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`const { a: a, default: D } = require('m');`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_ExportDefaultExpression(t *testing.T) {
	input := `export default 42;`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`module.exports.default = 42;`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_ExportDefaultFunction(t *testing.T) {
	input := `export default function foo() {}`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`module.exports.default = function foo() {}`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_ExportDefaultClass(t *testing.T) {
	input := `export default class C {}`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`module.exports.default = class C {}`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_ExportDefaultInterfaceErased(t *testing.T) {
	input := `export default interface Foo {}`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(got, prologue), epilogue)
	if len(body) != len(input) {
		t.Errorf("body length = %d, want %d", len(body), len(input))
	}
	if strings.Contains(body, "export") || strings.Contains(body, "default") ||
		strings.Contains(body, "interface") || strings.Contains(body, "Foo") {
		t.Errorf("type-only export default should be fully erased: %q", body)
	}
}

func TestTransform_ReExportFrom(t *testing.T) {
	input := `export { a, b as c } from "m";`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`Object.assign(module.exports, { a: require('m').a, c: require('m').b });`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_ExportedDeclarationFooter(t *testing.T) {
	input := `export const x = 1, { a, b: bb } = obj;`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"module.exports.x = x;",
		"module.exports.a = a;",
		"module.exports.bb = bb;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("footer missing %q in output:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, epilogue) {
		t.Errorf("output must end with epilogue, got: %q", got)
	}
}

func TestTransform_ImportMeta(t *testing.T) {
	input := `const u = import.meta.url;`
	got, err := Transform([]byte(input), "/virtual/mod.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wrapBody(`const u = ({ url: '/virtual/mod.ts' }).url;`)
	if got != want {
		t.Errorf("got:\n  %q\nwant:\n  %q", got, want)
	}
}

func TestTransform_DynamicImportEqualLength(t *testing.T) {
	input := `const m = import('foo');`
	got, err := Transform([]byte(input), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(got, prologue), epilogue)
	if len(body) != len(input) {
		t.Errorf("dynamic import rewrite changed length: got %d, want %d", len(body), len(input))
	}
	if !strings.Contains(body, "{") || !strings.Contains(body, "}") {
		t.Errorf("expected an object literal stub, got %q", body)
	}
}

func TestTransform_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"enum", "enum Color { Red, Green }"},
		{"this parameter", "function f(this: Window) {}"},
		{"export assignment", "export = 42;"},
		{"import alias", "import fs = require('fs');"},
		{"declare global", "declare global {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform([]byte(tt.input), "virtual.ts")
			if err == nil {
				t.Fatalf("expected an error for %q", tt.input)
			}
		})
	}
}

func TestTransform_ParseError(t *testing.T) {
	_, err := Transform([]byte("const x = ;"), "virtual.ts")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestTransform_Idempotence(t *testing.T) {
	got, err := Transform([]byte("const x = 1;"), "virtual.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, prologue) {
		t.Errorf("output must start with prologue, got: %q", got)
	}
	if !strings.HasSuffix(got, epilogue) {
		t.Errorf("output must end with epilogue, got: %q", got)
	}
}
