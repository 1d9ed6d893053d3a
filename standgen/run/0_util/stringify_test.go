package astutil_test

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/google/go-cmp/cmp"

	astutil "github.com/toejough/standin/standgen/run/0_util"
)

// TestRenderer_Expr verifies that type expressions render back to Go source, qualified or not.
//
//nolint:funlen // table-driven test with comprehensive test cases
func TestRenderer_Expr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		typeExpr  string
		qualifier string
		expected  string
		used      map[string]bool
	}{
		{name: "builtin", typeExpr: "int", expected: "int", used: map[string]bool{}},
		{name: "local exported", typeExpr: "Widget", expected: "Widget", used: map[string]bool{}},
		{
			name: "qualified exported", typeExpr: "Widget", qualifier: "widgets",
			expected: "widgets.Widget", used: map[string]bool{"widgets": true},
		},
		{
			name: "builtin not qualified", typeExpr: "error", qualifier: "widgets",
			expected: "error", used: map[string]bool{},
		},
		{
			name: "selector", typeExpr: "time.Duration", qualifier: "widgets",
			expected: "time.Duration", used: map[string]bool{"time": true},
		},
		{
			name: "pointer slice map", typeExpr: "map[string][]*Widget", qualifier: "widgets",
			expected: "map[string][]*widgets.Widget", used: map[string]bool{"widgets": true},
		},
		{name: "array", typeExpr: "[4]byte", expected: "[4]byte", used: map[string]bool{}},
		{name: "receive channel", typeExpr: "<-chan int", expected: "<-chan int", used: map[string]bool{}},
		{name: "send channel", typeExpr: "chan<- int", expected: "chan<- int", used: map[string]bool{}},
		{name: "channel", typeExpr: "chan struct{}", expected: "chan struct{}", used: map[string]bool{}},
		{
			name: "func", typeExpr: "func(context.Context, ...string) (int, error)",
			expected: "func(context.Context, ...string) (int, error)", used: map[string]bool{"context": true},
		},
		{name: "empty interface", typeExpr: "interface{}", expected: "interface{}", used: map[string]bool{}},
		{
			name: "interface", typeExpr: "interface{ Close() error }",
			expected: "interface{ Close() error }", used: map[string]bool{},
		},
		{
			name: "struct", typeExpr: "struct{ A, B Widget }", qualifier: "widgets",
			expected: "struct{ A, B widgets.Widget }", used: map[string]bool{"widgets": true},
		},
		{
			name: "generic instantiation", typeExpr: "Pair[string, Widget]", qualifier: "widgets",
			expected: "widgets.Pair[string, widgets.Widget]", used: map[string]bool{"widgets": true},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			renderer := astutil.NewRenderer(testCase.qualifier)

			got := renderer.Expr(parseType(t, testCase.typeExpr))
			if got != testCase.expected {
				t.Errorf("Expr(%q) = %q, want %q", testCase.typeExpr, got, testCase.expected)
			}

			if diff := cmp.Diff(testCase.used, renderer.Used); diff != "" {
				t.Errorf("Used mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_NilExpr(t *testing.T) {
	t.Parallel()

	if got := astutil.NewRenderer("").Expr(nil); got != "" {
		t.Errorf("Expr(nil) = %q, want empty", got)
	}
}

func TestRenderer_FieldTypes(t *testing.T) {
	t.Parallel()

	funcType, ok := parseType(t, "func(a, b int, _ string, w Widget)").(*dst.FuncType)
	if !ok {
		t.Fatal("expected a func type")
	}

	got := astutil.NewRenderer("w").FieldTypes(funcType.Params)
	want := []string{"int", "int", "string", "w.Widget"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FieldTypes mismatch (-want +got):\n%s", diff)
	}

	if got := astutil.NewRenderer("").FieldTypes(nil); got != nil {
		t.Errorf("FieldTypes(nil) = %v, want nil", got)
	}
}

func TestIsErrorType(t *testing.T) {
	t.Parallel()

	if !astutil.IsErrorType(parseType(t, "error")) {
		t.Error("error should be the error type")
	}

	if astutil.IsErrorType(parseType(t, "errors.Error")) {
		t.Error("a selector is not the predeclared error type")
	}
}

func TestIsExported(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{"Widget": true, "widget": false, "": false, "Éclair": true, "_x": false} {
		if got := astutil.IsExported(name); got != want {
			t.Errorf("IsExported(%q) = %v, want %v", name, got, want)
		}
	}
}

// parseType parses a type expression by wrapping it in a type declaration.
func parseType(t *testing.T, typeExpr string) dst.Expr {
	t.Helper()

	file, err := decorator.Parse("package p\n\ntype T " + typeExpr + "\n")
	if err != nil {
		t.Fatalf("failed to parse %q: %v", typeExpr, err)
	}

	genDecl, ok := file.Decls[0].(*dst.GenDecl)
	if !ok {
		t.Fatalf("expected a type declaration for %q", typeExpr)
	}

	typeSpec, ok := genDecl.Specs[0].(*dst.TypeSpec)
	if !ok {
		t.Fatalf("expected a type spec for %q", typeExpr)
	}

	return typeSpec.Type
}
