// Package astutil renders DST type expressions back to Go source for code generation.
package astutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/dst"
)

// Renderer renders type expressions taken from one package so they can be used from another.
// When Qualifier is set, exported bare identifiers are prefixed with it (Widget becomes widgets.Widget).
// Package names used by selector expressions, and the qualifier when applied, are recorded in Used.
type Renderer struct {
	Qualifier string
	Used      map[string]bool
}

// NewRenderer returns a Renderer that qualifies exported identifiers with qualifier ("" for none).
func NewRenderer(qualifier string) *Renderer {
	return &Renderer{Qualifier: qualifier, Used: make(map[string]bool)}
}

// Expr renders expr as Go source.
//
//nolint:cyclop,funlen // Type-switch dispatcher handling all DST type expressions; complexity is inherent
func (r *Renderer) Expr(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return r.ident(typedExpr.Name)
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		if pkg, ok := typedExpr.X.(*dst.Ident); ok {
			r.Used[pkg.Name] = true

			return pkg.Name + "." + typedExpr.Sel.Name
		}

		return r.Expr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + r.Expr(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + r.Expr(typedExpr.Len) + "]" + r.Expr(typedExpr.Elt)
		}

		return "[]" + r.Expr(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + r.Expr(typedExpr.Key) + "]" + r.Expr(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + r.Expr(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + r.Expr(typedExpr.Value)
		default:
			return "chan " + r.Expr(typedExpr.Value)
		}
	case *dst.FuncType:
		return "func" + r.Signature(typedExpr)
	case *dst.InterfaceType:
		return r.interfaceType(typedExpr)
	case *dst.StructType:
		return r.structType(typedExpr)
	case *dst.Ellipsis:
		return "..." + r.Expr(typedExpr.Elt)
	case *dst.IndexExpr:
		return r.Expr(typedExpr.X) + "[" + r.Expr(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		return r.Expr(typedExpr.X) + "[" + strings.Join(r.exprs(typedExpr.Indices), ", ") + "]"
	case *dst.ParenExpr:
		return "(" + r.Expr(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// FieldTypes renders one type per declared name; unnamed fields contribute one type each.
func (r *Renderer) FieldTypes(fields *dst.FieldList) []string {
	if fields == nil {
		return nil
	}

	var parts []string

	for _, field := range fields.List {
		typeStr := r.Expr(field.Type)

		count := max(len(field.Names), 1)
		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// Signature renders the parameter and result lists of a function type, without the func keyword.
func (r *Renderer) Signature(funcType *dst.FuncType) string {
	params := "(" + strings.Join(r.FieldTypes(funcType.Params), ", ") + ")"

	results := r.FieldTypes(funcType.Results)

	switch len(results) {
	case 0:
		return params
	case 1:
		return params + " " + results[0]
	default:
		return params + " (" + strings.Join(results, ", ") + ")"
	}
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	first, _ := utf8.DecodeRuneInString(name)

	return unicode.IsUpper(first)
}

// IsErrorType reports whether expr is the predeclared error type.
func IsErrorType(expr dst.Expr) bool {
	ident, ok := expr.(*dst.Ident)

	return ok && ident.Name == "error" && ident.Path == ""
}

func (r *Renderer) exprs(exprs []dst.Expr) []string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = r.Expr(expr)
	}

	return parts
}

func (r *Renderer) ident(name string) string {
	if r.Qualifier == "" || !IsExported(name) {
		return name
	}

	r.Used[r.Qualifier] = true

	return r.Qualifier + "." + name
}

func (r *Renderer) interfaceType(iface *dst.InterfaceType) string {
	if iface.Methods == nil || len(iface.Methods.List) == 0 {
		return "interface{}"
	}

	parts := make([]string, 0, len(iface.Methods.List))

	for _, method := range iface.Methods.List {
		funcType, isFunc := method.Type.(*dst.FuncType)
		if !isFunc || len(method.Names) == 0 {
			parts = append(parts, r.Expr(method.Type))

			continue
		}

		parts = append(parts, method.Names[0].Name+r.Signature(funcType))
	}

	return "interface{ " + strings.Join(parts, "; ") + " }"
}

func (r *Renderer) structType(structType *dst.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	parts := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		typeStr := r.Expr(field.Type)

		if len(field.Names) == 0 {
			parts = append(parts, typeStr)

			continue
		}

		names := make([]string, len(field.Names))
		for i, name := range field.Names {
			names[i] = name.Name
		}

		parts = append(parts, strings.Join(names, ", ")+" "+typeStr)
	}

	return "struct{ " + strings.Join(parts, "; ") + " }"
}
