package generate

import "text/template"

// standInTemplate renders a whole stand-in file. The output is passed through go/format, so
// whitespace here only needs to be valid, not pretty.
//
//nolint:gochecknoglobals // Parsed once from a constant; parsing cannot fail at runtime
var standInTemplate = template.Must(template.New("standin").Parse(`// Code generated by standgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.StandInName}} is a stand-in for {{.InterfaceType}}. Arrange expectations with Arrange,
// hand it to the code under test, then verify it with standin.AssertExpectations.
type {{.StandInName}} struct {
	imp *standin.Imp
}

var _ {{.InterfaceType}} = (*{{.StandInName}})(nil)

// New{{.StandInName}} creates a stand-in for {{.InterfaceType}}.
func New{{.StandInName}}(t standin.TestReporter, opts ...standin.Option) *{{.StandInName}} {
	opts = append([]standin.Option{standin.WithName("{{.ContractName}}")}, opts...)

	return &{{.StandInName}}{imp: standin.New(t, opts...)}
}

// Arrange returns the expectation builders, one per member of {{.InterfaceType}}.
func (s *{{.StandInName}}) Arrange() {{.ArrangementsName}} {
	return {{.ArrangementsName}}{s: s}
}

// StandIn returns the engine behind the stand-in.
func (s *{{.StandInName}}) StandIn() *standin.Imp {
	if s == nil {
		return nil
	}

	return s.imp
}
{{range .Members}}
func (s *{{$.StandInName}}) {{.Name}}({{.Params}}) {{.Results}} {
	{{if .ValueType}}ret{{else}}_{{end}}, err := s.imp.Dispatch(standin.Call{
		MethodName: "{{.Name}}",
		{{- if .Args}}
		Args: []any{ {{- .Args -}} },
		{{- end}}
		{{- if .ValueType}}
		ReturnType: reflect.TypeFor[{{.ValueType}}](),
		{{- end}}
		{{- if .Deferred}}
		Deferred: true,
		{{- end}}
	})
	{{- if .HasErr}}

	return {{if .ValueType}}standin.As[{{.ValueType}}](ret), {{end}}err
	{{- else}}
	if err != nil {
		panic(err)
	}
	{{- if .ValueType}}

	return standin.As[{{.ValueType}}](ret)
	{{- end}}
	{{- end}}
}
{{end}}
// {{.ArrangementsName}} registers expectations on a {{.StandInName}}. Each argument is a literal
// value, a matcher, or a standin.ArgSpec.
type {{.ArrangementsName}} struct {
	s *{{.StandInName}}
}
{{range .Members}}
// {{.Name}} arranges calls to {{.Name}}.
func (a {{$.ArrangementsName}}) {{.Name}}({{.ArrangeParams}}) {{if .ValueType}}*standin.Func[{{.ValueType}}]{{else}}*standin.Action{{end}} {
	return standin.{{if .ValueType}}ArrangeFunc[{{.ValueType}}]{{else}}Arrange{{end}}(a.s, "{{.Name}}"{{if .Args}}, {{.Args}}{{end}})
}
{{end}}`))
