// Package generate renders the Go source of a stand-in for a contract interface.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"maps"
	"slices"
	"strings"

	"github.com/dave/dst"

	astutil "github.com/toejough/standin/standgen/run/0_util"
	detect "github.com/toejough/standin/standgen/run/3_detect"
)

// Info describes what to generate.
type Info struct {
	// PkgName is the package the stand-in is generated into.
	PkgName string
	// StandInName is the name of the generated struct.
	StandInName string
	Contract    detect.Contract
	// ImportPath is the import path of the contract's package, or "" when generating into that package.
	ImportPath string
}

// Exported variables.
var (
	ErrEmbeddedInterface  = errors.New("embedded interfaces are not supported")
	ErrReservedMember     = errors.New("member name collides with a stand-in method")
	ErrUnsupportedResults = errors.New("unsupported result list")
)

// StandInCode returns the formatted source of the stand-in described by info.
func StandInCode(info Info) (string, error) {
	data, err := buildStandInData(info)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	err = standInTemplate.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to render stand-in for %s: %w", info.Contract.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("error formatting generated code: %w", err)
	}

	return string(formatted), nil
}

// unexported constants.
const (
	standinImportPath = "github.com/toejough/standin"
)

type importData struct {
	Name string
	Path string
}

type memberData struct {
	Name string
	// Params is the parameter list of the member, as declared but with generated names.
	Params string
	// ArrangeParams is the parameter list of the arrangement method: every parameter as any.
	ArrangeParams string
	// Args lists the parameter names, for forwarding.
	Args    string
	Results string
	// ValueType is the member's value result type, or "" when it only returns an error or nothing.
	ValueType string
	HasErr    bool
	Deferred  bool
}

type standInData struct {
	PkgName          string
	StandInName      string
	ArrangementsName string
	ContractName     string
	InterfaceType    string
	Imports          []importData
	Members          []memberData
}

// reservedNames are identifiers the generated method bodies use.
//
//nolint:gochecknoglobals // Read-only lookup table
var reservedNames = map[string]bool{
	"a": true, "s": true, "ret": true, "err": true, "reflect": true, "standin": true,
}

func buildMember(name string, funcType *dst.FuncType, renderer *astutil.Renderer) (memberData, error) {
	member := memberData{Name: name}

	var params, names []string

	index := 0
	shadowed, taken := memberNames(funcType, renderer.Qualifier)

	for _, field := range paramFields(funcType) {
		typeStr := renderer.Expr(field.Type)

		for _, paramName := range fieldNames(field, &index, shadowed, taken) {
			params = append(params, paramName+" "+typeStr)
			names = append(names, paramName)
		}
	}

	member.Params = strings.Join(params, ", ")
	member.Args = strings.Join(names, ", ")

	if len(names) > 0 {
		member.ArrangeParams = member.Args + " any"
	}

	err := classifyResults(&member, funcType, renderer)
	if err != nil {
		return memberData{}, err
	}

	return member, nil
}

func buildStandInData(info Info) (standInData, error) {
	qualifier := ""
	if info.ImportPath != "" {
		qualifier = info.Contract.PkgName
	}

	renderer := astutil.NewRenderer(qualifier)

	interfaceType := info.Contract.Name
	if qualifier != "" {
		interfaceType = qualifier + "." + interfaceType
		renderer.Used[qualifier] = true
	}

	data := standInData{
		PkgName:          info.PkgName,
		StandInName:      info.StandInName,
		ArrangementsName: info.StandInName + "Arrangements",
		ContractName:     info.Contract.Name,
		InterfaceType:    interfaceType,
	}

	for _, method := range info.Contract.Iface.Methods.List {
		funcType, isFunc := method.Type.(*dst.FuncType)
		if !isFunc || len(method.Names) == 0 {
			return standInData{}, fmt.Errorf("%w: %s embeds %s",
				ErrEmbeddedInterface, info.Contract.Name, renderer.Expr(method.Type))
		}

		name := method.Names[0].Name
		if name == "Arrange" || name == "StandIn" {
			return standInData{}, fmt.Errorf("%w: %s.%s", ErrReservedMember, info.Contract.Name, name)
		}

		member, err := buildMember(name, funcType, renderer)
		if err != nil {
			return standInData{}, err
		}

		data.Members = append(data.Members, member)
	}

	data.Imports = collectImports(info, renderer, slices.ContainsFunc(data.Members, func(m memberData) bool {
		return m.ValueType != ""
	}))

	return data, nil
}

// classifyResults accepts (), (error), (T) and (T, error). A channel value result is deferred:
// its values are consumed after the call returns.
func classifyResults(member *memberData, funcType *dst.FuncType, renderer *astutil.Renderer) error {
	var results []dst.Expr

	if funcType.Results != nil {
		for _, field := range funcType.Results.List {
			for range max(len(field.Names), 1) {
				results = append(results, field.Type)
			}
		}
	}

	if len(results) > 0 && astutil.IsErrorType(results[len(results)-1]) {
		member.HasErr = true
		results = results[:len(results)-1]
	}

	switch len(results) {
	case 0:
	case 1:
		member.ValueType = renderer.Expr(results[0])
		_, member.Deferred = results[0].(*dst.ChanType)
	default:
		return fmt.Errorf("%w: %s returns %d values besides an error", ErrUnsupportedResults, member.Name, len(results))
	}

	resultTypes := renderer.FieldTypes(funcType.Results)

	switch len(resultTypes) {
	case 0:
	case 1:
		member.Results = resultTypes[0]
	default:
		member.Results = "(" + strings.Join(resultTypes, ", ") + ")"
	}

	return nil
}

// collectImports returns the imports the generated file needs, sorted by path.
func collectImports(info Info, renderer *astutil.Renderer, needsReflect bool) []importData {
	imports := []importData{{Path: standinImportPath}}

	if needsReflect {
		imports = append(imports, importData{Path: "reflect"})
	}

	if info.ImportPath != "" {
		imports = append(imports, importData{Path: info.ImportPath})
	}

	for _, spec := range info.Contract.Imports {
		name := detect.ImportName(spec)
		if !renderer.Used[name] || name == "_" || name == "." {
			continue
		}

		imported := importData{Path: detect.ImportPath(spec)}
		if spec.Name != nil {
			imported.Name = spec.Name.Name
		}

		imports = append(imports, imported)
	}

	slices.SortFunc(imports, func(left, right importData) int {
		return strings.Compare(left.Path, right.Path)
	})

	return slices.CompactFunc(imports, func(left, right importData) bool {
		return left.Path == right.Path
	})
}

// fieldNames returns a usable name for each name of a parameter field: blank and missing names
// become argN, and names that would shadow an identifier the generated body uses get an Arg suffix.
// Every returned name is added to taken.
func fieldNames(field *dst.Field, index *int, shadowed, taken map[string]bool) []string {
	count := max(len(field.Names), 1)
	names := make([]string, 0, count)

	for i := range count {
		name := ""
		if i < len(field.Names) {
			name = field.Names[i].Name
		}

		switch {
		case name == "" || name == "_":
			name = fmt.Sprintf("arg%d", *index)
			for taken[name] {
				name += "Arg"
			}
		case shadowed[name]:
			name += "Arg"
			for taken[name] {
				name += "Arg"
			}
		}

		taken[name] = true
		names = append(names, name)
		*index++
	}

	return names
}

// memberNames returns the identifiers a member's generated bodies refer to, which its parameters
// must not shadow, and the names already taken by those identifiers and the declared parameters.
func memberNames(funcType *dst.FuncType, qualifier string) (shadowed, taken map[string]bool) {
	packages := astutil.NewRenderer(qualifier)
	packages.FieldTypes(funcType.Params)
	packages.FieldTypes(funcType.Results)

	if qualifier != "" {
		packages.Used[qualifier] = true
	}

	shadowed = make(map[string]bool, len(reservedNames)+len(packages.Used))
	maps.Copy(shadowed, reservedNames)
	maps.Copy(shadowed, packages.Used)

	taken = maps.Clone(shadowed)

	for _, field := range paramFields(funcType) {
		for _, ident := range field.Names {
			if ident.Name != "_" {
				taken[ident.Name] = true
			}
		}
	}

	return shadowed, taken
}

func paramFields(funcType *dst.FuncType) []*dst.Field {
	if funcType.Params == nil {
		return nil
	}

	return funcType.Params.List
}
