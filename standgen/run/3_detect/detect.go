// Package detect finds the contract interface a stand-in is generated for.
package detect

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Contract is an interface declaration found in a package, with the context needed to render it elsewhere.
type Contract struct {
	Name    string
	Iface   *dst.InterfaceType
	PkgName string
	// Imports are the imports of the file declaring the interface.
	Imports []*dst.ImportSpec
}

// Exported variables.
var (
	ErrGenericInterface   = errors.New("generic interfaces are not supported")
	ErrInterfaceNotFound  = errors.New("interface not found")
	ErrNotAnInterface     = errors.New("not an interface")
	ErrPackageNotImported = errors.New("package not found in imports")
	ErrGOFILENotSet       = errors.New("GOFILE environment variable not set")
)

// FindInterface looks for the interface declaration named name in files.
func FindInterface(files []*dst.File, name string) (Contract, error) {
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != name {
					continue
				}

				return contractFrom(file, typeSpec)
			}
		}
	}

	return Contract{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// ImportName returns the name an import is referred to by: its alias, or the package name
// implied by its path. The implied name is the last element, skipping a major version suffix,
// without a "go-" prefix, and cut at the first character that cannot appear in an identifier.
func ImportName(spec *dst.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name
	}

	importPath := strings.Trim(spec.Path.Value, `"`)
	name := path.Base(importPath)

	if majorVersion.MatchString(name) {
		name = path.Base(path.Dir(importPath))
	}

	name = strings.TrimPrefix(name, "go-")

	if i := strings.IndexFunc(name, notIdentifier); i >= 0 {
		name = name[:i]
	}

	return name
}

// ImportPath returns the unquoted path of an import.
func ImportPath(spec *dst.ImportSpec) string {
	return strings.Trim(spec.Path.Value, `"`)
}

// ImportPathIn finds the import path any of files uses for the package named pkgName.
func ImportPathIn(files []*dst.File, pkgName string) (string, error) {
	for _, file := range files {
		for _, spec := range file.Imports {
			if ImportName(spec) == pkgName {
				return ImportPath(spec), nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrPackageNotImported, pkgName)
}

// InferImportPath finds the import path the file at goFilePath uses for the package named pkgName.
func InferImportPath(goFilePath string, pkgName string) (string, error) {
	if goFilePath == "" {
		return "", ErrGOFILENotSet
	}

	file, err := decorator.NewDecorator(token.NewFileSet()).ParseFile(goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", goFilePath, err)
	}

	for _, spec := range file.Imports {
		if ImportName(spec) == pkgName {
			return ImportPath(spec), nil
		}
	}

	return "", fmt.Errorf("%w: %s in %s", ErrPackageNotImported, pkgName, goFilePath)
}

// SplitQualified splits "pkg.Name" into its package and local parts. An unqualified name has no package.
func SplitQualified(qualifiedName string) (pkgName, localName string) {
	pkgName, localName, found := strings.Cut(qualifiedName, ".")
	if !found {
		return "", qualifiedName
	}

	return pkgName, localName
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled once; matches major version path elements like v2
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
)

func notIdentifier(r rune) bool {
	return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}

func contractFrom(file *dst.File, typeSpec *dst.TypeSpec) (Contract, error) {
	name := typeSpec.Name.Name

	iface, ok := typeSpec.Type.(*dst.InterfaceType)
	if !ok {
		return Contract{}, fmt.Errorf("%w: %s is a %T", ErrNotAnInterface, name, typeSpec.Type)
	}

	if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
		return Contract{}, fmt.Errorf("%w: %s", ErrGenericInterface, name)
	}

	return Contract{
		Name:    name,
		Iface:   iface,
		PkgName: file.Name.Name,
		Imports: file.Imports,
	}, nil
}
