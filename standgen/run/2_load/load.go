// Package load parses the Go files of a package into DST for contract discovery.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// PackageDST loads a package by import path and returns its DST files and FileSet.
// "." is the package in the working directory, test files included; any other path is
// resolved from the working directory and loaded without its test files.
// Files that fail to parse are skipped.
func PackageDST(importPath string) ([]*dst.File, *token.FileSet, error) {
	dir, err := PackageDir(importPath)
	if err != nil {
		return nil, nil, err
	}

	return parseDir(dir, importPath == ".")
}

// PackageDir resolves an import path to the directory holding its sources.
func PackageDir(importPath string) (string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if importPath == "." {
		return workDir, nil
	}

	// A local subdirectory (e.g. "./time") shadows a package of the same name.
	if local := ResolveLocalPackagePath(importPath); local != importPath {
		return local, nil
	}

	pkg, err := build.Import(importPath, workDir, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}

// ResolveLocalPackagePath returns the absolute path of a subdirectory of the working directory named
// importPath when it holds Go files, and importPath itself otherwise. Only simple names are considered.
func ResolveLocalPackagePath(importPath string) string {
	if importPath == "." || strings.Contains(importPath, "/") {
		return importPath
	}

	workDir, err := os.Getwd()
	if err != nil {
		return importPath
	}

	localDir := filepath.Join(workDir, importPath)

	goFiles, err := goFilesIn(localDir, false)
	if err != nil || len(goFiles) == 0 {
		return importPath
	}

	return localDir
}

// unexported variables.
var (
	errNoGoFiles = errors.New("no Go files found")
)

func goFilesIn(dir string, includeTests bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()

		switch {
		case entry.IsDir(), !strings.HasSuffix(name, ".go"):
			continue
		case !includeTests && strings.HasSuffix(name, "_test.go"):
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, name))
	}

	return goFiles, nil
}

func parseDir(dir string, includeTests bool) ([]*dst.File, *token.FileSet, error) {
	goFiles, err := goFilesIn(dir, includeTests)
	if err != nil {
		return nil, nil, err
	}

	if len(goFiles) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", errNoGoFiles, dir)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	files := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		file, err := dec.ParseFile(goFile, nil, 0)
		if err != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: none of the files in %s parse", errNoGoFiles, dir)
	}

	return files, fset, nil
}
