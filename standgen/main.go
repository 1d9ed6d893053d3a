// standgen generates stand-ins for Go interfaces.
// To use it, add a `//go:generate go run github.com/toejough/standin/standgen <interface>` comment to a test file.
// By default the stand-in is named <interface>StandIn; pass `--name <name>` to choose another name. The stand-in is
// written to generated_<name>.go (generated_<name>_test.go from a test package or file), in the package containing
// the directive. Pass `--check` in CI to fail when a generated stand-in is out of date.
package main

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/dave/dst"
	"github.com/sierrasoftworks/humane-errors-go"

	"github.com/toejough/standin/standgen/run"
	load "github.com/toejough/standin/standgen/run/2_load"
)

// main is the entry point of the standgen tool.
func main() {
	if os.Args == nil {
		return
	}

	os.Exit(runMain(os.Args, os.Getenv, os.Stdout, os.Stderr))
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements PackageLoader using direct DST parsing.
type realPackageLoader struct{}

// Load loads a package by import path and returns its DST files and FileSet.
func (pl *realPackageLoader) Load(importPath string) ([]*dst.File, *token.FileSet, error) {
	files, fset, err := load.PackageDST(importPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return files, fset, nil
}

// runMain runs the generator and reports failure on errOut, returning the process exit code.
func runMain(args []string, getEnv func(string) string, out, errOut io.Writer) int {
	err := run.Run(args, getEnv, &realFileSystem{}, &realPackageLoader{}, out)
	if err == nil {
		return 0
	}

	var herr humane.Error
	if errors.As(err, &herr) {
		_, _ = fmt.Fprintln(errOut, herr.Display())
	} else {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
	}

	return 1
}
