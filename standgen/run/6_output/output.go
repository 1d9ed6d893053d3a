// Package output writes generated stand-ins, or checks that the written ones are current.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"go.uber.org/zap"
)

// FileSystem is the file access the output step needs.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Exported variables.
var (
	ErrStale = errors.New("generated stand-in is out of date")
)

// CheckGeneratedCode compares code against the file already written at filename.
// A missing or different file is reported as ErrStale, with a diff.
func CheckGeneratedCode(code, filename string, fileSys FileSystem, logger *zap.Logger) error {
	expected := ordered(code, filename, logger)

	existing, err := fileSys.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("%w: %s cannot be read: %w", ErrStale, filename, err)
	}

	if string(existing) == expected {
		logger.Debug("stand-in is current", zap.String("file", filename))

		return nil
	}

	diff := textdiff.Unified(filename, filename+" (regenerated)", string(existing), expected)

	return fmt.Errorf("%w: %s\n%s", ErrStale, filename, diff)
}

// FileName returns the name of the file a stand-in is written to: generated_<name>.go, or
// generated_<name>_test.go when generating into a test package or from a test file.
func FileName(standInName, pkgName, goFile string) string {
	name := strings.TrimSuffix(standInName, ".go")

	isTest := strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go")
	if isTest && !strings.HasSuffix(name, "_test") {
		name += "_test"
	}

	return "generated_" + name + ".go"
}

// WriteGeneratedCode writes code to filename, with its declarations in conventional order.
func WriteGeneratedCode(code, filename string, fileSys FileSystem, out io.Writer, logger *zap.Logger) error {
	const generatedFilePermissions = 0o600

	err := fileSys.WriteFile(filename, []byte(ordered(code, filename, logger)), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// ordered reorders declarations, falling back to code as generated when reordering fails.
func ordered(code, filename string, logger *zap.Logger) string {
	reordered, err := reorder.Source(code)
	if err != nil {
		logger.Warn("failed to reorder declarations", zap.String("file", filename), zap.Error(err))

		return code
	}

	return reordered
}
