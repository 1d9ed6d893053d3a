//go:build targ

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/sh"
)

// Build builds bin/standgen, the binary the //go:generate directives run.
func Build() error {
	fmt.Println("Building standgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/standgen", "./standgen")
}

// Check fixes what can be fixed, then runs every check.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,
		ReorderDecls,
		GenerateCheck,
		CheckCoverage,
		Lint,
	)
}

// CheckCoverage runs the tests and fails when any function is below the coverage floor.
func CheckCoverage() error {
	fmt.Println("Checking coverage...")

	if err := targ.Deps(Test); err != nil {
		return err
	}

	report, err := output("go", "tool", "cover", "-func=coverage.out")
	if err != nil {
		return err
	}

	const minimumCoverage = 80.0

	var below []string

	for _, line := range strings.Split(report, "\n") {
		if skipCoverageLine(line) {
			continue
		}

		percent, err := strconv.ParseFloat(percentPattern.FindString(line), 64)
		if err != nil {
			return fmt.Errorf("failed to parse coverage line %q: %w", line, err)
		}

		if percent < minimumCoverage {
			below = append(below, line)
		}
	}

	if len(below) > 0 {
		slices.Sort(below)

		return fmt.Errorf("%d function(s) below %.1f%% coverage:\n  %s",
			len(below), minimumCoverage, strings.Join(below, "\n  "))
	}

	fmt.Println("All functions meet the coverage floor.")

	return nil
}

// Clean removes build and coverage output.
func Clean() {
	fmt.Println("Cleaning...")

	_ = os.Remove("coverage.out")
	_ = os.RemoveAll("bin")
}

// Generate regenerates every stand-in with the locally built standgen.
func Generate() error {
	fmt.Println("Generating...")

	if err := targ.Deps(Build); err != nil {
		return err
	}

	binDir, err := filepath.Abs("bin")
	if err != nil {
		return fmt.Errorf("failed to get absolute path for bin: %w", err)
	}

	cmd := exec.Command("go", "generate", "./...")
	cmd.Env = append(os.Environ(), "PATH="+binDir+string(filepath.ListSeparator)+os.Getenv("PATH"))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// GenerateCheck regenerates the stand-ins and fails when any of them changed.
func GenerateCheck() error {
	fmt.Println("Checking generated stand-ins...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run("git", "diff", "--exit-code", "--", ":(glob)**/generated_*.go")
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")
	return sh.Run("golangci-lint", "run", "-c", "dev/golangci.toml")
}

// Mutate runs the ooze mutation test in dev/mutation_test.go.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(Test); err != nil {
		return err
	}

	return sh.Run("go", "test", "-timeout=6000s", "-tags=mutation", "-ooze.v", "./dev", "-run=TestMutation")
}

// ReorderDecls rewrites hand-written files into the declaration order standgen emits.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	changed, err := misordered()
	if err != nil {
		return err
	}

	for file, reordered := range changed {
		if err := os.WriteFile(file, []byte(reordered.after), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", file, err)
		}

		fmt.Printf("  Reordered: %s\n", file)
	}

	fmt.Printf("Reordered %d file(s).\n", len(changed))

	return nil
}

// ReorderDeclsCheck prints a diff for each file out of declaration order, and fails if there are any.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	changed, err := misordered()
	if err != nil {
		return err
	}

	for file, reordered := range changed {
		fmt.Printf("\n%s\n", textdiff.Unified(file+" (current)", file+" (reordered)", reordered.before, reordered.after))
	}

	if len(changed) > 0 {
		return fmt.Errorf("%d file(s) need reordering, run 'targ reorder-decls'", len(changed))
	}

	return nil
}

// Test runs the tests with coverage, after regenerating the stand-ins they use.
func Test() error {
	fmt.Println("Running unit tests...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=2m",
		"-race",
		"-count=1",
		"-coverprofile=coverage.out",
		"-coverpkg=.,./internal/...,./match/...,./standgen/...",
		"./...",
	)
}

// Tidy tidies up go.mod.
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.Run("go", "mod", "tidy")
}

//nolint:gochecknoglobals // compiled once
var percentPattern = regexp.MustCompile(`\d+\.\d`)

type reordering struct {
	before, after string
}

func isGeneratedFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	buf := make([]byte, 200)

	n, err := file.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return bytes.Contains(buf[:n], []byte("Code generated")), nil
}

// misordered maps each hand-written Go file whose declarations are out of order to its reordering.
func misordered() (map[string]reordering, error) {
	changed := make(map[string]reordering)

	err := filepath.WalkDir(".", func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("unable to walk %s: %w", path, err)
		}

		if entry.IsDir() {
			if path != "." && (strings.HasPrefix(entry.Name(), ".") || strings.HasPrefix(entry.Name(), "_")) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".go" {
			return nil
		}

		if generated, err := isGeneratedFile(path); err != nil || generated {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", path, err)

			return nil
		}

		if reordered != string(content) {
			changed[path] = reordering{before: string(content), after: reordered}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find Go files: %w", err)
	}

	return changed, nil
}

func output(command string, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := exec.Command(command, args...)
	cmd.Stdout = buf
	cmd.Stderr = os.Stderr
	err := cmd.Run()

	return strings.TrimSuffix(buf.String(), "\n"), err
}

// skipCoverageLine reports whether a `go tool cover -func` line is excluded from the floor.
func skipCoverageLine(line string) bool {
	return line == "" ||
		strings.Contains(line, "main.go") ||
		strings.Contains(line, "generated_") ||
		strings.Contains(line, "total:")
}
