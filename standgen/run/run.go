// Package run implements the standgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"
	"github.com/sierrasoftworks/humane-errors-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	detect "github.com/toejough/standin/standgen/run/3_detect"
	generate "github.com/toejough/standin/standgen/run/5_generate"
	output "github.com/toejough/standin/standgen/run/6_output"
)

// Interfaces - Public

// FileSystem is the file access the generator needs.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader loads the syntax of a package by import path. "." is the package being generated into.
type PackageLoader interface {
	Load(importPath string) ([]*dst.File, *token.FileSet, error)
}

// Variables - Public

// Exported variables.
var (
	ErrNoPackage = errors.New("target package unknown")
)

// Functions - Public

// Run executes standgen. It takes command-line arguments, an environment variable getter, the file system, a package
// loader, and the writer progress is reported to. On success it writes (or, with --check, verifies) a stand-in for
// the named interface in the generating package. Failures are returned as humane errors, with advice.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args, out)
	if err != nil {
		if errors.Is(err, arg.ErrHelp) {
			return nil
		}

		return humane.Wrap(err, "invalid arguments", "run standgen --help to see usage")
	}

	logger := newLogger(parsed.Verbose, out)

	info, err := getGeneratorCallInfo(parsed, getEnv)
	if err != nil {
		return err
	}

	logger.Debug("generating stand-in",
		zap.String("interface", parsed.Interface),
		zap.String("standin", info.StandInName),
		zap.String("package", info.PkgName))

	info.Contract, info.ImportPath, err = findContract(parsed.Interface, info.PkgName, getEnv, pkgLoader, logger)
	if err != nil {
		return err
	}

	code, err := generate.StandInCode(info)
	if err != nil {
		return humane.Wrap(err, "cannot generate a stand-in for "+parsed.Interface,
			"stand-ins support members returning nothing, an error, a value, or a value and an error",
			"embedded and generic interfaces must be flattened into a plain interface first")
	}

	filename := output.FileName(info.StandInName, info.PkgName, getEnv("GOFILE"))

	if parsed.Check {
		err = output.CheckGeneratedCode(code, filename, fileSys, logger)
		if err != nil {
			return humane.Wrap(err, filename+" is stale", "run go generate to regenerate it")
		}

		_, _ = fmt.Fprintf(out, "%s is up to date.\n", filename)

		return nil
	}

	err = output.WriteGeneratedCode(code, filename, fileSys, out, logger)
	if err != nil {
		return humane.Wrap(err, "cannot write the stand-in", "check that the package directory is writable")
	}

	return nil
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to stand in for (e.g. MyInterface or pkg.MyInterface)"`
	Name      string `arg:"--name"              help:"name for the generated stand-in (defaults to <Interface>StandIn)"`
	Pkg       string `arg:"--pkg"               help:"package to generate into (defaults to $GOPACKAGE)"`
	Check     bool   `arg:"--check"             help:"verify the generated file is current instead of writing it"`
	Verbose   bool   `arg:"-v,--verbose"        help:"log each generation step"`
}

// Functions - Private

// findContract locates the interface and, when it lives in another package, that package's import path.
func findContract(
	interfaceName, pkgName string, getEnv func(string) string, pkgLoader PackageLoader, logger *zap.Logger,
) (detect.Contract, string, error) {
	qualifier, localName := detect.SplitQualified(interfaceName)

	importPath := ""
	loadPath := "."

	if qualifier != "" {
		var err error

		importPath, err = resolveImportPath(qualifier, getEnv("GOFILE"), pkgLoader)
		if err != nil {
			return detect.Contract{}, "", humane.Wrap(err, "cannot resolve package "+qualifier,
				"import the package in the file with the go:generate directive",
				"or name an interface declared in this package without a qualifier")
		}

		loadPath = importPath
	}

	logger.Debug("loading package", zap.String("path", loadPath))

	files, _, err := pkgLoader.Load(loadPath)
	if err != nil {
		return detect.Contract{}, "", humane.Wrap(err, "cannot load package "+loadPath,
			"check that the package builds and is listed in go.mod")
	}

	contract, err := detect.FindInterface(files, localName)
	if err != nil {
		return detect.Contract{}, "", humane.Wrap(err, "cannot use "+interfaceName,
			"check the spelling, and qualify interfaces from other packages (pkg.Interface)")
	}

	// The package under test of a black-box test is only reachable through its qualifier.
	if qualifier == "" && contract.PkgName != pkgName {
		return detect.Contract{}, "", humane.New(
			fmt.Sprintf("%s is declared in package %s, not %s", localName, contract.PkgName, pkgName),
			fmt.Sprintf("qualify it as %s.%s", contract.PkgName, localName))
	}

	logger.Debug("found interface",
		zap.String("interface", contract.Name),
		zap.Int("members", len(contract.Iface.Methods.List)))

	return contract, importPath, nil
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(parsed cliArgs, getEnv func(string) string) (generate.Info, error) {
	pkgName := parsed.Pkg
	if pkgName == "" {
		pkgName = getEnv("GOPACKAGE")
	}

	if pkgName == "" {
		return generate.Info{}, humane.Wrap(ErrNoPackage, "cannot tell which package to generate into",
			"run standgen from a //go:generate directive", "or pass --pkg <name>")
	}

	standInName := parsed.Name
	if standInName == "" {
		_, localName := detect.SplitQualified(parsed.Interface)
		standInName = localName + "StandIn"
	}

	return generate.Info{PkgName: pkgName, StandInName: standInName}, nil
}

// newLogger returns a development logger writing to out when verbose, and a no-op logger otherwise.
func newLogger(verbose bool, out io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(out), zap.DebugLevel))
}

// parseArgs parses command-line arguments into cliArgs. Help is written to out.
func parseArgs(args []string, out io.Writer) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "standgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(out)

		return cliArgs{}, err
	}

	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// resolveImportPath finds the import path for qualifier: from the generating file when GOFILE is set, and otherwise
// from any file of the generating package.
func resolveImportPath(qualifier, goFile string, pkgLoader PackageLoader) (string, error) {
	if goFile != "" {
		return detect.InferImportPath(goFile, qualifier)
	}

	files, _, err := pkgLoader.Load(".")
	if err != nil {
		return "", fmt.Errorf("failed to load local package: %w", err)
	}

	return detect.ImportPathIn(files, qualifier)
}
