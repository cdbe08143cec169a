//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/tsdoclint"
	mainPkg = "./cmd/tsdoclint"
)

// Default builds the binary.
var Default = Build

// Aliases for the targets run most often.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"l":  Lint.Default,
	"c":  Check,
	"g":  Test.Golden,
	"bc": Bench.Corpus,
}

type (
	// Test targets run the Go test suite through gotestsum.
	Test st.Namespace
	// Lint targets format and vet the code.
	Lint st.Namespace
	// CI targets are what the pipeline gates on.
	CI st.Namespace
	// Bench targets measure linting speed.
	Bench st.Namespace
)

// Build compiles bin/tsdoclint when any Go source or module file changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "internal/", "pkg/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", versionFlags(), "-o", binary, mainPkg)
}

// Install puts tsdoclint into $GOBIN.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", versionFlags(), mainPkg)
}

// Check formats, lints and tests, in that order.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean deletes the binary and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Coverage runs the tests and renders coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs every package's tests with the race detector.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "./...",
		"-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose prints every test as it runs.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "./...")
}

// Golden rewrites the expected diagnostics under pkg/lint/rules/testdata.
// Review the diff before committing.
func (Test) Golden() error {
	return sh.RunV("go", "test", "./pkg/lint/rules/", "-run", "TestGolden", "-update")
}

// Default runs golangci-lint and applies its fixes.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt runs gofmt over the tree.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate is the full pipeline check: formatting, vet, lint, tests, a tidy
// module and a cross-compile of every release target.
func (CI) Gate() {
	st.SerialDeps(CI.Fmt, CI.Vet, CI.Lint, Test.Default, CI.Tidy, CI.Cross)
}

// Fmt fails when gofmt would change any file.
func (CI) Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("gofmt needed on:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint without fixes.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Tidy fails when go mod tidy changes go.mod or go.sum.
func (CI) Tidy() error {
	before, err := readAll("go.mod", "go.sum")
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readAll("go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod/go.sum are not tidy; run go mod tidy and commit the result")
	}
	return nil
}

// Cross builds tsdoclint for every release platform without cgo.
func (CI) Cross() error {
	targets := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	}
	for _, t := range targets {
		goos, goarch, _ := strings.Cut(t, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Corpus times a summary-format run of the built binary over the
// TypeScript project named by TSDOCLINT_BENCH_DIR.
func (Bench) Corpus() error {
	dir := os.Getenv("TSDOCLINT_BENCH_DIR")
	if dir == "" {
		return errors.New("TSDOCLINT_BENCH_DIR is not set")
	}
	st.Deps(Build)

	start := time.Now()
	cmd := exec.Command(filepath.FromSlash(binary), "lint", "--format", "summary", dir) //nolint:gosec // operator supplied
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr

	// Exit codes 1 and 2 mean findings, not a broken run.
	var exitErr *exec.ExitError
	if err := cmd.Run(); err != nil && (!errors.As(err, &exitErr) || exitErr.ExitCode() > 2) {
		return err
	}
	fmt.Printf("%s linted in %s\n", dir, time.Since(start).Round(time.Millisecond))
	return nil
}

func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs}, args...)
	return sh.RunV("go", cmdArgs...)
}

func readAll(paths ...string) ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func versionFlags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return strings.Join([]string{
		"-X main.version=" + cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"-X main.commit=" + cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"-X main.date=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}
