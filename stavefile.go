//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/formulint"

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"fz":  Bench.Fuzz,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/formulint with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/formulint")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

func Clean() error {
	for _, p := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/formulint")
}

// Default runs the race-enabled suite through gotestsum. TESTRUN narrows it
// to matching tests.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{
		"tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-race", "-p", nCores, "-parallel", nCores,
		"-coverprofile=coverage.out", "-covermode=atomic",
	}
	if run := os.Getenv("TESTRUN"); run != "" {
		args = append(args, "-run", run)
	}
	return sh.RunV("go", append(args, "./...")...)
}

// Default runs golangci-lint with auto-fix; set CI=1 to only report.
func (Lint) Default() error {
	if os.Getenv("CI") != "" {
		return sh.RunV("golangci-lint", "run", "./...")
	}
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg", "stavefile.go")
}

// FmtCheck fails when gofmt would change any file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "stavefile.go")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs everything CI requires, stopping at the first failure.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.Default, Build, Test.Default, CI.ModTidy, Bench.Smoke)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		before[i] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for i, f := range files {
		after, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if !bytes.Equal(before[i], after) {
			return errors.New(f + " changed after go mod tidy")
		}
	}
	return nil
}

func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/parser")
}

// fuzzTargets lists the fuzz tests run by Bench.Fuzz, as package and test name.
var fuzzTargets = [][2]string{
	{"./pkg/parser", "FuzzTokenize"},
	{"./pkg/parser", "FuzzParse"},
	{"./pkg/fsutil", "FuzzWriteThenRead"},
}

// Fuzz runs every fuzz test for FUZZTIME (default 30s) each.
func (Bench) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s in %s for %s...\n", ft[1], ft[0], fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft[1]+"$", "-fuzztime="+fuzzTime, ft[0]); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft[1], err)
		}
	}
	return nil
}

// Smoke builds the binary and checks the formulas under testdata.
func (Bench) Smoke() error {
	st.Deps(Build)
	return sh.RunV(binary, "check", "--format", "summary", "testdata")
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into cmd/formulint.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
