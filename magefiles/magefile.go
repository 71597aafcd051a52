//go:build mage

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary      = "bin/tablero"
	coverFile   = "coverage.out"
	minCoverage = 60.0
)

const (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

var Default = Build

// Build compiles the tablero binary into bin/
func Build() error {
	if err := sh.RunV("go", "build", "-o", binary, "."); err != nil {
		return err
	}
	if _, err := os.Stat(binary); err != nil {
		return fmt.Errorf("binary not created: %w", err)
	}
	return nil
}

// Test runs the race-enabled test suite with coverage
func Test() error {
	return sh.RunV("go", "test", "-race", "-coverprofile="+coverFile, "-covermode=atomic", "./...")
}

// Coverage fails when total statement coverage drops below the threshold
func Coverage() error {
	mg.Deps(Test)

	out, err := sh.Output("go", "tool", "cover", "-func="+coverFile)
	if err != nil {
		return fmt.Errorf("reading coverage: %w", err)
	}

	var total float64
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "total:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			if _, err := fmt.Sscanf(fields[2], "%f%%", &total); err != nil {
				return fmt.Errorf("parsing coverage %q: %w", fields[2], err)
			}
		}
	}

	if total < minCoverage {
		return fmt.Errorf("coverage is %.1f%%, below %.0f%%", total, minCoverage)
	}
	fmt.Printf("coverage is %.1f%%\n", total)
	return nil
}

// Fmt reports files that gofmt -s would change
func Fmt() error {
	out, err := sh.Output("gofmt", "-s", "-l", ".")
	if err != nil {
		return err
	}

	var unformatted []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "_examples/") {
			unformatted = append(unformatted, line)
		}
	}
	if len(unformatted) > 0 {
		return fmt.Errorf("files not formatted (run 'gofmt -s -w .'):\n%s", strings.Join(unformatted, "\n"))
	}
	return nil
}

// Lint runs golangci-lint
func Lint() error {
	if _, err := sh.Output("which", "golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found (install with: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m")
}

// Vuln runs govulncheck
func Vuln() error {
	if _, err := sh.Output("which", "govulncheck"); err != nil {
		return fmt.Errorf("govulncheck not found (install with: go install golang.org/x/vuln/cmd/govulncheck@latest)")
	}
	return sh.RunV("govulncheck", "./...")
}

// Clean removes build and coverage output
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm(coverFile)
}

// PreCommit formats staged Go files and stages them again
func PreCommit(ctx context.Context) error {
	out, err := sh.Output("git", "diff", "--cached", "--name-only", "--diff-filter=ACM")
	if err != nil {
		return fmt.Errorf("failed to get staged files: %w", err)
	}

	formatted := 0
	for _, file := range strings.Split(strings.TrimSpace(out), "\n") {
		if file == "" || !strings.HasSuffix(file, ".go") {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := sh.Run("gofmt", "-w", file); err != nil {
			return fmt.Errorf("gofmt %s: %w", file, err)
		}
		if err := sh.Run("git", "add", file); err != nil {
			return fmt.Errorf("git add %s: %w", file, err)
		}
		formatted++
	}

	if formatted > 0 {
		fmt.Printf("%s✓ gofmt:%s formatted %d file(s)\n", colorGreen, colorReset, formatted)
	}
	return nil
}

type stepResult struct {
	name string
	err  error
}

// CI runs every check concurrently and prints a summary
func CI() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Format Check", Fmt},
		{"Lint", Lint},
		{"Test", Coverage},
		{"Security Scan", Vuln},
		{"Build", Build},
	}

	fmt.Printf("%s======================================%s\n", colorBlue, colorReset)
	fmt.Printf("%s     Running CI Pipeline             %s\n", colorBlue, colorReset)
	fmt.Printf("%s======================================%s\n\n", colorBlue, colorReset)

	results := make([]stepResult, len(steps))
	var wg sync.WaitGroup
	for i, step := range steps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = stepResult{name: step.name, err: step.fn()}
		}()
	}
	wg.Wait()

	return summarize(results)
}

func summarize(results []stepResult) error {
	failed := 0
	for _, r := range results {
		if r.err == nil {
			fmt.Printf("%s✅ PASS%s  %s\n", colorGreen, colorReset, r.name)
		}
	}
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("%s❌ FAIL%s  %s\n", colorRed, colorReset, r.name)
			fmt.Printf("%s%v%s\n", colorYellow, r.err, colorReset)
		}
	}

	fmt.Println()
	if failed > 0 {
		return mg.Fatalf(1, "CI failed: %d/%d steps", failed, len(results))
	}
	fmt.Printf("%s✅ All CI steps passed!%s\n", colorGreen, colorReset)
	return nil
}
