// Package e2e contains end-to-end tests for the framescope CLI.
// The interactive session needs a terminal, so these tests cover the
// non-interactive paths of the binary.
package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// getBinaryName returns the test binary name with platform-specific extension
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "framescope-test.exe"
	}
	return "framescope-test"
}

// getBinaryPath returns the path to execute the test binary
// If FRAMESCOPE_BINARY env var is set, use that instead (for CI with pre-built binaries)
func getBinaryPath() string {
	if path := os.Getenv("FRAMESCOPE_BINARY"); path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		return ".\\framescope-test.exe"
	}
	return "./framescope-test"
}

// buildBinary builds the CLI unless a pre-built binary is provided.
func buildBinary(t *testing.T) {
	t.Helper()
	if os.Getenv("FRAMESCOPE_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMESCOPE_E2E=1 to run)")
	}
	if os.Getenv("FRAMESCOPE_BINARY") != "" {
		return
	}

	root := getProjectRoot(t)
	buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framescope")
	buildCmd.Dir = root
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\n%s", err, out)
	}
	t.Cleanup(func() { os.Remove(filepath.Join(root, getBinaryName())) })
}

// runCLI runs the binary with stdin detached from any terminal.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	cmd := exec.Command(getBinaryPath(), args...)
	cmd.Dir = getProjectRoot(t)
	cmd.Env = append(os.Environ(), "FRAMESCOPE_CONFIG=")

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		exitCode = 0
	case errors.As(err, &exitErr):
		exitCode = exitErr.ExitCode()
	default:
		t.Fatalf("Failed to run CLI: %v", err)
	}
	return out.String(), errOut.String(), exitCode
}

// TestMissingArgument checks the usage path for a bare invocation
func TestMissingArgument(t *testing.T) {
	buildBinary(t)

	stdout, stderr, code := runCLI(t)
	if code == 0 {
		t.Fatalf("Expected non-zero exit code without arguments\nstdout: %s\nstderr: %s", stdout, stderr)
	}
	if !strings.Contains(stderr, "Error input params") {
		t.Errorf("Expected error message on stderr, got: %s", stderr)
	}
	if !strings.Contains(stdout, "framescope <video>") {
		t.Errorf("Expected usage on stdout, got: %s", stdout)
	}
}

// TestVersionFlag tests the --version flag
func TestVersionFlag(t *testing.T) {
	buildBinary(t)

	stdout, _, code := runCLI(t, "--version")
	if code != 0 {
		t.Fatalf("Version command failed with exit code %d", code)
	}
	if !strings.Contains(stdout, "framescope version") {
		t.Errorf("Unexpected version output: %s", stdout)
	}
}

// TestHelpShowsKeyTable tests that --help lists every key binding
func TestHelpShowsKeyTable(t *testing.T) {
	buildBinary(t)

	stdout, _, code := runCLI(t, "--help")
	if code != 0 {
		t.Fatalf("Help failed with exit code %d", code)
	}
	for _, want := range []string{"play", "pause", "next frame", "previous frame", "screenshot", "Esc"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Help output missing %q:\n%s", want, stdout)
		}
	}
}

// TestNonInteractiveStdin checks that a session refuses to start without a terminal
func TestNonInteractiveStdin(t *testing.T) {
	buildBinary(t)

	_, stderr, code := runCLI(t, "testdata-does-not-matter.mp4")
	if code == 0 {
		t.Fatal("Expected non-zero exit code without a terminal")
	}
	if !strings.Contains(stderr, "not a terminal") {
		t.Errorf("Expected terminal error, got: %s", stderr)
	}
}

// TestInvalidConfig checks that a broken config file is reported before any session starts
func TestInvalidConfig(t *testing.T) {
	buildBinary(t)

	cfgPath := filepath.Join(t.TempDir(), "framescope.yaml")
	if err := os.WriteFile(cfgPath, []byte("playback: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cmd := exec.Command(getBinaryPath(), "clip.mp4")
	cmd.Dir = getProjectRoot(t)
	cmd.Env = append(os.Environ(), "FRAMESCOPE_CONFIG="+cfgPath)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("Expected failure with invalid config, got output: %s", out)
	}
}

func getProjectRoot(t *testing.T) string {
	// Start from current working directory and find go.mod
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
