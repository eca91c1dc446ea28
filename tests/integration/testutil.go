// Package integration provides end-to-end tests for loom: CLI process tests
// against the built binary and engine tests against the production storage
// adapters.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// loomBin is the path to the built loom binary.
	loomBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated environment with its own config and data
// directory.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build loom: %v", buildErr)
	}
	if loomBin == "" {
		t.Fatal("loom binary not built (loomBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "data_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: configDir,
		DataDir:   dataDir,
	}
}

// Result holds the outcome of one loom invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunLoom runs the loom binary with the environment's directories.
func (env *TestEnv) RunLoom(args ...string) Result {
	env.t.Helper()

	full := append([]string{"--config-dir", env.ConfigDir}, args...)
	cmd := exec.Command(loomBin, full...)
	cmd.Dir = env.TempDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		env.t.Fatalf("failed to run loom %v: %v", args, err)
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

// MustRunLoom runs loom and fails the test on a non-zero exit.
func (env *TestEnv) MustRunLoom(args ...string) Result {
	env.t.Helper()

	result := env.RunLoom(args...)
	if result.ExitCode != 0 {
		env.t.Fatalf("loom %v exited %d\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}
