// Package main provides the loom CLI, the command-line surface over the
// traceability link graph engine.
// Implements: prd009-loom-cli; docs/ARCHITECTURE § CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error category to the process exit code: system failures
// (filesystem, corrupted store) exit 2, everything user-correctable exits 1.
func exitCode(err error) int {
	if errors.Is(err, types.ErrIO) || errors.Is(err, types.ErrParse) {
		return exitSysError
	}
	return exitUserError
}
