// Shared helpers for loom CLI commands.
// Implements: prd009-loom-cli (R3, R8, R9).
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mesh-intelligence/loom/internal/audit"
	"github.com/mesh-intelligence/loom/internal/engine"
	"github.com/mesh-intelligence/loom/internal/linkstore"
	"github.com/mesh-intelligence/loom/internal/paths"
	"github.com/mesh-intelligence/loom/internal/registry"
	"github.com/mesh-intelligence/loom/internal/verify"
)

// workspace bundles the opened engine with the resources behind it. The
// caller must defer Close.
type workspace struct {
	DataDir  string
	Registry *registry.SQLiteIndex
	Engine   *engine.Engine
}

// openWorkspace resolves the data directory, scaffolds it if needed, and
// wires the engine: file link store, SQLite entity registry, verification
// store, and the JSONL audit sink.
func openWorkspace() (*workspace, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	reg, err := registry.Open(paths.RegistryFile(dataDir))
	if err != nil {
		return nil, fmt.Errorf("open entity registry: %w", err)
	}

	eng, err := engine.New(engine.Config{
		Store:        linkstore.NewFileStore(dataDir),
		Index:        reg,
		Verification: verify.NewStore(paths.VerificationFile(dataDir)),
		Audit:        audit.NewJSONLSink(paths.AuditFile(dataDir), slog.Default()),
		Log:          slog.Default(),
	})
	if err != nil {
		reg.Close()
		return nil, err
	}

	return &workspace{DataDir: dataDir, Registry: reg, Engine: eng}, nil
}

// Close releases the registry database handle.
func (w *workspace) Close() error {
	return w.Registry.Close()
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
