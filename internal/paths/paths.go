// Package paths resolves configuration and data directory locations.
// Implements: prd010-configuration-directories (R1, R2, R5).
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names per prd010 R1.2 and R2.2.
const (
	DefaultConfigDirName = ".loom"
	DefaultDataDirName   = ".loom-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "LOOM_CONFIG_DIR"
	EnvDataDir   = "LOOM_DATA_DIR"
)

// File names inside the data directory.
const (
	LinksFileName        = "links.json"
	LockFileName         = "links.lock"
	VerificationFileName = "verification.json"
	AuditFileName        = "audit.jsonl"
	RegistryFileName     = "registry.db"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/loom (fallback ~/.config/loom)
// macOS:   ~/Library/Application Support/loom
// Windows: %APPDATA%/loom
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "loom"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "loom"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "loom"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/loom (fallback ~/.local/share/loom)
// macOS:   ~/Library/Application Support/loom
// Windows: %APPDATA%/loom
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "loom"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "loom"), nil
	default:
		// macOS and Windows: same as config dir.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "loom"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > LOOM_CONFIG_DIR env > DefaultConfigDir().
//
// If flag is non-empty it wins. Otherwise the LOOM_CONFIG_DIR environment
// variable is checked. If neither is set, the platform default is returned.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > LOOM_DATA_DIR env > $(CWD)/.loom-db.
//
// The CWD-relative default keeps a freshly cloned workspace self-contained:
// running loom inside a project tracks that project's links without touching
// user-global state.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	// CWD-relative default.
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// LinksFile returns the path of the link document inside dataDir.
func LinksFile(dataDir string) string {
	return filepath.Join(dataDir, LinksFileName)
}

// LockFile returns the path of the advisory lock file inside dataDir.
func LockFile(dataDir string) string {
	return filepath.Join(dataDir, LockFileName)
}

// VerificationFile returns the path of the verification document inside dataDir.
func VerificationFile(dataDir string) string {
	return filepath.Join(dataDir, VerificationFileName)
}

// AuditFile returns the path of the audit trail inside dataDir.
func AuditFile(dataDir string) string {
	return filepath.Join(dataDir, AuditFileName)
}

// RegistryFile returns the path of the entity registry database inside dataDir.
func RegistryFile(dataDir string) string {
	return filepath.Join(dataDir, RegistryFileName)
}
