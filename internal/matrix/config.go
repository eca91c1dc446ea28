package matrix

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// Sort keys accepted by Config.SortBy.
const (
	SortByID           = "id"
	SortByTitle        = "title"
	SortByPriority     = "priority"
	SortByStatus       = "status"
	SortByVerification = "verification"
	SortByCoverage     = "coverage"
)

var sortKeys = []string{
	SortByID, SortByTitle, SortByPriority, SortByStatus, SortByVerification, SortByCoverage,
}

// Config controls matrix generation: optional allow-list filters, the sort
// key, and the optional column toggles. The zero filters admit everything.
type Config struct {
	Categories          []string `yaml:"categories"`
	Priorities          []string `yaml:"priorities"`
	Statuses            []string `yaml:"statuses"`
	Verification        []string `yaml:"verification"`
	SortBy              string   `yaml:"sort_by"`
	IncludeCoverage     bool     `yaml:"include_coverage"`
	IncludeDescriptions bool     `yaml:"include_descriptions"`
}

// DefaultConfig returns the configuration used when no profile is given:
// no filters, ID order, coverage column on.
func DefaultConfig() Config {
	return Config{
		SortBy:          SortByID,
		IncludeCoverage: true,
	}
}

// Validate checks the sort key. An empty key means SortByID.
func (c *Config) Validate() error {
	if c.SortBy == "" {
		c.SortBy = SortByID
		return nil
	}
	for _, k := range sortKeys {
		if c.SortBy == k {
			return nil
		}
	}
	return fmt.Errorf("unknown sort key %q (valid: %s): %w",
		c.SortBy, strings.Join(sortKeys, ", "), types.ErrValidation)
}

// admits applies the allow-list filters to one row. Matching is
// case-insensitive; an empty list admits every value.
func (c Config) admits(row Row) bool {
	return matchesAllowList(c.Categories, row.Category) &&
		matchesAllowList(c.Priorities, row.Priority) &&
		matchesAllowList(c.Statuses, row.Status) &&
		matchesAllowList(c.Verification, row.VerificationStatus)
}

func matchesAllowList(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return true
		}
	}
	return false
}

// LoadProfile reads a YAML matrix profile.
func LoadProfile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading profile %s: %v: %w", path, err, types.ErrIO)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing profile %s: %v: %w", path, err, types.ErrParse)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveProfile writes a YAML matrix profile.
func SaveProfile(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %v: %w", path, err, types.ErrIO)
	}
	return nil
}
