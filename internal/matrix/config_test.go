package matrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/loom/pkg/types"
)

func TestConfigValidate(t *testing.T) {
	t.Run("empty defaults to id", func(t *testing.T) {
		cfg := Config{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, SortByID, cfg.SortBy)
	})

	t.Run("known keys pass", func(t *testing.T) {
		for _, k := range sortKeys {
			cfg := Config{SortBy: k}
			assert.NoError(t, cfg.Validate(), k)
		}
	})

	t.Run("unknown key fails", func(t *testing.T) {
		cfg := Config{SortBy: "weight"}
		assert.ErrorIs(t, cfg.Validate(), types.ErrValidation)
	})
}

func TestProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	in := Config{
		Categories:          []string{"security", "reporting"},
		Priorities:          []string{"Critical"},
		Statuses:            []string{"Approved"},
		Verification:        []string{StatusVerified},
		SortBy:              SortByCoverage,
		IncludeCoverage:     true,
		IncludeDescriptions: true,
	}

	require.NoError(t, SaveProfile(path, in))

	out, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadProfileHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	doc := `categories:
  - security
sort_by: priority
include_coverage: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"security"}, cfg.Categories)
	assert.Equal(t, SortByPriority, cfg.SortBy)
	assert.True(t, cfg.IncludeCoverage)
	assert.False(t, cfg.IncludeDescriptions)
}

func TestLoadProfileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, types.ErrIO)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: [unterminated"), 0o644))
		_, err := LoadProfile(path)
		assert.ErrorIs(t, err, types.ErrParse)
	})

	t.Run("bad sort key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sort_by: nope"), 0o644))
		_, err := LoadProfile(path)
		assert.ErrorIs(t, err, types.ErrValidation)
	})
}

func TestAdmits(t *testing.T) {
	row := Row{
		Category:           "security",
		Priority:           "High",
		Status:             "Approved",
		VerificationStatus: StatusNotVerified,
	}

	assert.True(t, Config{}.admits(row), "zero config admits everything")
	assert.True(t, Config{Categories: []string{"SECURITY"}}.admits(row))
	assert.False(t, Config{Categories: []string{"reporting"}}.admits(row))
	assert.True(t, Config{Priorities: []string{"high"}}.admits(row))
	assert.False(t, Config{Verification: []string{StatusVerified}}.admits(row))
}
