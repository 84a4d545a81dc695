package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solharvest/harvester/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, config.ModeFetch, cfg.Mode)
	require.Equal(t, "code-423n4", cfg.Owner)
}

func TestLoadOverridesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "harvester.toml")
	content := `
mode = "clone"
concurrency = 8
clone_dir = "/tmp/checkouts"
solc_path = "/usr/local/bin/solc"
strict_eligibility = true
clone_timeout_s = 600
compile_timeout_s = 45
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg, err := config.Load(file)
	require.NoError(t, err)
	require.Equal(t, config.ModeClone, cfg.Mode)
	require.Equal(t, 8, cfg.Concurrency)
	require.Equal(t, "/tmp/checkouts", cfg.CloneDir)
	require.Equal(t, "/usr/local/bin/solc", cfg.SolcPath)
	require.True(t, cfg.StrictEligibility)
	require.Equal(t, 600, cfg.CloneTimeoutS)
	require.Equal(t, 45, cfg.CompileTimeoutS)

	// untouched keys keep their defaults
	require.Equal(t, "https://code4rena.com/contests", cfg.ListingURL)
	require.Equal(t, 4, cfg.FileConcurrency)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	badMode := filepath.Join(dir, "mode.toml")
	require.NoError(t, os.WriteFile(badMode, []byte(`mode = "teleport"`), 0644))
	_, err := config.Load(badMode)
	require.Error(t, err)

	badToml := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(badToml, []byte(`mode = [unterminated`), 0644))
	_, err = config.Load(badToml)
	require.Error(t, err)

	badConcurrency := filepath.Join(dir, "conc.toml")
	require.NoError(t, os.WriteFile(badConcurrency, []byte(`concurrency = 0`), 0644))
	_, err = config.Load(badConcurrency)
	require.Error(t, err)

	badTimeout := filepath.Join(dir, "timeout.toml")
	require.NoError(t, os.WriteFile(badTimeout, []byte(`compile_timeout_s = 0`), 0644))
	_, err = config.Load(badTimeout)
	require.Error(t, err)
}
