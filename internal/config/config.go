package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	ModeFetch = "fetch"
	ModeClone = "clone"
)

// Config holds the harvest run settings. Values come from an optional
// TOML file; credentials stay in the environment (see the environment
// package).
type Config struct {
	ListingURL string `toml:"listing_url"`
	Owner      string `toml:"owner"`
	Mode       string `toml:"mode"`

	// StrictEligibility additionally requires public code access; the
	// looser variant harvests every active contest.
	StrictEligibility bool `toml:"strict_eligibility"`

	Concurrency     int `toml:"concurrency"`
	FileConcurrency int `toml:"file_concurrency"`
	RequestTimeoutS int `toml:"request_timeout_s"`
	CloneTimeoutS   int `toml:"clone_timeout_s"`
	CompileTimeoutS int `toml:"compile_timeout_s"`
	RetryAttempts   int `toml:"retry_attempts"`

	CloneDir      string `toml:"clone_dir"`
	OutputDir     string `toml:"output_dir"`
	SolcPath      string `toml:"solc_path"`
	CompileRoot   string `toml:"compile_root"`
	RemappingFile string `toml:"remapping_file"`
}

func Default() Config {
	return Config{
		ListingURL:      "https://code4rena.com/contests",
		Owner:           "code-423n4",
		Mode:            ModeFetch,
		Concurrency:     2,
		FileConcurrency: 4,
		RequestTimeoutS: 30,
		CloneTimeoutS:   300,
		CompileTimeoutS: 120,
		RetryAttempts:   3,
		CloneDir:        "var/harvester/repos",
		OutputDir:       "var/harvester/artifacts",
		SolcPath:        "solc",
		CompileRoot:     "src",
		RemappingFile:   "remappings.txt",
	}
}

// Load reads the settings file at path over the defaults. A missing
// file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Mode != ModeFetch && c.Mode != ModeClone {
		return fmt.Errorf("unknown acquisition mode %q (want %q or %q)", c.Mode, ModeFetch, ModeClone)
	}
	if c.Concurrency < 1 || c.FileConcurrency < 1 {
		return fmt.Errorf("concurrency limits must be at least 1")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1")
	}
	if c.RequestTimeoutS < 1 || c.CloneTimeoutS < 1 || c.CompileTimeoutS < 1 {
		return fmt.Errorf("timeouts must be at least 1 second")
	}
	return nil
}
