// Package config loads the codeassist telemetry configuration. Settings are
// read once at process start from JSON files and the environment, merged
// into one immutable value that is passed explicitly into the pipeline.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configurable codeassist settings.
type Config struct {
	// TelemetryBaseURL is the root URL of the telemetry collector.
	TelemetryBaseURL string `json:"telemetry_base_url"`
	// DataDir is the persistent data directory holding auth state
	// (auth/userKeyMap.json) and the default problem dataset.
	DataDir string `json:"data_dir"`
	// DatasetPath points at the problem registry file (problems.json).
	DatasetPath string `json:"dataset_path"`
	// EpisodeDir is the drop directory watched for recorded episodes.
	EpisodeDir string `json:"episode_dir"`
	// Version identifies the codeassist build in every record.
	Version string `json:"version"`
	// Disabled turns off transmission entirely; records can still be
	// computed and viewed locally. Disabling is one-way across config
	// sources: once any layer sets it, no lower-precedence rendering of
	// "disabled": false can re-enable transmission. A project file must
	// never override a user's global opt-out.
	Disabled bool `json:"disabled"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	dataDir := defaultDataDir()
	return Config{
		TelemetryBaseURL: "https://telemetry.codeassist.dev",
		DataDir:          dataDir,
		DatasetPath:      filepath.Join(dataDir, "problems.json"),
		EpisodeDir:       filepath.Join(dataDir, "episodes"),
		Version:          "unknown",
	}
}

// defaultDataDir resolves the XDG data directory for codeassist.
func defaultDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "codeassist")
}

// LoadGlobal reads ~/.config/codeassist/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "codeassist", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .codeassistrc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".codeassistrc", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking
// precedence. Missing keys fall back to global, then defaults. Disabled is
// the exception: it is sticky, true if either source sets it.
func Merge(global, project *Config) Config {
	result := Defaults()

	apply := func(c *Config) {
		if c == nil {
			return
		}
		if c.TelemetryBaseURL != "" {
			result.TelemetryBaseURL = c.TelemetryBaseURL
		}
		if c.DataDir != "" {
			result.DataDir = c.DataDir
		}
		if c.DatasetPath != "" {
			result.DatasetPath = c.DatasetPath
		}
		if c.EpisodeDir != "" {
			result.EpisodeDir = c.EpisodeDir
		}
		if c.Version != "" {
			result.Version = c.Version
		}
		if c.Disabled {
			result.Disabled = true
		}
	}
	apply(global)
	apply(project)

	return result
}

// ApplyEnv overlays environment variables, the highest-precedence source.
// TELEMETRY_BASE_URL, CODEASSIST_DATA_DIR and CODEASSIST_VERSION override
// the file values; DISABLE_TELEMETRY set to a truthy value disables
// transmission.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("TELEMETRY_BASE_URL"); v != "" {
		cfg.TelemetryBaseURL = v
	}
	if v := os.Getenv("CODEASSIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CODEASSIST_VERSION"); v != "" {
		cfg.Version = v
	}
	if TelemetryDisabledByEnv() {
		cfg.Disabled = true
	}
	return cfg
}

// TelemetryDisabledByEnv reports whether the DISABLE_TELEMETRY kill switch
// is set to a truthy value ("true", "1" or "yes", case-insensitive).
func TelemetryDisabledByEnv() bool {
	switch strings.ToLower(os.Getenv("DISABLE_TELEMETRY")) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Load builds the effective configuration: defaults, then the global file,
// then the project file, then the environment.
func Load() (Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return Config{}, err
	}
	project, err := LoadProject()
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(Merge(global, project)), nil
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
