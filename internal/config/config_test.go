package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

func TestConfigMergePrecedence(t *testing.T) {
	nonEmptyString := rapid.StringMatching(`[a-zA-Z0-9/_.-]{1,20}`)

	// Generator for a Config with each string field independently empty or
	// non-empty.
	configGen := rapid.Custom(func(t *rapid.T) *Config {
		cfg := &Config{}
		if rapid.Bool().Draw(t, "hasBaseURL") {
			cfg.TelemetryBaseURL = nonEmptyString.Draw(t, "baseURL")
		}
		if rapid.Bool().Draw(t, "hasDataDir") {
			cfg.DataDir = nonEmptyString.Draw(t, "dataDir")
		}
		if rapid.Bool().Draw(t, "hasDatasetPath") {
			cfg.DatasetPath = nonEmptyString.Draw(t, "datasetPath")
		}
		if rapid.Bool().Draw(t, "hasEpisodeDir") {
			cfg.EpisodeDir = nonEmptyString.Draw(t, "episodeDir")
		}
		if rapid.Bool().Draw(t, "hasVersion") {
			cfg.Version = nonEmptyString.Draw(t, "version")
		}
		cfg.Disabled = rapid.Bool().Draw(t, "disabled")
		return cfg
	})

	rapid.Check(t, func(t *rapid.T) {
		global := configGen.Draw(t, "global")
		project := configGen.Draw(t, "project")

		merged := Merge(global, project)
		defaults := Defaults()

		checkStringField(t, "TelemetryBaseURL",
			global.TelemetryBaseURL, project.TelemetryBaseURL, defaults.TelemetryBaseURL,
			merged.TelemetryBaseURL)
		checkStringField(t, "DataDir",
			global.DataDir, project.DataDir, defaults.DataDir,
			merged.DataDir)
		checkStringField(t, "DatasetPath",
			global.DatasetPath, project.DatasetPath, defaults.DatasetPath,
			merged.DatasetPath)
		checkStringField(t, "EpisodeDir",
			global.EpisodeDir, project.EpisodeDir, defaults.EpisodeDir,
			merged.EpisodeDir)
		checkStringField(t, "Version",
			global.Version, project.Version, defaults.Version,
			merged.Version)

		// Disabled is sticky: set anywhere means set in the merge.
		if merged.Disabled != (global.Disabled || project.Disabled) {
			t.Fatalf("Disabled: global=%v project=%v merged=%v",
				global.Disabled, project.Disabled, merged.Disabled)
		}
	})
}

// checkStringField asserts the merge precedence rule for a single string field:
//   - project non-empty  → merged == project
//   - project empty, global non-empty → merged == global
//   - both empty → merged == defaultVal
func checkStringField(t *rapid.T, name, globalVal, projectVal, defaultVal, mergedVal string) {
	t.Helper()
	switch {
	case projectVal != "":
		if mergedVal != projectVal {
			t.Fatalf("%s: both set — expected project value %q, got %q", name, projectVal, mergedVal)
		}
	case globalVal != "":
		if mergedVal != globalVal {
			t.Fatalf("%s: only global set — expected global value %q, got %q", name, globalVal, mergedVal)
		}
	default:
		if mergedVal != defaultVal {
			t.Fatalf("%s: neither set — expected default %q, got %q", name, defaultVal, mergedVal)
		}
	}
}

func TestMergeDisablingIsOneWay(t *testing.T) {
	global := &Config{Disabled: true}
	project := &Config{Disabled: false}

	if merged := Merge(global, project); !merged.Disabled {
		t.Error("a project file must not re-enable transmission over a global opt-out")
	}
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.TelemetryBaseURL != "https://telemetry.codeassist.dev" {
		t.Errorf("TelemetryBaseURL: got %q", d.TelemetryBaseURL)
	}
	if d.Version != "unknown" {
		t.Errorf("Version: want %q, got %q", "unknown", d.Version)
	}
	if d.DataDir == "" || d.DatasetPath == "" || d.EpisodeDir == "" {
		t.Errorf("path defaults must be non-empty: %+v", d)
	}
	if d.Disabled {
		t.Error("telemetry must be enabled by default")
	}
}

func TestLoadGlobalMissingFileReturnsDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
	defaults := Defaults()
	if cfg.TelemetryBaseURL != defaults.TelemetryBaseURL {
		t.Errorf("TelemetryBaseURL: want %q, got %q", defaults.TelemetryBaseURL, cfg.TelemetryBaseURL)
	}
	if cfg.Version != defaults.Version {
		t.Errorf("Version: want %q, got %q", defaults.Version, cfg.Version)
	}
}

func TestLoadProjectMissingFileReturnsNil(t *testing.T) {
	tmp := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoadGlobalParseError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfgDir := filepath.Join(tmp, ".config", "codeassist")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("{invalid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadGlobal()
	if err == nil {
		t.Fatal("expected an error for invalid JSON, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TELEMETRY_BASE_URL", "http://localhost:9999")
	t.Setenv("CODEASSIST_DATA_DIR", "/var/lib/codeassist")
	t.Setenv("CODEASSIST_VERSION", "2.0.0")
	t.Setenv("DISABLE_TELEMETRY", "")

	cfg := ApplyEnv(Defaults())
	if cfg.TelemetryBaseURL != "http://localhost:9999" {
		t.Errorf("TelemetryBaseURL: got %q", cfg.TelemetryBaseURL)
	}
	if cfg.DataDir != "/var/lib/codeassist" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.Version != "2.0.0" {
		t.Errorf("Version: got %q", cfg.Version)
	}
	if cfg.Disabled {
		t.Error("Disabled should stay false without the kill switch")
	}
}

func TestTelemetryDisabledByEnv(t *testing.T) {
	cases := map[string]bool{
		"true": true, "1": true, "yes": true,
		"TRUE": true, "Yes": true,
		"false": false, "0": false, "no": false, "": false, "on": false,
	}
	for value, want := range cases {
		t.Setenv("DISABLE_TELEMETRY", value)
		if got := TelemetryDisabledByEnv(); got != want {
			t.Errorf("DISABLE_TELEMETRY=%q: want %v, got %v", value, want, got)
		}
	}
}
