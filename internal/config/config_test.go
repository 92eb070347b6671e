package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// clearEnv blanks every PATHWISE_<KEY> override. Viper treats empty
// variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range Keys {
		t.Setenv("PATHWISE_"+strings.ToUpper(k), "")
	}
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if !d.AutoReset || d.ResetHour != 0 || d.ShowCount != 5 || !d.TrackTime ||
		d.MinTime != 5 || !d.TrackGit || !d.TrackTools || d.SortBy != "time" || d.LogLevel != "warn" {
		t.Errorf("unexpected defaults: %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, warnings, err := Load(filepath.Join(t.TempDir(), "config"))
	if err != nil || len(warnings) != 0 {
		t.Fatalf("unexpected error: %v %v", err, warnings)
	}
	if *cfg != Defaults() {
		t.Errorf("want defaults, got %+v", *cfg)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config")
	content := "# comment\nshow_count=8\ntrack_git=false\nsort_by=visits\nmin_time=30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATHWISE_MIN_TIME", "12")

	cfg, warnings, err := Load(path)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Load: %v %v", err, warnings)
	}
	if cfg.ShowCount != 8 || cfg.TrackGit || cfg.SortBy != "visits" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.MinTime != 12 {
		t.Errorf("env override: want 12, got %d", cfg.MinTime)
	}
	if !cfg.AutoReset || !cfg.TrackTools {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config")
	content := "show_count=42\nsort_by=size\ntrack_git=false\nmin_time=soon\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATHWISE_RESET_HOUR", "30")

	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("invalid values should not fail the load: %v", err)
	}
	d := Defaults()
	if cfg.ShowCount != d.ShowCount || cfg.SortBy != d.SortBy || cfg.MinTime != d.MinTime || cfg.ResetHour != d.ResetHour {
		t.Errorf("invalid values should fall back to defaults: %+v", cfg)
	}
	if cfg.TrackGit {
		t.Error("valid values should still apply")
	}

	var keys []string
	for _, w := range warnings {
		var parseErr *ParseError
		if !errors.As(w, &parseErr) || parseErr.Path != path {
			t.Errorf("expected *ParseError for %s, got %T: %v", path, w, w)
		}
		var valErr *ValidationError
		if !errors.As(w, &valErr) {
			t.Fatalf("expected ValidationError, got %v", w)
		}
		keys = append(keys, valErr.Key)
	}
	want := []string{"reset_hour", "show_count", "min_time", "sort_by"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("warned keys: want %v, got %v", want, keys)
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	clearEnv(t)
	// A directory where the file should be cannot be read.
	path := t.TempDir()
	if _, _, err := Load(path); err == nil {
		t.Error("want an error for an unreadable config file")
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	tests := []struct{ key, value string }{
		{"reset_hour", "24"},
		{"show_count", "0"},
		{"show_count", "many"},
		{"min_time", "-1"},
		{"track_time", "perhaps"},
		{"sort_by", "size"},
		{"log_level", "loud"},
		{"colour", "blue"},
	}
	for _, tt := range tests {
		cfg := Defaults()
		if err := cfg.Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%s, %s) should fail", tt.key, tt.value)
		}
		if cfg != Defaults() {
			t.Errorf("failed Set(%s) mutated config: %+v", tt.key, cfg)
		}
	}
}

func TestSetAcceptsWizardAnswers(t *testing.T) {
	cfg := Defaults()
	for key, value := range map[string]string{
		"auto_reset": "n", "track_tools": "yes", "reset_hour": "4", "sort_by": "Commits",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%s, %s): %v", key, value, err)
		}
	}
	if cfg.AutoReset || !cfg.TrackTools || cfg.ResetHour != 4 || cfg.SortBy != "commits" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("PATHWISE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	if got, _ := DefaultPath(); got != "/tmp/cfg/pathwise/config" {
		t.Errorf("got %s", got)
	}
	t.Setenv("PATHWISE_CONFIG", "/tmp/custom")
	if got, _ := DefaultPath(); got != "/tmp/custom" {
		t.Errorf("got %s", got)
	}
}

// Feature: pathwise, Property: a saved config loads back unchanged.
func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		cfg := Config{
			AutoReset:  rapid.Bool().Draw(t, "auto_reset"),
			ResetHour:  rapid.IntRange(0, 23).Draw(t, "reset_hour"),
			ShowCount:  rapid.IntRange(1, 10).Draw(t, "show_count"),
			TrackTime:  rapid.Bool().Draw(t, "track_time"),
			MinTime:    rapid.IntRange(0, 3600).Draw(t, "min_time"),
			TrackGit:   rapid.Bool().Draw(t, "track_git"),
			TrackTools: rapid.Bool().Draw(t, "track_tools"),
			SortBy:     rapid.SampledFrom([]string{"time", "visits", "commits"}).Draw(t, "sort_by"),
			LogLevel:   rapid.SampledFrom([]string{"debug", "info", "warn", "error"}).Draw(t, "log_level"),
		}
		path := filepath.Join(dir, "config-"+strconv.Itoa(rapid.IntRange(0, 1<<20).Draw(t, "n")))
		if err := Save(path, cfg); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, warnings, err := Load(path)
		if err != nil || len(warnings) != 0 {
			t.Fatalf("Load: %v %v", err, warnings)
		}
		if *got != cfg {
			t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, *got)
		}
	})
}
