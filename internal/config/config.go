package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configurable pathwise settings.
type Config struct {
	AutoReset  bool   `mapstructure:"auto_reset"`
	ResetHour  int    `mapstructure:"reset_hour"`
	ShowCount  int    `mapstructure:"show_count"`
	TrackTime  bool   `mapstructure:"track_time"`
	MinTime    int    `mapstructure:"min_time"` // seconds
	TrackGit   bool   `mapstructure:"track_git"`
	TrackTools bool   `mapstructure:"track_tools"`
	SortBy     string `mapstructure:"sort_by"` // "time" | "visits" | "commits"
	LogLevel   string `mapstructure:"log_level"`
}

// Keys lists the config keys in file order.
var Keys = []string{
	"auto_reset", "reset_hour", "show_count", "track_time", "min_time",
	"track_git", "track_tools", "sort_by", "log_level",
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		AutoReset:  true,
		ResetHour:  0,
		ShowCount:  5,
		TrackTime:  true,
		MinTime:    5,
		TrackGit:   true,
		TrackTools: true,
		SortBy:     "time",
		LogLevel:   "warn",
	}
}

// DefaultPath returns the config file location:
// $PATHWISE_CONFIG, else $XDG_CONFIG_HOME/pathwise/config, else ~/.config/pathwise/config.
func DefaultPath() (string, error) {
	if p := os.Getenv("PATHWISE_CONFIG"); p != "" {
		return p, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pathwise", "config"), nil
}

// Load reads the key=value file at path on top of the defaults. PATHWISE_<KEY>
// environment variables override file values. A missing file yields the
// defaults (plus any environment overrides).
//
// A value that does not parse or is out of range falls back to its default
// and is reported in warnings as a *ParseError wrapping a *ValidationError.
// err is only set when the file exists but cannot be read.
func Load(path string) (cfg *Config, warnings []error, err error) {
	v := viper.New()
	d := Defaults()
	for _, k := range Keys {
		v.SetDefault(k, d.Get(k))
	}
	v.SetEnvPrefix("PATHWISE")
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, &ParseError{Path: path, Err: err}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, err
	}

	loaded := d
	for _, k := range Keys {
		raw := v.GetString(k)
		if raw == d.Get(k) {
			continue
		}
		if err := loaded.Set(k, raw); err != nil {
			warnings = append(warnings, &ParseError{Path: path, Err: err})
		}
	}
	return &loaded, warnings, nil
}

// Save writes cfg as key=value lines, replacing path atomically.
func Save(path string, cfg Config) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# pathwise configuration\n")
	for _, k := range Keys {
		sb.WriteString(k + "=" + cfg.Get(k) + "\n")
	}

	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Get returns the string form of key's value, or "" for unknown keys.
func (c Config) Get(key string) string {
	switch key {
	case "auto_reset":
		return strconv.FormatBool(c.AutoReset)
	case "reset_hour":
		return strconv.Itoa(c.ResetHour)
	case "show_count":
		return strconv.Itoa(c.ShowCount)
	case "track_time":
		return strconv.FormatBool(c.TrackTime)
	case "min_time":
		return strconv.Itoa(c.MinTime)
	case "track_git":
		return strconv.FormatBool(c.TrackGit)
	case "track_tools":
		return strconv.FormatBool(c.TrackTools)
	case "sort_by":
		return c.SortBy
	case "log_level":
		return c.LogLevel
	}
	return ""
}

// Set parses value into key. The config is left unchanged on error.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	next := *c
	var err error
	switch key {
	case "auto_reset":
		next.AutoReset, err = parseBool(value)
	case "reset_hour":
		next.ResetHour, err = strconv.Atoi(value)
	case "show_count":
		next.ShowCount, err = strconv.Atoi(value)
	case "track_time":
		next.TrackTime, err = parseBool(value)
	case "min_time":
		next.MinTime, err = strconv.Atoi(value)
	case "track_git":
		next.TrackGit, err = parseBool(value)
	case "track_tools":
		next.TrackTools, err = parseBool(value)
	case "sort_by":
		next.SortBy = strings.ToLower(value)
	case "log_level":
		next.LogLevel = strings.ToLower(value)
	default:
		return &ValidationError{Key: key, Message: "unknown setting"}
	}
	if err != nil {
		return &ValidationError{Key: key, Message: fmt.Sprintf("invalid value %q", value)}
	}
	if err := next.check(key); err != nil {
		return err
	}
	*c = next
	return nil
}

// parseBool accepts y/yes/n/no on top of strconv.ParseBool, matching the
// answers the config wizard takes.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	for _, k := range Keys {
		if err := c.check(k); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) check(key string) error {
	switch key {
	case "reset_hour":
		if c.ResetHour < 0 || c.ResetHour > 23 {
			return &ValidationError{Key: key, Message: "must be between 0 and 23"}
		}
	case "show_count":
		if c.ShowCount < 1 || c.ShowCount > 10 {
			return &ValidationError{Key: key, Message: "must be between 1 and 10"}
		}
	case "min_time":
		if c.MinTime < 0 {
			return &ValidationError{Key: key, Message: "must not be negative"}
		}
	case "sort_by":
		switch c.SortBy {
		case "time", "visits", "commits":
		default:
			return &ValidationError{Key: key, Message: "must be one of time, visits, commits"}
		}
	case "log_level":
		switch c.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			return &ValidationError{Key: key, Message: "must be one of debug, info, warn, error"}
		}
	}
	return nil
}

// ValidationError reports an out-of-range or unparseable setting.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid setting " + e.Key + ": " + e.Message
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
