package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	APIKey         string   `toml:"api_key"`
	CampaignCode   string   `toml:"campaign"`
	Endpoint       string   `toml:"endpoint"`
	APIVersion     string   `toml:"api_version"`
	JSONSuffix     *bool    `toml:"json_suffix"`
	ConnectTimeout string   `toml:"connect_timeout"`
	Timeout        string   `toml:"timeout"`
	MaxRedirects   *int     `toml:"max_redirects"`
	Insecure       *bool    `toml:"insecure"`
	AllowStream    *bool    `toml:"allow_stream"`
	DisabledTiers  []string `toml:"disable_tiers"`
	WatchInterval  string   `toml:"watch_interval"`
	Debug          *bool    `toml:"debug"`
	LogLevel       string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.premium/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".premium", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("api-key", fc.APIKey, &cfg.APIKey)
	s.setString("campaign", fc.CampaignCode, &cfg.CampaignCode)
	s.setString("endpoint", fc.Endpoint, &cfg.Endpoint)
	s.setString("api-version", fc.APIVersion, &cfg.APIVersion)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("connect-timeout", fc.ConnectTimeout, &cfg.ConnectTimeout); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", fc.WatchInterval, &cfg.WatchInterval); err != nil {
		return err
	}
	s.setInt("max-redirects", fc.MaxRedirects, &cfg.MaxRedirects)

	s.setBool("json-suffix", fc.JSONSuffix, &cfg.JSONSuffix)
	s.setBool("insecure", fc.Insecure, &cfg.Insecure)
	s.setBool("allow-stream", fc.AllowStream, &cfg.AllowStream)
	s.setBool("debug", fc.Debug, &cfg.Debug)
	s.setList("disable-tier", fc.DisabledTiers, &cfg.DisabledTiers)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
