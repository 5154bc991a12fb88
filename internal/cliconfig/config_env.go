package cliconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "PREMIUM_"

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnvConfig applies configuration from environment variables (PREMIUM_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("api-key", env("API_KEY"), &cfg.APIKey)
	s.setString("campaign", env("CAMPAIGN"), &cfg.CampaignCode)
	s.setString("endpoint", env("ENDPOINT"), &cfg.Endpoint)
	s.setString("api-version", env("API_VERSION"), &cfg.APIVersion)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("connect-timeout", env("CONNECT_TIMEOUT"), &cfg.ConnectTimeout); err != nil {
		return err
	}
	if err := s.setDuration("timeout", env("TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("interval", env("WATCH_INTERVAL"), &cfg.WatchInterval); err != nil {
		return err
	}
	if err := s.setIntFromString("max-redirects", env("MAX_REDIRECTS"), &cfg.MaxRedirects); err != nil {
		return err
	}

	s.setBoolFromString("json-suffix", env("JSON_SUFFIX"), &cfg.JSONSuffix)
	s.setBoolFromString("insecure", env("INSECURE"), &cfg.Insecure)
	s.setBoolFromString("allow-stream", env("ALLOW_STREAM"), &cfg.AllowStream)
	s.setBoolFromString("debug", env("DEBUG"), &cfg.Debug)
	s.setListFromString("disable-tier", env("DISABLE_TIERS"), &cfg.DisabledTiers)

	return nil
}
