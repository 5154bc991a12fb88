package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/transport"
)

// Config holds CLI configuration for premium.
type Config struct {
	APIKey       string
	CampaignCode string

	Endpoint   string
	APIVersion string
	JSONSuffix bool

	ConnectTimeout time.Duration
	Timeout        time.Duration
	MaxRedirects   int
	Insecure       bool

	AllowStream   bool
	DisabledTiers []string

	WatchInterval time.Duration
	Debug         bool
	LogLevel      string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Endpoint:       client.DefaultEndpoint,
		APIVersion:     client.DefaultAPIVersion,
		ConnectTimeout: transport.DefaultConnectTimeout,
		Timeout:        transport.DefaultTimeout,
		MaxRedirects:   transport.DefaultMaxRedirects,
		WatchInterval:  time.Minute,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for errors and normalizes it.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api-key is required")
	}
	if c.CampaignCode == "" {
		return fmt.Errorf("campaign is required")
	}

	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.Endpoint == "" {
		c.Endpoint = client.DefaultEndpoint
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}
	if _, err := c.tiers(); err != nil {
		return err
	}
	return nil
}

// ClientConfig converts the CLI configuration into a client.Config.
func (c *Config) ClientConfig() (client.Config, error) {
	tiers, err := c.tiers()
	if err != nil {
		return client.Config{}, err
	}
	maxRedirects := c.MaxRedirects
	if maxRedirects == 0 {
		maxRedirects = -1
	}
	return client.Config{
		APIKey:             c.APIKey,
		CampaignCode:       c.CampaignCode,
		Endpoint:           c.Endpoint,
		APIVersion:         c.APIVersion,
		JSONSuffix:         c.JSONSuffix,
		ConnectTimeout:     c.ConnectTimeout,
		Timeout:            c.Timeout,
		MaxRedirects:       maxRedirects,
		InsecureSkipVerify: c.Insecure,
		DisabledTiers:      tiers,
		AllowStreamOpen:    c.AllowStream,
	}, nil
}

func (c *Config) tiers() ([]transport.Tier, error) {
	out := make([]transport.Tier, 0, len(c.DisabledTiers))
	for _, name := range c.DisabledTiers {
		t, err := transport.ParseTier(name)
		if err != nil {
			return nil, fmt.Errorf("disable-tier: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if len(c.APIKey) > 4 {
		c.APIKey = c.APIKey[:2] + "*****"
	} else if c.APIKey != "" {
		c.APIKey = "*****"
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt applies non-negative values; zero is meaningful for redirect limits.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || *value < 0 || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setList(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setIntFromString is setInt for environment values.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, &i, dst)
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setListFromString splits a comma-separated value.
func (s *configSetter) setListFromString(flag, value string, dst *[]string) {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	s.setList(flag, items, dst)
}
