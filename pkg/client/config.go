package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/saleslv/premium-api/pkg/transport"
)

// Defaults for Config.
const (
	DefaultEndpoint   = "https://premium.sales.lv"
	DefaultAPIVersion = "1.0"
)

// Config holds the settings of a Client.
type Config struct {
	APIKey       string
	CampaignCode string

	// Endpoint is the scheme and host of the service.
	Endpoint   string
	APIVersion string
	// JSONSuffix appends ":json" to the version segment of the base URL.
	JSONSuffix bool

	ConnectTimeout time.Duration
	Timeout        time.Duration
	// MaxRedirects bounds redirect hops. Zero means the default; a negative
	// value disables redirects.
	MaxRedirects int
	// InsecureSkipVerify turns TLS certificate verification off.
	InsecureSkipVerify bool

	// DisabledTiers are never selected.
	DisabledTiers []transport.Tier
	// AllowStreamOpen permits the stream tier.
	AllowStreamOpen bool
}

// DefaultConfig returns a Config with the default endpoint, version and limits.
// APIKey and CampaignCode must still be set.
func DefaultConfig() Config {
	return Config{
		Endpoint:       DefaultEndpoint,
		APIVersion:     DefaultAPIVersion,
		ConnectTimeout: transport.DefaultConnectTimeout,
		Timeout:        transport.DefaultTimeout,
		MaxRedirects:   transport.DefaultMaxRedirects,
	}
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = transport.DefaultConnectTimeout
	}
	if c.Timeout <= 0 {
		c.Timeout = transport.DefaultTimeout
	}
	if c.MaxRedirects == 0 {
		c.MaxRedirects = transport.DefaultMaxRedirects
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("api key is required"))
	}
	if c.CampaignCode == "" {
		errs = append(errs, errors.New("campaign code is required"))
	}
	if strings.Contains(c.APIKey, "/") || strings.Contains(c.CampaignCode, "/") {
		errs = append(errs, errors.New("api key and campaign code must not contain '/'"))
	}

	u, err := url.Parse(c.Endpoint)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("parse endpoint: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("endpoint %q must use http or https", c.Endpoint))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("endpoint %q has no host", c.Endpoint))
	}

	return errors.Join(errs...)
}

func (c *Config) transportOptions() transport.Options {
	return transport.Options{
		ConnectTimeout: c.ConnectTimeout,
		Timeout:        c.Timeout,
		MaxRedirects:   max(c.MaxRedirects, 0),
		VerifyTLS:      !c.InsecureSkipVerify,
	}
}

func (c *Config) capabilities() transport.Capabilities {
	return transport.StaticCapabilities{
		Disabled:        c.DisabledTiers,
		AllowStreamOpen: c.AllowStreamOpen,
	}
}

// baseURL renders <endpoint>/API:<version>[:json]/Key:<key>/Code:<code>/.
func (c *Config) baseURL() string {
	version := c.APIVersion
	if c.JSONSuffix {
		version += ":json"
	}
	return fmt.Sprintf("%s/API:%s/Key:%s/Code:%s/", c.Endpoint, version, c.APIKey, c.CampaignCode)
}
