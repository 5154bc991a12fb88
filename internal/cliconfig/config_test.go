package cliconfig

import (
	"reflect"
	"testing"
	"time"

	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/transport"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != client.DefaultEndpoint {
		t.Errorf("Endpoint = %v, want %v", cfg.Endpoint, client.DefaultEndpoint)
	}
	if cfg.APIVersion != "1.0" {
		t.Errorf("APIVersion = %v, want 1.0", cfg.APIVersion)
	}
	if cfg.ConnectTimeout != 60*time.Second || cfg.Timeout != 120*time.Second {
		t.Errorf("timeouts = %v/%v, want 60s/120s", cfg.ConnectTimeout, cfg.Timeout)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %v, want 5", cfg.MaxRedirects)
	}
	if cfg.Insecure {
		t.Error("Insecure = true, want TLS verification on by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.APIKey = "k"
		cfg.CampaignCode = "c"
		return cfg
	}

	tests := []struct {
		name         string
		mutate       func(*Config)
		wantErr      bool
		wantEndpoint string
	}{
		{name: "valid minimal config", mutate: func(*Config) {}, wantEndpoint: client.DefaultEndpoint},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: true},
		{name: "missing campaign", mutate: func(c *Config) { c.CampaignCode = "" }, wantErr: true},
		{
			name:         "trims trailing slash",
			mutate:       func(c *Config) { c.Endpoint = "http://localhost:8080/" },
			wantEndpoint: "http://localhost:8080",
		},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "unknown tier", mutate: func(c *Config) { c.DisabledTiers = []string{"curl"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Endpoint != tt.wantEndpoint {
				t.Errorf("Endpoint = %v, want %v", cfg.Endpoint, tt.wantEndpoint)
			}
		})
	}
}

func TestConfig_ClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "k"
	cfg.CampaignCode = "c"
	cfg.JSONSuffix = true
	cfg.Insecure = true
	cfg.AllowStream = true
	cfg.DisabledTiers = []string{"native"}
	cfg.MaxRedirects = 0

	cc, err := cfg.ClientConfig()
	if err != nil {
		t.Fatalf("ClientConfig() error = %v", err)
	}

	want := client.Config{
		APIKey:             "k",
		CampaignCode:       "c",
		Endpoint:           client.DefaultEndpoint,
		APIVersion:         client.DefaultAPIVersion,
		JSONSuffix:         true,
		ConnectTimeout:     transport.DefaultConnectTimeout,
		Timeout:            transport.DefaultTimeout,
		MaxRedirects:       -1,
		InsecureSkipVerify: true,
		DisabledTiers:      []transport.Tier{transport.TierNative},
		AllowStreamOpen:    true,
	}
	if !reflect.DeepEqual(cc, want) {
		t.Errorf("ClientConfig() = %+v, want %+v", cc, want)
	}
}

func TestConfig_Masked(t *testing.T) {
	cfg := Config{APIKey: "abcdef123"}
	if got := cfg.Masked().APIKey; got != "ab*****" {
		t.Errorf("Masked().APIKey = %q", got)
	}
	if cfg.APIKey != "abcdef123" {
		t.Error("Masked() modified the receiver")
	}
	if got := (Config{APIKey: "abc"}).Masked().APIKey; got != "*****" {
		t.Errorf("short key masked as %q", got)
	}
}
