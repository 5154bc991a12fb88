package cliconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"PREMIUM_API_KEY":         "env-key",
				"PREMIUM_CAMPAIGN":        "env-campaign",
				"PREMIUM_ENDPOINT":        "http://example.com",
				"PREMIUM_API_VERSION":     "2.0",
				"PREMIUM_CONNECT_TIMEOUT": "3s",
				"PREMIUM_TIMEOUT":         "1m",
				"PREMIUM_WATCH_INTERVAL":  "10m",
				"PREMIUM_MAX_REDIRECTS":   "1",
				"PREMIUM_JSON_SUFFIX":     "1",
				"PREMIUM_INSECURE":        "true",
				"PREMIUM_ALLOW_STREAM":    "true",
				"PREMIUM_DEBUG":           "false",
				"PREMIUM_DISABLE_TIERS":   "native, socket",
				"PREMIUM_LOG_LEVEL":       "warn",
			},
			changed: map[string]bool{},
			initial: Config{Debug: true},
			expected: Config{
				APIKey:         "env-key",
				CampaignCode:   "env-campaign",
				Endpoint:       "http://example.com",
				APIVersion:     "2.0",
				ConnectTimeout: 3 * time.Second,
				Timeout:        time.Minute,
				WatchInterval:  10 * time.Minute,
				MaxRedirects:   1,
				JSONSuffix:     true,
				Insecure:       true,
				AllowStream:    true,
				Debug:          false,
				DisabledTiers:  []string{"native", "socket"},
				LogLevel:       "warn",
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"PREMIUM_API_KEY":  "env-key",
				"PREMIUM_CAMPAIGN": "env-campaign",
			},
			changed:  map[string]bool{"api-key": true},
			initial:  Config{APIKey: "flag-key"},
			expected: Config{APIKey: "flag-key", CampaignCode: "env-campaign"},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"PREMIUM_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"PREMIUM_MAX_REDIRECTS": "many"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PREMIUM_CAMPAIGN=dotenv-campaign\nPREMIUM_API_KEY=dotenv-key\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	// Variables already present win over the file.
	t.Setenv("PREMIUM_API_KEY", "process-key")
	t.Setenv("PREMIUM_CAMPAIGN", "")
	os.Unsetenv("PREMIUM_CAMPAIGN")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv("PREMIUM_CAMPAIGN"); got != "dotenv-campaign" {
		t.Errorf("PREMIUM_CAMPAIGN = %q, want dotenv-campaign", got)
	}
	if got := os.Getenv("PREMIUM_API_KEY"); got != "process-key" {
		t.Errorf("PREMIUM_API_KEY = %q, want process-key", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil for missing file", err)
	}
}
