package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Minimal required settings shared by every case
	required := map[string]string{
		"WEBHOOK_BASE_URL": "https://example.bitrix24.com/rest/1/abc/",
		"SHEET_KEY":        "sheet-key",
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default values",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8080" {
					t.Errorf("expected port 8080, got %s", cfg.Port)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("expected log level info, got %s", cfg.LogLevel)
				}
				if cfg.Lookback != 24*time.Hour {
					t.Errorf("expected lookback 24h, got %v", cfg.Lookback)
				}
				if cfg.HTTPTimeout != 30*time.Second {
					t.Errorf("expected HTTP timeout 30s, got %v", cfg.HTTPTimeout)
				}
				if cfg.WorksheetName != "Dados" {
					t.Errorf("expected worksheet Dados, got %s", cfg.WorksheetName)
				}
				if len(cfg.ExcludedUserIDs) != 0 {
					t.Errorf("expected no excluded user ids, got %v", cfg.ExcludedUserIDs)
				}
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PORT":              "9000",
				"LOG_LEVEL":         "debug",
				"LOOKBACK_HOURS":    "48",
				"HTTP_TIMEOUT":      "10",
				"TARGET_DEPARTMENT": "Sales",
				"EXCLUDED_USER_IDS": "40102, 4702,1230",
				"TRIGGER_TOKEN":     "s3cret",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("expected port 9000, got %s", cfg.Port)
				}
				if cfg.Lookback != 48*time.Hour {
					t.Errorf("expected lookback 48h, got %v", cfg.Lookback)
				}
				if cfg.HTTPTimeout != 10*time.Second {
					t.Errorf("expected HTTP timeout 10s, got %v", cfg.HTTPTimeout)
				}
				if cfg.TargetDepartment != "Sales" {
					t.Errorf("expected department Sales, got %s", cfg.TargetDepartment)
				}
				if len(cfg.ExcludedUserIDs) != 3 {
					t.Errorf("expected 3 excluded user ids, got %d", len(cfg.ExcludedUserIDs))
				}
				if !cfg.ExcludedUserIDs["4702"] {
					t.Error("expected 4702 to be excluded (whitespace trimmed)")
				}
				if cfg.TriggerToken != "s3cret" {
					t.Errorf("expected trigger token s3cret, got %s", cfg.TriggerToken)
				}
			},
		},
		{
			name: "invalid LOOKBACK_HOURS",
			env: map[string]string{
				"LOOKBACK_HOURS": "invalid",
			},
			wantErr: true,
		},
		{
			name: "invalid HTTP_TIMEOUT",
			env: map[string]string{
				"HTTP_TIMEOUT": "invalid",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range required {
				os.Setenv(k, v)
			}
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			// Load config
			cfg, err := Load()

			// Check error
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Run custom checks
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadRequiredSettings(t *testing.T) {
	os.Clearenv()
	os.Setenv("SHEET_KEY", "sheet-key")
	if _, err := Load(); err == nil {
		t.Error("expected error when WEBHOOK_BASE_URL is missing")
	}

	os.Clearenv()
	os.Setenv("WEBHOOK_BASE_URL", "https://example.bitrix24.com/rest/1/abc/")
	if _, err := Load(); err == nil {
		t.Error("expected error when SHEET_KEY is missing")
	}
}
