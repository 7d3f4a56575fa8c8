package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to report exists=false")
	}
	if cfg.Server.BaseURL != defaultBaseURL {
		t.Fatalf("unexpected base url %q", cfg.Server.BaseURL)
	}
	if cfg.Upload.PollInterval != defaultPollInterval {
		t.Fatalf("unexpected poll interval %d", cfg.Upload.PollInterval)
	}
	if cfg.Review.Limit != defaultReviewLimit {
		t.Fatalf("unexpected review limit %d", cfg.Review.Limit)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
base_url = "https://vocab.example.com/api/v1/"

[paths]
state_dir = "` + filepath.Join(dir, "state") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[review]
limit = 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Server.BaseURL != "https://vocab.example.com/api/v1" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Server.BaseURL)
	}
	if cfg.Review.Limit != 50 {
		t.Fatalf("unexpected review limit %d", cfg.Review.Limit)
	}
	if cfg.Upload.GraceDelay != defaultGraceDelay {
		t.Fatalf("grace delay default not applied: %d", cfg.Upload.GraceDelay)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "bad scheme",
			mutate: func(c *Config) { c.Server.BaseURL = "ftp://example.com" },
			want:   "http or https",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Logging.Format = "yaml" },
			want:   "logging.format",
		},
		{
			name:   "review limit too large",
			mutate: func(c *Config) { c.Review.Limit = 1000 },
			want:   "review.limit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RECALL_SERVER_URL", "https://override.example.com/api/v1")
	t.Setenv("RECALL_LOG_LEVEL", "debug")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BaseURL != "https://override.example.com/api/v1" {
		t.Fatalf("env base url not applied: %q", cfg.Server.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env log level not applied: %q", cfg.Logging.Level)
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	written, err := CreateSample(path)
	if err != nil {
		t.Fatalf("create sample: %v", err)
	}
	if written != path {
		t.Fatalf("unexpected sample path %q", written)
	}
	if _, err := CreateSample(path); err == nil {
		t.Fatal("expected error for existing file")
	}
}
