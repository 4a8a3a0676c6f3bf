package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("Expected default port 3001, got %d", cfg.Server.Port)
	}
	if cfg.Server.RateLimitRequests != 100 || cfg.Server.RateLimitWindowSeconds != 60 {
		t.Errorf("Expected default rate limit 100/60s, got %d/%ds",
			cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindowSeconds)
	}
	if cfg.Agent.Region != "us-east-1" {
		t.Errorf("Expected default region us-east-1, got %s", cfg.Agent.Region)
	}
	if cfg.Storage.Bucket != "bankiq-uploaded-docs" {
		t.Errorf("Expected default bucket, got %s", cfg.Storage.Bucket)
	}
	if cfg.Jobs.MaxAgeMinutes != 30 {
		t.Errorf("Expected default job max age 30, got %d", cfg.Jobs.MaxAgeMinutes)
	}
	if cfg.Jobs.SweepIntervalMinutes != 10 {
		t.Errorf("Expected default sweep interval 10, got %d", cfg.Jobs.SweepIntervalMinutes)
	}
}

func TestLoadFromYAML(t *testing.T) {
	content := `
server:
  port: 9090
agent:
  region: eu-west-1
  runtime_arn: arn:aws:bedrock-agentcore:eu-west-1:000000000000:runtime/test-agent
storage:
  bucket: test-bucket
log:
  level: debug
  format: json
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Agent.Region != "eu-west-1" {
		t.Errorf("Expected region eu-west-1, got %s", cfg.Agent.Region)
	}
	if cfg.Storage.Bucket != "test-bucket" {
		t.Errorf("Expected bucket test-bucket, got %s", cfg.Storage.Bucket)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}

	// Defaults still fill unset sections
	if cfg.Edgar.SubmissionsURL == "" {
		t.Error("Expected default EDGAR submissions URL")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("REGION", "us-west-2")
	t.Setenv("AGENTCORE_AGENT_ARN", "arn:aws:bedrock-agentcore:us-west-2:111111111111:runtime/override")
	t.Setenv("UPLOADED_DOCS_BUCKET", "override-bucket")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Expected port 4000 from env, got %d", cfg.Server.Port)
	}
	if cfg.Agent.Region != "us-west-2" {
		t.Errorf("Expected region us-west-2 from env, got %s", cfg.Agent.Region)
	}
	if cfg.Agent.RuntimeARN != "arn:aws:bedrock-agentcore:us-west-2:111111111111:runtime/override" {
		t.Errorf("Expected runtime ARN from env, got %s", cfg.Agent.RuntimeARN)
	}
	if cfg.Storage.Bucket != "override-bucket" {
		t.Errorf("Expected bucket from env, got %s", cfg.Storage.Bucket)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadInvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("Expected default port when PORT is invalid, got %d", cfg.Server.Port)
	}
}
