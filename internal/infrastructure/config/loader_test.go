package config

import (
	"context"
	"testing"
)

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	loader := NewEnvLoader(dir)
	err := loader.Save(map[string]string{
		EnvSerperKey:      "serper-from-file",
		EnvReplicateToken: "replicate-from-file",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SerperAPIKey != "serper-from-file" {
		t.Errorf("SerperAPIKey = %q", cfg.SerperAPIKey)
	}
	if cfg.ReplicateAPIToken != "replicate-from-file" {
		t.Errorf("ReplicateAPIToken = %q", cfg.ReplicateAPIToken)
	}
	if cfg.HistoryBackend != "file" {
		t.Errorf("HistoryBackend = %q, want default file", cfg.HistoryBackend)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
}

func TestLoadEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	loader := NewEnvLoader(dir)
	if err := loader.Save(map[string]string{EnvOpenAIKey: "file-key"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	t.Setenv(EnvOpenAIKey, "env-key")

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAIAPIKey != "env-key" {
		t.Errorf("OpenAIAPIKey = %q, want env value to win", cfg.OpenAIAPIKey)
	}
}

func TestLoadLlamaKeyFallback(t *testing.T) {
	dir := t.TempDir()
	loader := NewEnvLoader(dir)
	t.Setenv(EnvReplicateToken, "")
	t.Setenv(EnvLlamaKey, "legacy-token")

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ReplicateAPIToken != "legacy-token" {
		t.Errorf("ReplicateAPIToken = %q, want legacy fallback", cfg.ReplicateAPIToken)
	}
}
