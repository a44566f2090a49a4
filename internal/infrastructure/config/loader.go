// Package config resolves credentials and settings from the environment with
// a key=value .env overlay under the data directory.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/pkg/filesystem"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Env variable names recognized by the loader.
const (
	EnvSerperKey      = "SERPER_API_KEY"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvReplicateToken = "REPLICATE_API_TOKEN"
	EnvLlamaKey       = "LLAMA_API_KEY"
	EnvOpenAIModel    = "OPENAI_MODEL"
	EnvOpenAIBaseURL  = "OPENAI_API_BASE_URL"
	EnvLlamaModel     = "LLAMA_MODEL_VERSION"
	EnvHistoryBackend = "SMARTAI_HISTORY_BACKEND"
)

// EnvLoader reads configuration once per command invocation. Real environment
// variables win; the .env file fills in the gaps.
type EnvLoader struct {
	overrideDir string
}

// NewEnvLoader builds a loader. An empty dir means the default data directory.
func NewEnvLoader(dir string) *EnvLoader {
	return &EnvLoader{overrideDir: dir}
}

// Load implements ports.ConfigProvider.
func (l *EnvLoader) Load(context.Context) (domain.Config, error) {
	dir := l.dataDir()
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return domain.Config{}, err
	}

	// godotenv never overrides variables already set in the process
	// environment, which gives the env-first precedence we want.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg := domain.Config{
		SerperAPIKey:      os.Getenv(EnvSerperKey),
		OpenAIAPIKey:      os.Getenv(EnvOpenAIKey),
		ReplicateAPIToken: firstNonEmpty(os.Getenv(EnvReplicateToken), os.Getenv(EnvLlamaKey)),
		OpenAIModel:       os.Getenv(EnvOpenAIModel),
		OpenAIBaseURL:     os.Getenv(EnvOpenAIBaseURL),
		LlamaModelVersion: os.Getenv(EnvLlamaModel),
		HistoryBackend:    os.Getenv(EnvHistoryBackend),
		DataDir:           dir,
	}
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = "file"
	}
	return cfg, nil
}

// Save overwrites the .env file with the given key=value pairs. The file
// holds credentials, so group/other access is stripped after the write.
func (l *EnvLoader) Save(values map[string]string) error {
	dir := l.dataDir()
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	if err := godotenv.Write(values, l.EnvPath()); err != nil {
		return err
	}
	return os.Chmod(l.EnvPath(), domain.SecureFilePermissions)
}

// EnvPath returns the .env file location.
func (l *EnvLoader) EnvPath() string {
	return filepath.Join(l.dataDir(), ".env")
}

func (l *EnvLoader) dataDir() string {
	if l.overrideDir != "" {
		return l.overrideDir
	}
	return filesystem.DataDir()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ ports.ConfigProvider = (*EnvLoader)(nil)
