package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, "huggingface", cfg.Embedder.Provider)
	assert.Equal(t, "memory", cfg.VectorDB.Engine)
	assert.Equal(t, "cruises", cfg.VectorDB.Collection)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cruisedesk.yaml")
	content := `
llm:
  provider: anthropic
  model: claude-sonnet-4-20250514
vectordb:
  engine: chromem
  path: /tmp/index
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "chromem", cfg.VectorDB.Engine)
	assert.Equal(t, "/tmp/index", cfg.VectorDB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CRUISEDESK_LLM_PROVIDER", "cohere")
	t.Setenv("CRUISEDESK_LLM_MODEL", "command-r-plus")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cohere", cfg.LLM.Provider)
	assert.Equal(t, "command-r-plus", cfg.LLM.Model)
}

func TestValidation(t *testing.T) {
	t.Setenv("CRUISEDESK_LLM_PROVIDER", "fortune_teller")
	_, err := Load("")
	assert.Error(t, err)
}
