package provider

import (
	"path/filepath"
	"testing"

	"github.com/aicmt/aicmt/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsDirectBackendWhenKeyPresent(t *testing.T) {
	gen, err := New(&config.Config{
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		RelayURL: "https://relay.example.com",
	})
	require.NoError(t, err)

	assert.IsType(t, &OpenAIGenerator{}, gen)
	assert.Equal(t, "openai", gen.Name())
}

func TestNewSelectsRelayWhenKeyAbsent(t *testing.T) {
	gen, err := New(&config.Config{
		Model:    "gpt-4o-mini",
		RelayURL: "https://relay.example.com",
	})
	require.NoError(t, err)

	assert.IsType(t, &RelayGenerator{}, gen)
	assert.Equal(t, "relay", gen.Name())
}

func TestNewRejectsMissingTemplateFile(t *testing.T) {
	_, err := New(&config.Config{
		APIKey:         "sk-test",
		PromptTemplate: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	assert.Error(t, err)
}
