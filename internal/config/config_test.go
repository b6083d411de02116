package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.RevealDelay)
	assert.True(t, cfg.PersistenceEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HISTORY_ENABLED", "false")
	t.Setenv("REVEAL_DELAY", "10ms")
	t.Setenv("DICTIONARY_FILE", "/tmp/words.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 10*time.Millisecond, cfg.RevealDelay)
	assert.Equal(t, "/tmp/words.json", cfg.DictionaryFile)
	assert.False(t, cfg.PersistenceEnabled())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
