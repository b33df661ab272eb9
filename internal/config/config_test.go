package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "http://127.0.0.1:8001", cfg.AnswerAPIURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.False(t, cfg.SerializeSends)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ANSWER_API_URL", "http://answers.internal:8000")
	t.Setenv("SERIALIZE_SENDS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "http://answers.internal:8000", cfg.AnswerAPIURL)
	assert.True(t, cfg.SerializeSends)
}
