package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 10*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, 1024, cfg.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
}
