package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Guessing.CooldownDays)
	assert.Equal(t, 0.1, cfg.Guessing.OutlierLowerRatio)
	assert.Equal(t, 10.0, cfg.Guessing.OutlierUpperRatio)
	assert.Equal(t, 0.5, cfg.Guessing.AnchorBlendRatio)
	assert.Equal(t, 10, cfg.Cache.ReferenceTTLMinutes)
	assert.Equal(t, 16, cfg.Import.QueueSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GUESS_COOLDOWN_DAYS", "2")
	t.Setenv("OUTLIER_UPPER_RATIO", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Guessing.CooldownDays)
	assert.Equal(t, 5.0, cfg.Guessing.OutlierUpperRatio)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
