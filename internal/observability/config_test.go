package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smallbiznis/recibo/internal/config"
)

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{Environment: "production", LogLevel: " INFO "})
	assert.Equal(t, "recibo", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug())

	assert.True(t, LoadConfig(config.Config{Environment: "development"}).Debug())
}
