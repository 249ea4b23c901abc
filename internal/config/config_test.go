package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		SecretKey: "chave",
		Dispatcher: Dispatcher{
			MaxAttempts:    3,
			BaseDelay:      time.Second,
			Multiplier:     2,
			JitterFraction: 0.2,
			AttemptTimeout: 30 * time.Second,
			MaxDateSpan:    365,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		contains string
	}{
		{
			name:   "configuração padrão é válida",
			mutate: func(c *Config) {},
		},
		{
			name:     "sem chave de criptografia",
			mutate:   func(c *Config) { c.SecretKey = "" },
			contains: "SECRET_KEY",
		},
		{
			name:     "nenhuma tentativa",
			mutate:   func(c *Config) { c.Dispatcher.MaxAttempts = 0 },
			contains: "DISPATCHER_MAX_ATTEMPTS",
		},
		{
			name:     "atraso base zerado",
			mutate:   func(c *Config) { c.Dispatcher.BaseDelay = 0 },
			contains: "DISPATCHER_BASE_DELAY",
		},
		{
			name:     "jitter negativo",
			mutate:   func(c *Config) { c.Dispatcher.JitterFraction = -0.1 },
			contains: "DISPATCHER_JITTER_FRACTION",
		},
		{
			name: "multiplicador não supera o jitter",
			mutate: func(c *Config) {
				c.Dispatcher.Multiplier = 1.2
				c.Dispatcher.JitterFraction = 0.2
			},
			contains: "DISPATCHER_MULTIPLIER",
		},
		{
			name:     "timeout por tentativa zerado",
			mutate:   func(c *Config) { c.Dispatcher.AttemptTimeout = 0 },
			contains: "DISPATCHER_ATTEMPT_TIMEOUT",
		},
		{
			name:     "intervalo máximo inválido",
			mutate:   func(c *Config) { c.Dispatcher.MaxDateSpan = 0 },
			contains: "DISPATCHER_MAX_DATE_SPAN_DAYS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.contains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}
