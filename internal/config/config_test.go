package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "AUTH_MODE", "BASIC_AUTH_USERS", "JWT_SECRET",
		"JWT_TTL", "DATABASE_URL", "CORS_ALLOWED_ORIGINS", "MIDI_DEFAULT_OCTAVE", "MIDI_DEFAULT_TEMPO",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthModeBasic, cfg.AuthMode)
	assert.Empty(t, cfg.BasicAuthUsers)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 4, cfg.MIDIDefaultOctave)
	assert.Equal(t, 120.0, cfg.MIDIDefaultTempo)
	assert.False(t, cfg.TokensEnabled())

	assert.Error(t, cfg.Validate(), "basic auth without users must be rejected")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_MODE", "BASIC")
	t.Setenv("BASIC_AUTH_USERS", "alice:$2a$10$abc, bob:$2a$10$def ,broken,:nohash")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MIDI_DEFAULT_OCTAVE", "3")
	t.Setenv("MIDI_DEFAULT_TEMPO", "not-a-number")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, map[string]string{
		"alice": "$2a$10$abc",
		"bob":   "$2a$10$def",
	}, cfg.BasicAuthUsers)
	assert.True(t, cfg.TokensEnabled())
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3, cfg.MIDIDefaultOctave)
	assert.Equal(t, 120.0, cfg.MIDIDefaultTempo)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{AuthMode: AuthModeNone}).Validate())
	assert.NoError(t, (&Config{AuthMode: AuthModeBasic, DatabaseURL: "postgres://x"}).Validate())
	assert.Error(t, (&Config{AuthMode: "gateway"}).Validate())
}

func TestCORSAllowCredentials(t *testing.T) {
	tests := []struct {
		name     string
		origins  []string
		expected bool
	}{
		{"default wildcard", []string{"*"}, false},
		{"wildcard among origins", []string{"https://a.example", "*"}, false},
		{"explicit origins", []string{"https://a.example", "https://b.example"}, true},
		{"none", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CORSAllowedOrigins: tt.origins}
			assert.Equal(t, tt.expected, cfg.CORSAllowCredentials())
		})
	}
}
