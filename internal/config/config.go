package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	AuthModeBasic = "basic"
	AuthModeNone  = "none"

	defaultMIDIOctave = 4
	defaultMIDITempo  = 120.0
	defaultJWTTTL     = time.Hour
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "basic": HTTP Basic credentials (or a bearer token when JWTSecret is set)
	// - "none": No auth (local dev)
	AuthMode       string
	BasicAuthUsers map[string]string // username -> bcrypt hash
	JWTSecret      string            // enables POST /api/token and bearer auth
	JWTTTL         time.Duration

	// Optional user store; BasicAuthUsers is used when empty
	DatabaseURL string

	// Comma-separated list, "*" allows any origin
	CORSAllowedOrigins []string

	// MIDI export defaults
	MIDIDefaultOctave int
	MIDIDefaultTempo  float64
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		AuthMode:           strings.ToLower(getEnv("AUTH_MODE", AuthModeBasic)),
		BasicAuthUsers:     parseUsers(getEnv("BASIC_AUTH_USERS", "")),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             getDuration("JWT_TTL", defaultJWTTTL),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MIDIDefaultOctave:  getInt("MIDI_DEFAULT_OCTAVE", defaultMIDIOctave),
		MIDIDefaultTempo:   getFloat("MIDI_DEFAULT_TEMPO", defaultMIDITempo),
	}
}

// Validate reports settings that would leave the API unusable.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeNone:
		return nil
	case AuthModeBasic:
		if len(c.BasicAuthUsers) == 0 && c.DatabaseURL == "" {
			return fmt.Errorf("AUTH_MODE=basic needs BASIC_AUTH_USERS or DATABASE_URL")
		}
		return nil
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
}

// IsAuthDisabled returns true when every request is let through
func (c *Config) IsAuthDisabled() bool {
	return c.AuthMode == AuthModeNone
}

// TokensEnabled returns true when bearer tokens can be issued and verified
func (c *Config) TokensEnabled() bool {
	return c.JWTSecret != ""
}

// CORSAllowCredentials reports whether browsers may send credentials
// cross-origin. Never with a wildcard origin, which browsers refuse.
func (c *Config) CORSAllowCredentials() bool {
	if len(c.CORSAllowedOrigins) == 0 {
		return false
	}
	for _, origin := range c.CORSAllowedOrigins {
		if origin == "*" {
			return false
		}
	}
	return true
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseUsers reads "alice:$2a$10$...,bob:$2a$10$..." into a map.
// Entries without a colon are skipped.
func parseUsers(value string) map[string]string {
	users := make(map[string]string)
	for _, entry := range splitList(value) {
		name, hash, ok := strings.Cut(entry, ":")
		if !ok || name == "" || hash == "" {
			continue
		}
		users[name] = hash
	}
	return users
}
