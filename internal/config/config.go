package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultPalette is the classic 16-color board palette.
var defaultPalette = []string{
	"#FFFFFF", "#E4E4E4", "#888888", "#222222",
	"#FFA7D1", "#E50000", "#E59500", "#A06A42",
	"#E5D900", "#94E044", "#02BE01", "#00D3DD",
	"#0083C7", "#0000EA", "#CF6EE4", "#820080",
}

// ProviderCredentials is an OAuth client id/secret pair for one provider.
type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether both halves of the credential pair are set.
func (p ProviderCredentials) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        int
	DatabaseURL string
	PublicURL   string

	Discord ProviderCredentials
	Google  ProviderCredentials
	Reddit  ProviderCredentials

	SignupTokenTTL time.Duration
	SessionTTL     time.Duration
	CookieSecure   bool

	CaptchaKey   string
	BoardWidth   int
	BoardHeight  int
	BoardPalette []string
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return Config{}, fmt.Errorf("parse PORT: %w", err)
	}

	signupTTL, err := getEnvDuration("SIGNUP_TOKEN_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse SIGNUP_TOKEN_TTL: %w", err)
	}

	sessionTTL, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
	}

	cookieSecure, err := getEnvBool("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse COOKIE_SECURE: %w", err)
	}

	width, err := getEnvInt("BOARD_WIDTH", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOARD_WIDTH: %w", err)
	}

	height, err := getEnvInt("BOARD_HEIGHT", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOARD_HEIGHT: %w", err)
	}

	cfg := Config{
		Port:        port,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8080"),
		Discord: ProviderCredentials{
			ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
			ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		},
		Google: ProviderCredentials{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		Reddit: ProviderCredentials{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		},
		SignupTokenTTL: signupTTL,
		SessionTTL:     sessionTTL,
		CookieSecure:   cookieSecure,
		CaptchaKey:     getEnv("CAPTCHA_KEY", ""),
		BoardWidth:     width,
		BoardHeight:    height,
		BoardPalette:   getEnvList("BOARD_PALETTE", defaultPalette),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.PublicURL == "" {
		return fmt.Errorf("PUBLIC_URL is required")
	}
	if !c.Discord.Configured() && !c.Google.Configured() && !c.Reddit.Configured() {
		return fmt.Errorf("at least one auth provider must be configured")
	}
	if c.BoardWidth <= 0 || c.BoardHeight <= 0 {
		return fmt.Errorf("board dimensions must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(v)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}

func getEnvList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
