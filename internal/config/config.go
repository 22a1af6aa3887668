package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	JWTTokenTTL         time.Duration
	OpenAIAPIKey        string
	AIModel             string
	InviteBaseURL       string
	InviteTTL           time.Duration
	LeaderboardCacheTTL time.Duration
	LeaderboardSize     int
	ReviewRateLimit     int
	ReviewRateWindow    time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NOOBIE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Noobie API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.token_ttl", "24h")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("invite.base_url", "https://noobie.lovable.app")
	v.SetDefault("invite.ttl", "168h")
	v.SetDefault("leaderboard.cache_ttl", "1m")
	v.SetDefault("leaderboard.size", 10)
	v.SetDefault("review.rate_limit", 5)
	v.SetDefault("review.rate_window", "1m")

	tokenTTL, err := time.ParseDuration(v.GetString("jwt.token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt token ttl: %w", err)
	}

	inviteTTL, err := time.ParseDuration(v.GetString("invite.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid invite ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("leaderboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("review.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid review rate window: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		JWTTokenTTL:         tokenTTL,
		OpenAIAPIKey:        v.GetString("openai_api_key"),
		AIModel:             v.GetString("ai.model"),
		InviteBaseURL:       strings.TrimRight(v.GetString("invite.base_url"), "/"),
		InviteTTL:           inviteTTL,
		LeaderboardCacheTTL: cacheTTL,
		LeaderboardSize:     v.GetInt("leaderboard.size"),
		ReviewRateLimit:     v.GetInt("review.rate_limit"),
		ReviewRateWindow:    rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = 10
	}

	return cfg, nil
}
