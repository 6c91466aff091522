// Package config loads server configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the Gandalf server.
type Config struct {
	ListenAddr     string `env:"GANDALF_LISTEN_ADDR,default=:8080"`
	RedisAddr      string `env:"GANDALF_REDIS_ADDR"` // empty disables the action historian
	AllowedOrigins string `env:"GANDALF_ALLOWED_ORIGINS,default=*"`
	LogLevel       string `env:"GANDALF_LOG_LEVEL,default=info"`
	UseJokers      bool   `env:"GANDALF_USE_JOKERS,default=false"`
	BotTurnDelayMs int    `env:"GANDALF_BOT_TURN_DELAY_MS,default=0"`
}

// Load reads .env (if present) and decodes the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine; real env vars win anyway

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}
