// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr     string `env:"TRANSLATOR_ADDR" envDefault:":8000"`
	LogLevel string `env:"TRANSLATOR_LOG_LEVEL" envDefault:"info"`

	DBPath   string `env:"TRANSLATOR_DB_PATH" envDefault:"translator.db"`
	RedisURL string `env:"TRANSLATOR_REDIS_URL"`

	JWTSecret string        `env:"TRANSLATOR_JWT_SECRET"`
	TokenTTL  time.Duration `env:"TRANSLATOR_TOKEN_TTL" envDefault:"720h"`

	OpenAIKey     string `env:"OPENAI_API_KEY"`
	GroqKey       string `env:"GROQ_API_KEY"`
	GroqBaseURL   string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	ElevenLabsKey string `env:"ELEVENLABS_API_KEY"`

	AvatarDir string `env:"TRANSLATOR_AVATAR_DIR" envDefault:"uploads/avatars"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, err
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("TRANSLATOR_JWT_SECRET is required")
	}
	return cfg, nil
}
