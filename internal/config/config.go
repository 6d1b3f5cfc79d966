// Package config reads process configuration from the environment. All
// values are resolved once at startup and passed in explicitly; nothing in
// the pipeline reads the environment mid-flight.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port           string
	Env            string
	OpenAIAPIKey   string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMaxAttempts int
	PolicyPath     string
	RedisAddr      string
	CacheTTL       time.Duration
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables with sensible
// defaults. A local .env file is loaded best-effort for dev convenience.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "dev"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		LLMModel:       getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		LLMMaxAttempts: getEnvInt("LLM_MAX_ATTEMPTS", 1),
		PolicyPath:     getEnv("POLICY_PATH", "loan_policy.pdf"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
