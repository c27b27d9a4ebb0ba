// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Storage
	MongoDBURL  string
	MongoDBName string
	RedisURL    string

	// OpenAI
	OpenAIAPIKey string
	LLMModel     string
	LLMMaxTokens int
	LLMTimeout   time.Duration

	// Data files
	CategoriesPath     string
	ReplyTemplatesPath string

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration

	// CORS
	AllowedOrigins string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		MongoDBURL:  getEnv("MONGODB_URL", ""),
		MongoDBName: getEnv("MONGODB_DATABASE", "assistant"),
		RedisURL:    getEnv("REDIS_URL", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		LLMModel:     getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMMaxTokens: getEnvInt("LLM_MAX_TOKENS", 1024),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT_SEC", 60)) * time.Second,

		CategoriesPath:     getEnv("CATEGORIES_PATH", "data/categories.json"),
		ReplyTemplatesPath: getEnv("REPLY_TEMPLATES_PATH", "data/reply_templates.json"),

		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SEC", 60)) * time.Second,

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
