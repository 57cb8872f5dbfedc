// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Postgres connection string for the compliance audit trail. Empty
	// disables audit persistence.
	DatabaseURL string

	// Model provider.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	ModelTimeout  time.Duration

	// External knowledge service.
	KnowledgeServiceURL   string
	KnowledgeServiceToken string
	KnowledgeMaxSnippets  int

	SystemPrompt string
}

const defaultSystemPrompt = "Du er en hjelpsom assistent for ansatte. Svar kort og presist på norsk, og bruk kun informasjonen i konteksten når den er relevant."

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ModelTimeout:  getEnvAsDuration("MODEL_TIMEOUT", 30*time.Second),

		KnowledgeServiceURL:   getEnv("KNOWLEDGE_SERVICE_URL", ""),
		KnowledgeServiceToken: getEnv("KNOWLEDGE_SERVICE_TOKEN", ""),
		KnowledgeMaxSnippets:  getEnvAsInt("KNOWLEDGE_MAX_SNIPPETS", 4),

		SystemPrompt: getEnv("SYSTEM_PROMPT", defaultSystemPrompt),
	}
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}
