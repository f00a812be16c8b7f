package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	DatabaseURL       string
	RedisURL          string
	LLMProvider       string
	LLMModel          string
	OpenAIAPIKey      string
	GeminiAPIKey      string
	LLMTimeout        time.Duration
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	EntryPath         string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	openAIKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		LLMProvider:       normalizeProvider(getEnv("LLM_PROVIDER", ""), openAIKey, geminiKey),
		LLMModel:          getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:      openAIKey,
		GeminiAPIKey:      geminiKey,
		LLMTimeout:        getEnvSeconds("LLM_TIMEOUT_SECONDS", 120*time.Second),
		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 12),
		RateLimitWindow:   getEnvSeconds("RATE_LIMIT_WINDOW_SECONDS", 60*time.Second),
		EntryPath:         getEnv("PREVIEW_ENTRY_PATH", "src/App.tsx"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return parsed
	}
	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return time.Duration(parsed) * time.Second
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

// normalizeProvider picks the generation provider once at startup. An
// explicit LLM_PROVIDER wins; otherwise the presence of a credential selects
// the matching live provider, and no credential means the deterministic mock.
func normalizeProvider(raw, openAIKey, geminiKey string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini":
		return "gemini"
	case "mock":
		return "mock"
	}
	if openAIKey != "" {
		return "openai"
	}
	if geminiKey != "" {
		return "gemini"
	}
	return "mock"
}
