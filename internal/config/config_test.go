package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "JWT_EXPIRY", "LLM_PROVIDER", "LLM_MODEL", "AI_PROVIDER_TIMEOUT", "DB_AUTO_MIGRATE", "OTEL_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JwtExpiry)
	assert.Equal(t, 60*time.Second, cfg.Ai.ProviderTimeout)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Otel.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("AI_PROVIDER_TIMEOUT", "15")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JwtSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JwtExpiry)
	assert.Equal(t, 15*time.Second, cfg.Ai.ProviderTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "sk-test", cfg.ProviderAPIKey())
	assert.Empty(t, cfg.ProviderBaseURL())
}

func TestGetEnvAsDuration_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TIMEOUT", time.Minute))

	t.Setenv("SOME_TIMEOUT", "-5s")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TIMEOUT", time.Minute))
}

func TestProviderSelection(t *testing.T) {
	cfg := &Config{
		Keys: APIKeys{GoogleGemini: "g-key", OpenAI: "o-key"},
		Ai:   AIConfig{OllamaBaseURL: "http://ollama:11434", GeminiBaseURL: "http://gemini"},
	}

	cfg.Ai.LLMProvider = "gemini"
	assert.Equal(t, "g-key", cfg.ProviderAPIKey())
	assert.Equal(t, "http://gemini", cfg.ProviderBaseURL())

	cfg.Ai.LLMProvider = "ollama"
	assert.Empty(t, cfg.ProviderAPIKey())
	assert.Equal(t, "http://ollama:11434", cfg.ProviderBaseURL())
}
