package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadAIConfig_ProviderSelection(t *testing.T) {
	tests := []struct {
		name          string
		explicit      string
		geminiKey     string
		openRouterKey string
		want          string
	}{
		{"gemini key wins", "", "g-key", "or-key", ProviderGemini},
		{"openrouter fallback", "", "", "or-key", ProviderOpenRouter},
		{"no credentials", "", "", "", ProviderNone},
		{"explicit choice", " OpenRouter ", "g-key", "", ProviderOpenRouter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AI_PROVIDER", tt.explicit)
			t.Setenv("OPENROUTER_API_KEY", tt.openRouterKey)
			assert.Equal(t, tt.want, readAIConfig(tt.geminiKey).Provider)
		})
	}
}

func TestReadAIConfig_OpenRouterEndpoint(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENROUTER_MODEL", "")
	t.Setenv("OPENROUTER_BASE_URL", "http://localhost:8080/v1")

	cfg := readAIConfig("")
	assert.Equal(t, ChatEndpoint{APIKey: "or-key", Model: "openai/gpt-4o-mini", BaseURL: "http://localhost:8080/v1"}, cfg.OpenRouter)
}
