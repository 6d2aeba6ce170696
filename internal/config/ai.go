package config

import (
	"log"
	"os"
	"strings"
	"sync"
)

// AI providers accepted in AI_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderNone       = "none"
)

// ChatEndpoint is an OpenAI-compatible chat completions backend.
type ChatEndpoint struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AIConfig struct {
	Provider   string
	OpenRouter ChatEndpoint
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

// LoadAIConfig picks the text-analysis backend. Without AI_PROVIDER the
// first backend with an API key wins; with none, scoring runs offline.
func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		aiConfig = readAIConfig(LoadGeminiConfig().APIKey)
		if aiConfig.Provider == ProviderNone {
			log.Println("Warning: no AI credentials set, scoring runs with placeholder results")
		}
	})
	return aiConfig
}

func readAIConfig(geminiKey string) *AIConfig {
	cfg := &AIConfig{
		Provider: strings.ToLower(strings.TrimSpace(os.Getenv("AI_PROVIDER"))),
		OpenRouter: ChatEndpoint{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			Model:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		},
	}
	if cfg.Provider == "" {
		switch {
		case geminiKey != "":
			cfg.Provider = ProviderGemini
		case cfg.OpenRouter.APIKey != "":
			cfg.Provider = ProviderOpenRouter
		default:
			cfg.Provider = ProviderNone
		}
	}
	return cfg
}
