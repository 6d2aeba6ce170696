package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService talks to an OpenAI-compatible chat completions API.
type OpenRouterService struct {
	client *resty.Client
	model  string
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadAIConfig().OpenRouter
	return NewOpenRouterServiceWith(cfg.BaseURL, cfg.APIKey, cfg.Model)
}

func NewOpenRouterServiceWith(baseURL, apiKey, model string) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(90 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &OpenRouterService{client: client, model: model}
}

func (s *OpenRouterService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []map[string]string{}
	if systemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": userPrompt})

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":       s.model,
			"messages":    messages,
			"temperature": 0.1,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("chat completion failed (%d): %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
