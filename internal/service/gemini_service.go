package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/config"
	"google.golang.org/genai"
)

type GeminiServiceInterface interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService struct {
	Client         *genai.Client
	Model          string
	EmbeddingModel string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             geminiConfig.Model,
		EmbeddingModel:    geminiConfig.EmbeddingModel,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

// Complete sends one system+user exchange and returns the model text. The
// model is asked for a JSON response body.
func (s *GeminiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := s.checkCircuit(); err != nil {
		return "", err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	var text string
	err := s.withRetry(timeoutCtx, "Complete", func() error {
		result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, genai.Text(userPrompt), genConfig)
		if err != nil {
			return err
		}
		if err := validateGenerateResponse(result); err != nil {
			return permanent(fmt.Errorf("invalid response: %w", err))
		}
		text = result.Text()
		return nil
	})
	return text, err
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if len(trimmedText) > 10000 {
		log.Printf("Warning: text length %d exceeds recommended limit, truncating...", len(trimmedText))
		trimmedText = trimmedText[:10000]
	}

	if err := s.checkCircuit(); err != nil {
		return nil, err
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	var embeddings []float32
	err := s.withRetry(timeoutCtx, "GenerateEmbedding", func() error {
		result, err := s.Client.Models.EmbedContent(timeoutCtx, s.EmbeddingModel, content, nil)
		if err != nil {
			return err
		}
		values, err := validateEmbeddingResponse(result)
		if err != nil {
			return permanent(fmt.Errorf("invalid embedding response: %w", err))
		}
		embeddings = values
		return nil
	})
	return embeddings, err
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return permanentError{err} }

// withRetry runs call with exponential backoff on retryable errors and
// feeds the circuit breaker.
func (s *GeminiService) withRetry(ctx context.Context, op string, call func() error) error {
	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for %s after %v", attempt, s.MaxRetries, op, delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				s.recordFailure()
				return fmt.Errorf("context timeout during retry: %w", ctx.Err())
			}
		}

		err := call()
		if err == nil {
			s.recordSuccess()
			return nil
		}
		lastErr = err

		var perm permanentError
		if errors.As(err, &perm) || !isRetryableError(err) {
			log.Printf("Non-retryable error in %s: %v", op, err)
			s.recordFailure()
			return fmt.Errorf("%s failed: %w", op, err)
		}

		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	s.recordFailure()
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, op, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}

	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}

	return embeddings, nil
}

func (s *GeminiService) checkCircuit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consecutiveErrors >= s.circuitBreakerMax {
		return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors)
	}
	return nil
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.mu.Unlock()
}

func (s *GeminiService) recordFailure() {
	s.mu.Lock()
	s.consecutiveErrors++
	s.mu.Unlock()
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.recordSuccess()
	log.Println("Circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveErrors, s.consecutiveErrors >= s.circuitBreakerMax
}
