// Package gemini provides a Gemini API generation backend as an alternative
// to the local ollama subprocess. Useful when no local model is installed.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"jobscreen/internal/logger"
	"jobscreen/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	retryBackoff      = 2 * time.Second
)

// wait is swappable in tests.
var wait = utils.WaitFor

// contentCaller is the slice of the genai client the invoker needs; a fake
// stands in for it in tests.
type contentCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Invoker sends prompts to the Gemini API with a bounded retry on temporary
// errors.
type Invoker struct {
	models     contentCaller
	model      string
	maxRetries int
	logger     *zap.Logger
}

// New creates an Invoker backed by the real Gemini API.
func New(ctx context.Context, apiKey, model string, maxRetries int, logg *zap.Logger) (*Invoker, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Invoker{
		models:     client.Models,
		model:      model,
		maxRetries: maxRetries,
		logger:     logger.WithBackend(logg, "gemini", model),
	}, nil
}

func (i *Invoker) Name() string { return "gemini/" + i.model }

// Generate sends the prompt and returns the first textual response. API
// errors with 5xx or 429 status are retried up to maxRetries times with a
// fixed backoff.
func (i *Invoker) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= i.maxRetries; attempt++ {
		resp, err := i.models.GenerateContent(ctx, i.model, genai.Text(prompt), nil)
		if err == nil {
			output := collectText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if !temporary(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		i.logger.Warn("temporary gemini error, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < i.maxRetries {
			if err := wait(ctx, retryBackoff); err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("generate content after %d attempts: %w", i.maxRetries, lastErr)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return strings.TrimSpace(b.String())
}

func temporary(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 429 || apiErr.Code >= 500
}
