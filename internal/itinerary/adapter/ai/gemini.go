// Package ai calls the generative model that writes itineraries.
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"sarawak-tourism/internal/itinerary/domain/repository"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/resilience"

	"google.golang.org/genai"
)

const serviceName = "ai_provider"

const systemInstruction = "You are a knowledgeable local travel planner for Sarawak, Malaysia. " +
	"Write practical day-by-day itineraries grounded in the attractions, events and holidays you are given."

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("ai provider returned an empty response")

// Generator is the subset of the genai models service used here
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiCompleter implements repository.Completer with a Gemini model
type GeminiCompleter struct {
	models      Generator
	model       string
	temperature float32
	timeout     time.Duration
	breaker     *resilience.Breaker[string]
	logger      logger.Logger
}

// NewGeminiClient creates a genai client for the Gemini API
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// NewGeminiCompleter wraps models. Each call is bounded by timeout.
func NewGeminiCompleter(models Generator, model string, temperature float32, timeout time.Duration, log logger.Logger) *GeminiCompleter {
	log = log.WithComponent(serviceName)
	breaker := resilience.NewBreaker[string](resilience.DefaultBreakerConfig(serviceName), func(name, from, to string) {
		log.WithFields(map[string]interface{}{
			"breaker": name,
			"from":    from,
			"to":      to,
		}).Warn("Circuit breaker state changed")
	})

	return &GeminiCompleter{
		models:      models,
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		breaker:     breaker,
		logger:      log,
	}
}

// Complete sends prompt as a single-turn conversation identified by sessionID
func (g *GeminiCompleter) Complete(ctx context.Context, sessionID, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.breaker.Execute(func() (string, error) {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(g.temperature),
		})
		if err != nil {
			return "", err
		}
		text := extractText(resp)
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	})

	fields := map[string]interface{}{
		"session_id":  sessionID,
		"model":       g.model,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		fields["breaker_open"] = resilience.IsOpen(err)
		g.logger.WithContext(ctx).WithFields(fields).Error("Completion failed")
		return "", err
	}

	fields["chars"] = len(text)
	g.logger.WithContext(ctx).WithFields(fields).Info("Completion succeeded")
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		// first candidate only
		break
	}
	return text.String()
}

var _ repository.Completer = (*GeminiCompleter)(nil)
