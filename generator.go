package novacore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ──────────────────────────────────────────────
// Text generation — pluggable backend, HTTP default
// ──────────────────────────────────────────────

// FallbackReply is spoken when the generator fails or times out. The brain
// loop never surfaces a raw transport error to the conversation.
const FallbackReply = "...sorry, my head just went blank for a second. Can you repeat that?"

// TextGenerator renders the final utterance from the structured intent and
// the raw user message. Implementations must honor ctx cancellation.
type TextGenerator interface {
	Generate(ctx context.Context, intent *Intent, userText string) (string, error)
}

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, intent *Intent, userText string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, intent *Intent, userText string) (string, error) {
	return f(ctx, intent, userText)
}

// ─── HTTP generator (OpenAI-compatible chat endpoint) ───

// HTTPGeneratorConfig configures the HTTP generation backend.
type HTTPGeneratorConfig struct {
	BaseURL string        // e.g. "http://localhost:11434/v1"
	APIKey  string        // optional bearer token
	Model   string        // model identifier sent with each request
	Timeout time.Duration // per-request deadline; 0 means 30s
}

// HTTPGenerator talks to an OpenAI-compatible /chat/completions endpoint.
type HTTPGenerator struct {
	cfg    HTTPGeneratorConfig
	client *http.Client
}

// NewHTTPGenerator builds the backend with its own http.Client so the
// timeout applies even without a caller deadline.
func NewHTTPGenerator(cfg HTTPGeneratorConfig) *HTTPGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPGenerator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// Sampling temperature bounds. Playfulness nudges the base up or down by
// at most ±0.15; serious moments come out slightly cooler.
const (
	baseTemperature = 0.7
	minTemperature  = 0.3
	maxTemperature  = 1.0
)

// deriveTemperature maps intent playfulness (0–1) onto the sampling
// temperature: base ± (playfulness−0.5)·0.3, clamped.
func deriveTemperature(intent *Intent) float64 {
	t := baseTemperature + (intent.Playfulness-0.5)*0.3
	if t < minTemperature {
		return minTemperature
	}
	if t > maxTemperature {
		return maxTemperature
	}
	return t
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate renders the intent into a system prompt and asks the endpoint
// for the reply text.
func (g *HTTPGenerator) Generate(ctx context.Context, intent *Intent, userText string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: intent.PromptBrief()},
			{Role: "user", Content: userText},
		},
		Temperature: deriveTemperature(intent),
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generation endpoint returned %d: %s", resp.StatusCode, string(snippet))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("generation response had no content")
	}
	return parsed.Choices[0].Message.Content, nil
}
