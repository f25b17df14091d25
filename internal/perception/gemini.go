package perception

import (
	"context"
	"fmt"
	"strings"
	"time"

	"astra/internal/logging"

	"google.golang.org/genai"
)

const polaritySystemPrompt = `You rate the sentiment of a single chat message.
Reply with JSON only: {"polarity": <number between -1 and 1>}.
-1 is extremely negative, 0 is neutral, 1 is extremely positive.`

// contentGenerator is the slice of *genai.Models we use.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig holds Gemini polarity settings.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:  apiKey,
		Model:   "gemini-2.5-flash",
		Timeout: 10 * time.Second,
	}
}

// GeminiPolarity asks a Gemini model for a polarity score.
type GeminiPolarity struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewGeminiPolarity creates a Gemini-backed provider.
func NewGeminiPolarity(ctx context.Context, cfg GeminiConfig) (*GeminiPolarity, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: API key is required: %w", ErrUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiPolarity(client.Models, cfg), nil
}

func newGeminiPolarity(models contentGenerator, cfg GeminiConfig) *GeminiPolarity {
	def := DefaultGeminiConfig(cfg.APIKey)
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &GeminiPolarity{models: models, model: cfg.Model, timeout: cfg.Timeout}
}

// Polarity implements emotion.PolarityProvider.
func (g *GeminiPolarity) Polarity(ctx context.Context, text string) (float64, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	timer := logging.StartTimer(logging.CategoryAPI, "gemini.Polarity")
	defer timer.StopWithThreshold(2 * time.Second)

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0),
			MaxOutputTokens:  64,
			ResponseMIMEType: "application/json",
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: polaritySystemPrompt}},
			},
		})
	if err != nil {
		logging.APIWarn("gemini polarity request failed: %v", err)
		return 0, fmt.Errorf("gemini polarity: %w", err)
	}

	out := extractText(resp)
	if out == "" {
		return 0, fmt.Errorf("gemini polarity: empty response: %w", ErrUnavailable)
	}
	p, err := parsePolarity(out)
	if err != nil {
		return 0, fmt.Errorf("gemini polarity: %w", err)
	}
	logging.APIDebug("gemini polarity=%.3f model=%s", p, g.model)
	return p, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
