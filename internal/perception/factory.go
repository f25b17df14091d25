package perception

import (
	"context"
	"fmt"

	"astra/internal/config"
	"astra/internal/emotion"
	"astra/internal/logging"
)

// FromConfig builds the polarity provider named by cfg.Sentiment.Provider.
// "none" yields a nil provider, which makes the classifier fall back to neutral.
func FromConfig(ctx context.Context, cfg *config.Config) (emotion.PolarityProvider, error) {
	s := cfg.Sentiment
	var inner emotion.PolarityProvider

	switch s.Provider {
	case "", "lexicon":
		logging.Perception("polarity provider: offline lexicon")
		return emotion.NewLexiconPolarity(), nil
	case "none":
		logging.Perception("polarity provider: disabled")
		return nil, nil
	case "gemini":
		g, err := NewGeminiPolarity(ctx, GeminiConfig{
			APIKey:  s.APIKey,
			Model:   s.Model,
			Timeout: cfg.GetSentimentTimeout(),
		})
		if err != nil {
			return nil, err
		}
		inner = g
	case "http":
		h, err := NewHTTPPolarity(HTTPConfig{
			URL:     s.BaseURL,
			APIKey:  s.APIKey,
			Timeout: cfg.GetSentimentTimeout(),
		})
		if err != nil {
			return nil, err
		}
		inner = h
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q: %w", s.Provider, ErrUnavailable)
	}

	logging.Perception("polarity provider: %s (%.1f/s burst %d)", s.Provider, s.RatePerSecond, s.Burst)
	return NewLimited(inner, s.RatePerSecond, s.Burst, cfg.GetSentimentMaxWait()), nil
}
