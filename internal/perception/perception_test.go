package perception

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"astra/internal/config"
	"astra/internal/emotion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParsePolarity(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{`{"polarity": 0.42}`, 0.42, false},
		{"```json\n{\"polarity\": -0.7}\n```", -0.7, false},
		{`{"polarity": 3}`, 1, false},
		{`{"polarity": -9}`, -1, false},
		{`{"score": 0.1}`, 0, true},
		{`not json`, 0, true},
	}
	for _, tt := range tests {
		got, err := parsePolarity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestHTTPPolarity(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		switch body["text"] {
		case "slow down":
			w.WriteHeader(http.StatusTooManyRequests)
		case "explode":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{"polarity": -0.45}`))
		}
	}))
	defer srv.Close()

	h, err := NewHTTPPolarity(HTTPConfig{URL: srv.URL, APIKey: "secret", Timeout: time.Second})
	require.NoError(t, err)
	ctx := context.Background()

	p, err := h.Polarity(ctx, "meh")
	require.NoError(t, err)
	assert.InDelta(t, -0.45, p, 1e-9)
	assert.Equal(t, "Bearer secret", gotAuth)

	_, err = h.Polarity(ctx, "slow down")
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = h.Polarity(ctx, "explode")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPPolarity_RequiresURL(t *testing.T) {
	_, err := NewHTTPPolarity(HTTPConfig{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPPolarity_DrivesClassifierFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"polarity": 0.8}`))
	}))
	defer srv.Close()

	h, err := NewHTTPPolarity(HTTPConfig{URL: srv.URL})
	require.NoError(t, err)
	c := emotion.NewClassifier(nil, h)
	assert.Equal(t, emotion.Joy, c.Classify(context.Background(), "a chair by the window"))

	srv.Close()
	assert.Equal(t, emotion.Neutral, c.Classify(context.Background(), "a chair by the window"))
}

type fakeModels struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = cfg
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestGeminiPolarity(t *testing.T) {
	fm := &fakeModels{text: `{"polarity": 0.35}`}
	g := newGeminiPolarity(fm, GeminiConfig{})

	p, err := g.Polarity(context.Background(), "it went fine I guess")
	require.NoError(t, err)
	assert.InDelta(t, 0.35, p, 1e-9)
	assert.Equal(t, "gemini-2.5-flash", fm.model)
	assert.Equal(t, "application/json", fm.config.ResponseMIMEType)

	fm.err = errors.New("quota")
	_, err = g.Polarity(context.Background(), "x")
	assert.Error(t, err)

	fm.err = nil
	fm.text = ""
	_, err = g.Polarity(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewGeminiPolarity_RequiresKey(t *testing.T) {
	_, err := NewGeminiPolarity(context.Background(), GeminiConfig{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

type countingProvider struct{ calls atomic.Int32 }

func (c *countingProvider) Polarity(context.Context, string) (float64, error) {
	c.calls.Add(1)
	return 0.5, nil
}

func TestLimited_RejectsOverBurst(t *testing.T) {
	inner := &countingProvider{}
	l := NewLimited(inner, 0.001, 2, 0)
	ctx := context.Background()

	_, err := l.Polarity(ctx, "a")
	require.NoError(t, err)
	_, err = l.Polarity(ctx, "b")
	require.NoError(t, err)
	_, err = l.Polarity(ctx, "c")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestLimited_WaitBoundedByMaxWait(t *testing.T) {
	inner := &countingProvider{}
	l := NewLimited(inner, 0.001, 1, 20*time.Millisecond)
	ctx := context.Background()

	_, err := l.Polarity(ctx, "a")
	require.NoError(t, err)

	start := time.Now()
	_, err = l.Polarity(ctx, "b")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLimited_Unlimited(t *testing.T) {
	inner := &countingProvider{}
	l := NewLimited(inner, 0, 1, 0)
	for i := 0; i < 50; i++ {
		_, err := l.Polarity(context.Background(), "x")
		require.NoError(t, err)
	}
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()

	p, err := FromConfig(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &emotion.LexiconPolarity{}, p)

	cfg.Sentiment.Provider = "none"
	p, err = FromConfig(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, p)

	cfg.Sentiment.Provider = "http"
	cfg.Sentiment.BaseURL = "http://127.0.0.1:1/score"
	p, err = FromConfig(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &Limited{}, p)

	cfg.Sentiment.Provider = "gemini"
	cfg.Sentiment.APIKey = ""
	_, err = FromConfig(ctx, cfg)
	assert.ErrorIs(t, err, ErrUnavailable)

	cfg.Sentiment.Provider = "oracle"
	_, err = FromConfig(ctx, cfg)
	assert.Error(t, err)
}
