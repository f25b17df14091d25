package companion

import (
	"context"
	"fmt"
	"time"

	"astra/internal/emotion"
	"astra/internal/logging"
	"astra/internal/memory"
	"astra/internal/world"
)

// Recorder persists exchanges outside the process.
type Recorder interface {
	RecordExchange(ctx context.Context, x memory.Exchange) error
}

// Reply is what Respond hands back. PersistErr is set when the exchange
// could not be recorded; Text is valid regardless.
type Reply struct {
	Text       string
	Emotion    emotion.Label
	Rule       Rule
	PersistErr error
}

// Companion glues the classifier, composer and recorder together.
type Companion struct {
	classifier     *emotion.Classifier
	composer       *Composer
	recorder       Recorder
	persistTimeout time.Duration
}

// Option customizes a Companion.
type Option func(*Companion)

// WithRecorder sets the durable store for exchanges.
func WithRecorder(r Recorder) Option {
	return func(c *Companion) { c.recorder = r }
}

// WithPersistTimeout bounds each RecordExchange call.
func WithPersistTimeout(d time.Duration) Option {
	return func(c *Companion) { c.persistTimeout = d }
}

// New builds a Companion. Nil classifier or composer select defaults.
func New(classifier *emotion.Classifier, composer *Composer, opts ...Option) *Companion {
	if classifier == nil {
		classifier = emotion.NewClassifier(nil, nil)
	}
	if composer == nil {
		composer = NewComposer(nil, nil, nil)
	}
	c := &Companion{
		classifier:     classifier,
		composer:       composer,
		persistTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classifier exposes the classifier for callers that only need labels.
func (c *Companion) Classifier() *emotion.Classifier { return c.classifier }

// Composer exposes the composer.
func (c *Companion) Composer() *Composer { return c.composer }

// Respond classifies text, composes a reply into mem and records the exchange.
// Callers must serialize Respond calls that share the same mem.
func (c *Companion) Respond(ctx context.Context, sessionID, text string, worldID world.ID, profile *Profile, mem *memory.Log) Reply {
	label := c.classifier.Classify(ctx, text)
	reply, rule := c.composer.Reply(text, label, worldID, profile)
	logging.ComposerDebug("session=%s rule=%s emotion=%s", sessionID, rule, label)

	x := c.composer.exchange(text, reply, label, worldID)
	x.SessionID = sessionID
	if mem != nil {
		mem.Append(x.Events()...)
	}

	out := Reply{Text: reply, Emotion: label, Rule: rule}
	if c.recorder != nil {
		out.PersistErr = c.record(ctx, x)
	}
	return out
}

func (c *Companion) record(ctx context.Context, x memory.Exchange) error {
	if c.persistTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.persistTimeout)
		defer cancel()
	}
	if err := c.recorder.RecordExchange(ctx, x); err != nil {
		logging.SessionWarn("failed to record exchange for session %s: %v", x.SessionID, err)
		return fmt.Errorf("record exchange: %w", err)
	}
	return nil
}
