package emotion

import (
	"context"
	"regexp"
	"strings"

	"astra/internal/logging"
)

// PolarityProvider scores text sentiment in [-1, 1].
type PolarityProvider interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// PolarityFunc adapts a function to PolarityProvider.
type PolarityFunc func(ctx context.Context, text string) (float64, error)

// Polarity calls f.
func (f PolarityFunc) Polarity(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// negation matches a negator immediately followed by a word.
var negation = regexp.MustCompile(`\b(not|don't|isn't|aren't|won't)\s+\w+`)

// Classifier maps utterances to labels. It holds no mutable state.
type Classifier struct {
	lexicon  *Lexicon
	polarity PolarityProvider
}

// NewClassifier builds a classifier. A nil lexicon selects DefaultLexicon;
// a nil polarity provider makes the fallback always answer Neutral.
func NewClassifier(lex *Lexicon, polarity PolarityProvider) *Classifier {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Classifier{lexicon: lex, polarity: polarity}
}

// Lexicon returns the classifier's trigger sets.
func (c *Classifier) Lexicon() *Lexicon { return c.lexicon }

// Classify returns exactly one label for text. It never fails: provider
// errors degrade to Neutral.
func (c *Classifier) Classify(ctx context.Context, text string) Label {
	if strings.TrimSpace(text) == "" {
		return Neutral
	}
	lower := normalize(text)

	if !Negated(lower) {
		if label, ok := Dominant(c.lexicon.Score(lower)); ok {
			return label
		}
	} else {
		logging.PerceptionDebug("negation present, skipping keyword verdict")
	}

	return c.fallback(ctx, text)
}

func (c *Classifier) fallback(ctx context.Context, text string) Label {
	if c.polarity == nil {
		return Neutral
	}
	p, err := c.polarity.Polarity(ctx, text)
	if err != nil {
		logging.PerceptionWarn("polarity fallback failed: %v", err)
		return Neutral
	}
	label := LabelForPolarity(p)
	logging.PerceptionDebug("polarity %.3f -> %s", p, label)
	return label
}

// Negated reports whether lower-cased text contains a negation pattern.
func Negated(lower string) bool {
	return negation.MatchString(lower)
}

// LabelForPolarity maps a polarity score onto a label. Thresholds are
// evaluated in order; NaN falls through to Neutral.
func LabelForPolarity(p float64) Label {
	switch {
	case p > 0.6:
		return Joy
	case p > 0.3:
		return Excitement
	case p > 0:
		return Hope
	case p < -0.6:
		return Sadness
	case p < -0.3:
		return Anger
	case p < 0:
		return Fear
	default:
		return Neutral
	}
}

// normalize lower-cases text and folds typographic apostrophes.
func normalize(text string) string {
	return strings.ToLower(strings.ReplaceAll(text, "’", "'"))
}
