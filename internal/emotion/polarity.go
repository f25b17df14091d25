package emotion

import (
	"context"
	"strings"
	"unicode"
)

// LexiconPolarity is an offline PolarityProvider that counts positive and
// negative words. A word directly preceded by a negator counts for half its
// weight with the sign flipped.
type LexiconPolarity struct {
	positive map[string]bool
	negative map[string]bool
}

var negators = map[string]bool{
	"not": true, "don't": true, "isn't": true, "aren't": true, "won't": true,
	"never": true, "no": true, "can't": true, "didn't": true, "doesn't": true,
}

// NewLexiconPolarity returns the built-in word-list scorer.
func NewLexiconPolarity() *LexiconPolarity {
	return &LexiconPolarity{
		positive: set("good", "great", "amazing", "wonderful", "excellent", "happy",
			"love", "best", "beautiful", "fantastic", "awesome", "nice", "glad",
			"thank", "thanks", "fun", "cool"),
		negative: set("bad", "terrible", "awful", "horrible", "sad", "angry", "hate",
			"worst", "ugly", "disappointing", "boring", "annoying", "sorry", "tired", "lost"),
	}
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Polarity returns the mean signed weight of scored words, or 0 when none scored.
func (p *LexiconPolarity) Polarity(_ context.Context, text string) (float64, error) {
	words := strings.FieldsFunc(normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	var sum float64
	var hits int
	for i, w := range words {
		var weight float64
		switch {
		case p.positive[w]:
			weight = 1
		case p.negative[w]:
			weight = -1
		default:
			continue
		}
		if i > 0 && negators[words[i-1]] {
			weight *= -0.5
		}
		sum += weight
		hits++
	}
	if hits == 0 {
		return 0, nil
	}
	return sum / float64(hits), nil
}
