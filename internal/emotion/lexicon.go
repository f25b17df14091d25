package emotion

import "strings"

// Lexicon maps labels to trigger substrings. It is immutable once built and
// safe for concurrent use.
type Lexicon struct {
	triggers map[Label][]string
}

// NewLexicon copies the given triggers into a new Lexicon, lower-casing and
// de-duplicating each entry. Neutral and unknown labels are ignored.
func NewLexicon(triggers map[Label][]string) *Lexicon {
	lex := &Lexicon{triggers: make(map[Label][]string, len(triggers))}
	for label, words := range triggers {
		if label == Neutral || !label.Valid() {
			continue
		}
		seen := make(map[string]bool, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" || seen[w] {
				continue
			}
			seen[w] = true
			lex.triggers[label] = append(lex.triggers[label], w)
		}
	}
	return lex
}

// Triggers returns a copy of the trigger list for a label.
func (l *Lexicon) Triggers(label Label) []string {
	return append([]string(nil), l.triggers[label]...)
}

// Score counts, per label, how many distinct triggers occur as substrings of
// lower. A trigger counts once no matter how often it appears.
func (l *Lexicon) Score(lower string) map[Label]int {
	scores := make(map[Label]int)
	for label, words := range l.triggers {
		for _, w := range words {
			if strings.Contains(lower, w) {
				scores[label]++
			}
		}
	}
	return scores
}

// Dominant picks the highest scoring label, breaking ties by Priority.
// It returns false when nothing scored.
func Dominant(scores map[Label]int) (Label, bool) {
	best, bestScore := Neutral, 0
	for _, label := range Priority {
		if s := scores[label]; s > bestScore {
			best, bestScore = label, s
		}
	}
	return best, bestScore > 0
}

// DefaultLexicon returns the built-in trigger sets.
func DefaultLexicon() *Lexicon {
	return NewLexicon(map[Label][]string{
		Joy: {"happy", "glad", "joy", "excited", "wonderful", "amazing",
			"love", "great", "awesome", "fantastic", "excellent"},
		Sadness: {"sad", "unhappy", "depressed", "sorry", "miss", "lonely",
			"hurt", "down", "blue", "melancholy"},
		Anger: {"angry", "mad", "frustrated", "hate", "annoyed", "irritated",
			"furious", "livid", "enraged"},
		Fear: {"afraid", "scared", "worried", "nervous", "anxious",
			"terrified", "panic", "horror", "dread"},
		Love: {"love", "adore", "care", "appreciate", "fond", "cherish",
			"heart", "dear", "beautiful"},
		Surprise: {"surprised", "shocked", "wow", "unexpected", "amazing",
			"incredible", "unbelievable"},
		Excitement: {"excited", "thrilled", "eager", "pumped", "stoked",
			"can't wait", "anticipating"},
		Hope: {"hope", "wish", "dream", "aspire", "optimistic", "positive",
			"faith", "belief"},
		Gratitude: {"thank", "grateful", "thankful", "blessed", "indebted"},
		Compassion: {"empathy", "sympathy", "compassion", "kindness",
			"feel for", "there for"},
		Disgust: {"disgust", "gross", "revolting", "nasty", "yuck", "sickening",
			"repulsive"},
	})
}
