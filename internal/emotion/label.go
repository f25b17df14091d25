// Package emotion classifies the emotional tone of player utterances.
//
// Classification is keyword-first: every label except neutral owns a set of
// trigger substrings. When no trigger fires, or a negation pattern makes the
// keyword verdict unreliable, a PolarityProvider is consulted and its score is
// mapped onto a label by fixed thresholds.
package emotion

// Label is one value of the closed emotion enumeration.
type Label string

const (
	Joy        Label = "joy"
	Sadness    Label = "sadness"
	Anger      Label = "anger"
	Fear       Label = "fear"
	Love       Label = "love"
	Surprise   Label = "surprise"
	Excitement Label = "excitement"
	Hope       Label = "hope"
	Neutral    Label = "neutral"
	Disgust    Label = "disgust"
	Gratitude  Label = "gratitude"
	Compassion Label = "compassion"
)

// Priority is the tie-break order for keyword scoring. When two labels score
// the same number of distinct triggers, the one listed first wins.
var Priority = []Label{
	Joy, Sadness, Anger, Fear, Love, Surprise,
	Excitement, Hope, Gratitude, Compassion, Disgust,
}

// All returns every label, neutral included.
func All() []Label {
	out := make([]Label, 0, len(Priority)+1)
	out = append(out, Priority...)
	return append(out, Neutral)
}

// Parse maps a string to a Label. Unknown strings yield Neutral and false.
func Parse(s string) (Label, bool) {
	for _, l := range All() {
		if string(l) == s {
			return l, true
		}
	}
	return Neutral, false
}

// Valid reports whether l is a member of the enumeration.
func (l Label) Valid() bool {
	_, ok := Parse(string(l))
	return ok
}

func (l Label) String() string { return string(l) }

var emojis = map[Label]string{
	Joy:        "😊",
	Sadness:    "😢",
	Anger:      "😠",
	Fear:       "😨",
	Surprise:   "😮",
	Neutral:    "😐",
	Disgust:    "🤢",
	Love:       "❤️",
	Excitement: "🤩",
	Hope:       "✨",
	Gratitude:  "🙏",
	Compassion: "🤗",
}

// Emoji returns the display glyph for a label.
func (l Label) Emoji() string {
	if e, ok := emojis[l]; ok {
		return e
	}
	return emojis[Neutral]
}

// Mood is the companion's suggested stance in reaction to a player emotion.
type Mood string

var moods = map[Label]Mood{
	Joy:        "happy",
	Sadness:    "supportive",
	Anger:      "calm",
	Fear:       "reassuring",
	Surprise:   "curious",
	Neutral:    "neutral",
	Disgust:    "concerned",
	Love:       "warm",
	Excitement: "excited",
	Hope:       "optimistic",
	Gratitude:  "humble",
	Compassion: "gentle",
}

// MoodFor returns the companion mood matching a player emotion.
func MoodFor(l Label) Mood {
	if m, ok := moods[l]; ok {
		return m
	}
	return moods[Neutral]
}
