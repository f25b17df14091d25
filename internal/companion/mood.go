package companion

import (
	"astra/internal/emotion"
	"astra/internal/memory"
)

// ConversationMood summarizes the player's recent emotional state over the
// last window events of mem. Neutral turns only win when nothing else was seen.
func ConversationMood(mem *memory.Log, window int) (emotion.Label, emotion.Mood) {
	counts := make(map[emotion.Label]int)
	if mem != nil {
		for _, e := range mem.Recent(window) {
			if e.Speaker != memory.Player || e.Emotion == "" || e.Emotion == emotion.Neutral {
				continue
			}
			counts[e.Emotion]++
		}
	}
	label, ok := emotion.Dominant(counts)
	if !ok {
		label = emotion.Neutral
	}
	return label, emotion.MoodFor(label)
}
