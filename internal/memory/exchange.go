package memory

import (
	"time"

	"astra/internal/emotion"
)

// Exchange is the persisted form of one player turn and the reply it got.
type Exchange struct {
	SessionID  string
	PlayerText string
	ReplyText  string
	Emotion    emotion.Label
	WorldID    string
	At         time.Time
}

// Events expands an exchange into its player and companion events.
func (x Exchange) Events() []Event {
	return []Event{
		{Speaker: Player, Text: x.PlayerText, Emotion: x.Emotion, WorldID: x.WorldID, At: x.At},
		{Speaker: Companion, Text: x.ReplyText, WorldID: x.WorldID, At: x.At},
	}
}
