package companion

import (
	"math/rand/v2"
	"testing"
	"time"

	"astra/internal/emotion"
	"astra/internal/memory"
	"astra/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastPicker always chooses the final candidate.
type lastPicker struct{}

func (lastPicker) IntN(n int) int { return n - 1 }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestComposer(p Picker) *Composer {
	return NewComposer(nil, nil, p, WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}))
}

func TestCompose_GreetingRegardlessOfEmotion(t *testing.T) {
	c := newTestComposer(seeded(1))
	tpl := DefaultTemplates()

	for _, label := range emotion.All() {
		got := c.Compose("hello", label, world.None, nil, memory.New())
		assert.Contains(t, tpl.Greeting, got, "label %s", label)
	}
}

func TestCompose_DirectIntents(t *testing.T) {
	c := newTestComposer(lastPicker{})
	tpl := DefaultTemplates()

	tests := []struct {
		text string
		want string
		rule Rule
	}{
		{"thank you so much", tpl.Thanks[len(tpl.Thanks)-1], RuleThanks},
		{"goodbye for now", tpl.Farewell, RuleFarewell},
		{"how are you doing", tpl.HowAreYou, RuleHowAreYou},
		{"who are you", tpl.Identity, RuleIdentity},
		{"what can you do", tpl.Capabilities, RuleCapabilities},
		{"list your capabilities", tpl.Capabilities, RuleCapabilities},
		{"what can i ask", tpl.HelpGeneric, RuleHelp},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, rule := c.Reply(tt.text, emotion.Neutral, world.None, nil)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestCompose_IntentsBeatEmotion(t *testing.T) {
	c := newTestComposer(lastPicker{})
	_, rule := c.Reply("hello, I am so sad", emotion.Sadness, world.None, nil)
	assert.Equal(t, RuleGreeting, rule)
}

func TestCompose_WorldAwareHelp(t *testing.T) {
	c := newTestComposer(lastPicker{})
	got, rule := c.Reply("help me", emotion.Neutral, world.God, nil)
	assert.Equal(t, RuleHelp, rule)
	assert.Equal(t, "In this world, you can ask about: wisdom, balance, peace, philosophy, spirituality. Or ask me anything else!", got)
}

func TestCompose_EmotionReplies(t *testing.T) {
	c := newTestComposer(lastPicker{})
	tpl := DefaultTemplates()

	// keyword in text, label neutral
	got, rule := c.Reply("I feel so sad", emotion.Neutral, world.Space, nil)
	assert.Equal(t, RuleEmotion, rule)
	assert.Equal(t, tpl.Emotion[emotion.Sadness], got)

	// label only, world ignored
	got, _ = c.Reply("the weather today", emotion.Fear, world.Earth, nil)
	assert.Equal(t, tpl.Emotion[emotion.Fear], got)

	// labels without a template fall through
	_, rule = c.Reply("the weather today", emotion.Hope, world.None, nil)
	assert.Equal(t, RuleFallback, rule)
}

func TestCompose_WorldTopic(t *testing.T) {
	c := newTestComposer(seeded(7))
	mem := memory.New()
	got := c.Compose("tell me about mars", emotion.Neutral, world.Parse("space"), nil, mem)

	assert.Equal(t, "Mars, the Red Planet, is our cosmic neighbor! It has the largest volcano in the solar system - Olympus Mons, three times taller than Mount Everest!", got)
}

func TestCompose_WorldFlavor(t *testing.T) {
	c := newTestComposer(seeded(3))
	got, rule := c.Reply("tell me a story", emotion.Neutral, world.Space, nil)

	space, _ := world.Catalog().Lookup(world.Space)
	assert.Equal(t, RuleWorldFlavor, rule)
	assert.Contains(t, space.Flavor, got)
}

func TestCompose_GenericFallbackWithProfile(t *testing.T) {
	c := newTestComposer(lastPicker{})
	tpl := DefaultTemplates()

	got, rule := c.Reply("tell me a story", emotion.Neutral, world.Parse("ocean"), &Profile{Name: "Nova", Class: "Mystic"})
	assert.Equal(t, RuleFallback, rule)
	assert.Equal(t,
		"That's fascinating, Nova! Your curiosity as a Mystic will guide you through infinite realms. "+tpl.Fallback[len(tpl.Fallback)-1],
		got)

	got, _ = c.Reply("tell me a story", emotion.Neutral, world.None, nil)
	assert.Equal(t, tpl.Fallback[len(tpl.Fallback)-1], got)
}

func TestCompose_EmptyInput(t *testing.T) {
	c := newTestComposer(seeded(1))
	got, rule := c.Reply("", emotion.Neutral, world.None, nil)
	assert.Equal(t, RuleFallback, rule)
	assert.NotEmpty(t, got)
}

func TestCompose_AppendsTwoEvents(t *testing.T) {
	c := newTestComposer(seeded(1))
	mem := memory.New()

	reply := c.Compose("tell me about stars", emotion.Hope, world.Space, nil, mem)
	events := mem.All()
	require.Len(t, events, 2)

	assert.Equal(t, memory.Player, events[0].Speaker)
	assert.Equal(t, "tell me about stars", events[0].Text)
	assert.Equal(t, emotion.Hope, events[0].Emotion)
	assert.Equal(t, "space", events[0].WorldID)

	assert.Equal(t, memory.Companion, events[1].Speaker)
	assert.Equal(t, reply, events[1].Text)
	assert.Empty(t, events[1].Emotion)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), events[1].At)

	for i := 0; i < 100; i++ {
		c.Compose("hmm", emotion.Neutral, world.None, nil, mem)
	}
	assert.Equal(t, 202, mem.Len())
	assert.Len(t, mem.Recent(memory.DefaultWindow), 5)
}

func TestCompose_SeedIsReproducible(t *testing.T) {
	a := newTestComposer(seeded(42))
	b := newTestComposer(seeded(42))
	for i := 0; i < 25; i++ {
		ra := a.Compose("tell me a story", emotion.Neutral, world.None, nil, nil)
		rb := b.Compose("tell me a story", emotion.Neutral, world.None, nil, nil)
		require.Equal(t, ra, rb, "iteration %d", i)
	}
}

func TestCompose_EmptyTemplateSetsStillReply(t *testing.T) {
	c := NewComposer(&Templates{}, world.NewRegistry(), seeded(1))
	for _, text := range []string{"hello", "thanks", "bye", "help", "random words"} {
		assert.NotEmpty(t, c.Compose(text, emotion.Neutral, world.None, nil, nil), "text %q", text)
	}
}
