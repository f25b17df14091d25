// Package companion turns classified player utterances into replies.
package companion

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"astra/internal/emotion"
	"astra/internal/logging"
	"astra/internal/memory"
	"astra/internal/world"
)

// lastResort is returned when a template set turns out to be empty.
const lastResort = "I'm here with you, Explorer. Tell me more?"

// Picker chooses an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

// Profile is the optional character the player is speaking as.
type Profile struct {
	Name  string
	Class string
}

// Rule names the cascade branch that produced a reply.
type Rule string

const (
	RuleGreeting     Rule = "greeting"
	RuleThanks       Rule = "thanks"
	RuleFarewell     Rule = "farewell"
	RuleHowAreYou    Rule = "how_are_you"
	RuleIdentity     Rule = "identity"
	RuleCapabilities Rule = "capabilities"
	RuleHelp         Rule = "help"
	RuleEmotion      Rule = "emotion"
	RuleWorldTopic   Rule = "world_topic"
	RuleWorldFlavor  Rule = "world_flavor"
	RuleFallback     Rule = "fallback"
)

// Composer runs the reply cascade. Apart from the memory it is handed and its
// random source, it carries no state between calls.
type Composer struct {
	templates *Templates
	intents   Intents
	worlds    *world.Registry
	now       func() time.Time

	mu  sync.Mutex
	rng Picker
}

// ComposerOption customizes a Composer.
type ComposerOption func(*Composer)

// WithIntents replaces the trigger lists.
func WithIntents(in Intents) ComposerOption {
	return func(c *Composer) { c.intents = in }
}

// WithClock sets the timestamp source for memory events.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// NewComposer wires a composer. Nil templates or worlds select the built-ins.
func NewComposer(templates *Templates, worlds *world.Registry, rng Picker, opts ...ComposerOption) *Composer {
	if templates == nil {
		templates = DefaultTemplates()
	}
	if worlds == nil {
		worlds = world.Catalog()
	}
	c := &Composer{
		templates: templates,
		intents:   DefaultIntents(),
		worlds:    worlds,
		now:       time.Now,
		rng:       rng,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Worlds returns the registry the composer answers from.
func (c *Composer) Worlds() *world.Registry { return c.worlds }

// Compose produces a reply and appends the player turn and the reply to mem.
// It never returns an empty string.
func (c *Composer) Compose(text string, label emotion.Label, worldID world.ID, profile *Profile, mem *memory.Log) string {
	reply, rule := c.Reply(text, label, worldID, profile)
	logging.ComposerDebug("rule=%s emotion=%s world=%q", rule, label, worldID)

	if mem != nil {
		mem.Append(c.exchange(text, reply, label, worldID).Events()...)
	}
	return reply
}

func (c *Composer) exchange(text, reply string, label emotion.Label, worldID world.ID) memory.Exchange {
	return memory.Exchange{
		PlayerText: text,
		ReplyText:  reply,
		Emotion:    label,
		WorldID:    string(worldID),
		At:         c.now().UTC(),
	}
}

// Reply runs the cascade without touching memory and reports which rule fired.
func (c *Composer) Reply(text string, label emotion.Label, worldID world.ID, profile *Profile) (string, Rule) {
	lower := strings.ToLower(text)
	t := c.templates
	w, hasWorld := c.worlds.Lookup(worldID)

	switch {
	case containsAny(lower, c.intents.Greeting):
		return c.pick(t.Greeting), RuleGreeting
	case containsAny(lower, c.intents.Thanks):
		return c.pick(t.Thanks), RuleThanks
	case containsAny(lower, c.intents.Farewell):
		return nonEmpty(t.Farewell), RuleFarewell
	case containsAny(lower, c.intents.HowAreYou):
		return nonEmpty(t.HowAreYou), RuleHowAreYou
	case containsAny(lower, c.intents.Identity):
		return nonEmpty(t.Identity), RuleIdentity
	case containsAny(lower, c.intents.Capabilities):
		return nonEmpty(t.Capabilities), RuleCapabilities
	case containsAny(lower, c.intents.Help):
		if hasWorld && len(w.Topics) > 0 && t.HelpWorld != "" {
			return fmt.Sprintf(t.HelpWorld, strings.Join(w.Topics, ", ")), RuleHelp
		}
		return nonEmpty(t.HelpGeneric), RuleHelp
	}

	for _, r := range c.intents.Emotions {
		if r.Label == label || containsAny(lower, r.Words) {
			if reply := t.Emotion[r.Label]; reply != "" {
				return reply, RuleEmotion
			}
		}
	}

	if hasWorld {
		if reply, ok := w.MatchTopic(lower); ok {
			return reply, RuleWorldTopic
		}
		return c.pick(w.Flavor), RuleWorldFlavor
	}

	reply := c.pick(t.Fallback)
	if profile != nil && t.ProfilePrefix != "" {
		reply = fmt.Sprintf(t.ProfilePrefix, profile.Name, profile.Class) + reply
	}
	return reply, RuleFallback
}

func (c *Composer) pick(set []string) string {
	if len(set) == 0 {
		return lastResort
	}
	if len(set) == 1 || c.rng == nil {
		return set[0]
	}
	c.mu.Lock()
	i := c.rng.IntN(len(set))
	c.mu.Unlock()
	return set[i]
}

func nonEmpty(s string) string {
	if s == "" {
		return lastResort
	}
	return s
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
