// Package world describes the thematic zones a conversation can take place in.
package world

import (
	"sort"
	"strings"
)

// ID identifies a world. None means no world context.
type ID string

const (
	Space  ID = "space"
	God    ID = "god"
	Spirit ID = "spirit"
	Earth  ID = "earth"
	None   ID = ""
)

// IDs lists the known worlds in display order.
var IDs = []ID{Space, God, Spirit, Earth}

// Parse maps a raw identifier to an ID. Anything outside the closed set,
// including the empty string, is None rather than an error.
func Parse(raw string) ID {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range IDs {
		if id == known {
			return id
		}
	}
	return None
}

// TopicRule answers when the text contains any of Any and, if With is set,
// also one of With.
type TopicRule struct {
	Any   []string
	With  []string
	Reply string
}

// Matches reports whether lower-cased text satisfies the rule.
func (r TopicRule) Matches(lower string) bool {
	if !containsAny(lower, r.Any) {
		return false
	}
	return len(r.With) == 0 || containsAny(lower, r.With)
}

// World is one thematic zone with its ordered topic rules and flavor replies.
type World struct {
	ID          ID
	Name        string
	Icon        string
	Description string
	// Topics is the short list offered by the help intent.
	Topics []string
	Rules  []TopicRule
	Flavor []string
}

// MatchTopic returns the reply of the first rule matching lower.
func (w *World) MatchTopic(lower string) (string, bool) {
	for _, r := range w.Rules {
		if r.Matches(lower) {
			return r.Reply, true
		}
	}
	return "", false
}

// Registry is an immutable set of worlds.
type Registry struct {
	worlds map[ID]*World
}

// NewRegistry indexes worlds by ID. Later duplicates replace earlier ones.
func NewRegistry(worlds ...*World) *Registry {
	r := &Registry{worlds: make(map[ID]*World, len(worlds))}
	for _, w := range worlds {
		if w == nil || w.ID == None {
			continue
		}
		r.worlds[w.ID] = w
	}
	return r
}

// Lookup returns the world for id. None and unknown ids report false.
func (r *Registry) Lookup(id ID) (*World, bool) {
	w, ok := r.worlds[id]
	return w, ok
}

// List returns the worlds in display order, followed by any custom ones.
func (r *Registry) List() []*World {
	out := make([]*World, 0, len(r.worlds))
	seen := make(map[ID]bool)
	for _, id := range IDs {
		if w, ok := r.worlds[id]; ok {
			out = append(out, w)
			seen[id] = true
		}
	}
	var extra []*World
	for id, w := range r.worlds {
		if !seen[id] {
			extra = append(extra, w)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	return append(out, extra...)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
