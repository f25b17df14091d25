package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"astra/internal/world"
)

func (m Model) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.history {
		switch msg.Role {
		case "you":
			sb.WriteString(m.styles.You.Render("You") + "\n")
			sb.WriteString(msg.Content + "\n")
		case "companion":
			sb.WriteString(m.styles.Companion.Render(m.cfg.Name) + "  " + m.styles.Badge(msg.Emotion) + "\n")
			sb.WriteString(msg.Content + "\n")
		default:
			sb.WriteString(m.safeRenderMarkdown(msg.Content))
		}
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = m.styles.System.Render(content) + "\n"
		}
	}()

	if m.renderer == nil || content == "" {
		return m.styles.System.Render(content) + "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return m.styles.System.Render(content) + "\n"
	}
	return rendered
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render(m.cfg.Name)

	where := "no world"
	if id := m.cfg.Session.World(); id != world.None {
		if w, ok := m.cfg.Worlds.Lookup(id); ok {
			where = w.Icon + " " + w.Name
		}
	}

	who := ""
	if p := m.cfg.Session.Profile(); p != nil {
		who = fmt.Sprintf(" · %s the %s", p.Name, p.Class)
	}

	label, _ := m.cfg.Session.Mood()
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		title,
		m.styles.Muted.Render("  "+where+who+"  "),
		m.styles.Badge(label),
	)
	return m.styles.Header.Render(line)
}

// View renders the header, transcript and input box.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye! Come back anytime 🌟\n"
	}

	var status string
	switch {
	case m.isLoading:
		status = m.spinner.View() + m.styles.Muted.Render(" thinking…")
	case m.err != nil:
		status = m.styles.Error.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		status,
		m.styles.Input.Render(m.textinput.View()),
	)
}
