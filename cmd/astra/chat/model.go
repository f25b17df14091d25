// Package chat is the interactive bubbletea front end for a companion session.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"astra/internal/companion"
	"astra/internal/emotion"
	"astra/internal/logging"
	"astra/internal/world"
)

// Conversation is the live session the model talks to.
type Conversation interface {
	ID() string
	Say(ctx context.Context, text string) (companion.Reply, error)
	SetWorld(raw string) world.ID
	World() world.ID
	SetProfile(p *companion.Profile)
	Profile() *companion.Profile
	Mood() (emotion.Label, emotion.Mood)
}

// ProfileLoader resolves a saved character by name.
type ProfileLoader func(ctx context.Context, name string) (*companion.Profile, error)

// Message is one rendered line of the transcript.
type Message struct {
	Role    string // "you", "companion" or "system"
	Content string
	Emotion emotion.Label
	Time    time.Time
}

type replyMsg struct {
	reply companion.Reply
	err   error
}

// Config wires the model.
type Config struct {
	Name     string
	Session  Conversation
	Worlds   *world.Registry
	Profiles ProfileLoader
	Context  context.Context
}

// Model is the chat state.
type Model struct {
	cfg       Config
	ctx       context.Context
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer
	styles    Styles

	history   []Message
	isLoading bool
	err       error
	width     int
	height    int
	quitting  bool
}

// New builds a chat model.
func New(cfg Config) Model {
	if cfg.Name == "" {
		cfg.Name = "Astra"
	}
	if cfg.Worlds == nil {
		cfg.Worlds = world.Catalog()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Say something, or /help"
	ti.Prompt = "│ "
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		logging.BootWarn("markdown renderer unavailable: %v", err)
		renderer = nil
	}

	m := Model{
		cfg:       cfg,
		ctx:       ctx,
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		renderer:  renderer,
		styles:    NewStyles(DetectTheme()),
	}
	m.history = append(m.history, Message{
		Role:    "system",
		Content: fmt.Sprintf("Session %s. Type /help for commands.", cfg.Session.ID()),
		Time:    time.Now(),
	})
	m.viewport.SetContent(m.renderHistory())
	return m
}

// Init initializes the interactive chat model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles input and replies.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			input := strings.TrimSpace(m.textinput.Value())
			m.textinput.Reset()
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			m.history = append(m.history, Message{Role: "you", Content: input, Time: time.Now()})
			m.isLoading = true
			m.err = nil
			m.refresh()
			return m, tea.Batch(m.say(input), m.spinner.Tick)
		}

	case replyMsg:
		m.isLoading = false
		if msg.err != nil {
			m.err = msg.err
			m.refresh()
			return m, nil
		}
		m.history = append(m.history, Message{
			Role:    "companion",
			Content: msg.reply.Text,
			Emotion: msg.reply.Emotion,
			Time:    time.Now(),
		})
		if msg.reply.PersistErr != nil {
			m.err = fmt.Errorf("not saved: %w", msg.reply.PersistErr)
		}
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = max(msg.Height, 8)
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-6, 1)
		m.textinput.Width = max(m.width-8, 10)
		m.refresh()

	case spinner.TickMsg:
		if m.isLoading {
			var spCmd tea.Cmd
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil
	}

	m.textinput, tiCmd = m.textinput.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m Model) say(text string) tea.Cmd {
	conv, ctx := m.cfg.Session, m.ctx
	return func() tea.Msg {
		reply, err := conv.Say(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		m.quitting = true
		return m, tea.Quit

	case "/help":
		m.system(helpText)

	case "/world":
		if len(args) == 0 {
			m.system(m.worldList())
			break
		}
		id := m.cfg.Session.SetWorld(args[0])
		if id == world.None {
			m.system("Left all worlds.")
			break
		}
		w, ok := m.cfg.Worlds.Lookup(id)
		if !ok {
			m.system(fmt.Sprintf("Entered %s.", id))
			break
		}
		m.system(fmt.Sprintf("%s Entered %s. %s", w.Icon, w.Name, w.Description))

	case "/profile":
		if len(args) == 0 || args[0] == "off" {
			m.cfg.Session.SetProfile(nil)
			m.system("Playing without a character.")
			break
		}
		if m.cfg.Profiles == nil {
			m.err = fmt.Errorf("no character store")
			break
		}
		p, err := m.cfg.Profiles(m.ctx, strings.Join(args, " "))
		if err != nil {
			m.err = err
			break
		}
		m.cfg.Session.SetProfile(p)
		m.system(fmt.Sprintf("Now playing %s the %s.", p.Name, p.Class))

	case "/mood":
		label, mood := m.cfg.Session.Mood()
		m.system(fmt.Sprintf("Lately you seem %s %s, so I'm feeling %s.", label.Emoji(), label, mood))

	default:
		m.err = fmt.Errorf("unknown command %s", cmd)
	}

	m.refresh()
	return m, nil
}

func (m *Model) system(content string) {
	m.err = nil
	m.history = append(m.history, Message{Role: "system", Content: content, Time: time.Now()})
}

func (m Model) worldList() string {
	var sb strings.Builder
	sb.WriteString("**Worlds**\n\n")
	for _, w := range m.cfg.Worlds.List() {
		fmt.Fprintf(&sb, "- %s `%s` %s\n", w.Icon, w.ID, w.Name)
	}
	sb.WriteString("\nUse `/world <name>` to enter one, `/world none` to leave.")
	return sb.String()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

const helpText = "**Commands**\n\n" +
	"- `/world [name]` list worlds or enter one\n" +
	"- `/profile <name>` play a saved character, `/profile off` to stop\n" +
	"- `/mood` how the conversation feels lately\n" +
	"- `/quit` leave (Esc and Ctrl+C work too)\n"
