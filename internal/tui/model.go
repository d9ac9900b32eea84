package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatassist/internal/chat"
	"chatassist/internal/extract"
	"chatassist/internal/llm"
)

// ChatPort is the TUI-facing subset of a chat session.
type ChatPort interface {
	Ask(ctx context.Context, question string, onToken func(chat.Token)) (chat.Reply, error)
	Model() string
	SetModel(model string)
	FileName() string
	Reset()
}

// turn is one completed exchange in the transcript.
type turn struct {
	question  string
	answer    string
	reasoning string
}

type tokenMsg chat.Token

type doneMsg struct {
	reply chat.Reply
	err   error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	session  ChatPort
	input    textinput.Model
	viewport viewport.Model
	models   []llm.Model
	modelIdx int

	turns     []turn
	current   turn
	streaming bool
	events    chan tea.Msg

	summary string
	status  string
	ready   bool
}

// New creates a new TUI model instance. summary is shown under the header when
// a document is attached; models is the selectable palette (may be empty).
func New(session ChatPort, summary string, models []llm.Model) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	modelIdx := 0
	for i, m := range models {
		if m.Tag == session.Model() {
			modelIdx = i
		}
	}
	return Model{
		session:  session,
		input:    ti,
		viewport: vp,
		models:   models,
		modelIdx: modelIdx,
		summary:  summary,
		status:   "Ready. Type to chat.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and stream events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + summary, spacer, input frame, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.streaming {
				return m, nil
			}
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.input.Reset()
			return m.startTurn(q)
		case "ctrl+n":
			if !m.streaming && len(m.models) > 0 {
				m.modelIdx = (m.modelIdx + 1) % len(m.models)
				m.session.SetModel(m.models[m.modelIdx].Tag)
				m.status = "Model: " + m.models[m.modelIdx].Label
				return m, nil
			}
		case "ctrl+r":
			if !m.streaming {
				m.session.Reset()
				m.turns = nil
				m.current = turn{}
				m.status = "Conversation cleared."
				m.refreshTranscript()
				return m, nil
			}
		}

	case tokenMsg:
		if msg.Reasoning {
			m.current.reasoning += msg.Text
		} else {
			m.current.answer += msg.Text
		}
		m.refreshTranscript()
		return m, waitEvent(m.events)

	case doneMsg:
		m.streaming = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.current.answer = ""
			m.current.reasoning = ""
		} else {
			m.current.answer = msg.reply.Answer
			m.current.reasoning = msg.reply.Reasoning
			m.turns = append(m.turns, m.current)
			m.status = fmt.Sprintf("Done. %d context block(s) used.", len(msg.reply.Context))
		}
		m.current = turn{}
		m.refreshTranscript()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startTurn launches the streaming request in the background and begins
// draining its event channel.
func (m Model) startTurn(question string) (Model, tea.Cmd) {
	m.streaming = true
	m.current = turn{question: question}
	m.status = "Thinking..."
	m.events = make(chan tea.Msg, 64)
	m.refreshTranscript()

	events := m.events
	session := m.session
	go func() {
		reply, err := session.Ask(context.Background(), question, func(tok chat.Token) {
			events <- tokenMsg(tok)
		})
		events <- doneMsg{reply: reply, err: err}
	}()
	return m, waitEvent(events)
}

func waitEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "Chat Assist"
	if f := m.session.FileName(); f != "" {
		title += "  [" + f + "]"
	}
	if len(m.models) > 0 {
		title += "  (" + m.models[m.modelIdx].Label + ")"
	}
	header := headerStyle.Render(title)
	summary := summaryStyle.Render(m.summary)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var sb strings.Builder
	render := func(t turn, done bool) {
		sb.WriteString(userStyle.Render("you: " + t.question))
		sb.WriteByte('\n')
		if t.reasoning != "" {
			sb.WriteString(reasoningStyle.Render(t.reasoning))
			sb.WriteByte('\n')
		}
		if t.answer != "" || done {
			sb.WriteString(t.answer)
			sb.WriteByte('\n')
		}
		// Terminals can't render images inline, so link them instead.
		for _, url := range extract.ImageURLs(t.answer) {
			sb.WriteString(linkStyle.Render("[image] " + url))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	for _, t := range m.turns {
		render(t, true)
	}
	if m.streaming {
		render(m.current, false)
	}
	if sb.Len() == 0 {
		return "No messages yet."
	}
	return sb.String()
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	summaryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	reasoningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	linkStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true)
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
