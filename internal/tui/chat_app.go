package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/standuplabs/standup/internal/server"
	"github.com/standuplabs/standup/pkg/models"
)

// EventMsg wraps a server envelope for the bubbletea update loop.
type EventMsg struct {
	Env server.Envelope
}

// DisconnectedMsg signals that the websocket closed.
type DisconnectedMsg struct {
	Err error
}

// ChatApp is the bubbletea model for the terminal chat client.
type ChatApp struct {
	conn *Conn

	viewport viewport.Model
	input    textinput.Model

	messages []models.Message
	roster   []models.Agent

	status   string
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewChatApp creates the chat model over an established connection.
func NewChatApp(conn *Conn) *ChatApp {
	ti := textinput.New()
	ti.Placeholder = "Type a message, or /help for commands..."
	ti.Focus()
	ti.CharLimit = 2000

	return &ChatApp{
		conn:   conn,
		input:  ti,
		status: "connected",
	}
}

// Init implements tea.Model.
func (a *ChatApp) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *ChatApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit

		case "enter":
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				break
			}
			a.input.Reset()
			if strings.HasPrefix(text, "/") {
				a.runCommand(text)
			} else {
				if err := a.conn.SendEvent(server.EventMessage, server.MessagePayload{Content: text}); err != nil {
					a.status = "send failed: " + err.Error()
				}
			}

		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inputHeight := 3
		statusHeight := 1
		vpHeight := a.height - inputHeight - statusHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !a.ready {
			a.viewport = viewport.New(a.width, vpHeight)
			a.ready = true
		} else {
			a.viewport.Width = a.width
			a.viewport.Height = vpHeight
		}
		a.input.Width = a.width - 6
		a.refreshViewport()

	case EventMsg:
		a.handleEvent(msg.Env)

	case DisconnectedMsg:
		a.status = "disconnected from server"
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// handleEvent folds one server event into the model.
func (a *ChatApp) handleEvent(env server.Envelope) {
	switch env.Type {
	case server.EventNewMessage:
		var m models.Message
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return
		}
		a.messages = append(a.messages, m)
		a.refreshViewport()

	case server.EventChatHistory:
		var msgs []models.Message
		if err := json.Unmarshal(env.Payload, &msgs); err != nil {
			return
		}
		a.messages = msgs
		a.refreshViewport()

	case server.EventAgentsUpdate:
		var roster []models.Agent
		if err := json.Unmarshal(env.Payload, &roster); err != nil {
			return
		}
		a.roster = roster
		a.status = rosterStatus(roster)

	case server.EventError:
		var p server.ErrorPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return
		}
		a.status = "server error: " + p.Message
	}
}

// runCommand handles slash commands typed into the input.
func (a *ChatApp) runCommand(text string) {
	fields := strings.Fields(text)

	switch fields[0] {
	case "/help":
		a.status = "/toggle <agent> on|off   /role <agent> <name>   /agents   /quit"

	case "/quit":
		a.quitting = true
		a.conn.Close()

	case "/agents":
		if err := a.conn.SendEvent(server.EventRequestAgents, nil); err != nil {
			a.status = "send failed: " + err.Error()
		}

	case "/toggle":
		if len(fields) != 3 || (fields[2] != "on" && fields[2] != "off") {
			a.status = "usage: /toggle <agent> on|off"
			return
		}
		payload := server.TogglePayload{AgentID: fields[1], Active: fields[2] == "on"}
		if err := a.conn.SendEvent(server.EventToggleAgent, payload); err != nil {
			a.status = "send failed: " + err.Error()
		}

	case "/role":
		if len(fields) < 3 {
			a.status = "usage: /role <agent> <new name>"
			return
		}
		payload := server.SetRolePayload{AgentID: fields[1], Role: strings.Join(fields[2:], " ")}
		if err := a.conn.SendEvent(server.EventSetRole, payload); err != nil {
			a.status = "send failed: " + err.Error()
		}

	default:
		a.status = "unknown command: " + fields[0]
	}
}

// refreshViewport re-renders the transcript and keeps the view pinned to
// the newest message.
func (a *ChatApp) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.renderMessages())
	a.viewport.GotoBottom()
}

func (a *ChatApp) renderMessages() string {
	if len(a.messages) == 0 {
		return systemStyle.Render("No messages yet. Say hello to the team!")
	}

	var b strings.Builder
	for _, m := range a.messages {
		ts := timestampStyle.Render(m.Timestamp.Format("15:04:05"))
		author := authorStyle(m, a.roster).Render(m.Author)
		b.WriteString(fmt.Sprintf("%s %s\n%s\n\n", ts, author, m.Content))
	}
	return b.String()
}

// View implements tea.Model.
func (a *ChatApp) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}
	if !a.ready {
		return "Connecting...\n"
	}

	status := statusStyle.Render(a.status)
	input := inputBoxStyle.Width(a.width - 2).Render("> " + a.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, a.viewport.View(), status, input)
}

// rosterStatus summarizes the roster for the status line.
func rosterStatus(roster []models.Agent) string {
	parts := make([]string, 0, len(roster))
	for _, agent := range roster {
		state := "off"
		if agent.Active {
			state = "on"
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", agent.Role, state))
	}
	return strings.Join(parts, "  ")
}

// Run connects the model to a program and pumps websocket events into it.
// Blocks until the UI exits.
func Run(conn *Conn) error {
	app := NewChatApp(conn)
	p := tea.NewProgram(app, tea.WithAltScreen())

	go conn.ReadLoop(
		func(env server.Envelope) { p.Send(EventMsg{Env: env}) },
		func(err error) { p.Send(DisconnectedMsg{Err: err}) },
	)

	_, err := p.Run()
	conn.Close()
	return err
}
