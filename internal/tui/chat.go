package tui

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitbot/internal/chat"
	"github.com/sadopc/fitbot/internal/progress"
)

type chatAuthor int

const (
	authorUser chatAuthor = iota
	authorBot
)

type chatMessage struct {
	author chatAuthor
	text   string
}

type chatModel struct {
	router *chat.Router
	width  int
	height int

	input     textinput.Model
	messages  []chatMessage
	composing bool
	pending   string
}

func newChatModel() chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask me about workouts, diet, or your progress..."
	ti.CharLimit = 200
	ti.Focus()

	return chatModel{input: ti}
}

func (c *chatModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.input.Width = w - 12
}

// setRouter installs the signed-in user's router and resets the transcript.
func (c *chatModel) setRouter(r *chat.Router) {
	c.router = r
	c.messages = []chatMessage{{
		author: authorBot,
		text:   "Hi! I'm FitBot, your personal fitness assistant. Ask me for a workout, a diet plan, or your progress!",
	}}
	c.composing = false
	c.pending = ""
}

// inputCaptures reports whether the text input currently owns the keyboard.
func (c chatModel) inputCaptures() bool {
	return c.input.Focused()
}

// composeDelay is the simulated typing pause, between one and two seconds.
func composeDelay() time.Duration {
	return time.Second + time.Duration(rand.Int63n(int64(time.Second)))
}

func (c chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case composingDoneMsg:
		return c.produceReply()

	case botReplyMsg:
		c.composing = false
		if msg.err != nil {
			c.messages = append(c.messages, chatMessage{authorBot, "Sorry, something went wrong: " + msg.err.Error()})
			return c, nil
		}
		c.messages = append(c.messages, chatMessage{authorBot, msg.reply.Text})
		for _, id := range msg.reply.Unlocked {
			c.messages = append(c.messages, chatMessage{authorBot, "🏆 Achievement unlocked: " + progress.Title(id)})
		}
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			c.input.Blur()
			return c, nil
		case "enter":
			if !c.input.Focused() {
				c.input.Focus()
				return c, textinput.Blink
			}
			return c.send()
		}
	}

	if c.input.Focused() {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c chatModel) send() (chatModel, tea.Cmd) {
	// One outstanding reply at a time.
	if c.composing {
		return c, nil
	}

	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return c, nil
	}

	c.messages = append(c.messages, chatMessage{authorUser, text})
	c.pending = text
	c.composing = true
	c.input.SetValue("")

	return c, tea.Tick(composeDelay(), func(time.Time) tea.Msg {
		return composingDoneMsg{}
	})
}

func (c chatModel) produceReply() (chatModel, tea.Cmd) {
	if c.router == nil {
		c.composing = false
		return c, nil
	}
	pending := c.pending
	router := c.router
	return c, func() tea.Msg {
		reply, err := router.Respond(pending)
		return botReplyMsg{reply: reply, err: err}
	}
}

func (c chatModel) view() string {
	w := c.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Chat"))
	rows = append(rows, "")

	for _, m := range c.transcriptTail() {
		switch m.author {
		case authorUser:
			rows = append(rows, userMsgStyle.Render("You: ")+m.text)
		default:
			for i, line := range strings.Split(m.text, "\n") {
				if i == 0 {
					rows = append(rows, botMsgStyle.Render("FitBot: "+line))
				} else {
					rows = append(rows, botMsgStyle.Render("        "+line))
				}
			}
		}
		rows = append(rows, "")
	}

	if c.composing {
		rows = append(rows, composingStyle.Render("FitBot is typing..."))
		rows = append(rows, "")
	}

	rows = append(rows, c.input.View())
	hint := "enter: send  esc: unfocus input"
	if !c.input.Focused() {
		hint = "enter: focus input  1-5: switch tabs"
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// transcriptTail returns the newest messages that fit in the panel.
func (c chatModel) transcriptTail() []chatMessage {
	budget := max(c.height-8, 4)

	lines := 0
	start := len(c.messages)
	for start > 0 {
		cost := strings.Count(c.messages[start-1].text, "\n") + 2
		if lines+cost > budget {
			break
		}
		lines += cost
		start--
	}
	if start == len(c.messages) && start > 0 {
		start--
	}
	return c.messages[start:]
}
