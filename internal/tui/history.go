package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fitbot/internal/progress"
)

type historyModel struct {
	tracker *progress.Tracker
	width   int
	height  int

	entries []progress.Entry
	cursor  int
}

func newHistoryModel() historyModel {
	return historyModel{}
}

func (h *historyModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

func (h *historyModel) setTracker(t *progress.Tracker) {
	h.tracker = t
	h.reload()
}

func (h *historyModel) reload() {
	if h.tracker == nil {
		return
	}
	h.entries = h.tracker.State().History
	if h.cursor >= len(h.entries) {
		h.cursor = max(0, len(h.entries)-1)
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.entries)-1 {
				h.cursor++
			}
		}
	}
	return h, nil
}

func (h historyModel) view() string {
	w := h.width - 4
	title := titleStyle.Render("Workout History")

	if len(h.entries) == 0 {
		return panelStyle.Width(w).Render(strings.Join([]string{
			title,
			"",
			mutedStyle.Render("No workouts logged yet. Ask FitBot for a workout to get started!"),
		}, "\n"))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-24s %10s %10s", "Date", "Workout", "Duration", "Calories"))
	rows = append(rows, header)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 58))))

	// Newest first
	visible := max(h.height-10, 3)
	shown := 0
	for i := len(h.entries) - 1; i >= 0 && shown < visible; i-- {
		e := h.entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == h.cursorIndex() {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-24s %7d min %6d kcal",
			cursor, e.Date, e.Type, e.DurationMin, e.Calories)))
		shown++
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: export  ↑/↓: scroll"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// cursorIndex maps the cursor (0 = newest) onto the underlying slice.
func (h historyModel) cursorIndex() int {
	return len(h.entries) - 1 - h.cursor
}
