package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitbot/internal/auth"
	"github.com/sadopc/fitbot/internal/chat"
	"github.com/sadopc/fitbot/internal/export"
	"github.com/sadopc/fitbot/internal/progress"
	"github.com/sadopc/fitbot/internal/store"
)

// statusTTL is how long a footer notice stays visible.
const statusTTL = 4 * time.Second

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	svc   *auth.Service

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	session *auth.Session
	tracker *progress.Tracker
	router  *chat.Router

	authM     authModel
	chatM     chatModel
	profileM  profileModel
	progressM progressModel
	historyM  historyModel
	accountM  accountModel

	help        help.Model
	status      string
	statusError bool
	statusUntil time.Time
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	svc := auth.NewService(s)

	return App{
		store:      s,
		svc:        svc,
		activeView: viewChat,
		authM:      newAuthModel(svc),
		chatM:      newChatModel(),
		profileM:   newProfileModel(s),
		progressM:  newProgressModel(),
		historyM:   newHistoryModel(),
		accountM:   newAccountModel(svc),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), a.restoreSession())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// restoreSession picks up a still-valid session from a previous run.
func (a App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		session, err := a.svc.CurrentSession()
		if err != nil || session == nil {
			return nil
		}
		return signedInMsg{session: session}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.authM.setSize(a.width, a.height)
		a.chatM.setSize(a.width, contentHeight)
		a.profileM.setSize(a.width, contentHeight)
		a.progressM.setSize(a.width, contentHeight)
		a.historyM.setSize(a.width, contentHeight)
		a.accountM.setSize(a.width, contentHeight)
		return a, nil

	case signedInMsg:
		return a.handleSignIn(msg.session)

	case signedOutMsg:
		a.session = nil
		a.tracker = nil
		a.router = nil
		a.activeView = viewChat
		return a.notify("Signed out", false)

	case profileSavedMsg:
		if a.router != nil {
			a.router.SetProfile(msg.profile)
		}
		return a.notify("Profile saved", false)

	case calcDoneMsg:
		var cmd tea.Cmd
		a.profileM, cmd = a.profileM.update(msg)
		return a, cmd

	case composingDoneMsg:
		var cmd tea.Cmd
		a.chatM, cmd = a.chatM.update(msg)
		return a, cmd

	case botReplyMsg:
		var cmd tea.Cmd
		a.chatM, cmd = a.chatM.update(msg)
		// A reply may have logged a workout or unlocked achievements.
		a.progressM.reload()
		a.historyM.reload()
		if len(msg.reply.Unlocked) > 0 {
			titles := ""
			for i, id := range msg.reply.Unlocked {
				if i > 0 {
					titles += ", "
				}
				titles += progress.Title(id)
			}
			a.setStatus("Achievement unlocked: "+titles, false)
		}
		return a, cmd

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case tickMsg:
		if a.status != "" && time.Now().After(a.statusUntil) {
			a.status = ""
		}
		return a, tickCmd()

	case exportDoneMsg:
		a.exportPicking = false
		return a.notify("Exported to "+msg.path, false)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateActiveView(msg)
}

func (a App) handleSignIn(session *auth.Session) (tea.Model, tea.Cmd) {
	a.session = session

	tracker := progress.NewTracker(a.store, session.Email)
	if err := tracker.Load(); err != nil {
		return a.notify("Could not load progress: "+err.Error(), true)
	}
	a.tracker = tracker
	a.router = chat.New(tracker)

	if err := a.profileM.setAccount(session.Email); err != nil {
		return a.notify("Could not load profile: "+err.Error(), true)
	}
	if a.profileM.profile != nil {
		a.router.SetProfile(a.profileM.profile)
	}

	a.chatM.setRouter(a.router)
	a.progressM.setTracker(tracker)
	a.historyM.setTracker(tracker)
	a.accountM.setSession(session)
	a.activeView = viewChat

	return a.notify("Welcome back, "+session.Name, false)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Auth gate: everything goes to the sign-in screen until a session exists.
	if a.session == nil {
		if !a.authM.formActive && key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.authM, cmd = a.authM.update(msg)
		return a, cmd
	}

	// Export picker
	if a.exportPicking {
		return a.updateExportPicker(msg)
	}

	// If a child view is capturing input (form or chat box), delegate first.
	if a.isFormActive() {
		return a.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, keys.Export):
		a.exportPicking = true
		a.exportCursor = 0
		return a, nil
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, keys.Tab1):
		a.activeView = viewChat
		return a, nil
	case key.Matches(msg, keys.Tab2):
		a.activeView = viewProfile
		return a, nil
	case key.Matches(msg, keys.Tab3):
		a.activeView = viewProgress
		a.progressM.reload()
		return a, nil
	case key.Matches(msg, keys.Tab4):
		a.activeView = viewHistory
		a.historyM.reload()
		return a, nil
	case key.Matches(msg, keys.Tab5):
		a.activeView = viewAccount
		return a, nil
	case key.Matches(msg, keys.Tab):
		a.activeView = (a.activeView + 1) % 5
		a.progressM.reload()
		a.historyM.reload()
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewChat:
		a.chatM, cmd = a.chatM.update(msg)
	case viewProfile:
		a.profileM, cmd = a.profileM.update(msg)
	case viewProgress:
		a.progressM, cmd = a.progressM.update(msg)
	case viewHistory:
		a.historyM, cmd = a.historyM.update(msg)
	case viewAccount:
		a.accountM, cmd = a.accountM.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewChat:
		return a.chatM.inputCaptures()
	case viewProfile:
		return a.profileM.formActive || a.profileM.calculating
	}
	return false
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusError = isError
	a.statusUntil = time.Now().Add(statusTTL)
}

func (a App) notify(text string, isError bool) (tea.Model, tea.Cmd) {
	a.setStatus(text, isError)
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.session == nil {
		return a.authM.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewChat:
		content = a.chatM.view()
	case viewProfile:
		content = a.profileM.view()
	case viewProgress:
		content = a.progressM.view()
	case viewHistory:
		content = a.historyM.view()
	case viewAccount:
		content = a.accountM.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("fitbot")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	streakInfo := ""
	if a.tracker != nil {
		if rep := a.tracker.Report(); rep.Streak > 0 {
			streakInfo = successStyle.Render(fmt.Sprintf(" 🔥 %d day streak", rep.Streak))
		}
	}

	left := footerStyle.Render(helpView)
	right := streakInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	tracker := a.tracker
	return func() tea.Msg {
		if tracker == nil {
			return statusMsg{text: "Nothing to export", isError: true}
		}
		entries := tracker.State().History

		var path string
		if format == 0 {
			path = export.DefaultPath("csv")
			if err := export.ToCSV(entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = export.DefaultPath("json")
			if err := export.ToJSON(entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
