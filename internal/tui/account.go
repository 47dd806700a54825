package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitbot/internal/auth"
)

type accountModel struct {
	svc    *auth.Service
	width  int
	height int

	session *auth.Session
}

func newAccountModel(svc *auth.Service) accountModel {
	return accountModel{svc: svc}
}

func (a *accountModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a *accountModel) setSession(s *auth.Session) {
	a.session = s
}

func (a accountModel) update(msg tea.Msg) (accountModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return a, a.signOut()
		}
	}
	return a, nil
}

func (a accountModel) signOut() tea.Cmd {
	return func() tea.Msg {
		if err := a.svc.SignOut(); err != nil {
			return statusMsg{text: "Sign out failed: " + err.Error(), isError: true}
		}
		return signedOutMsg{}
	}
}

func (a accountModel) view() string {
	w := a.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Account"))
	rows = append(rows, "")

	if a.session != nil {
		label := func(s string) string { return mutedStyle.Width(14).Render(s) }
		rows = append(rows, label("Name")+highlightStyle.Render(a.session.Name))
		rows = append(rows, label("Email")+highlightStyle.Render(a.session.Email))
		rows = append(rows, label("Signed in")+highlightStyle.Render(a.session.LoginTime.Format("Jan 02, 2006 15:04")))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to sign out"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
