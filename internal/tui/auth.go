package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitbot/internal/auth"
)

type authModel struct {
	svc    *auth.Service
	width  int
	height int

	cursor     int // 0 = sign in, 1 = create account
	formActive bool
	form       *huh.Form
	mode       string // "signin", "signup"
	errText    string

	// Form values as pointers (survive value copies)
	name     *string
	email    *string
	password *string
	confirm  *string
}

func newAuthModel(svc *auth.Service) authModel {
	name, email, password, confirm := "", "", "", ""
	return authModel{
		svc:      svc,
		name:     &name,
		email:    &email,
		password: &password,
		confirm:  &confirm,
	}
}

func (a *authModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a authModel) update(msg tea.Msg) (authModel, tea.Cmd) {
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, keys.Down):
			if a.cursor < 1 {
				a.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if a.cursor == 0 {
				return a.showSignInForm()
			}
			return a.showSignUpForm()
		}
	}
	return a, nil
}

func (a authModel) showSignInForm() (authModel, tea.Cmd) {
	*a.email = ""
	*a.password = ""
	a.mode = "signin"

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(a.email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(a.password),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.formActive = true
	return a, a.form.Init()
}

func (a authModel) showSignUpForm() (authModel, tea.Cmd) {
	*a.name = ""
	*a.email = ""
	*a.password = ""
	*a.confirm = ""
	a.mode = "signup"

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(a.name),
			huh.NewInput().Title("Email").Value(a.email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(a.password),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(a.confirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.formActive = true
	return a, a.form.Init()
}

func (a authModel) updateForm(msg tea.Msg) (authModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			a.errText = ""
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.formActive = false
		return a.submit()
	}

	return a, cmd
}

func (a authModel) submit() (authModel, tea.Cmd) {
	var session *auth.Session
	var err error

	if a.mode == "signup" {
		session, err = a.svc.Register(*a.name, *a.email, *a.password, *a.confirm)
	} else {
		session, err = a.svc.SignIn(*a.email, *a.password)
	}

	if err != nil {
		a.errText = authErrorText(err)
		return a, nil
	}

	a.errText = ""
	return a, func() tea.Msg { return signedInMsg{session: session} }
}

func authErrorText(err error) string {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return strings.Join(verr.Reasons, "; ")
	case errors.Is(err, auth.ErrDuplicateAccount):
		return "An account with that email already exists"
	case errors.Is(err, auth.ErrNotFound):
		return "No account found for that email"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Incorrect password"
	}
	return err.Error()
}

func (a authModel) view() string {
	w := min(a.width-4, 64)
	if w < 20 {
		w = 20
	}

	title := titleStyle.Render("FitBot")
	subtitle := subtitleStyle.Render("Your personal fitness assistant")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, subtitle)
	rows = append(rows, "")

	if a.formActive && a.form != nil {
		rows = append(rows, a.form.View())
	} else {
		options := []string{"Sign In", "Create Account"}
		for i, opt := range options {
			cursor := "  "
			style := normalItemStyle
			if i == a.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, style.Render(cursor+opt))
		}
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  ↑/↓: choose  enter: continue  q: quit"))
	}

	if a.errText != "" {
		rows = append(rows, "")
		rows = append(rows, errorStyle.Render(a.errText))
	}

	panel := activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}
