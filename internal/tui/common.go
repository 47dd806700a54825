package tui

import (
	"time"

	"github.com/sadopc/fitbot/internal/auth"
	"github.com/sadopc/fitbot/internal/chat"
	"github.com/sadopc/fitbot/internal/metrics"
)

// viewState represents the currently active view.
type viewState int

const (
	viewChat viewState = iota
	viewProfile
	viewProgress
	viewHistory
	viewAccount
)

var viewNames = []string{"Chat", "Profile", "Progress", "History", "Account"}

// --- Messages ---

type signedInMsg struct {
	session *auth.Session
}

type signedOutMsg struct{}

type profileSavedMsg struct {
	profile *metrics.Profile
}

// calcDoneMsg fires when the profile form's calculation delay elapses.
type calcDoneMsg struct{}

// composingDoneMsg fires when the bot's typing delay elapses and the
// pending reply should be produced.
type composingDoneMsg struct{}

type botReplyMsg struct {
	reply chat.Reply
	err   error
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
