package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fitbot/internal/auth"
	"github.com/sadopc/fitbot/internal/chat"
	"github.com/sadopc/fitbot/internal/metrics"
	"github.com/sadopc/fitbot/internal/profile"
	"github.com/sadopc/fitbot/internal/progress"
	"github.com/sadopc/fitbot/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestRouter(t *testing.T, s *store.Store) (*chat.Router, *progress.Tracker) {
	t.Helper()
	tracker := progress.NewTracker(s, "test@example.com")
	if err := tracker.Load(); err != nil {
		t.Fatalf("load tracker: %v", err)
	}
	r := chat.New(tracker)
	p := metrics.Calculate(metrics.Input{
		Age: 30, Gender: "male", HeightCm: 175, WeightKg: 70,
		ActivityFactor: 1.55, Goal: metrics.GoalMaintain,
	})
	r.SetProfile(&p)
	return r, tracker
}

// ============================================================
// Chat model
// ============================================================

func TestChatSendAppendsMessage(t *testing.T) {
	s := newTestStore(t)
	r, _ := newTestRouter(t, s)

	c := newChatModel()
	c.setRouter(r)
	c.input.SetValue("hello")

	c, cmd := c.send()
	if !c.composing {
		t.Fatal("should be composing after send")
	}
	if cmd == nil {
		t.Fatal("send should schedule the typing delay")
	}
	if c.pending != "hello" {
		t.Fatalf("pending = %q, want %q", c.pending, "hello")
	}
	if c.input.Value() != "" {
		t.Fatal("input should be cleared after send")
	}

	last := c.messages[len(c.messages)-1]
	if last.author != authorUser || last.text != "hello" {
		t.Fatalf("last message = %+v, want user 'hello'", last)
	}
}

func TestChatSendWhileComposingBlocked(t *testing.T) {
	s := newTestStore(t)
	r, _ := newTestRouter(t, s)

	c := newChatModel()
	c.setRouter(r)
	c.composing = true
	c.input.SetValue("second message")

	before := len(c.messages)
	c, cmd := c.send()
	if len(c.messages) != before {
		t.Fatal("send while composing should be ignored")
	}
	if cmd != nil {
		t.Fatal("blocked send should not schedule anything")
	}
}

func TestChatSendEmptyIgnored(t *testing.T) {
	c := newChatModel()
	c.input.SetValue("   ")

	before := len(c.messages)
	c, cmd := c.send()
	if len(c.messages) != before || cmd != nil {
		t.Fatal("whitespace-only input should not be sent")
	}
}

func TestChatProduceReply(t *testing.T) {
	s := newTestStore(t)
	r, _ := newTestRouter(t, s)

	c := newChatModel()
	c.setRouter(r)
	c.input.SetValue("hello there")
	c, _ = c.send()

	c, cmd := c.produceReply()
	if cmd == nil {
		t.Fatal("produceReply should return a command")
	}

	msg, ok := cmd().(botReplyMsg)
	if !ok {
		t.Fatalf("expected botReplyMsg, got %T", cmd())
	}
	if msg.err != nil {
		t.Fatalf("reply error: %v", msg.err)
	}
	if msg.reply.Text == "" {
		t.Fatal("reply text should not be empty")
	}

	c, _ = c.update(msg)
	if c.composing {
		t.Fatal("composing should be cleared after the reply arrives")
	}
	last := c.messages[len(c.messages)-1]
	if last.author != authorBot {
		t.Fatal("last message should be from the bot")
	}
}

func TestChatAchievementNotification(t *testing.T) {
	s := newTestStore(t)
	r, _ := newTestRouter(t, s)

	c := newChatModel()
	c.setRouter(r)

	reply := chat.Reply{Text: "done", Unlocked: []string{"first_workout"}}
	c, _ = c.update(botReplyMsg{reply: reply})

	last := c.messages[len(c.messages)-1]
	if last.author != authorBot {
		t.Fatal("achievement line should come from the bot")
	}
	if last.text != "🏆 Achievement unlocked: "+progress.Title("first_workout") {
		t.Fatalf("unexpected achievement line: %q", last.text)
	}
}

func TestChatEnterKeySends(t *testing.T) {
	s := newTestStore(t)
	r, _ := newTestRouter(t, s)

	c := newChatModel()
	c.setRouter(r)
	c.setSize(100, 30)
	c.input.SetValue("hi")

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !c.composing {
		t.Fatal("enter should send the message")
	}
}

func TestChatEscBlursInput(t *testing.T) {
	c := newChatModel()
	if !c.inputCaptures() {
		t.Fatal("input should start focused")
	}

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyEsc})
	if c.inputCaptures() {
		t.Fatal("esc should blur the input")
	}

	c, _ = c.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !c.inputCaptures() {
		t.Fatal("enter should re-focus the input")
	}
}

func TestComposeDelayRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := composeDelay()
		if d < time.Second || d >= 2*time.Second {
			t.Fatalf("composeDelay() = %v, want [1s, 2s)", d)
		}
	}
}

// ============================================================
// Profile model
// ============================================================

func TestProfileParseInput(t *testing.T) {
	p := newProfileModel(newTestStore(t))
	*p.formAge = "30"
	*p.formGender = "female"
	*p.formHeight = "165"
	*p.formWeight = "60"
	*p.formActivity = "1.55"
	*p.formGoal = "loss"

	in, err := p.parseInput()
	if err != nil {
		t.Fatalf("parseInput() error = %v", err)
	}
	if in.Age != 30 || in.Gender != "female" || in.HeightCm != 165 || in.WeightKg != 60 {
		t.Fatalf("parsed input = %+v", in)
	}
	if in.ActivityFactor != 1.55 || in.Goal != metrics.GoalLoss {
		t.Fatalf("parsed input = %+v", in)
	}
}

func TestProfileParseInputBadNumber(t *testing.T) {
	p := newProfileModel(newTestStore(t))
	*p.formAge = "thirty"
	*p.formHeight = "165"
	*p.formWeight = "60"

	if _, err := p.parseInput(); err == nil {
		t.Fatal("non-numeric age should fail")
	}
}

func TestProfileBeginCalculationRejectsOutOfRange(t *testing.T) {
	p := newProfileModel(newTestStore(t))
	*p.formAge = "5"
	*p.formGender = "male"
	*p.formHeight = "175"
	*p.formWeight = "70"
	*p.formActivity = "1.2"
	*p.formGoal = "maintain"

	p, cmd := p.beginCalculation()
	if p.calculating {
		t.Fatal("invalid input should not start calculating")
	}
	if cmd != nil {
		t.Fatal("invalid input should not schedule anything")
	}
	if p.errText == "" {
		t.Fatal("validation failure should set the error text")
	}
}

func TestProfileCalculationFlow(t *testing.T) {
	s := newTestStore(t)
	p := newProfileModel(s)
	p.email = "test@example.com"
	*p.formAge = "30"
	*p.formGender = "male"
	*p.formHeight = "175"
	*p.formWeight = "70"
	*p.formActivity = "1.55"
	*p.formGoal = "maintain"

	p, cmd := p.beginCalculation()
	if !p.calculating {
		t.Fatal("valid input should start calculating")
	}
	if cmd == nil {
		t.Fatal("calculation should schedule the delay")
	}

	p, cmd = p.finishCalculation()
	if p.calculating {
		t.Fatal("finish should clear the calculating flag")
	}
	if p.profile == nil {
		t.Fatal("profile should be set")
	}
	if p.profile.BMI != 22.9 {
		t.Fatalf("BMI = %v, want 22.9", p.profile.BMI)
	}

	if cmd == nil {
		t.Fatal("finish should emit a message")
	}
	if _, ok := cmd().(profileSavedMsg); !ok {
		t.Fatalf("expected profileSavedMsg, got %T", cmd())
	}

	// The computed profile must be persisted.
	saved, ok, err := profile.Load(s, "test@example.com")
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v, want saved profile", ok, err)
	}
	if saved.BMR != p.profile.BMR {
		t.Fatalf("saved BMR = %d, want %d", saved.BMR, p.profile.BMR)
	}
}

func TestProfileInputDisabledWhileCalculating(t *testing.T) {
	p := newProfileModel(newTestStore(t))
	p.calculating = true

	p, cmd := p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.formActive {
		t.Fatal("keys should be ignored while calculating")
	}
	if cmd != nil {
		t.Fatal("keys should not schedule anything while calculating")
	}
}

func TestProfileSetAccountRestoresSaved(t *testing.T) {
	s := newTestStore(t)
	computed := metrics.Calculate(metrics.Input{
		Age: 25, Gender: "female", HeightCm: 160, WeightKg: 55,
		ActivityFactor: 1.375, Goal: metrics.GoalGain,
	})
	if err := profile.Save(s, "restore@example.com", computed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	p := newProfileModel(s)
	if err := p.setAccount("restore@example.com"); err != nil {
		t.Fatalf("setAccount() error = %v", err)
	}
	if p.profile == nil {
		t.Fatal("saved profile should be restored")
	}
	if p.profile.Age != 25 || p.profile.Goal != metrics.GoalGain {
		t.Fatalf("restored profile = %+v", p.profile)
	}

	if err := p.setAccount("fresh@example.com"); err != nil {
		t.Fatalf("setAccount() error = %v", err)
	}
	if p.profile != nil {
		t.Fatal("account without a profile should reset to nil")
	}
}

// ============================================================
// Progress and history models
// ============================================================

func TestProgressReloadReflectsWorkouts(t *testing.T) {
	s := newTestStore(t)
	tracker := progress.NewTracker(s, "test@example.com")
	tracker.Load()

	p := newProgressModel()
	p.setSize(100, 30)
	p.setTracker(tracker)
	if p.report.Workouts != 0 {
		t.Fatal("fresh tracker should report 0 workouts")
	}

	tracker.LogWorkout("chest workout", 30, 150)
	p.reload()

	if p.report.Workouts != 1 || p.report.Calories != 150 {
		t.Fatalf("report = %+v, want 1 workout / 150 kcal", p.report)
	}
	if len(p.totals) != chartDays {
		t.Fatalf("got %d day totals, want %d", len(p.totals), chartDays)
	}
	if p.totals[chartDays-1].Calories != 150 {
		t.Fatalf("today's total = %d, want 150", p.totals[chartDays-1].Calories)
	}
	if len(p.badges) != 1 {
		t.Fatalf("got %d badges, want 1", len(p.badges))
	}
}

func TestHistoryCursorMapsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	tracker := progress.NewTracker(s, "test@example.com")
	tracker.Load()
	tracker.LogWorkout("chest workout", 30, 150)
	tracker.LogWorkout("legs workout", 30, 150)

	h := newHistoryModel()
	h.setTracker(tracker)

	if len(h.entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(h.entries))
	}
	// Cursor 0 points at the newest entry (last in the slice).
	if h.entries[h.cursorIndex()].Type != "legs workout" {
		t.Fatalf("cursor 0 should be the newest entry, got %q", h.entries[h.cursorIndex()].Type)
	}

	h, _ = h.update(tea.KeyMsg{Type: tea.KeyDown})
	if h.entries[h.cursorIndex()].Type != "chest workout" {
		t.Fatalf("cursor 1 should be the older entry, got %q", h.entries[h.cursorIndex()].Type)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewChat {
		t.Fatal("default view should be chat")
	}
	if app.session != nil {
		t.Fatal("no session before sign-in")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppAuthGateView(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.authM.setSize(120, 40)

	output := app.View()
	if !containsString(output, "FitBot") {
		t.Fatal("auth gate should show the app title")
	}
	if !containsString(output, "Sign In") {
		t.Fatal("auth gate should offer sign in")
	}
}

func signIn(t *testing.T, app App) App {
	t.Helper()
	svc := auth.NewService(app.store)
	session, err := svc.Register("Test", "test@example.com", "Str0ng!pass", "Str0ng!pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	model, _ := app.Update(signedInMsg{session: session})
	return model.(App)
}

func TestAppSignInWiresEverything(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	app = signIn(t, app)

	if app.session == nil {
		t.Fatal("session should be set")
	}
	if app.tracker == nil || app.router == nil {
		t.Fatal("tracker and router should be built on sign-in")
	}
	if app.activeView != viewChat {
		t.Fatal("sign-in should land on the chat view")
	}
	if !containsString(app.status, "Welcome back") {
		t.Fatalf("status = %q, want welcome notice", app.status)
	}
}

func TestAppSignOutClearsSession(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app = signIn(t, app)

	model, _ := app.Update(signedOutMsg{})
	app = model.(App)

	if app.session != nil {
		t.Fatal("session should be cleared")
	}
	if app.tracker != nil || app.router != nil {
		t.Fatal("tracker and router should be cleared")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)
	app = signIn(t, app)

	views := []viewState{viewChat, viewProfile, viewProgress, viewHistory, viewAccount}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !containsString(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusNoticeExpires(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.setStatus("saved", false)

	if app.status != "saved" {
		t.Fatal("status should be set")
	}

	// Ticks before the deadline keep the notice.
	model, _ := app.Update(tickMsg(time.Now()))
	app = model.(App)
	if app.status != "saved" {
		t.Fatal("notice expired too early")
	}

	app.statusUntil = time.Now().Add(-time.Second)
	model, _ = app.Update(tickMsg(time.Now()))
	app = model.(App)
	if app.status != "" {
		t.Fatal("notice should expire after its deadline")
	}
}

func TestAppBotReplyRefreshesProgress(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)
	app = signIn(t, app)

	app.tracker.LogWorkout("chest workout", 30, 150)

	reply := chat.Reply{Text: "done", Unlocked: []string{"first_workout"}}
	model, _ = app.Update(botReplyMsg{reply: reply})
	app = model.(App)

	if app.progressM.report.Workouts != 1 {
		t.Fatal("progress view should pick up the logged workout")
	}
	if len(app.historyM.entries) != 1 {
		t.Fatal("history view should pick up the logged workout")
	}
	if !containsString(app.status, "Achievement unlocked") {
		t.Fatalf("status = %q, want achievement notice", app.status)
	}
}

func TestAppIsFormActive(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app = signIn(t, app)

	// Chat input starts focused, so the chat view captures keys.
	app.activeView = viewChat
	if !app.isFormActive() {
		t.Fatal("focused chat input should capture keys")
	}

	app.chatM.input.Blur()
	if app.isFormActive() {
		t.Fatal("blurred chat input should release keys")
	}

	app.activeView = viewProfile
	app.profileM.calculating = true
	if !app.isFormActive() {
		t.Fatal("calculating profile should capture keys")
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.exportPicking = true

	model, _ := app.updateExportPicker(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatal("down should move to JSON")
	}

	model, _ = app.updateExportPicker(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Auth error rendering
// ============================================================

func TestAuthErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{auth.ErrDuplicateAccount, "An account with that email already exists"},
		{auth.ErrNotFound, "No account found for that email"},
		{auth.ErrInvalidCredentials, "Incorrect password"},
		{&auth.ValidationError{Reasons: []string{"a", "b"}}, "a; b"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		got := authErrorText(tt.err)
		if got != tt.want {
			t.Errorf("authErrorText(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Chat", "Profile", "Progress", "History", "Account"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewChat != 0 || viewProfile != 1 || viewProgress != 2 || viewHistory != 3 || viewAccount != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Helpers
// ============================================================

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 {
		t.Fatal("min(3,5) should be 3")
	}
	if min(5, 3) != 3 {
		t.Fatal("min(5,3) should be 3")
	}
	if max(3, 5) != 5 {
		t.Fatal("max(3,5) should be 5")
	}
	if max(5, 3) != 5 {
		t.Fatal("max(5,3) should be 5")
	}
}

// containsString checks if s contains substr, ignoring ANSI escape codes.
func containsString(s, substr string) bool {
	return len(s) > 0 && len(substr) > 0 && stringContains(s, substr)
}

func stringContains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
