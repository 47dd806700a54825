// Package progress accumulates workout completions: counts, calories, streak
// days, and achievement unlocks. State is persisted to the key-value store
// after every mutation and scoped per account.
package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/fitbot/internal/store"
)

const (
	dateLayout = "2006-01-02"

	// legacyKey is the old single-global progress blob. It is read once as a
	// fallback when an account has no progress of its own yet.
	legacyKey = "fitbot_progress"
)

// Entry is one logged workout.
type Entry struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	DurationMin int    `json:"duration"`
	Calories    int    `json:"calories"`
}

// State is the full persisted progress record. Achievements only ever grow.
type State struct {
	WorkoutsCompleted int      `json:"workoutsCompleted"`
	CaloriesBurned    int      `json:"caloriesBurned"`
	StreakDays        int      `json:"streak"`
	LastWorkoutDate   string   `json:"lastWorkoutDate"`
	History           []Entry  `json:"workoutHistory"`
	Achievements      []string `json:"achievements"`
}

func (s State) hasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Report is the snapshot the chat and progress views render.
type Report struct {
	Streak       int
	Workouts     int
	Calories     int
	Achievements int
}

// DayTotal aggregates calories burned on one calendar day.
type DayTotal struct {
	Date     string
	Calories int
}

// Achievement rule table: each id is granted once, when its condition first
// holds after a logged workout.
var achievementRules = []struct {
	id   string
	hold func(State) bool
}{
	{"first_workout", func(s State) bool { return s.WorkoutsCompleted >= 1 }},
	{"week_streak", func(s State) bool { return s.StreakDays >= 7 }},
	{"calorie_master", func(s State) bool { return s.CaloriesBurned >= 1000 }},
	{"dedicated", func(s State) bool { return s.WorkoutsCompleted >= 10 }},
}

var achievementTitles = map[string]string{
	"first_workout":  "First Workout! 🎉",
	"week_streak":    "7-Day Streak! 🔥",
	"calorie_master": "1000 Calories Burned! 💪",
	"dedicated":      "10 Workouts Completed! 🏆",
}

// Title returns the display title for an achievement id.
func Title(id string) string {
	if t, ok := achievementTitles[id]; ok {
		return t
	}
	return id
}

// Tracker owns one account's progress state.
type Tracker struct {
	kv    store.KV
	key   string
	now   func() time.Time
	state State
}

func NewTracker(kv store.KV, email string) *Tracker {
	return &Tracker{
		kv:  kv,
		key: "progress_" + email,
		now: time.Now,
	}
}

// SetClock overrides the tracker's time source.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Load restores state from the store. Absence is not an error: defaults
// apply. Accounts without progress inherit the legacy global blob once, if
// one exists.
func (t *Tracker) Load() error {
	raw, ok, err := t.kv.Get(t.key)
	if err != nil {
		return err
	}
	if !ok {
		raw, ok, err = t.kv.Get(legacyKey)
		if err != nil {
			return err
		}
	}
	if !ok {
		t.state = State{}
		return nil
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return fmt.Errorf("decode progress: %w", err)
	}
	t.state = s
	return nil
}

// LogWorkout records one completed workout, recomputes the streak, evaluates
// the achievement table, and persists. It returns the ids of any newly
// unlocked achievements for notification.
func (t *Tracker) LogWorkout(workoutType string, durationMin, calories int) ([]string, error) {
	today := t.now().Format(dateLayout)

	t.state.WorkoutsCompleted++
	t.state.CaloriesBurned += calories

	// Streak: unchanged on a same-day workout, +1 the day after the last
	// logged day, otherwise back to 1.
	if t.state.LastWorkoutDate != today {
		yesterday := t.now().AddDate(0, 0, -1).Format(dateLayout)
		if t.state.LastWorkoutDate == yesterday {
			t.state.StreakDays++
		} else {
			t.state.StreakDays = 1
		}
	}

	t.state.LastWorkoutDate = today
	t.state.History = append(t.state.History, Entry{
		Date:        today,
		Type:        workoutType,
		DurationMin: durationMin,
		Calories:    calories,
	})

	var unlocked []string
	for _, rule := range achievementRules {
		if !t.state.hasAchievement(rule.id) && rule.hold(t.state) {
			t.state.Achievements = append(t.state.Achievements, rule.id)
			unlocked = append(unlocked, rule.id)
		}
	}

	if err := t.save(); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	s := t.state
	s.History = append([]Entry(nil), t.state.History...)
	s.Achievements = append([]string(nil), t.state.Achievements...)
	return s
}

// Report returns the rendered snapshot numbers.
func (t *Tracker) Report() Report {
	return Report{
		Streak:       t.state.StreakDays,
		Workouts:     t.state.WorkoutsCompleted,
		Calories:     t.state.CaloriesBurned,
		Achievements: len(t.state.Achievements),
	}
}

// CaloriesByDay sums calories per calendar day over the last `days` days,
// oldest first, including zero days. Used for the progress chart.
func (t *Tracker) CaloriesByDay(days int) []DayTotal {
	byDate := make(map[string]int)
	for _, e := range t.state.History {
		byDate[e.Date] += e.Calories
	}

	totals := make([]DayTotal, 0, days)
	start := t.now().AddDate(0, 0, 1-days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		totals = append(totals, DayTotal{Date: date, Calories: byDate[date]})
	}
	return totals
}

func (t *Tracker) save() error {
	data, err := json.Marshal(t.state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return t.kv.Set(t.key, string(data))
}
