// Package chat classifies free-text input against an ordered rule list and
// renders plain-text replies from the fitness profile and progress state. The
// first matching rule wins; precedence is exactly the rule order below. The
// router knows nothing about the interface layer — it takes a string and
// returns a Reply.
package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sadopc/fitbot/internal/metrics"
	"github.com/sadopc/fitbot/internal/progress"
)

// Reply is the router's full answer to one input: the rendered text, the
// workout entry logged as a side effect (if any), and any achievements that
// unlock because of it.
type Reply struct {
	Text     string
	Logged   *progress.Entry
	Unlocked []string
}

type rule struct {
	intent string
	match  func(msg string) bool
	handle func(msg string) (Reply, error)
}

var greetingPattern = regexp.MustCompile(`\b(hi|hello|hey|good morning|good afternoon)\b`)

// Router answers chat messages for one signed-in user.
type Router struct {
	profile *metrics.Profile
	tracker *progress.Tracker
	rules   []rule
}

// New builds a router around the user's progress tracker. The profile is nil
// until the user completes the profile form; until then every input gets the
// profile prompt.
func New(tracker *progress.Tracker) *Router {
	r := &Router{tracker: tracker}
	r.rules = []rule{
		{"profile-gate", func(string) bool { return r.profile == nil }, r.profilePrompt},
		{"greeting", greetingPattern.MatchString, r.greeting},
		{"metrics", containsAny("bmi", "bmr"), r.metricsReply},
		{"progress", containsAny("progress", "streak", "achievement"), r.progressReply},
		{"body-part", matchesBodyPart, r.bodyPartWorkout},
		{"routine", containsAny("workout", "exercise", "routine"), r.fullBodyRoutine},
		{"diet", containsAny("diet", "meal", "food", "eat"), r.dietPlan},
		{"motivation", containsAny("tired", "hard", "difficult"), r.motivation},
		{"thanks", containsAny("thank"), r.thanks},
		{"fallback", func(string) bool { return true }, r.capabilityMenu},
	}
	return r
}

// SetProfile installs (or replaces) the active fitness profile.
func (r *Router) SetProfile(p *metrics.Profile) {
	r.profile = p
}

// Intents returns the rule names in precedence order.
func (r *Router) Intents() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.intent
	}
	return names
}

// Respond classifies input and renders the reply. Voice transcripts go
// through the same path as typed text.
func (r *Router) Respond(input string) (Reply, error) {
	msg := strings.ToLower(strings.TrimSpace(input))
	for _, rl := range r.rules {
		if rl.match(msg) {
			return rl.handle(msg)
		}
	}
	// Unreachable: the fallback rule matches everything.
	return r.capabilityMenu(msg)
}

func containsAny(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

func matchesBodyPart(msg string) bool {
	return matchedBodyPart(msg) != ""
}

func matchedBodyPart(msg string) string {
	for _, part := range bodyParts {
		if strings.Contains(msg, part) {
			return part
		}
	}
	return ""
}

func intensityFor(msg string) string {
	intensity := "beginner"
	if strings.Contains(msg, "intermediate") || strings.Contains(msg, "medium") {
		intensity = "intermediate"
	}
	if strings.Contains(msg, "advanced") || strings.Contains(msg, "hard") || strings.Contains(msg, "intense") {
		intensity = "advanced"
	}
	return intensity
}

// ------------------------------------------------------------
// Handlers, one per intent
// ------------------------------------------------------------

func (r *Router) profilePrompt(string) (Reply, error) {
	return Reply{Text: "Please fill in your details on the Profile tab first so I can personalize your plan."}, nil
}

func (r *Router) greeting(string) (Reply, error) {
	return Reply{Text: "Hello! Welcome back to FitBot! How can I help you with your fitness journey today? 💪"}, nil
}

func (r *Router) metricsReply(string) (Reply, error) {
	p := r.profile
	text := fmt.Sprintf(
		"📊 Your Fitness Metrics:\n"+
			"• BMI: %.1f (%s)\n"+
			"• BMR: %d kcal/day\n"+
			"• Daily Target: %d kcal for %s\n"+
			"• Recommendation: %s",
		p.BMI, p.BMICategory, p.BMR, p.Calories, p.Goal, tipFor(p.BMICategory),
	)
	return Reply{Text: text}, nil
}

func (r *Router) progressReply(string) (Reply, error) {
	rep := r.tracker.Report()
	text := fmt.Sprintf(
		"🎯 Your Progress:\n"+
			"• Current Streak: %d days 🔥\n"+
			"• Total Workouts: %d 🏋️\n"+
			"• Calories Burned: %d 🔥\n"+
			"• Achievements: %d 🏆\n\n"+
			"Keep up the great work! You're doing amazing!",
		rep.Streak, rep.Workouts, rep.Calories, rep.Achievements,
	)
	return Reply{Text: text}, nil
}

func (r *Router) bodyPartWorkout(msg string) (Reply, error) {
	part := matchedBodyPart(msg)
	intensity := intensityFor(msg)
	exercises := workouts[part][intensity]

	var b strings.Builder
	fmt.Fprintf(&b, "💪 %s %s exercises:\n\n", titleCase(intensity), part)
	for i, ex := range exercises {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, ex.Name, ex.Reps)
	}
	b.WriteString("\n💡 Tip: Rest 60 seconds between sets and focus on proper form!")

	entry, unlocked, err := r.logWorkout(part+" workout", 30, 150)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: b.String(), Logged: entry, Unlocked: unlocked}, nil
}

func (r *Router) fullBodyRoutine(string) (Reply, error) {
	p := r.profile
	routine := workouts["fullbody"][p.Level]

	var b strings.Builder
	fmt.Fprintf(&b, "🏋️ %s full-body routine for %s:\n\n", titleCase(p.Level), p.Goal)
	for i, ex := range routine {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, ex.Name, ex.Reps)
	}
	b.WriteString("\n⏱️ Complete 3 rounds with 90 seconds rest between rounds")
	fmt.Fprintf(&b, "\n🎯 Perfect for your %s goals!", p.Goal)

	entry, unlocked, err := r.logWorkout("full body routine", 45, 200)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: b.String(), Logged: entry, Unlocked: unlocked}, nil
}

func (r *Router) dietPlan(msg string) (Reply, error) {
	p := r.profile

	dietType := "nonVegetarian"
	if strings.Contains(msg, "veg") {
		dietType = "vegetarian"
	}
	plan := mealPlans[string(p.Goal)][dietType]
	if plan == nil {
		plan = mealPlans[string(p.Goal)]["nonVegetarian"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Your %s diet plan (%d kcal):\n\n", p.Goal, p.Calories)
	fmt.Fprintf(&b, "• Protein: %dg | Carbs: %dg | Fats: %dg\n\n", p.Diet.Protein, p.Diet.Carbs, p.Diet.Fats)
	for _, meal := range plan {
		fmt.Fprintf(&b, "%s — %s (%d kcal)\n", meal.Slot, meal.Name, meal.Calories)
		fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(meal.Ingredients, ", "))
		fmt.Fprintf(&b, "Recipe: %s\n\n", meal.Recipe)
	}
	fmt.Fprintf(&b, "💡 %s", p.Diet.Focus)

	return Reply{Text: b.String()}, nil
}

func (r *Router) motivation(string) (Reply, error) {
	return Reply{Text: "I know it's tough, but remember why you started! 💪 Every rep counts, every healthy meal matters. You've got this! Keep pushing! 🔥"}, nil
}

func (r *Router) thanks(string) (Reply, error) {
	return Reply{Text: "You're welcome! 😊 Remember, consistency is key. Keep showing up for yourself! You're doing amazing! 🌟"}, nil
}

func (r *Router) capabilityMenu(string) (Reply, error) {
	return Reply{Text: "I can help you with:\n\n" +
		"💪 Workouts: \"chest workout\", \"legs exercises\", \"full body routine\"\n" +
		"🍽️ Nutrition: \"diet plan\", \"meal suggestions\", \"weight loss diet\"\n" +
		"📊 Tracking: \"my progress\", \"show my BMI\", \"achievements\"\n" +
		"🎯 Goals: \"weight loss tips\", \"muscle gain advice\"\n\n" +
		"What would you like to focus on today? 😊"}, nil
}

func (r *Router) logWorkout(workoutType string, durationMin, calories int) (*progress.Entry, []string, error) {
	unlocked, err := r.tracker.LogWorkout(workoutType, durationMin, calories)
	if err != nil {
		return nil, nil, err
	}
	state := r.tracker.State()
	entry := state.History[len(state.History)-1]
	return &entry, unlocked, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
