package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitbot/internal/metrics"
	"github.com/sadopc/fitbot/internal/profile"
	"github.com/sadopc/fitbot/internal/store"
)

// calcDelay is the artificial pause between submitting the form and showing
// the computed plan.
const calcDelay = 1500 * time.Millisecond

type profileModel struct {
	kv     store.KV
	email  string
	width  int
	height int

	profile     *metrics.Profile
	formActive  bool
	calculating bool
	form        *huh.Form
	errText     string

	// Form values as pointers (survive value copies)
	formAge      *string
	formGender   *string
	formHeight   *string
	formWeight   *string
	formActivity *string
	formGoal     *string
}

func newProfileModel(kv store.KV) profileModel {
	age, gender, height, weight := "", "male", "", ""
	activity, goal := "1.2", "maintain"
	return profileModel{
		kv:           kv,
		formAge:      &age,
		formGender:   &gender,
		formHeight:   &height,
		formWeight:   &weight,
		formActivity: &activity,
		formGoal:     &goal,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

// setAccount points the model at a signed-in user and restores any saved
// profile.
func (p *profileModel) setAccount(email string) error {
	p.email = email
	saved, ok, err := profile.Load(p.kv, email)
	if err != nil {
		return err
	}
	if ok {
		p.profile = saved
	} else {
		p.profile = nil
	}
	return nil
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	// Input is disabled while the plan is being computed.
	if p.calculating {
		if _, ok := msg.(calcDoneMsg); ok {
			return p.finishCalculation()
		}
		return p, nil
	}

	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return p.showForm()
		}
	}
	return p, nil
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	if p.profile != nil {
		*p.formAge = strconv.Itoa(p.profile.Age)
		*p.formGender = p.profile.Gender
		*p.formHeight = strconv.FormatFloat(p.profile.HeightCm, 'f', -1, 64)
		*p.formWeight = strconv.FormatFloat(p.profile.WeightKg, 'f', -1, 64)
		*p.formActivity = strconv.FormatFloat(p.profile.ActivityFactor, 'f', -1, 64)
		*p.formGoal = string(p.profile.Goal)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Age").Value(p.formAge),
			huh.NewSelect[string]().Title("Gender").
				Options(
					huh.NewOption("Male", "male"),
					huh.NewOption("Female", "female"),
				).Value(p.formGender),
			huh.NewInput().Title("Height (cm)").Value(p.formHeight),
			huh.NewInput().Title("Weight (kg)").Value(p.formWeight),
		).Title("About you"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Activity level").
				Options(
					huh.NewOption("Sedentary (little exercise)", "1.2"),
					huh.NewOption("Light (1-3 days/week)", "1.375"),
					huh.NewOption("Moderate (3-5 days/week)", "1.55"),
					huh.NewOption("Active (6-7 days/week)", "1.725"),
					huh.NewOption("Very active (physical job)", "1.9"),
				).Value(p.formActivity),
			huh.NewSelect[string]().Title("Goal").
				Options(
					huh.NewOption("Lose weight", "loss"),
					huh.NewOption("Gain muscle", "gain"),
					huh.NewOption("Maintain", "maintain"),
				).Value(p.formGoal),
		).Title("Your plan"),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			p.errText = ""
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		return p.beginCalculation()
	}

	return p, cmd
}

func (p profileModel) beginCalculation() (profileModel, tea.Cmd) {
	in, err := p.parseInput()
	if err != nil {
		p.errText = err.Error()
		return p, nil
	}
	if verr := in.Validate(); verr != nil {
		p.errText = verr.Error()
		return p, nil
	}

	p.errText = ""
	p.calculating = true
	return p, tea.Tick(calcDelay, func(time.Time) tea.Msg {
		return calcDoneMsg{}
	})
}

func (p profileModel) finishCalculation() (profileModel, tea.Cmd) {
	p.calculating = false

	in, err := p.parseInput()
	if err != nil {
		p.errText = err.Error()
		return p, nil
	}

	computed := metrics.Calculate(in)
	p.profile = &computed

	if err := profile.Save(p.kv, p.email, computed); err != nil {
		return p, func() tea.Msg {
			return statusMsg{text: "Could not save profile: " + err.Error(), isError: true}
		}
	}

	prof := p.profile
	return p, func() tea.Msg { return profileSavedMsg{profile: prof} }
}

func (p profileModel) parseInput() (metrics.Input, error) {
	age, err := strconv.Atoi(*p.formAge)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("age must be a whole number")
	}
	height, err := strconv.ParseFloat(*p.formHeight, 64)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("height must be a number")
	}
	weight, err := strconv.ParseFloat(*p.formWeight, 64)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("weight must be a number")
	}
	activity, err := strconv.ParseFloat(*p.formActivity, 64)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("activity level must be a number")
	}

	return metrics.Input{
		Age:            age,
		Gender:         *p.formGender,
		HeightCm:       height,
		WeightKg:       weight,
		ActivityFactor: activity,
		Goal:           metrics.Goal(*p.formGoal),
	}, nil
}

func (p profileModel) view() string {
	w := p.width - 4

	if p.calculating {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Profile"),
			"",
			composingStyle.Render("Calculating your personalized plan..."),
		)
		return panelStyle.Width(w).Render(content)
	}

	if p.formActive && p.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Profile"), "", p.form.View(),
		)
		if p.errText != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render(p.errText))
		}
		return panelStyle.Width(w).Render(content)
	}

	if p.profile == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Profile"),
			"",
			mutedStyle.Render("No profile yet. Press enter to fill in your details."),
		)
		if p.errText != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render(p.errText))
		}
		return panelStyle.Width(w).Render(content)
	}

	return p.renderPlan(w)
}

func (p profileModel) renderPlan(w int) string {
	prof := p.profile

	label := func(s string) string {
		return mutedStyle.Width(18).Render(s)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Your Plan"))
	rows = append(rows, "")
	rows = append(rows, label("BMI")+highlightStyle.Render(fmt.Sprintf("%.1f (%s)", prof.BMI, prof.BMICategory)))
	rows = append(rows, label("BMR")+highlightStyle.Render(fmt.Sprintf("%d kcal/day", prof.BMR)))
	rows = append(rows, label("Daily calories")+highlightStyle.Render(fmt.Sprintf("%d kcal for %s", prof.Calories, prof.Goal)))
	rows = append(rows, label("Macros")+highlightStyle.Render(fmt.Sprintf(
		"%dg protein / %dg carbs / %dg fats", prof.Diet.Protein, prof.Diet.Carbs, prof.Diet.Fats)))
	rows = append(rows, label("Ideal weight")+highlightStyle.Render(prof.IdealWeight.String()))
	rows = append(rows, label("Water")+highlightStyle.Render(fmt.Sprintf("%.1f L/day", prof.WaterLiters)))
	rows = append(rows, label("Training level")+highlightStyle.Render(prof.Level))
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render(prof.Diet.Focus))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit your details"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
