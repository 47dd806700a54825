package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitbot/internal/progress"
)

const chartDays = 7

type progressModel struct {
	tracker *progress.Tracker
	width   int
	height  int

	report progress.Report
	totals []progress.DayTotal
	badges []string

	chart barchart.Model
}

func newProgressModel() progressModel {
	return progressModel{
		chart: barchart.New(60, 10),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *progressModel) setTracker(t *progress.Tracker) {
	p.tracker = t
	p.reload()
}

// reload pulls fresh numbers from the tracker and rebuilds the chart.
func (p *progressModel) reload() {
	if p.tracker == nil {
		return
	}
	p.report = p.tracker.Report()
	p.totals = p.tracker.CaloriesByDay(chartDays)

	state := p.tracker.State()
	p.badges = p.badges[:0]
	for _, id := range state.Achievements {
		p.badges = append(p.badges, progress.Title(id))
	}

	p.buildChart()
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if p.height > 30 {
		chartHeight = 14
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range p.totals {
		label := day.Date
		if t, err := time.Parse("2006-01-02", day.Date); err == nil {
			label = t.Format("Mon 02")
		}

		style := lipgloss.NewStyle().Foreground(colorSecondary)
		if day.Calories == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "kcal", Value: float64(day.Calories), Style: style},
			},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	return p, nil
}

func (p progressModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Progress")

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		p.statCard("Streak", fmt.Sprintf("%d days", p.report.Streak)),
		" ",
		p.statCard("Workouts", fmt.Sprintf("%d", p.report.Workouts)),
		" ",
		p.statCard("Calories", fmt.Sprintf("%d kcal", p.report.Calories)),
		" ",
		p.statCard("Achievements", fmt.Sprintf("%d", p.report.Achievements)),
	)

	chartTitle := subtitleStyle.Render("Calories burned, last 7 days")
	chartView := p.chart.View()

	badges := p.renderBadges()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", cards, "", chartTitle, chartView, "", badges,
		),
	)
}

func (p progressModel) statCard(label, value string) string {
	return statCardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			statValueStyle.Render(value),
			mutedStyle.Render(label),
		),
	)
}

func (p progressModel) renderBadges() string {
	if len(p.badges) == 0 {
		return mutedStyle.Render("No achievements yet. Complete a workout to earn your first!")
	}
	var items []string
	for _, b := range p.badges {
		items = append(items, badgeStyle.Render(b))
	}
	return strings.Join(items, "   ")
}
