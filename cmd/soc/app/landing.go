package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateLanding(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.landing.starting || msg.Type != tea.KeyEnter {
		return m, nil
	}
	m.landing.starting = true
	visit := m.visit
	return m, tea.Tick(m.timings.LandingDelay, func(time.Time) tea.Msg {
		return landingDelayMsg{visit: visit}
	})
}

func (m Model) handleLandingDelay(msg landingDelayMsg) (Model, tea.Cmd) {
	if !m.live(msg.visit) || m.route != RouteLanding || !m.landing.starting {
		return m, nil
	}
	return m.Navigate(RoutePredict, nil)
}

func (m Model) viewLanding() string {
	action := m.styles.ButtonFocus.Render("Get Started")
	if m.landing.starting {
		action = m.spinner.View() + " " + m.styles.Muted.Render("Starting...")
	}
	return m.landingDoc + "\n\n" + action
}
