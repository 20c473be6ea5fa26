package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"socpredict/cmd/soc/ui"
)

// Update routes messages. Timer and request messages carry the visit id of
// the view that scheduled them and are dropped once that view is gone.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m.refreshDocs(), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case splashDoneMsg:
		if !m.booting {
			return m, nil
		}
		m.booting = false
		if m.healthGen == 0 {
			m.health = msg.health
		}
		return m.Navigate(m.startRoute, nil)

	case landingDelayMsg:
		return m.handleLandingDelay(msg)

	case phaseMsg:
		return m.handlePhase(msg)

	case predictionMsg:
		return m.handlePrediction(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case healthMsg:
		if msg.gen == m.healthGen {
			m.health = msg.health
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and friends go to the focused input.
	if m.route == RoutePredict && m.form.focus < len(m.form.inputs) {
		var cmd tea.Cmd
		i := m.form.focus
		m.form.inputs[i], cmd = m.form.inputs[i].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m = m.unmount()
		m.quitting = true
		return m, tea.Quit
	}
	if m.booting {
		return m, nil
	}

	// A notice on the input view swallows everything but its dismiss keys.
	if m.route == RoutePredict && m.form.notice != "" {
		return m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Home):
		return m.Navigate(RouteLanding, nil)
	case key.Matches(msg, m.keys.Predict):
		return m.Navigate(RoutePredict, nil)
	case key.Matches(msg, m.keys.About):
		return m.Navigate(RouteAbout, nil)
	case key.Matches(msg, m.keys.Results):
		return m.Navigate(RouteResults, nil)
	}

	switch m.route {
	case RouteLanding:
		return m.updateLanding(msg)
	case RoutePredict:
		return m.updateForm(msg)
	case RouteResults:
		return m.updateResults(msg)
	}
	return m, nil
}

// handleConfigReload applies a reloaded config. A new service gets a fresh
// health probe so the footer reflects its endpoint.
func (m Model) handleConfigReload(msg ConfigReloadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("config reload rejected", zap.Error(msg.Err))
		m.status = "config reload failed: " + msg.Err.Error()
		return m, nil
	}
	if msg.Theme != "" && msg.Theme != m.theme {
		m = m.applyTheme(msg.Theme)
	}
	m.status = "config reloaded"
	if msg.Service == nil {
		return m, nil
	}
	m.svc = msg.Service
	m.healthGen++
	m.health = healthUnknown
	return m, healthCmd(m.svc, m.healthGen, healthProbeTimeout)
}
