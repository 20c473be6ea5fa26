package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"socpredict/internal/apperrors"
	"socpredict/internal/prediction"
)

// Navigate unmounts the current view and mounts route. state is the
// navigation payload; the mounted view receives it once and the router
// forgets it.
func (m Model) Navigate(route Route, state *prediction.Result) (Model, tea.Cmd) {
	m = m.unmount()

	m.route = ParseRoute(string(route))
	m.visit = uuid.NewString()
	m.pending = state
	m.status = ""

	m.log.Debug("navigate",
		zap.String("route", string(m.route)),
		zap.String("visit", m.visit),
		zap.Bool("state", state != nil))

	return m.mount()
}

// unmount releases the current view. An in-flight request is cancelled so
// its completion is dropped.
func (m Model) unmount() Model {
	if m.form.cancel != nil {
		m.form.cancel()
	}
	m.landing = landingState{}
	m.form = formState{}
	m.results = resultsState{}
	return m
}

// takeState hands over the navigation payload and clears it.
func (m *Model) takeState() *prediction.Result {
	s := m.pending
	m.pending = nil
	return s
}

func (m Model) mount() (Model, tea.Cmd) {
	switch m.route {
	case RoutePredict:
		m.takeState()
		m.form = m.newForm()
		cmd := m.focusForm(0)
		return m, cmd
	case RouteResults:
		m.results = resultsState{result: m.takeState()}
		if m.results.result == nil {
			m.log.Debug("results mounted", zap.Error(apperrors.NewMissingState("no predictions in navigation state")))
		}
	default:
		m.takeState()
	}
	return m, nil
}

// live reports whether a message scheduled by visit may still be applied.
func (m Model) live(visit string) bool {
	if visit != m.visit {
		m.log.Debug("dropping stale message", zap.String("visit", visit), zap.String("current", m.visit))
		return false
	}
	return true
}
