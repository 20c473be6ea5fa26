package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"socpredict/cmd/soc/ui"
	"socpredict/internal/apperrors"
	"socpredict/internal/features"
)

func (m Model) newForm() formState {
	specs := features.Catalogue()
	inputs := make([]textinput.Model, len(specs))
	for i := range specs {
		ti := textinput.New()
		ti.Placeholder = "0.0"
		ti.Prompt = "| "
		ti.CharLimit = 24
		ti.Width = ui.InputWidth
		ti.PromptStyle = m.styles.Prompt
		ti.TextStyle = m.styles.UserInput
		inputs[i] = ti
	}
	return formState{
		inputs:  inputs,
		invalid: make(map[features.Name]bool),
	}
}

// focusForm moves focus to slot i (fields first, then the two buttons).
func (m *Model) focusForm(i int) tea.Cmd {
	i = ((i % focusSlots) + focusSlots) % focusSlots
	m.form.focus = i
	var cmd tea.Cmd
	for j := range m.form.inputs {
		if j == i {
			cmd = m.form.inputs[j].Focus()
		} else {
			m.form.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.form.notice != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.form.notice = ""
		}
		return m, nil
	}
	if m.form.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		cmd := m.focusForm(m.form.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.focusForm(m.form.focus - 1)
		return m, cmd
	case key.Matches(msg, m.keys.Random):
		return m.randomFill(), nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Enter):
		switch m.form.focus {
		case focusRandom:
			return m.randomFill(), nil
		case focusSubmit:
			return m.submit()
		default:
			cmd := m.focusForm(m.form.focus + 1)
			return m, cmd
		}
	}

	if m.form.focus >= len(m.form.inputs) {
		return m, nil
	}

	i := m.form.focus
	var cmd tea.Cmd
	m.form.inputs[i], cmd = m.form.inputs[i].Update(msg)
	m = m.editField(features.Names()[i], m.form.inputs[i].Value())
	return m, cmd
}

// editField applies raw text to one field and tracks whether it parsed.
func (m Model) editField(name features.Name, raw string) Model {
	if err := m.form.values.Set(name, raw); err != nil {
		m.form.invalid[name] = true
	} else {
		delete(m.form.invalid, name)
	}
	return m
}

func (m Model) randomFill() Model {
	m.form.values = features.Random(m.rng)
	for i, name := range features.Names() {
		m.form.inputs[i].SetValue(m.form.values.Text(name))
	}
	m.form.invalid = make(map[features.Name]bool)
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	if err := m.form.values.Validate(); err != nil {
		m.log.Debug("submit blocked", zap.Error(err))
		m.form.notice = noticeIncomplete
		return m, nil
	}

	m.form.loading = true
	m.form.phase = 0
	return m, m.phaseTick(0)
}

func (m Model) phaseTick(phase int) tea.Cmd {
	visit := m.visit
	return tea.Tick(m.timings.Phases[phase], func(time.Time) tea.Msg {
		return phaseMsg{visit: visit, phase: phase + 1}
	})
}

func (m Model) handlePhase(msg phaseMsg) (Model, tea.Cmd) {
	if !m.live(msg.visit) || m.route != RoutePredict || !m.form.loading {
		return m, nil
	}
	if msg.phase < len(m.timings.Phases) {
		m.form.phase = msg.phase
		return m, m.phaseTick(msg.phase)
	}
	return m.startRequest()
}

func (m Model) startRequest() (Model, tea.Cmd) {
	if m.svc == nil {
		m.form.loading = false
		m.form.notice = noticeFailed
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.form.cancel = cancel

	svc, values, visit := m.svc, m.form.values, m.visit
	return m, func() tea.Msg {
		result, err := svc.Predict(ctx, values)
		return predictionMsg{visit: visit, result: result, err: err}
	}
}

func (m Model) handlePrediction(msg predictionMsg) (Model, tea.Cmd) {
	if !m.live(msg.visit) || m.route != RoutePredict {
		return m, nil
	}
	if m.form.cancel != nil {
		m.form.cancel()
		m.form.cancel = nil
	}
	m.form.loading = false

	if msg.err != nil {
		m.log.Info("prediction failed",
			zap.String("kind", string(apperrors.KindOf(msg.err))),
			zap.Error(msg.err))
		m.form.notice = noticeFor(msg.err)
		return m, nil
	}
	if msg.result == nil {
		m.form.notice = noticeUnexpected
		return m, nil
	}
	return m.Navigate(RouteResults, msg.result)
}

func noticeFor(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return noticeIncomplete
	case apperrors.KindUnexpectedResponse:
		return noticeUnexpected
	default:
		return noticeFailed
	}
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Enter Soil & Terrain Features"))
	b.WriteString("\n")

	for i, spec := range features.Catalogue() {
		label := m.styles.Label.Render(fmt.Sprintf("%s %s", spec.Glyph, spec.Label))
		line := lipgloss.JoinHorizontal(lipgloss.Top, label, m.form.inputs[i].View())
		if m.form.invalid[spec.Name] {
			line += " " + m.styles.Error.Render("not a number")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.button("🎲 Random", focusRandom))
	b.WriteString("  ")
	b.WriteString(m.button("Predict", focusSubmit))
	b.WriteString("\n")

	if m.form.loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " " + m.styles.Info.Render(phaseLabel(m.form.phase)))
		b.WriteString("\n")
	}

	if m.form.notice != "" {
		style := m.styles.Error
		if m.form.notice == noticeIncomplete {
			style = m.styles.Warning
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(style.Render(m.form.notice) + "\n\n" +
			m.styles.Muted.Render("enter/esc to dismiss")))
		b.WriteString("\n")
	}
	return b.String()
}

func phaseLabel(phase int) string {
	if phase >= len(phaseLabels) {
		phase = len(phaseLabels) - 1
	}
	return phaseLabels[phase]
}

func (m Model) button(label string, slot int) string {
	if m.form.focus == slot {
		return m.styles.ButtonFocus.Render(label)
	}
	return m.styles.Button.Render(label)
}
