package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateResults(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		return m, nil
	}
	return m.Navigate(RoutePredict, nil)
}

func (m Model) viewResults() string {
	var b strings.Builder
	if m.results.result == nil {
		b.WriteString(m.styles.Error.Render(noDataMessage))
	} else {
		b.WriteString(m.styles.Title.Render("Prediction Results"))
		b.WriteString("\n")
		for _, row := range m.results.result.Rows() {
			b.WriteString(m.styles.Body.Render(row.String()))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.ButtonFocus.Render("🔄 Try Again"))
	return b.String()
}
