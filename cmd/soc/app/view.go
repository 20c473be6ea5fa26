package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"socpredict/cmd/soc/ui"
)

const copyright = "© 2025 SOC Prediction | All Rights Reserved"

// View renders the splash, or the chrome around the mounted view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.booting {
		return m.viewSplash()
	}

	var content string
	switch m.route {
	case RoutePredict:
		content = m.viewForm()
	case RouteResults:
		content = m.viewResults()
	case RouteAbout:
		content = m.viewAbout()
	default:
		content = m.viewLanding()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.styles.Content.Render(content),
		m.viewFooter(),
	)
}

func (m Model) viewSplash() string {
	return m.styles.Content.Render(
		ui.Logo(m.styles) + "\n" + m.spinner.View() + " " + m.styles.Muted.Render("Loading..."),
	)
}

type navItem struct {
	key   string
	label string
	route Route
}

var navItems = []navItem{
	{"F1", "Home", RouteLanding},
	{"F2", "Predict", RoutePredict},
	{"F3", "About", RouteAbout},
	{"F4", "Results", RouteResults},
}

func (m Model) viewHeader() string {
	parts := []string{m.styles.Header.Render("🌱 SOC Prediction")}
	for _, item := range navItems {
		style := m.styles.NavItem
		if item.route == m.route {
			style = m.styles.NavOn
		}
		parts = append(parts, style.Render(item.key+" "+item.label))
	}
	return strings.Join(parts, " ")
}

func (m Model) viewFooter() string {
	var health string
	switch m.health {
	case healthOnline:
		health = m.styles.Success.Render("● service online")
	case healthOffline:
		health = m.styles.Error.Render("○ service offline")
	default:
		health = m.styles.Muted.Render("◌ service status unknown")
	}
	line := health + "  " + m.styles.Muted.Render(copyright)
	if m.status != "" {
		line += "  " + m.styles.Info.Render(m.status)
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.route == RoutePredict {
		helpView = m.help.ShortHelpView(append(m.keys.formHelp(), m.keys.ShortHelp()...))
	}

	return m.styles.Footer.Render(m.styles.RenderDivider(m.layout.ContentWidth()) + "\n" + line + "\n" + helpView)
}
