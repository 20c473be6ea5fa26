package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"socpredict/internal/features"
	"socpredict/internal/team"
)

func landingMarkdown() string {
	var b strings.Builder
	b.WriteString("# Welcome to SOC Prediction\n\n")
	b.WriteString("Predict Soil Organic Carbon with AI-powered models.\n\n")
	b.WriteString("Enter eight terrain and vegetation indices and compare the estimates of ")
	b.WriteString("three regression models:\n\n")
	for _, s := range features.Catalogue() {
		fmt.Fprintf(&b, "- %s **%s** (`%s`)\n", s.Glyph, s.Label, s.Name)
	}
	return b.String()
}

func aboutMarkdown() string {
	var b strings.Builder
	b.WriteString("# About Us\n\n")
	for _, m := range team.Roster() {
		fmt.Fprintf(&b, "## %s\n\n*%s*\n\n", m.Name, m.Role)
		for _, l := range m.Links() {
			fmt.Fprintf(&b, "- %s: %s\n", l.Label, l.URL)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMarkdown renders md for the terminal. On failure the raw markdown
// is returned.
func renderMarkdown(md string, dark bool, width int) string {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// refreshDocs re-renders the static pages for the current theme and width.
func (m Model) refreshDocs() Model {
	dark := m.styles.Theme.IsDark
	width := m.layout.MarkdownWrap()
	m.landingDoc = renderMarkdown(landingMarkdown(), dark, width)
	m.aboutDoc = renderMarkdown(aboutMarkdown(), dark, width)
	return m
}
