// Package app implements the soc terminal client: a splash screen, a
// persistent chrome and four routed views (landing, input, results, about).
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"socpredict/cmd/soc/ui"
)

// New builds the root model. The splash runs until Init's command reports.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timings := opts.Timings
	if len(timings.Phases) == 0 {
		timings.Phases = DefaultTimings().Phases
	}

	styles := ui.NewStyles(ui.ThemeByName(opts.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		svc:        opts.Service,
		timings:    timings,
		theme:      opts.Theme,
		rng:        opts.Rand,
		log:        log,
		styles:     styles,
		layout:     ui.NewLayoutConfig(0, 0),
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		booting:    true,
		startRoute: opts.StartRoute,
	}
	if m.startRoute == "" {
		m.startRoute = RouteLanding
	}
	return m.refreshDocs()
}

// Init starts the spinner and the splash.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, splashCmd(m.svc, m.timings.Splash))
}

// healthProbeTimeout bounds a probe started outside the splash.
const healthProbeTimeout = 2 * time.Second

// splashCmd waits out the splash while probing the service. The probe
// shares the splash deadline, so it never extends it.
func splashCmd(svc Service, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		if d <= 0 {
			return splashDoneMsg{health: healthUnknown}
		}

		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()

		health := healthUnknown
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			return nil
		})
		if svc != nil {
			g.Go(func() error {
				health = probeHealth(gctx, svc)
				return nil
			})
		}
		_ = g.Wait()

		return splashDoneMsg{health: health}
	}
}

// healthCmd probes svc once, for the footer indicator.
func healthCmd(svc Service, gen int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return healthMsg{gen: gen, health: probeHealth(ctx, svc)}
	}
}

func probeHealth(ctx context.Context, svc Service) healthState {
	status, err := svc.Health(ctx)
	if err == nil && status.Online() {
		return healthOnline
	}
	return healthOffline
}

// Route returns the mounted route.
func (m Model) Route() Route { return m.route }

// Booting reports whether the splash is still showing.
func (m Model) Booting() bool { return m.booting }

func (m Model) applyTheme(name string) Model {
	m.theme = name
	m.styles = ui.NewStyles(ui.ThemeByName(name))
	m.spinner.Style = m.styles.Spinner
	for i := range m.form.inputs {
		m.form.inputs[i].PromptStyle = m.styles.Prompt
		m.form.inputs[i].TextStyle = m.styles.UserInput
	}
	return m.refreshDocs()
}
