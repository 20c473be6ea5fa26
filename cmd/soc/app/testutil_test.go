package app

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"socpredict/internal/features"
	"socpredict/internal/prediction"
)

// =============================================================================
// FAKE SERVICE
// =============================================================================

type fakeService struct {
	mu     sync.Mutex
	calls  int
	sent   []features.InputFeatures
	result *prediction.Result
	err    error

	health       prediction.HealthStatus
	healthErr    error
	blockHealth  bool
	blockPredict bool
}

func (f *fakeService) Predict(ctx context.Context, in features.InputFeatures) (*prediction.Result, error) {
	f.mu.Lock()
	f.calls++
	f.sent = append(f.sent, in)
	block := f.blockPredict
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func (f *fakeService) Health(ctx context.Context) (prediction.HealthStatus, error) {
	if f.blockHealth {
		<-ctx.Done()
		return prediction.HealthStatus{}, ctx.Err()
	}
	return f.health, f.healthErr
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// =============================================================================
// HELPERS
// =============================================================================

func pct(v float64) *float64 { return &v }

// newTestModel returns a model past the splash, mounted at route.
func newTestModel(t *testing.T, svc Service, route Route) Model {
	t.Helper()
	m := New(Options{Service: svc, Timings: FastTimings(), Theme: "light"})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, splashDoneMsg{health: healthOnline})
	if route != RouteLanding {
		m, _ = m.Navigate(route, nil)
	}
	return m
}

// plainView renders m with escape sequences removed. Rendered markdown
// styles every word separately.
func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// pump runs cmd and feeds back the phase, landing and prediction messages
// it yields until the chain ends.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 16; i++ {
		msg := cmd()
		switch msg.(type) {
		case phaseMsg, predictionMsg, landingDelayMsg:
		default:
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

// submitUntilRequest presses ctrl+s and runs the phase ticks, returning the
// request command without executing it.
func submitUntilRequest(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	m, cmd := press(t, m, tea.KeyCtrlS)
	for i := 0; i < len(m.timings.Phases); i++ {
		if cmd == nil {
			t.Fatalf("phase chain ended early at %d", i)
		}
		var next tea.Model
		next, cmd = m.Update(cmd())
		m = next.(Model)
	}
	return m, cmd
}
