package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"socpredict/cmd/soc/ui"
	"socpredict/internal/features"
	"socpredict/internal/prediction"
)

// =============================================================================
// ROUTES
// =============================================================================

// Route names a view.
type Route string

const (
	RouteLanding Route = "/"
	RoutePredict Route = "/predict"
	RouteAbout   Route = "/about"
	RouteResults Route = "/results"
)

// ParseRoute maps a path to a Route. Unknown paths land on the landing view.
func ParseRoute(path string) Route {
	switch Route(path) {
	case RoutePredict, RouteAbout, RouteResults:
		return Route(path)
	default:
		return RouteLanding
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Service is the prediction backend the input view talks to.
type Service interface {
	Predict(ctx context.Context, f features.InputFeatures) (*prediction.Result, error)
	Health(ctx context.Context) (prediction.HealthStatus, error)
}

// Timings holds the cosmetic delays.
type Timings struct {
	Splash       time.Duration
	LandingDelay time.Duration
	Phases       []time.Duration // collecting, processing, predicting
}

// DefaultTimings returns the stock delays.
func DefaultTimings() Timings {
	return Timings{
		Splash:       2 * time.Second,
		LandingDelay: 2 * time.Second,
		Phases:       []time.Duration{1500 * time.Millisecond, 1500 * time.Millisecond, 2 * time.Second},
	}
}

// FastTimings collapses every delay to zero.
func FastTimings() Timings {
	return Timings{Phases: []time.Duration{0, 0, 0}}
}

// Options configures a Model.
type Options struct {
	Service    Service
	Timings    Timings
	Theme      string // light, dark or auto
	StartRoute Route
	Logger     *zap.Logger
	Rand       features.Float64Source // nil uses the global generator
}

// =============================================================================
// MESSAGES
// =============================================================================

type healthState int

const (
	healthUnknown healthState = iota
	healthOnline
	healthOffline
)

// splashDoneMsg ends the splash with the health probe outcome.
type splashDoneMsg struct {
	health healthState
}

// healthMsg reports a health probe started after a service swap. Probes
// from an older service generation are ignored.
type healthMsg struct {
	gen    int
	health healthState
}

// landingDelayMsg fires after "Get Started".
type landingDelayMsg struct {
	visit string
}

// phaseMsg advances the loading label; phase == len(phases) starts the request.
type phaseMsg struct {
	visit string
	phase int
}

// predictionMsg carries the service answer back to the input view.
type predictionMsg struct {
	visit  string
	result *prediction.Result
	err    error
}

// ConfigReloadedMsg is sent by the config watcher. A nil Service keeps the
// current one.
type ConfigReloadedMsg struct {
	Theme   string
	Service Service
	Err     error
}

// =============================================================================
// VIEW STATE
// =============================================================================

// Loading labels for the three cosmetic phases.
var phaseLabels = []string{
	"📡 Collecting Data...",
	"🖥️ Processing Data...",
	"📊 Predicting...",
}

// Notices shown by the input view.
const (
	noticeIncomplete = "⚠️ Please fill in all fields before submitting."
	noticeUnexpected = "Error: Unexpected response from the server."
	noticeFailed     = "Failed to get a prediction. Please check the server and try again."
)

const noDataMessage = "⚠️ Error: No data received"

// Focus slots after the eight fields.
const (
	focusRandom = iota + 8
	focusSubmit
	focusSlots
)

type landingState struct {
	starting bool
}

type formState struct {
	values  features.InputFeatures
	inputs  []textinput.Model
	invalid map[features.Name]bool
	focus   int

	loading bool
	phase   int
	notice  string

	cancel context.CancelFunc
}

type resultsState struct {
	result *prediction.Result
}

// Model is the root bubbletea model: splash, chrome and router.
type Model struct {
	svc     Service
	timings Timings
	theme   string
	rng     features.Float64Source
	log     *zap.Logger

	styles  ui.Styles
	layout  ui.LayoutConfig
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	landingDoc string
	aboutDoc   string

	booting    bool
	health     healthState
	healthGen  int // bumped on every service swap
	startRoute Route
	status     string // transient footer message
	quitting   bool

	route   Route
	visit   string
	pending *prediction.Result // navigation state, consumed by mount

	landing landingState
	form    formState
	results resultsState
}
