package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socpredict/internal/apperrors"
	"socpredict/internal/features"
	"socpredict/internal/prediction"
)

// =============================================================================
// FIELD EDITING
// =============================================================================

func TestEditUpdatesOnlyThatField(t *testing.T) {
	t.Parallel()
	for i, name := range features.Names() {
		t.Run(string(name), func(t *testing.T) {
			m := newTestModel(t, nil, RoutePredict)
			m, _ = press(t, m, tea.KeyCtrlR)
			before := m.form.values

			m.focusForm(i)
			m, _ = press(t, m, tea.KeyCtrlU)
			m = typeText(t, m, "42.5")

			for _, other := range features.Names() {
				got, ok := m.form.values.Get(other)
				require.True(t, ok, "%s unset", other)
				if other == name {
					assert.Equal(t, 42.5, got)
					continue
				}
				want, _ := before.Get(other)
				assert.Equal(t, want, got, "%s changed", other)
			}
		})
	}
}

func TestEditInvalidMarksField(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, RoutePredict)
	m = typeText(t, m, "abc")

	assert.False(t, m.form.values.IsSet(features.TPI))
	assert.True(t, m.form.invalid[features.TPI])
	assert.Contains(t, m.View(), "not a number")

	m, _ = press(t, m, tea.KeyCtrlU)
	m = typeText(t, m, "-3")
	assert.False(t, m.form.invalid[features.TPI])
	v, _ := m.form.values.Get(features.TPI)
	assert.Equal(t, -3.0, v)
}

func TestFocusCycles(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, RoutePredict)
	require.Equal(t, 0, m.form.focus)

	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, focusSubmit, m.form.focus)
	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, 0, m.form.focus)
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, 1, m.form.focus)
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, 2, m.form.focus)
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, 1, m.form.focus)
}

func TestRandomButton(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, RoutePredict)
	m.focusForm(focusRandom)
	m, _ = press(t, m, tea.KeyEnter)

	require.True(t, m.form.values.Complete())
	for i, spec := range features.Catalogue() {
		v, _ := m.form.values.Get(spec.Name)
		assert.GreaterOrEqual(t, v, spec.Min)
		assert.LessOrEqual(t, v, spec.Max)
		assert.Equal(t, m.form.values.Text(spec.Name), m.form.inputs[i].Value())
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmitIncompleteNeverCalls(t *testing.T) {
	t.Parallel()
	svc := &fakeService{}
	m := newTestModel(t, svc, RoutePredict)
	m = typeText(t, m, "1")

	m, cmd := press(t, m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.False(t, m.form.loading)
	assert.Equal(t, noticeIncomplete, m.form.notice)
	assert.Contains(t, m.View(), "Please fill in all fields before submitting.")
	assert.Zero(t, svc.callCount())
}

func TestNoticeIsBlocking(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &fakeService{}, RoutePredict)
	m.focusForm(focusSubmit)
	m, _ = press(t, m, tea.KeyEnter)
	require.Equal(t, noticeIncomplete, m.form.notice)

	m, _ = press(t, m, tea.KeyF3)
	assert.Equal(t, RoutePredict, m.Route())
	m = typeText(t, m, "9")
	m, _ = press(t, m, tea.KeyCtrlR)
	assert.False(t, m.form.values.Complete())
	assert.NotEmpty(t, m.form.notice)

	m, _ = press(t, m, tea.KeyEsc)
	assert.Empty(t, m.form.notice)
}

func TestRandomFillThenSubmitSucceeds(t *testing.T) {
	t.Parallel()
	svc := &fakeService{result: &prediction.Result{
		LinearRegression: pct(12.3),
		RandomForest:     pct(15.0),
		GradientBoosting: pct(13.7),
	}}
	m := newTestModel(t, svc, RoutePredict)
	m, _ = press(t, m, tea.KeyCtrlR)

	m, cmd := press(t, m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, m.form.loading)
	assert.Contains(t, m.View(), "Collecting Data...")

	m = pump(t, m, cmd)
	require.Equal(t, RouteResults, m.Route())
	assert.Equal(t, 1, svc.callCount())
	assert.True(t, svc.sent[0].Complete())

	view := m.View()
	assert.Contains(t, view, "Prediction Results")
	assert.Contains(t, view, "Linear Regression: 12.3%")
	assert.Contains(t, view, "Random Forest: 15%")
	assert.Contains(t, view, "Gradient Boosting: 13.7%")
}

func TestSubmitMissingModelRendersNA(t *testing.T) {
	t.Parallel()
	svc := &fakeService{result: &prediction.Result{
		LinearRegression: pct(12.3),
		RandomForest:     pct(15.0),
	}}
	m := newTestModel(t, svc, RoutePredict)
	m, _ = press(t, m, tea.KeyCtrlR)
	m, cmd := press(t, m, tea.KeyCtrlS)
	m = pump(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "Linear Regression: 12.3%")
	assert.Contains(t, view, "Random Forest: 15%")
	assert.Contains(t, view, "Gradient Boosting: N/A")
}

func TestPhaseLabelsAdvance(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &fakeService{}, RoutePredict)
	m, _ = press(t, m, tea.KeyCtrlR)
	m, cmd := press(t, m, tea.KeyCtrlS)

	for _, label := range []string{"Processing Data...", "Predicting..."} {
		next, c := m.Update(cmd())
		m, cmd = next.(Model), c
		assert.Contains(t, m.View(), label)
	}
}

func TestSubmitFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		svc    *fakeService
		notice string
	}{
		{"transport", &fakeService{err: apperrors.NewTransport("error sending request", nil)}, noticeFailed},
		{"unexpected", &fakeService{err: apperrors.NewUnexpectedResponse("no predictions")}, noticeUnexpected},
		{"nil result", &fakeService{}, noticeUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, tt.svc, RoutePredict)
			m, _ = press(t, m, tea.KeyCtrlR)
			entered := m.form.values

			m, cmd := press(t, m, tea.KeyCtrlS)
			m = pump(t, m, cmd)

			assert.Equal(t, RoutePredict, m.Route())
			assert.False(t, m.form.loading)
			assert.Equal(t, tt.notice, m.form.notice)
			assert.Equal(t, entered, m.form.values)
			assert.NotContains(t, m.View(), "Predicting...")
			assert.Equal(t, 1, tt.svc.callCount())
		})
	}
}

func TestLeavingCancelsRequest(t *testing.T) {
	t.Parallel()
	svc := &fakeService{blockPredict: true}
	m := newTestModel(t, svc, RoutePredict)
	m, _ = press(t, m, tea.KeyCtrlR)

	m, request := submitUntilRequest(t, m)
	require.NotNil(t, request)
	require.NotNil(t, m.form.cancel)

	m, _ = press(t, m, tea.KeyF3)
	msg := request() // returns once the unmount cancelled its context

	pm, ok := msg.(predictionMsg)
	require.True(t, ok)
	assert.Error(t, pm.err)

	m = update(t, m, msg)
	assert.Equal(t, RouteAbout, m.Route())
}

func TestStaleCompletionDropped(t *testing.T) {
	t.Parallel()
	svc := &fakeService{result: &prediction.Result{LinearRegression: pct(1)}}
	m := newTestModel(t, svc, RoutePredict)
	m, _ = press(t, m, tea.KeyCtrlR)

	m, request := submitUntilRequest(t, m)
	msg := request()

	// Leave and come back: the new input view must not react.
	m, _ = press(t, m, tea.KeyF1)
	m, _ = press(t, m, tea.KeyF2)
	m = update(t, m, msg)

	assert.Equal(t, RoutePredict, m.Route())
	assert.False(t, m.form.loading)
	assert.Empty(t, m.form.notice)
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &fakeService{}, RoutePredict)
	m, _ = press(t, m, tea.KeyCtrlR)
	before := m.form.values

	m, _ = press(t, m, tea.KeyCtrlS)
	require.True(t, m.form.loading)
	m, _ = press(t, m, tea.KeyCtrlR)
	m = typeText(t, m, "7")
	assert.Equal(t, before, m.form.values)
}
