package prediction

import (
	"fmt"
	"strconv"
)

// Result holds the three model estimates shown to the user. Each value is
// a percentage and may be absent independently of the others.
type Result struct {
	LinearRegression *float64 `json:"LinearRegression"`
	RandomForest     *float64 `json:"RandomForest"`
	GradientBoosting *float64 `json:"GradientBoosting"`
}

// NotAvailable is rendered for an absent estimate.
const NotAvailable = "N/A"

// Row is one display line of a Result.
type Row struct {
	Label string
	Value *float64
}

// String renders "<label>: <value>%" or "<label>: N/A".
func (r Row) String() string {
	return fmt.Sprintf("%s: %s", r.Label, FormatPercent(r.Value))
}

// Rows returns the estimates in display order.
func (r Result) Rows() []Row {
	return []Row{
		{Label: "Linear Regression", Value: r.LinearRegression},
		{Label: "Random Forest", Value: r.RandomForest},
		{Label: "Gradient Boosting", Value: r.GradientBoosting},
	}
}

// FormatPercent renders v in its shortest decimal form with a percent sign.
// Zero is a real estimate and renders as "0%".
func FormatPercent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}
