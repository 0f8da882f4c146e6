package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/rehabrisk-cli/internal/dataset"
)

// ErrDegenerate indicates a cleaned table too small for the statistic.
var ErrDegenerate = errors.New("not enough data after cleaning")

// Metric names one of the three evaluations.
type Metric string

const (
	Respiratory Metric = "respiratory"
	Exertion    Metric = "exertion"
	Stability   Metric = "stability"
)

// Status records whether a metric was computed or why it was skipped.
type Status string

const (
	StatusEvaluated  Status = "evaluated"
	StatusMissing    Status = "missing"
	StatusMalformed  Status = "malformed"
	StatusNoYAxis    Status = "missing_y_axis"
	StatusDegenerate Status = "degenerate"
)

// Source describes where a metric reads its data from.
type Source struct {
	Metric  Metric
	Keyword string
	Column  int
	// Title prefixes the warning line, e.g. "Speak".
	Title string
}

// Sources lists the evaluations in report order.
var Sources = []Source{
	{Metric: Respiratory, Keyword: "speak", Column: 2, Title: "Speak"},
	{Metric: Exertion, Keyword: "bike_level1", Column: 2, Title: "Bike"},
	{Metric: Stability, Keyword: "static_level1", Column: 3, Title: "Static"},
}

// yAxisColumn is the second positional column of the static export.
const yAxisColumn = 4

// Result is the outcome of one metric evaluation.
type Result struct {
	Metric Metric `json:"metric"`
	Status Status `json:"status"`
	File   string `json:"file,omitempty"`
	// Value is the computed statistic; meaningful only when Status is evaluated.
	Value float64 `json:"value"`
	// Display is the human-readable computed-value line.
	Display string `json:"display,omitempty"`
	AtRisk  bool   `json:"at_risk"`
	// Label is the risk label appended to the report when AtRisk.
	Label   string `json:"label,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// Evaluated reports whether the metric produced a value.
func (r Result) Evaluated() bool { return r.Status == StatusEvaluated }

// PauseRatio returns the fraction of values whose magnitude is below
// silence. Empty input is degenerate.
func PauseRatio(values []float64, silence float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrDegenerate
	}
	n := 0
	for _, v := range values {
		if math.Abs(v) < silence {
			n++
		}
	}
	return float64(n) / float64(len(values)), nil
}

// WorkloadDelta returns the percentage by which the mean of values exceeds
// baseline. Negative when the load is below baseline.
func WorkloadDelta(values []float64, baseline float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrDegenerate
	}
	if baseline == 0 {
		return 0, errors.New("baseline workload is zero")
	}
	avg := Mean(values)
	return (avg - baseline) / baseline * 100, nil
}

// Mean returns the arithmetic mean; NaN for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev computes the two-pass sample standard deviation (N-1).
// Fewer than two values is degenerate.
func SampleStdDev(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, ErrDegenerate
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), nil
}

// MaxStdDev returns the larger sample standard deviation of the two axes.
// An axis with too few values is ignored; if both are, it is degenerate.
func MaxStdDev(x, y []float64) (float64, error) {
	sx, errX := SampleStdDev(x)
	sy, errY := SampleStdDev(y)
	switch {
	case errX != nil && errY != nil:
		return 0, ErrDegenerate
	case errX != nil:
		return sy, nil
	case errY != nil:
		return sx, nil
	}
	return math.Max(sx, sy), nil
}

func evalRespiratory(ct *dataset.CleanTable, cfg Config, r *Result) error {
	ratio, err := PauseRatio(dataset.Floats(ct.Values), cfg.SilenceThreshold)
	if err != nil {
		return err
	}
	r.Value = ratio
	r.Display = fmt.Sprintf("Speak Pause Ratio: %.1f%%", ratio*100)
	if ratio > cfg.SilenceRatioLimit {
		r.AtRisk = true
		r.Label = fmt.Sprintf("Respiratory Risk (%.1f%%)", ratio*100)
	}
	return nil
}

// Exertion risk is one-sided: only load above baseline is flagged.
func evalExertion(ct *dataset.CleanTable, cfg Config, r *Result) error {
	delta, err := WorkloadDelta(dataset.Floats(ct.Values), cfg.BaselineWorkload)
	if err != nil {
		return err
	}
	r.Value = delta
	r.Display = fmt.Sprintf("Bike Load Variation: %.1f%%", delta)
	if delta > cfg.ExertionTolerancePct {
		r.AtRisk = true
		r.Label = fmt.Sprintf("PEM Risk (%.0f%%)", delta)
	}
	return nil
}

func evalStability(ct *dataset.CleanTable, cfg Config, r *Result) error {
	if ct.Width <= yAxisColumn {
		return errNoYAxis
	}
	maxStd, err := MaxStdDev(dataset.Floats(ct.Values), dataset.Floats(ct.Column(yAxisColumn)))
	if err != nil {
		return err
	}
	r.Value = maxStd
	r.Display = fmt.Sprintf("Static Stability (SD): %.1f", maxStd)
	if maxStd > cfg.StabilityThresholdSD {
		r.AtRisk = true
		r.Label = fmt.Sprintf("Neuro Risk (%.0f)", maxStd)
	}
	return nil
}

var errNoYAxis = fmt.Errorf("%w: missing Y-axis column", dataset.ErrSourceMalformed)
