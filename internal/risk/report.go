package risk

import (
	"strings"
	"time"
)

// Verdict prefixes.
const (
	VerdictPass = "PASS (Healthy Data)"
	failPrefix  = "FAIL ("
)

// Report collects the risk labels of one run, in evaluation order.
type Report struct {
	RunID      string    `json:"run_id"`
	PatientID  string    `json:"patient_id"`
	Dir        string    `json:"dir"`
	StartedAt  time.Time `json:"started_at"`
	Thresholds Config    `json:"thresholds"`
	Metrics    []Result  `json:"metrics"`
	Risks      []string  `json:"risks"`
}

// add appends a metric result and, when flagged, its risk label.
func (r *Report) add(res Result) {
	r.Metrics = append(r.Metrics, res)
	if res.AtRisk {
		r.Risks = append(r.Risks, res.Label)
	}
}

// Passed reports whether no risk was flagged.
func (r *Report) Passed() bool { return len(r.Risks) == 0 }

// Verdict renders PASS or FAIL with the labels joined by "; ".
func (r *Report) Verdict() string {
	if r.Passed() {
		return VerdictPass
	}
	return failPrefix + strings.Join(r.Risks, "; ") + ")"
}

// Metric returns the result for m, if present.
func (r *Report) Metric(m Metric) (Result, bool) {
	for _, res := range r.Metrics {
		if res.Metric == m {
			return res, true
		}
	}
	return Result{}, false
}
