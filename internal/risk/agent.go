package risk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/KaramelBytes/rehabrisk-cli/internal/dataset"
	"github.com/google/uuid"
)

// Agent evaluates one patient folder against a fixed Config.
type Agent struct {
	patientID string
	dir       string
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

// NewAgent validates cfg and binds it to the patient and folder.
// A nil logger discards diagnostics.
func NewAgent(patientID, dir string, cfg Config, log *slog.Logger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Agent{patientID: patientID, dir: dir, cfg: cfg, log: log, now: time.Now}, nil
}

// Config returns the agent's thresholds.
func (a *Agent) Config() Config { return a.cfg }

// Analyze runs the three evaluations in order. A source that cannot be
// located, loaded or computed is skipped with a warning; Analyze itself
// never fails.
func (a *Agent) Analyze() *Report {
	rep := &Report{
		RunID:      uuid.NewString(),
		PatientID:  a.patientID,
		Dir:        a.dir,
		StartedAt:  a.now(),
		Thresholds: a.cfg,
		Risks:      []string{},
	}
	for _, src := range Sources {
		rep.add(a.evaluate(src))
	}
	a.log.Info("analysis complete", "run_id", rep.RunID, "patient", a.patientID, "verdict", rep.Verdict())
	return rep
}

func (a *Agent) evaluate(src Source) Result {
	res := Result{Metric: src.Metric}
	path, err := dataset.Locate(a.dir, a.patientID, src.Keyword)
	if err != nil {
		return a.skip(src, res, err)
	}
	res.File = path
	a.log.Debug("selected source", "metric", src.Metric, "file", path)

	ct, err := dataset.LoadAndClean(path, src.Column)
	if err != nil {
		return a.skip(src, res, err)
	}
	a.log.Debug("cleaned source", "metric", src.Metric, "rows", ct.Len())

	switch src.Metric {
	case Respiratory:
		err = evalRespiratory(ct, a.cfg, &res)
	case Exertion:
		err = evalExertion(ct, a.cfg, &res)
	case Stability:
		err = evalStability(ct, a.cfg, &res)
	default:
		err = fmt.Errorf("unknown metric %q", src.Metric)
	}
	if err != nil {
		return a.skip(src, res, err)
	}
	res.Status = StatusEvaluated
	return res
}

// skip maps err onto a skip status and warning. Degenerate data is reported
// the same way as a missing source.
func (a *Agent) skip(src Source, res Result, err error) Result {
	switch {
	case errors.Is(err, errNoYAxis):
		res.Status = StatusNoYAxis
		res.Warning = src.Title + " data missing Y-axis column"
	case errors.Is(err, ErrDegenerate):
		res.Status = StatusDegenerate
		res.Warning = src.Title + " file not found or invalid format"
	case errors.Is(err, dataset.ErrSourceMissing):
		res.Status = StatusMissing
		res.Warning = src.Title + " file not found or invalid format"
	default:
		res.Status = StatusMalformed
		res.Warning = src.Title + " file not found or invalid format"
	}
	a.log.Debug("metric skipped", "metric", src.Metric, "status", res.Status, "err", err)
	res.Value = 0
	res.Display = ""
	res.AtRisk = false
	res.Label = ""
	return res
}
