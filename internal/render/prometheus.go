package render

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

func ptr[T any](v T) *T { return &v }

func gauge(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{Name: ptr(name), Help: ptr(help), Type: dto.MetricType_GAUGE.Enum()}
}

func sample(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: ptr(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{Name: ptr(labels[i]), Value: ptr(labels[i+1])})
	}
	return m
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Prometheus writes the report as gauges in the text exposition format,
// suitable for a node-exporter textfile collector.
func Prometheus(w io.Writer, rep *risk.Report) error {
	value := gauge("rehab_metric_value", "Computed value of each evaluated rehabilitation metric.")
	atRisk := gauge("rehab_metric_at_risk", "1 when the metric exceeded its threshold.")
	skipped := gauge("rehab_metric_skipped", "1 when the metric could not be evaluated.")
	pass := gauge("rehab_verdict_pass", "1 when no risk was flagged for the patient.")

	for _, m := range rep.Metrics {
		name := string(m.Metric)
		if !m.Evaluated() {
			skipped.Metric = append(skipped.Metric, sample(1, "patient", rep.PatientID, "metric", name, "reason", string(m.Status)))
			continue
		}
		value.Metric = append(value.Metric, sample(m.Value, "patient", rep.PatientID, "metric", name))
		atRisk.Metric = append(atRisk.Metric, sample(boolf(m.AtRisk), "patient", rep.PatientID, "metric", name))
	}
	pass.Metric = append(pass.Metric, sample(boolf(rep.Passed()), "patient", rep.PatientID))

	for _, mf := range []*dto.MetricFamily{value, atRisk, skipped, pass} {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
