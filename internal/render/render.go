// Package render formats a risk report as console text, JSON, or the
// Prometheus text exposition format.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
)

// Format selects an output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatProm Format = "prom"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatProm:
		return f, nil
	case "":
		return FormatText, nil
	case "prometheus":
		return FormatProm, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use text|json|prom)", s)
}

// Write renders rep to w in format f.
func Write(w io.Writer, rep *risk.Report, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, rep)
	case FormatProm:
		return Prometheus(w, rep)
	default:
		return Text(w, rep)
	}
}

// Text writes the console layout: header, one line per metric, verdict.
func Text(w io.Writer, rep *risk.Report) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nAnalyzing Folder: %s\n", filepath.Base(rep.Dir))
	fmt.Fprintf(&sb, "Identified Patient ID: %s\n", rep.PatientID)
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, m := range rep.Metrics {
		if m.Evaluated() {
			fmt.Fprintf(&sb, "   %s\n", m.Display)
		} else {
			fmt.Fprintf(&sb, "   Warning: %s\n", m.Warning)
		}
	}
	sb.WriteString("\n" + strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&sb, "Final Result (ID: %s): %s\n", rep.PatientID, rep.Verdict())
	sb.WriteString(strings.Repeat("=", 40) + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// jsonReport adds the derived verdict to the serialized report.
type jsonReport struct {
	*risk.Report
	Passed  bool   `json:"passed"`
	Verdict string `json:"verdict"`
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, rep *risk.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewJSON(rep)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// NewJSON wraps rep with its verdict for serialization.
func NewJSON(rep *risk.Report) any {
	return jsonReport{Report: rep, Passed: rep.Passed(), Verdict: rep.Verdict()}
}
