package risk

import (
	"errors"
	"fmt"
)

// Config holds the clinical thresholds. It is a value type: the agent keeps
// its own copy and never mutates it.
type Config struct {
	// BaselineWorkload is the reference bike load the exertion delta is
	// measured against.
	BaselineWorkload float64 `json:"baseline_workload"`
	// ExertionTolerancePct is the allowed load excess over baseline, in percent.
	ExertionTolerancePct float64 `json:"exertion_tolerance_pct"`
	// StabilityThresholdSD is the largest acceptable positional standard deviation.
	StabilityThresholdSD float64 `json:"stability_threshold_sd"`
	// SilenceThreshold is the speech level below which a sample counts as a pause.
	SilenceThreshold float64 `json:"silence_threshold"`
	// SilenceRatioLimit is the largest acceptable fraction of pause samples.
	SilenceRatioLimit float64 `json:"silence_ratio_limit"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		BaselineWorkload:     1400.0,
		ExertionTolerancePct: 50.0,
		StabilityThresholdSD: 300.0,
		SilenceThreshold:     100.0,
		SilenceRatioLimit:    0.3,
	}
}

// Validate rejects thresholds that would make a metric undefined.
func (c Config) Validate() error {
	if c.BaselineWorkload <= 0 {
		return errors.New("baseline_workload must be greater than 0")
	}
	if c.ExertionTolerancePct < 0 {
		return fmt.Errorf("exertion_tolerance_pct must be >= 0, got %v", c.ExertionTolerancePct)
	}
	if c.StabilityThresholdSD < 0 {
		return fmt.Errorf("stability_threshold_sd must be >= 0, got %v", c.StabilityThresholdSD)
	}
	if c.SilenceThreshold < 0 {
		return fmt.Errorf("silence_threshold must be >= 0, got %v", c.SilenceThreshold)
	}
	if c.SilenceRatioLimit < 0 || c.SilenceRatioLimit > 1 {
		return fmt.Errorf("silence_ratio_limit must be within [0,1], got %v", c.SilenceRatioLimit)
	}
	return nil
}
