package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Thresholds(); got != risk.DefaultConfig() {
		t.Fatalf("thresholds = %+v", got)
	}
	if c.OutputFormat != "text" || c.ServeAddr != ":8080" || c.WatchDebounceMs != 500 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestSaveAndLoad_RoundTripWithEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.StabilityThresholdSD = 250
	c.PickerCommand = "zenity --file-selection --directory"
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("REHABRISK_SILENCE_RATIO_LIMIT", "0.4")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load saved: %v", err)
	}
	if got.StabilityThresholdSD != 250 || got.PickerCommand != c.PickerCommand {
		t.Fatalf("file values not loaded: %+v", got)
	}
	if got.SilenceRatioLimit != 0.4 {
		t.Fatalf("env override not applied: %v", got.SilenceRatioLimit)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("baseline_workload: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
