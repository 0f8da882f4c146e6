package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("1,2,3\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(p, mod, mod); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return p
}

func TestLocate_PrefersPatientSpecific(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	want := touch(t, dir, "p_123_speak.csv", now.Add(-time.Hour))
	touch(t, dir, "speak_export.csv", now)

	got, err := Locate(dir, "123", "speak")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestLocate_FallsBackToNewestKeywordMatch(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "a_bike_level1.csv", now.Add(-2*time.Hour))
	want := touch(t, dir, "b_bike_level1.csv", now)
	touch(t, dir, "c_bike_level1.csv", now.Add(-time.Hour))

	got, err := Locate(dir, "999", "bike_level1")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestLocate_NewestAmongPatientMatches(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "42_static_level1_a.csv", now.Add(-time.Hour))
	want := touch(t, dir, "42_static_level1_b.csv", now)

	got, err := Locate(dir, "42", "static_level1")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestLocate_Missing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "123_speak.txt", time.Now())
	touch(t, dir, "123_Speak.csv", time.Now())

	_, err := Locate(dir, "123", "speak")
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
}

func TestLocate_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "7_speak.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := touch(t, dir, "other_speak.csv", time.Now().Add(-time.Hour))

	got, err := Locate(dir, "7", "speak")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestLocate_IgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	want := touch(t, dir, "pt_123_speak.csv", now.Add(-time.Second))
	touch(t, dir, "._pt_123_speak.csv", now)
	touch(t, dir, ".speak.csv", now)

	got, err := Locate(dir, "123", "speak")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	hidden := t.TempDir()
	touch(t, hidden, "._pt_123_speak.csv", now)
	if _, err := Locate(hidden, "123", "speak"); !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing with only hidden files, got %v", err)
	}
}

func TestLocate_LiteralMetacharacters(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "x_speak.csv", time.Now())
	want := touch(t, dir, "pt[1]_speak.csv", time.Now().Add(-time.Hour))

	got, err := Locate(dir, "pt[1]", "speak")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
