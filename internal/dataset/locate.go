package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Locate finds the most recently modified CSV in dir whose name contains
// patientID followed by keyword. When no such file exists it retries with
// keyword alone. Returns ErrSourceMissing when neither pattern matches.
func Locate(dir, patientID, keyword string) (string, error) {
	patterns := []string{
		"*" + escapeGlob(patientID) + "*" + escapeGlob(keyword) + "*.csv",
		"*" + escapeGlob(keyword) + "*.csv",
	}
	for _, pat := range patterns {
		files, err := candidates(dir, pat)
		if err != nil {
			return "", err
		}
		if len(files) == 0 {
			continue
		}
		return latest(files), nil
	}
	return "", fmt.Errorf("%w: %q in %s", ErrSourceMissing, keyword, dir)
}

type candidate struct {
	path    string
	modTime int64
}

func candidates(dir, pattern string) ([]candidate, error) {
	matches, err := filepath.Glob(filepath.Join(escapeGlob(dir), pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	out := make([]candidate, 0, len(matches))
	for _, m := range matches {
		// Hidden files (e.g. "._" sidecars) are never exports.
		if strings.HasPrefix(filepath.Base(m), ".") {
			continue
		}
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, candidate{path: m, modTime: info.ModTime().UnixNano()})
	}
	return out, nil
}

// latest returns the newest candidate; on equal times the first seen wins.
func latest(files []candidate) string {
	best := files[0]
	for _, c := range files[1:] {
		if c.modTime > best.modTime {
			best = c
		}
	}
	return best.path
}

// escapeGlob quotes the filepath.Match metacharacters so s matches literally.
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			if filepath.Separator == '\\' {
				// No escaping on Windows; bracket the rune instead.
				if r == '\\' {
					b.WriteRune(r)
					continue
				}
				b.WriteRune('[')
				b.WriteRune(r)
				b.WriteRune(']')
				continue
			}
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
