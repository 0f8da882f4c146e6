package patient

import (
	"path/filepath"
	"regexp"
)

var digits = regexp.MustCompile(`[0-9]+`)

// IDFromFolder returns the first run of digits in the folder's base name,
// or the whole base name when it contains none.
//
//	"data84468686868685data" -> "84468686868685"
//	"patient_999_test"       -> "999"
func IDFromFolder(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	if m := digits.FindString(name); m != "" {
		return m
	}
	return name
}
