package dataset

import "errors"

var (
	// ErrSourceMissing indicates no file matched either locator pattern.
	ErrSourceMissing = errors.New("source file not found")
	// ErrSourceMalformed indicates a file that exists but cannot be used:
	// unparseable, empty, or lacking a required column.
	ErrSourceMalformed = errors.New("source file malformed")
)
