// Package resolve supplies the patient folder to analyze.
package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoSelection indicates the resolver produced no folder.
var ErrNoSelection = errors.New("no folder selected")

// Resolver yields a directory path.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Static resolves to a fixed path.
type Static string

// Resolve returns the path, or ErrNoSelection when it is empty.
func (s Static) Resolve(context.Context) (string, error) {
	p := strings.TrimSpace(string(s))
	if p == "" {
		return "", ErrNoSelection
	}
	return p, nil
}

// Dialog runs an external folder picker, such as
// "zenity --file-selection --directory", and reads the chosen path from its
// standard output.
type Dialog struct {
	Command []string
}

// NewDialog splits a command line on whitespace.
func NewDialog(command string) *Dialog {
	return &Dialog{Command: strings.Fields(command)}
}

// Resolve runs the picker. A cancelled dialog (non-zero exit or empty output)
// is ErrNoSelection.
func (d *Dialog) Resolve(ctx context.Context) (string, error) {
	if len(d.Command) == 0 {
		return "", errors.New("no picker command configured")
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, d.Command[0], d.Command[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("launch picker: %w", err)
	}
	p := strings.TrimSpace(out.String())
	if p == "" {
		return "", ErrNoSelection
	}
	return p, nil
}

// Dir resolves with r and checks the result is an existing directory.
func Dir(ctx context.Context, r Resolver) (string, error) {
	p, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", p)
	}
	return p, nil
}
