// Package clipboard copies text to the system clipboard through the
// platform's copy command.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no copy command is installed.
var ErrUnavailable = errors.New("no clipboard command found")

type command struct {
	name string
	args []string
}

// candidates lists copy commands per platform, preferred first.
var candidates = map[string][]command{
	"darwin": {{"pbcopy", nil}},
	"linux": {
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--input"}},
	},
	"windows": {{"clip", nil}},
}

// lookPath and run are package-level vars to allow test injection.
var (
	lookPath = exec.LookPath
	run      = func(name string, args []string, stdin string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdin = strings.NewReader(stdin)
		return cmd.Run()
	}
)

func find() (command, bool) {
	list, ok := candidates[runtime.GOOS]
	if !ok {
		list = candidates["linux"]
	}
	for _, c := range list {
		if _, err := lookPath(c.name); err == nil {
			return c, true
		}
	}
	return command{}, false
}

// Write copies text to the system clipboard.
func Write(text string) error {
	c, ok := find()
	if !ok {
		return ErrUnavailable
	}
	if err := run(c.name, c.args, text); err != nil {
		return fmt.Errorf("clipboard: %s: %w", c.name, err)
	}
	return nil
}

// Available reports whether a copy command is installed.
func Available() bool {
	_, ok := find()
	return ok
}
