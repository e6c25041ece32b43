// Package clipboard copies text to the system clipboard through the
// platform's clipboard command.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command is installed.
var ErrUnavailable = errors.New("no clipboard command available")

// candidates lists clipboard commands per platform in preference order.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"windows": {{"cmd", "/c", "clip"}},
	"linux": {
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func command(goos string) ([]string, error) {
	list, ok := candidates[goos]
	if !ok {
		list = candidates["linux"]
	}
	for _, argv := range list {
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, fmt.Errorf("%w on %s", ErrUnavailable, goos)
}

// Write copies text to the clipboard.
func Write(text string) error {
	argv, err := command(runtime.GOOS)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}

// Available reports whether Write can work on this system.
func Available() bool {
	_, err := command(runtime.GOOS)
	return err == nil
}
