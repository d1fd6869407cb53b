package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	cyan  = color.New(color.FgCyan)
	faint = color.New(color.Faint)
)

// out is where command output goes; tests swap it for a buffer.
var out io.Writer = os.Stdout

func success(format string, a ...any) {
	green.Fprintf(out, "✓ "+format+"\n", a...) //nolint:errcheck
}

func step(format string, a ...any) {
	cyan.Fprintf(out, "→ "+format+"\n", a...) //nolint:errcheck
}

// failure prints a titled error with optional hints to stderr and returns a
// short error for cobra, which stays silent.
func failure(title string, err error, hints ...string) error {
	red.Fprintf(os.Stderr, "%s\n", title) //nolint:errcheck
	fmt.Fprintf(os.Stderr, "  %v\n", err)
	for _, h := range hints {
		fmt.Fprintf(os.Stderr, "\n%s\n", h)
	}
	return fmt.Errorf("%s: %w", title, err)
}
