package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Warner receives recoverable data warnings.
type Warner interface {
	Warnf(format string, args ...any)
}

// Console prints user-facing messages, colorized when the writer is a terminal.
// Writes are serialized so parallel loaders can share one console.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
}

// NewConsole creates a console writer. Color is disabled when noColor is set or
// w is not a terminal.
func NewConsole(w io.Writer, noColor bool) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{w: w, noColor: noColor || !isTerminal(w)}
}

// Warnf prints a WARNING line.
func (c *Console) Warnf(format string, args ...any) {
	c.println(warnStyle, "WARNING: "+fmt.Sprintf(format, args...))
}

// Successf prints a completion line.
func (c *Console) Successf(format string, args ...any) {
	c.println(successStyle, fmt.Sprintf(format, args...))
}

func (c *Console) println(style lipgloss.Style, text string) {
	if c == nil {
		return
	}
	if !c.noColor {
		text = style.Render(text)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, text)
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
