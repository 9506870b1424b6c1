package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Notifier prints transient user-facing notices. Async mutations surface
// their outcome through it — success, warning or error — so no failure is
// ever silent.
type Notifier struct {
	w       io.Writer
	noColor bool

	success lipgloss.Style
	warn    lipgloss.Style
	errSt   lipgloss.Style
	info    lipgloss.Style
}

// NewNotifier creates a notifier writing to w (stderr if nil)
func NewNotifier(w io.Writer, noColor bool) *Notifier {
	if w == nil {
		w = os.Stderr
	}
	return &Notifier{
		w:       w,
		noColor: noColor,
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		errSt:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (n *Notifier) render(style lipgloss.Style, prefix, msg string) {
	line := prefix + " " + msg
	if !n.noColor {
		line = style.Render(line)
	}
	fmt.Fprintln(n.w, line)
}

// Success prints a success notice
func (n *Notifier) Success(format string, args ...any) {
	n.render(n.success, "✓", fmt.Sprintf(format, args...))
}

// Warn prints a warning notice
func (n *Notifier) Warn(format string, args ...any) {
	n.render(n.warn, "!", fmt.Sprintf(format, args...))
}

// Error prints an error notice
func (n *Notifier) Error(format string, args ...any) {
	n.render(n.errSt, "✗", fmt.Sprintf(format, args...))
}

// Info prints a neutral notice
func (n *Notifier) Info(format string, args ...any) {
	n.render(n.info, "·", fmt.Sprintf(format, args...))
}
