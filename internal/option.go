package internal

import (
	"io"
	"log/slog"

	"github.com/starford/zkbridge/internal/zk"
)

// Option is a functional option for configuring the application.
type Option func(*App)

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.log = logger
	}
}

// WithOutput redirects user-facing output (tests capture it here).
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithInvoker replaces the LSP-backed command invoker (tests stub it).
func WithInvoker(inv zk.Invoker) Option {
	return func(a *App) {
		a.invoker = inv
	}
}

// WithNotePicker replaces the interactive note picker.
func WithNotePicker(pick func(title string, candidates []zk.Candidate) (zk.Candidate, bool, error)) Option {
	return func(a *App) {
		a.pickNote = pick
	}
}

// WithTagPrompter replaces the interactive tag multi-select.
func WithTagPrompter(prompt func(vocab []string) ([]string, error)) Option {
	return func(a *App) {
		a.promptTags = prompt
	}
}

// WithTitlePrompter replaces the interactive title prompt.
func WithTitlePrompter(prompt func(prompt string) (string, bool, error)) Option {
	return func(a *App) {
		a.promptTitle = prompt
	}
}

// WithOpener replaces the action run on a created note's path.
func WithOpener(open zk.Opener) Option {
	return func(a *App) {
		a.open = open
	}
}
