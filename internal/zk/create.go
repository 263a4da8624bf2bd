package zk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/zkbridge/internal/apperr"
)

// CreateNote invokes zk.new and returns the path of the created note.
//
// A remote failure or a result without a usable path is reported as a
// diagnostic and converted into apperr.ErrNoResult rather than propagated:
// creation failure aborts the calling action with a message, it never
// crashes it. Binding and validation errors propagate unmodified.
func (c *Client) CreateNote(ctx context.Context, docPath string, args CreationArgs) (string, error) {
	raw, err := c.inv.Invoke(ctx, docPath, CmdNew, args)
	if err != nil {
		if errors.Is(err, apperr.ErrNotBound) || errors.Is(err, apperr.ErrNoSession) || errors.Is(err, apperr.ErrNotebookNotFound) {
			return "", err
		}
		c.log.Warn("zk: note creation failed", slog.String("error", err.Error()))
		return "", apperr.ErrNoResult
	}

	var res struct {
		Path string `json:"path"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &res); err != nil {
			c.log.Warn("zk: undecodable creation result", slog.String("error", err.Error()))
			return "", apperr.ErrNoResult
		}
	}
	if res.Path == "" {
		c.log.Warn("zk: note creation returned no path")
		return "", apperr.ErrNoResult
	}
	return res.Path, nil
}

// Opener opens a note path in the user's editor.
type Opener func(path string) error

// Shortcut is a named creation operation bound to a fixed partial argument
// set. A shortcut whose preset omits the title takes exactly one title
// parameter at invocation; otherwise it takes none.
type Shortcut struct {
	Name   string
	preset CreationArgs
	client *Client
	open   Opener
}

// NewShortcut builds a shortcut delegating to client.CreateNote with the
// preset arguments. On success the created path is handed to open.
func NewShortcut(name string, preset CreationArgs, client *Client, open Opener) *Shortcut {
	return &Shortcut{Name: name, preset: preset, client: client, open: open}
}

// NeedsTitle reports whether invocation must supply a title.
func (s *Shortcut) NeedsTitle() bool {
	return s.preset.Title == ""
}

// Run merges the supplied title into the preset when one is needed,
// creates the note, and opens the result. Failure aborts with a
// user-facing error rather than silently continuing.
func (s *Shortcut) Run(ctx context.Context, docPath, title string) error {
	args := s.preset
	if s.NeedsTitle() {
		if title == "" {
			return fmt.Errorf("zk: shortcut %q requires a title: %w", s.Name, apperr.ErrMalformedArgs)
		}
		args = args.WithTitle(title)
	}
	path, err := s.client.CreateNote(ctx, docPath, args)
	if err != nil {
		return fmt.Errorf("zk: shortcut %q: %w", s.Name, err)
	}
	if s.open != nil {
		if err := s.open(path); err != nil {
			return fmt.Errorf("zk: shortcut %q: open %s: %w", s.Name, path, err)
		}
	}
	return nil
}
