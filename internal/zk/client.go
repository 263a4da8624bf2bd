// Package zk translates user-facing intents into zk LSP command payloads
// and reshapes the server's JSON responses into a stable candidate model.
// The server owns all persistent state; this package only constructs
// command arguments and decodes command results.
package zk

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Command names exposed by the zk language server through
// workspace/executeCommand.
const (
	CmdIndex   = "zk.index"
	CmdList    = "zk.list"
	CmdTagList = "zk.tag.list"
	CmdNew     = "zk.new"
	CmdLink    = "zk.link"
)

// Invoker executes a named remote command against the session bound to a
// document. Implementations fail with apperr.ErrNotBound when docPath is
// empty and apperr.ErrNoSession when no session exists for its notebook;
// remote errors are surfaced unmodified.
type Invoker interface {
	Invoke(ctx context.Context, docPath, command string, args any) (json.RawMessage, error)
}

// Client wraps an Invoker with typed operations for each zk command.
// It is stateless; every call constructs its options fresh.
type Client struct {
	inv Invoker
	log *slog.Logger
}

// NewClient creates a client issuing commands through inv.
func NewClient(inv Invoker, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{inv: inv, log: logger}
}

// Index asks the server to refresh its notebook index.
func (c *Client) Index(ctx context.Context, docPath string) error {
	_, err := c.inv.Invoke(ctx, docPath, CmdIndex, nil)
	return err
}

// List runs zk.list with the given options and normalizes the result.
func (c *Client) List(ctx context.Context, docPath string, opts ListOptions) ([]NoteRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.inv.Invoke(ctx, docPath, CmdList, opts)
	if err != nil {
		return nil, err
	}
	return DecodeNotes(raw)
}
