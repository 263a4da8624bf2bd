package lsp

import (
	"context"
	"encoding/json"

	"github.com/starford/zkbridge/internal/apperr"
	"github.com/starford/zkbridge/internal/notebook"
)

// CommandInvoker satisfies zk.Invoker by routing each command through the
// session bound to the document's notebook. It holds no per-call state.
type CommandInvoker struct {
	manager *Manager
}

// NewCommandInvoker wraps a session manager.
func NewCommandInvoker(m *Manager) *CommandInvoker {
	return &CommandInvoker{manager: m}
}

// Invoke submits command with the argument vector [docPath] or
// [docPath, args]. It fails with apperr.ErrNotBound before any remote
// traffic when the document has no backing file, and with
// apperr.ErrNoSession when its notebook has no active session.
func (ci *CommandInvoker) Invoke(ctx context.Context, docPath, command string, args any) (json.RawMessage, error) {
	if docPath == "" {
		return nil, apperr.ErrNotBound
	}
	root, err := notebook.Root(docPath)
	if err != nil {
		return nil, err
	}
	sess, err := ci.manager.Get(root)
	if err != nil {
		return nil, err
	}
	if err := sess.BindDocument(ctx, docPath); err != nil {
		return nil, err
	}

	argv := []any{docPath}
	if args != nil {
		argv = append(argv, args)
	}
	return sess.ExecuteCommand(ctx, command, argv)
}
