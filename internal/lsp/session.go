// Package lsp maintains client sessions against the zk language server
// and submits workspace/executeCommand requests through them.
package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Config describes how to start the language server process.
type Config struct {
	// Command is the server binary, e.g. "zk".
	Command string
	// Args are passed to the binary, e.g. ["lsp"].
	Args []string
}

// Session is one client connection to a zk language server, scoped to a
// notebook root. Calls present a synchronous request/response contract;
// this layer never overlaps invocations of the same command.
type Session struct {
	root   string
	conn   *jsonrpc2.Conn
	cmd    *exec.Cmd
	log    *slog.Logger
	opened map[string]bool // documents announced via didOpen
}

// Dial spawns the server process and performs the LSP handshake for the
// notebook rooted at root.
func Dial(ctx context.Context, cfg Config, root string, logger *slog.Logger) (*Session, error) {
	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Dir = root
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("lsp: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("lsp: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("lsp: start %s: %w", cfg.Command, err)
	}

	sess, err := NewSession(ctx, stdioPipe{r: stdout, w: stdin}, root, logger)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}
	sess.cmd = cmd
	return sess, nil
}

// NewSession performs the initialize/initialized handshake over an
// existing byte stream. Dial uses it after spawning the server; tests use
// it with an in-process fake.
func NewSession(ctx context.Context, rwc io.ReadWriteCloser, root string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sess := &Session{
		root:   root,
		log:    logger,
		opened: make(map[string]bool),
	}

	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	sess.conn = jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(sess.handleServerRequest))

	params := protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		ClientInfo: &protocol.ClientInfo{
			Name:    "zkbridge",
			Version: "0.1.0",
		},
		RootURI: uri.File(root),
		Capabilities: protocol.ClientCapabilities{
			Workspace: &protocol.WorkspaceClientCapabilities{
				ExecuteCommand: &protocol.ExecuteCommandClientCapabilities{},
			},
		},
	}
	var result protocol.InitializeResult
	if err := sess.conn.Call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		_ = sess.conn.Close()
		return nil, fmt.Errorf("lsp: initialize: %w", err)
	}
	if err := sess.conn.Notify(ctx, protocol.MethodInitialized, protocol.InitializedParams{}); err != nil {
		_ = sess.conn.Close()
		return nil, fmt.Errorf("lsp: initialized: %w", err)
	}

	logger.Debug("lsp: session established", slog.String("root", root))
	return sess, nil
}

// Root returns the notebook root this session is bound to.
func (s *Session) Root() string { return s.root }

// BindDocument announces the document to the server so commands can run
// against it. Repeated calls for the same document are no-ops.
func (s *Session) BindDocument(ctx context.Context, docPath string) error {
	if s.opened[docPath] {
		return nil
	}
	if info, err := os.Stat(docPath); err == nil && info.IsDir() {
		// Directory-bound commands (index, watch) have nothing to open.
		s.opened[docPath] = true
		return nil
	}
	text, err := os.ReadFile(docPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("lsp: read %s: %w", docPath, err)
	}
	params := protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri.File(docPath),
			LanguageID: "markdown",
			Version:    0,
			Text:       string(text),
		},
	}
	if err := s.conn.Notify(ctx, protocol.MethodTextDocumentDidOpen, params); err != nil {
		return fmt.Errorf("lsp: didOpen %s: %w", docPath, err)
	}
	s.opened[docPath] = true
	return nil
}

// ExecuteCommand submits a workspace/executeCommand request and returns
// the raw JSON result. Server-reported errors pass through unmodified.
func (s *Session) ExecuteCommand(ctx context.Context, command string, args []any) (json.RawMessage, error) {
	params := protocol.ExecuteCommandParams{
		Command:   command,
		Arguments: args,
	}
	var result json.RawMessage
	if err := s.conn.Call(ctx, protocol.MethodWorkspaceExecuteCommand, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Close shuts the server down politely, then tears the connection down.
func (s *Session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.conn.Call(ctx, protocol.MethodShutdown, nil, nil); err != nil {
		s.log.Debug("lsp: shutdown request failed", slog.String("error", err.Error()))
	}
	if err := s.conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
		s.log.Debug("lsp: exit notification failed", slog.String("error", err.Error()))
	}
	err := s.conn.Close()
	if s.cmd != nil {
		_ = s.cmd.Wait()
	}
	return err
}

// handleServerRequest receives server-initiated traffic. The client has no
// UI-level handling for it, so everything is logged and acknowledged.
func (s *Session) handleServerRequest(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case protocol.MethodWindowLogMessage, protocol.MethodWindowShowMessage:
		var params protocol.LogMessageParams
		if req.Params != nil {
			_ = json.Unmarshal(*req.Params, &params)
		}
		s.log.Debug("lsp: server message", slog.String("message", params.Message))
		return nil, nil
	default:
		s.log.Debug("lsp: unhandled server request", slog.String("method", req.Method))
		return nil, nil
	}
}

// stdioPipe joins the server's stdout/stdin into one stream.
type stdioPipe struct {
	r io.ReadCloser
	w io.WriteCloser
}

func (p stdioPipe) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p stdioPipe) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p stdioPipe) Close() error {
	rerr := p.r.Close()
	werr := p.w.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}
