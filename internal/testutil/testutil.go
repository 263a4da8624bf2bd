// Package testutil provides shared test helpers: a recording command
// invoker and an in-process fake language server.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
)

// InvokerCall records one command invocation.
type InvokerCall struct {
	DocPath string
	Command string
	Args    any
}

// StubInvoker satisfies zk.Invoker, recording calls and returning canned
// results. Results maps command names to raw JSON; Result is the
// fallback for commands without an entry.
type StubInvoker struct {
	Calls   []InvokerCall
	Results map[string]json.RawMessage
	Result  json.RawMessage
	Err     error
}

// Invoke records the call and replies with the canned result.
func (s *StubInvoker) Invoke(_ context.Context, docPath, command string, args any) (json.RawMessage, error) {
	s.Calls = append(s.Calls, InvokerCall{DocPath: docPath, Command: command, Args: args})
	if s.Err != nil {
		return nil, s.Err
	}
	if res, ok := s.Results[command]; ok {
		return res, nil
	}
	return s.Result, nil
}

// CallCount returns how many invocations were recorded.
func (s *StubInvoker) CallCount() int { return len(s.Calls) }

// CommandHandler produces the result for one workspace/executeCommand
// request received by the fake server.
type CommandHandler func(command string, args []any) (any, error)

// FakeServer runs an in-process language server over a pipe and returns
// the client side of the connection. It answers the LSP handshake and
// routes executeCommand requests to handle.
func FakeServer(t *testing.T, handle CommandHandler) io.ReadWriteCloser {
	t.Helper()
	clientSide, serverSide := net.Pipe()

	handler := jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		switch req.Method {
		case "initialize":
			return map[string]any{"capabilities": map[string]any{}}, nil
		case "workspace/executeCommand":
			var params struct {
				Command   string `json:"command"`
				Arguments []any  `json:"arguments"`
			}
			if req.Params != nil {
				if err := json.Unmarshal(*req.Params, &params); err != nil {
					return nil, err
				}
			}
			return handle(params.Command, params.Arguments)
		default:
			// initialized, didOpen, shutdown, exit
			return nil, nil
		}
	})

	stream := jsonrpc2.NewBufferedStream(serverSide, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(context.Background(), stream, handler)
	t.Cleanup(func() { _ = conn.Close() })

	return clientSide
}
