package zk

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/starford/zkbridge/internal/apperr"
)

// NotePicker lets the user choose one candidate. ok is false when the
// user abandoned the selection.
type NotePicker func(candidates []Candidate) (chosen Candidate, ok bool, err error)

// linkArgs is the zk.link argument object.
type linkArgs struct {
	Path     string            `json:"path"`
	Location protocol.Location `json:"location"`
}

// InsertLink fetches a minimal note listing, lets the user pick a target
// by title, and asks the server to insert a link at the given cursor
// position (a point insertion: the location's start equals its end).
func (c *Client) InsertLink(ctx context.Context, docPath string, line, col int, pick NotePicker) error {
	notes, err := c.List(ctx, docPath, ListOptions{Select: []string{"title", "path"}})
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return fmt.Errorf("zk: no notes found: %w", apperr.ErrNoResult)
	}

	chosen, ok, err := pick(BuildCandidates(notes, DisplayOptions{}))
	if err != nil {
		return fmt.Errorf("zk: link target selection: %w", err)
	}
	if !ok {
		return nil
	}

	pos := protocol.Position{Line: uint32(line), Character: uint32(col)}
	args := linkArgs{
		Path: chosen.Path,
		Location: protocol.Location{
			URI:   uri.File(docPath),
			Range: protocol.Range{Start: pos, End: pos},
		},
	}
	_, err = c.inv.Invoke(ctx, docPath, CmdLink, args)
	return err
}
