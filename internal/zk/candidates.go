package zk

import (
	"fmt"
	"strings"
)

// Candidate is a (display string, target path) pair surfaced to the user
// for selection. Path is the authoritative identity; display strings may
// collide within a batch without harm.
type Candidate struct {
	Display string
	Path    string
}

// DisplayOptions controls which optional fragments the display string
// carries beyond the title.
type DisplayOptions struct {
	IncludeTags     bool
	IncludeCreated  bool
	IncludeModified bool
}

// BuildCandidates maps normalized note records to selection candidates.
// Enabled-and-present fragments follow the title in a fixed order, each
// contributing its own leading space; absent or disabled fragments
// contribute nothing.
func BuildCandidates(notes []NoteRecord, opts DisplayOptions) []Candidate {
	out := make([]Candidate, 0, len(notes))
	for _, n := range notes {
		var b strings.Builder
		b.WriteString(n.Title)
		if opts.IncludeTags && len(n.Tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(n.Tags, ", "))
		}
		if opts.IncludeCreated && n.Created != "" {
			fmt.Fprintf(&b, " (%s)", FormatDatetime(n.Created))
		}
		if opts.IncludeModified && n.Modified != "" {
			fmt.Fprintf(&b, " (%s)", FormatDatetime(n.Modified))
		}
		out = append(out, Candidate{Display: b.String(), Path: n.Path})
	}
	return out
}
