package zk

import (
	"encoding/json"
	"fmt"

	"github.com/starford/zkbridge/internal/apperr"
)

// listOptionKeys are the zk.list option keywords the server recognizes
// beyond the dedicated ListOptions fields.
var listOptionKeys = map[string]bool{
	"hrefs":          true,
	"exclude":        true,
	"excludeHrefs":   true,
	"mention":        true,
	"mentionedBy":    true,
	"linkTo":         true,
	"linkedBy":       true,
	"related":        true,
	"orphan":         true,
	"recursive":      true,
	"maxDistance":    true,
	"createdBefore":  true,
	"modifiedAfter":  true,
	"modifiedBefore": true,
}

// ListOptions is the selection/filter/sort options object for zk.list.
// Zero-valued fields are omitted from the wire encoding.
type ListOptions struct {
	// Select names the note fields to request.
	Select []string
	// Match holds free-text query terms.
	Match []string
	// Tags filters notes carrying all listed tags.
	Tags []string
	// Sort entries are a field name with a trailing + or - direction sign.
	Sort []string
	// Limit caps the number of returned notes; 0 means unlimited.
	Limit int
	// CreatedAfter restricts the listing to notes created after the given
	// expression (the server accepts natural phrasing like "2 weeks ago").
	CreatedAfter string
	// Extra carries server-recognized options with no dedicated field.
	Extra map[string]any
}

// Validate checks that every Extra key is a recognized list option keyword.
func (o ListOptions) Validate() error {
	for k := range o.Extra {
		if !listOptionKeys[k] {
			return fmt.Errorf("zk: unknown list option %q: %w", k, apperr.ErrMalformedArgs)
		}
	}
	return nil
}

// MarshalJSON encodes the options as the flat object zk.list expects,
// folding Extra into the top level.
func (o ListOptions) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 6+len(o.Extra))
	if len(o.Select) > 0 {
		m["select"] = o.Select
	}
	if len(o.Match) > 0 {
		m["match"] = o.Match
	}
	if len(o.Tags) > 0 {
		m["tags"] = o.Tags
	}
	if len(o.Sort) > 0 {
		m["sort"] = o.Sort
	}
	if o.Limit > 0 {
		m["limit"] = o.Limit
	}
	if o.CreatedAfter != "" {
		m["createdAfter"] = o.CreatedAfter
	}
	for k, v := range o.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// creationKeys are the keyword arguments zk.new recognizes.
var creationKeys = map[string]bool{
	"title":    true,
	"content":  true,
	"dir":      true,
	"group":    true,
	"template": true,
	"date":     true,
}

// CreationArgs is the keyed option set for zk.new. Every key sent to the
// server must be a recognized keyword; Extra holds template variables.
type CreationArgs struct {
	Title    string
	Content  string
	Dir      string
	Group    string
	Template string
	Date     string
	// Extra holds template variables forwarded under the "extra" key.
	Extra map[string]any
}

// ParseCreationArgs builds CreationArgs from a flat key/value pair list.
// An odd-length list, a non-string key, an unrecognized keyword, or a
// non-string value all fail with ErrMalformedArgs before any remote call.
func ParseCreationArgs(pairs ...any) (CreationArgs, error) {
	if len(pairs)%2 != 0 {
		return CreationArgs{}, fmt.Errorf("zk: creation argument list has odd length %d: %w", len(pairs), apperr.ErrMalformedArgs)
	}
	var args CreationArgs
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return CreationArgs{}, fmt.Errorf("zk: creation argument key %v is not a keyword: %w", pairs[i], apperr.ErrMalformedArgs)
		}
		if !creationKeys[key] {
			return CreationArgs{}, fmt.Errorf("zk: unknown creation argument %q: %w", key, apperr.ErrMalformedArgs)
		}
		val, ok := pairs[i+1].(string)
		if !ok {
			return CreationArgs{}, fmt.Errorf("zk: creation argument %q has non-string value %v: %w", key, pairs[i+1], apperr.ErrMalformedArgs)
		}
		switch key {
		case "title":
			args.Title = val
		case "content":
			args.Content = val
		case "dir":
			args.Dir = val
		case "group":
			args.Group = val
		case "template":
			args.Template = val
		case "date":
			args.Date = val
		}
	}
	return args, nil
}

// WithTitle returns a copy of the argument set with the title replaced.
func (a CreationArgs) WithTitle(title string) CreationArgs {
	a.Title = title
	return a
}

// MarshalJSON encodes the argument set as the object zk.new expects.
func (a CreationArgs) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 7)
	if a.Title != "" {
		m["title"] = a.Title
	}
	if a.Content != "" {
		m["content"] = a.Content
	}
	if a.Dir != "" {
		m["dir"] = a.Dir
	}
	if a.Group != "" {
		m["group"] = a.Group
	}
	if a.Template != "" {
		m["template"] = a.Template
	}
	if a.Date != "" {
		m["date"] = a.Date
	}
	if len(a.Extra) > 0 {
		m["extra"] = a.Extra
	}
	return json.Marshal(m)
}
