package zk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TagPrompter asks the user to select tags, seeded from the notebook's
// tag vocabulary. It is supplied by the interactive front end.
type TagPrompter func() ([]string, error)

// defaultSelect names the fields every listing query requests.
var defaultSelect = []string{"title", "path", "tags", "created"}

// BuildListOptions composes the zk.list options for a free-text query with
// an optional interactive tag-filter step, plus a human-readable
// description of the applied filter.
//
// When useTagFilter is set, prompt runs before the options are returned;
// its error aborts composition. The description for a tag-less empty query
// is the literal "match: " (a long-standing presentation quirk kept for
// reproducibility).
func BuildListOptions(queryText string, useTagFilter bool, prompt TagPrompter) (ListOptions, string, error) {
	opts := ListOptions{
		Select: append([]string(nil), defaultSelect...),
	}

	var tags []string
	if useTagFilter {
		var err error
		tags, err = prompt()
		if err != nil {
			return ListOptions{}, "", fmt.Errorf("zk: tag selection: %w", err)
		}
		opts.Tags = tags
	}
	if queryText != "" {
		opts.Match = []string{queryText}
	}

	var desc string
	switch {
	case len(tags) > 0 && queryText != "":
		desc = fmt.Sprintf("tags: %s, match: %s", strings.Join(tags, ", "), queryText)
	case len(tags) > 0:
		desc = "tags: " + strings.Join(tags, ", ")
	default:
		desc = "match: " + queryText
	}
	return opts, desc, nil
}

// Tag is one entry of the notebook's tag vocabulary.
type Tag struct {
	Name      string `json:"name"`
	NoteCount int    `json:"noteCount"`
}

// ListTags fetches the full tag vocabulary sorted by descending note count.
func (c *Client) ListTags(ctx context.Context, docPath string) ([]Tag, error) {
	raw, err := c.inv.Invoke(ctx, docPath, CmdTagList, map[string]any{
		"sort": []string{"note-count-"},
	})
	if err != nil {
		return nil, err
	}
	var tags []Tag
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tags); err != nil {
			return nil, fmt.Errorf("zk: decode tag list: %w", err)
		}
	}
	return tags, nil
}

// TagVocabulary returns just the tag names, in server order.
func (c *Client) TagVocabulary(ctx context.Context, docPath string) ([]string, error) {
	tags, err := c.ListTags(ctx, docPath)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names, nil
}
