package zk

import "encoding/json"

// DefaultTitle is used when a note record carries no usable title.
const DefaultTitle = "Untitled"

// NoteRecord is the metadata projection of a note as returned by zk.list.
// Path is the only field guaranteed present and is the identity used to
// resolve a selection back to a file. Created and Modified hold the raw
// ISO-8601 strings as received.
type NoteRecord struct {
	Title    string
	Path     string
	Tags     []string
	Created  string
	Modified string
}

// NormalizeNote converts a raw note object of arbitrary shape into a
// NoteRecord. It never fails: a missing or empty title defaults to
// DefaultTitle, tags of any shape other than a string sequence degrade to
// an empty slice, and unknown fields are ignored.
func NormalizeNote(raw map[string]any) NoteRecord {
	rec := NoteRecord{
		Title: DefaultTitle,
		Tags:  []string{},
	}
	if s, ok := raw["title"].(string); ok && s != "" {
		rec.Title = s
	}
	if s, ok := raw["path"].(string); ok {
		rec.Path = s
	}
	if seq, ok := raw["tags"].([]any); ok {
		for _, v := range seq {
			if s, ok := v.(string); ok {
				rec.Tags = append(rec.Tags, s)
			}
		}
	}
	if s, ok := raw["created"].(string); ok {
		rec.Created = s
	}
	if s, ok := raw["modified"].(string); ok {
		rec.Modified = s
	}
	return rec
}

// DecodeNotes decodes a raw zk.list result into normalized records.
// A null result yields an empty slice; non-object elements are skipped.
func DecodeNotes(raw json.RawMessage) ([]NoteRecord, error) {
	if len(raw) == 0 {
		return []NoteRecord{}, nil
	}
	var elems []any
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	notes := make([]NoteRecord, 0, len(elems))
	for _, e := range elems {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		notes = append(notes, NormalizeNote(obj))
	}
	return notes, nil
}
