package zk

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeNote_MissingTitleDefaults(t *testing.T) {
	rec := NormalizeNote(map[string]any{"path": "a.md"})
	if rec.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", rec.Title, DefaultTitle)
	}
	if rec.Path != "a.md" {
		t.Errorf("path = %q, want %q", rec.Path, "a.md")
	}
}

func TestNormalizeNote_EmptyTitleDefaults(t *testing.T) {
	rec := NormalizeNote(map[string]any{"title": "", "path": "a.md"})
	if rec.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", rec.Title, DefaultTitle)
	}
}

func TestNormalizeNote_TagShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want []string
	}{
		{"sequence", map[string]any{"tags": []any{"b", "a", "b"}}, []string{"b", "a", "b"}},
		{"absent", map[string]any{}, []string{}},
		{"null", map[string]any{"tags": nil}, []string{}},
		{"scalar", map[string]any{"tags": "oops"}, []string{}},
		{"number", map[string]any{"tags": 42.0}, []string{}},
		{"mixed sequence", map[string]any{"tags": []any{"a", 1.0, "b"}}, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NormalizeNote(tc.raw)
			if rec.Tags == nil {
				t.Fatal("tags must never be nil")
			}
			if !reflect.DeepEqual(rec.Tags, tc.want) {
				t.Errorf("tags = %v, want %v", rec.Tags, tc.want)
			}
		})
	}
}

func TestNormalizeNote_ExtraFieldsIgnored(t *testing.T) {
	rec := NormalizeNote(map[string]any{
		"title":     "X",
		"path":      "x.md",
		"wordCount": 12.0,
		"created":   "2024-01-02T03:04:05Z",
	})
	if rec.Title != "X" || rec.Path != "x.md" || rec.Created != "2024-01-02T03:04:05Z" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Modified != "" {
		t.Errorf("modified = %q, want empty", rec.Modified)
	}
}

func TestDecodeNotes_SkipsNonObjects(t *testing.T) {
	raw := json.RawMessage(`[{"title":"A","path":"a.md"}, 17, "nope", {"path":"b.md"}]`)
	notes, err := DecodeNotes(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len(notes) = %d, want 2", len(notes))
	}
	if notes[0].Title != "A" || notes[1].Title != DefaultTitle {
		t.Errorf("titles = %q, %q", notes[0].Title, notes[1].Title)
	}
}

func TestDecodeNotes_NullAndEmpty(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage("null")} {
		notes, err := DecodeNotes(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("len(notes) = %d, want 0", len(notes))
		}
	}
}
