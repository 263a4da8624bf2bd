package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/zkbridge/internal/notebook"
	"github.com/starford/zkbridge/internal/testutil"
	"github.com/starford/zkbridge/internal/zk"
)

// testApp builds an app over a stub invoker and a scratch notebook.
func testApp(t *testing.T, inv *testutil.StubInvoker) (*App, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, notebook.MarkerDir), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(root, "note.md")
	if err := os.WriteFile(doc, []byte("# note\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	app, err := NewApp(
		WithConfig(NewDefaultConfig()),
		WithInvoker(inv),
		WithOutput(&out),
	)
	if err != nil {
		t.Fatal(err)
	}
	return app, doc, &out
}

func TestSearch_EmptyListingSaysNoNotesFound(t *testing.T) {
	inv := &testutil.StubInvoker{Result: json.RawMessage(`[]`)}
	app, doc, out := testApp(t, inv)

	if err := app.Search(context.Background(), doc, "anything", false, 0, false); err != nil {
		t.Fatalf("empty listing must not be an error: %v", err)
	}
	if !strings.Contains(out.String(), "no notes found") {
		t.Errorf("output = %q, want a no-notes-found message", out.String())
	}
}

func TestSearch_PrintsCandidates(t *testing.T) {
	inv := &testutil.StubInvoker{Result: json.RawMessage(
		`[{"title":"Alpha","path":"a.md","tags":["x"]},{"path":"b.md"}]`)}
	app, doc, out := testApp(t, inv)

	if err := app.Search(context.Background(), doc, "alp", false, 0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Alpha [x]\ta.md") {
		t.Errorf("output = %q, want tagged candidate line", got)
	}
	if !strings.Contains(got, "Untitled\tb.md") {
		t.Errorf("output = %q, want defaulted title", got)
	}
}

func TestSearch_PickedPathIsPrinted(t *testing.T) {
	inv := &testutil.StubInvoker{Result: json.RawMessage(`[{"title":"Alpha","path":"a.md"}]`)}
	app, doc, out := testApp(t, inv)
	app.pickNote = func(_ string, cands []zk.Candidate) (zk.Candidate, bool, error) {
		return cands[0], true, nil
	}

	if err := app.Search(context.Background(), doc, "alp", false, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "a.md" {
		t.Errorf("output = %q, want the selected path", out.String())
	}
}

func TestSearch_TagFilterFetchesVocabularyFirst(t *testing.T) {
	inv := &testutil.StubInvoker{
		Results: map[string]json.RawMessage{
			zk.CmdTagList: json.RawMessage(`[{"name":"work","noteCount":3}]`),
			zk.CmdList:    json.RawMessage(`[]`),
		},
	}
	app, doc, out := testApp(t, inv)

	var seenVocab []string
	app.promptTags = func(vocab []string) ([]string, error) {
		seenVocab = vocab
		return []string{"work"}, nil
	}

	if err := app.Search(context.Background(), doc, "", true, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seenVocab) != 1 || seenVocab[0] != "work" {
		t.Errorf("vocabulary = %v", seenVocab)
	}
	// Vocabulary fetch strictly precedes the listing.
	if len(inv.Calls) != 2 || inv.Calls[0].Command != zk.CmdTagList || inv.Calls[1].Command != zk.CmdList {
		t.Errorf("calls = %+v", inv.Calls)
	}
	if !strings.Contains(out.String(), "no notes found (tags: work)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRecent_UsesCreatedAfterAndSort(t *testing.T) {
	inv := &testutil.StubInvoker{Result: json.RawMessage(`[]`)}
	app, doc, _ := testApp(t, inv)

	if err := app.Recent(context.Background(), doc, 5, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.Calls) != 1 {
		t.Fatalf("calls = %+v", inv.Calls)
	}
	sent, err := json.Marshal(inv.Calls[0].Args)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(sent, &m); err != nil {
		t.Fatal(err)
	}
	if m["createdAfter"] != "2 weeks ago" {
		t.Errorf("createdAfter = %v", m["createdAfter"])
	}
	if m["limit"] != 5.0 {
		t.Errorf("limit = %v", m["limit"])
	}
}

func TestTags_PrintsNameAndCount(t *testing.T) {
	inv := &testutil.StubInvoker{Result: json.RawMessage(`[{"name":"work","noteCount":9}]`)}
	app, doc, out := testApp(t, inv)

	if err := app.Tags(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "work\t9" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunShortcut_PromptsForMissingTitle(t *testing.T) {
	inv := &testutil.StubInvoker{Result: json.RawMessage(`{"path":"journal/daily/x.md"}`)}
	app, doc, _ := testApp(t, inv)

	prompted := false
	app.promptTitle = func(string) (string, bool, error) {
		prompted = true
		return "Today", true, nil
	}
	var opened string
	app.open = func(path string) error {
		opened = path
		return nil
	}

	if err := app.RunShortcut(context.Background(), doc, "daily", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prompted {
		t.Error("shortcut without preset title must prompt")
	}
	if opened != "journal/daily/x.md" {
		t.Errorf("opened = %q", opened)
	}
}

func TestRunShortcut_UnknownName(t *testing.T) {
	inv := &testutil.StubInvoker{}
	app, doc, _ := testApp(t, inv)

	if err := app.RunShortcut(context.Background(), doc, "nope", ""); err == nil {
		t.Fatal("unknown shortcut must fail")
	}
	if inv.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", inv.CallCount())
	}
}

func TestNewApp_RequiresConfig(t *testing.T) {
	if _, err := NewApp(); err == nil {
		t.Fatal("missing config must fail")
	}
}
