// Package internal provides the application wiring and the per-command
// actions behind the CLI.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/zkbridge/internal/lsp"
	"github.com/starford/zkbridge/internal/notebook"
	"github.com/starford/zkbridge/internal/picker"
	"github.com/starford/zkbridge/internal/watcher"
	"github.com/starford/zkbridge/internal/zk"
)

// reindexDebounce batches bursts of file events into one zk.index call.
const reindexDebounce = 500 * time.Millisecond

// App wires the session manager, the zk client, and the interactive
// surfaces together. All remote calls within one action run strictly
// sequentially.
type App struct {
	cfg     *Config
	log     *slog.Logger
	out     io.Writer
	manager *lsp.Manager
	invoker zk.Invoker
	client  *zk.Client
	// managed is true when the app owns the LSP sessions behind the
	// invoker; an injected invoker brings its own session handling.
	managed bool

	pickNote    func(title string, candidates []zk.Candidate) (zk.Candidate, bool, error)
	promptTags  func(vocab []string) ([]string, error)
	promptTitle func(prompt string) (string, bool, error)
	open        zk.Opener
}

// NewApp builds the application from options. A config is required.
func NewApp(opts ...Option) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		opt(app)
	}
	if app.cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.log == nil {
		app.log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.cfg.App.LogLevel,
		}))
		slog.SetDefault(app.log)
	}
	if app.out == nil {
		app.out = os.Stdout
	}

	app.manager = lsp.NewManager(lsp.Config{
		Command: app.cfg.Server.Command,
		Args:    app.cfg.Server.Args,
	}, app.log)
	if app.invoker == nil {
		app.invoker = lsp.NewCommandInvoker(app.manager)
		app.managed = true
	}
	app.client = zk.NewClient(app.invoker, app.log)

	if app.pickNote == nil {
		app.pickNote = picker.SelectNote
	}
	if app.promptTags == nil {
		app.promptTags = picker.SelectTags
	}
	if app.promptTitle == nil {
		app.promptTitle = picker.PromptTitle
	}
	if app.open == nil {
		app.open = app.openInEditor
	}
	return app, nil
}

// Close tears down every active server session.
func (a *App) Close() {
	a.manager.CloseAll()
}

// ensureSession opens (or reuses) the session for the document's notebook.
// The notebook gate applies even when the invoker is injected.
func (a *App) ensureSession(ctx context.Context, docPath string) error {
	root, err := notebook.Root(docPath)
	if err != nil {
		return err
	}
	if !a.managed {
		return nil
	}
	_, err = a.manager.Open(ctx, root)
	return err
}

// Search lists notes for a free-text query with an optional interactive
// tag-filter step, then lets the user pick one. The selected path is
// written to the output for the caller's file-open action.
func (a *App) Search(ctx context.Context, docPath, query string, useTags bool, limit int, printOnly bool) error {
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}

	prompt := func() ([]string, error) {
		vocab, err := a.client.TagVocabulary(ctx, docPath)
		if err != nil {
			return nil, err
		}
		return a.promptTags(vocab)
	}
	opts, desc, err := zk.BuildListOptions(query, useTags, prompt)
	if err != nil {
		return err
	}
	opts.Limit = limit

	return a.listAndPick(ctx, docPath, opts, desc, printOnly)
}

// Recent lists notes created in the last two weeks, newest first.
func (a *App) Recent(ctx context.Context, docPath string, limit int, printOnly bool) error {
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}
	opts := zk.ListOptions{
		Select:       []string{"title", "path", "tags", "created"},
		Sort:         []string{"created-"},
		CreatedAfter: "2 weeks ago",
		Limit:        limit,
	}
	return a.listAndPick(ctx, docPath, opts, "recent notes", printOnly)
}

// listAndPick runs a listing and resolves it to a single selected path.
// Zero notes is not an error: the user gets a "no notes found" message.
func (a *App) listAndPick(ctx context.Context, docPath string, opts zk.ListOptions, desc string, printOnly bool) error {
	notes, err := a.client.List(ctx, docPath, opts)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintf(a.out, "no notes found (%s)\n", desc)
		return nil
	}

	candidates := zk.BuildCandidates(notes, a.cfg.Display.Options())
	if printOnly {
		for _, c := range candidates {
			fmt.Fprintf(a.out, "%s\t%s\n", c.Display, c.Path)
		}
		return nil
	}

	chosen, ok, err := a.pickNote(desc, candidates)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	fmt.Fprintln(a.out, chosen.Path)
	return nil
}

// Tags prints the notebook's tag vocabulary sorted by note count.
func (a *App) Tags(ctx context.Context, docPath string) error {
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}
	tags, err := a.client.ListTags(ctx, docPath)
	if err != nil {
		return err
	}
	for _, t := range tags {
		fmt.Fprintf(a.out, "%s\t%d\n", t.Name, t.NoteCount)
	}
	return nil
}

// New creates a note and prints the resulting path.
func (a *App) New(ctx context.Context, docPath string, args zk.CreationArgs) error {
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}
	path, err := a.client.CreateNote(ctx, docPath, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, path)
	return nil
}

// RunShortcut invokes a configured creation shortcut by name. A shortcut
// without a preset title prompts for one unless the caller supplied it.
func (a *App) RunShortcut(ctx context.Context, docPath, name, title string) error {
	var preset *ShortcutConfig
	for i := range a.cfg.Shortcuts {
		if a.cfg.Shortcuts[i].Name == name {
			preset = &a.cfg.Shortcuts[i]
			break
		}
	}
	if preset == nil {
		return fmt.Errorf("unknown shortcut %q", name)
	}
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}

	shortcut := zk.NewShortcut(name, preset.Args(), a.client, a.open)
	if shortcut.NeedsTitle() && title == "" {
		entered, ok, err := a.promptTitle(fmt.Sprintf("Title for %s note", name))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		title = entered
	}
	return shortcut.Run(ctx, docPath, title)
}

// Link inserts a link to a picked note at the given cursor position in
// the bound document.
func (a *App) Link(ctx context.Context, docPath string, line, col int) error {
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}
	pick := func(candidates []zk.Candidate) (zk.Candidate, bool, error) {
		return a.pickNote("Link to note", candidates)
	}
	return a.client.InsertLink(ctx, docPath, line, col, pick)
}

// Index asks the server for a one-shot notebook reindex.
func (a *App) Index(ctx context.Context, docPath string) error {
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}
	return a.client.Index(ctx, docPath)
}

// Watch observes the notebook and triggers zk.index on markdown changes
// until interrupted.
func (a *App) Watch(ctx context.Context, docPath string) error {
	root, err := notebook.Root(docPath)
	if err != nil {
		return err
	}
	if err := a.ensureSession(ctx, docPath); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Watch(gCtx, root, reindexDebounce, a.log, func(cbCtx context.Context) {
			if idxErr := a.client.Index(cbCtx, docPath); idxErr != nil {
				a.log.Warn("reindex failed", slog.String("error", idxErr.Error()))
			}
		})
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.log.Info("received shutdown signal", slog.String("signal", sig.String()))
			return context.Canceled
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openInEditor hands a created note to $EDITOR, or prints its path when
// no editor is configured.
func (a *App) openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		fmt.Fprintln(a.out, path)
		return nil
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
