package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/zkbridge/internal"
	"github.com/starford/zkbridge/internal/zk"
	pkgconfig "github.com/starford/zkbridge/pkg/config"
)

// buildApp loads configuration and wires the application for one command.
func buildApp(cmd *cli.Command) (*internal.App, string, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOrDefault(cmd.String("config"), cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	app, err := internal.NewApp(internal.WithConfig(cfg))
	if err != nil {
		return nil, "", err
	}

	docPath, err := filepath.Abs(cmd.String("doc"))
	if err != nil {
		return nil, "", fmt.Errorf("resolve document path: %w", err)
	}
	return app, docPath, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "zkbridge",
		Usage: "Terminal client for the zk note-taking language server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config/config.yaml",
				Sources: cli.EnvVars("ZKBRIDGE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "doc",
				Aliases: []string{"d"},
				Usage:   "Document the session is bound to (file or directory inside a notebook)",
				Value:   ".",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search notes by free text, optionally filtered by tags",
				ArgsUsage: "[query]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Interactively filter by tags"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of notes"},
					&cli.BoolFlag{Name: "print", Aliases: []string{"p"}, Usage: "Print candidates instead of picking"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.Search(ctx, docPath, cmd.Args().First(),
						cmd.Bool("tags"), int(cmd.Int("limit")), cmd.Bool("print"))
				},
			},
			{
				Name:  "recent",
				Usage: "List notes created in the last two weeks",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Maximum number of notes"},
					&cli.BoolFlag{Name: "print", Aliases: []string{"p"}, Usage: "Print candidates instead of picking"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.Recent(ctx, docPath, int(cmd.Int("limit")), cmd.Bool("print"))
				},
			},
			{
				Name:  "tags",
				Usage: "List the notebook's tags with note counts",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.Tags(ctx, docPath)
				},
			},
			{
				Name:  "new",
				Usage: "Create a note",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Note title"},
					&cli.StringFlag{Name: "dir", Usage: "Directory relative to the notebook root"},
					&cli.StringFlag{Name: "group", Usage: "Configuration group"},
					&cli.StringFlag{Name: "template", Usage: "Template override"},
					&cli.StringFlag{Name: "date", Usage: "Creation date expression"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					args := zk.CreationArgs{
						Title:    cmd.String("title"),
						Dir:      cmd.String("dir"),
						Group:    cmd.String("group"),
						Template: cmd.String("template"),
						Date:     cmd.String("date"),
					}
					return app.New(ctx, docPath, args)
				},
			},
			{
				Name:      "shortcut",
				Usage:     "Run a configured note-creation shortcut",
				ArgsUsage: "<name> [title]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("shortcut name required")
					}
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.RunShortcut(ctx, docPath, cmd.Args().First(), cmd.Args().Get(1))
				},
			},
			{
				Name:  "link",
				Usage: "Insert a link to a picked note at a cursor position",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "line", Usage: "Cursor line (0-based)"},
					&cli.IntFlag{Name: "col", Usage: "Cursor column (0-based)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.Link(ctx, docPath, int(cmd.Int("line")), int(cmd.Int("col")))
				},
			},
			{
				Name:  "index",
				Usage: "Ask the server to refresh its notebook index",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.Index(ctx, docPath)
				},
			},
			{
				Name:  "watch",
				Usage: "Watch the notebook and reindex on markdown changes",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, docPath, err := buildApp(cmd)
					if err != nil {
						return err
					}
					defer app.Close()
					return app.Watch(ctx, docPath)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
