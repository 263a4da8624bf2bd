package internal

import (
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Server.Command != "zk" {
		t.Errorf("command = %q, want zk", cfg.Server.Command)
	}
}

func TestServerConfig_MissingCommand(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Command = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty server command should fail validation")
	}
}

func TestShortcutConfig_MissingName(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Shortcuts = append(cfg.Shortcuts, ShortcutConfig{Dir: "inbox"})
	if err := cfg.Validate(); err == nil {
		t.Fatal("nameless shortcut should fail validation")
	}
}

func TestShortcutConfig_DuplicateNames(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Shortcuts = []ShortcutConfig{
		{Name: "daily", Dir: "journal/daily"},
		{Name: "daily", Dir: "elsewhere"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("duplicate shortcut names should fail validation")
	}
	if !strings.Contains(err.Error(), "twice") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestShortcutConfig_Args(t *testing.T) {
	sc := ShortcutConfig{Name: "daily", Dir: "journal/daily", Template: "daily.md"}
	args := sc.Args()
	if args.Dir != "journal/daily" || args.Template != "daily.md" || args.Title != "" {
		t.Errorf("args = %+v", args)
	}
}

func TestDisplayConfig_Options(t *testing.T) {
	dc := DisplayConfig{IncludeTags: true, IncludeModified: true}
	opts := dc.Options()
	if !opts.IncludeTags || opts.IncludeCreated || !opts.IncludeModified {
		t.Errorf("opts = %+v", opts)
	}
}
