package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/zkbridge/internal/zk"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Server    ServerConfig      `yaml:"server"`
	Display   DisplayConfig     `yaml:"display"`
	Shortcuts []ShortcutConfig  `yaml:"shortcuts"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Shortcuts))
	for i := range c.Shortcuts {
		s := &c.Shortcuts[i]
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shortcut %d: %w", i, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("shortcut %q defined twice", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ServerConfig describes how to start the zk language server.
type ServerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Command, validation.Required),
	)
}

// DisplayConfig controls the optional fragments of candidate display
// strings.
type DisplayConfig struct {
	IncludeTags     bool `yaml:"include_tags"`
	IncludeCreated  bool `yaml:"include_created"`
	IncludeModified bool `yaml:"include_modified"`
}

// Options converts the config into the candidate builder's options.
func (c DisplayConfig) Options() zk.DisplayOptions {
	return zk.DisplayOptions{
		IncludeTags:     c.IncludeTags,
		IncludeCreated:  c.IncludeCreated,
		IncludeModified: c.IncludeModified,
	}
}

// ShortcutConfig declares a named note-creation shortcut with preset
// arguments. A shortcut without a title prompts for one at invocation.
type ShortcutConfig struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Dir      string `yaml:"dir"`
	Group    string `yaml:"group"`
	Template string `yaml:"template"`
	Date     string `yaml:"date"`
}

// Validate validates the shortcut declaration.
func (c *ShortcutConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
	)
}

// Args converts the preset into creation arguments.
func (c ShortcutConfig) Args() zk.CreationArgs {
	return zk.CreationArgs{
		Title:    c.Title,
		Dir:      c.Dir,
		Group:    c.Group,
		Template: c.Template,
		Date:     c.Date,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Server: ServerConfig{
			Command: "zk",
			Args:    []string{"lsp"},
		},
		Display: DisplayConfig{
			IncludeTags:    true,
			IncludeCreated: true,
		},
		Shortcuts: []ShortcutConfig{
			{Name: "daily", Dir: "journal/daily"},
		},
	}
}
