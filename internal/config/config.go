// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Book      Book      `yaml:"book"`
	Birthdays Birthdays `yaml:"birthdays"`
	Notes     Notes     `yaml:"notes"`
	Display   Display   `yaml:"display"`
	Log       Log       `yaml:"log"`
}

// Book holds persistence settings.
type Book struct {
	Path    string `yaml:"path"`
	Backend string `yaml:"backend"` // "auto" | "json" | "sqlite"
}

// Birthdays holds upcoming-birthday settings.
type Birthdays struct {
	Window int `yaml:"window"` // Default look-ahead in days
}

// Notes holds note policy settings.
type Notes struct {
	OnExisting string `yaml:"on_existing"` // "error" | "keep" | "replace"
}

// Display holds terminal output settings.
type Display struct {
	Color    string `yaml:"color"` // "auto" | "always" | "never"
	PageSize int    `yaml:"page_size"`
}

// Log holds logger settings.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Note overwrite policies.
const (
	NoteError   = "error"
	NoteKeep    = "keep"
	NoteReplace = "replace"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Path:    "user_data/addressbook.json",
			Backend: "auto",
		},
		Birthdays: Birthdays{
			Window: 7,
		},
		Notes: Notes{
			OnExisting: NoteError,
		},
		Display: Display{
			Color:    "auto",
			PageSize: 10,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
// Invalid YAML or unknown fields in any layer are an error.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Book.Path == "" {
		return errors.New("config: book.path cannot be empty")
	}
	switch c.Book.Backend {
	case "", "auto", "json", "sqlite":
		// valid
	default:
		return fmt.Errorf("config: book.backend must be \"auto\", \"json\" or \"sqlite\", got %q", c.Book.Backend)
	}
	if c.Birthdays.Window < 1 {
		return fmt.Errorf("config: birthdays.window must be positive, got %d", c.Birthdays.Window)
	}
	switch c.Notes.OnExisting {
	case NoteError, NoteKeep, NoteReplace:
		// valid
	default:
		return fmt.Errorf("config: notes.on_existing must be \"error\", \"keep\" or \"replace\", got %q", c.Notes.OnExisting)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
		// valid
	default:
		return fmt.Errorf("config: display.color must be \"auto\", \"always\" or \"never\", got %q", c.Display.Color)
	}
	if c.Display.PageSize < 1 {
		return fmt.Errorf("config: display.page_size must be positive, got %d", c.Display.PageSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_BOOK_PATH, ROLODEX_BOOK_BACKEND,
// ROLODEX_BIRTHDAY_WINDOW, ROLODEX_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROLODEX_BOOK_PATH"); v != "" {
		c.Book.Path = v
	}
	if v := os.Getenv("ROLODEX_BOOK_BACKEND"); v != "" {
		c.Book.Backend = v
	}
	if v := os.Getenv("ROLODEX_BIRTHDAY_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_BIRTHDAY_WINDOW %q: %w", v, err)
		}
		c.Birthdays.Window = n
	}
	if v := os.Getenv("ROLODEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book      *rawBook      `yaml:"book"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Notes     *rawNotes     `yaml:"notes"`
	Display   *rawDisplay   `yaml:"display"`
	Log       *rawLog       `yaml:"log"`
}

type rawBook struct {
	Path    *string `yaml:"path"`
	Backend *string `yaml:"backend"`
}

type rawBirthdays struct {
	Window *int `yaml:"window"`
}

type rawNotes struct {
	OnExisting *string `yaml:"on_existing"`
}

type rawDisplay struct {
	Color    *string `yaml:"color"`
	PageSize *int    `yaml:"page_size"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil {
		if layer.Book.Path != nil {
			c.Book.Path = *layer.Book.Path
		}
		if layer.Book.Backend != nil {
			c.Book.Backend = *layer.Book.Backend
		}
	}
	if layer.Birthdays != nil {
		if layer.Birthdays.Window != nil {
			c.Birthdays.Window = *layer.Birthdays.Window
		}
	}
	if layer.Notes != nil {
		if layer.Notes.OnExisting != nil {
			c.Notes.OnExisting = *layer.Notes.OnExisting
		}
	}
	if layer.Display != nil {
		if layer.Display.Color != nil {
			c.Display.Color = *layer.Display.Color
		}
		if layer.Display.PageSize != nil {
			c.Display.PageSize = *layer.Display.PageSize
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
