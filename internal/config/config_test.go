package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Book.Path != "user_data/addressbook.json" {
		t.Errorf("default book path = %q, want %q", cfg.Book.Path, "user_data/addressbook.json")
	}
	if cfg.Birthdays.Window != 7 {
		t.Errorf("default window = %d, want 7", cfg.Birthdays.Window)
	}
	if cfg.Notes.OnExisting != NoteError {
		t.Errorf("default note policy = %q, want %q", cfg.Notes.OnExisting, NoteError)
	}
	if cfg.Display.PageSize != 10 {
		t.Errorf("default page size = %d, want 10", cfg.Display.PageSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadLayered_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
book:
  path: /tmp/contacts.db
  backend: sqlite
birthdays:
  window: 14
notes:
  on_existing: replace
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(cfgPath)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if cfg.Book.Path != "/tmp/contacts.db" {
		t.Errorf("book path = %q, want %q", cfg.Book.Path, "/tmp/contacts.db")
	}
	if cfg.Book.Backend != "sqlite" {
		t.Errorf("backend = %q, want %q", cfg.Book.Backend, "sqlite")
	}
	if cfg.Birthdays.Window != 14 {
		t.Errorf("window = %d, want 14", cfg.Birthdays.Window)
	}
	if cfg.Notes.OnExisting != NoteReplace {
		t.Errorf("note policy = %q, want %q", cfg.Notes.OnExisting, NoteReplace)
	}
	// Unset fields keep their defaults.
	if cfg.Display.Color != "auto" {
		t.Errorf("color = %q, want default %q", cfg.Display.Color, "auto")
	}
}

func TestLoadLayered_MissingFile(t *testing.T) {
	cfg, err := LoadLayered("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("LoadLayered() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("LoadLayered(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadLayered(cfgPath); err == nil {
		t.Fatal("LoadLayered(invalid YAML) should return error")
	}
}

func TestLoadLayered_UnknownField(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
book:
  pth: typo.json
`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadLayered(cfgPath); err == nil {
		t.Fatal("LoadLayered() should return error for unknown field 'pth'")
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given a user config setting the path and window
	// and a project config overriding only the window
	userDir := t.TempDir()
	projectDir := t.TempDir()

	userCfg := filepath.Join(userDir, "config.yaml")
	if err := os.WriteFile(userCfg, []byte(`
book:
  path: /home/me/book.json
birthdays:
  window: 3
`), 0o644); err != nil {
		t.Fatal(err)
	}

	projectCfg := filepath.Join(projectDir, "config.yaml")
	if err := os.WriteFile(projectCfg, []byte(`
birthdays:
  window: 30
log:
  file: rolodex.log
`), 0o644); err != nil {
		t.Fatal(err)
	}

	// When both are layered
	cfg, err := LoadLayered(userCfg, "", projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then later layers win field by field
	if cfg.Book.Path != "/home/me/book.json" {
		t.Errorf("book path = %q, want %q", cfg.Book.Path, "/home/me/book.json")
	}
	if cfg.Birthdays.Window != 30 {
		t.Errorf("window = %d, want 30", cfg.Birthdays.Window)
	}
	if cfg.Log.File != "rolodex.log" {
		t.Errorf("log file = %q, want %q", cfg.Log.File, "rolodex.log")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want default %q", cfg.Log.Level, "warn")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/nonexistent/a.yaml", "/nonexistent/b.yaml")
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("LoadLayered(all missing) = %+v, want defaults", *cfg)
	}
}

func TestLoadLayered_CommentOnlyFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("# nothing here yet\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(cfgPath)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("comment-only file should yield defaults, got %+v", *cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "ROLODEX_BOOK_PATH overrides path",
			envs: map[string]string{"ROLODEX_BOOK_PATH": "/data/book.db"},
			check: func(t *testing.T, c Config) {
				if c.Book.Path != "/data/book.db" {
					t.Errorf("book path = %q, want %q", c.Book.Path, "/data/book.db")
				}
			},
		},
		{
			name: "ROLODEX_BOOK_BACKEND overrides backend",
			envs: map[string]string{"ROLODEX_BOOK_BACKEND": "json"},
			check: func(t *testing.T, c Config) {
				if c.Book.Backend != "json" {
					t.Errorf("backend = %q, want %q", c.Book.Backend, "json")
				}
			},
		},
		{
			name: "ROLODEX_BIRTHDAY_WINDOW overrides window",
			envs: map[string]string{"ROLODEX_BIRTHDAY_WINDOW": "21"},
			check: func(t *testing.T, c Config) {
				if c.Birthdays.Window != 21 {
					t.Errorf("window = %d, want 21", c.Birthdays.Window)
				}
			},
		},
		{
			name: "ROLODEX_LOG_LEVEL overrides level",
			envs: map[string]string{"ROLODEX_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "debug" {
					t.Errorf("log level = %q, want %q", c.Log.Level, "debug")
				}
			},
		},
		{
			name:    "invalid ROLODEX_BIRTHDAY_WINDOW returns error",
			envs:    map[string]string{"ROLODEX_BIRTHDAY_WINDOW": "a week"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	// Given a .env file and a variable already set in the environment
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ROLODEX_BOOK_PATH=from-dotenv.json\nROLODEX_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROLODEX_BOOK_PATH", "")
	os.Unsetenv("ROLODEX_BOOK_PATH")
	t.Setenv("ROLODEX_LOG_LEVEL", "error")

	// When it is loaded alongside a missing file
	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	// Then unset variables are filled and set ones are kept
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Book.Path != "from-dotenv.json" {
		t.Errorf("book path = %q, want %q", cfg.Book.Path, "from-dotenv.json")
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %q, want %q", cfg.Log.Level, "error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty book path",
			modify:  func(c *Config) { c.Book.Path = "" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Book.Backend = "csv" },
			wantErr: true,
		},
		{
			name:    "zero window",
			modify:  func(c *Config) { c.Birthdays.Window = 0 },
			wantErr: true,
		},
		{
			name:    "unknown note policy",
			modify:  func(c *Config) { c.Notes.OnExisting = "merge" },
			wantErr: true,
		},
		{
			name:   "keep note policy",
			modify: func(c *Config) { c.Notes.OnExisting = NoteKeep },
		},
		{
			name:    "unknown color mode",
			modify:  func(c *Config) { c.Display.Color = "sometimes" },
			wantErr: true,
		},
		{
			name:    "negative page size",
			modify:  func(c *Config) { c.Display.PageSize = -1 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
