package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// Compile-time check: SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	name         TEXT PRIMARY KEY,
	position     INTEGER NOT NULL,
	birthday     TEXT NOT NULL DEFAULT '',
	address      TEXT NOT NULL DEFAULT '',
	has_note     INTEGER NOT NULL DEFAULT 0,
	note_title   TEXT NOT NULL DEFAULT '',
	note_text    TEXT NOT NULL DEFAULT '',
	note_tags    TEXT NOT NULL DEFAULT '',
	note_created TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS phones (
	contact  TEXT NOT NULL REFERENCES contacts(name) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	value    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS emails (
	contact  TEXT NOT NULL REFERENCES contacts(name) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	value    TEXT NOT NULL
);`

// SQLiteStore persists the address book in a SQLite database file.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates a SQLiteStore backed by the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", s.path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: creating schema in %s: %w", s.path, err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrating %s: %w", s.path, err)
	}
	return db, nil
}

// migrate adds columns missing from databases written by older versions.
func migrate(db *sql.DB) error {
	rows, err := db.Query(`SELECT name FROM pragma_table_info('contacts')`)
	if err != nil {
		return fmt.Errorf("reading contacts columns: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning column: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !cols["note_created"] {
		if _, err := db.Exec(`ALTER TABLE contacts ADD COLUMN note_created TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("adding note_created: %w", err)
		}
	}
	return nil
}

// Load reads the book. A missing database file yields an empty book and is
// not created.
func (s *SQLiteStore) Load() (*book.AddressBook, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(), nil
		}
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snaps, index, err := loadContacts(db)
	if err != nil {
		return nil, fmt.Errorf("store: loading %s: %w", s.path, err)
	}
	if err := loadValues(db, "phones", func(i int, v string) { snaps[i].Phones = append(snaps[i].Phones, v) }, index); err != nil {
		return nil, fmt.Errorf("store: loading %s: %w", s.path, err)
	}
	if err := loadValues(db, "emails", func(i int, v string) { snaps[i].Emails = append(snaps[i].Emails, v) }, index); err != nil {
		return nil, fmt.Errorf("store: loading %s: %w", s.path, err)
	}

	b, err := fromSnapshots(snaps)
	if err != nil {
		return nil, fmt.Errorf("store: loading %s: %w", s.path, err)
	}
	return b, nil
}

func loadContacts(db *sql.DB) ([]contact.Snapshot, map[string]int, error) {
	rows, err := db.Query(`SELECT name, birthday, address, has_note, note_title, note_text, note_tags, note_created FROM contacts ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var snaps []contact.Snapshot
	index := make(map[string]int)
	for rows.Next() {
		var (
			snap                                 contact.Snapshot
			hasNote                              bool
			noteTitle, noteText, tagsS, createdS string
		)
		if err := rows.Scan(&snap.Name, &snap.Birthday, &snap.Address, &hasNote, &noteTitle, &noteText, &tagsS, &createdS); err != nil {
			return nil, nil, fmt.Errorf("scanning contact: %w", err)
		}
		if hasNote {
			tags, err := decodeTags([]byte(tagsS))
			if err != nil {
				return nil, nil, fmt.Errorf("contact %q: %w", snap.Name, err)
			}
			snap.Note = &contact.NoteSnapshot{Title: noteTitle, Text: noteText, Tags: tags}
			if createdS != "" {
				created, err := time.Parse(time.RFC3339, createdS)
				if err != nil {
					return nil, nil, fmt.Errorf("contact %q: note created_at: %w", snap.Name, err)
				}
				snap.Note.Created = created
			}
		}
		index[snap.Name] = len(snaps)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return snaps, index, nil
}

func loadValues(db *sql.DB, table string, add func(i int, v string), index map[string]int) error {
	rows, err := db.Query(`SELECT contact, value FROM ` + table + ` ORDER BY contact, position`)
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner, value string
		if err := rows.Scan(&owner, &value); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		i, ok := index[owner]
		if !ok {
			return fmt.Errorf("%s row for unknown contact %q", table, owner)
		}
		add(i, value)
	}
	return rows.Err()
}

// Save rewrites every row in a single transaction.
func (s *SQLiteStore) Save(b *book.AddressBook) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: creating directory: %w", err)
		}
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	if err := writeAll(tx, snapshots(b)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: committing %s: %w", s.path, err)
	}
	return nil
}

func writeAll(tx *sql.Tx, snaps []contact.Snapshot) error {
	for _, table := range []string{"phones", "emails", "contacts"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for pos, snap := range snaps {
		var (
			hasNote              bool
			title, text, created string
			tagsJSON             = "[]"
		)
		if snap.Note != nil {
			hasNote = true
			title, text = snap.Note.Title, snap.Note.Text
			if !snap.Note.Created.IsZero() {
				created = snap.Note.Created.UTC().Format(time.RFC3339)
			}
			data, err := json.Marshal(append([]string{}, snap.Note.Tags...))
			if err != nil {
				return fmt.Errorf("encoding tags for %q: %w", snap.Name, err)
			}
			tagsJSON = string(data)
		}
		if _, err := tx.Exec(
			`INSERT INTO contacts (name, position, birthday, address, has_note, note_title, note_text, note_tags, note_created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.Name, pos, snap.Birthday, snap.Address, hasNote, title, text, tagsJSON, created,
		); err != nil {
			return fmt.Errorf("inserting contact %q: %w", snap.Name, err)
		}
		for i, p := range snap.Phones {
			if _, err := tx.Exec(`INSERT INTO phones (contact, position, value) VALUES (?, ?, ?)`, snap.Name, i, p); err != nil {
				return fmt.Errorf("inserting phone for %q: %w", snap.Name, err)
			}
		}
		for i, e := range snap.Emails {
			if _, err := tx.Exec(`INSERT INTO emails (contact, position, value) VALUES (?, ?, ?)`, snap.Name, i, e); err != nil {
				return fmt.Errorf("inserting email for %q: %w", snap.Name, err)
			}
		}
	}
	return nil
}
