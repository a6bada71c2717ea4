// Package store persists an address book to disk.
//
// Backends are looked up by name in a Registry. The json backend writes one
// indented document; the sqlite backend keeps contacts, phones, and emails
// in separate tables. Both return an empty book when the file is missing.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// Store loads and saves a whole address book.
type Store interface {
	Load() (*book.AddressBook, error)
	Save(b *book.AddressBook) error
	Path() string
}

// Backend names.
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ResolveBackend maps "auto" (or "") to a concrete backend by file extension.
func ResolveBackend(path, backend string) string {
	if backend != "" && backend != BackendAuto {
		return backend
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	default:
		return BackendJSON
	}
}

// Open creates the store for path using the default registry.
func Open(path, backend string) (Store, error) {
	return DefaultRegistry().New(ResolveBackend(path, backend), path)
}

// fromSnapshots rebuilds a book, reporting which stored record failed.
func fromSnapshots(snaps []contact.Snapshot) (*book.AddressBook, error) {
	b := book.New()
	for i, s := range snaps {
		r, err := contact.FromSnapshot(s)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, s.Name, err)
		}
		if err := b.Add(r); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, s.Name, err)
		}
	}
	return b, nil
}

func snapshots(b *book.AddressBook) []contact.Snapshot {
	records := b.All()
	out := make([]contact.Snapshot, len(records))
	for i, r := range records {
		out[i] = r.Snapshot()
	}
	return out
}

// decodeTags accepts the tag encodings found in older books: a JSON array of
// strings or a single string holding comma-joined tags, optionally wrapped in
// brackets and quotes. The result still goes through contact.NormalizeTags.
func decodeTags(data []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list, nil
	}
	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		return []string{single}, nil
	}
	if trimmed[0] == '{' {
		return nil, fmt.Errorf("unsupported tags encoding %s", trimmed)
	}
	// Raw text such as work,urgent or [work, urgent].
	return []string{trimmed}, nil
}
