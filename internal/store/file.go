package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// formatVersion is written into every JSON document.
const formatVersion = 1

// Compile-time check: FileStore satisfies Store.
var _ Store = (*FileStore)(nil)

// FileStore persists the address book as a single JSON document.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

type document struct {
	Version  int         `json:"version"`
	Contacts []recordDTO `json:"contacts"`
}

type recordDTO struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
	Emails   []string `json:"emails,omitempty"`
	Address  string   `json:"address,omitempty"`
	Note     *noteDTO `json:"note,omitempty"`
}

type noteDTO struct {
	Title   string     `json:"title"`
	Text    string     `json:"text,omitempty"`
	Tags    tagList    `json:"tags,omitempty"`
	Created *time.Time `json:"created_at,omitempty"`
}

// tagList decodes both a tag array and a legacy comma-joined string.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	tags, err := decodeTags(data)
	if err != nil {
		return err
	}
	*t = tags
	return nil
}

// Save writes the whole book, replacing the file.
func (s *FileStore) Save(b *book.AddressBook) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: creating directory: %w", err)
		}
	}

	doc := document{Version: formatVersion, Contacts: []recordDTO{}}
	for _, snap := range snapshots(b) {
		doc.Contacts = append(doc.Contacts, toDTO(snap))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the book. A missing file yields an empty book.
func (s *FileStore) Load() (*book.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(), nil
		}
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return book.New(), nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}

	snaps := make([]contact.Snapshot, len(doc.Contacts))
	for i, d := range doc.Contacts {
		snaps[i] = fromDTO(d)
	}
	b, err := fromSnapshots(snaps)
	if err != nil {
		return nil, fmt.Errorf("store: loading %s: %w", s.path, err)
	}
	return b, nil
}

func toDTO(s contact.Snapshot) recordDTO {
	d := recordDTO{
		Name:     s.Name,
		Phones:   s.Phones,
		Birthday: s.Birthday,
		Emails:   s.Emails,
		Address:  s.Address,
	}
	if s.Note != nil {
		d.Note = &noteDTO{Title: s.Note.Title, Text: s.Note.Text, Tags: s.Note.Tags}
		if !s.Note.Created.IsZero() {
			created := s.Note.Created
			d.Note.Created = &created
		}
	}
	return d
}

func fromDTO(d recordDTO) contact.Snapshot {
	s := contact.Snapshot{
		Name:     d.Name,
		Phones:   d.Phones,
		Birthday: d.Birthday,
		Emails:   d.Emails,
		Address:  d.Address,
	}
	if d.Note != nil {
		s.Note = &contact.NoteSnapshot{Title: d.Note.Title, Text: d.Note.Text, Tags: d.Note.Tags}
		if d.Note.Created != nil {
			s.Note.Created = *d.Note.Created
		}
	}
	return s
}
