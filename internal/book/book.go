// Package book implements the AddressBook: an insertion-ordered collection of
// contact records keyed by folded name.
package book

import (
	"slices"
	"strings"

	"github.com/smileynet/rolodex/internal/contact"
)

// AddressBook owns every Record. It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*contact.Record
	order   []string
}

// New creates an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*contact.Record)}
}

// TagMatch pairs a record with the requested tags its note carries.
type TagMatch struct {
	Record *contact.Record
	Tags   []string
}

// Add inserts r keyed by its folded name.
func (b *AddressBook) Add(r *contact.Record) error {
	key := r.Name().String()
	if _, exists := b.records[key]; exists {
		return contact.Duplicate(contact.FieldName, r.Name().Display(), "Name %s is already in the address book.", r.Name().Display())
	}
	b.records[key] = r
	b.order = append(b.order, key)
	return nil
}

// Find returns the record whose name equals name, ignoring case.
func (b *AddressBook) Find(name string) (*contact.Record, bool) {
	r, ok := b.records[contact.FoldName(name)]
	return r, ok
}

// Delete removes the record named name. Deleting an absent name is a no-op;
// the result reports whether a record was removed.
func (b *AddressBook) Delete(name string) bool {
	key := contact.FoldName(name)
	if _, ok := b.records[key]; !ok {
		return false
	}
	delete(b.records, key)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == key })
	return true
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// All returns every record in insertion order.
func (b *AddressBook) All() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.records[k])
	}
	return out
}

// SearchByName returns records whose name contains query, ignoring case.
func (b *AddressBook) SearchByName(query string) []*contact.Record {
	q := contact.FoldName(query)
	var out []*contact.Record
	for _, r := range b.All() {
		if strings.Contains(r.Name().String(), q) {
			out = append(out, r)
		}
	}
	return out
}

// FindByNote returns records whose note title or text contains query,
// ignoring case. Records without a note are skipped.
func (b *AddressBook) FindByNote(query string) []*contact.Record {
	var out []*contact.Record
	for _, r := range b.All() {
		n, ok := r.Note()
		if !ok {
			continue
		}
		if n.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}

// FindByTags returns, for every record whose note shares at least one tag
// with tags, the folded requested tags it carries, in request order.
func (b *AddressBook) FindByTags(tags []string) []TagMatch {
	wanted := contact.NormalizeTags(tags)
	var out []TagMatch
	for _, r := range b.All() {
		n, ok := r.Note()
		if !ok || len(n.Tags) == 0 {
			continue
		}
		var matched []string
		for _, t := range wanted {
			if n.HasTag(t) {
				matched = append(matched, contact.FoldName(t))
			}
		}
		if len(matched) > 0 {
			out = append(out, TagMatch{Record: r, Tags: matched})
		}
	}
	return out
}

// EmailEntry is one email address with its owner.
type EmailEntry struct {
	Name  contact.Name
	Email contact.Email
}

// Emails lists every email in the book, grouped by record in book order.
func (b *AddressBook) Emails() []EmailEntry {
	var out []EmailEntry
	for _, r := range b.All() {
		for _, e := range r.Emails() {
			out = append(out, EmailEntry{Name: r.Name(), Email: e})
		}
	}
	return out
}

// String renders one summary line per record.
func (b *AddressBook) String() string {
	lines := make([]string, 0, len(b.order))
	for _, r := range b.All() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
