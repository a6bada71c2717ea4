package command

import (
	"fmt"
	"strings"

	"github.com/smileynet/rolodex/internal/contact"
)

// addContact creates the contact with its first phone, or adds the phone
// to an existing contact.
func (s *Session) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]
	if r, ok := s.book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		return "Contact updated.", nil
	}

	r, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	if err := s.book.Add(r); err != nil {
		return "", err
	}
	return "Contact added.", nil
}

func (s *Session) changePhone(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

func (s *Session) showPhone(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (s *Session) removePhone(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return "Phone number removed.", nil
}

func (s *Session) search(args []string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	query := strings.Join(args, " ")
	found := s.book.SearchByName(query)
	if len(found) == 0 {
		return fmt.Sprintf("No contacts match '%s'.", query), nil
	}
	lines := make([]string, len(found))
	for i, r := range found {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) deleteContact(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	s.book.Delete(args[0])
	return fmt.Sprintf("Contact %s deleted.", r.Name().Display()), nil
}

func (s *Session) card(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	return s.opts.Renderer.Card(r)
}

// all resets the listing to the first page.
func (s *Session) all([]string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	s.pager.Reset()
	return s.page(), nil
}

func (s *Session) next([]string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	if err := s.pager.Next(s.book.Len()); err != nil {
		return "", err
	}
	return s.page(), nil
}

func (s *Session) prev([]string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	if err := s.pager.Prev(s.book.Len()); err != nil {
		return "", err
	}
	return s.page(), nil
}

// page renders the current listing page, with a footer when the book
// spans more than one page.
func (s *Session) page() string {
	records := s.book.All()
	start, end := s.pager.Bounds(len(records))

	var b strings.Builder
	for i, r := range records[start:end] {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.String())
	}
	if pages := s.pager.Pages(len(records)); pages > 1 {
		fmt.Fprintf(&b, "\nPage %d of %d", s.pager.Page, pages)
	}
	return b.String()
}
