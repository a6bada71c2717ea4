package contact

import "time"

// Snapshot is the plain-data form of a Record used by persistence backends.
// Empty Birthday and Address mean the slot is unset; a nil Note means no note.
type Snapshot struct {
	Name     string
	Phones   []string
	Birthday string
	Emails   []string
	Address  string
	Note     *NoteSnapshot
}

// NoteSnapshot is the plain-data form of a Note. Tags may still be in a
// legacy encoding; FromSnapshot normalizes them.
type NoteSnapshot struct {
	Title   string
	Text    string
	Tags    []string
	Created time.Time
}

// Snapshot returns the record's plain-data form.
func (r *Record) Snapshot() Snapshot {
	s := Snapshot{Name: r.name.value}
	for _, p := range r.phones {
		s.Phones = append(s.Phones, p.value)
	}
	for _, e := range r.emails {
		s.Emails = append(s.Emails, e.value)
	}
	if r.birthday != nil {
		s.Birthday = r.birthday.String()
	}
	if r.address != nil {
		s.Address = r.address.value
	}
	if r.note != nil {
		s.Note = &NoteSnapshot{
			Title:   r.note.Title,
			Text:    r.note.Text,
			Tags:    append([]string(nil), r.note.Tags...),
			Created: r.note.Created,
		}
	}
	return s
}

// FromSnapshot rebuilds a Record, validating every field on the way in.
func FromSnapshot(s Snapshot) (*Record, error) {
	r, err := NewRecord(s.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range s.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	for _, e := range s.Emails {
		if err := r.AddEmail(e); err != nil {
			return nil, err
		}
	}
	if s.Birthday != "" {
		if err := r.AddBirthday(s.Birthday); err != nil {
			return nil, err
		}
	}
	if s.Address != "" {
		r.AddAddress(s.Address)
	}
	if s.Note != nil {
		if err := r.AddNoteAt(s.Note.Created, s.Note.Title, s.Note.Text, s.Note.Tags); err != nil {
			return nil, err
		}
	}
	return r, nil
}
