package contact

import (
	"slices"
	"strings"
	"time"
)

// Record is one contact. It owns its phones, emails, birthday, address, and
// note, and every mutation either succeeds fully or leaves it unchanged.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
	emails   []Email
	address  *Address
	note     *Note
}

// NewRecord creates an empty record for a validated name.
func NewRecord(rawName string) (*Record, error) {
	n, err := NewName(rawName)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Emails returns a copy of the emails in insertion order.
func (r *Record) Emails() []Email { return slices.Clone(r.emails) }

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// Address returns the address and whether one is set.
func (r *Record) Address() (Address, bool) {
	if r.address == nil {
		return Address{}, false
	}
	return *r.address, true
}

// Note returns a copy of the note and whether one is set.
func (r *Record) Note() (Note, bool) {
	if r.note == nil {
		return Note{}, false
	}
	n := *r.note
	n.Tags = slices.Clone(n.Tags)
	return n, true
}

// --- Phones ---

// FindPhone returns the phone equal to raw, if present.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := r.phoneIndex(raw)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

func (r *Record) phoneIndex(raw string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == raw })
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if r.phoneIndex(raw) >= 0 {
		return Duplicate(FieldPhone, r.name.Display(), "Given phone number is already in %s's record.", r.name.Display())
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes raw from the record.
func (r *Record) RemovePhone(raw string) error {
	i := r.phoneIndex(raw)
	if i < 0 {
		return NotFound(FieldPhone, r.name.Display(), "Phone number %s not found in %s's record.", raw, r.name.Display())
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw in place.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.phoneIndex(oldRaw)
	if i < 0 {
		return NotFound(FieldPhone, r.name.Display(), "Phone number %s not found in %s's record.", oldRaw, r.name.Display())
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	if newRaw != oldRaw && r.phoneIndex(newRaw) >= 0 {
		return Duplicate(FieldPhone, r.name.Display(), "Given phone number is already in %s's record.", r.name.Display())
	}
	r.phones[i] = p
	return nil
}

// --- Birthday ---

// AddBirthday validates raw and sets the birthday slot.
// Whether an existing birthday may be replaced is decided by the caller.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// ChangeBirthday validates raw and replaces the birthday slot.
func (r *Record) ChangeBirthday(raw string) error {
	return r.AddBirthday(raw)
}

// --- Emails ---

func (r *Record) emailIndex(raw string) int {
	return slices.IndexFunc(r.emails, func(e Email) bool { return e.value == raw })
}

// AddEmail validates raw and appends it.
func (r *Record) AddEmail(raw string) error {
	e, err := NewEmail(raw)
	if err != nil {
		return err
	}
	if r.emailIndex(raw) >= 0 {
		return Duplicate(FieldEmail, r.name.Display(), "Given email is already in %s's record.", r.name.Display())
	}
	r.emails = append(r.emails, e)
	return nil
}

// ChangeEmail replaces oldRaw with newRaw in place.
func (r *Record) ChangeEmail(oldRaw, newRaw string) error {
	i := r.emailIndex(oldRaw)
	if i < 0 {
		return NotFound(FieldEmail, r.name.Display(), "Email %s not found in %s's record.", oldRaw, r.name.Display())
	}
	e, err := NewEmail(newRaw)
	if err != nil {
		return err
	}
	if newRaw != oldRaw && r.emailIndex(newRaw) >= 0 {
		return Duplicate(FieldEmail, r.name.Display(), "Given email is already in %s's record.", r.name.Display())
	}
	r.emails[i] = e
	return nil
}

// RemoveEmail removes raw from the record.
func (r *Record) RemoveEmail(raw string) error {
	i := r.emailIndex(raw)
	if i < 0 {
		return NotFound(FieldEmail, r.name.Display(), "Email %s not found in %s's record.", raw, r.name.Display())
	}
	r.emails = slices.Delete(r.emails, i, i+1)
	return nil
}

// --- Address ---

// AddAddress sets the address slot. A blank address clears it.
func (r *Record) AddAddress(raw string) {
	a := NewAddress(raw)
	if a.value == "" {
		r.address = nil
		return
	}
	r.address = &a
}

// ChangeAddress replaces the address slot.
func (r *Record) ChangeAddress(raw string) {
	r.AddAddress(raw)
}

// --- Note ---

// AddNote sets the note slot, overwriting any existing note, stamped with
// the current time.
func (r *Record) AddNote(title, text string, tags []string) error {
	return r.AddNoteAt(time.Now(), title, text, tags)
}

// AddNoteAt is AddNote with an explicit creation time.
func (r *Record) AddNoteAt(created time.Time, title, text string, tags []string) error {
	n, err := NewNote(title, text, tags)
	if err != nil {
		return err
	}
	n.Created = created.UTC().Truncate(time.Second)
	r.note = &n
	return nil
}

// EditNote updates the existing note. A nil tags slice keeps the current tags.
func (r *Record) EditNote(title, text string, tags []string) error {
	if r.note == nil {
		return r.noNote()
	}
	if tags == nil {
		tags = r.note.Tags
	}
	n, err := NewNote(title, text, tags)
	if err != nil {
		return err
	}
	n.Created = r.note.Created
	r.note = &n
	return nil
}

// RemoveNote clears the note slot.
func (r *Record) RemoveNote() error {
	if r.note == nil {
		return r.noNote()
	}
	r.note = nil
	return nil
}

func (r *Record) noNote() error {
	return NotFound(FieldNote, r.name.Display(), "%s does not have a note. Use 'add-note' to add one.", r.name.Display())
}

// String renders the one-line summary used by listings.
func (r *Record) String() string {
	var b strings.Builder
	if len(r.phones) > 0 {
		b.WriteString("Contact name: ")
		b.WriteString(r.name.Display())
		b.WriteString(", phones: ")
		for i, p := range r.phones {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(p.value)
		}
	} else {
		b.WriteString("There are no phones in ")
		b.WriteString(r.name.Display())
		b.WriteString("'s record")
	}
	if r.note != nil {
		b.WriteString(", note: ")
		b.WriteString(r.note.Title)
		if len(r.note.Tags) > 0 {
			b.WriteString(" [tags: ")
			b.WriteString(strings.Join(r.note.Tags, ", "))
			b.WriteString("]")
		}
	}
	return b.String()
}
