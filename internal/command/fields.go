package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smileynet/rolodex/internal/birthday"
	"github.com/smileynet/rolodex/internal/contact"
)

// --- Birthday ---

func (s *Session) addBirthday(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	if _, ok := r.Birthday(); ok {
		return "", contact.Duplicate(contact.FieldBirthday, name,
			"%s's birthday is already set. Use 'change-birthday' to edit the date.", name)
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday added to %s's record.", name), nil
}

func (s *Session) changeBirthday(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	old, ok := r.Birthday()
	if !ok {
		return "", contact.NotFound(contact.FieldBirthday, name,
			"%s does not have a birthday date set. Use 'add-birthday' to add the date.", name)
	}
	next, err := contact.NewBirthday(args[1])
	if err != nil {
		return "", err
	}
	if next.String() == old.String() {
		return "", contact.Duplicate(contact.FieldBirthday, name,
			"%s's birthday is already %s.", name, old)
	}
	if err := r.ChangeBirthday(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Birthday updated in %s's record.", name), nil
}

func (s *Session) showBirthday(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	b, ok := r.Birthday()
	if !ok {
		return "", contact.NotFound(contact.FieldBirthday, name,
			"%s does not have a birthday date set. Use 'add-birthday' to add the date.", name)
	}
	return fmt.Sprintf("%s's birthday: %s", name, b), nil
}

// birthdays lists greeting dates within the window, the configured one
// unless a day count is given.
func (s *Session) birthdays(args []string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	days := s.opts.BirthdayWindow
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", contact.InvalidArgument("Number of days must be a whole number, got '%s'.", args[0])
		}
		days = n
	}

	greetings, err := birthday.Upcoming(s.book, s.opts.Now(), days)
	if err != nil {
		return "", err
	}
	if len(greetings) == 0 {
		return fmt.Sprintf("No upcoming birthdays in the next %d days.", days), nil
	}
	lines := make([]string, len(greetings))
	for i, g := range greetings {
		lines[i] = fmt.Sprintf("%s: %s", g.Name.Display(), g.DateString())
	}
	return strings.Join(lines, "\n"), nil
}

// --- Email ---

func (s *Session) addEmail(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddEmail(args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Email added to %s's record.", r.Name().Display()), nil
}

// withEmails finds name and requires at least one saved email.
func (s *Session) withEmails(name string) (*contact.Record, error) {
	r, err := s.record(name)
	if err != nil {
		return nil, err
	}
	if len(r.Emails()) == 0 {
		display := r.Name().Display()
		return nil, contact.NotFound(contact.FieldEmail, display,
			"%s does not have any email addresses set. Use 'add-email' to add the address.", display)
	}
	return r, nil
}

func (s *Session) changeEmail(args []string) (string, error) {
	r, err := s.withEmails(args[0])
	if err != nil {
		return "", err
	}
	if err := r.ChangeEmail(args[1], args[2]); err != nil {
		return "", err
	}
	return "Email updated.", nil
}

func (s *Session) showEmail(args []string) (string, error) {
	r, err := s.withEmails(args[0])
	if err != nil {
		return "", err
	}
	emails := r.Emails()
	values := make([]string, len(emails))
	for i, e := range emails {
		values[i] = e.String()
	}
	return fmt.Sprintf("%s's emails: %s", r.Name().Display(), strings.Join(values, ", ")), nil
}

func (s *Session) removeEmail(args []string) (string, error) {
	r, err := s.withEmails(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemoveEmail(args[1]); err != nil {
		return "", err
	}
	return "Email removed.", nil
}

func (s *Session) emails([]string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	entries := s.book.Emails()
	if len(entries) == 0 {
		return "No email addresses are saved yet.", nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s: %s", e.Name.Display(), e.Email)
	}
	return strings.Join(lines, "\n"), nil
}

// --- Address ---

func (s *Session) addAddress(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	if _, ok := r.Address(); ok {
		return "", contact.Duplicate(contact.FieldAddress, name,
			"%s already has a residential address. Use 'change-address' to edit it.", name)
	}
	addr, err := addressArg(args[1:])
	if err != nil {
		return "", err
	}
	r.AddAddress(addr)
	return fmt.Sprintf("Address added to %s's record.", name), nil
}

func (s *Session) changeAddress(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	addr, err := addressArg(args[1:])
	if err != nil {
		return "", err
	}
	r.ChangeAddress(addr)
	return fmt.Sprintf("Address updated in %s's record.", r.Name().Display()), nil
}

// addressArg joins the address words, rejecting a blank address.
func addressArg(words []string) (string, error) {
	addr := strings.TrimSpace(strings.Join(words, " "))
	if addr == "" {
		return "", contact.InvalidArgument(tooFewArgs)
	}
	return addr, nil
}

func (s *Session) showAddress(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	a, ok := r.Address()
	if !ok {
		return "", contact.NotFound(contact.FieldAddress, name,
			"%s does not have a residential address set. Use 'add-address' to add the address.", name)
	}
	return fmt.Sprintf("%s's address: %s", name, a), nil
}
