package contact

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the DD.MM.YYYY layout used for birthdays everywhere.
const DateLayout = "02.01.2006"

var (
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
)

// Phone is a validated phone number: 10 to 15 digits with an optional
// leading '+'. Two phones are equal when their strings are equal.
type Phone struct {
	value string
}

// NewPhone validates raw as a phone number.
func NewPhone(raw string) (Phone, error) {
	if !phonePattern.MatchString(raw) {
		return Phone{}, validationError(FieldPhone, "Phone number must consist of 10 to 15 digits with an optional leading '+', got %q.", raw)
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string {
	return p.value
}

// Birthday is a validated calendar date.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw as a DD.MM.YYYY date. Impossible dates such as
// 31.02.2020 are rejected.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Birthday{}, validationError(FieldBirthday, "Invalid date %q. Use DD.MM.YYYY.", raw)
	}
	return Birthday{date: t}, nil
}

// Date returns the birthday as a UTC midnight time.
func (b Birthday) Date() time.Time {
	return b.date
}

func (b Birthday) String() string {
	return b.date.Format(DateLayout)
}

// Email is a validated email address.
type Email struct {
	value string
}

// NewEmail validates raw as local@domain.tld.
func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, validationError(FieldEmail, "Invalid email address %q.", raw)
	}
	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}

// Address is a free-form residential address, stored title-cased.
type Address struct {
	value string
}

// NewAddress never fails; the value is trimmed and each word capitalized.
func NewAddress(raw string) Address {
	return Address{value: Capitalize(strings.TrimSpace(raw))}
}

func (a Address) String() string {
	return a.value
}
