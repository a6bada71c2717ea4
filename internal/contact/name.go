// Package contact holds the contact data model: validated field values,
// notes with tags, and the Record aggregate that owns them.
package contact

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name is a validated contact name. The stored value is case-folded and is
// the identity used to key the address book.
type Name struct {
	value string
}

// NewName validates raw and returns its folded Name.
// Names must be non-empty and consist of letters only.
func NewName(raw string) (Name, error) {
	if raw == "" {
		return Name{}, validationError(FieldName, "Name cannot be empty.")
	}
	for _, r := range raw {
		if !unicode.IsLetter(r) {
			return Name{}, validationError(FieldName, "Name must be alphabetic, got %q.", raw)
		}
	}
	return Name{value: FoldName(raw)}, nil
}

// FoldName returns the case-insensitive lookup key for s without validating it.
func FoldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// String returns the folded name.
func (n Name) String() string {
	return n.value
}

// Display returns the name capitalized for output, e.g. "anna" -> "Anna".
func (n Name) Display() string {
	return Capitalize(n.value)
}

// Capitalize upper-cases the first letter of each word and lower-cases the rest.
func Capitalize(s string) string {
	return cases.Title(language.Und).String(s)
}
