package contact

import "fmt"

// Kind classifies address-book errors so callers can branch without
// inspecting message text.
type Kind string

const (
	// KindValidation indicates a field value failed its format rule.
	KindValidation Kind = "validation"
	// KindNotFound indicates a required name, phone, email, or slot is absent.
	KindNotFound Kind = "not_found"
	// KindDuplicate indicates a value or single-occupancy slot is already taken.
	KindDuplicate Kind = "duplicate"
	// KindEmpty indicates an operation that needs records ran on an empty book.
	KindEmpty Kind = "empty"
	// KindInvalidArgument indicates malformed command arguments.
	KindInvalidArgument Kind = "invalid_argument"
)

// Field names the part of a contact an error refers to.
type Field string

const (
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldBirthday Field = "birthday"
	FieldEmail    Field = "email"
	FieldAddress  Field = "address"
	FieldNote     Field = "note"
)

// Error is the typed error returned by every core operation.
//
// Subject is the display name of the contact involved, when there is one.
type Error struct {
	Kind    Kind
	Field   Field
	Subject string
	Message string
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e == nil {
		return "contact: <nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return fmt.Sprintf("contact: %s: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("contact: %s", e.Kind)
}

// Is matches sentinels by kind, and by field when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// Sentinels for errors.Is checks.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrDuplicate       = &Error{Kind: KindDuplicate}
	ErrEmpty           = &Error{Kind: KindEmpty}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}

	ErrDuplicateName     = &Error{Kind: KindDuplicate, Field: FieldName}
	ErrDuplicatePhone    = &Error{Kind: KindDuplicate, Field: FieldPhone}
	ErrDuplicateEmail    = &Error{Kind: KindDuplicate, Field: FieldEmail}
	ErrDuplicateBirthday = &Error{Kind: KindDuplicate, Field: FieldBirthday}
	ErrDuplicateAddress  = &Error{Kind: KindDuplicate, Field: FieldAddress}
	ErrDuplicateNote     = &Error{Kind: KindDuplicate, Field: FieldNote}
	ErrNoNote            = &Error{Kind: KindNotFound, Field: FieldNote}
)

func validationError(field Field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error for field on the named contact.
func NotFound(field Field, subject, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Field: field, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Duplicate builds a duplicate error for field on the named contact.
func Duplicate(field Field, subject, format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Field: field, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument builds an invalid-argument error.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Empty builds an empty-collection error.
func Empty(format string, args ...any) *Error {
	return &Error{Kind: KindEmpty, Message: fmt.Sprintf(format, args...)}
}
