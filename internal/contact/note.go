package contact

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// CreatedLayout formats a note's creation time for display.
const CreatedLayout = "2006-01-02 15:04 MST"

// Note is the single titled note a contact may carry.
type Note struct {
	Title string
	Text  string
	Tags  []string
	// Created is when the note was added, in UTC to the second. Zero for
	// notes loaded from books that never recorded it.
	Created time.Time
}

// NewNote trims title and text and normalizes tags.
// An empty title after trimming is a validation error.
func NewNote(title, text string, tags []string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, validationError(FieldNote, "Note title cannot be empty.")
	}
	return Note{
		Title: title,
		Text:  strings.TrimSpace(text),
		Tags:  NormalizeTags(tags),
	}, nil
}

// CreatedString returns the formatted creation time, or "" when unknown.
func (n Note) CreatedString() string {
	if n.Created.IsZero() {
		return ""
	}
	return n.Created.Format(CreatedLayout)
}

// HasTag reports whether the note carries tag, ignoring case.
func (n Note) HasTag(tag string) bool {
	want := cases.Fold().String(strings.TrimSpace(tag))
	for _, t := range n.Tags {
		if cases.Fold().String(t) == want {
			return true
		}
	}
	return false
}

// Matches reports whether the title or text contains query, ignoring case.
func (n Note) Matches(query string) bool {
	q := cases.Fold().String(query)
	return strings.Contains(cases.Fold().String(n.Title), q) ||
		strings.Contains(cases.Fold().String(n.Text), q)
}

func (n Note) String() string {
	var b strings.Builder
	b.WriteString(n.Title)
	if n.Text != "" {
		b.WriteString(": ")
		b.WriteString(n.Text)
	}
	if len(n.Tags) > 0 {
		b.WriteString(" [tags: ")
		b.WriteString(strings.Join(n.Tags, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// NormalizeTags flattens the tag encodings found in stored books into one
// ordered list. Each entry may be a single tag, a comma-joined list, or a
// bracket- or quote-wrapped list such as `["work,urgent"]`. Empty entries are
// dropped and duplicates are removed case-insensitively, keeping the first
// spelling.
func NormalizeTags(raw []string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, entry := range raw {
		for _, part := range strings.Split(unwrapTags(entry), ",") {
			tag := strings.Trim(strings.TrimSpace(part), `"'`)
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := cases.Fold().String(tag)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// unwrapTags strips any combination of surrounding brackets and quotes.
func unwrapTags(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '[' && last == ']') || (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}
