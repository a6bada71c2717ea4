package command

import (
	"fmt"
	"strings"

	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
)

// noteArgs splits [title] [text] [tags...]. tags is nil when none are given.
func noteArgs(args []string) (title, text string, tags []string, hasText bool) {
	title = args[0]
	if len(args) > 1 {
		text, hasText = args[1], true
	}
	if len(args) > 2 {
		tags = args[2:]
	}
	return title, text, tags, hasText
}

// addNote applies the notes.on_existing policy when a note is already set.
func (s *Session) addNote(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	title, text, tags, _ := noteArgs(args[1:])

	msg := fmt.Sprintf("Note added to %s's record.", name)
	if _, ok := r.Note(); ok {
		switch s.opts.NoteOnExisting {
		case config.NoteKeep:
			return fmt.Sprintf("%s already has a note; it was kept. Use 'edit-note' to change it.", name), nil
		case config.NoteReplace:
			msg = fmt.Sprintf("Note replaced in %s's record.", name)
		default:
			return "", contact.Duplicate(contact.FieldNote, name,
				"%s already has a note. Use 'edit-note' to change it.", name)
		}
	}

	if err := r.AddNoteAt(s.opts.Now(), title, text, tags); err != nil {
		return "", err
	}
	return msg, nil
}

func (s *Session) showNote(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	name := r.Name().Display()
	n, ok := r.Note()
	if !ok {
		return "", contact.NotFound(contact.FieldNote, name, "%s does not have a note. Use 'add-note' to add one.", name)
	}
	out := fmt.Sprintf("%s's note: %s", name, n)
	if created := n.CreatedString(); created != "" {
		out += " (created " + created + ")"
	}
	return out, nil
}

// editNote keeps the current text when none is given and the current tags
// when no tags are given.
func (s *Session) editNote(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	title, text, tags, hasText := noteArgs(args[1:])
	if !hasText {
		if n, ok := r.Note(); ok {
			text = n.Text
		}
	}
	if err := r.EditNote(title, text, tags); err != nil {
		return "", err
	}
	return fmt.Sprintf("Note updated in %s's record.", r.Name().Display()), nil
}

func (s *Session) removeNote(args []string) (string, error) {
	r, err := s.record(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemoveNote(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Note removed from %s's record.", r.Name().Display()), nil
}

func (s *Session) findNote(args []string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	query := strings.Join(args, " ")
	found := s.book.FindByNote(query)
	if len(found) == 0 {
		return fmt.Sprintf("No notes match '%s'.", query), nil
	}
	lines := make([]string, len(found))
	for i, r := range found {
		n, _ := r.Note()
		lines[i] = fmt.Sprintf("%s: %s", r.Name().Display(), n)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) findByTags(args []string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	tags := contact.NormalizeTags(args)
	if len(tags) == 0 {
		return "", contact.InvalidArgument(tooFewArgs)
	}
	matches := s.book.FindByTags(tags)
	if len(matches) == 0 {
		return fmt.Sprintf("No notes carry the tags: %s.", strings.Join(tags, ", ")), nil
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		n, _ := m.Record.Note()
		lines[i] = fmt.Sprintf("%s: %s (matched: %s)", m.Record.Name().Display(), n, strings.Join(m.Tags, ", "))
	}
	return strings.Join(lines, "\n"), nil
}
