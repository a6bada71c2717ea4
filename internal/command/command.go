// Package command turns line commands into address-book operations.
//
// A Session owns the in-memory book for one run. Execute tokenizes a line,
// looks the command up in the dispatch table, checks the argument count,
// and runs the handler. Handlers return user-facing text; failures are
// *contact.Error values that Describe turns into text.
package command

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex"
	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/card"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
)

const tooFewArgs = "Too few arguments were given. Use 'help' for additional info."

// Options configures a Session.
type Options struct {
	PageSize       int
	BirthdayWindow int
	// NoteOnExisting is one of config.NoteError, NoteKeep, NoteReplace.
	NoteOnExisting string
	ExportPath     string
	Renderer       *card.Renderer
	Logger         *zap.Logger
	Now            func() time.Time
}

// Result is the outcome of one successful command.
type Result struct {
	Output string
	// Exit is set by exit/close.
	Exit bool
}

// Session executes commands against one address book.
type Session struct {
	book  *book.AddressBook
	opts  Options
	pager PaginationState
}

// NewSession creates a Session over b. Zero-valued options fall back to
// the config defaults.
func NewSession(b *book.AddressBook, opts Options) *Session {
	def := config.DefaultConfig()
	if opts.PageSize < 1 {
		opts.PageSize = def.Display.PageSize
	}
	if opts.BirthdayWindow < 1 {
		opts.BirthdayWindow = def.Birthdays.Window
	}
	if opts.NoteOnExisting == "" {
		opts.NoteOnExisting = def.Notes.OnExisting
	}
	if opts.ExportPath == "" {
		opts.ExportPath = "addressbook.vcf"
	}
	if opts.Renderer == nil {
		opts.Renderer = card.NewRenderer(rolodex.Templates)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{
		book:  b,
		opts:  opts,
		pager: PaginationState{Page: 1, PageSize: opts.PageSize},
	}
}

// Book returns the session's address book.
func (s *Session) Book() *book.AddressBook { return s.book }

// Pagination returns the current listing page.
func (s *Session) Pagination() PaginationState { return s.pager }

type handler func(s *Session, args []string) (string, error)

type entry struct {
	minArgs int
	run     handler
}

var commands map[string]entry

func init() {
	commands = map[string]entry{
		"hello": {0, func(*Session, []string) (string, error) { return "How can I help you?", nil }},
		"help":  {0, (*Session).help},

		"add":    {2, (*Session).addContact},
		"change": {3, (*Session).changePhone},
		"phone":  {1, (*Session).showPhone},
		"remove": {2, (*Session).removePhone},
		"search": {1, (*Session).search},
		"delete": {1, (*Session).deleteContact},
		"card":   {1, (*Session).card},
		"all":    {0, (*Session).all},
		"next":   {0, (*Session).next},
		"prev":   {0, (*Session).prev},

		"add-birthday":    {2, (*Session).addBirthday},
		"change-birthday": {2, (*Session).changeBirthday},
		"show-birthday":   {1, (*Session).showBirthday},
		"birthdays":       {0, (*Session).birthdays},

		"add-email":    {2, (*Session).addEmail},
		"change-email": {3, (*Session).changeEmail},
		"show-email":   {1, (*Session).showEmail},
		"remove-email": {2, (*Session).removeEmail},
		"emails":       {0, (*Session).emails},

		"add-address":    {2, (*Session).addAddress},
		"change-address": {2, (*Session).changeAddress},
		"show-address":   {1, (*Session).showAddress},

		"add-note":     {2, (*Session).addNote},
		"show-note":    {1, (*Session).showNote},
		"edit-note":    {2, (*Session).editNote},
		"remove-note":  {1, (*Session).removeNote},
		"find-note":    {1, (*Session).findNote},
		"find-by-tags": {1, (*Session).findByTags},

		"export": {0, (*Session).export},
	}
}

// Names returns every command name, including exit and close.
func Names() []string {
	names := make([]string, 0, len(commands)+2)
	for name := range commands {
		names = append(names, name)
	}
	return append(names, "exit", "close")
}

// Execute runs one command line.
func (s *Session) Execute(line string) (Result, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return Result{}, err
	}
	return s.Run(tokens)
}

// Run executes an already tokenized command: the name followed by its
// arguments.
func (s *Session) Run(tokens []string) (Result, error) {
	if len(tokens) == 0 {
		return Result{}, contact.InvalidArgument(tooFewArgs)
	}

	name, args := strings.ToLower(tokens[0]), tokens[1:]
	if name == "exit" || name == "close" {
		return Result{Output: "Goodbye!", Exit: true}, nil
	}

	e, ok := commands[name]
	if !ok {
		return Result{}, contact.InvalidArgument("Unknown command was given. Use 'help' for additional info.")
	}
	if len(args) < e.minArgs {
		return Result{}, contact.InvalidArgument(tooFewArgs)
	}

	out, err := e.run(s, args)
	if err != nil {
		s.opts.Logger.Debug("command failed", zap.String("command", name), zap.Error(err))
		return Result{}, err
	}
	return Result{Output: out}, nil
}

// Describe maps an error to the text shown to the user.
func Describe(err error) string {
	var ce *contact.Error
	if !errors.As(err, &ce) {
		return "Something went wrong: " + err.Error()
	}
	if ce.Message != "" {
		return ce.Message
	}
	switch ce.Kind {
	case contact.KindValidation:
		return "The given value is not valid."
	case contact.KindNotFound:
		return "Given username was not found in the contact list."
	case contact.KindDuplicate:
		return "That value is already saved."
	case contact.KindEmpty:
		return "Address book is empty. Add a contact with 'add' command."
	default:
		return tooFewArgs
	}
}

func (s *Session) help([]string) (string, error) {
	return s.opts.Renderer.Help(card.HelpContext{
		PageSize:   s.opts.PageSize,
		Window:     s.opts.BirthdayWindow,
		ExportPath: s.opts.ExportPath,
	})
}

// record finds name or returns a not-found error.
func (s *Session) record(name string) (*contact.Record, error) {
	r, ok := s.book.Find(name)
	if !ok {
		return nil, contact.NotFound(contact.FieldName, contact.Capitalize(name), "Given username was not found in the contact list.")
	}
	return r, nil
}

func (s *Session) requireRecords() error {
	if s.book.Len() == 0 {
		return contact.Empty("Address book is empty. Add a contact with 'add' command.")
	}
	return nil
}
