// Package card renders contacts through text/template files: the full
// contact card, the vCard 3.0 export, and the help text.
package card

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

// ErrEmpty indicates a template file exists but contains no content.
var ErrEmpty = errors.New("card: empty template file")

// Template names, without the .tmpl extension.
const (
	CardTemplate  = "card"
	VCardTemplate = "vcard"
	HelpTemplate  = "help"
)

// View is the template-facing projection of a contact.
type View struct {
	Name        string
	Phones      []string
	Emails      []string
	Birthday    string
	BirthdayISO string
	Address     string
	Note        *NoteView
}

// NoteView is the template-facing projection of a note.
type NoteView struct {
	Title   string
	Text    string
	Tags    []string
	Created string
}

// HelpContext holds the values interpolated into the help text.
type HelpContext struct {
	PageSize   int
	Window     int
	ExportPath string
}

// Renderer reads templates from a filesystem.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer that reads <name>.tmpl files from fsys.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Load reads the named template. It must exist and be non-empty.
func (r *Renderer) Load(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("card: invalid template name %q", name)
	}
	data, err := fs.ReadFile(r.fsys, name+".tmpl")
	if err != nil {
		return "", fmt.Errorf("card: loading %s: %w", name, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	return string(data), nil
}

// Card renders the full contact card for rec.
func (r *Renderer) Card(rec *contact.Record) (string, error) {
	out, err := r.compose(CardTemplate, NewView(rec))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// VCard renders records as a vCard 3.0 stream with CRLF line endings.
func (r *Renderer) VCard(records []*contact.Record) (string, error) {
	views := make([]View, len(records))
	for i, rec := range records {
		views[i] = NewView(rec)
	}
	out, err := r.compose(VCardTemplate, views)
	if err != nil {
		return "", err
	}
	out = strings.ReplaceAll(out, "\r\n", "\n")
	return strings.ReplaceAll(out, "\n", "\r\n"), nil
}

// Help renders the command reference.
func (r *Renderer) Help(ctx HelpContext) (string, error) {
	out, err := r.compose(HelpTemplate, ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func (r *Renderer) compose(name string, data any) (string, error) {
	raw, err := r.Load(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", fmt.Errorf("card: parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("card: executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// NewView projects rec into template data.
func NewView(rec *contact.Record) View {
	v := View{Name: rec.Name().Display()}
	for _, p := range rec.Phones() {
		v.Phones = append(v.Phones, p.String())
	}
	for _, e := range rec.Emails() {
		v.Emails = append(v.Emails, e.String())
	}
	if b, ok := rec.Birthday(); ok {
		v.Birthday = b.String()
		v.BirthdayISO = b.Date().Format(time.DateOnly)
	}
	if a, ok := rec.Address(); ok {
		v.Address = a.String()
	}
	if n, ok := rec.Note(); ok {
		v.Note = &NoteView{Title: n.Title, Text: n.Text, Tags: n.Tags, Created: n.CreatedString()}
	}
	return v
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"vesc":  escapeText,
	"vcats": categories,
}

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// escapeText escapes a vCard TEXT value.
func escapeText(s string) string {
	return vcardEscaper.Replace(s)
}

// categories joins tags into a CATEGORIES value; commas separate entries.
func categories(tags []string) string {
	escaped := make([]string, len(tags))
	for i, t := range tags {
		escaped[i] = escapeText(t)
	}
	return strings.Join(escaped, ",")
}
