package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plx-dev/plx/internal/models"
)

// formField pairs a named textinput with its label so validation errors can
// be attached per field.
type formField struct {
	name  string
	label string
	input textinput.Model
}

// form is a vertical stack of text inputs with per-field validation errors.
// Editing a field clears that field's error while leaving the others alone.
type form struct {
	title  string
	fields []formField
	errors models.FieldErrors
	focus  int
}

func newForm(title string, fields ...formField) *form {
	f := &form{title: title, fields: fields, errors: models.FieldErrors{}}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func newField(name, label, placeholder string, secret bool) formField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 128
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	return formField{name: name, label: label, input: input}
}

func newLoginForm() *form {
	return newForm("Sign In",
		newField("email", "Email", "you@example.com", false),
		newField("password", "Password", "", true),
	)
}

func newRegisterForm() *form {
	return newForm("Create Account",
		newField("name", "Full Name", "", false),
		newField("email", "Email", "you@example.com", false),
		newField("password", "Password", "", true),
	)
}

func newPlaylistForm(initial models.Playlist) *form {
	name := newField("name", "Name", "My Playlist", false)
	desc := newField("description", "Description", "", false)
	name.input.SetValue(initial.Name)
	desc.input.SetValue(initial.Description)

	title := "New Playlist"
	if initial.ID != "" {
		title = "Edit Playlist"
	}
	return newForm(title, name, desc)
}

// next moves focus to the following field, wrapping around.
func (f *form) next() {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// update routes msg to the focused input. Any edit clears the focused
// field's validation error.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	before := f.fields[f.focus].input.Value()
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	if f.fields[f.focus].input.Value() != before {
		delete(f.errors, f.fields[f.focus].name)
	}
	return cmd
}

func (f *form) value(name string) string {
	for _, field := range f.fields {
		if field.name == name {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

func (f *form) setErrors(errors models.FieldErrors) {
	f.errors = errors
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")

	for _, field := range f.fields {
		b.WriteString(fmt.Sprintf("\n%s\n%s\n", styles.field.Render(field.label), field.input.View()))
		if msg, ok := f.errors[field.name]; ok {
			b.WriteString(styles.err.Render(msg))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (f *form) credentials() models.Credentials {
	return models.Credentials{Email: f.value("email"), Password: f.value("password")}
}

func (f *form) registration() models.Registration {
	return models.Registration{Name: f.value("name"), Email: f.value("email"), Password: f.value("password")}
}

func (f *form) playlistForm() models.PlaylistForm {
	return models.PlaylistForm{Name: f.value("name"), Description: f.value("description")}
}
