package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/ui/theme"
)

// FormField is one labelled row of a Form. A field with Choices is a picker
// cycled with ←/→; otherwise Input takes free text.
type FormField struct {
	// Key identifies the field in Values and SetErrors.
	Key     string
	Label   string
	Input   TextInput
	Choices []string
	Err     string

	choice int
}

// Value returns the typed text or the picked choice.
func (f FormField) Value() string {
	if len(f.Choices) > 0 {
		return f.Choices[f.choice]
	}
	return strings.TrimSpace(f.Input.Value())
}

// Form is a vertical list of fields with one focused at a time.
type Form struct {
	Fields  []FormField
	Focused int
}

// NewForm creates a form and focuses its first field.
func NewForm(fields ...FormField) Form {
	f := Form{Fields: fields}
	f.focus(0)
	return f
}

// Init returns the cursor blink command for the focused input.
func (f *Form) Init() tea.Cmd {
	return f.focus(f.Focused)
}

func (f *Form) focus(i int) tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	f.Fields[f.Focused].Input.Blur()
	f.Focused = (i + len(f.Fields)) % len(f.Fields)
	if len(f.Fields[f.Focused].Choices) > 0 {
		return nil
	}
	return f.Fields[f.Focused].Input.Focus()
}

// Next moves focus to the following field, wrapping around.
func (f *Form) Next() tea.Cmd { return f.focus(f.Focused + 1) }

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() tea.Cmd { return f.focus(f.Focused - 1) }

// OnLast reports whether the last field has focus.
func (f Form) OnLast() bool {
	return f.Focused == len(f.Fields)-1
}

// Update moves focus on tab/shift+tab/↑/↓ and enter, cycles pickers on ←/→,
// and sends everything else to the focused input.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.Fields) == 0 {
		return f, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down", "enter":
			return f, f.Next()
		case "shift+tab", "up":
			return f, f.Prev()
		}
		field := &f.Fields[f.Focused]
		if n := len(field.Choices); n > 0 {
			switch kmsg.String() {
			case "left", "h":
				field.choice = (field.choice - 1 + n) % n
				field.Err = ""
			case "right", "l", "space":
				field.choice = (field.choice + 1) % n
				field.Err = ""
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	field := &f.Fields[f.Focused]
	if len(field.Choices) == 0 {
		field.Input, cmd = field.Input.Update(msg)
	}
	return f, cmd
}

// Values returns every field value keyed by FormField.Key.
func (f Form) Values() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		out[field.Key] = field.Value()
	}
	return out
}

// SetErrors attaches messages to fields by key, clears the rest, and
// focuses the first field with an error.
func (f *Form) SetErrors(errs map[string]string) tea.Cmd {
	first := -1
	for i := range f.Fields {
		f.Fields[i].Err = errs[f.Fields[i].Key]
		if first < 0 && f.Fields[i].Err != "" {
			first = i
		}
	}
	if first < 0 {
		return nil
	}
	return f.focus(first)
}

// View renders the form.
func (f Form) View(labelWidth int) string {
	label := lipgloss.NewStyle().Width(labelWidth).Foreground(theme.TextDim)
	focusedLabel := label.Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	for i, field := range f.Fields {
		l := label
		if i == f.Focused {
			l = focusedLabel
		}
		b.WriteString(l.Render(field.Label))
		if len(field.Choices) > 0 {
			b.WriteString(renderChoices(field.Choices, field.choice, i == f.Focused))
		} else {
			b.WriteString(field.Input.View())
		}
		b.WriteString("\n")
		if field.Err != "" {
			b.WriteString(strings.Repeat(" ", labelWidth))
			b.WriteString(theme.ErrorText.Render(field.Err))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderChoices(choices []string, picked int, focused bool) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		switch {
		case i == picked && focused:
			parts[i] = theme.Selected.Render("[" + c + "]")
		case i == picked:
			parts[i] = theme.Unselected.Render("[" + c + "]")
		default:
			parts[i] = theme.Muted.Render(" " + c + " ")
		}
	}
	return strings.Join(parts, " ")
}
