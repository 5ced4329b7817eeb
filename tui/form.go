package tui

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rustyeddy/chartlog/entry"
	"github.com/rustyeddy/chartlog/selector"
)

// Thumbnail size in cells; each cell holds two pixel rows.
const (
	thumbCols = 36
	thumbRows = 6
)

type field int

const (
	fieldTicker field = iota
	fieldPrice
	fieldNote
)

// FormModel is the ticker / price / note entry dialog for one capture.
type FormModel struct {
	imagePath string
	thumb     string
	fields    []field
	inputs    []textinput.Model
	focus     int

	hint     string
	warning  string
	released bool

	styles Styles
}

// NewForm returns a form for imagePath with the ticker pre-filled. preview
// is drawn as a thumbnail above the fields when not nil. The price field is
// only shown for full-screen captures.
func NewForm(imagePath string, preview image.Image, ticker string, withPrice bool) FormModel {
	m := FormModel{
		imagePath: imagePath,
		thumb:     thumbnail(preview),
		styles:    DefaultStyles(),
	}

	m.fields = []field{fieldTicker}
	if withPrice {
		m.fields = append(m.fields, fieldPrice)
	}
	m.fields = append(m.fields, fieldNote)

	for _, f := range m.fields {
		ti := textinput.New()
		ti.Prompt = " "
		ti.Width = 36
		switch f {
		case fieldTicker:
			ti.Placeholder = "Ticker (e.g. ASELS)"
			ti.CharLimit = 24
			ti.SetValue(ticker)
		case fieldPrice:
			ti.Placeholder = "Price level"
			ti.CharLimit = 24
		case fieldNote:
			ti.Placeholder = "Your note..."
			ti.CharLimit = 500
		}
		m.inputs = append(m.inputs, ti)
	}

	// The note is what changes between captures; start there.
	m.focus = len(m.fields) - 1
	m.inputs[m.focus].Focus()
	return m
}

// thumbnail renders img in at most thumbCols x thumbRows half-block cells.
func thumbnail(img image.Image) string {
	if img == nil || img.Bounds().Empty() {
		return ""
	}
	small, _ := selector.Scale(img, thumbCols, 2*thumbRows)
	var b strings.Builder
	drawHalfBlocks(&b, small, small.Bounds().Dx(), (small.Bounds().Dy()+1)/2)
	return strings.TrimSuffix(b.String(), "\n")
}

func (m FormModel) value(f field) string {
	for i, have := range m.fields {
		if have == f {
			return m.inputs[i].Value()
		}
	}
	return ""
}

// ImagePath is the capture this form describes.
func (m FormModel) ImagePath() string { return m.imagePath }

// Input returns the current field values.
func (m FormModel) Input() entry.Input {
	return entry.Input{
		Ticker: m.value(fieldTicker),
		Price:  m.value(fieldPrice),
		Note:   m.value(fieldNote),
	}
}

// Init starts the cursor blinking.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Invalid shows a validation hint and keeps the form open.
func (m *FormModel) Invalid(reason string) {
	m.hint = reason
}

// Locked shows the recoverable warning; inputs are kept for a retry.
func (m *FormModel) Locked(msg string) {
	m.hint = ""
	m.warning = msg
	m.released = false
}

// Released notes that the program holding the journal let go of it.
func (m *FormModel) Released() {
	if m.warning != "" {
		m.released = true
	}
}

// Update handles keys: Enter submits, Esc cancels, Tab cycles fields.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			in := m.Input()
			return m, func() tea.Msg { return submitMsg{in: in} }
		case "esc":
			return m, func() tea.Msg { return cancelMsg{} }
		case "tab", "down":
			cmd := m.setFocus((m.focus + 1) % len(m.fields))
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus((m.focus + len(m.fields) - 1) % len(m.fields))
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// View renders the dialog.
func (m FormModel) View() string {
	s := m.styles
	var rows []string

	rows = append(rows, s.Title.Render("Add Trading Log"))
	rows = append(rows, s.Muted.Render(filepath.Base(m.imagePath)))
	if m.thumb != "" {
		rows = append(rows, "", m.thumb)
	}

	for i, f := range m.fields {
		var label string
		switch f {
		case fieldTicker:
			label = "Ticker / Instrument:"
		case fieldPrice:
			label = "Price:"
		case fieldNote:
			label = "Note:"
		}
		box := s.Input
		if i == m.focus {
			box = s.Focused
		}
		rows = append(rows, "", s.Label.Render(label), box.Render(m.inputs[i].View()))
	}

	rows = append(rows, s.Button.Render("Save (Enter)"))

	if m.hint != "" {
		rows = append(rows, "", s.Hint.Render(m.hint))
	}
	if m.warning != "" {
		rows = append(rows, "", s.Warning.Render(m.warning))
		if m.released {
			rows = append(rows, s.Success.Render("The file was closed. Press Enter to save."))
		}
	}
	rows = append(rows, "", s.Muted.Render(strings.Join([]string{"enter save", "tab next field", "esc cancel"}, " · ")))

	return s.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
