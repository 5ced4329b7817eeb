package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustyeddy/chartlog/selector"
)

// previewStyle is DefaultStyle with a border one preview pixel wide.
var previewStyle = selector.Style{
	Dim:         selector.DefaultStyle.Dim,
	Border:      selector.DefaultStyle.Border,
	BorderWidth: 1,
}

// SelectModel shows a frozen capture in the terminal and turns mouse drags
// into a selection. Each cell shows two preview pixels stacked with a half
// block; the selection itself is made on the full resolution capture.
type SelectModel struct {
	sel     *selector.Selector
	preview *image.RGBA
	scale   float64 // capture pixels per preview pixel
	cols    int
	rows    int
	styles  Styles
}

// NewSelect returns a selector surface for base sized to a cols x rows terminal.
func NewSelect(base image.Image, cols, rows int) SelectModel {
	m := SelectModel{
		sel:    selector.New(base),
		styles: DefaultStyles(),
	}
	m.resize(cols, rows)
	return m
}

func (m *SelectModel) resize(cols, rows int) {
	m.cols, m.rows = cols, rows
	// The last row is the status line.
	m.preview, m.scale = selector.Scale(m.sel.Base(), cols, 2*max(rows-1, 1))
}

// toSource maps a terminal cell to the capture pixel under its center.
func (m SelectModel) toSource(x, y int) image.Point {
	b := m.sel.Base().Bounds()
	p := image.Pt(
		b.Min.X+int((float64(x)+0.5)*m.scale),
		b.Min.Y+int((float64(2*y)+1)*m.scale),
	)
	p.X = min(max(p.X, b.Min.X), b.Max.X)
	p.Y = min(max(p.Y, b.Min.Y), b.Max.Y)
	return p
}

// toPreview maps a capture rectangle onto the preview.
func (m SelectModel) toPreview(r image.Rectangle) image.Rectangle {
	b := m.sel.Base().Bounds()
	return image.Rect(
		int(float64(r.Min.X-b.Min.X)/m.scale),
		int(float64(r.Min.Y-b.Min.Y)/m.scale),
		int(float64(r.Max.X-b.Min.X)/m.scale),
		int(float64(r.Max.Y-b.Min.Y)/m.scale),
	)
}

// Init implements tea.Model.
func (m SelectModel) Init() tea.Cmd { return nil }

// Update feeds mouse events to the selector. Release ends the selection
// whether or not it is large enough; Esc cancels.
func (m SelectModel) Update(msg tea.Msg) (SelectModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.sel.Cancel()
			return m, func() tea.Msg { return cancelMsg{} }
		}

	case tea.MouseMsg:
		p := m.toSource(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.sel.Down(p)
			}
		case tea.MouseActionMotion:
			m.sel.Move(p)
		case tea.MouseActionRelease:
			if m.sel.State() != selector.Dragging {
				return m, nil
			}
			img, ok := m.sel.Up(p)
			return m, func() tea.Msg { return selectedMsg{img: img, ok: ok} }
		}
	}
	return m, nil
}

// View draws the dimmed preview with the live selection and a status line.
func (m SelectModel) View() string {
	r, active := m.sel.Selection()
	frame := selector.Overlay(m.preview, m.toPreview(r), active, previewStyle)

	var b strings.Builder
	drawHalfBlocks(&b, frame, m.cols, max(m.rows-1, 1))

	status := "Drag to select a region · esc to cancel"
	if active {
		status = fmt.Sprintf("%dx%d at (%d,%d) · release to capture", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
		if !selector.Accepted(r) {
			status += fmt.Sprintf(" · smaller than %dpx is ignored", selector.MinSize)
		}
	}
	b.WriteString(m.styles.Status.Render(status))
	return b.String()
}

// drawHalfBlocks writes img as rows of "▀" cells, the upper pixel as
// foreground and the lower as background, using 24-bit color escapes.
// Colors are only re-emitted when they change.
func drawHalfBlocks(b *strings.Builder, img *image.RGBA, cols, rows int) {
	bounds := img.Bounds()
	at := func(x, y int) color.RGBA {
		if !(image.Point{X: x, Y: y}.In(bounds)) {
			return color.RGBA{}
		}
		return img.RGBAAt(x, y)
	}

	for y := 0; y < rows; y++ {
		var lastFg, lastBg color.RGBA
		first := true
		for x := 0; x < cols; x++ {
			fg, bg := at(x, 2*y), at(x, 2*y+1)
			if first || fg != lastFg {
				fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm", fg.R, fg.G, fg.B)
			}
			if first || bg != lastBg {
				fmt.Fprintf(b, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)
			}
			b.WriteString("▀")
			lastFg, lastBg, first = fg, bg, false
		}
		b.WriteString("\x1b[0m\n")
	}
}
