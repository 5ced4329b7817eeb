package tui

import (
	"image"

	"github.com/rustyeddy/chartlog/entry"
)

// TriggerMsg starts a capture. The hotkey listener sends it through
// tea.Program.Send, which is safe from any goroutine.
type TriggerMsg struct{}

type capturedMsg struct {
	img *image.RGBA
	err error
}

type selectedMsg struct {
	img image.Image
	ok  bool
}

type imageSavedMsg struct {
	path string
	img  image.Image
	err  error
}

type submitMsg struct {
	in entry.Input
}

type cancelMsg struct{}

type unlockedMsg struct {
	err error
}
