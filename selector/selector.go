// Package selector implements drag-to-select over a frozen screen capture.
//
// A Selector is fed pointer events in the coordinate space of its base
// image. It never touches the screen or the disk: on release it hands back
// the cropped sub-image, or nothing when the drag was too small to be
// deliberate.
package selector

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// MinSize is the smallest accepted width and height in pixels. Smaller
// selections are treated as accidental clicks.
const MinSize = 10

// State is the selector lifecycle stage.
type State int

const (
	Idle State = iota
	Dragging
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrEmptyRegion is returned by Crop when the region does not overlap the image.
var ErrEmptyRegion = errors.New("crop region is empty")

// Normalize returns the rectangle spanned by two corners, with Min at the
// top-left and a non-negative size.
func Normalize(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y)
}

// Accepted reports whether r is large enough on both axes.
func Accepted(r image.Rectangle) bool {
	return r.Dx() >= MinSize && r.Dy() >= MinSize
}

// Selector tracks one drag gesture over a frozen base image.
type Selector struct {
	base       image.Image
	state      State
	start, end image.Point
}

// New returns an idle selector over base.
func New(base image.Image) *Selector {
	return &Selector{base: base}
}

// State returns the current lifecycle stage.
func (s *Selector) State() State { return s.state }

// Base returns the frozen image the selector crops from.
func (s *Selector) Base() image.Image { return s.base }

// Down starts a drag at p. It is ignored unless the selector is idle.
func (s *Selector) Down(p image.Point) {
	if s.state != Idle {
		return
	}
	s.state = Dragging
	s.start, s.end = p, p
}

// Move updates the free corner while dragging.
func (s *Selector) Move(p image.Point) {
	if s.state != Dragging {
		return
	}
	s.end = p
}

// Up ends the drag at p and returns the selected sub-image. ok is false
// when no drag was in progress or the selection is below MinSize; the
// selector is Committed either way once a drag was in progress.
func (s *Selector) Up(p image.Point) (img image.Image, ok bool) {
	if s.state != Dragging {
		return nil, false
	}
	s.end = p
	s.state = Committed

	r, _ := s.Selection()
	if !Accepted(r) {
		return nil, false
	}
	out, err := Crop(s.base, r)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Cancel abandons the selection. Nothing is produced afterwards.
func (s *Selector) Cancel() {
	s.state = Cancelled
}

// Selection returns the normalized rectangle clipped to the base image.
// ok is false before the first Down.
func (s *Selector) Selection() (image.Rectangle, bool) {
	if s.state == Idle || s.state == Cancelled {
		return image.Rectangle{}, false
	}
	return Normalize(s.start, s.end).Intersect(s.base.Bounds()), true
}

// Render draws the current overlay frame at full resolution.
func (s *Selector) Render() *image.RGBA {
	r, ok := s.Selection()
	return Overlay(s.base, r, ok, DefaultStyle)
}

// Crop copies r out of img into a new image anchored at (0,0). The pixel at
// r.Min becomes the top-left pixel of the result.
func Crop(img image.Image, r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, ErrEmptyRegion
	}

	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out, nil
}
