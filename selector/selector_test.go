package selector

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient encodes each pixel's coordinates in its color so crops can be
// checked for position.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x >> 8), A: 255})
		}
	}
	return img
}

func drag(s *Selector, from, to image.Point, via ...image.Point) (image.Image, bool) {
	s.Down(from)
	for _, p := range via {
		s.Move(p)
	}
	return s.Up(to)
}

func TestNormalize(t *testing.T) {
	want := image.Rect(100, 100, 400, 300)
	corners := [][2]image.Point{
		{{100, 100}, {400, 300}},
		{{400, 300}, {100, 100}},
		{{400, 100}, {100, 300}},
		{{100, 300}, {400, 100}},
	}
	for _, c := range corners {
		r := Normalize(c[0], c[1])
		assert.Equal(t, want, r)
		assert.Equal(t, image.Pt(100, 100), r.Min)
		assert.Equal(t, 300, r.Dx())
		assert.Equal(t, 200, r.Dy())
	}
}

func TestScenarioFullHD(t *testing.T) {
	base := gradient(1920, 1080)
	s := New(base)

	img, ok := drag(s, image.Pt(100, 100), image.Pt(400, 300), image.Pt(250, 200))
	require.True(t, ok)
	assert.Equal(t, Committed, s.State())

	b := img.Bounds()
	assert.Equal(t, 300, b.Dx())
	assert.Equal(t, 200, b.Dy())
	assert.Equal(t, base.At(100, 100), img.At(b.Min.X, b.Min.Y))
	assert.Equal(t, base.At(399, 299), img.At(b.Max.X-1, b.Max.Y-1))
}

func TestDragDirectionsProduceSameCrop(t *testing.T) {
	base := gradient(600, 400)
	var crops []image.Image
	for _, c := range [][2]image.Point{
		{{50, 60}, {250, 160}},
		{{250, 160}, {50, 60}},
		{{250, 60}, {50, 160}},
		{{50, 160}, {250, 60}},
	} {
		img, ok := drag(New(base), c[0], c[1])
		require.True(t, ok)
		crops = append(crops, img)
	}
	for _, c := range crops[1:] {
		assert.Equal(t, crops[0], c)
	}
}

func TestSmallSelectionsDiscarded(t *testing.T) {
	base := gradient(200, 200)
	tests := []struct {
		name     string
		from, to image.Point
		ok       bool
	}{
		{"click", image.Pt(50, 50), image.Pt(50, 50), false},
		{"narrow", image.Pt(50, 50), image.Pt(59, 150), false},
		{"short", image.Pt(50, 50), image.Pt(150, 59), false},
		{"narrow reversed", image.Pt(59, 150), image.Pt(50, 50), false},
		{"exact minimum", image.Pt(50, 50), image.Pt(60, 60), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(base)
			img, ok := drag(s, tt.from, tt.to)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, img)
			}
			assert.Equal(t, Committed, s.State())
		})
	}
}

func TestSelectionClippedToBase(t *testing.T) {
	base := gradient(100, 100)
	img, ok := drag(New(base), image.Pt(80, 80), image.Pt(150, 150))
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())

	_, ok = drag(New(base), image.Pt(95, 95), image.Pt(300, 300))
	assert.False(t, ok)
}

func TestStateMachine(t *testing.T) {
	s := New(gradient(50, 50))
	assert.Equal(t, Idle, s.State())

	// Move and Up without Down do nothing.
	s.Move(image.Pt(10, 10))
	_, ok := s.Up(image.Pt(40, 40))
	assert.False(t, ok)
	assert.Equal(t, Idle, s.State())
	_, ok = s.Selection()
	assert.False(t, ok)

	s.Down(image.Pt(5, 5))
	assert.Equal(t, Dragging, s.State())
	s.Move(image.Pt(30, 25))
	r, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, image.Rect(5, 5, 30, 25), r)

	s.Cancel()
	assert.Equal(t, Cancelled, s.State())
	_, ok = s.Up(image.Pt(40, 40))
	assert.False(t, ok)
	assert.Equal(t, "cancelled", s.State().String())
}

func TestCrop(t *testing.T) {
	base := gradient(64, 64)

	out, err := Crop(base, image.Rect(10, 20, 30, 25))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 5), out.Bounds())
	assert.Equal(t, base.At(10, 20), out.At(0, 0))

	_, err = Crop(base, image.Rect(100, 100, 120, 120))
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

func TestCropOffsetBase(t *testing.T) {
	// Virtual desktops can start left of or above the primary display.
	base := image.NewRGBA(image.Rect(-100, 0, 100, 50))
	base.SetRGBA(-50, 10, color.RGBA{R: 200, A: 255})

	out, err := Crop(base, image.Rect(-50, 10, -30, 30))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 200, A: 255}, out.RGBAAt(0, 0))
}
