// Package capture grabs screen images and stores them as PNG files.
package capture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
	"golang.org/x/image/draw"
)

// ErrNoDisplay is returned when no active display can be captured.
var ErrNoDisplay = errors.New("no active display")

// Capturer produces raster snapshots of the screen.
type Capturer interface {
	// CaptureFullScreen returns the configured screen area.
	CaptureFullScreen() (*image.RGBA, error)
	// CaptureBounds returns the given area in virtual desktop coordinates.
	CaptureBounds(r image.Rectangle) (*image.RGBA, error)
}

// Screen captures from the live displays.
type Screen struct {
	// Display selects one monitor; -1 means the union of all monitors.
	Display int
}

// Bounds returns the area CaptureFullScreen grabs.
func (s Screen) Bounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	if s.Display >= 0 {
		if s.Display >= n {
			return image.Rectangle{}, fmt.Errorf("display %d of %d: %w", s.Display, n, ErrNoDisplay)
		}
		return screenshot.GetDisplayBounds(s.Display), nil
	}

	var all image.Rectangle
	for i := 0; i < n; i++ {
		all = all.Union(screenshot.GetDisplayBounds(i))
	}
	return all, nil
}

func (s Screen) CaptureFullScreen() (*image.RGBA, error) {
	r, err := s.Bounds()
	if err != nil {
		return nil, err
	}
	return s.CaptureBounds(r)
}

func (s Screen) CaptureBounds(r image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	return img, nil
}

// File serves a saved image as if it were the screen. Useful for logging a
// chart exported from elsewhere, and for tests.
type File struct {
	Path string
}

func (f File) CaptureFullScreen() (*image.RGBA, error) {
	img, err := Load(f.Path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (f File) CaptureBounds(r image.Rectangle) (*image.RGBA, error) {
	img, err := f.CaptureFullScreen()
	if err != nil {
		return nil, err
	}
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("capture %v: outside image %v", r, img.Bounds())
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out, nil
}

// Load decodes a PNG or JPEG file into an RGBA image anchored at (0,0).
func Load(path string) (*image.RGBA, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	src, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out, nil
}

// Store writes captures into a folder as Log_YYYYMMDD_HHMMSS.png.
type Store struct {
	Dir string
	Now func() time.Time
}

// NewStore returns a store writing into dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create image folder: %w", err)
	}
	return &Store{Dir: dir, Now: time.Now}, nil
}

// Save encodes img as PNG and returns its path. Captures within the same
// second get a numeric suffix instead of overwriting each other.
func (s *Store) Save(img image.Image) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	stamp := now().Format("20060102_150405")

	for n := 1; ; n++ {
		name := "Log_" + stamp + ".png"
		if n > 1 {
			name = fmt.Sprintf("Log_%s_%d.png", stamp, n)
		}
		path := filepath.Join(s.Dir, name)

		fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("save capture: %w", err)
		}

		if err := png.Encode(fh, img); err != nil {
			fh.Close()
			os.Remove(path)
			return "", fmt.Errorf("encode %s: %w", path, err)
		}
		if err := fh.Close(); err != nil {
			return "", fmt.Errorf("save capture: %w", err)
		}
		return path, nil
	}
}
