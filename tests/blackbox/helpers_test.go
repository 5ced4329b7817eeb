//go:build blackbox

package blackbox

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// writeChart writes a w x h PNG whose pixels encode their coordinates.
func writeChart(t *testing.T, dir string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}

	path := filepath.Join(dir, "chart.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeConfig writes a config keeping every file inside dir.
func writeConfig(t *testing.T, dir, mode, format, journal string) string {
	t.Helper()

	body := fmt.Sprintf(`mode: %s
hotkey: f10
capture:
  image_folder: %s
  display: -1
journal:
  format: %s
  path: %s
  last_ticker_file: %s
log:
  level: warn
  file: %s
`, mode,
		filepath.Join(dir, "shots"),
		format,
		filepath.Join(dir, journal),
		filepath.Join(dir, "last_ticker.txt"),
		filepath.Join(dir, "chartlog.log"))

	path := filepath.Join(dir, "chartlog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}
