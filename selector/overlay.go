package selector

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Style controls how the overlay is painted.
type Style struct {
	Dim         color.Color // laid over the unselected area
	Border      color.Color
	BorderWidth int
}

// DefaultStyle dims with translucent black and outlines the selection in green.
var DefaultStyle = Style{
	Dim:         color.NRGBA{A: 100},
	Border:      color.NRGBA{G: 255, A: 255},
	BorderWidth: 2,
}

// Overlay returns base with the dim layer applied everywhere except inside
// sel, and a border around sel. With active false the whole frame is dimmed.
func Overlay(base image.Image, sel image.Rectangle, active bool, st Style) *image.RGBA {
	b := base.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, base, b.Min, draw.Src)
	draw.Draw(out, b, image.NewUniform(st.Dim), image.Point{}, draw.Over)

	if !active {
		return out
	}
	sel = sel.Intersect(b)
	if sel.Empty() {
		return out
	}

	draw.Draw(out, sel, base, sel.Min, draw.Src)
	drawBorder(out, sel, st.Border, st.BorderWidth)
	return out
}

// drawBorder strokes w pixels inside the edges of r.
func drawBorder(dst draw.Image, r image.Rectangle, c color.Color, w int) {
	if w <= 0 {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}

// Scale resizes img to fit within w x h, keeping its aspect ratio. It
// returns the scaled image and the source pixels per destination pixel.
func Scale(img image.Image, w, h int) (*image.RGBA, float64) {
	b := img.Bounds()
	if w <= 0 || h <= 0 || b.Empty() {
		return image.NewRGBA(image.Rectangle{}), 1
	}

	f := float64(b.Dx()) / float64(w)
	if fy := float64(b.Dy()) / float64(h); fy > f {
		f = fy
	}
	dw := int(float64(b.Dx()) / f)
	dh := int(float64(b.Dy()) / f)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out, f
}
