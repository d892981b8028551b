package flag

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/haffenloher/carposter/pkg/vehicle"
)

// Render draws the flag for a country code at the given size and returns
// the finished image. Unknown codes render the DE flag; a malformed
// definition (unknown kind or no colors) falls back the same way, so the
// caller always gets a drawable flag.
func Render(code vehicle.CountryCode, w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	def := Lookup(code)
	if img, ok := render(def, w, h); ok {
		return img
	}
	img, _ := render(Lookup(vehicle.CountryDE), w, h)
	return img
}

func render(def Definition, w, h int) (image.Image, bool) {
	if len(def.Colors) == 0 {
		return nil, false
	}

	dc := gg.NewContext(w, h)

	switch def.Kind {
	case KindHorizontal:
		drawHorizontal(dc, def.Colors, w, h)
	case KindVertical:
		drawVertical(dc, def.Colors, w, h)
	case KindCircle:
		drawCircle(dc, def.Colors, w, h)
	case KindCross:
		drawCross(dc, def.Colors, w, h)
	default:
		return nil, false
	}

	return dc.Image(), true
}

// drawHorizontal fills n equal bands. Band boundaries are floor-rounded;
// the last band always reaches the bottom edge so rounding never leaves
// a blank strip.
func drawHorizontal(dc *gg.Context, colors []string, w, h int) {
	n := len(colors)
	bandH := float64(h) / float64(n)
	for i, c := range colors {
		y0 := int(float64(i) * bandH)
		y1 := int(float64(i+1) * bandH)
		if i == n-1 {
			y1 = h
		}
		dc.SetHexColor(c)
		dc.DrawRectangle(0, float64(y0), float64(w), float64(y1-y0))
		dc.Fill()
	}
}

// drawVertical is drawHorizontal rotated: equal vertical bands with the
// last band extending to the right edge.
func drawVertical(dc *gg.Context, colors []string, w, h int) {
	n := len(colors)
	bandW := float64(w) / float64(n)
	for i, c := range colors {
		x0 := int(float64(i) * bandW)
		x1 := int(float64(i+1) * bandW)
		if i == n-1 {
			x1 = w
		}
		dc.SetHexColor(c)
		dc.DrawRectangle(float64(x0), 0, float64(x1-x0), float64(h))
		dc.Fill()
	}
}

// drawCircle fills the background and draws a centered disc with radius
// 0.35 x min(w, h).
func drawCircle(dc *gg.Context, colors []string, w, h int) {
	dc.SetHexColor(colors[0])
	dc.Clear()

	disc := colors[0]
	if len(colors) > 1 {
		disc = colors[1]
	}
	r := 0.35 * float64(min(w, h))
	dc.SetHexColor(disc)
	dc.DrawCircle(float64(w)/2, float64(h)/2, r)
	dc.Fill()
}

// drawCross fills the background and draws centered cross bars. The
// vertical bar is max(2, w/5) wide, the horizontal bar max(2, h/5) tall.
func drawCross(dc *gg.Context, colors []string, w, h int) {
	dc.SetHexColor(colors[0])
	dc.Clear()

	bar := colors[0]
	if len(colors) > 1 {
		bar = colors[1]
	}
	barW := max(2, w/5)
	barH := max(2, h/5)

	dc.SetHexColor(bar)
	dc.DrawRectangle(float64(w-barW)/2, 0, float64(barW), float64(h))
	dc.Fill()
	dc.DrawRectangle(0, float64(h-barH)/2, float64(w), float64(barH))
	dc.Fill()
}
