package poster

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/flag"
	"github.com/haffenloher/carposter/pkg/fonts"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// Poster palette.
const (
	colorBackground = "#ffffff"
	colorBorder     = "#d0d0d0"
	colorMuted      = "#888888"
	colorInk        = "#1a1a1a"
	colorPanel      = "#e5e5e5"
)

// layoutMaxLen caps spec values on the poster. The columns are narrow,
// so this is tighter than the extractor's cap.
const layoutMaxLen = 18

// Input carries everything Compose needs. Photo may be nil; the image
// panel then shows only its backdrop.
type Input struct {
	Brand string
	Model string
	Specs vehicle.SpecificationSet
	Photo image.Image
}

// row pairs a spec label with its display value.
type row struct {
	label string
	value string
}

// Compose renders the poster: framed canvas, brand/model header, photo
// panel, and three spec columns with the brand's flag. A zero geometry
// falls back to the default canvas.
func Compose(in Input, geo Geometry) (image.Image, error) {
	if geo.Width <= 0 || geo.Height <= 0 {
		geo = DefaultGeometry()
	}

	brandFace, err := fonts.Regular(brandSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load brand font")
	}
	modelFace, err := fonts.Bold(modelSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load model font")
	}
	labelFace, err := fonts.Bold(labelSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}
	valueFace, err := fonts.Regular(valueSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load value font")
	}

	dc := gg.NewContext(geo.Width, geo.Height)

	dc.SetHexColor(colorBackground)
	dc.Clear()

	dc.SetHexColor(colorBorder)
	dc.SetLineWidth(2)
	dc.DrawRectangle(borderInset, borderInset,
		float64(geo.Width-2*borderInset), float64(geo.Height-2*borderInset))
	dc.Stroke()

	modelBottom := drawHeader(dc, geo, brandFace, modelFace, in.Brand, in.Model)
	drawPhotoPanel(dc, geo, modelBottom, in.Photo)
	drawSpecColumns(dc, geo, labelFace, valueFace, in.Specs)
	drawFlag(dc, geo, in.Brand)

	return dc.Image(), nil
}

// drawHeader draws the brand and model lines and returns the bottom
// edge of the model text. The model line sits below the brand by the
// brand's rendered height plus a fixed gap, so oversized brand names
// never collide with it.
func drawHeader(dc *gg.Context, geo Geometry, brandFace, modelFace font.Face, brand, model string) int {
	x := float64(geo.HeaderX())
	y := float64(geo.HeaderY())

	dc.SetFontFace(brandFace)
	dc.SetHexColor(colorMuted)
	brand = strings.ToUpper(strings.TrimSpace(brand))
	_, brandH := dc.MeasureString(brand)
	dc.DrawStringAnchored(brand, x, y, 0, 0)

	modelTop := y + brandH + 15
	dc.SetFontFace(modelFace)
	dc.SetHexColor(colorInk)
	model = strings.ToUpper(strings.TrimSpace(model))
	_, modelH := dc.MeasureString(model)
	dc.DrawStringAnchored(model, x, modelTop, 0, 0)

	return int(modelTop + modelH)
}

// drawPhotoPanel fills the gray backdrop and centers the photo in it,
// downscaled to fit but never upscaled.
func drawPhotoPanel(dc *gg.Context, geo Geometry, modelBottom int, photo image.Image) {
	x, y, w, h := geo.PhotoBox(modelBottom)
	if w <= 0 || h <= 0 {
		return
	}

	dc.SetHexColor(colorPanel)
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	dc.Fill()

	if photo == nil {
		return
	}

	b := photo.Bounds()
	scale := ScaleToFit(b.Dx(), b.Dy(), w, h)
	if scale <= 0 {
		return
	}

	fitted := photo
	if scale < 1.0 {
		tw := int(float64(b.Dx()) * scale)
		th := int(float64(b.Dy()) * scale)
		if tw < 1 || th < 1 {
			return
		}
		fitted = imaging.Resize(photo, tw, th, imaging.Lanczos)
	}

	fb := fitted.Bounds()
	dc.DrawImage(fitted, x+(w-fb.Dx())/2, y+(h-fb.Dy())/2)
}

// drawSpecColumns renders the three columns: year, drivetrain figures,
// and performance figures. Labels sit at the column's left edge, values
// are right-aligned at its right edge.
func drawSpecColumns(dc *gg.Context, geo Geometry, labelFace, valueFace font.Face, specs vehicle.SpecificationSet) {
	display := vehicle.SanitizeSet(specs, layoutMaxLen)

	columns := [][]row{
		{
			{"YEAR", display.Year},
		},
		{
			{"Engine", display.Engine},
			{"Power", display.Power},
			{"Torque", display.Torque},
			{"Weight", display.Weight},
		},
		{
			{"0-100 km/h", display.Acceleration},
			{"Top speed", display.TopSpeed},
		},
	}

	colW := float64(geo.ColumnWidth())
	for ci, rows := range columns {
		x := float64(geo.ColumnX(ci))
		for ri, r := range rows {
			y := float64(geo.RowY(ri))

			dc.SetFontFace(labelFace)
			dc.SetHexColor(colorMuted)
			dc.DrawStringAnchored(r.label, x, y, 0, 0)

			dc.SetFontFace(valueFace)
			dc.SetHexColor(colorInk)
			dc.DrawStringAnchored(displayValue(r.value), x+colW, y, 1, 0)
		}
	}
}

// drawFlag renders the brand country's flag right-aligned below the
// performance column.
func drawFlag(dc *gg.Context, geo Geometry, brand string) {
	img := flag.Render(vehicle.CountryForBrand(brand), flagWidth, flagHeight)
	x, y := geo.FlagPos(2)
	dc.DrawImage(img, x, y)
}

// displayValue substitutes a placeholder for missing fields.
func displayValue(v string) string {
	if v == "" {
		return "n/a"
	}
	return v
}
