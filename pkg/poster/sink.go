package poster

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/haffenloher/carposter/pkg/errors"
)

const jpegQuality = 95

// Encode serializes a rendered poster. JPEG output is flattened onto a
// white background first since the format carries no alpha channel.
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
		}
	}
	return buf.Bytes(), nil
}

// WriteFile encodes img in the format implied by the path extension
// and writes it to disk.
func WriteFile(path string, img image.Image) error {
	data, err := Encode(img, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write poster to %s", path)
	}
	return nil
}

// flatten redraws img over opaque white.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, image.White, image.Point{}, draw.Src)
	draw.Draw(rgba, b, img, b.Min, draw.Over)
	return rgba
}
