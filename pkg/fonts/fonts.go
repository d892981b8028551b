// Package fonts resolves the typefaces used on posters.
//
// System fonts are preferred: the loader walks a candidate chain via
// findfont and falls back to the embedded Go fonts when the system has
// none of them. Parsed fonts are cached, faces are built per size.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Candidate chains, probed in order. findfont matches on file name, so
// these cover the common spellings across platforms.
var (
	regularCandidates = []string{"arial.ttf", "calibri.ttf", "helvetica.ttf"}
	boldCandidates    = []string{"arialbd.ttf", "calibrib.ttf", "helvetica-bold.ttf"}
)

// loaded is a parsed font plus the size multiplier to apply when
// building faces from it. The multiplier is 1.1 when a regular font
// stands in for a missing bold one.
type loaded struct {
	font  *truetype.Font
	scale float64
}

var (
	mu    sync.Mutex
	fonts = map[bool]loaded{}
)

// Regular returns a face of the regular poster font at the given size.
func Regular(size float64) (font.Face, error) {
	return face(false, size)
}

// Bold returns a face of the bold poster font at the given size. When
// no bold family is installed the regular family is used at 1.1x the
// requested size, and the embedded Go bold font is the last resort.
func Bold(size float64) (font.Face, error) {
	return face(true, size)
}

func face(bold bool, size float64) (font.Face, error) {
	l, err := load(bold)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(l.font, &truetype.Options{
		Size:    size * l.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func load(bold bool) (loaded, error) {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := fonts[bold]; ok {
		return l, nil
	}

	l, err := locate(bold)
	if err != nil {
		return loaded{}, err
	}
	fonts[bold] = l
	return l, nil
}

func locate(bold bool) (loaded, error) {
	chain := regularCandidates
	embedded := goregular.TTF
	if bold {
		chain = boldCandidates
		embedded = gobold.TTF
	}

	if f := fromSystem(chain); f != nil {
		return loaded{font: f, scale: 1.0}, nil
	}
	if bold {
		// No bold family installed. A regular face drawn slightly
		// larger reads close enough on the poster.
		if f := fromSystem(regularCandidates); f != nil {
			return loaded{font: f, scale: 1.1}, nil
		}
	}

	f, err := truetype.Parse(embedded)
	if err != nil {
		return loaded{}, err
	}
	return loaded{font: f, scale: 1.0}, nil
}

// fromSystem tries each candidate file name and returns the first font
// that can be found and parsed. Unreadable or corrupt files are
// skipped.
func fromSystem(candidates []string) *truetype.Font {
	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return f
	}
	return nil
}
