package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faces lazily loads the text faces used for drawing. A configured font file
// (needed for CJK glyphs) takes precedence; when it is missing or unreadable
// the embedded Go fonts serve as fallback and fontWarning carries the
// one-time user-facing notice.
func (r *Renderer) faces() (regular, bold font.Face, err error) {
	r.fontOnce.Do(func() {
		size := float64(r.cfg.FontSize)

		if r.cfg.FontPath != "" {
			face, loadErr := loadFace(r.cfg.FontPath, size)
			if loadErr == nil {
				// Single-file CJK fonts rarely ship a bold cut; reuse
				// the same face for emphasized cells.
				r.regular, r.bold = face, face
				return
			}
			r.fontWarning = fmt.Sprintf("font file %s unavailable, using fallback font: %v", r.cfg.FontPath, loadErr)
		}

		r.regular, r.fontErr = parseFace(goregular.TTF, size)
		if r.fontErr != nil {
			return
		}
		r.bold, r.fontErr = parseFace(gobold.TTF, size)
	})
	return r.regular, r.bold, r.fontErr
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFace(data, size)
}

func parseFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
