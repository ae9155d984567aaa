package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// thumbnail decodes raw upload bytes and shrinks the bitmap to fit inside a
// box×box bounding square, preserving aspect ratio. Images already inside
// the box are left at their native size.
func thumbnail(data []byte, box int) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= box && bounds.Dy() <= box {
		return img, nil
	}
	return imaging.Fit(img, box, box, imaging.Lanczos), nil
}
