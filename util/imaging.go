package util

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// GetImageDimensions probes the pixel size of an image payload. The probe is
// advisory: a payload that can't be decoded reports ok=false, never an error.
func GetImageDimensions(b []byte) (width int, height int, ok bool) {
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return 0, 0, false
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), true
}
