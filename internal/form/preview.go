package form

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"os"

	"github.com/disintegration/imaging"
)

// Preview is a locally read image file.
type Preview struct {
	DataURL   string
	Thumbnail image.Image
}

const previewMaxSide = 320

// ReadPreview reads the image at path into a data: URL and a thumbnail no
// larger than 320px per side.
func ReadPreview(path string) (Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preview{}, fmt.Errorf("read image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Preview{}, fmt.Errorf("decode image: %w", err)
	}

	contentType := http.DetectContentType(data)
	return Preview{
		DataURL:   "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Thumbnail: imaging.Fit(img, previewMaxSide, previewMaxSide, imaging.Lanczos),
	}, nil
}
