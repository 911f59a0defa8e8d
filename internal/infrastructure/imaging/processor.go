// Package imaging decodes imported product images and renders their
// thumbnails before they reach object storage.
package imaging

import (
	"bytes"
	"fmt"

	appintegration "github.com/shopbridge/backend/internal/application/integration"

	"github.com/disintegration/imaging"
)

// jpegQuality is the re-encode quality of rendered thumbnails.
const jpegQuality = 90

// Processor implements the integration image processor port with the imaging
// library.
type Processor struct{}

// NewProcessor creates a new Processor
func NewProcessor() *Processor {
	return &Processor{}
}

// Bounds reports the pixel dimensions of the encoded image.
func (p *Processor) Bounds(data []byte) (int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("imaging: decode: %w", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// Thumbnail fits the image into maxWidth x maxHeight preserving aspect ratio
// and re-encodes it as JPEG. Images already within the bound are re-encoded
// unchanged.
func (p *Processor) Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("imaging: invalid thumbnail bound %dx%d", maxWidth, maxHeight)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Processor implements the ImageProcessor port
var _ appintegration.ImageProcessor = (*Processor)(nil)
