package imaging

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/parallel-recolor/internal/errors"
)

// DefaultJPEGQuality is used when Save is asked for quality 0.
const DefaultJPEGQuality = 95

// Save writes the grid to path. The format follows the file extension
// (jpg, jpeg, png, gif, tif, tiff, bmp); jpegQuality applies to JPEG output
// and must be within 1-100, or 0 for DefaultJPEGQuality. Missing parent
// directories are created once the format is known to be supported.
func Save(grid *PixelGrid, path string, jpegQuality int) error {
	if jpegQuality == 0 {
		jpegQuality = DefaultJPEGQuality
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		return errors.NewInvalidArgument("jpeg_quality", jpegQuality, "must be within 1-100")
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.NewIOFailure("encode", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewIOFailure("create", dir, err)
		}
	}

	if err := imaging.Save(grid.ToImage(), path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return errors.NewIOFailure("encode", path, err)
	}
	return nil
}

// EncodedImage is a grid rendered as base64 PNG for MCP responses.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 renders the grid as a base64-encoded PNG.
func EncodePNGBase64(grid *PixelGrid) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, grid.ToImage()); err != nil {
		return nil, errors.NewIOFailure("encode", "png", err)
	}

	return &EncodedImage{
		Width:       grid.Width,
		Height:      grid.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
