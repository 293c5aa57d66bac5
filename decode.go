package hotdog

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	_ "golang.org/x/image/webp"
)

// DecodeImage decodes JPEG, PNG, GIF or WebP bytes.
// The header is checked before the full decode: empty images and images
// above maxPixels (width*height) are rejected with ErrInvalidInput.
// maxPixels <= 0 disables the area check.
func DecodeImage(data []byte, maxPixels int) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty image data", ErrInvalidInput)
	}

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if imgCfg.Width <= 0 || imgCfg.Height <= 0 {
		return nil, format, fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidInput, imgCfg.Width, imgCfg.Height)
	}
	if maxPixels > 0 && imgCfg.Width > maxPixels/imgCfg.Height {
		slog.Debug("hotdog: image too large", "width", imgCfg.Width, "height", imgCfg.Height, "max_pixels", maxPixels)
		return nil, format, fmt.Errorf("%w: image %dx%d exceeds %d pixels", ErrInvalidInput, imgCfg.Width, imgCfg.Height, maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("%w: decode %s: %w", ErrInvalidInput, format, err)
	}
	return img, format, nil
}
