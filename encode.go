package hotdog

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
)

// EncodeJPEG encodes img for upload. quality is clamped to 1..100;
// zero or negative selects DefaultJPEGQuality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrInvalidInput)
	}
	switch {
	case quality <= 0:
		quality = DefaultJPEGQuality
	case quality > 100:
		quality = 100
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("hotdog: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 encodes bytes to base64 string.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeDataURL creates a data: URI from bytes and MIME type.
func EncodeDataURL(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, EncodeBase64(data))
}
