package hotdog

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	src := solidImage(64, 48, color.RGBA{G: 255, A: 255})

	t.Run("png", func(t *testing.T) {
		t.Parallel()
		img, format, err := DecodeImage(encodePNG(t, src), DefaultMaxPixels)
		if err != nil {
			t.Fatalf("DecodeImage error: %v", err)
		}
		if format != "png" {
			t.Errorf("format = %q, want png", format)
		}
		if size := img.Bounds().Size(); size != image.Pt(64, 48) {
			t.Errorf("size = %v, want (64,48)", size)
		}
	})

	t.Run("jpeg", func(t *testing.T) {
		t.Parallel()
		data, err := EncodeJPEG(src, 90)
		if err != nil {
			t.Fatalf("EncodeJPEG error: %v", err)
		}
		_, format, err := DecodeImage(data, 0)
		if err != nil {
			t.Fatalf("DecodeImage error: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("format = %q, want jpeg", format)
		}
	})
}

func TestDecodeImageInvalid(t *testing.T) {
	t.Parallel()

	big := encodePNG(t, solidImage(100, 100, color.Black))

	tests := []struct {
		name      string
		data      []byte
		maxPixels int
	}{
		{name: "nil data", data: nil, maxPixels: DefaultMaxPixels},
		{name: "not an image", data: []byte("definitely not an image"), maxPixels: DefaultMaxPixels},
		{name: "truncated png", data: big[:40], maxPixels: DefaultMaxPixels},
		{name: "over pixel limit", data: big, maxPixels: 100*100 - 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := DecodeImage(tc.data, tc.maxPixels)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("DecodeImage error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDecodeImageAtPixelLimit(t *testing.T) {
	t.Parallel()

	data := encodePNG(t, solidImage(100, 100, color.Black))
	if _, _, err := DecodeImage(data, 100*100); err != nil {
		t.Errorf("DecodeImage at exact limit error: %v", err)
	}
}
