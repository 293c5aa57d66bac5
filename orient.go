package hotdog

import (
	"bytes"
	"image"

	"github.com/bep/imagemeta"
	"github.com/disintegration/imaging"
)

// OrientationNormal is the EXIF orientation of an image that needs no transform.
const OrientationNormal = 1

// metaFormats maps image.DecodeConfig format names to imagemeta formats
// that can carry EXIF.
var metaFormats = map[string]imagemeta.ImageFormat{
	"jpeg": imagemeta.JPEG,
	"png":  imagemeta.PNG,
	"webp": imagemeta.WebP,
}

// ExtractOrientation reads the EXIF orientation (1..8) from raw image bytes.
// Returns OrientationNormal if the data has no readable orientation tag.
// Graceful degradation: never returns an error.
func ExtractOrientation(data []byte) int {
	if len(data) == 0 {
		return OrientationNormal
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return OrientationNormal
	}
	imgFormat, ok := metaFormats[format]
	if !ok {
		return OrientationNormal
	}

	orientation := OrientationNormal
	_, err = imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: imgFormat,
		Sources:     imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Tag == "Orientation"
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			if v, ok := tagValueInt(ti.Value); ok && v >= 1 && v <= 8 {
				orientation = v
			}
			return nil
		},
	})
	if err != nil {
		return OrientationNormal
	}
	return orientation
}

// tagValueInt extracts an integer from an EXIF tag value.
// Orientation is a SHORT, but decoders differ in the Go type they hand back.
func tagValueInt(v any) (int, bool) {
	switch val := v.(type) {
	case uint16:
		return int(val), true
	case uint32:
		return int(val), true
	case uint8:
		return int(val), true
	case uint:
		return int(val), true //nolint:gosec // EXIF orientation is tiny
	case uint64:
		return int(val), true //nolint:gosec // EXIF orientation is tiny
	case int:
		return val, true
	case int16:
		return int(val), true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case []uint16:
		if len(val) > 0 {
			return int(val[0]), true
		}
	case []any:
		if len(val) > 0 {
			return tagValueInt(val[0])
		}
	}
	return 0, false
}

// ApplyOrientation returns img transformed so it displays upright for the
// given EXIF orientation. Orientation 1 or an unknown value returns img as is.
func ApplyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
