package hotdog

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resampler selects the interpolation backend used by Resize.
type Resampler string

const (
	ResampleCatmullRom Resampler = "catmullrom" // golang.org/x/image/draw
	ResampleLanczos    Resampler = "lanczos"    // github.com/disintegration/imaging
	ResampleBilinear   Resampler = "bilinear"   // github.com/nfnt/resize
)

// ParseResampler maps a config name to a Resampler. Empty selects the default.
func ParseResampler(name string) (Resampler, error) {
	switch r := Resampler(strings.ToLower(strings.TrimSpace(name))); r {
	case "":
		return ResampleCatmullRom, nil
	case ResampleCatmullRom, ResampleLanczos, ResampleBilinear:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown resampler %q", ErrInvalidInput, name)
	}
}

// render draws src into a new image of the given size. A panicking backend
// is turned into an error; the process is never aborted.
func (r Resampler) render(src image.Image, size image.Point) (out image.Image, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("hotdog: %s render %dx%d: %v", r, size.X, size.Y, rec)
		}
	}()

	switch r {
	case ResampleLanczos:
		return imaging.Resize(src, size.X, size.Y, imaging.Lanczos), nil
	case ResampleBilinear:
		return resize.Resize(uint(size.X), uint(size.Y), src, resize.Bilinear), nil //nolint:gosec // size is clamped to >= 1
	case ResampleCatmullRom, "":
		dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: unknown resampler %q", ErrInvalidInput, string(r))
	}
}
