package hotdog

import (
	"fmt"
	"image"
	"math"
)

// Dimensions is a width/height pair in pixels (fractional before rasterization).
type Dimensions struct {
	Width  float64
	Height float64
}

func (d Dimensions) valid() bool {
	return positive(d.Width) && positive(d.Height)
}

// positive rejects zero, negatives, NaN and infinities.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// SizeOf returns the pixel dimensions of img.
func SizeOf(img image.Image) Dimensions {
	b := img.Bounds()
	return Dimensions{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// ScaleTarget computes the box the image is fitted into for a given bound.
//
// With ratio = height/width, a portrait image (ratio > 1) targets
// (maxSize, maxSize*ratio); landscape and square images target
// (maxSize*ratio, maxSize). This multiplies by the ratio on both branches
// and is not a bounding-box fit: landscape photos end up smaller than
// maxSize on both axes and portrait photos exceed it on the long axis.
func ScaleTarget(size Dimensions, maxSize float64) (Dimensions, error) {
	if !positive(maxSize) {
		return Dimensions{}, fmt.Errorf("%w: max size %v must be positive", ErrInvalidInput, maxSize)
	}
	if !size.valid() {
		return Dimensions{}, fmt.Errorf("%w: image size %vx%v must be positive", ErrInvalidInput, size.Width, size.Height)
	}

	ratio := size.Height / size.Width
	if ratio > 1 {
		return Dimensions{Width: maxSize, Height: maxSize * ratio}, nil
	}
	return Dimensions{Width: maxSize * ratio, Height: maxSize}, nil
}

// AspectFit scales size by the smaller of the two per-axis ratios so the
// result fits inside target without distortion.
func AspectFit(size, target Dimensions) Dimensions {
	widthRatio := target.Width / size.Width
	heightRatio := target.Height / size.Height
	if widthRatio > heightRatio {
		return Dimensions{Width: size.Width * heightRatio, Height: size.Height * heightRatio}
	}
	return Dimensions{Width: size.Width * widthRatio, Height: size.Height * widthRatio}
}

// MaxOutputSide is the longest edge Resize will render. JPEG cannot
// encode anything larger.
const MaxOutputSide = 65535

// ResizedSize returns the pixel size Resize produces for an image of the
// given size. Each axis is rounded to the nearest pixel, minimum 1, and
// saturates at math.MaxInt32.
func ResizedSize(size Dimensions, maxSize float64) (image.Point, error) {
	target, err := ScaleTarget(size, maxSize)
	if err != nil {
		return image.Point{}, err
	}
	fit := AspectFit(size, target)
	return image.Pt(toPixels(fit.Width), toPixels(fit.Height)), nil
}

func toPixels(v float64) int {
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

// Resize returns a new image scaled for upload with the default resampler.
// The source image is not modified.
func Resize(img image.Image, maxSize float64) (image.Image, error) {
	return ResizeWith(img, maxSize, ResampleCatmullRom)
}

// ResizeWith is like Resize but uses the given resampling backend.
//
// Narrow portrait strips scale to very tall outputs; a result with a side
// over MaxOutputSide or an area over DefaultMaxPixels is ErrInvalidInput
// and nothing is allocated for it.
func ResizeWith(img image.Image, maxSize float64, r Resampler) (image.Image, error) {
	return resizeLimited(img, maxSize, r, DefaultMaxPixels)
}

func resizeLimited(img image.Image, maxSize float64, r Resampler, maxPixels int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrInvalidInput)
	}
	size, err := ResizedSize(SizeOf(img), maxSize)
	if err != nil {
		return nil, err
	}
	if err := checkOutputSize(size, maxPixels); err != nil {
		return nil, err
	}
	return r.render(img, size)
}

func checkOutputSize(size image.Point, maxPixels int) error {
	if size.X > MaxOutputSide || size.Y > MaxOutputSide {
		return fmt.Errorf("%w: scaled size %dx%d exceeds %d px per side", ErrInvalidInput, size.X, size.Y, MaxOutputSide)
	}
	if maxPixels > 0 && size.X > maxPixels/size.Y {
		return fmt.Errorf("%w: scaled size %dx%d exceeds %d pixels", ErrInvalidInput, size.X, size.Y, maxPixels)
	}
	return nil
}
