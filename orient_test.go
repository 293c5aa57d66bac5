package hotdog

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"
)

// jpegWithOrientation builds a JPEG carrying an EXIF APP1 segment with a
// single Orientation entry.
func jpegWithOrientation(t *testing.T, img image.Image, orientation uint16) []byte {
	t.Helper()

	plain, err := EncodeJPEG(img, 90)
	if err != nil {
		t.Fatalf("EncodeJPEG: %v", err)
	}

	var tiff bytes.Buffer
	tiff.WriteString("II*\x00")
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))      // IFD0 offset
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))      // entry count
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0112)) // Orientation
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))      // SHORT
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))      // count
	_ = binary.Write(&tiff, binary.LittleEndian, orientation)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0)) // padding
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0)) // no next IFD

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(plain[2:]) // skip the encoder's SOI
	return out.Bytes()
}

func TestExtractOrientation(t *testing.T) {
	t.Parallel()

	src := solidImage(16, 8, color.White)

	for _, want := range []uint16{1, 3, 6, 8} {
		data := jpegWithOrientation(t, src, want)
		if got := ExtractOrientation(data); got != int(want) {
			t.Errorf("ExtractOrientation(orientation=%d) = %d", want, got)
		}
	}
}

func TestExtractOrientationFallback(t *testing.T) {
	t.Parallel()

	plain, err := EncodeJPEG(solidImage(8, 8, color.White), 90)
	if err != nil {
		t.Fatalf("EncodeJPEG: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "garbage", data: []byte("not an image")},
		{name: "jpeg without exif", data: plain},
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")},
	}

	for _, tc := range tests {
		if got := ExtractOrientation(tc.data); got != OrientationNormal {
			t.Errorf("ExtractOrientation(%s) = %d, want %d", tc.name, got, OrientationNormal)
		}
	}
}

func TestApplyOrientation(t *testing.T) {
	t.Parallel()

	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	// 2x1: red on the left, blue on the right.
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, red)
	src.SetNRGBA(1, 0, blue)

	tests := []struct {
		orientation int
		size        image.Point
		first       color.NRGBA // pixel at (0,0)
	}{
		{orientation: 2, size: image.Pt(2, 1), first: blue},
		{orientation: 3, size: image.Pt(2, 1), first: blue},
		{orientation: 4, size: image.Pt(2, 1), first: red},
		{orientation: 5, size: image.Pt(1, 2), first: red},
		{orientation: 6, size: image.Pt(1, 2), first: red},
		{orientation: 7, size: image.Pt(1, 2), first: blue},
		{orientation: 8, size: image.Pt(1, 2), first: blue},
	}

	for _, tc := range tests {
		got := ApplyOrientation(src, tc.orientation)
		if size := got.Bounds().Size(); size != tc.size {
			t.Errorf("orientation %d: size = %v, want %v", tc.orientation, size, tc.size)
			continue
		}
		if c := color.NRGBAModel.Convert(got.At(0, 0)).(color.NRGBA); c != tc.first {
			t.Errorf("orientation %d: pixel (0,0) = %v, want %v", tc.orientation, c, tc.first)
		}
	}

	for _, o := range []int{0, 1, 9, -3} {
		if got := ApplyOrientation(src, o); got != image.Image(src) {
			t.Errorf("orientation %d: want source returned unchanged", o)
		}
	}
}
