package convert

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedFormats lists the source encodings the decoder recognizes
var SupportedFormats = []string{"png", "jpeg", "gif", "webp", "bmp", "tiff"}

// ErrUnknownFormat is returned when the payload matches no registered codec.
var ErrUnknownFormat = image.ErrFormat

// Decode decodes data with the registered codecs and returns the format name.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrUnknownFormat
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, err
	}
	return img, format, nil
}

// IsUnknownFormat reports whether err means the bytes are not a recognizable image
func IsUnknownFormat(err error) bool {
	return errors.Is(err, image.ErrFormat)
}

// Normalize returns img as full colour plus alpha at the source bit depth.
// 16-bit sources (RGBA64, Gray16) become *image.NRGBA64; palette, gray, YCbCr,
// CMYK and premultiplied RGBA sources become *image.NRGBA. NRGBA and NRGBA64
// images are returned unchanged.
func Normalize(img image.Image) image.Image {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64:
		return img
	}

	bounds := img.Bounds()
	var dst draw.Image
	if is16Bit(img.ColorModel()) {
		dst = image.NewNRGBA64(bounds)
	} else {
		dst = image.NewNRGBA(bounds)
	}
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}

func is16Bit(m color.Model) bool {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	}
	return false
}
