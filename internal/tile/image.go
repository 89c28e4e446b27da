package tile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// srgbToLinear decodes an 8-bit sRGB code value to linear light.
var srgbToLinear [256]float32

func init() {
	for i := range srgbToLinear {
		r, _, _ := colorful.Color{R: float64(i) / 255}.LinearRgb()
		srgbToLinear[i] = float32(r)
	}
}

// FromImage converts an 8-bit sRGB image into a linear RGBA tile. The tile
// origin is the image's top-left pixel regardless of img.Bounds().Min.
//
// Alpha is taken straight (non-premultiplied) and scaled to 0-1.
func FromImage(img image.Image) *Tile {
	src := imaging.Clone(img)
	b := src.Bounds()
	t := New(ROI{Width: b.Dx(), Height: b.Dy(), Scale: 1})

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := src.PixOffset(x+b.Min.X, y+b.Min.Y)
			o := t.Offset(x, y)
			t.Pix[o+0] = srgbToLinear[src.Pix[i+0]]
			t.Pix[o+1] = srgbToLinear[src.Pix[i+1]]
			t.Pix[o+2] = srgbToLinear[src.Pix[i+2]]
			t.Pix[o+3] = float32(src.Pix[i+3]) / 255
		}
	}
	return t
}

// ToImage encodes a linear tile back to 8-bit sRGB. Samples outside the
// displayable range are clamped here, at the display boundary, and NaN
// samples become 0.
func ToImage(t *Tile) *image.NRGBA {
	w, h := t.ROI.Width, t.ROI.Height
	dst := imaging.New(w, h, color.NRGBA{})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := t.Offset(x, y)
			c := colorful.LinearRgb(
				finite(t.Pix[o+0]), finite(t.Pix[o+1]), finite(t.Pix[o+2]),
			).Clamped()
			r, g, b := c.RGB255()
			dst.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: alpha8(t.Pix[o+3])})
		}
	}
	return dst
}

// EncodedImage is a PNG rendering of a tile.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG renders t as a base64 PNG.
func EncodePNG(t *Tile) (*EncodedImage, error) {
	img := ToImage(t)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode tile: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func finite(v float32) float64 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func alpha8(a float32) uint8 {
	f := finite(a)
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Thumbnail converts img to a linear tile no larger than maxSize on either
// side, preserving aspect ratio. Images already within bounds are converted
// at full size.
func Thumbnail(img image.Image, maxSize int) *Tile {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return FromImage(img)
	}
	small := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	t := FromImage(small)
	t.ROI.Scale = float64(small.Bounds().Dx()) / float64(b.Dx())
	return t
}
