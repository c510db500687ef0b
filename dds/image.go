package dds

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/x448/float16"
)

// Format is the pixel layout of a decoded Image.
type Format uint8

const (
	// FormatRGBA8 is 8-bit RGBA, 4 bytes per pixel.
	FormatRGBA8 Format = iota
	// FormatRGBA16F is IEEE half-float RGBA, 8 bytes per pixel, little-endian.
	FormatRGBA16F

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of color channels.
	Channels int

	// BitsPerChannel is the number of bits per color channel.
	BitsPerChannel int

	// IsFloat indicates half-float channels.
	IsFloat bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA8: {
		BytesPerPixel:  4,
		Channels:       4,
		BitsPerChannel: 8,
	},
	FormatRGBA16F: {
		BytesPerPixel:  8,
		Channels:       4,
		BitsPerChannel: 16,
		IsFloat:        true,
	},
}

// Info returns metadata for the format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}

	return formatInfoTable[f]
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA16F:
		return "RGBA16F"
	default:
		return "unknown"
	}
}

// Image is a decoded pixel buffer owned by the caller.
//
// Rows are stored bottom-up: row 0 is the visually bottom row. Surfaces that
// the decoder copies without a flip (2D BGRA8 and sub-block BC1 data) keep the
// file's top-down order and report TopDown.
type Image struct {
	Width   int
	Height  int
	Format  Format
	TopDown bool
	Pix     []byte
}

// newImage allocates a zero-filled buffer, rejecting sizes that overflow.
func newImage(width, height int, format Format) (*Image, error) {
	n, err := checkedArea(width, height, format.Info().BytesPerPixel)
	if err != nil {
		return nil, err
	}

	return &Image{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]byte, n),
	}, nil
}

// Stride returns the number of bytes per row.
func (img *Image) Stride() int {
	return img.Width * img.Format.Info().BytesPerPixel
}

// PixOffset returns the offset of the first byte of pixel (x, y) in Pix,
// where y counts buffer rows.
func (img *Image) PixOffset(x, y int) int {
	return y*img.Stride() + x*img.Format.Info().BytesPerPixel
}

// ToImage converts the buffer to a top-down Go image: *image.NRGBA for
// RGBA8 and *image.NRGBA64 for RGBA16F, with float channels clamped to [0, 1].
func (img *Image) ToImage() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	stride := img.Stride()

	if img.Format == FormatRGBA16F {
		out := image.NewNRGBA64(rect)
		for y := 0; y < img.Height; y++ {
			src := img.Pix[img.rowIndex(y)*stride:]
			dst := out.Pix[y*out.Stride:]
			for i := 0; i < img.Width*4; i++ {
				v := float16.Frombits(binary.LittleEndian.Uint16(src[i*2:])).Float32()
				binary.BigEndian.PutUint16(dst[i*2:], unitToUint16(v))
			}
		}
		return out
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < img.Height; y++ {
		row := img.rowIndex(y)
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], img.Pix[row*stride:(row+1)*stride])
	}

	return out
}

// rowIndex maps a top-down image row to a buffer row.
func (img *Image) rowIndex(y int) int {
	if img.TopDown {
		return y
	}

	return img.Height - 1 - y
}

func unitToUint16(v float32) uint16 {
	switch {
	case math.IsNaN(float64(v)) || v <= 0:
		return 0
	case v >= 1:
		return math.MaxUint16
	default:
		return uint16(math.Round(float64(v) * math.MaxUint16))
	}
}
