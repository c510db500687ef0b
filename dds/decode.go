package dds

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultMaxDimension bounds width and height when no option overrides it.
const DefaultMaxDimension = 16384

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// MaxDimension rejects surfaces wider or taller than this. Zero uses
	// DefaultMaxDimension.
	MaxDimension int

	// IgnoreEDDS treats ENF1-marked files as plain DDS payloads.
	IgnoreEDDS bool
}

func (o *DecodeOptions) maxDimension() int {
	if o == nil || o.MaxDimension <= 0 {
		return DefaultMaxDimension
	}

	return o.MaxDimension
}

func (o *DecodeOptions) edds() bool {
	return o == nil || !o.IgnoreEDDS
}

// Config describes a DDS surface without decoding its payload.
type Config struct {
	// Width and Height are the decoded image size; a cubemap cross is
	// four faces wide and three faces tall.
	Width  int
	Height int

	// FaceWidth and FaceHeight are the stored surface size.
	FaceWidth  int
	FaceHeight int

	Source      SourceFormat
	Format      Format
	MipMapCount int
	Cubemap     bool
	EDDS        bool
}

// DecodeConfig validates the header and reports what Decode would produce.
func DecodeConfig(data []byte) (Config, error) {
	return decodeConfig(data, nil)
}

func decodeConfig(data []byte, opts *DecodeOptions) (Config, error) {
	h, err := parseHeader(data)
	if err != nil {
		return Config{}, err
	}
	if !h.isTexture() {
		return Config{}, fmt.Errorf("%w: caps=0x%08x", ErrNotTexture, h.Caps)
	}

	width, height := int(h.Width), int(h.Height)
	if width == 0 || height == 0 {
		return Config{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if limit := opts.maxDimension(); width > limit || height > limit {
		return Config{}, fmt.Errorf("%w: %dx%d exceeds %d", ErrSizeOverflow, width, height, limit)
	}

	f := matchFormat(h.PixelFormat)
	if f == SourceUnknown {
		closest, name := describeFormat(h.PixelFormat)
		Logger().Warn("dds: unrecognized pixel format",
			"format", name,
			"closest", closest,
			"header", h,
		)
		pf := h.PixelFormat
		return Config{}, fmt.Errorf(
			"%w: %s (size=%d flags=0x%08x fourcc=0x%08x bits=%d masks=%08x/%08x/%08x/%08x)",
			ErrUnsupportedFormat, name, pf.Size, pf.Flags, pf.FourCC, pf.RGBBitCount,
			pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask,
		)
	}

	cfg := Config{
		Width:       width,
		Height:      height,
		FaceWidth:   width,
		FaceHeight:  height,
		Source:      f,
		Format:      f.Output(),
		MipMapCount: h.mipCount(),
		Cubemap:     h.isCubemap(),
		EDDS:        opts.edds() && h.isEDDS(),
	}
	if cfg.Cubemap {
		cfg.Width = width * crossColumns
		cfg.Height = height * crossRows
	}

	return cfg, nil
}

// Decode decodes a DDS or EDDS buffer into an Image.
func Decode(data []byte) (*Image, error) {
	return DecodeWithOptions(data, nil)
}

// DecodeWithOptions decodes with the given options. Nil opts uses defaults.
// On error no image is returned.
func DecodeWithOptions(data []byte, opts *DecodeOptions) (*Image, error) {
	cfg, err := decodeConfig(data, opts)
	if err != nil {
		return nil, err
	}

	// header is already validated by decodeConfig
	h, _ := parseHeader(data)
	payload := data[dataOffset:]

	Logger().Debug("dds: decoding",
		"source", cfg.Source.String(),
		"width", cfg.FaceWidth,
		"height", cfg.FaceHeight,
		"mips", cfg.MipMapCount,
		"cubemap", cfg.Cubemap,
		"edds", cfg.EDDS,
	)

	if cfg.Cubemap {
		if cfg.EDDS {
			return nil, fmt.Errorf("%w: EDDS cubemap", ErrUnsupportedFormat)
		}
		return decodeCube(h, cfg.Source, payload)
	}

	return decodeFlat(cfg, payload)
}

// decodeFlat decodes the base level of a 2D surface.
func decodeFlat(cfg Config, payload []byte) (*Image, error) {
	f, width, height := cfg.Source, cfg.FaceWidth, cfg.FaceHeight

	need, err := faceSize(f, width, height, cfg.MipMapCount)
	if err != nil {
		return nil, err
	}

	if cfg.EDDS {
		base, err := readLargestLevel(payload, f, width, height, cfg.MipMapCount)
		if err != nil {
			return nil, err
		}
		payload = base
	} else if len(payload) < need {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, len(payload))
	}

	img, err := newImage(width, height, cfg.Format)
	if err != nil {
		return nil, err
	}
	img.TopDown = topDown(f, width, height)
	decodeSurface(img.Pix, img.Stride(), 0, 0, f, payload, width, height, false)

	return img, nil
}

// DecodeReader reads the whole stream and decodes it.
func DecodeReader(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	return Decode(data)
}

// DecodeFile reads and decodes a DDS or EDDS file.
func DecodeFile(path string) (*Image, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	return Decode(data)
}
