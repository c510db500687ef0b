package dds

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// SourceFormat identifies a recognized pixel-format descriptor.
type SourceFormat uint8

const (
	// SourceUnknown is any descriptor outside the known table.
	SourceUnknown SourceFormat = iota
	// SourceBC1 is FourCC "DXT1" block compression.
	SourceBC1
	// SourceBGRA8 is uncompressed A8R8G8B8 (bytes stored B, G, R, A).
	SourceBGRA8
	// SourceRGBA16F is FourCC 113, D3DFMT_A16B16G16R16F.
	SourceRGBA16F
)

// fourCCRGBA16F is the numeric FourCC of half-float RGBA surfaces.
const fourCCRGBA16F = 113

// knownFormats is compared field by field against the header descriptor.
var knownFormats = [...]struct {
	pf     bcn.DDSPixelFormat
	format SourceFormat
}{
	{
		pf: bcn.DDSPixelFormat{
			Size:   bcn.DDSPixelFormatSize,
			Flags:  uint32(bcn.DDSPFFourCC),
			FourCC: makeFourCC('D', 'X', 'T', '1'),
		},
		format: SourceBC1,
	},
	{
		pf: bcn.DDSPixelFormat{
			Size:        bcn.DDSPixelFormatSize,
			Flags:       uint32(bcn.DDSPFRGB | bcn.DDSPFAlphaPixels),
			RGBBitCount: 32,
			RBitMask:    0x00ff0000,
			GBitMask:    0x0000ff00,
			BBitMask:    0x000000ff,
			ABitMask:    0xff000000,
		},
		format: SourceBGRA8,
	},
	{
		pf: bcn.DDSPixelFormat{
			Size:   bcn.DDSPixelFormatSize,
			Flags:  uint32(bcn.DDSPFFourCC),
			FourCC: fourCCRGBA16F,
		},
		format: SourceRGBA16F,
	},
}

// matchFormat resolves a descriptor against knownFormats.
func matchFormat(pf bcn.DDSPixelFormat) SourceFormat {
	for _, k := range knownFormats {
		if k.pf == pf {
			return k.format
		}
	}

	return SourceUnknown
}

// String returns the format name.
func (f SourceFormat) String() string {
	switch f {
	case SourceBC1:
		return "BC1"
	case SourceBGRA8:
		return "BGRA8"
	case SourceRGBA16F:
		return "RGBA16F"
	default:
		return "unknown"
	}
}

// Output returns the pixel format the source decodes into.
func (f SourceFormat) Output() Format {
	if f == SourceRGBA16F {
		return FormatRGBA16F
	}

	return FormatRGBA8
}

// describeFormat names a descriptor for diagnostics, including formats the
// decoder does not handle.
func describeFormat(pf bcn.DDSPixelFormat) (bcn.Format, string) {
	if (pf.Flags & uint32(bcn.DDSPFFourCC)) != 0 {
		if pf.FourCC == fourCCRGBA16F {
			return bcn.FormatUnknown, "A16B16G16R16F"
		}
		fourCCStr := intToFourCC(pf.FourCC)
		switch fourCCStr {
		case "DXT1":
			return bcn.FormatDXT1, fourCCStr
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCCStr
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCCStr
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCCStr
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCCStr
		default:
			return bcn.FormatUnknown, fmt.Sprintf("FourCC %q", fourCCStr)
		}
	}

	if (pf.Flags&uint32(bcn.DDSPFRGB)) != 0 && pf.RGBBitCount == 32 {
		if pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x00ff0000 && pf.ABitMask == 0xff000000 {
			return bcn.FormatRGBA8, "RGBA8"
		}
		if pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x000000ff {
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	if (pf.Flags&uint32(bcn.DDSPFLuminance)) != 0 && pf.RGBBitCount == 8 {
		return bcn.FormatUnknown, "LUMINANCE8"
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// levelSize returns the payload size of one mip level. A BC1 level smaller
// than a block in either dimension is stored as raw BGRA8 when it is the
// base level.
func levelSize(f SourceFormat, w, h, level int) (int, error) {
	switch f {
	case SourceBC1:
		if level == 0 && (w < 4 || h < 4) {
			return checkedArea(w, h, 4)
		}
		return checkedArea((w+3)/4, (h+3)/4, 8)
	case SourceBGRA8:
		return checkedArea(w, h, 4)
	case SourceRGBA16F:
		return checkedArea(w, h, 8)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// expectedDataLength returns the standard payload size of a writable format.
func expectedDataLength(format bcn.Format, width, height int) int {
	switch format {
	case bcn.FormatDXT1:
		return ((width + 3) / 4) * ((height + 3) / 4) * 8
	case bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

func enfusionReserved1() [11]uint32 {
	return [11]uint32{
		0,
		enfusionMarker,
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
}

// makeDDSHeader builds the header for a written surface. Enfusion headers
// carry the ENF1 marker that switches readers to the EDDS block table.
func makeDDSHeader(width, height, mipMapCount uint32, format bcn.Format, enfusion bool) (*bcn.DDSHeader, error) {
	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat)
	caps := uint32(bcn.DDSCapsTexture)
	if mipMapCount > 1 {
		flags |= bcn.DDSFlagMipmapCount
		caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       flags,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        caps,
	}
	if enfusion {
		hdr.Reserved1 = enfusionReserved1()
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize

	switch format {
	case bcn.FormatDXT1:
		hdr.Flags |= bcn.DDSFlagLinearSize
		hdr.PixelFormat.Flags = bcn.DDSPFFourCC
		hdr.PixelFormat.FourCC = makeFourCC('D', 'X', 'T', '1')
		hdr.PitchOrLinearSize = uint32(expectedDataLength(format, int(width), int(height)))
	case bcn.FormatBGRA8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.RBitMask = 0x00ff0000
		hdr.PixelFormat.GBitMask = 0x0000ff00
		hdr.PixelFormat.BBitMask = 0x000000ff
		hdr.PixelFormat.ABitMask = 0xff000000
		hdr.PitchOrLinearSize = width * 4
	default:
		return nil, ErrInvalidFormat
	}

	return hdr, nil
}
