package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/woozymasta/bcn"
)

// dataOffset is where the payload starts: magic plus the fixed header.
const dataOffset = 4 + bcn.DDSHeaderSize

// Cube face bits of the second caps word; bcn only names the cubemap bit.
const (
	caps2PositiveX = 0x00000400
	caps2NegativeX = 0x00000800
	caps2PositiveY = 0x00001000
	caps2NegativeY = 0x00002000
	caps2PositiveZ = 0x00004000
	caps2NegativeZ = 0x00008000

	// caps2AllFaces is the only cubemap flag set accepted by the decoder.
	caps2AllFaces = bcn.DDSCaps2Cubemap |
		caps2PositiveX | caps2NegativeX |
		caps2PositiveY | caps2NegativeY |
		caps2PositiveZ | caps2NegativeZ
)

// enfusionMarker is stored in Reserved1[1] of EDDS headers.
var enfusionMarker = makeFourCC('E', 'N', 'F', '1')

// header wraps the bcn header with the decoder's queries.
type header struct {
	bcn.DDSHeader
}

// parseHeader checks the magic and reads the fixed header that follows it.
func parseHeader(data []byte) (*header, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadMagic, len(data))
	}

	hdr, err := bcn.ReadDDSHeader(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, bcn.ErrInvalidDDSMagic) {
			return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, binary.LittleEndian.Uint32(data))
		}
		return nil, fmt.Errorf("%w: %v", ErrHeaderRead, err)
	}

	return &header{DDSHeader: *hdr}, nil
}

func (h *header) isTexture() bool {
	return h.Caps&uint32(bcn.DDSCapsTexture) != 0
}

func (h *header) isCubemap() bool {
	return h.Caps2&bcn.DDSCaps2Cubemap != 0
}

func (h *header) isEDDS() bool {
	return h.Reserved1[1] == enfusionMarker
}

// mipCount returns the number of stored mip levels per face.
func (h *header) mipCount() int {
	if h.Caps&uint32(bcn.DDSCapsMipmap) != 0 && h.MipMapCount > 0 {
		return int(h.MipMapCount)
	}

	return 1
}

// LogValue dumps every header field, used when a file cannot be decoded.
func (h *header) LogValue() slog.Value {
	pf := h.PixelFormat
	return slog.GroupValue(
		slog.Any("size", h.Size),
		slog.String("flags", fmt.Sprintf("0x%08x", h.Flags)),
		slog.Any("width", h.Width),
		slog.Any("height", h.Height),
		slog.Any("pitch_or_linear_size", h.PitchOrLinearSize),
		slog.Any("depth", h.Depth),
		slog.Any("mip_count", h.MipMapCount),
		slog.String("caps", fmt.Sprintf("0x%08x", h.Caps)),
		slog.String("caps2", fmt.Sprintf("0x%08x", h.Caps2)),
		slog.Group("pixel_format",
			slog.Any("size", pf.Size),
			slog.String("flags", fmt.Sprintf("0x%08x", pf.Flags)),
			slog.String("fourcc", fmt.Sprintf("0x%08x (%q)", pf.FourCC, intToFourCC(pf.FourCC))),
			slog.Any("rgb_bit_count", pf.RGBBitCount),
			slog.String("r_mask", fmt.Sprintf("0x%08x", pf.RBitMask)),
			slog.String("g_mask", fmt.Sprintf("0x%08x", pf.GBitMask)),
			slog.String("b_mask", fmt.Sprintf("0x%08x", pf.BBitMask)),
			slog.String("a_mask", fmt.Sprintf("0x%08x", pf.ABitMask)),
		),
	)
}
