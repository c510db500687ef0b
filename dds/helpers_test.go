package dds

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/woozymasta/bcn"
)

// testHeader returns a texture header for one of the known formats.
func testHeader(width, height int, f SourceFormat) bcn.DDSHeader {
	h := bcn.DDSHeader{
		Size:   bcn.DDSHeaderSize,
		Flags:  uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat),
		Width:  uint32(width),  //nolint:gosec // test sizes are small
		Height: uint32(height), //nolint:gosec // test sizes are small
		Depth:  1,
		Caps:   uint32(bcn.DDSCapsTexture),
	}
	for _, k := range knownFormats {
		if k.format == f {
			h.PixelFormat = k.pf
		}
	}

	return h
}

// withMips marks the header as carrying n mip levels.
func withMips(h bcn.DDSHeader, n int) bcn.DDSHeader {
	h.MipMapCount = uint32(n) //nolint:gosec // test sizes are small
	h.Flags |= uint32(bcn.DDSFlagMipmapCount)
	h.Caps |= uint32(bcn.DDSCapsComplex | bcn.DDSCapsMipmap)

	return h
}

// buildDDS serializes magic, header and payload the way the writer does.
func buildDDS(tb testing.TB, h bcn.DDSHeader, payload []byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	if err := bcn.WriteDDSMagic(&buf); err != nil {
		tb.Fatalf("write magic: %v", err)
	}
	if err := bcn.WriteDDSHeader(&buf, &h); err != nil {
		tb.Fatalf("write header: %v", err)
	}
	buf.Write(payload)

	return buf.Bytes()
}

// bc1Bytes packs one BC1 block.
func bc1Bytes(c0, c1 uint16, indices uint32) []byte {
	b := make([]byte, bc1BlockSize)
	binary.LittleEndian.PutUint16(b[0:], c0)
	binary.LittleEndian.PutUint16(b[2:], c1)
	binary.LittleEndian.PutUint32(b[4:], indices)

	return b
}

// pixelAt returns the 4 bytes of an RGBA8 pixel at buffer position (x, y).
func pixelAt(img *Image, x, y int) [4]byte {
	var p [4]byte
	copy(p[:], img.Pix[img.PixOffset(x, y):])

	return p
}
