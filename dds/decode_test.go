package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/bcn"
)

func TestDecodeHeaderErrors(t *testing.T) {
	t.Parallel()

	badMagic := buildDDS(t, testHeader(4, 4, SourceBGRA8), make([]byte, 64))
	copy(badMagic, "XDS ")

	notTexture := testHeader(4, 4, SourceBGRA8)
	notTexture.Caps = 0

	zeroWidth := testHeader(0, 4, SourceBGRA8)

	badHeaderSize := testHeader(4, 4, SourceBGRA8)
	badHeaderSize.Size = 100

	badPixelFormatSize := testHeader(4, 4, SourceBGRA8)
	badPixelFormatSize.PixelFormat.Size = 24

	tooLarge := testHeader(DefaultMaxDimension+1, 1, SourceBGRA8)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: ErrBadMagic},
		{name: "bad-magic", data: badMagic, wantErr: ErrBadMagic},
		{name: "short-header", data: []byte{'D', 'D', 'S', ' ', 124, 0}, wantErr: ErrHeaderRead},
		{name: "header-size", data: buildDDS(t, badHeaderSize, make([]byte, 64)), wantErr: ErrHeaderRead},
		{name: "pixel-format-size", data: buildDDS(t, badPixelFormatSize, make([]byte, 64)), wantErr: ErrHeaderRead},
		{name: "not-texture", data: buildDDS(t, notTexture, make([]byte, 64)), wantErr: ErrNotTexture},
		{name: "zero-width", data: buildDDS(t, zeroWidth, nil), wantErr: ErrInvalidDimensions},
		{name: "too-large", data: buildDDS(t, tooLarge, nil), wantErr: ErrSizeOverflow},
		{name: "truncated", data: buildDDS(t, testHeader(4, 4, SourceBGRA8), make([]byte, 63)), wantErr: ErrTruncated},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			img, err := Decode(tc.data)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if img != nil {
				t.Fatalf("expected no image on error")
			}
		})
	}
}

func TestDecodeUnsupportedFormatLogsHeader(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	h := testHeader(4, 4, SourceBC1)
	h.PixelFormat.FourCC = makeFourCC('D', 'X', 'T', '5')

	img, err := Decode(buildDDS(t, h, make([]byte, 16)))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if img != nil {
		t.Fatalf("expected no image on error")
	}
	if !strings.Contains(err.Error(), "DXT5") {
		t.Fatalf("error lacks format name: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"unrecognized pixel format", "DXT5", "header.width=4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDecodeBGRA8RoundTrip(t *testing.T) {
	t.Parallel()

	const w, h = 3, 2
	payload := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		// B, G, R, A
		payload[i*4+0] = byte(10 + i)
		payload[i*4+1] = byte(20 + i)
		payload[i*4+2] = byte(30 + i)
		payload[i*4+3] = byte(40 + i)
	}

	img, err := Decode(buildDDS(t, testHeader(w, h, SourceBGRA8), payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != w || img.Height != h || img.Format != FormatRGBA8 {
		t.Fatalf("unexpected image %dx%d %v", img.Width, img.Height, img.Format)
	}
	if !img.TopDown {
		t.Fatalf("BGRA8 surfaces keep file row order")
	}

	for i := 0; i < w*h; i++ {
		got := pixelAt(img, i%w, i/w)
		want := [4]byte{byte(30 + i), byte(20 + i), byte(10 + i), byte(40 + i)}
		if got != want {
			t.Fatalf("pixel %d = %v, want %v", i, got, want)
		}
	}
}

func TestDecodeRGBA16FFlip(t *testing.T) {
	t.Parallel()

	// 1x2: top row 1.0 in every channel, bottom row 0.5
	payload := make([]byte, 16)
	for c := 0; c < 4; c++ {
		binary.LittleEndian.PutUint16(payload[c*2:], 0x3c00)
		binary.LittleEndian.PutUint16(payload[8+c*2:], 0x3800)
	}

	img, err := Decode(buildDDS(t, testHeader(1, 2, SourceRGBA16F), payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Format != FormatRGBA16F || img.Stride() != 8 {
		t.Fatalf("unexpected format %v stride %d", img.Format, img.Stride())
	}
	if !bytes.Equal(img.Pix[:8], payload[8:]) || !bytes.Equal(img.Pix[8:], payload[:8]) {
		t.Fatalf("rows not flipped: %v", img.Pix)
	}
}

func TestDecodeMipChain(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		// 4x4 + 2x2 + 1x1 BGRA8
		payload := make([]byte, 64+16+4)
		for i := range payload[:64] {
			payload[i] = 0xaa
		}
		img, err := Decode(buildDDS(t, withMips(testHeader(4, 4, SourceBGRA8), 3), payload))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(img.Pix) != 64 {
			t.Fatalf("len(Pix) = %d, want 64", len(img.Pix))
		}
	})

	t.Run("too-many-levels", func(t *testing.T) {
		t.Parallel()

		payload := make([]byte, 256)
		_, err := Decode(buildDDS(t, withMips(testHeader(4, 4, SourceBGRA8), 4), payload))
		if !errors.Is(err, ErrMalformedMipChain) {
			t.Fatalf("expected ErrMalformedMipChain, got %v", err)
		}
	})

	t.Run("edds-too-many-levels", func(t *testing.T) {
		t.Parallel()

		// 4x4 cannot hold a fourth level, even as an EDDS block table
		mips := [][]byte{make([]byte, 64), make([]byte, 16), make([]byte, 4), make([]byte, 4)}
		var buf bytes.Buffer
		opts := &WriteOptions{Container: ContainerEDDS}
		if err := EncodeFromBlocks(&buf, bcn.FormatBGRA8, 4, 4, mips, opts); err != nil {
			t.Fatalf("EncodeFromBlocks: %v", err)
		}

		cfg, err := DecodeConfig(buf.Bytes())
		if err != nil {
			t.Fatalf("DecodeConfig: %v", err)
		}
		if !cfg.EDDS || cfg.MipMapCount != 4 {
			t.Fatalf("config = %+v", cfg)
		}

		img, err := Decode(buf.Bytes())
		if !errors.Is(err, ErrMalformedMipChain) {
			t.Fatalf("expected ErrMalformedMipChain, got %v", err)
		}
		if img != nil {
			t.Fatalf("expected no image on error")
		}
	})

	t.Run("short-chain-payload", func(t *testing.T) {
		t.Parallel()

		payload := make([]byte, 64+16)
		_, err := Decode(buildDDS(t, withMips(testHeader(4, 4, SourceBGRA8), 3), payload))
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("expected ErrTruncated, got %v", err)
		}
	})
}

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	h := testHeader(16, 16, SourceRGBA16F)
	h.Caps2 = caps2AllFaces

	cfg, err := DecodeConfig(buildDDS(t, h, nil))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}

	want := Config{
		Width:       64,
		Height:      48,
		FaceWidth:   16,
		FaceHeight:  16,
		Source:      SourceRGBA16F,
		Format:      FormatRGBA16F,
		MipMapCount: 1,
		Cubemap:     true,
	}
	if cfg != want {
		t.Fatalf("DecodeConfig = %+v, want %+v", cfg, want)
	}
}

func TestDecodeOptionsMaxDimension(t *testing.T) {
	t.Parallel()

	data := buildDDS(t, testHeader(8, 8, SourceBGRA8), make([]byte, 8*8*4))

	_, err := DecodeWithOptions(data, &DecodeOptions{MaxDimension: 4})
	if !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("expected ErrSizeOverflow, got %v", err)
	}

	if _, err := DecodeWithOptions(data, &DecodeOptions{MaxDimension: 8}); err != nil {
		t.Fatalf("DecodeWithOptions: %v", err)
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tex.dds")
	data := buildDDS(t, testHeader(4, 4, SourceBC1), bc1Bytes(0xf800, 0xf800, 0))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	img, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got := pixelAt(img, 0, 0); got != [4]byte{255, 0, 0, 255} {
		t.Fatalf("pixel = %v", got)
	}

	if _, err := DecodeFile(filepath.Join(dir, "missing.dds")); !errors.Is(err, ErrOpenFile) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}

	img, err = DecodeReader(bytes.NewReader(data))
	if err != nil || img.Width != 4 {
		t.Fatalf("DecodeReader: %v", err)
	}
}

func TestDecodeIgnoresUnknownFlagsOnKnownTexture(t *testing.T) {
	t.Parallel()

	h := testHeader(4, 4, SourceBGRA8)
	h.Flags |= uint32(bcn.DDSFlagPitch)
	h.PitchOrLinearSize = 16

	if _, err := Decode(buildDDS(t, h, make([]byte, 64))); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}
