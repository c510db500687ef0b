package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/bcn"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/woozymasta/texgen/dds"
)

type exportOptions struct {
	DXT1 bool
	LZ4  bool
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return data, nil
}

// writeImage picks the encoder from the extension of path.
func writeImage(path string, img image.Image, opts *exportOptions) error {
	if opts == nil {
		opts = &exportOptions{}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".dds", ".edds":
		return writeDDS(path, img, ext == ".edds", opts)
	case ".png", ".tif", ".tiff", ".bmp":
	default:
		return fmt.Errorf("unsupported output extension %q", ext)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	switch ext {
	case ".png":
		err = png.Encode(bw, img)
	case ".bmp":
		err = bmp.Encode(bw, img)
	default:
		err = tiff.Encode(bw, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}

	return f.Close()
}

// writeDDS stores img as an 8-bit texture with a full mip chain.
func writeDDS(path string, img image.Image, edds bool, opts *exportOptions) error {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	wo := &dds.WriteOptions{Format: bcn.FormatBGRA8}
	if opts.DXT1 {
		wo.Format = bcn.FormatDXT1
	}
	if edds {
		wo.Container = dds.ContainerEDDS
		wo.Compress = opts.LZ4
	}

	return dds.Write(rgba, path, wo)
}
