package main

import (
	"flag"
	"io"
	"path/filepath"

	"github.com/woozymasta/texgen/dds"
)

func runDecode(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		in         = fs.String("in", "", "input .dds or .edds file")
		out        = fs.String("out", "", "output file, defaults to the input name with .png")
		ignoreEDDS = fs.Bool("ignore-edds", false, "treat Enfusion files as plain DDS")
		maxDim     = fs.Int("max-dim", dds.DefaultMaxDimension, "largest accepted face edge")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errUsage
	}

	logger := newLogger(stderr, *verbose)

	data, err := readFile(*in)
	if err != nil {
		return err
	}

	img, err := dds.DecodeWithOptions(data, &dds.DecodeOptions{
		MaxDimension: *maxDim,
		IgnoreEDDS:   *ignoreEDDS,
	})
	if err != nil {
		return err
	}

	dst := *out
	if dst == "" {
		dst = replaceExt(*in, ".png")
	}
	if err := writeImage(dst, img.ToImage(), nil); err != nil {
		return err
	}

	logger.Info("texture decoded",
		"path", filepath.Clean(dst),
		"width", img.Width,
		"height", img.Height,
		"format", img.Format.String(),
	)

	return nil
}

func replaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
