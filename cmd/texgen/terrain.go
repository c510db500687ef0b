package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/woozymasta/texgen/terrain"
)

func runTerrain(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("terrain", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		algo      = fs.String("algo", "midpoint", "algorithm: fault or midpoint")
		size      = fs.Int("size", 257, "vertices per edge: 33, 65, 129, 257, 513 or 1025")
		minZ      = fs.Float64("min", 0, "lowest height")
		maxZ      = fs.Float64("max", 255, "highest height")
		iter      = fs.Int("iter", 128, "fault cuts")
		filter    = fs.Float64("filter", 0.5, "fault erosion strength in [0, 1]")
		roughness = fs.Float64("roughness", 1, "midpoint roughness, higher is smoother")
		smooth    = fs.Int("smooth", 0, "midpoint blur passes, 0 for default, negative to disable")
		seed      = fs.Int64("seed", 0, "random seed, 0 seeds from the clock")
		out       = fs.String("out", "terrain.png", "output file")
		dxt1      = fs.Bool("dxt1", false, "write DXT1 instead of BGRA8 for .dds/.edds")
		lz4       = fs.Bool("lz4", true, "compress .edds blocks with LZ4")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, *verbose)

	class, err := terrain.ParseSizeClass(*size)
	if err != nil {
		return err
	}

	var gen terrain.Generator
	switch strings.ToLower(*algo) {
	case "fault":
		gen = terrain.FaultFormation{
			MinZ:       float32(*minZ),
			MaxZ:       float32(*maxZ),
			Iterations: *iter,
			Filter:     float32(*filter),
		}
	case "midpoint", "diamond-square":
		gen = terrain.MidpointDisplacement{
			MinZ:      float32(*minZ),
			MaxZ:      float32(*maxZ),
			Roughness: float32(*roughness),
			Smoothing: *smooth,
		}
	default:
		return fmt.Errorf("unknown algorithm %q", *algo)
	}

	src := terrain.NewTimeSource()
	if *seed != 0 {
		src = terrain.NewSource(*seed)
	}

	start := time.Now()
	field, err := gen.Generate(class, src)
	if err != nil {
		return err
	}

	lo, hi := field.MinMax()
	logger.Debug("terrain generated",
		"algo", *algo,
		"size", field.Size,
		"min", lo,
		"max", hi,
		"elapsed", time.Since(start),
	)

	img := field.Gray16(float32(*minZ), float32(*maxZ))
	if err := writeImage(*out, img, &exportOptions{DXT1: *dxt1, LZ4: *lz4}); err != nil {
		return err
	}

	logger.Info("terrain written", "path", filepath.Clean(*out), "size", field.Size)

	return nil
}
