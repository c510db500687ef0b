// Command texgen generates terrain height maps and converts DDS textures.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/woozymasta/texgen/dds"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "texgen: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	switch args[0] {
	case "terrain":
		return runTerrain(args[1:], stderr)
	case "decode":
		return runDecode(args[1:], stderr)
	case "help", "-h", "-help", "--help":
		usage(stderr)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  texgen terrain [flags]   generate a height map (.png, .tiff, .bmp, .dds, .edds)
  texgen decode [flags]    decode a DDS/EDDS texture (.png, .tiff, .bmp)

Run "texgen <command> -h" for the flags of a command.
`)
}

// newLogger builds the stderr logger and hands it to the dds package.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	dds.SetLogger(logger)

	return logger
}
