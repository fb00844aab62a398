package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
)

const usage = "Usage: raycast [options] width height scene.json output.ppm"

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Printf("raycast: %v", err)
		os.Exit(1)
	}
}

// run parses args, renders the scene and writes the image
func run(args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("raycast", flag.ContinueOnError)
	flags.SetOutput(stderr)
	workers := flags.Int("workers", renderer.DefaultWorkers(), "Number of parallel render workers")
	format := flags.String("format", "p6", "PPM encoding: 'p3' (ASCII) or 'p6' (binary); ignored for .png output")
	quiet := flags.Bool("quiet", false, "Suppress progress output")
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 4 {
		flags.Usage()
		return fmt.Errorf("expected 4 arguments, got %d", flags.NArg())
	}

	width, err := parseDimension("width", flags.Arg(0))
	if err != nil {
		return err
	}
	height, err := parseDimension("height", flags.Arg(1))
	if err != nil {
		return err
	}
	ppmFormat, err := loaders.ParsePPMFormat(*format)
	if err != nil {
		return err
	}
	sceneFile, outputFile := flags.Arg(2), flags.Arg(3)

	var logger core.Logger = renderer.NewDefaultLogger()
	if *quiet {
		logger = renderer.NewDiscardLogger()
	}

	s, err := loaders.LoadScene(sceneFile)
	if err != nil {
		return fmt.Errorf("loading %s: %w", sceneFile, err)
	}
	logger.Printf("Loaded %s: %d objects\n", sceneFile, len(s.Objects()))

	config := renderer.DefaultConfig()
	config.Width, config.Height, config.NumWorkers = width, height, *workers
	frame, _, err := renderer.NewRaycaster(s, config, logger).Render(context.Background())
	if err != nil {
		return err
	}

	if err := loaders.SaveImage(outputFile, frame, ppmFormat); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outputFile)
	return nil
}

func parseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s %d", renderer.ErrInvalidDimensions, name, n)
	}
	return n, nil
}
