// Command framedump prints the frames of a streamcodec file according to a TOML
// layout describing the order and kind of frames the file was written with.
//
// Usage:
//
//	framedump -layout layout.toml -file data.bin
//
// Set STREAMCODEC_LOG_LEVEL=debug to log every frame visited.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	layoutPath := flag.String("layout", "", "path to the TOML layout describing the file")
	filePath := flag.String("file", "", "path to the binary file to dump")
	strict := flag.Bool("strict", false, "treat sequence guard mismatches as errors")
	flag.Parse()

	logger := initLogger("framedump", os.Stderr)

	if *layoutPath == "" || *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*layoutPath, *filePath, *strict, os.Stdout, logger); err != nil {
		log.Error().Err(err).Msg("dump failed")
		os.Exit(1)
	}
}

func run(layoutPath, filePath string, strict bool, out io.Writer, logger zerolog.Logger) error {
	l, err := loadLayout(layoutPath)
	if err != nil {
		return err
	}
	if strict {
		l.StrictGuards = true
	}
	logger.Debug().Str("path", layoutPath).Int("blocks", len(l.Blocks)).Msg("loaded layout")

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	d, err := newDumper(f, l, out, logger)
	if err != nil {
		return err
	}

	return d.Run(l.Blocks)
}
