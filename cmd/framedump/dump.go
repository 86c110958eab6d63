package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/frame"
	"github.com/tonyriverms/streamcodec/internal/hash"
)

// maxHexBytes bounds how much of a block payload is printed.
const maxHexBytes = 32

// dumper walks a stream frame by frame according to a layout.
type dumper struct {
	r      *encoding.Reader
	out    io.Writer
	logger zerolog.Logger
}

func newDumper(src io.ReadSeeker, l layout, out io.Writer, logger zerolog.Logger) (*dumper, error) {
	r, err := encoding.NewReader(src, l.ReaderOptions()...)
	if err != nil {
		return nil, err
	}

	return &dumper{r: r, out: out, logger: logger}, nil
}

// Run prints or skips every block of the layout in order. It stops early when a
// sequence guard mismatch leaves the stream desynchronized.
func (d *dumper) Run(blocks []blockDef) error {
	for _, b := range blocks {
		pos, err := d.r.Position()
		if err != nil {
			return err
		}
		d.logger.Debug().Str("block", b.Name).Str("kind", b.Kind).Int64("offset", pos).Msg("visit")

		synced, err := d.visit(b)
		if err != nil {
			return fmt.Errorf("%s at offset %d: %w", b.Name, pos, err)
		}
		if !synced {
			d.logger.Warn().Str("block", b.Name).Str("guard", b.Guard.String()).
				Msg("sequence guard mismatch, stopping")
			return nil
		}
	}

	rem, err := d.r.Remaining()
	if err != nil {
		return err
	}
	if rem > 0 {
		d.logger.Warn().Int64("bytes", rem).Msg("trailing data after last block")
	}

	return nil
}

func (d *dumper) visit(b blockDef) (bool, error) {
	switch b.Kind {
	case kindPrimitive:
		return true, d.primitive(b)
	case kindBlock:
		return true, d.block(b)
	case kindText:
		return true, d.text(b)
	case kindSequence:
		return d.sequence(b)
	case kindUncounted:
		return true, d.uncounted(b)
	default:
		return false, fmt.Errorf("unknown kind %q", b.Kind)
	}
}

func (d *dumper) primitive(b blockDef) error {
	if b.Skip {
		d.skipped(b)
		return d.r.SkipValue(b.Tag)
	}

	v, err := d.r.ReadValue(b.Tag)
	if err != nil {
		return err
	}
	d.printf("%s %s = %s\n", b.Name, b.Tag, v)

	return nil
}

func (d *dumper) block(b blockDef) error {
	if b.Skip {
		d.skipped(b)
		return frame.SkipBlock(d.r, b.Guard)
	}

	payload, err := frame.ReadBlock(d.r, b.Guard)
	if err != nil {
		return err
	}
	if payload == nil {
		d.printf("%s block len=0\n", b.Name)
		return nil
	}

	shown := payload[:min(len(payload), maxHexBytes)]
	suffix := ""
	if len(shown) < len(payload) {
		suffix = "..."
	}
	d.printf("%s block len=%d xxh64=%016x %s%s\n",
		b.Name, len(payload), hash.Sum(payload), hex.EncodeToString(shown), suffix)

	return nil
}

func (d *dumper) text(b blockDef) error {
	if b.Skip {
		d.skipped(b)
		return frame.SkipText(d.r, b.Guard)
	}

	s, err := frame.ReadText(d.r, b.Guard)
	if err != nil {
		return err
	}
	d.printf("%s text = %q\n", b.Name, s)

	return nil
}

func (d *dumper) sequence(b blockDef) (bool, error) {
	dec, err := frame.OpenSequence(d.r, b.Guard, frame.ValueOf(b.Key), frame.ValueOf(b.Value))
	if err != nil {
		return false, err
	}
	if dec.GuardMismatch() {
		return false, nil
	}

	if b.Skip {
		d.skipped(b)
		return true, dec.SkipRest()
	}

	d.printf("%s sequence<%s,%s> count=%d\n", b.Name, b.Key, b.Value, dec.Count())

	return true, d.elements(dec)
}

func (d *dumper) uncounted(b blockDef) error {
	dec, err := frame.OpenUncountedSequence(d.r, frame.ValueOf(b.Key), frame.ValueOf(b.Value))
	if err != nil {
		return err
	}

	if b.Skip {
		d.skipped(b)
		return dec.SkipRest()
	}

	d.printf("%s uncounted<%s,%s>\n", b.Name, b.Key, b.Value)

	return d.elements(dec)
}

func (d *dumper) elements(dec *frame.SequenceDecoder[encoding.Value, encoding.Value]) error {
	i := 0
	for k, v := range dec.All() {
		d.printf("  [%d] %s => %s\n", i, k, v)
		i++
	}

	return dec.Err()
}

func (d *dumper) skipped(b blockDef) {
	d.logger.Debug().Str("block", b.Name).Msg("skip")
	d.printf("%s %s skipped\n", b.Name, b.Kind)
}

func (d *dumper) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.out, format, args...)
}
