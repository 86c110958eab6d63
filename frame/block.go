package frame

import (
	"fmt"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/errs"
)

// WriteBlock writes payload as a variable-length frame: the optional check code,
// an int32 length prefix and the payload bytes.
//
// A nil payload is written as a zero prefix. So is an empty one: the wire has no
// separate spelling for "present but empty", and both read back as nil.
func WriteBlock(w *encoding.Writer, g Guard, payload []byte) error {
	if err := g.write(w); err != nil {
		return err
	}
	if err := w.WriteLength(len(payload)); err != nil {
		return fmt.Errorf("write block length: %w", err)
	}
	if err := w.WriteRaw(payload); err != nil {
		return fmt.Errorf("write block payload: %w", err)
	}

	return nil
}

// ReadBlock reads a frame written by WriteBlock. A zero prefix returns nil.
//
// A check code mismatch, or a negative prefix, fails with errs.ErrCorruptData.
// A prefix promising more bytes than the stream holds fails with
// errs.ErrTruncatedData before any payload is consumed.
func ReadBlock(r *encoding.Reader, g Guard) ([]byte, error) {
	n, err := readBlockHeader(r, g)
	if err != nil || n == 0 {
		return nil, err
	}

	payload, err := r.ReadRaw(n)
	if err != nil {
		return nil, fmt.Errorf("read block payload: %w", err)
	}

	return payload, nil
}

// SkipBlock moves past a frame written by WriteBlock without reading its
// payload. The guard and prefix are validated exactly as ReadBlock does.
func SkipBlock(r *encoding.Reader, g Guard) error {
	n, err := readBlockHeader(r, g)
	if err != nil {
		return err
	}
	if err := r.Discard(int64(n)); err != nil {
		return fmt.Errorf("skip block payload: %w", err)
	}

	return nil
}

// WriteText writes s as a guarded text frame; see encoding.Writer.WriteText.
func WriteText(w *encoding.Writer, g Guard, s string) error {
	if err := g.write(w); err != nil {
		return err
	}
	if err := w.WriteText(s); err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	return nil
}

// ReadText reads a frame written by WriteText. Guard mismatches are fatal as for ReadBlock.
func ReadText(r *encoding.Reader, g Guard) (string, error) {
	if err := expectBlockGuard(r, g); err != nil {
		return "", err
	}

	s, err := r.ReadText()
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	return s, nil
}

// SkipText moves past a frame written by WriteText without decoding it.
func SkipText(r *encoding.Reader, g Guard) error {
	if err := expectBlockGuard(r, g); err != nil {
		return err
	}
	if err := r.SkipText(); err != nil {
		return fmt.Errorf("skip text: %w", err)
	}

	return nil
}

func readBlockHeader(r *encoding.Reader, g Guard) (int, error) {
	if err := expectBlockGuard(r, g); err != nil {
		return 0, err
	}

	n, err := r.ReadLength()
	if err != nil {
		return 0, fmt.Errorf("read block length: %w", err)
	}

	return n, nil
}

func expectBlockGuard(r *encoding.Reader, g Guard) error {
	ok, err := g.check(r)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %w: expected %s", errs.ErrCorruptData, errs.ErrGuardMismatch, g)
	}

	return nil
}
