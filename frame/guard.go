package frame

import (
	"fmt"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/format"
)

// Guard selects whether a block is preceded by a check code, and which one.
//
// The encoder and decoder of a block must use the same Guard: nothing on the
// wire records whether a guard was written.
type Guard struct {
	Code    format.CheckCode
	Enabled bool
}

// Unguarded writes and expects no check code.
var Unguarded = Guard{}

// Guarded returns a Guard for code.
func Guarded(code format.CheckCode) Guard {
	return Guard{Code: code, Enabled: true}
}

// BlockGuard returns the conventional guard for single variable-length blocks.
func BlockGuard() Guard {
	return Guarded(format.BlockCheckCode)
}

// SequenceGuard returns the conventional guard for dictionaries and pair sequences.
func SequenceGuard() Guard {
	return Guarded(format.SequenceCheckCode)
}

func (g Guard) String() string {
	if !g.Enabled {
		return "unguarded"
	}

	return "guard(" + g.Code.String() + ")"
}

// WriteGuard writes the 8 bytes of code.
func WriteGuard(w *encoding.Writer, code format.CheckCode) error {
	if err := w.WriteRaw(code[:]); err != nil {
		return fmt.Errorf("write check code: %w", err)
	}

	return nil
}

// ReadGuard reads 8 bytes and reports whether they equal code.
//
// The bytes are consumed whatever the outcome: after a false result the cursor
// is 8 bytes past where it started, and the stream must be treated as
// desynchronized. A stream holding fewer than 8 bytes fails with errs.ErrTruncatedData.
func ReadGuard(r *encoding.Reader, code format.CheckCode) (bool, error) {
	var got format.CheckCode
	if err := r.ReadInto(got[:]); err != nil {
		return false, fmt.Errorf("read check code: %w", err)
	}

	return got == code, nil
}

func (g Guard) write(w *encoding.Writer) error {
	if !g.Enabled {
		return nil
	}

	return WriteGuard(w, g.Code)
}

// check reads the guard if enabled. An unguarded block always passes.
func (g Guard) check(r *encoding.Reader) (bool, error) {
	if !g.Enabled {
		return true, nil
	}

	return ReadGuard(r, g.Code)
}
