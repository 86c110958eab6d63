// Package errs defines the sentinel errors returned by streamcodec packages.
//
// Errors are returned wrapped with context, so callers should match them with
// errors.Is rather than by equality:
//
//	if errors.Is(err, errs.ErrCorruptData) {
//	    // the stream is desynchronized; re-seek to a known position
//	}
package errs

import "errors"

var (
	// ErrCorruptData is returned when a length prefix or element count decodes
	// as negative, or when the check code guarding a single block does not match.
	ErrCorruptData = errors.New("corrupt data")

	// ErrTruncatedData is returned when the stream ends before the bytes promised
	// by a length prefix, element count or fixed-width value.
	ErrTruncatedData = errors.New("truncated data")

	// ErrGuardMismatch is returned when the 8-byte check code read from the stream
	// differs from the expected one. For single blocks it always travels together
	// with ErrCorruptData.
	ErrGuardMismatch = errors.New("check code mismatch")

	// ErrUnknownTag is returned for a primitive type tag outside the known set.
	ErrUnknownTag = errors.New("unknown type tag")

	// ErrTagMismatch is returned when a value of one tag is written through a
	// frame kind that expects another.
	ErrTagMismatch = errors.New("type tag mismatch")

	// ErrLengthOverflow is returned when a payload is too large for an int32
	// prefix, or a decoded prefix exceeds the reader's configured maximum.
	ErrLengthOverflow = errors.New("length overflow")

	// ErrMixedSequence is returned when the number of pairs produced for a counted
	// sequence does not match the count announced on the wire.
	ErrMixedSequence = errors.New("sequence count mismatch")

	// ErrInvalidOption is returned by constructors for an invalid configuration.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidText is returned when a text payload cannot be transcoded.
	ErrInvalidText = errors.New("invalid text")

	// ErrCheckCodeCollision is returned when two different guard names derive the
	// same check code, so a decoder could not tell their blocks apart.
	ErrCheckCodeCollision = errors.New("check code collision")

	// ErrInvalidGuardName is returned for an empty guard name.
	ErrInvalidGuardName = errors.New("invalid guard name")
)
