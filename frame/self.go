package frame

import (
	"fmt"

	"github.com/tonyriverms/streamcodec/encoding"
)

// Serializable is implemented by types that encode and decode their own wire
// representation. DecodeFrame must consume exactly the bytes EncodeFrame wrote.
type Serializable interface {
	EncodeFrame(w *encoding.Writer) error
	DecodeFrame(r *encoding.Reader) error
}

// SerializablePtr constrains *T to implement Serializable.
type SerializablePtr[T any] interface {
	*T
	Serializable
}

// FrameSkipper is optionally implemented by Serializable types that can move past
// their own representation faster than decoding it.
type FrameSkipper interface {
	SkipFrame(r *encoding.Reader) error
}

// SelfKind returns a kind that frames T through its Serializable methods.
//
//	kind := frame.SelfKind[Point]()
//
// Self-serializing slots are variable width: skipping them decodes and discards
// each one unless *T implements FrameSkipper.
func SelfKind[T any, PT SerializablePtr[T]]() Kind[T] {
	var zero T

	k := Kind[T]{
		Name: fmt.Sprintf("%T", zero),
		Write: func(w *encoding.Writer, v T) error {
			return PT(&v).EncodeFrame(w)
		},
		Read: func(r *encoding.Reader) (T, error) {
			var v T
			err := PT(&v).DecodeFrame(r)

			return v, err
		},
	}

	if _, ok := any(PT(&zero)).(FrameSkipper); ok {
		k.Skip = func(r *encoding.Reader) error {
			var v T
			return any(PT(&v)).(FrameSkipper).SkipFrame(r)
		}
	}

	return k
}
