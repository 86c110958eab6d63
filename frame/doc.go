// Package frame composes the primitives of package encoding into the framed
// layouts of the wire format.
//
// # Blocks
//
// A block is an optional 8-byte check code, an int32 length prefix and the
// payload:
//
//	[check code (8, optional)] [length int32] [payload (length bytes)]
//
// A zero length stands for both a null and an empty payload. A negative length,
// or a check code that does not match, fails with errs.ErrCorruptData.
//
// # Sequences
//
// A counted sequence is an optional check code, an int32 element count, and that
// many key/value elements in write order:
//
//	[check code (8, optional)] [count int32] { [key frame] [value frame] } × count
//
// Keys and values are framed by a Kind: fixed-width primitives, text, byte
// blocks, tagged values, or any type implementing Serializable. Order and
// duplicate keys are preserved; ReadMap keeps the last value for a repeated key.
//
// A sequence whose check code does not match decodes as empty by default. The
// guard bytes are still consumed, so the stream is desynchronized afterwards and
// the caller should stop reading it. Readers created with
// encoding.WithStrictGuards turn the mismatch into errs.ErrGuardMismatch.
//
// # Lazy decoding
//
// OpenSequence returns a SequenceDecoder that decodes one element per step. A
// consumer may stop early and call SkipRest to leave the stream after the
// sequence, or save a stream.Mark to replay it:
//
//	mark, _ := stream.Save(buf)
//	dec, err := frame.OpenSequence(r, frame.SequenceGuard(), frame.Int32, frame.Text)
//	if err != nil {
//		return err
//	}
//	for k, v := range dec.All() {
//		if k == target {
//			found = v
//			break
//		}
//	}
//	if err := dec.SkipRest(); err != nil {
//		return err
//	}
//
// # Skipping
//
// SkipBlock, SkipText and SkipSequence leave the stream exactly where the
// matching read would have. Fixed-width sequences are skipped with a single seek.
package frame
