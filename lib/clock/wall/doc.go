// Package wall provides SystemTime: a wall-clock timestamp anchored to the
// platform epoch.
//
// Unlike the monotonic Instant, SystemTime values are comparable across
// independent reads, but the underlying clock may be adjusted backward at any
// time. DurationSince therefore returns a directional result: a nil error
// when the receiver is at or after the operand, and a *DriftError carrying
// the full magnitude when the operand turns out to be later. Callers must
// handle both cases; the magnitude is never lost.
//
// Epoch is the zero SystemTime. Values before the epoch are representable
// through the signed seconds field.
package wall
