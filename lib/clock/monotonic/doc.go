// Package monotonic provides an Instant: a point on a monotonic timeline with
// no relationship to calendar time.
//
// Instants are obtained from a raw clock source and only support relative
// operations: elapsed time against an earlier Instant and checked
// offsetting by a Duration. Two Instants are only meaningfully compared if
// both came from the same source within the same process lifetime; the
// monotonicity guarantee of the underlying source is inherited, not
// manufactured here. No guarantee survives process restarts or
// suspend/resume.
//
// An Instant is an immutable value and safe for concurrent use.
package monotonic
