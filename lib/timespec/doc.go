// Package timespec implements a carry-safe seconds+nanoseconds timestamp type.
//
// A Timespec is a radix-1e9 two-limb value: a signed 64-bit seconds field and
// an unsigned sub-second nanosecond field that is always kept in
// [0, 1_000_000_000). Every constructor and every arithmetic operation in this
// package preserves that bound, so comparison, hashing, and duration math can
// treat the pair as a single two-digit number.
//
// Arithmetic never wraps and never panics: checked operations return
// (value, false) when the seconds field would leave the int64 range, and
// subtraction returns an explicit Forward/Backward direction tag instead of a
// signed result.
//
// Timespec and Duration are immutable value types and are safe for concurrent
// use without synchronization.
package timespec
