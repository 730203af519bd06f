// Package source defines the raw clock collaborator consumed by the clock
// types in lib/clock/monotonic and lib/clock/wall.
//
// A Source hands out Readings: whole seconds plus a sub-second fraction in a
// declared unit (microseconds or nanoseconds). Reads are repeatable and have
// no side effects on the time base. A read failure is reported as an error,
// never as a fabricated zero reading.
//
// SystemSource backs both modes with the Go runtime clock: wall readings come
// from time.Now, monotonic readings count from an arbitrary process-local
// start point and carry no meaning outside the current process. FixedSource,
// StepSource, and FailingSource are deterministic doubles for tests.
package source
