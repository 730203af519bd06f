package timespec

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/oops"
)

// Direction tags the outcome of Sub: Forward means the receiver was at or
// after the operand, Backward means it was before. The magnitude is always
// non-negative; the tag carries the sign information.
type Direction int8

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// Duration is a non-negative span of time: whole seconds plus a nanosecond
// remainder in [0, NanosPerSecond). It is wider than time.Duration, which
// caps out near 292 years; conversions between the two are checked.
type Duration struct {
	secs  uint64
	nanos uint32
}

// NewDuration builds a Duration, carrying a nanosecond remainder of one
// second or more into the seconds field. The carry is checked against the
// uint64 seconds range.
func NewDuration(secs uint64, nanos uint64) (Duration, error) {
	carry := nanos / NanosPerSecond
	rem := uint32(nanos % NanosPerSecond)
	if carry > 0 {
		total := secs + carry
		if total < secs {
			return Duration{}, oops.Errorf("timespec: duration of %d seconds + %d nanoseconds overflows", secs, nanos)
		}
		secs = total
	}
	return Duration{secs: secs, nanos: rem}, nil
}

// DurationFromStd converts a time.Duration, rejecting negative spans since
// Duration is a magnitude; direction is carried separately (see Direction).
func DurationFromStd(d time.Duration) (Duration, error) {
	if d < 0 {
		return Duration{}, oops.Errorf("timespec: negative duration %s has no magnitude form", d)
	}
	return Duration{
		secs:  uint64(d / time.Second),
		nanos: uint32(d % time.Second),
	}, nil
}

// Seconds returns the whole-seconds field.
func (d Duration) Seconds() uint64 {
	return d.secs
}

// Nanoseconds returns the sub-second remainder, always in [0, NanosPerSecond).
func (d Duration) Nanoseconds() uint32 {
	return d.nanos
}

// IsZero reports whether the duration is exactly zero.
func (d Duration) IsZero() bool {
	return d.secs == 0 && d.nanos == 0
}

// Compare orders durations lexicographically on (seconds, nanoseconds).
func (d Duration) Compare(other Duration) int {
	switch {
	case d.secs < other.secs:
		return -1
	case d.secs > other.secs:
		return 1
	case d.nanos < other.nanos:
		return -1
	case d.nanos > other.nanos:
		return 1
	}
	return 0
}

// Equal reports structural equality of both fields.
func (d Duration) Equal(other Duration) bool {
	return d.secs == other.secs && d.nanos == other.nanos
}

// Std converts to time.Duration, or ok=false when the span exceeds the
// int64-nanosecond range time.Duration can hold.
func (d Duration) Std() (time.Duration, bool) {
	const maxSecs = math.MaxInt64 / NanosPerSecond
	if d.secs > maxSecs {
		return 0, false
	}
	if d.secs == maxSecs && d.nanos > math.MaxInt64%NanosPerSecond {
		return 0, false
	}
	return time.Duration(d.secs)*time.Second + time.Duration(d.nanos), true
}

// String renders the duration as "sec.nnnnnnnnns".
func (d Duration) String() string {
	return fmt.Sprintf("%d.%09ds", d.secs, d.nanos)
}
