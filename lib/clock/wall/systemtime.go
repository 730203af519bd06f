package wall

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/go-timekit/timekit/lib/clock/source"
	"github.com/go-timekit/timekit/lib/timespec"
)

// SystemTime is a wall-clock timestamp: a duration since (or before) the
// epoch, held as a normalized timespec. The zero value is the epoch.
type SystemTime struct {
	ts timespec.Timespec
}

// Epoch is the platform reference instant: seconds=0, nanoseconds=0.
var Epoch = SystemTime{}

// Now queries the raw clock source's wall mode once and wraps the reading.
// A source failure propagates as an error; no default time is fabricated.
func Now(src source.Source) (SystemTime, error) {
	r, err := src.ReadWall()
	if err != nil {
		return SystemTime{}, oops.Wrapf(err, "wall: raw clock query failed")
	}
	ts, err := r.Timespec()
	if err != nil {
		return SystemTime{}, oops.Wrapf(err, "wall: raw reading rejected")
	}
	return SystemTime{ts: ts}, nil
}

// FromUnix builds a SystemTime from whole seconds since the epoch.
func FromUnix(sec int64) SystemTime {
	return SystemTime{ts: timespec.FromUnix(sec)}
}

// FromUnixMicro builds a SystemTime from seconds plus a microsecond
// remainder below one second.
func FromUnixMicro(sec int64, usec uint32) (SystemTime, error) {
	ts, err := timespec.FromUnixMicro(sec, usec)
	if err != nil {
		return SystemTime{}, err
	}
	return SystemTime{ts: ts}, nil
}

// FromTimespec wraps an already-normalized timestamp.
func FromTimespec(ts timespec.Timespec) SystemTime {
	return SystemTime{ts: ts}
}

// Timespec returns the underlying normalized timestamp.
func (t SystemTime) Timespec() timespec.Timespec {
	return t.ts
}

// DriftError reports that the operand of DurationSince is later than the
// receiver. It preserves the full magnitude of the gap, so callers lose no
// information by taking the error path.
type DriftError struct {
	magnitude timespec.Duration
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("wall: other time is %s later", e.magnitude)
}

// Magnitude returns the non-negative gap between the two times.
func (e *DriftError) Magnitude() timespec.Duration {
	return e.magnitude
}

// DurationSince returns the elapsed time from earlier to t. The error is nil
// exactly when t >= earlier under the total order. When earlier is actually
// later — the wall clock may have been adjusted backward between reads — a
// *DriftError carrying the magnitude is returned instead. This is a
// first-class outcome, not a failure of the operation.
func (t SystemTime) DurationSince(earlier SystemTime) (timespec.Duration, error) {
	d, dir := t.ts.Sub(earlier.ts)
	if dir == timespec.Backward {
		return timespec.Duration{}, &DriftError{magnitude: d}
	}
	return d, nil
}

// SinceEpoch returns the duration from the epoch to t, or a *DriftError for
// pre-epoch times.
func (t SystemTime) SinceEpoch() (timespec.Duration, error) {
	return t.DurationSince(Epoch)
}

// CheckedAdd returns t shifted forward by d, or ok=false when the seconds
// field would overflow. The result never wraps.
func (t SystemTime) CheckedAdd(d timespec.Duration) (SystemTime, bool) {
	ts, ok := t.ts.CheckedAdd(d)
	if !ok {
		return SystemTime{}, false
	}
	return SystemTime{ts: ts}, true
}

// CheckedSub returns t shifted backward by d, or ok=false when the seconds
// field would underflow.
func (t SystemTime) CheckedSub(d timespec.Duration) (SystemTime, bool) {
	ts, ok := t.ts.CheckedSub(d)
	if !ok {
		return SystemTime{}, false
	}
	return SystemTime{ts: ts}, true
}

// Compare orders times on the underlying (seconds, nanoseconds) pair.
func (t SystemTime) Compare(other SystemTime) int {
	return t.ts.Compare(other.ts)
}

// Before reports whether t is strictly earlier than other.
func (t SystemTime) Before(other SystemTime) bool {
	return t.ts.Before(other.ts)
}

// After reports whether t is strictly later than other.
func (t SystemTime) After(other SystemTime) bool {
	return t.ts.After(other.ts)
}

// Equal reports structural equality.
func (t SystemTime) Equal(other SystemTime) bool {
	return t.ts.Equal(other.ts)
}

// Sum64 returns the 64-bit hash of the underlying timestamp.
func (t SystemTime) Sum64() uint64 {
	return t.ts.Sum64()
}

func (t SystemTime) String() string {
	return t.ts.String()
}
