package monotonic

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-timekit/timekit/lib/clock/source"
	"github.com/go-timekit/timekit/lib/timespec"
)

var log = logger.GetGoI2PLogger()

// Instant is one reading of a monotonic clock. The zero value is the start
// of the source's arbitrary timeline.
type Instant struct {
	ts timespec.Timespec
}

// Now queries the raw clock source once and wraps the reading. A source
// failure propagates as an error; no default instant is fabricated.
func Now(src source.Source) (Instant, error) {
	r, err := src.ReadMonotonic()
	if err != nil {
		return Instant{}, oops.Wrapf(err, "monotonic: raw clock query failed")
	}
	ts, err := r.Timespec()
	if err != nil {
		return Instant{}, oops.Wrapf(err, "monotonic: raw reading rejected")
	}
	return Instant{ts: ts}, nil
}

// FromTimespec wraps an already-normalized timestamp. Intended for tests and
// for replaying persisted readings from the same process lifetime.
func FromTimespec(ts timespec.Timespec) Instant {
	return Instant{ts: ts}
}

// Timespec returns the underlying normalized timestamp.
func (i Instant) Timespec() timespec.Timespec {
	return i.ts
}

// ElapsedSince returns the magnitude of the gap between i and earlier plus a
// direction tag. Callers are expected to pass an earlier instant; a Backward
// tag means the "earlier" instant is actually ahead, which indicates misuse
// or a clock anomaly in the source. It is surfaced, logged, and left to the
// caller — never a crash, and the magnitude is always truthful.
func (i Instant) ElapsedSince(earlier Instant) (timespec.Duration, timespec.Direction) {
	d, dir := i.ts.Sub(earlier.ts)
	if dir == timespec.Backward {
		log.WithFields(map[string]interface{}{
			"instant": i.ts.String(),
			"earlier": earlier.ts.String(),
			"gap":     d.String(),
		}).Warn("monotonic: elapsed computed against a later instant")
	}
	return d, dir
}

// CheckedAdd returns the instant shifted forward by d, or ok=false when the
// seconds field would overflow. The result never wraps.
func (i Instant) CheckedAdd(d timespec.Duration) (Instant, bool) {
	ts, ok := i.ts.CheckedAdd(d)
	if !ok {
		return Instant{}, false
	}
	return Instant{ts: ts}, true
}

// CheckedSub returns the instant shifted backward by d, or ok=false when the
// seconds field would underflow.
func (i Instant) CheckedSub(d timespec.Duration) (Instant, bool) {
	ts, ok := i.ts.CheckedSub(d)
	if !ok {
		return Instant{}, false
	}
	return Instant{ts: ts}, true
}

// Compare orders instants on the underlying (seconds, nanoseconds) pair.
func (i Instant) Compare(other Instant) int {
	return i.ts.Compare(other.ts)
}

// Before reports whether i is strictly earlier than other.
func (i Instant) Before(other Instant) bool {
	return i.ts.Before(other.ts)
}

// After reports whether i is strictly later than other.
func (i Instant) After(other Instant) bool {
	return i.ts.After(other.ts)
}

// Equal reports structural equality.
func (i Instant) Equal(other Instant) bool {
	return i.ts.Equal(other.ts)
}

// Sum64 returns the 64-bit hash of the underlying timestamp.
func (i Instant) Sum64() uint64 {
	return i.ts.Sum64()
}

func (i Instant) String() string {
	return i.ts.String()
}
