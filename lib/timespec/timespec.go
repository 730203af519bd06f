package timespec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/oops"
)

// NanosPerSecond is the radix of the sub-second limb.
const NanosPerSecond = 1_000_000_000

// MicrosPerSecond bounds the microsecond layout accepted by FromUnixMicro.
const MicrosPerSecond = 1_000_000

// Timespec is an absolute point in time as whole seconds plus a nanosecond
// remainder in [0, NanosPerSecond). Seconds may be negative for points before
// the reference instant. The zero value is the reference instant itself.
type Timespec struct {
	sec  int64
	nsec uint32
}

// Zero is the additive identity: seconds=0, nanoseconds=0.
var Zero = Timespec{}

// New builds a Timespec from whole seconds and a nanosecond remainder.
// A remainder of one second or more is carried into the seconds field so the
// result always satisfies the normalization invariant; the carry is checked
// and New fails instead of wrapping the seconds field.
func New(sec int64, nsec uint64) (Timespec, error) {
	carry := int64(nsec / NanosPerSecond)
	rem := uint32(nsec % NanosPerSecond)
	if carry > 0 {
		s, ok := addInt64(sec, carry)
		if !ok {
			return Timespec{}, oops.Errorf("timespec: normalizing %d nanoseconds overflows the seconds field", nsec)
		}
		sec = s
	}
	return Timespec{sec: sec, nsec: rem}, nil
}

// FromUnix builds a Timespec from whole seconds, nanoseconds forced to zero.
func FromUnix(sec int64) Timespec {
	return Timespec{sec: sec}
}

// FromUnixMicro builds a Timespec from whole seconds plus a microsecond
// remainder, which must be below one second. The remainder is scaled to
// nanoseconds; no carry is possible since usec < 1e6 scales to < 1e9.
func FromUnixMicro(sec int64, usec uint32) (Timespec, error) {
	if usec >= MicrosPerSecond {
		return Timespec{}, oops.Errorf("timespec: microsecond remainder %d exceeds one second", usec)
	}
	return Timespec{sec: sec, nsec: usec * 1000}, nil
}

// Seconds returns the whole-seconds field.
func (t Timespec) Seconds() int64 {
	return t.sec
}

// Nanoseconds returns the sub-second remainder, always in [0, NanosPerSecond).
func (t Timespec) Nanoseconds() uint32 {
	return t.nsec
}

// Compare orders timestamps lexicographically on (seconds, nanoseconds).
// It returns -1 if t is before other, 0 if equal, and +1 if t is after other.
func (t Timespec) Compare(other Timespec) int {
	switch {
	case t.sec < other.sec:
		return -1
	case t.sec > other.sec:
		return 1
	case t.nsec < other.nsec:
		return -1
	case t.nsec > other.nsec:
		return 1
	}
	return 0
}

// Before reports whether t is strictly before other.
func (t Timespec) Before(other Timespec) bool {
	return t.Compare(other) < 0
}

// After reports whether t is strictly after other.
func (t Timespec) After(other Timespec) bool {
	return t.Compare(other) > 0
}

// Equal reports structural equality of both fields. There is no tolerance:
// two timestamps are equal iff seconds and nanoseconds both match.
func (t Timespec) Equal(other Timespec) bool {
	return t.sec == other.sec && t.nsec == other.nsec
}

// Sum64 returns a 64-bit hash over both fields. Equal timestamps always hash
// to the same value.
func (t Timespec) Sum64() uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(t.sec))
	binary.BigEndian.PutUint32(buf[8:], t.nsec)
	return xxhash.Sum64(buf[:])
}

// Sub returns the non-negative magnitude between t and other together with a
// direction tag: Forward when t >= other, Backward when t < other. The
// magnitude is identical either way; only the tag flips.
//
// When the sub-second subtraction would go negative, one second is borrowed
// from the seconds difference and the remainder is lifted by NanosPerSecond.
func (t Timespec) Sub(other Timespec) (Duration, Direction) {
	if t.Compare(other) >= 0 {
		if t.nsec >= other.nsec {
			return Duration{
				secs:  uint64(t.sec - other.sec),
				nanos: t.nsec - other.nsec,
			}, Forward
		}
		return Duration{
			secs:  uint64(t.sec - 1 - other.sec),
			nanos: t.nsec + NanosPerSecond - other.nsec,
		}, Forward
	}
	d, _ := other.Sub(t)
	return d, Backward
}

// CheckedAdd returns t shifted forward by d, or ok=false when the seconds
// field would exceed the int64 range. The sub-second sum is below two seconds
// by construction, so at most one extra second is carried, and that carry is
// checked as well.
func (t Timespec) CheckedAdd(d Duration) (Timespec, bool) {
	if d.secs > math.MaxInt64 {
		return Timespec{}, false
	}
	sec, ok := addInt64(t.sec, int64(d.secs))
	if !ok {
		return Timespec{}, false
	}
	nsec := t.nsec + d.nanos
	if nsec >= NanosPerSecond {
		nsec -= NanosPerSecond
		if sec, ok = addInt64(sec, 1); !ok {
			return Timespec{}, false
		}
	}
	return Timespec{sec: sec, nsec: nsec}, true
}

// CheckedSub returns t shifted backward by d, or ok=false when the seconds
// field would fall below the int64 range. A negative sub-second difference
// borrows one second, and that borrow is checked as well.
func (t Timespec) CheckedSub(d Duration) (Timespec, bool) {
	if d.secs > math.MaxInt64 {
		return Timespec{}, false
	}
	sec, ok := subInt64(t.sec, int64(d.secs))
	if !ok {
		return Timespec{}, false
	}
	nsec := int64(t.nsec) - int64(d.nanos)
	if nsec < 0 {
		nsec += NanosPerSecond
		if sec, ok = subInt64(sec, 1); !ok {
			return Timespec{}, false
		}
	}
	return Timespec{sec: sec, nsec: uint32(nsec)}, true
}

// String renders the timestamp as "sec.nnnnnnnnns" for logs and tests.
func (t Timespec) String() string {
	return fmt.Sprintf("%d.%09ds", t.sec, t.nsec)
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func subInt64(a, b int64) (int64, bool) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, false
	}
	return diff, true
}
