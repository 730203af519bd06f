package source

import (
	"fmt"
	"time"

	"github.com/samber/oops"

	"github.com/go-timekit/timekit/lib/timespec"
)

// Unit declares how a Reading's fraction field is scaled.
type Unit int

const (
	// Microseconds means the fraction is in [0, 1e6).
	Microseconds Unit = iota
	// Nanoseconds means the fraction is in [0, 1e9).
	Nanoseconds
)

func (u Unit) String() string {
	switch u {
	case Microseconds:
		return "microseconds"
	case Nanoseconds:
		return "nanoseconds"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Reading is one raw query result from a clock source: whole seconds elapsed
// plus a sub-second fraction in the declared unit.
type Reading struct {
	Seconds  int64
	Fraction int64
	Unit     Unit
}

// Timespec converts the reading into a normalized timestamp, scaling the
// fraction to nanoseconds. The fraction must be non-negative and below one
// second in its declared unit.
func (r Reading) Timespec() (timespec.Timespec, error) {
	if r.Fraction < 0 {
		return timespec.Timespec{}, oops.Errorf("source: negative fraction %d in reading", r.Fraction)
	}
	switch r.Unit {
	case Microseconds:
		if r.Fraction >= timespec.MicrosPerSecond {
			return timespec.Timespec{}, oops.Errorf("source: microsecond fraction %d exceeds one second", r.Fraction)
		}
		return timespec.FromUnixMicro(r.Seconds, uint32(r.Fraction))
	case Nanoseconds:
		if r.Fraction >= timespec.NanosPerSecond {
			return timespec.Timespec{}, oops.Errorf("source: nanosecond fraction %d exceeds one second", r.Fraction)
		}
		return timespec.New(r.Seconds, uint64(r.Fraction))
	}
	return timespec.Timespec{}, oops.Errorf("source: unknown fraction unit %s", r.Unit)
}

// Source is the raw clock collaborator. Both methods must be repeatable,
// side-effect free, and must signal failure distinctly from a zero reading.
type Source interface {
	// ReadWall returns the current wall-clock reading, anchored to the
	// platform epoch. Wall readings may move backward between calls.
	ReadWall() (Reading, error)
	// ReadMonotonic returns a reading from a monotonic time base with an
	// arbitrary start point. Only differences between readings from the
	// same source within one process lifetime are meaningful.
	ReadMonotonic() (Reading, error)
}

// monoStart anchors SystemSource's monotonic timeline. The start point is
// arbitrary; only differences matter.
var monoStart = time.Now()

// SystemSource reads the Go runtime clock.
type SystemSource struct{}

// NewSystemSource returns a Source backed by the runtime clock.
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

func (s *SystemSource) ReadWall() (Reading, error) {
	now := time.Now()
	return Reading{
		Seconds:  now.Unix(),
		Fraction: int64(now.Nanosecond()),
		Unit:     Nanoseconds,
	}, nil
}

func (s *SystemSource) ReadMonotonic() (Reading, error) {
	elapsed := time.Since(monoStart)
	return Reading{
		Seconds:  int64(elapsed / time.Second),
		Fraction: int64(elapsed % time.Second),
		Unit:     Nanoseconds,
	}, nil
}
