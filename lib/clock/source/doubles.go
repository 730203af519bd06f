package source

import (
	"sync"

	"github.com/samber/oops"

	"github.com/go-timekit/timekit/lib/timespec"
)

// FixedSource returns the same readings on every call.
type FixedSource struct {
	Wall Reading
	Mono Reading
}

func (s *FixedSource) ReadWall() (Reading, error) {
	return s.Wall, nil
}

func (s *FixedSource) ReadMonotonic() (Reading, error) {
	return s.Mono, nil
}

// StepSource hands out nanosecond-unit readings that advance by a fixed step
// on every read, shared between the wall and monotonic modes. Safe for
// concurrent use.
type StepSource struct {
	mu   sync.Mutex
	sec  int64
	nsec int64
	step int64
}

// NewStepSource starts the source at sec+nsec and advances it by stepNanos
// nanoseconds per read. nsec and stepNanos must be non-negative.
func NewStepSource(sec, nsec, stepNanos int64) *StepSource {
	return &StepSource{sec: sec, nsec: nsec % timespec.NanosPerSecond, step: stepNanos}
}

func (s *StepSource) read() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := Reading{Seconds: s.sec, Fraction: s.nsec, Unit: Nanoseconds}
	s.nsec += s.step
	s.sec += s.nsec / timespec.NanosPerSecond
	s.nsec %= timespec.NanosPerSecond
	return r
}

func (s *StepSource) ReadWall() (Reading, error) {
	return s.read(), nil
}

func (s *StepSource) ReadMonotonic() (Reading, error) {
	return s.read(), nil
}

// FailingSource reports an error on every read. If Err is nil a generic read
// failure is used.
type FailingSource struct {
	Err error
}

func (s *FailingSource) fail() error {
	if s.Err != nil {
		return s.Err
	}
	return oops.Errorf("source: raw clock read failed")
}

func (s *FailingSource) ReadWall() (Reading, error) {
	return Reading{}, s.fail()
}

func (s *FailingSource) ReadMonotonic() (Reading, error) {
	return Reading{}, s.fail()
}
