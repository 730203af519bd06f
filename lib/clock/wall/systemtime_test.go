package wall

import (
	"errors"
	"math"
	"testing"

	"github.com/go-timekit/timekit/lib/clock/source"
	"github.com/go-timekit/timekit/lib/timespec"
)

func wallAt(t *testing.T, sec int64, nsec uint64) SystemTime {
	t.Helper()
	ts, err := timespec.New(sec, nsec)
	if err != nil {
		t.Fatalf("timespec.New(%d, %d) failed: %v", sec, nsec, err)
	}
	return FromTimespec(ts)
}

// =============================================================================
// Epoch and Constructor Tests
// =============================================================================

// TestEpoch_IsZeroTimespec verifies the epoch constant wraps the zero pair.
func TestEpoch_IsZeroTimespec(t *testing.T) {
	if !Epoch.Timespec().Equal(timespec.Zero) {
		t.Errorf("Epoch = %s, want 0.000000000s", Epoch)
	}
	var zero SystemTime
	if !zero.Equal(Epoch) {
		t.Error("zero SystemTime must equal Epoch")
	}
}

// TestFromUnix verifies the whole-seconds layout.
func TestFromUnix(t *testing.T) {
	st := FromUnix(1700000000)
	if st.Timespec().Seconds() != 1700000000 || st.Timespec().Nanoseconds() != 0 {
		t.Errorf("FromUnix = %s, want 1700000000.000000000s", st)
	}
}

// TestFromUnixMicro verifies the microsecond layout scales by 1000.
func TestFromUnixMicro(t *testing.T) {
	st, err := FromUnixMicro(10, 250)
	if err != nil {
		t.Fatal(err)
	}
	if st.Timespec().Seconds() != 10 || st.Timespec().Nanoseconds() != 250_000 {
		t.Errorf("FromUnixMicro = %s, want 10.000250000s", st)
	}
	if _, err := FromUnixMicro(10, 1_000_000); err == nil {
		t.Error("expected rejection of a full-second microsecond remainder")
	}
}

// TestFromUnix_PreEpoch verifies negative seconds are representable.
func TestFromUnix_PreEpoch(t *testing.T) {
	st := FromUnix(-100)
	if !st.Before(Epoch) {
		t.Errorf("expected %s to order before the epoch", st)
	}
}

// =============================================================================
// Now Tests
// =============================================================================

// TestNow_WrapsWallReading verifies Now reads the wall mode.
func TestNow_WrapsWallReading(t *testing.T) {
	src := &source.FixedSource{
		Wall: source.Reading{Seconds: 1700000000, Fraction: 250, Unit: source.Microseconds},
	}
	st, err := Now(src)
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	if st.Timespec().Seconds() != 1700000000 || st.Timespec().Nanoseconds() != 250_000 {
		t.Errorf("now = %s, want 1700000000.000250000s", st)
	}
}

// TestNow_PropagatesSourceFailure verifies no default time is fabricated.
func TestNow_PropagatesSourceFailure(t *testing.T) {
	if _, err := Now(&source.FailingSource{}); err == nil {
		t.Error("expected Now to fail with a failing source")
	}
}

// =============================================================================
// DurationSince Tests
// =============================================================================

// TestDurationSince_Forward verifies the at-or-after case, with borrow.
func TestDurationSince_Forward(t *testing.T) {
	earlier := wallAt(t, 3, 500_000_000)
	later := wallAt(t, 5, 200)

	d, err := later.DurationSince(earlier)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if d.Seconds() != 1 || d.Nanoseconds() != 500_000_200 {
		t.Errorf("duration = %s, want 1.500000200s", d)
	}
}

// TestDurationSince_BackwardYieldsDriftError verifies the before case
// surfaces a *DriftError with the same magnitude.
func TestDurationSince_BackwardYieldsDriftError(t *testing.T) {
	earlier := wallAt(t, 3, 500_000_000)
	later := wallAt(t, 5, 200)

	_, err := earlier.DurationSince(later)
	if err == nil {
		t.Fatal("expected a DriftError when the operand is later")
	}
	var drift *DriftError
	if !errors.As(err, &drift) {
		t.Fatalf("expected *DriftError, got %T", err)
	}
	m := drift.Magnitude()
	if m.Seconds() != 1 || m.Nanoseconds() != 500_000_200 {
		t.Errorf("magnitude = %s, want 1.500000200s", m)
	}
}

// TestDurationSince_DirectionalContract sweeps pairs and checks the error is
// nil exactly when the receiver is at or after the operand.
func TestDurationSince_DirectionalContract(t *testing.T) {
	values := []SystemTime{
		wallAt(t, -2, 999_999_999),
		wallAt(t, -1, 0),
		Epoch,
		wallAt(t, 0, 1),
		wallAt(t, 1, 999_999_999),
		wallAt(t, 2, 0),
	}
	for _, a := range values {
		for _, b := range values {
			_, err := a.DurationSince(b)
			if (err == nil) != (a.Compare(b) >= 0) {
				t.Fatalf("directional contract violated for %s since %s (err=%v)", a, b, err)
			}
		}
	}
}

// TestDurationSince_Equal verifies equal times give a zero duration, nil error.
func TestDurationSince_Equal(t *testing.T) {
	a := wallAt(t, 42, 42)
	d, err := a.DurationSince(a)
	if err != nil || !d.IsZero() {
		t.Errorf("DurationSince(self) = %s, %v; want zero, nil", d, err)
	}
}

// TestSinceEpoch verifies the epoch convenience in both directions.
func TestSinceEpoch(t *testing.T) {
	d, err := wallAt(t, 7, 5).SinceEpoch()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if d.Seconds() != 7 || d.Nanoseconds() != 5 {
		t.Errorf("since epoch = %s, want 7.000000005s", d)
	}

	_, err = FromUnix(-1).SinceEpoch()
	var drift *DriftError
	if !errors.As(err, &drift) {
		t.Fatalf("expected *DriftError for a pre-epoch time, got %v", err)
	}
	m := drift.Magnitude()
	if m.Seconds() != 1 || m.Nanoseconds() != 0 {
		t.Errorf("pre-epoch magnitude = %s, want 1.000000000s", m)
	}
}

// =============================================================================
// Checked Offset Tests
// =============================================================================

// TestCheckedAddSub_RoundTrip verifies plus-then-minus restores the time.
func TestCheckedAddSub_RoundTrip(t *testing.T) {
	st := wallAt(t, 0, 900_000_000)
	d, err := timespec.NewDuration(0, 200_000_000)
	if err != nil {
		t.Fatal(err)
	}

	shifted, ok := st.CheckedAdd(d)
	if !ok {
		t.Fatal("expected add to succeed")
	}
	if shifted.Timespec().Seconds() != 1 || shifted.Timespec().Nanoseconds() != 100_000_000 {
		t.Errorf("shifted = %s, want 1.100000000s", shifted)
	}
	back, ok := shifted.CheckedSub(d)
	if !ok {
		t.Fatal("expected sub to succeed")
	}
	if !back.Equal(st) {
		t.Errorf("round trip = %s, want %s", back, st)
	}
}

// TestCheckedAdd_Overflow verifies no wrapping at the top of the range.
func TestCheckedAdd_Overflow(t *testing.T) {
	d, _ := timespec.NewDuration(1, 0)
	if _, ok := FromUnix(math.MaxInt64).CheckedAdd(d); ok {
		t.Error("expected overflow at MaxInt64 seconds")
	}
}

// TestCheckedSub_CrossesEpoch verifies subtraction below the epoch succeeds.
func TestCheckedSub_CrossesEpoch(t *testing.T) {
	d, _ := timespec.NewDuration(10, 0)
	st, ok := FromUnix(3).CheckedSub(d)
	if !ok {
		t.Fatal("expected sub to succeed")
	}
	if st.Timespec().Seconds() != -7 {
		t.Errorf("crossed-epoch time = %s, want -7.000000000s", st)
	}
}

// =============================================================================
// Ordering Tests
// =============================================================================

// TestSystemTimeOrdering verifies comparison helpers and hashing.
func TestSystemTimeOrdering(t *testing.T) {
	a := wallAt(t, 5, 1)
	b := wallAt(t, 5, 2)

	if !a.Before(b) || !b.After(a) || a.Equal(b) {
		t.Error("expected a < b")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Error("Compare disagrees with Before/After")
	}
	if a.Sum64() != wallAt(t, 5, 1).Sum64() {
		t.Error("equal times must hash identically")
	}
}
