package round

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCrashMultiplierDeterminism(t *testing.T) {
	for id := int64(0); id < 10000; id++ {
		a := CrashMultiplier(id)
		b := CrashMultiplier(id)
		if a != b {
			t.Fatalf("round %d: multiplier not deterministic: %v vs %v", id, a, b)
		}
	}
}

func TestCrashMultiplierRange(t *testing.T) {
	instant := 0
	for id := int64(0); id < 1000000; id++ {
		m := CrashMultiplier(id)
		if m < 1.0 || m > MaxMultiplier {
			t.Fatalf("round %d: multiplier %v outside [1.00, %v]", id, m, MaxMultiplier)
		}
		// at most two decimal places: the float must round-trip through
		// integer hundredths
		cents := int64(math.Round(m * 100))
		if float64(cents)/100 != m {
			t.Fatalf("round %d: multiplier %v has more than 2 decimal places", id, m)
		}
		if d := CrashDecimal(id); !d.Equal(decimal.New(cents, -2)) {
			t.Fatalf("round %d: decimal crash point %s disagrees with float %v", id, d, m)
		}
		if m == 1.0 {
			instant++
		}
	}

	// instant crashes happen with chance 0.03 plus the near-1 tail of
	// the 0.97/(1-r) curve flooring down to 1.00
	rate := float64(instant) / 1000000
	if rate < 0.02 || rate > 0.08 {
		t.Errorf("instant crash rate %v implausible", rate)
	}
}

func TestFlightDuration(t *testing.T) {
	g := GrowthRate // ln(m)/g, via a variable so the division is runtime float math
	tests := []struct {
		multiplier float64
		want       time.Duration
	}{
		{1.0, 0},
		{0.5, 0},
		{math.E, time.Duration(float64(time.Second) / g)},
	}

	for _, tt := range tests {
		got := FlightDuration(tt.multiplier)
		if diff := (got - tt.want).Abs(); diff > time.Millisecond {
			t.Errorf("FlightDuration(%v) = %v, want %v", tt.multiplier, got, tt.want)
		}
	}

	// purity
	for id := int64(0); id < 1000; id++ {
		m := CrashMultiplier(id)
		if FlightDuration(m) != FlightDuration(m) {
			t.Fatalf("FlightDuration not pure for round %d", id)
		}
	}
}

func TestLocatePhases(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) // window boundary

	snap := Locate(base.Add(time.Second))
	if snap.Phase != PhaseBetting {
		t.Fatalf("1s into window: phase = %v, want betting", snap.Phase)
	}
	if snap.Elapsed != time.Second {
		t.Fatalf("1s into window: elapsed = %v, want 1s", snap.Elapsed)
	}

	first := Locate(base)
	at := BettingDuration + first.Flight/2
	snap = Locate(base.Add(at))
	if first.Flight > 0 && snap.Phase != PhaseFlying {
		t.Fatalf("mid-flight: phase = %v, want flying", snap.Phase)
	}
	if snap.RoundID != first.RoundID {
		t.Fatalf("mid-flight: round changed from %d to %d", first.RoundID, snap.RoundID)
	}

	snap = Locate(base.Add(BettingDuration + first.Flight + time.Second))
	if snap.Phase != PhaseCrashed {
		t.Fatalf("post-flight: phase = %v, want crashed", snap.Phase)
	}
}

func TestLocateConvergence(t *testing.T) {
	// Observers anchored at different boundaries must agree on the
	// state at the same instant.
	now := time.Date(2026, 3, 1, 12, 7, 33, 500000000, time.UTC)

	current := now.Truncate(10 * time.Minute)
	stale := current.Add(-30 * time.Minute)

	a := LocateFrom(current, now)
	b := LocateFrom(stale, now)
	c := Locate(now)

	if a != b || a != c {
		t.Fatalf("observers diverged: %+v vs %+v vs %+v", a, b, c)
	}
}

func TestLocateRestartable(t *testing.T) {
	// Re-deriving the same instant twice is idempotent.
	now := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	if Locate(now) != Locate(now) {
		t.Fatal("Locate is not idempotent")
	}
}

func TestLocateMonotonicRoundIDs(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	prev := int64(-1)
	for i := 0; i < 2400; i++ { // one hour in 1.5s steps
		snap := Locate(start.Add(time.Duration(i) * 1500 * time.Millisecond))
		if snap.RoundID < prev {
			t.Fatalf("round id went backwards: %d after %d", snap.RoundID, prev)
		}
		prev = snap.RoundID
	}
}

func TestSnapshotMultiplier(t *testing.T) {
	snap := Snapshot{Phase: PhaseBetting}
	if snap.Multiplier() != 1.0 {
		t.Errorf("betting multiplier = %v, want 1.0", snap.Multiplier())
	}

	snap = Snapshot{Phase: PhaseFlying, Elapsed: 0, CrashPoint: 2.0}
	if got := snap.Multiplier(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("flight start multiplier = %v, want 1.0", got)
	}

	snap = Snapshot{Phase: PhaseCrashed, CrashPoint: 4.2}
	if snap.Multiplier() != 4.2 {
		t.Errorf("crashed multiplier = %v, want crash point", snap.Multiplier())
	}
}
