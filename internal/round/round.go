// Package round derives the state of the continuously running multiplier
// game purely from wall-clock time. Every observer performing the same
// computation against the same clock converges to the same round id,
// phase and elapsed time; no server feed is involved. Correctness
// therefore depends on the observer's local clock, which is a documented
// trust assumption of the design.
package round

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// BettingDuration is the fixed betting phase before each flight.
	BettingDuration = 6 * time.Second
	// CrashPause is the fixed pause after each crash.
	CrashPause = 3 * time.Second
	// GrowthRate g is chosen so that multiplier(t) = e^(g*t_seconds).
	GrowthRate = 0.2302585
	// MaxMultiplier caps the crash point.
	MaxMultiplier = 1000.0

	// instantCrashChance is the probability of a 1.00x instant crash.
	instantCrashChance = 0.03

	// anchorWindow is the coarse wall-clock window rounds are anchored
	// to. Round ids are namespaced per window; at most 67 rounds fit in
	// ten minutes (B + P alone take nine seconds), so idsPerWindow slots
	// never collide across windows.
	anchorWindow = 10 * time.Minute
	idsPerWindow = 1000
)

// Phase is the stage a round is currently in.
type Phase string

const (
	PhaseBetting Phase = "betting"
	PhaseFlying  Phase = "flying"
	PhaseCrashed Phase = "crashed"
)

// Snapshot is the fully derived state of the current round at one instant.
type Snapshot struct {
	RoundID    int64
	Phase      Phase
	Elapsed    time.Duration // within the current phase
	CrashPoint float64
	Flight     time.Duration
}

// Multiplier returns the multiplier an observer displays for this
// snapshot: 1.00 while betting, the exponential growth curve while
// flying, and the crash point once crashed.
func (s Snapshot) Multiplier() float64 {
	switch s.Phase {
	case PhaseFlying:
		m := math.Exp(GrowthRate * s.Elapsed.Seconds())
		if m > s.CrashPoint {
			m = s.CrashPoint
		}
		return m
	case PhaseCrashed:
		return s.CrashPoint
	default:
		return 1.0
	}
}

// CrashMultiplier derives the crash point for a round id. It is a pure
// function: the same id yields a bit-identical multiplier on any machine.
// The id is fed through a fixed integer mixer to a uniform r in [0,1);
// r < 0.03 crashes instantly at 1.00, otherwise the multiplier is
// 0.97/(1-r) clamped to [1.00, 1000.00] and floored to two decimals.
// The value is derived in integer hundredths, so the two-decimal floor
// is exact.
func CrashMultiplier(id int64) float64 {
	return float64(crashCents(id)) / 100
}

// CrashDecimal is the crash point for a round id as an exact two-decimal
// value, for callers that settle money against it.
func CrashDecimal(id int64) decimal.Decimal {
	return decimal.New(crashCents(id), -2)
}

func crashCents(id int64) int64 {
	r := uniform(id)
	if r < instantCrashChance {
		return 100
	}

	m := 0.97 / (1 - r)
	if m < 1.0 {
		m = 1.0
	}
	if m > MaxMultiplier {
		m = MaxMultiplier
	}
	return int64(math.Floor(m * 100))
}

// FlightDuration returns how long a flight lasts before crashing at
// multiplier m: ln(m)/g seconds, zero for m <= 1.
func FlightDuration(m float64) time.Duration {
	if m <= 1.0 {
		return 0
	}
	return time.Duration(math.Log(m) / GrowthRate * float64(time.Second))
}

// Locate computes the round state at the given instant, anchored at the
// current ten-minute wall-clock boundary.
func Locate(now time.Time) Snapshot {
	return LocateFrom(anchorBoundary(now), now)
}

// LocateFrom computes the round state at now starting from an anchor
// boundary. A stale anchor snaps forward to the boundary containing now,
// so observers starting from different boundaries converge on the same
// snapshot. The computation is side-effect free and safe to re-derive on
// every poll.
func LocateFrom(anchor, now time.Time) Snapshot {
	anchor = anchorBoundary(anchor)
	for now.Sub(anchor) >= anchorWindow {
		anchor = anchor.Add(anchorWindow)
	}

	offset := now.Sub(anchor)
	id := anchorRoundID(anchor)

	var start time.Duration
	for {
		crash := CrashMultiplier(id)
		flight := FlightDuration(crash)
		total := BettingDuration + flight + CrashPause

		if offset < start+total {
			in := offset - start
			snap := Snapshot{RoundID: id, CrashPoint: crash, Flight: flight}
			switch {
			case in < BettingDuration:
				snap.Phase = PhaseBetting
				snap.Elapsed = in
			case in < BettingDuration+flight:
				snap.Phase = PhaseFlying
				snap.Elapsed = in - BettingDuration
			default:
				snap.Phase = PhaseCrashed
				snap.Elapsed = in - BettingDuration - flight
			}
			return snap
		}

		start += total
		id++
	}
}

func anchorBoundary(t time.Time) time.Time {
	return t.UTC().Truncate(anchorWindow)
}

func anchorRoundID(boundary time.Time) int64 {
	return boundary.UnixMilli() / anchorWindow.Milliseconds() * idsPerWindow
}

// uniform maps a round id to a uniform value in [0,1) via a splitmix64
// mix. Frozen here rather than delegated to a PRNG so the mapping can
// never drift between runtime versions.
func uniform(id int64) float64 {
	x := uint64(id) + 0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return float64(x>>11) / (1 << 53)
}
