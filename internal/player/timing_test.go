package player

import (
	"math"
	"testing"
)

func TestAllocateTimeFlatPhase(t *testing.T) {
	clock := ClockSettings{SecondsPerMove: 5, TimeLimit: 900, DecayFactor: 0.98}
	if got := AllocateTime(0, clock); got != 5 {
		t.Fatalf("AllocateTime(0) = %v, want 5", got)
	}
	// Both plies of a turn map to the same own-move index.
	if got := AllocateTime(1, clock); math.Abs(got-5) > 1e-9 {
		t.Fatalf("AllocateTime(1) = %v, want 5", got)
	}
}

func TestAllocateTimeBoundedByClock(t *testing.T) {
	for _, clock := range []ClockSettings{
		{SecondsPerMove: 5, TimeLimit: 900, DecayFactor: 0.98},
		{SecondsPerMove: 10, TimeLimit: 60, DecayFactor: 0.95},
		{SecondsPerMove: 1, TimeLimit: 15, DecayFactor: 0.9},
	} {
		sum := 0.0
		prev := math.Inf(1)
		for own := 0; own < 5000; own++ {
			v := AllocateTime(2*own, clock)
			if v < 0 {
				t.Fatalf("negative budget %v at own move %d (%+v)", v, own, clock)
			}
			if v > prev+1e-9 {
				t.Fatalf("budget increased at own move %d (%+v)", own, clock)
			}
			prev = v
			sum += v
		}
		if sum > clock.TimeLimit+1e-6 {
			t.Fatalf("partial sum %v exceeds limit %v (%+v)", sum, clock.TimeLimit, clock)
		}
	}
}

func TestAllocateTimeInfeasibleRate(t *testing.T) {
	// endgameTime = 5/(1-0.98) = 250 > 100, so decay starts at move zero.
	clock := ClockSettings{SecondsPerMove: 5, TimeLimit: 100, DecayFactor: 0.98}
	want := 100 * (1 - 0.98)
	if got := AllocateTime(0, clock); math.Abs(got-want) > 1e-9 {
		t.Fatalf("AllocateTime(0) = %v, want %v", got, want)
	}
	if AllocateTime(20, clock) >= AllocateTime(0, clock) {
		t.Fatal("budget must decay from move zero")
	}
}
