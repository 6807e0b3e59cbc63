package player

import (
	"math/rand"
	"testing"
)

// fixedSource makes rand.Float64 return a chosen value: Float64 divides
// Int63 by 1<<63.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }

func (s fixedSource) Seed(int64) {}

func fixedRand(f float64) *rand.Rand {
	return rand.New(fixedSource{v: int64(f * (1 << 63))})
}

func TestMostVisited(t *testing.T) {
	f, err := MostVisited([]float64{3, 7, 2})
	if err != nil {
		t.Fatalf("MostVisited: %v", err)
	}
	if f != 1 {
		t.Fatalf("MostVisited = %d, want 1", f)
	}
}

func TestMostVisitedTieBreaksLow(t *testing.T) {
	f, err := MostVisited([]float64{5, 5, 2})
	if err != nil {
		t.Fatalf("MostVisited: %v", err)
	}
	if f != 0 {
		t.Fatalf("tie should resolve to the lowest index, got %d", f)
	}
}

func TestMostVisitedNoVisits(t *testing.T) {
	if _, err := MostVisited([]float64{0, 0}); err != ErrNoVisits {
		t.Fatalf("err = %v, want ErrNoVisits", err)
	}
}

func TestVisitWeighted(t *testing.T) {
	// Cumulative normalized counts are [0.25, 0.25, 0.25, 1.0, 1.0]; a draw
	// of 0.5 lands on index 3.
	f, err := VisitWeighted([]float64{10, 0, 0, 30, 0}, fixedRand(0.5))
	if err != nil {
		t.Fatalf("VisitWeighted: %v", err)
	}
	if f != 3 {
		t.Fatalf("VisitWeighted = %d, want 3", f)
	}
}

func TestVisitWeightedLowDraw(t *testing.T) {
	f, err := VisitWeighted([]float64{10, 0, 0, 30, 0}, fixedRand(0.1))
	if err != nil {
		t.Fatalf("VisitWeighted: %v", err)
	}
	if f != 0 {
		t.Fatalf("VisitWeighted = %d, want 0", f)
	}
}

func TestVisitWeightedNoVisits(t *testing.T) {
	if _, err := VisitWeighted([]float64{0, 0, 0}, fixedRand(0.5)); err != ErrNoVisits {
		t.Fatalf("err = %v, want ErrNoVisits", err)
	}
}

func TestVisitWeightedNeverPicksZero(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	visits := []float64{0, 1, 0, 0, 7, 0}
	for i := 0; i < 1000; i++ {
		f, err := VisitWeighted(visits, r)
		if err != nil {
			t.Fatalf("VisitWeighted: %v", err)
		}
		if visits[f] == 0 {
			t.Fatalf("selected zero-visit index %d", f)
		}
	}
}
