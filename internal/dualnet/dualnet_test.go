package dualnet

import (
	"math"
	"testing"

	"github.com/FreddieMercy/minigo/internal/goboard"
)

func TestUniformPriorsSumToOne(t *testing.T) {
	pos := goboard.NewPosition(5, 2.5)
	priors, value := NewUniform().Evaluate(pos)

	if value != 0 {
		t.Fatalf("value = %v, want 0", value)
	}
	if len(priors) != goboard.NumMoves(5) {
		t.Fatalf("priors length = %d", len(priors))
	}
	sum := 0.0
	for _, p := range priors {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("priors sum = %v", sum)
	}
}

func TestUniformSkipsIllegalMoves(t *testing.T) {
	pos := goboard.NewPosition(3, 0.5)
	pos, err := pos.PlayMove(goboard.Coord{Row: 1, Col: 1})
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	priors, _ := NewUniform().Evaluate(pos)
	f := goboard.Flatten(3, goboard.Coord{Row: 1, Col: 1})
	if priors[f] != 0 {
		t.Fatalf("occupied point got prior %v", priors[f])
	}
	if priors[goboard.Flatten(3, goboard.Pass)] == 0 {
		t.Fatal("pass should always carry prior mass")
	}
}
