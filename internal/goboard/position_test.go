package goboard

import (
	"testing"
)

func mustPlay(t *testing.T, p *Position, c Coord) *Position {
	t.Helper()
	next, err := p.PlayMove(c)
	if err != nil {
		t.Fatalf("PlayMove(%v): %v", c, err)
	}
	return next
}

func TestFlattenRoundTrip(t *testing.T) {
	const size = 9
	for f := 0; f < NumMoves(size); f++ {
		if got := Flatten(size, Unflatten(size, f)); got != f {
			t.Fatalf("round trip %d -> %d", f, got)
		}
	}
	if Flatten(size, Pass) != size*size {
		t.Fatalf("pass should flatten to %d", size*size)
	}
}

func TestHumanCoord(t *testing.T) {
	// Top-left of a 9x9 board is A9; "I" is skipped in column letters.
	if got := HumanCoord(9, Coord{Row: 0, Col: 0}); got != "A9" {
		t.Fatalf("HumanCoord = %q, want A9", got)
	}
	if got := HumanCoord(9, Coord{Row: 8, Col: 8}); got != "J1" {
		t.Fatalf("HumanCoord = %q, want J1", got)
	}
	c, err := ParseHumanCoord(9, "d4")
	if err != nil {
		t.Fatalf("ParseHumanCoord: %v", err)
	}
	if c != (Coord{Row: 5, Col: 3}) {
		t.Fatalf("ParseHumanCoord = %v", c)
	}
	if got := HumanCoord(9, Pass); got != "pass" {
		t.Fatalf("HumanCoord(pass) = %q", got)
	}
}

func TestCapture(t *testing.T) {
	// Black surrounds a lone white stone at (1,1).
	p := NewPosition(5, 0)
	moves := []Coord{
		{1, 0}, {1, 1}, // B, W
		{0, 1}, {4, 4},
		{2, 1}, {4, 3},
		{1, 2}, // capture
	}
	for _, m := range moves {
		p = mustPlay(t, p, m)
	}
	if got := p.Stone(Coord{1, 1}); got != Empty {
		t.Fatalf("white stone not captured, got %v", got)
	}
}

func TestSuicideForbidden(t *testing.T) {
	p := NewPosition(3, 0)
	// Black stones around (0,0); white to play into the corner with no
	// liberties and nothing captured.
	p = mustPlay(t, p, Coord{0, 1})
	p = mustPlay(t, p, Coord{2, 2})
	p = mustPlay(t, p, Coord{1, 0})
	if _, err := p.PlayMove(Coord{0, 0}); err == nil {
		t.Fatal("expected suicide to be illegal")
	}
	if p.IsLegal(Coord{0, 0}) {
		t.Fatal("IsLegal should reject suicide")
	}
}

func TestSimpleKo(t *testing.T) {
	p := NewPosition(5, 0)
	moves := []Coord{
		{1, 1}, {1, 2},
		{2, 0}, {2, 3},
		{3, 1}, {3, 2},
		{2, 2}, {2, 1}, // white captures the black stone at (2,2)
	}
	for _, m := range moves {
		p = mustPlay(t, p, m)
	}
	if p.Stone(Coord{2, 2}) != Empty {
		t.Fatal("expected black stone captured")
	}
	// Immediate recapture at (2,2) is barred by ko.
	if _, err := p.PlayMove(Coord{2, 2}); err == nil {
		t.Fatal("expected ko recapture to be illegal")
	}
	// After a ko threat elsewhere the point opens up again.
	p = mustPlay(t, p, Coord{4, 4})
	p = mustPlay(t, p, Coord{4, 0})
	if !p.IsLegal(Coord{2, 2}) {
		t.Fatal("ko point should be open after intervening moves")
	}
}

func TestGameOverAfterTwoPasses(t *testing.T) {
	p := NewPosition(5, 0)
	p = mustPlay(t, p, Coord{2, 2})
	p = mustPlay(t, p, Pass)
	if p.IsGameOver() {
		t.Fatal("one pass should not end the game")
	}
	p = mustPlay(t, p, Pass)
	if !p.IsGameOver() {
		t.Fatal("two passes should end the game")
	}
	if _, err := p.PlayMove(Coord{0, 0}); err == nil {
		t.Fatal("no moves after game over")
	}
}

func TestScoreAndResult(t *testing.T) {
	// Single black stone on an otherwise empty board owns everything.
	p := NewPosition(5, 2.5)
	p = mustPlay(t, p, Coord{2, 2})
	if got := p.Score(); got != 25-2.5 {
		t.Fatalf("Score = %v, want 22.5", got)
	}
	if got := p.Result(); got != "B+22.5" {
		t.Fatalf("Result = %q", got)
	}
}

func TestReplay(t *testing.T) {
	p := NewPosition(5, 0)
	moves := []Coord{{0, 0}, {1, 1}, Pass, {2, 2}}
	for _, m := range moves {
		p = mustPlay(t, p, m)
	}
	positions, err := Replay(p)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(positions) != len(moves) {
		t.Fatalf("Replay returned %d positions, want %d", len(positions), len(moves))
	}
	for i, pos := range positions {
		if pos.MoveNum() != i {
			t.Fatalf("position %d has move number %d", i, pos.MoveNum())
		}
	}
}

func TestAllLegalMovesMask(t *testing.T) {
	p := NewPosition(3, 0)
	p = mustPlay(t, p, Coord{1, 1})
	mask := p.AllLegalMoves()
	if len(mask) != NumMoves(3) {
		t.Fatalf("mask length %d", len(mask))
	}
	if mask[Flatten(3, Coord{1, 1})] {
		t.Fatal("occupied point must be illegal")
	}
	if !mask[3*3] {
		t.Fatal("pass must be legal")
	}
}
