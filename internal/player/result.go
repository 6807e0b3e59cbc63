package player

import (
	"strings"

	"github.com/FreddieMercy/minigo/internal/goboard"
)

// ResultKind tags how a game ended.
type ResultKind uint8

const (
	// Ongoing means no terminal result has been recorded.
	Ongoing ResultKind = iota
	// Scored means the game ended and was settled on the board.
	Scored
	// Resigned means one side resigned before the board was settled.
	Resigned
)

// GameResult is the terminal outcome of a game. The zero value is Ongoing.
// Once a non-Ongoing result is recorded on a Player it never changes.
type GameResult struct {
	Kind   ResultKind
	Winner goboard.Color
	// Text is the rendered result, e.g. "B+12.5" or "W+Resign".
	Text string
}

func (g GameResult) String() string {
	if g.Kind == Ongoing {
		return "ongoing"
	}
	return g.Text
}

// ScoredResult builds a Scored result from a board result string such as
// "B+12.5".
func ScoredResult(text string) GameResult {
	winner := goboard.Empty
	switch {
	case strings.HasPrefix(text, "B+"):
		winner = goboard.Black
	case strings.HasPrefix(text, "W+"):
		winner = goboard.White
	}
	return GameResult{Kind: Scored, Winner: winner, Text: text}
}

// ResignResult builds a Resigned result in favor of winner.
func ResignResult(winner goboard.Color) GameResult {
	text := "W+Resign"
	if winner == goboard.Black {
		text = "B+Resign"
	}
	return GameResult{Kind: Resigned, Winner: winner, Text: text}
}
