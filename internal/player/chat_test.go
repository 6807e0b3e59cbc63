package player

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/FreddieMercy/minigo/internal/goboard"
)

func chattyPlayer(t *testing.T, value float64) *Player {
	t.Helper()
	p := NewPlayer(scriptedEvaluator{value: value}, Options{
		SimulationsPerMove: 8,
		ResignThreshold:    -1,
		Rand:               rand.New(rand.NewSource(11)),
	})
	p.InitializeGame(goboard.NewPosition(5, 0))
	move, err := p.SuggestMove(p.RootPosition())
	if err != nil {
		t.Fatalf("SuggestMove: %v", err)
	}
	if err := p.CommitMove(move); err != nil {
		t.Fatalf("CommitMove: %v", err)
	}
	return p
}

func TestChatBeforeAnyGame(t *testing.T) {
	p := NewPlayer(scriptedEvaluator{}, Options{})
	got := p.Chat("message", "someone", "winrate")
	if !strings.HasPrefix(got, "I'm not playing right now.") {
		t.Fatalf("Chat = %q", got)
	}

	// A game at ply zero is also "not playing".
	p.InitializeGame(goboard.NewPosition(5, 0))
	if got := p.Chat("message", "someone", "help"); !strings.HasPrefix(got, "I'm not playing right now.") {
		t.Fatalf("Chat = %q", got)
	}
}

func TestChatWinrate(t *testing.T) {
	p := chattyPlayer(t, 0.5)
	got := p.Chat("message", "someone", "What's your WINRATE?")
	if !strings.HasSuffix(got, "%") {
		t.Fatalf("Chat = %q", got)
	}
	color := strings.Fields(got)[0]
	if color != "Black" && color != "White" {
		t.Fatalf("Chat = %q, want a leading color", got)
	}
}

func TestChatNextPlay(t *testing.T) {
	p := chattyPlayer(t, 0.5)
	got := p.Chat("message", "someone", "nextplay")
	if !strings.HasPrefix(got, "I'm thinking... ") {
		t.Fatalf("Chat = %q", got)
	}
}

func TestChatPrecedenceAndDefault(t *testing.T) {
	p := chattyPlayer(t, 0.5)
	// "winrate" outranks "help" when both appear.
	got := p.Chat("message", "someone", "help me read the winrate")
	if strings.Contains(got, "ladders") {
		t.Fatalf("winrate should win precedence, got %q", got)
	}
	if got := p.Chat("message", "someone", "FORTUNE"); got != "You're feeling lucky!" {
		t.Fatalf("Chat = %q", got)
	}
	if got := p.Chat("message", "someone", "what is this"); !strings.HasPrefix(got, "Supported commands") {
		t.Fatalf("Chat = %q", got)
	}
	if got := p.Chat("message", "someone", "HELP"); !strings.HasPrefix(got, "I can't help much with go") {
		t.Fatalf("Chat = %q", got)
	}
}
