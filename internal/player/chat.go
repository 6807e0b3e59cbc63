package player

import (
	"fmt"
	"strings"
)

// ChatMessages holds the fixed texts the chat responder is built from. The
// defaults can be overridden from a message catalog at wiring time.
type ChatMessages struct {
	Default    string
	NotPlaying string
	Thinking   string
	Fortune    string
	Help       string
}

func DefaultChatMessages() ChatMessages {
	return ChatMessages{
		Default:    "Supported commands are 'winrate', 'nextplay', 'fortune', and 'help'.",
		NotPlaying: "I'm not playing right now.  ",
		Thinking:   "I'm thinking... ",
		Fortune:    "You're feeling lucky!",
		Help:       "I can't help much with go -- try ladders!  Otherwise: ",
	}
}

// Chat answers a free-text query about the current search state. Matching is
// case-insensitive, in precedence order winrate, nextplay, fortune, help;
// anything else gets the command listing. Before any search has run the
// responder always reports that it is not playing.
func (p *Player) Chat(msgType, sender, text string) string {
	if p.root == nil || p.root.Position().MoveNum() == 0 {
		return p.messages.NotPlaying + p.messages.Default
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "winrate"):
		q := p.root.Q()
		winrate := (abs(q) + 1) / 2
		color := "White"
		if q > 0 {
			color = "Black"
		}
		return fmt.Sprintf("%s %.2f%%", color, winrate*100)
	case strings.Contains(lower, "nextplay"):
		return p.messages.Thinking + p.root.MostVisitedPath()
	case strings.Contains(lower, "fortune"):
		return p.messages.Fortune
	case strings.Contains(lower, "help"):
		return p.messages.Help + p.messages.Default
	default:
		return p.messages.Default
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
