// Package sgf renders finished games as SGF game records.
package sgf

import (
	"fmt"
	"strings"

	"github.com/FreddieMercy/minigo/internal/goboard"
)

// Record holds everything needed to render one game.
type Record struct {
	Size      int
	Komi      float64
	Result    string
	BlackName string
	WhiteName string
	Moves     []goboard.PlayerMove
	// Comments are attached per move node, Comments[i] to Moves[i].
	Comments []string
}

// Make renders rec as a single-variation SGF blob.
func Make(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"(;GM[1]FF[4]CA[UTF-8]AP[minigo]RU[Chinese]SZ[%d]KM[%.1f]PW[%s]PB[%s]RE[%s]",
		rec.Size, rec.Komi, escape(rec.WhiteName), escape(rec.BlackName), escape(rec.Result))
	for i, pm := range rec.Moves {
		color := "B"
		if pm.Color == goboard.White {
			color = "W"
		}
		fmt.Fprintf(&b, "\n;%s[%s]", color, goboard.SGFCoord(pm.Move))
		if i < len(rec.Comments) && rec.Comments[i] != "" {
			fmt.Fprintf(&b, "C[%s]", escape(rec.Comments[i]))
		}
	}
	b.WriteString(")\n")
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `]`, `\]`)
}
