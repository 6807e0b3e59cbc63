package goboard

import (
	"fmt"
	"strings"
)

// Coord is a board intersection. Row 0 is the top row, Col 0 the left column.
type Coord struct {
	Row int
	Col int
}

// Pass is the pass move sentinel.
var Pass = Coord{Row: -1, Col: -1}

func (c Coord) IsPass() bool {
	return c.Row < 0 || c.Col < 0
}

// Flatten maps a coordinate to a flat index in [0, size*size], where
// size*size is the pass move.
func Flatten(size int, c Coord) int {
	if c.IsPass() {
		return size * size
	}
	return c.Row*size + c.Col
}

// Unflatten is the inverse of Flatten.
func Unflatten(size, f int) Coord {
	if f >= size*size || f < 0 {
		return Pass
	}
	return Coord{Row: f / size, Col: f % size}
}

// NumMoves returns the number of flat move indices for a board, including pass.
func NumMoves(size int) int {
	return size*size + 1
}

// Column letters in GTP/human notation skip "I".
const columnLetters = "ABCDEFGHJKLMNOPQRST"

// HumanCoord renders a coordinate in GTP style, e.g. "D4", with row 1 at the
// bottom of the board. Pass renders as "pass".
func HumanCoord(size int, c Coord) string {
	if c.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%c%d", columnLetters[c.Col], size-c.Row)
}

// ParseHumanCoord parses GTP-style coordinates produced by HumanCoord.
func ParseHumanCoord(size int, s string) (Coord, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Pass, fmt.Errorf("empty coordinate")
	}
	if s == "PASS" {
		return Pass, nil
	}
	col := strings.IndexByte(columnLetters, s[0])
	if col < 0 || col >= size {
		return Pass, fmt.Errorf("bad column in coordinate %q", s)
	}
	var row int
	if _, err := fmt.Sscanf(s[1:], "%d", &row); err != nil {
		return Pass, fmt.Errorf("bad row in coordinate %q", s)
	}
	if row < 1 || row > size {
		return Pass, fmt.Errorf("row out of range in coordinate %q", s)
	}
	return Coord{Row: size - row, Col: col}, nil
}

// SGFCoord renders a coordinate in SGF point notation (column letter then row
// letter, both from 'a' at the top-left). Pass renders as the empty string.
func SGFCoord(c Coord) string {
	if c.IsPass() {
		return ""
	}
	return string([]byte{byte('a' + c.Col), byte('a' + c.Row)})
}
