package goboard

import (
	"fmt"
	"strings"
)

// Color of a stone, or Empty. Black is positive so that black-favoring scores
// and values are positive numbers throughout.
type Color int8

const (
	Empty Color = 0
	Black Color = 1
	White Color = -1
)

func (c Color) Other() Color { return -c }

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "."
	}
}

// PlayerMove is one entry of a position's move history.
type PlayerMove struct {
	Color Color
	Move  Coord
}

// Position is an immutable Go board state. PlayMove returns a new Position
// and never mutates the receiver.
type Position struct {
	size    int
	board   []Color
	komi    float64
	ko      int // flat index barred by simple ko, -1 when none
	moveNum int
	toPlay  Color
	recent  []PlayerMove
}

func NewPosition(size int, komi float64) *Position {
	return &Position{
		size:   size,
		board:  make([]Color, size*size),
		komi:   komi,
		ko:     -1,
		toPlay: Black,
	}
}

func (p *Position) Size() int { return p.size }

func (p *Position) Komi() float64 { return p.komi }

func (p *Position) MoveNum() int { return p.moveNum }

func (p *Position) ToPlay() Color { return p.toPlay }

// Stone returns the content of an intersection.
func (p *Position) Stone(c Coord) Color {
	return p.board[c.Row*p.size+c.Col]
}

// Recent returns the move history, oldest first. The caller must not modify
// the returned slice.
func (p *Position) Recent() []PlayerMove {
	return p.recent
}

// IsGameOver reports whether the last two moves were both passes.
func (p *Position) IsGameOver() bool {
	n := len(p.recent)
	return n >= 2 && p.recent[n-1].Move.IsPass() && p.recent[n-2].Move.IsPass()
}

func (p *Position) neighbors(f int) []int {
	size := p.size
	out := make([]int, 0, 4)
	row, col := f/size, f%size
	if row > 0 {
		out = append(out, f-size)
	}
	if row < size-1 {
		out = append(out, f+size)
	}
	if col > 0 {
		out = append(out, f-1)
	}
	if col < size-1 {
		out = append(out, f+1)
	}
	return out
}

// group flood-fills the chain containing f on the given board and returns the
// chain's stones and its liberty count.
func (p *Position) group(board []Color, f int) (stones []int, liberties int) {
	color := board[f]
	seen := make(map[int]bool)
	libs := make(map[int]bool)
	stack := []int{f}
	seen[f] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, cur)
		for _, nb := range p.neighbors(cur) {
			switch board[nb] {
			case Empty:
				libs[nb] = true
			case color:
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return stones, len(libs)
}

// applyMove places a stone of color col at flat index f on board, removing
// captured opponent chains. It returns the captured stone count and the flat
// index of the capture if exactly one stone was taken (-1 otherwise), or an
// error for an illegal placement. The board slice is modified in place.
func (p *Position) applyMove(board []Color, f int, col Color) (captured, single int, err error) {
	if board[f] != Empty {
		return 0, -1, fmt.Errorf("%s is occupied", HumanCoord(p.size, Unflatten(p.size, f)))
	}
	board[f] = col
	single = -1
	for _, nb := range p.neighbors(f) {
		if board[nb] != col.Other() {
			continue
		}
		stones, libs := p.group(board, nb)
		if libs == 0 {
			captured += len(stones)
			if len(stones) == 1 {
				single = stones[0]
			}
			for _, s := range stones {
				board[s] = Empty
			}
		}
	}
	if _, libs := p.group(board, f); libs == 0 {
		return 0, -1, fmt.Errorf("%s is suicide", HumanCoord(p.size, Unflatten(p.size, f)))
	}
	if captured != 1 {
		single = -1
	}
	return captured, single, nil
}

// PlayMove returns the position after c is played by the side to move.
// Playing on an occupied point, retaking a ko, or suicide are errors.
func (p *Position) PlayMove(c Coord) (*Position, error) {
	if p.IsGameOver() {
		return nil, fmt.Errorf("game is over")
	}

	next := &Position{
		size:    p.size,
		board:   append([]Color(nil), p.board...),
		komi:    p.komi,
		ko:      -1,
		moveNum: p.moveNum + 1,
		toPlay:  p.toPlay.Other(),
		recent:  append(append([]PlayerMove(nil), p.recent...), PlayerMove{Color: p.toPlay, Move: c}),
	}
	if c.IsPass() {
		return next, nil
	}

	if c.Row < 0 || c.Row >= p.size || c.Col < 0 || c.Col >= p.size {
		return nil, fmt.Errorf("coordinate out of range")
	}
	f := Flatten(p.size, c)
	if f == p.ko {
		return nil, fmt.Errorf("%s retakes ko", HumanCoord(p.size, c))
	}

	captured, single, err := p.applyMove(next.board, f, p.toPlay)
	if err != nil {
		return nil, err
	}

	// Simple ko: a lone stone capturing a lone stone bars immediate recapture.
	if captured == 1 && single >= 0 {
		if stones, libs := p.group(next.board, f); len(stones) == 1 && libs == 1 {
			next.ko = single
		}
	}
	return next, nil
}

// IsLegal reports whether the side to move may play c.
func (p *Position) IsLegal(c Coord) bool {
	if p.IsGameOver() {
		return false
	}
	if c.IsPass() {
		return true
	}
	if c.Row < 0 || c.Row >= p.size || c.Col < 0 || c.Col >= p.size {
		return false
	}
	f := Flatten(p.size, c)
	if p.board[f] != Empty || f == p.ko {
		return false
	}
	scratch := append([]Color(nil), p.board...)
	_, _, err := p.applyMove(scratch, f, p.toPlay)
	return err == nil
}

// AllLegalMoves returns a mask over flat move indices, pass included.
func (p *Position) AllLegalMoves() []bool {
	mask := make([]bool, NumMoves(p.size))
	for f := 0; f < p.size*p.size; f++ {
		mask[f] = p.IsLegal(Unflatten(p.size, f))
	}
	mask[p.size*p.size] = !p.IsGameOver()
	return mask
}

// Score returns the area score from Black's perspective, komi applied. Empty
// regions bordering only one color count as that color's territory.
func (p *Position) Score() float64 {
	size := p.size
	counted := make([]bool, size*size)
	var black, white float64
	for f := range p.board {
		switch p.board[f] {
		case Black:
			black++
		case White:
			white++
		default:
			if counted[f] {
				continue
			}
			region, borders := p.emptyRegion(f)
			for _, r := range region {
				counted[r] = true
			}
			switch borders {
			case Black:
				black += float64(len(region))
			case White:
				white += float64(len(region))
			}
		}
	}
	return black - white - p.komi
}

// emptyRegion flood-fills the empty region containing f and returns its
// points and its bordering color: Black or White when the region touches only
// that color, Empty when it touches both or neither.
func (p *Position) emptyRegion(f int) (region []int, borders Color) {
	seen := map[int]bool{f: true}
	stack := []int{f}
	var touchesBlack, touchesWhite bool
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, cur)
		for _, nb := range p.neighbors(cur) {
			switch p.board[nb] {
			case Black:
				touchesBlack = true
			case White:
				touchesWhite = true
			default:
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	switch {
	case touchesBlack && !touchesWhite:
		return region, Black
	case touchesWhite && !touchesBlack:
		return region, White
	default:
		return region, Empty
	}
}

// Result renders the board-scored outcome, e.g. "B+12.5" or "W+3.5".
func (p *Position) Result() string {
	score := p.Score()
	switch {
	case score > 0:
		return fmt.Sprintf("B+%.1f", score)
	case score < 0:
		return fmt.Sprintf("W+%.1f", -score)
	default:
		return "DRAW"
	}
}

// Replay reconstructs the sequence of positions before each recorded move, in
// order. The returned slice has one entry per ply played.
func Replay(final *Position) ([]*Position, error) {
	pos := NewPosition(final.size, final.komi)
	out := make([]*Position, 0, len(final.recent))
	for _, pm := range final.recent {
		out = append(out, pos)
		next, err := pos.PlayMove(pm.Move)
		if err != nil {
			return nil, fmt.Errorf("replay ply %d: %w", pos.moveNum, err)
		}
		pos = next
	}
	return out, nil
}

func (p *Position) String() string {
	var b strings.Builder
	for row := 0; row < p.size; row++ {
		for col := 0; col < p.size; col++ {
			b.WriteString(p.board[row*p.size+col].String())
			if col < p.size-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Move %d, %s to play\n", p.moveNum, p.toPlay)
	return b.String()
}
