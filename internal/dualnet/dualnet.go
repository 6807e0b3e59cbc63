// Package dualnet provides position evaluators for tree search.
package dualnet

import (
	"github.com/FreddieMercy/minigo/internal/goboard"
)

// Uniform spreads the prior evenly across legal moves and scores every
// position as even. It stands in where no trained network is available.
type Uniform struct{}

func NewUniform() *Uniform { return &Uniform{} }

func (u *Uniform) Name() string { return "uniform" }

func (u *Uniform) Evaluate(pos *goboard.Position) ([]float64, float64) {
	legal := pos.AllLegalMoves()
	priors := make([]float64, len(legal))
	n := 0
	for _, ok := range legal {
		if ok {
			n++
		}
	}
	if n == 0 {
		return priors, 0
	}
	p := 1.0 / float64(n)
	for i, ok := range legal {
		if ok {
			priors[i] = p
		}
	}
	return priors, 0
}
