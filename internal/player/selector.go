package player

import (
	"errors"
	"math/rand"
)

// ErrNoVisits is returned when move selection runs on a root whose children
// were never visited. Continuing would play a move the search never looked
// at, so callers must treat this as fatal.
var ErrNoVisits = errors.New("move selection: no child visits recorded")

// MostVisited returns the flat index with the maximum visit count. Ties
// resolve to the lowest index encountered.
func MostVisited(visits []float64) (int, error) {
	best, bestN := -1, 0.0
	for f, v := range visits {
		if v > bestN {
			bestN = v
			best = f
		}
	}
	if best < 0 {
		return 0, ErrNoVisits
	}
	return best, nil
}

// VisitWeighted samples a flat index with probability proportional to its
// visit count, by inverse-CDF sampling over the cumulative counts: one
// uniform draw in [0,1) selects the first index whose cumulative normalized
// count exceeds it. The selected index always has a nonzero count; anything
// else means the statistics are unusable and ErrNoVisits is returned.
func VisitWeighted(visits []float64, r *rand.Rand) (int, error) {
	cdf := make([]float64, len(visits))
	sum := 0.0
	for f, v := range visits {
		sum += v
		cdf[f] = sum
	}
	if sum <= 0 {
		return 0, ErrNoVisits
	}
	draw := r.Float64()
	for f := range cdf {
		if cdf[f]/sum > draw {
			if visits[f] == 0 {
				return 0, ErrNoVisits
			}
			return f, nil
		}
	}
	return 0, ErrNoVisits
}
