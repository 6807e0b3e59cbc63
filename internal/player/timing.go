package player

import "math"

// ClockSettings describes an absolute tournament clock: the nominal per-move
// rate, the total budget for the whole game, and the decay applied once the
// flat phase is exhausted.
type ClockSettings struct {
	SecondsPerMove float64
	TimeLimit      float64
	DecayFactor    float64
}

// AllocateTime returns the wall-time budget for the move at moveNum under a
// fixed total clock. Only the player's own moves consume the clock, so the
// schedule is indexed by moveNum/2. The strategy spends SecondsPerMove flat
// for as long as an exponentially decaying tail can still be afforded, then
// decays; the infinite sum of the returned budgets never exceeds TimeLimit.
func AllocateTime(moveNum int, clock ClockSettings) float64 {
	playerMoveNum := float64(moveNum) / 2

	// An infinite decay schedule starting at SecondsPerMove consumes this much.
	endgameTime := clock.SecondsPerMove / (1 - clock.DecayFactor)

	if endgameTime > clock.TimeLimit {
		// The nominal rate is infeasible: decay from move zero at a base rate
		// calibrated to the whole clock.
		baseTime := clock.TimeLimit * (1 - clock.DecayFactor)
		return baseTime * math.Pow(clock.DecayFactor, playerMoveNum)
	}

	// Reserve endgameTime for the tail and play flat until then.
	coreMoves := (clock.TimeLimit - endgameTime) / clock.SecondsPerMove
	if playerMoveNum < coreMoves {
		return clock.SecondsPerMove
	}
	return clock.SecondsPerMove * math.Pow(clock.DecayFactor, playerMoveNum-coreMoves)
}
