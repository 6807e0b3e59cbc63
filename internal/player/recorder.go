package player

import (
	"fmt"

	"github.com/FreddieMercy/minigo/internal/goboard"
	"github.com/FreddieMercy/minigo/internal/sgf"
)

// Recorder accumulates per-move statistics as three parallel sequences
// indexed by ply: the normalized child-visit distribution (absent entirely
// when policy recording is off), the root Q at commit time, and a rendered
// search summary.
type Recorder struct {
	recordPolicy bool
	policies     [][]float64
	qs           []float64
	comments     []string
}

func NewRecorder(recordPolicy bool) *Recorder {
	return &Recorder{recordPolicy: recordPolicy}
}

// Append records one committed move. policy is ignored when policy recording
// is off.
func (r *Recorder) Append(policy []float64, q float64, comment string) {
	if r.recordPolicy {
		r.policies = append(r.policies, policy)
	}
	r.qs = append(r.qs, q)
	r.comments = append(r.comments, comment)
}

// Reset clears all sequences.
func (r *Recorder) Reset() {
	r.policies = nil
	r.qs = nil
	r.comments = nil
}

func (r *Recorder) Plies() int { return len(r.qs) }

func (r *Recorder) Policies() [][]float64 { return r.policies }

func (r *Recorder) Qs() []float64 { return r.qs }

// Dataset is one finished game flattened into training triples: the position
// before each non-terminal ply, the policy target recorded at that ply, and
// an outcome label broadcast uniformly over the whole game.
type Dataset struct {
	Positions []*goboard.Position
	Policies  [][]float64
	Outcomes  []int8
}

// ToDataset replays final's move history into training triples. It requires
// one recorded policy per ply; a mismatch means the record is corrupt (or
// policy recording was off) and no usable dataset exists.
func (r *Recorder) ToDataset(final *goboard.Position, result GameResult) (*Dataset, error) {
	if len(r.policies) != final.MoveNum() {
		return nil, fmt.Errorf("dataset export: %d recorded policies for %d plies",
			len(r.policies), final.MoveNum())
	}
	positions, err := goboard.Replay(final)
	if err != nil {
		return nil, err
	}
	// Drop the terminal position; every remaining ply gets the same label.
	n := len(positions) - 1
	if n < 0 {
		n = 0
	}
	var outcome int8 = 1
	if result.Winner == goboard.White {
		outcome = -1
	}
	ds := &Dataset{
		Positions: positions[:n],
		Policies:  r.policies[:n],
		Outcomes:  make([]int8, n),
	}
	for i := range ds.Outcomes {
		ds.Outcomes[i] = outcome
	}
	return ds, nil
}

// ToSGF renders the full move history with per-move comments. The first
// comment is prefixed with the configured resign threshold for provenance.
func (r *Recorder) ToSGF(final *goboard.Position, resultText, blackName, whiteName string, resignThreshold float64) string {
	comments := append([]string(nil), r.comments...)
	if len(comments) > 0 {
		comments[0] = fmt.Sprintf("Resign Threshold: %.3f\n%s", resignThreshold, comments[0])
	}
	return sgf.Make(sgf.Record{
		Size:      final.Size(),
		Komi:      final.Komi(),
		Result:    resultText,
		BlackName: blackName,
		WhiteName: whiteName,
		Moves:     final.Recent(),
		Comments:  comments,
	})
}
