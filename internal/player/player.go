// Package player is the decision layer of the engine: it owns the search
// tree root, spends a per-move budget on search iterations, turns visit
// statistics into moves, decides resignation, and assembles game records.
package player

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/FreddieMercy/minigo/internal/goboard"
	"github.com/FreddieMercy/minigo/internal/search"
)

// Evaluator scores a position: a prior probability per flat move (pass
// included) and a value in [-1, 1] from the side to move's perspective.
// Evaluation failures are not handled here; an evaluator that cannot answer
// should panic or be wrapped by the caller.
type Evaluator interface {
	Evaluate(pos *goboard.Position) (priors []float64, value float64)
	Name() string
}

// TimePolicy maps a move number to a wall-time budget in seconds. A Player
// with a time policy recomputes its per-move budget before every suggestion.
type TimePolicy func(moveNum int) float64

// Options configures a Player. Zero values pick the defaults noted per field.
type Options struct {
	// SecondsPerMove is the wall-clock budget per move, used when
	// SimulationsPerMove is zero. Default 5.
	SecondsPerMove float64
	// SimulationsPerMove caps root visits per move instead of wall time when
	// nonzero.
	SimulationsPerMove int
	// ResignThreshold is stored as -abs(value); resignation triggers when the
	// side to move's value estimate drops strictly below it. Default -0.9.
	// Use -1 to disable resignation.
	ResignThreshold float64
	// TwoPlayerMode disables policy recording and temperature-based
	// sampling (selection is always deterministic).
	TwoPlayerMode bool
	Verbosity     int
	// Rand drives stochastic move sampling. Default is time-seeded.
	Rand     *rand.Rand
	Logger   *zap.Logger
	Messages *ChatMessages
}

// Player drives a single game. It is not safe for concurrent use; each game
// instance owns its tree exclusively.
type Player struct {
	network            Evaluator
	secondsPerMove     float64
	simulationsPerMove int
	resignThreshold    float64
	twoPlayerMode      bool
	verbosity          int

	tempCutoff int
	depthCap   int

	root       *search.Node
	rec        *Recorder
	result     GameResult
	timePolicy TimePolicy
	rng        *rand.Rand
	logger     *zap.Logger
	messages   ChatMessages
}

func NewPlayer(network Evaluator, opts Options) *Player {
	if opts.SecondsPerMove == 0 {
		opts.SecondsPerMove = 5
	}
	if opts.ResignThreshold == 0 {
		opts.ResignThreshold = -0.9
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	messages := DefaultChatMessages()
	if opts.Messages != nil {
		messages = *opts.Messages
	}
	return &Player{
		network:            network,
		secondsPerMove:     opts.SecondsPerMove,
		simulationsPerMove: opts.SimulationsPerMove,
		resignThreshold:    -abs(opts.ResignThreshold),
		twoPlayerMode:      opts.TwoPlayerMode,
		verbosity:          opts.Verbosity,
		rec:                NewRecorder(!opts.TwoPlayerMode),
		rng:                opts.Rand,
		logger:             opts.Logger,
		messages:           messages,
	}
}

// NewTournamentPlayer returns a Player that recomputes its per-move budget
// from the tournament clock before every suggestion.
func NewTournamentPlayer(network Evaluator, opts Options, clock ClockSettings) *Player {
	p := NewPlayer(network, opts)
	p.timePolicy = func(moveNum int) float64 {
		return AllocateTime(moveNum, clock)
	}
	return p
}

// InitializeGame discards any existing tree, adopts pos as the new root, and
// clears all per-move records.
func (p *Player) InitializeGame(pos *goboard.Position) {
	p.adoptRoot(pos)
	p.rec.Reset()
	p.result = GameResult{}
}

func (p *Player) adoptRoot(pos *goboard.Position) {
	p.root = search.NewNode(pos)
	area := pos.Size() * pos.Size()
	p.depthCap = area * 5 / 4
	p.tempCutoff = area / 12
	if p.twoPlayerMode {
		p.tempCutoff = -1
	}
}

func (p *Player) Root() *search.Node { return p.root }

// RootPosition returns the position at the current root, or nil before any
// game has started.
func (p *Player) RootPosition() *goboard.Position {
	if p.root == nil {
		return nil
	}
	return p.root.Position()
}

func (p *Player) Result() GameResult { return p.result }

func (p *Player) Recorder() *Recorder { return p.rec }

func (p *Player) SecondsPerMove() float64 { return p.secondsPerMove }

// TreeSearch runs one search iteration: select a leaf, evaluate it, fold the
// evaluation back up to the root. Exposed so callers may interleave or batch
// iterations themselves.
func (p *Player) TreeSearch() error {
	leaf, err := p.root.SelectLeaf()
	if err != nil {
		return err
	}
	priors, value := p.network.Evaluate(leaf.Position())
	leaf.IncorporateResults(priors, value, p.root)
	return nil
}

// SuggestMove searches under the current budget and returns the chosen move.
// It does not record or commit anything. pos is adopted as the root when no
// game is in progress.
func (p *Player) SuggestMove(pos *goboard.Position) (goboard.Coord, error) {
	start := time.Now()
	if p.root == nil {
		p.adoptRoot(pos)
	}
	if p.timePolicy != nil {
		p.secondsPerMove = p.timePolicy(p.root.Position().MoveNum())
	}
	budget := time.Duration(p.secondsPerMove * float64(time.Second))

	// A fresh root has no child statistics yet; evaluate it once so the
	// budgeted iterations below always produce at least one child visit.
	if !p.root.Expanded() {
		if err := p.TreeSearch(); err != nil {
			return goboard.Pass, err
		}
	}

	// Budgets are polled once per iteration, so at least one iteration always
	// runs and a slow evaluation can overrun by one iteration's latency.
	for {
		if err := p.TreeSearch(); err != nil {
			return goboard.Pass, err
		}
		if p.simulationsPerMove > 0 {
			if p.root.Visits() >= p.simulationsPerMove {
				break
			}
		} else if time.Since(start) >= budget {
			break
		}
	}

	if p.verbosity > 0 {
		p.logger.Info("search finished",
			zap.Int("move", p.root.Position().MoveNum()),
			zap.Int("visits", p.root.Visits()),
			zap.Duration("elapsed", time.Since(start)))
	}
	if p.verbosity > 2 {
		p.logger.Debug(p.root.Describe())
	}
	return p.pickMove()
}

// pickMove converts root visit counts into a move: probability-weighted by
// visits in the early game, strict maximum afterwards.
func (p *Player) pickMove() (goboard.Coord, error) {
	visits := p.root.ChildVisits()
	var f int
	var err error
	if p.root.Position().MoveNum() > p.tempCutoff {
		f, err = MostVisited(visits)
	} else {
		f, err = VisitWeighted(visits, p.rng)
	}
	if err != nil {
		return goboard.Pass, err
	}
	return goboard.Unflatten(p.root.Position().Size(), f), nil
}

// CommitMove appends this ply's records and advances the root to the child
// for move c, creating it if it was never visited and releasing every
// sibling subtree. Legality is the caller's responsibility.
func (p *Player) CommitMove(c goboard.Coord) error {
	if p.root == nil {
		return fmt.Errorf("commit move: no game in progress")
	}
	pos := p.root.Position()
	var pi []float64
	if !p.twoPlayerMode {
		pi = p.root.ChildrenAsPi(pos.MoveNum() > p.tempCutoff)
	}
	p.rec.Append(pi, p.root.Q(), p.root.Describe())

	newRoot, err := p.root.AdvanceRoot(goboard.Flatten(pos.Size(), c))
	if err != nil {
		return fmt.Errorf("commit move %s: %w", goboard.HumanCoord(pos.Size(), c), err)
	}
	p.root = newRoot
	return nil
}

// IsGameOver reports a recorded terminal result, a terminal board, or the
// depth cap being reached. The cap is a safety valve against runaway games.
func (p *Player) IsGameOver() bool {
	if p.result.Kind != Ongoing {
		return true
	}
	if p.root == nil {
		return false
	}
	pos := p.root.Position()
	return pos.IsGameOver() || pos.MoveNum() >= p.depthCap
}

// ShouldResign records a resignation when the side to move's value estimate
// drops strictly below the resign threshold. The recorded result never
// changes afterwards.
func (p *Player) ShouldResign() bool {
	if p.root == nil {
		return false
	}
	if p.root.QPerspective() < p.resignThreshold {
		winner := p.root.Position().ToPlay().Other()
		p.setResult(ResignResult(winner))
		if p.verbosity > 1 {
			p.logger.Info("resigning",
				zap.String("result", p.result.Text),
				zap.Float64("q", p.root.Q()))
		}
		return true
	}
	return false
}

// setResult records r unless a terminal result already exists.
func (p *Player) setResult(r GameResult) {
	if p.result.Kind == Ongoing {
		p.result = r
	}
}

// FinalizeResult records the board-scored outcome when no terminal result
// exists yet and returns the final result.
func (p *Player) FinalizeResult() GameResult {
	if p.result.Kind == Ongoing && p.root != nil {
		p.setResult(ScoredResult(p.root.Position().Result()))
	}
	return p.result
}

// resultText renders the final result: synthesized from the resignation side
// when the game ended by resignation, board-computed otherwise.
func (p *Player) resultText() string {
	if p.result.Kind != Ongoing {
		return p.result.Text
	}
	return p.root.Position().Result()
}

// ToSGF renders the full game record.
func (p *Player) ToSGF() (string, error) {
	if p.root == nil {
		return "", fmt.Errorf("sgf export: no game in progress")
	}
	name := p.network.Name()
	if name == "" {
		name = "Unknown"
	}
	return p.rec.ToSGF(p.root.Position(), p.resultText(), name, name, p.resignThreshold), nil
}

// ToDataset exports the finished game as training triples.
func (p *Player) ToDataset() (*Dataset, error) {
	if p.root == nil {
		return nil, fmt.Errorf("dataset export: no game in progress")
	}
	result := p.result
	if result.Kind == Ongoing {
		result = ScoredResult(p.root.Position().Result())
	}
	return p.rec.ToDataset(p.root.Position(), result)
}
