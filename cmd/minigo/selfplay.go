package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appcfg "github.com/FreddieMercy/minigo/internal/config"
	"github.com/FreddieMercy/minigo/internal/dualnet"
	"github.com/FreddieMercy/minigo/internal/goboard"
	"github.com/FreddieMercy/minigo/internal/obslog"
	"github.com/FreddieMercy/minigo/internal/player"
	"github.com/FreddieMercy/minigo/internal/records"
)

var selfplayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Play GAMES self-play games, writing SGF and training examples",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, msgs, err := setup()
		if err != nil {
			return err
		}
		return runSelfplay(cmd.Context(), cfg, msgs)
	},
}

func runSelfplay(ctx context.Context, cfg *appcfg.AppConfig, msgs *player.ChatMessages) error {
	log := obslog.L()

	var repo *records.Repository
	if cfg.DatabaseURL != "" {
		var err error
		repo, err = records.NewRepository(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer repo.Close()
	}

	var queue *records.ExampleQueue
	if cfg.RedisURL != "" {
		var err error
		queue, err = records.NewExampleQueue(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer queue.Close()
	}

	for i := 0; i < cfg.Games; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		p := buildPlayer(cfg, msgs)
		if err := playOneGame(ctx, cfg, p, repo, queue); err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		log.Info("game finished",
			zap.Int("game", i+1),
			zap.Int("of", cfg.Games),
			zap.String("result", p.Result().String()))
	}
	return nil
}

func buildPlayer(cfg *appcfg.AppConfig, msgs *player.ChatMessages) *player.Player {
	opts := player.Options{
		SecondsPerMove:     cfg.SecondsPerMove,
		SimulationsPerMove: cfg.SimulationsPerMove,
		ResignThreshold:    cfg.ResignThreshold,
		Verbosity:          cfg.Verbosity,
		Logger:             obslog.L(),
		Messages:           msgs,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}
	net := dualnet.NewUniform()
	if cfg.TournamentMode {
		clock := player.ClockSettings{
			SecondsPerMove: cfg.SecondsPerMove,
			TimeLimit:      cfg.TimeLimit,
			DecayFactor:    cfg.DecayFactor,
		}
		return player.NewTournamentPlayer(net, opts, clock)
	}
	return player.NewPlayer(net, opts)
}

func playOneGame(ctx context.Context, cfg *appcfg.AppConfig, p *player.Player, repo *records.Repository, queue *records.ExampleQueue) error {
	started := time.Now()
	pos := goboard.NewPosition(cfg.BoardSize, cfg.Komi)
	p.InitializeGame(pos)

	for !p.IsGameOver() && !p.ShouldResign() {
		move, err := p.SuggestMove(pos)
		if err != nil {
			return fmt.Errorf("suggest: %w", err)
		}
		next, err := pos.PlayMove(move)
		if err != nil {
			return fmt.Errorf("play %s: %w", goboard.HumanCoord(cfg.BoardSize, move), err)
		}
		if err := p.CommitMove(move); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		pos = next
	}
	result := p.FinalizeResult()

	gameID := uuid.NewString()
	sgfText, err := p.ToSGF()
	if err != nil {
		return fmt.Errorf("sgf: %w", err)
	}
	if err := writeSGF(cfg.SGFDir, gameID, sgfText); err != nil {
		return err
	}

	if repo != nil {
		method := "score"
		if result.Kind == player.Resigned {
			method = "resign"
		}
		rec := &records.GameRecord{
			ID:           gameID,
			BoardSize:    cfg.BoardSize,
			BlackName:    cfg.BlackName,
			WhiteName:    cfg.WhiteName,
			Result:       result.Text,
			ResultMethod: method,
			Moves:        pos.MoveNum(),
			SGF:          sgfText,
			StartedAt:    started,
			EndedAt:      time.Now(),
		}
		if err := repo.SaveGame(ctx, rec); err != nil {
			return err
		}
	}

	if queue != nil {
		ds, err := p.ToDataset()
		if err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		examples := make([]records.Example, 0, len(ds.Positions))
		for i := range ds.Positions {
			examples = append(examples, records.Example{
				GameID:  gameID,
				Ply:     i,
				Board:   ds.Positions[i].String(),
				Policy:  ds.Policies[i],
				Outcome: ds.Outcomes[i],
			})
		}
		if err := queue.Push(ctx, examples...); err != nil {
			return err
		}
	}
	return nil
}

func writeSGF(dir, gameID, sgfText string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sgf dir: %w", err)
	}
	path := filepath.Join(dir, gameID+".sgf")
	if err := os.WriteFile(path, []byte(sgfText), 0o644); err != nil {
		return fmt.Errorf("write sgf: %w", err)
	}
	return nil
}
