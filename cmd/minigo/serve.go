package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FreddieMercy/minigo/internal/goboard"
	"github.com/FreddieMercy/minigo/internal/obslog"
	"github.com/FreddieMercy/minigo/internal/player"
	"github.com/FreddieMercy/minigo/internal/statushttp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run self-play continuously and expose /status and /chat over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, msgs, err := setup()
		if err != nil {
			return err
		}
		log := obslog.L()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var mu sync.Mutex
		var current *player.Player

		snapshot := func() statushttp.Snapshot {
			mu.Lock()
			defer mu.Unlock()
			if current == nil || current.Root() == nil {
				return statushttp.Snapshot{}
			}
			pos := current.RootPosition()
			toPlay := "B"
			if pos.ToPlay() == goboard.White {
				toPlay = "W"
			}
			return statushttp.Snapshot{
				Playing: current.Result().Kind == player.Ongoing,
				MoveNum: pos.MoveNum(),
				ToPlay:  toPlay,
				Q:       current.Root().Q(),
				Result:  current.Result().Text,
			}
		}
		chat := func(sender, text string) string {
			mu.Lock()
			defer mu.Unlock()
			if current == nil {
				return msgs.NotPlaying + msgs.Default
			}
			return current.Chat("http", sender, text)
		}

		srv := statushttp.New(snapshot, chat, log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe(cfg.StatusAddr) }()

		go func() {
			for ctx.Err() == nil {
				p := buildPlayer(cfg, msgs)
				pos := goboard.NewPosition(cfg.BoardSize, cfg.Komi)
				mu.Lock()
				current = p
				p.InitializeGame(pos)
				mu.Unlock()

				if err := serveOneGame(ctx, &mu, p, pos); err != nil {
					if !errors.Is(err, context.Canceled) {
						log.Error("self-play game failed", zap.Error(err))
					}
					return
				}
				log.Info("game finished", zap.String("result", p.Result().String()))
			}
		}()

		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return srv.Shutdown()
		case err := <-errCh:
			return err
		}
	},
}

// serveOneGame plays one game move by move, holding mu for each move so the
// HTTP handlers observe a consistent player between moves.
func serveOneGame(ctx context.Context, mu *sync.Mutex, p *player.Player, pos *goboard.Position) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		mu.Lock()
		if p.IsGameOver() || p.ShouldResign() {
			p.FinalizeResult()
			mu.Unlock()
			return nil
		}
		move, err := p.SuggestMove(pos)
		if err == nil {
			var next *goboard.Position
			next, err = pos.PlayMove(move)
			if err == nil {
				err = p.CommitMove(move)
				pos = next
			}
		}
		mu.Unlock()
		if err != nil {
			return err
		}
	}
}
