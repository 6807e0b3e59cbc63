// Package records persists finished games and queues training examples.
package records

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// GameRecord is one finished self-play or match game.
type GameRecord struct {
	ID           string // uuid
	BoardSize    int
	BlackName    string
	WhiteName    string
	Result       string // e.g. "B+12.5", "W+Resign"
	ResultMethod string // "score" or "resign"
	Moves        int
	SGF          string
	StartedAt    time.Time
	EndedAt      time.Time
}

// Repository stores finished games in Postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveGame upserts a finished game.
func (r *Repository) SaveGame(ctx context.Context, g *GameRecord) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}

	duration := g.EndedAt.Sub(g.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	q := `INSERT INTO selfplay_games (
	    game_id, board_size, black_name, white_name,
	    result, result_method, moves, sgf,
	    started_at, ended_at, duration_ms
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
	  ) ON CONFLICT (game_id) DO UPDATE SET
	    board_size=EXCLUDED.board_size,
	    black_name=EXCLUDED.black_name,
	    white_name=EXCLUDED.white_name,
	    result=EXCLUDED.result,
	    result_method=EXCLUDED.result_method,
	    moves=EXCLUDED.moves,
	    sgf=EXCLUDED.sgf,
	    started_at=EXCLUDED.started_at,
	    ended_at=EXCLUDED.ended_at,
	    duration_ms=EXCLUDED.duration_ms`

	_, err := r.db.ExecContext(ctx, q,
		g.ID, g.BoardSize, g.BlackName, g.WhiteName,
		g.Result, g.ResultMethod, g.Moves, g.SGF,
		g.StartedAt, g.EndedAt, duration,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}
