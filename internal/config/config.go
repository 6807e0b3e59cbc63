package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	BoardSize int
	Komi      float64

	SecondsPerMove     float64
	SimulationsPerMove int
	ResignThreshold    float64
	Verbosity          int
	Seed               int64

	TournamentMode bool
	TimeLimit      float64
	DecayFactor    float64

	Games     int
	BlackName string
	WhiteName string

	SGFDir     string
	MessageDir string

	RedisURL    string
	DatabaseURL string

	StatusAddr string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		BoardSize:          9,
		Komi:               7.5,
		SecondsPerMove:     5,
		SimulationsPerMove: 0,
		ResignThreshold:    -0.9,
		TimeLimit:          0,
		DecayFactor:        0.98,
		Games:              1,
		BlackName:          "minigo-black",
		WhiteName:          "minigo-white",
		SGFDir:             "sgf",
		StatusAddr:         ":8190",
	}

	if v := strings.TrimSpace(os.Getenv("BOARD_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > 19 {
			return nil, errors.New("BOARD_SIZE must be an integer between 2 and 19")
		}
		cfg.BoardSize = n
	}
	if v := strings.TrimSpace(os.Getenv("KOMI")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("KOMI must be a number")
		}
		cfg.Komi = f
	}

	if v := strings.TrimSpace(os.Getenv("SECONDS_PER_MOVE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.SecondsPerMove = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("SIMULATIONS_PER_MOVE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SimulationsPerMove = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("RESIGN_THRESHOLD")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ResignThreshold = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("VERBOSITY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Verbosity = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SEED")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("TOURNAMENT_MODE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TournamentMode = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("TIME_LIMIT")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.TimeLimit = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("DECAY_FACTOR")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f >= 1 {
			return nil, errors.New("DECAY_FACTOR must be between 0 and 1 exclusive")
		}
		cfg.DecayFactor = f
	}

	if v := strings.TrimSpace(os.Getenv("GAMES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Games = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BLACK_NAME")); v != "" {
		cfg.BlackName = v
	}
	if v := strings.TrimSpace(os.Getenv("WHITE_NAME")); v != "" {
		cfg.WhiteName = v
	}

	if v := strings.TrimSpace(os.Getenv("SGF_DIR")); v != "" {
		cfg.SGFDir = v
	}
	cfg.MessageDir = strings.TrimSpace(os.Getenv("MESSAGE_DIR"))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("STATUS_ADDR")); v != "" {
		cfg.StatusAddr = v
	}

	if cfg.TournamentMode && cfg.TimeLimit <= 0 {
		return nil, errors.New("TIME_LIMIT is required when TOURNAMENT_MODE is enabled")
	}

	return cfg, nil
}
