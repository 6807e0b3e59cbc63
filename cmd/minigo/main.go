package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appcfg "github.com/FreddieMercy/minigo/internal/config"
	"github.com/FreddieMercy/minigo/internal/msgcat"
	"github.com/FreddieMercy/minigo/internal/obslog"
	"github.com/FreddieMercy/minigo/internal/player"
)

var rootCmd = &cobra.Command{
	Use:          "minigo",
	Short:        "MCTS go player: self-play, tournaments, and a status endpoint",
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(selfplayCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, boots logging, and resolves chat messages.
func setup() (*appcfg.AppConfig, *player.ChatMessages, error) {
	cfg, err := appcfg.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	cat, err := msgcat.New(cfg.MessageDir)
	if err != nil {
		return nil, nil, fmt.Errorf("messages: %w", err)
	}
	msgs := player.ChatMessages{
		Default:    cat.Get("chat.default"),
		NotPlaying: cat.Get("chat.notplaying"),
		Thinking:   cat.Get("chat.thinking"),
		Fortune:    cat.Get("chat.fortune"),
		Help:       cat.Get("chat.help"),
	}
	return cfg, &msgs, nil
}
