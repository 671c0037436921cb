package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/plus3/cometlane/game"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 0, "Seed for the comet lane picker (0 seeds from the clock).")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error. debug traces positions every frame.")
	scale := flag.Float64("scale", 0, "Window scale factor.")
	shipTexture := flag.String("ship-texture", "", "Spaceship texture image (defaults to the built-in one).")
	cometTexture := flag.String("comet-texture", "", "Comet texture image (defaults to the built-in one).")
	exitOnGameOver := flag.Bool("exit-on-game-over", true, "Quit when the comet hits the ship; otherwise wait for R to restart.")
	debugUI := flag.Bool("debug-ui", false, "Show the Dear ImGui debug overlay.")
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}

	// flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		case "scale":
			cfg.Scale = *scale
		case "ship-texture":
			cfg.ShipTexture = *shipTexture
		case "comet-texture":
			cfg.CometTexture = *cometTexture
		case "exit-on-game-over":
			cfg.ExitOnGameOver = *exitOnGameOver
		case "debug-ui":
			cfg.DebugUI = *debugUI
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %s\n", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	g, err := game.NewGame(cfg, log)
	if err != nil {
		log.Error("failed to create game", "err", err)
		os.Exit(1)
	}

	if err := g.Run(); err != nil {
		log.Error("error running game", "err", err)
		os.Exit(1)
	}

	if g.World().State().GameOver {
		fmt.Println("Game Over!")
	}
}
