// Command cometlane-soak plays the game headless with random lane changes
// for a fixed number of frames and prints a timing report.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/cometlane/game"
)

func main() {
	frames := flag.Int("frames", 100000, "Number of 60 Hz updates to simulate.")
	seed := flag.Uint64("seed", 1, "Seed for both the comet lane picker and the simulated player.")
	moveChance := flag.Float64("move-chance", 0.02, "Probability per frame that the simulated player presses a direction key.")
	configPath := flag.String("config", "", "Path to a YAML config file.")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg.ExitOnGameOver = false

	// the world logs every game over at info; keep the soak output readable
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	world := game.NewWorld(cfg, rand.New(rand.NewPCG(*seed, *seed)), quiet, nil, nil)
	player := rand.New(rand.NewPCG(*seed^0xC0FFEE, *seed))

	report := &Report{
		Frames:     *frames,
		Seed:       *seed,
		MoveChance: *moveChance,
		UpdateTime: Stats{Samples: make([]time.Duration, 0, *frames)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("starting soak run", "frames", *frames, "seed", *seed)
	start := time.Now()
	const dt = 1.0 / 60.0

	for range *frames {
		in := simulatePlayer(player, *moveChance)
		if world.State().GameOver {
			report.GameOvers++
			in.Restart = true
		}
		world.Press(in)

		updateStart := time.Now()
		world.Step(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.Systems = world.Scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Error("failed to generate report", "err", err)
		os.Exit(1)
	}
}

func simulatePlayer(rng *rand.Rand, chance float64) game.Input {
	if rng.Float64() >= chance {
		return game.Input{}
	}
	if rng.IntN(2) == 0 {
		return game.Input{Left: true}
	}
	return game.Input{Right: true}
}
