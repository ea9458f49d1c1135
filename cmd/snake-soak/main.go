package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/internal/game"
	"github.com/plus3/snek/internal/placement"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Uint64("seed", 1, "Seed for placement and the autopilot.")
	width := flag.Int("width", 16, "Grid width in cells.")
	height := flag.Int("height", 12, "Grid height in cells.")
	paced := flag.Bool("paced", false, "Tick at the game's own rate instead of as fast as possible.")
	wander := flag.Float64("wander", 0.05, "Chance per tick that the autopilot takes a random safe turn.")
	verbose := flag.Bool("v", false, "Log game events.")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	logger.Info().Msg("Starting snake soak...")

	g, err := game.New(game.Config{Width: *width, Height: *height}, logger, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}
	g.AddSystem(&Autopilot{
		Rand:   rand.New(rand.NewPCG(*seed+1, *seed+1)),
		Wander: *wander,
	})

	report := &Report{
		Duration: *duration,
		Width:    *width,
		Height:   *height,
		Seed:     *seed,
		Paced:    *paced,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("Running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if *paced {
		report.Err = g.Run(ctx, 0)
	} else {
		report.Err = soak(ctx, g, &report.TickTime)
	}
	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Session = g.Stats()
	report.Final = g.Outcome()
	report.Scheduler = g.SchedulerStats()
	if spawner := ecs.ReadSingletonOf[game.Spawner](g.Storage()); spawner != nil {
		report.Fallbacks = spawner.Placer.Fallbacks()
	}

	logger.Info().Msg("Simulation finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	// A full board is where a long soak is expected to end up
	if report.Err != nil && !errors.Is(report.Err, placement.ErrPlacementExhausted) {
		os.Exit(1)
	}
}

// soak ticks as fast as possible until ctx ends or a tick fails
func soak(ctx context.Context, g *game.Game, samples *Stats) error {
	for ctx.Err() == nil {
		start := time.Now()
		_, err := g.Tick()
		samples.Samples = append(samples.Samples, time.Since(start))
		if err != nil {
			return err
		}
	}
	return nil
}
