package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/sim"
	"github.com/pthm-cable/colony/telemetry"
	"github.com/pthm-cable/colony/world"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	generations := flag.Int("generations", 0, "Stop after N generations (0 = unlimited)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N total ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log per-generation stats via slog")
	tps := flag.Float64("tps", 0, "Throttle to N ticks per second (0 = unthrottled)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	grid := buildWorld(cfg, rngSeed)

	s, err := sim.New(cfg, grid, rngSeed)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	s.OnGeneration(func(stats telemetry.GenerationStats) {
		if err := output.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation stats", "error", err)
		}
		if *logStats {
			slog.Info("generation finished",
				"generation", stats.Generation,
				"ticks", stats.Ticks,
				"fitness", stats.Fitness,
				"best_fitness", stats.BestFitness,
				"survivors", stats.Survivors,
				"nests_total", stats.NestsTotal,
			)
		}
	})

	slog.Info("starting simulation",
		"seed", rngSeed,
		"generations", *generations,
		"max_ticks", *maxTicks,
		"population", cfg.Population.Size,
		"world", []int{cfg.World.Width, cfg.World.Height, cfg.World.Depth},
	)

	run(s, *generations, *maxTicks, *tps)

	slog.Info("simulation finished",
		"generations", s.Generation(),
		"best_fitness", s.BestFitness(),
	)
}

// run drives the simulation until a stop condition is hit. With tps > 0 the
// loop throttles against wall time through a fixed-timestep runner.
func run(s *sim.Simulation, generations, maxTicks int, tps float64) {
	done := func(total int) bool {
		if generations > 0 && s.Generation() >= generations {
			return true
		}
		return maxTicks > 0 && total >= maxTicks
	}

	total := 0
	if tps <= 0 {
		for !done(total) {
			s.Tick()
			total++
		}
		return
	}

	runner := sim.NewRunner(s, tps)
	last := time.Now()
	for !done(total) {
		now := time.Now()
		ran := runner.Advance(now.Sub(last).Seconds())
		last = now
		total += ran
		if ran == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// buildWorld creates the voxel terrain: bedrock floor, soil up to the
// surface, then food and hazard cells scattered over the surface layer.
// Seeding uses its own RNG so terrain stays independent of the simulation's
// draw order.
func buildWorld(cfg *config.Config, seed int64) *world.Grid {
	grid := world.NewFlatGrid(cfg.World.Width, cfg.World.Height, cfg.World.Depth, cfg.World.SurfaceY)

	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	for x := 0; x < cfg.World.Width; x++ {
		for z := 0; z < cfg.World.Depth; z++ {
			top := grid.TopY(x, z)
			if top < 1 {
				continue
			}
			switch r := rng.Float64(); {
			case r < cfg.World.FoodDensity:
				grid.SetCell(x, top, z, world.Food)
			case r < cfg.World.FoodDensity+cfg.World.HazardDensity:
				grid.SetCell(x, top, z, world.Hazard)
			}
		}
	}
	return grid
}
