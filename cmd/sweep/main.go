// Package main runs the colony simulation across many seeds in parallel and
// summarizes how fitness varies with the starting conditions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/sim"
	"github.com/pthm-cable/colony/world"
)

// seedResult is one seed's outcome over the full run.
type seedResult struct {
	Seed        int64   `csv:"seed"`
	Generations int     `csv:"generations"`
	BestFitness int     `csv:"best_fitness"`
	MeanFitness float64 `csv:"mean_fitness"`
	NestsTotal  int     `csv:"nests_total"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of seeds to evaluate")
	baseSeed := flag.Int64("base-seed", 42, "First seed; subsequent seeds increment from it")
	generations := flag.Int("generations", 20, "Generations per seed")
	workers := flag.Int("workers", 4, "Parallel evaluations")
	outputDir := flag.String("output", "", "Output directory for seeds.csv (empty = stdout summary only)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	results := make([]seedResult, *seeds)
	sem := make(chan struct{}, *workers)
	var wg sync.WaitGroup

	for i := 0; i < *seeds; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			seed := *baseSeed + int64(idx)
			results[idx] = evaluateSeed(cfg, seed, *generations)
			slog.Info("seed finished",
				"seed", seed,
				"best_fitness", results[idx].BestFitness,
				"mean_fitness", results[idx].MeanFitness,
			)
		}(i)
	}
	wg.Wait()

	best := make([]float64, len(results))
	for i, r := range results {
		best[i] = float64(r.BestFitness)
	}
	mean := stat.Mean(best, nil)
	std := 0.0
	if len(best) > 1 {
		std = stat.StdDev(best, nil)
	}
	slog.Info("sweep finished",
		"seeds", *seeds,
		"generations", *generations,
		"best_mean", mean,
		"best_std", std,
	)

	if *outputDir != "" {
		if err := writeResults(*outputDir, results); err != nil {
			slog.Error("failed to write results", "error", err)
			os.Exit(1)
		}
	}
}

// evaluateSeed runs one independent simulation for the requested number of
// generations and aggregates its fitness history.
func evaluateSeed(cfg *config.Config, seed int64, generations int) seedResult {
	grid := buildWorld(cfg, seed)
	s, err := sim.New(cfg, grid, seed)
	if err != nil {
		// Config was validated before the sweep started.
		panic(err)
	}

	for s.Generation() < generations {
		s.Tick()
	}

	var fitness []float64
	for _, rec := range s.Collector().History() {
		fitness = append(fitness, float64(rec.Fitness))
	}
	res := seedResult{
		Seed:        seed,
		Generations: s.Generation(),
		BestFitness: s.BestFitness(),
		NestsTotal:  s.Snapshot().NestsTotal,
	}
	if len(fitness) > 0 {
		res.MeanFitness = stat.Mean(fitness, nil)
	}
	return res
}

func writeResults(dir string, results []seedResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "seeds.csv"))
	if err != nil {
		return fmt.Errorf("creating seeds.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(results, f); err != nil {
		return fmt.Errorf("writing seed results: %w", err)
	}
	return nil
}

// buildWorld mirrors the main binary's terrain setup: flat soil with food
// and hazards scattered over the surface from a seed-derived RNG.
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
