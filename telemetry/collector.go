// Package telemetry aggregates per-generation simulation statistics and
// writes them to structured output.
package telemetry

import (
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds the aggregated record of one finished generation.
type GenerationStats struct {
	Generation  int `csv:"generation"`
	Ticks       int `csv:"ticks"`
	Fitness     int `csv:"fitness"`
	BestFitness int `csv:"best_fitness"`
	Survivors   int `csv:"survivors"`
	Deaths      int `csv:"deaths"`
	NestsTotal  int `csv:"nests_total"`

	// Action counts across the generation
	Moves  int `csv:"moves"`
	Digs   int `csv:"digs"`
	Eats   int `csv:"eats"`
	Shares int `csv:"shares"`
	Heals  int `csv:"heals"`
	NoOps  int `csv:"noops"`

	// Elite archive summary after recording this generation
	ArchiveSize int     `csv:"archive_size"`
	ArchiveMean float64 `csv:"archive_mean"`
	ArchiveStd  float64 `csv:"archive_std"`
}

// Collector accumulates events within one generation and produces
// GenerationStats when the generation finishes.
type Collector struct {
	moves  int
	digs   int
	eats   int
	shares int
	heals  int
	noOps  int
	deaths int

	history []GenerationStats
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordMove records a successful move action.
func (c *Collector) RecordMove() { c.moves++ }

// RecordDig records a successful dig action.
func (c *Collector) RecordDig() { c.digs++ }

// RecordEat records a successful eat action.
func (c *Collector) RecordEat() { c.eats++ }

// RecordShare records a successful deliberate health share.
func (c *Collector) RecordShare() { c.shares++ }

// RecordAutoHeal records an automatic worker-to-queen heal.
func (c *Collector) RecordAutoHeal() { c.heals++ }

// RecordNoOp records an agent falling through to the no-op action.
func (c *Collector) RecordNoOp() { c.noOps++ }

// RecordDeath records an agent death.
func (c *Collector) RecordDeath() { c.deaths++ }

// FinishGeneration folds the accumulated counters into a GenerationStats
// record, appends it to the history, and resets the counters for the next
// generation. archiveFitness carries the elite archive's fitness values for
// the summary columns.
func (c *Collector) FinishGeneration(
	generation, ticks, fitness, bestFitness, survivors, nestsTotal int,
	archiveFitness []float64,
) GenerationStats {
	stats := GenerationStats{
		Generation:  generation,
		Ticks:       ticks,
		Fitness:     fitness,
		BestFitness: bestFitness,
		Survivors:   survivors,
		Deaths:      c.deaths,
		NestsTotal:  nestsTotal,
		Moves:       c.moves,
		Digs:        c.digs,
		Eats:        c.eats,
		Shares:      c.shares,
		Heals:       c.heals,
		NoOps:       c.noOps,
		ArchiveSize: len(archiveFitness),
	}

	if len(archiveFitness) > 0 {
		stats.ArchiveMean = stat.Mean(archiveFitness, nil)
	}
	if len(archiveFitness) > 1 {
		stats.ArchiveStd = stat.StdDev(archiveFitness, nil)
	}

	c.history = append(c.history, stats)
	c.reset()
	return stats
}

// History returns all finished generation records in order.
func (c *Collector) History() []GenerationStats {
	return c.history
}

func (c *Collector) reset() {
	c.moves = 0
	c.digs = 0
	c.eats = 0
	c.shares = 0
	c.heals = 0
	c.noOps = 0
	c.deaths = 0
}
