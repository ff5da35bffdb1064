package sim

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/colony/neural"
)

// ArchiveEntry pairs a retained genome with the fitness it earned.
type ArchiveEntry struct {
	Genome  *neural.Genome
	Fitness int
}

// EliteArchive stores proven genomes sorted descending by fitness, capped
// at a fixed size. It survives across generations and seeds future breeding.
type EliteArchive struct {
	entries []ArchiveEntry
	maxSize int
}

// NewEliteArchive creates an empty archive holding at most maxSize entries.
func NewEliteArchive(maxSize int) *EliteArchive {
	return &EliteArchive{
		entries: make([]ArchiveEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Len returns the number of retained entries.
func (a *EliteArchive) Len() int {
	return len(a.entries)
}

// Record inserts (genome, fitness) keeping descending fitness order, with
// equal-fitness entries staying in insertion order, then truncates to the
// archive capacity. The lowest entry falls off a full archive.
func (a *EliteArchive) Record(g *neural.Genome, fitness int) {
	idx := sort.Search(len(a.entries), func(i int) bool {
		return a.entries[i].Fitness < fitness
	})

	if len(a.entries) >= a.maxSize && idx >= a.maxSize {
		return
	}

	a.entries = append(a.entries, ArchiveEntry{})
	copy(a.entries[idx+1:], a.entries[idx:])
	a.entries[idx] = ArchiveEntry{Genome: g, Fitness: fitness}

	if len(a.entries) > a.maxSize {
		a.entries = a.entries[:a.maxSize]
	}
}

// Best returns the highest-fitness entry.
func (a *EliteArchive) Best() (ArchiveEntry, bool) {
	if len(a.entries) == 0 {
		return ArchiveEntry{}, false
	}
	return a.entries[0], true
}

// Entries returns the retained entries in descending fitness order. The
// returned slice is the archive's own storage; callers must not modify it.
func (a *EliteArchive) Entries() []ArchiveEntry {
	return a.entries
}

// FitnessValues returns the retained fitness values for statistics.
func (a *EliteArchive) FitnessValues() []float64 {
	vals := make([]float64, len(a.entries))
	for i, e := range a.entries {
		vals[i] = float64(e.Fitness)
	}
	return vals
}

// Tournament selects one parent by sampling two entries uniformly with
// replacement and keeping the fitter one; the first sample wins ties.
// Returns nil on an empty archive.
func (a *EliteArchive) Tournament(rng *rand.Rand) *neural.Genome {
	if len(a.entries) == 0 {
		return nil
	}
	first := &a.entries[rng.Intn(len(a.entries))]
	second := &a.entries[rng.Intn(len(a.entries))]
	if second.Fitness > first.Fitness {
		return second.Genome
	}
	return first.Genome
}
