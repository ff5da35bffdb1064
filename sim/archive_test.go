package sim

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/colony/neural"
)

func genomeOf(v float64, n int) *neural.Genome {
	genes := make([]float64, n)
	for i := range genes {
		genes[i] = v
	}
	return neural.GenomeFromVector(genes)
}

func TestArchiveOrderingAndCap(t *testing.T) {
	a := NewEliteArchive(2)
	a.Record(genomeOf(0.5, 4), 5)
	a.Record(genomeOf(0.9, 4), 9)
	a.Record(genomeOf(0.3, 4), 3)

	if a.Len() != 2 {
		t.Fatalf("archive length = %d, want cap 2", a.Len())
	}
	entries := a.Entries()
	if entries[0].Fitness != 9 || entries[1].Fitness != 5 {
		t.Errorf("fitness order = [%d, %d], want [9, 5]", entries[0].Fitness, entries[1].Fitness)
	}
	if entries[0].Genome.Genes[0] != 0.9 {
		t.Errorf("best genome gene = %v, want 0.9", entries[0].Genome.Genes[0])
	}

	best, ok := a.Best()
	if !ok || best.Fitness != 9 {
		t.Errorf("Best() = %+v, %v, want fitness 9", best, ok)
	}
}

func TestArchiveTiesKeepInsertionOrder(t *testing.T) {
	a := NewEliteArchive(4)
	a.Record(genomeOf(0.1, 4), 7)
	a.Record(genomeOf(0.2, 4), 7)
	a.Record(genomeOf(0.3, 4), 7)

	entries := a.Entries()
	for i, want := range []float64{0.1, 0.2, 0.3} {
		if entries[i].Genome.Genes[0] != want {
			t.Errorf("tied entry %d has gene %v, want %v", i, entries[i].Genome.Genes[0], want)
		}
	}
}

func TestArchiveRejectsWhenFullAndWorse(t *testing.T) {
	a := NewEliteArchive(2)
	a.Record(genomeOf(0.1, 4), 10)
	a.Record(genomeOf(0.2, 4), 8)
	a.Record(genomeOf(0.3, 4), 8) // ties with the tail of a full archive

	entries := a.Entries()
	if len(entries) != 2 || entries[1].Genome.Genes[0] != 0.2 {
		t.Errorf("full archive should keep the earlier tied entry, got %+v", entries)
	}
}

func TestArchiveFitnessValues(t *testing.T) {
	a := NewEliteArchive(4)
	a.Record(genomeOf(0.1, 4), 2)
	a.Record(genomeOf(0.2, 4), 6)

	values := a.FitnessValues()
	if len(values) != 2 || values[0] != 6 || values[1] != 2 {
		t.Errorf("fitness values = %v, want [6, 2]", values)
	}
}

func TestTournament(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	empty := NewEliteArchive(4)
	if empty.Tournament(rng) != nil {
		t.Error("tournament over an empty archive should return nil")
	}

	a := NewEliteArchive(4)
	a.Record(genomeOf(0.9, 4), 9)
	a.Record(genomeOf(0.1, 4), 1)

	sawBest, sawWorst := false, false
	for i := 0; i < 200; i++ {
		g := a.Tournament(rng)
		if g == nil {
			t.Fatal("tournament over a populated archive returned nil")
		}
		switch g.Genes[0] {
		case 0.9:
			sawBest = true
		case 0.1:
			sawWorst = true
		default:
			t.Fatalf("tournament returned a genome not in the archive: %v", g.Genes[0])
		}
	}
	if !sawBest {
		t.Error("tournament never selected the fitter genome in 200 draws")
	}
	if !sawWorst {
		t.Error("tournament never selected the weaker genome in 200 draws; both-weak draws should return it")
	}
}

func TestTournamentTiesKeepFirstSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := NewEliteArchive(2)
	a.Record(genomeOf(0.4, 4), 3)
	a.Record(genomeOf(0.6, 4), 3)

	// With equal fitness the second sample never strictly beats the first,
	// so every draw must return whichever entry was sampled first. Run many
	// draws and require both entries to show up, proving the selection is
	// the sample itself rather than a fixed archive slot.
	saw := map[float64]bool{}
	for i := 0; i < 200; i++ {
		saw[a.Tournament(rng).Genes[0]] = true
	}
	if !saw[0.4] || !saw[0.6] {
		t.Errorf("tied tournament should surface both entries over 200 draws, saw %v", saw)
	}
}
