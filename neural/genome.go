// Package neural provides the evolvable genome and the feedforward policy
// network it encodes.
package neural

import "math/rand"

// Gene bounds enforced after mutation.
const (
	GeneMin = -3.0
	GeneMax = 3.0
)

// Genome is a fixed-length vector of real-valued genes encoding one policy
// network's weights and biases. The length never changes after creation.
type Genome struct {
	Genes []float64
}

// RandomGenome creates a genome with each gene drawn uniformly from [-1,1).
func RandomGenome(length int, rng *rand.Rand) *Genome {
	g := &Genome{Genes: make([]float64, length)}
	for i := range g.Genes {
		g.Genes[i] = rng.Float64()*2 - 1
	}
	return g
}

// GenomeFromVector creates a genome as a deep copy of values. No range
// validation is applied.
func GenomeFromVector(values []float64) *Genome {
	g := &Genome{Genes: make([]float64, len(values))}
	copy(g.Genes, values)
	return g
}

// Len returns the number of genes.
func (g *Genome) Len() int {
	return len(g.Genes)
}

// Copy creates an independent deep clone.
func (g *Genome) Copy() *Genome {
	return GenomeFromVector(g.Genes)
}

// Crossover produces a child by two-point crossover: two cut indices are
// drawn uniformly and ordered, the child takes b's genes on the closed cut
// range and a's genes elsewhere. Parents must share the same length.
// Crossover(g, g) reproduces g.
func Crossover(a, b *Genome, rng *rand.Rand) *Genome {
	child := a.Copy()
	if len(child.Genes) == 0 {
		return child
	}

	i1 := rng.Intn(len(child.Genes))
	i2 := rng.Intn(len(child.Genes))
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	copy(child.Genes[i1:i2+1], b.Genes[i1:i2+1])
	return child
}

// Mutate perturbs each gene independently with probability rate, adding
// noise from an approximate triangular distribution bounded in
// [-strength, strength] and concentrated near zero. Genes are clamped to
// [GeneMin, GeneMax] afterwards.
func (g *Genome) Mutate(rng *rand.Rand, rate, strength float64) {
	for i := range g.Genes {
		if rng.Float64() >= rate {
			continue
		}
		// Mean of three uniforms approximates a triangular distribution.
		u := (rng.Float64() + rng.Float64() + rng.Float64()) / 3
		g.Genes[i] += (u*2 - 1) * strength

		if g.Genes[i] < GeneMin {
			g.Genes[i] = GeneMin
		} else if g.Genes[i] > GeneMax {
			g.Genes[i] = GeneMax
		}
	}
}
