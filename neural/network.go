package neural

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when a genome's length does not match the
// parameter count of the network it is loaded into.
var ErrDimensionMismatch = errors.New("neural: genome length does not match network dimensions")

// Network is a one-hidden-layer feedforward policy network with tanh
// activations. Weights live in contiguous buffers sized at construction;
// the network holds no mutable state across Evaluate calls.
type Network struct {
	in, hidden, out int

	w1 []float64 // input->hidden weights, row-major by input: w1[i*hidden+j]
	b1 []float64 // hidden biases
	w2 []float64 // hidden->output weights, row-major by hidden: w2[j*out+k]
	b2 []float64 // output biases
}

// RequiredGenomeLength returns the genome length a network with the given
// topology needs: in*hidden + hidden + hidden*out + out.
func RequiredGenomeLength(in, hidden, out int) int {
	return in*hidden + hidden + hidden*out + out
}

// NewNetwork creates a zero-weighted network with fixed topology.
func NewNetwork(in, hidden, out int) *Network {
	return &Network{
		in:     in,
		hidden: hidden,
		out:    out,
		w1:     make([]float64, in*hidden),
		b1:     make([]float64, hidden),
		w2:     make([]float64, hidden*out),
		b2:     make([]float64, out),
	}
}

// Dims returns the network topology.
func (n *Network) Dims() (in, hidden, out int) {
	return n.in, n.hidden, n.out
}

// LoadFromGenome populates weights and biases from the genome using the
// fixed flattening order: input->hidden weights row-major, hidden biases,
// hidden->output weights row-major, output biases. A genome whose length
// does not equal RequiredGenomeLength fails with ErrDimensionMismatch;
// weights are never truncated or padded.
func (n *Network) LoadFromGenome(g *Genome) error {
	want := RequiredGenomeLength(n.in, n.hidden, n.out)
	if g.Len() != want {
		return fmt.Errorf("%w: genome has %d genes, %dx%dx%d network needs %d",
			ErrDimensionMismatch, g.Len(), n.in, n.hidden, n.out, want)
	}

	p := 0
	p += copy(n.w1, g.Genes[p:p+len(n.w1)])
	p += copy(n.b1, g.Genes[p:p+len(n.b1)])
	p += copy(n.w2, g.Genes[p:p+len(n.w2)])
	copy(n.b2, g.Genes[p:p+len(n.b2)])
	return nil
}

// Evaluate runs the forward pass and returns one score per output. The
// result depends only on the inputs and the loaded weights; identical
// inputs always yield identical outputs. len(inputs) must equal the input
// count.
func (n *Network) Evaluate(inputs []float64) []float64 {
	hidden := make([]float64, n.hidden)
	for j := 0; j < n.hidden; j++ {
		sum := n.b1[j]
		for i := 0; i < n.in; i++ {
			sum += inputs[i] * n.w1[i*n.hidden+j]
		}
		hidden[j] = math.Tanh(sum)
	}

	outputs := make([]float64, n.out)
	for k := 0; k < n.out; k++ {
		sum := n.b2[k]
		for j := 0; j < n.hidden; j++ {
			sum += hidden[j] * n.w2[j*n.out+k]
		}
		outputs[k] = math.Tanh(sum)
	}
	return outputs
}
