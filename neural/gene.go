package neural

import (
	"fmt"
	"math/rand"
)

// MaxWeightCode is the largest weight code; it decodes to +amplitude.
const MaxWeightCode = 0xffff

// Gene is one wiring instruction: add Src activation times the decoded
// Weight into Dst. Src and Dst are always read modulo NumNeurons, so every
// bit pattern is a valid gene.
type Gene struct {
	Src    uint8
	Dst    uint8
	Weight uint16
}

// Genome is a fixed-size ordered list of genes. Genes are applied in order.
type Genome []Gene

// Source returns the decoded source slot.
func (g Gene) Source() NeuronID {
	return NeuronID(int(g.Src) % NumNeurons)
}

// Dest returns the decoded destination slot.
func (g Gene) Dest() NeuronID {
	return NeuronID(int(g.Dst) % NumNeurons)
}

// Decode returns the gene's source, destination and weight in [-amplitude, amplitude].
func (g Gene) Decode(amplitude float32) (src, dst NeuronID, weight float32) {
	return g.Source(), g.Dest(), DecodeWeight(g.Weight, amplitude)
}

// String formats the gene the way the inspector prints it.
func (g Gene) String() string {
	return fmt.Sprintf("%02d -> %02d %#04x", g.Source(), g.Dest(), g.Weight)
}

// DecodeWeight maps a weight code linearly from [0, 65535] to [-amplitude, amplitude].
func DecodeWeight(code uint16, amplitude float32) float32 {
	return (float32(code)/float32(MaxWeightCode) - 0.5) * 2 * amplitude
}

// RandomGene draws source and destination uniformly over the neuron set and
// the weight code uniformly over its full range.
func RandomGene(rng *rand.Rand) Gene {
	return Gene{
		Src:    uint8(rng.Intn(NumNeurons)),
		Dst:    uint8(rng.Intn(NumNeurons)),
		Weight: uint16(rng.Intn(MaxWeightCode + 1)),
	}
}

// RandomGenome creates a genome of size random genes.
func RandomGenome(rng *rand.Rand, size int) Genome {
	g := make(Genome, size)
	for i := range g {
		g[i] = RandomGene(rng)
	}
	return g
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// Equal reports whether two genomes hold the same genes in the same order.
func (g Genome) Equal(other Genome) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// Propagate accumulates one step of signal flow: for every gene, in order,
// in[src] * weight is added to out[dst]. out is not cleared or clamped.
func (g Genome) Propagate(in *Activations, out *Activations, amplitude float32) {
	for _, gene := range g {
		src, dst, w := gene.Decode(amplitude)
		out[dst] += in[src] * w
	}
}

// Hue folds the genome into one byte used to color the cell: the XOR of every
// source, destination and high weight byte. Related genomes share a hue.
func (g Genome) Hue() uint8 {
	var hue uint8
	for _, gene := range g {
		hue ^= gene.Src
		hue ^= gene.Dst
		hue ^= uint8(gene.Weight >> 8)
	}
	return hue
}
