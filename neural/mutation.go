package neural

// BitSource supplies the random draws for mutation. *rand.Rand satisfies it;
// tests substitute deterministic streams.
type BitSource interface {
	Intn(n int) int
}

// Mutate flips each of the 8 Src bits, 8 Dst bits and 16 Weight bits
// independently with probability 1/rarity (a draw of Intn(rarity) == 0).
// Src and Dst are reduced modulo NumNeurons after each flip, so a flip can
// wrap but never leave the neuron range. Returns the new gene and the number
// of bits flipped. g itself is not modified.
func Mutate(g Gene, bits BitSource, rarity int) (Gene, int) {
	flips := 0
	for i := 0; i < 8; i++ {
		if bits.Intn(rarity) == 0 {
			g.Src ^= 1 << i
			g.Src %= NumNeurons
			flips++
		}
	}
	for i := 0; i < 8; i++ {
		if bits.Intn(rarity) == 0 {
			g.Dst ^= 1 << i
			g.Dst %= NumNeurons
			flips++
		}
	}
	for i := 0; i < 16; i++ {
		if bits.Intn(rarity) == 0 {
			g.Weight ^= 1 << i
			flips++
		}
	}
	return g, flips
}

// MutateGenome applies Mutate to every gene of g in place and returns the
// total number of flipped bits.
func MutateGenome(g Genome, bits BitSource, rarity int) int {
	total := 0
	for i := range g {
		var flips int
		g[i], flips = Mutate(g[i], bits, rarity)
		total += flips
	}
	return total
}
