package neural

import (
	"math/rand"
	"testing"
)

const testAmplitude = 4.0

func TestDecodeWeightBounds(t *testing.T) {
	if got := DecodeWeight(0x0000, testAmplitude); got != -testAmplitude {
		t.Errorf("DecodeWeight(0x0000) = %v, want %v", got, -testAmplitude)
	}
	if got := DecodeWeight(0xffff, testAmplitude); got != testAmplitude {
		t.Errorf("DecodeWeight(0xffff) = %v, want %v", got, testAmplitude)
	}
}

func TestDecodeWeightInterior(t *testing.T) {
	// Every code other than the two bounds lies strictly inside (-A, A).
	for code := 1; code < MaxWeightCode; code++ {
		w := DecodeWeight(uint16(code), testAmplitude)
		if w <= -testAmplitude || w >= testAmplitude {
			t.Fatalf("DecodeWeight(%#04x) = %v, outside (-%v, %v)", code, w, testAmplitude, testAmplitude)
		}
	}
}

func TestDecodeWeightMonotonic(t *testing.T) {
	prev := DecodeWeight(0, testAmplitude)
	for code := 1; code <= MaxWeightCode; code++ {
		w := DecodeWeight(uint16(code), testAmplitude)
		if w < prev {
			t.Fatalf("DecodeWeight not monotonic at %#04x: %v < %v", code, w, prev)
		}
		prev = w
	}
}

func TestGeneDecodeWrapsIndices(t *testing.T) {
	tests := []struct {
		name     string
		gene     Gene
		wantSrc  NeuronID
		wantDest NeuronID
	}{
		{"in range", Gene{Src: 0, Dst: 4}, InputBias, OutputMoveX},
		{"exact count", Gene{Src: NumNeurons, Dst: NumNeurons + 5}, InputBias, OutputMoveY},
		{"max byte", Gene{Src: 0xff, Dst: 0xfe}, NeuronID(0xff % NumNeurons), NeuronID(0xfe % NumNeurons)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst, _ := tt.gene.Decode(testAmplitude)
			if src != tt.wantSrc || dst != tt.wantDest {
				t.Errorf("Decode() = (%d, %d), want (%d, %d)", src, dst, tt.wantSrc, tt.wantDest)
			}
			if int(src) >= NumNeurons || int(dst) >= NumNeurons {
				t.Errorf("decoded index out of range: %d, %d", src, dst)
			}
		})
	}
}

func TestRandomGenome(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := RandomGenome(rng, 12)

	if len(g) != 12 {
		t.Fatalf("len = %d, want 12", len(g))
	}
	for i, gene := range g {
		if int(gene.Src) >= NumNeurons || int(gene.Dst) >= NumNeurons {
			t.Errorf("gene %d has raw index outside neuron range: %+v", i, gene)
		}
	}
}

func TestRandomGenomeDeterministic(t *testing.T) {
	a := RandomGenome(rand.New(rand.NewSource(7)), 8)
	b := RandomGenome(rand.New(rand.NewSource(7)), 8)
	if !a.Equal(b) {
		t.Error("same seed produced different genomes")
	}
}

func TestGenomeClone(t *testing.T) {
	g := Genome{{Src: 1, Dst: 2, Weight: 3}}
	c := g.Clone()
	c[0].Weight = 99

	if g[0].Weight != 3 {
		t.Error("Clone shares backing storage with the original")
	}
	if Genome(nil).Clone() != nil {
		t.Error("Clone of nil genome should be nil")
	}
}

func TestPropagateSums(t *testing.T) {
	// Two genes into the same destination accumulate rather than overwrite.
	g := Genome{
		{Src: uint8(InputBias), Dst: uint8(InternalA), Weight: 0xffff},
		{Src: uint8(InputBias), Dst: uint8(InternalA), Weight: 0x0000},
		{Src: uint8(InputBias), Dst: uint8(OutputMoveY), Weight: 0xffff},
		{Src: uint8(InputBias), Dst: uint8(OutputMoveY), Weight: 0xffff},
	}

	var in, out Activations
	in[InputBias] = 1
	g.Propagate(&in, &out, testAmplitude)

	if out[InternalA] != 0 {
		t.Errorf("internal = %v, want 0 (+A and -A cancel)", out[InternalA])
	}
	if out[OutputMoveY] != 2*testAmplitude {
		t.Errorf("move_y = %v, want %v before clamping", out[OutputMoveY], 2*testAmplitude)
	}
}

func TestClamp(t *testing.T) {
	a := Activations{-3, -1, -0.5, 0, 0.5, 1, 3}
	a.Clamp()

	want := Activations{-1, -1, -0.5, 0, 0.5, 1, 1}
	if a != want {
		t.Errorf("Clamp() = %v, want %v", a, want)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(0, 128); got != -1 {
		t.Errorf("Normalize(0, 128) = %v, want -1", got)
	}
	if got := Normalize(64, 128); got != 0 {
		t.Errorf("Normalize(64, 128) = %v, want 0", got)
	}
	if got := Normalize(127, 128); got >= 1 {
		t.Errorf("Normalize(127, 128) = %v, want < 1", got)
	}
}

func TestHue(t *testing.T) {
	g := Genome{
		{Src: 0x01, Dst: 0x02, Weight: 0x0400},
		{Src: 0x10, Dst: 0x00, Weight: 0x2000},
	}
	want := uint8(0x01 ^ 0x02 ^ 0x04 ^ 0x10 ^ 0x20)
	if got := g.Hue(); got != want {
		t.Errorf("Hue() = %#02x, want %#02x", got, want)
	}
}

func TestNeuronDescriptorsMatchSlots(t *testing.T) {
	descs := NeuronDescriptors()
	if len(descs) != NumNeurons {
		t.Fatalf("got %d descriptors, want %d", len(descs), NumNeurons)
	}
	if OutputMoveX.String() != "move_x" {
		t.Errorf("OutputMoveX.String() = %q", OutputMoveX.String())
	}
	for _, n := range InputNeurons() {
		if !n.IsInput() || n.IsOutput() {
			t.Errorf("%s misclassified", n)
		}
	}
	for _, n := range OutputNeurons() {
		if !n.IsOutput() || n.IsInput() {
			t.Errorf("%s misclassified", n)
		}
	}
}
