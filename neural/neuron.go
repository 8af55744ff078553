// Package neural provides the genetically wired signal-routing brains of cells.
package neural

import "fmt"

// NeuronID indexes a slot in a cell's activation vector.
type NeuronID uint8

// Neuron slots. The set is identical for every cell.
const (
	InputBias NeuronID = iota
	InputPosX
	InputPosY
	InputTime

	OutputMoveX
	OutputMoveY

	InternalA

	NumNeurons = iota
)

// Activations is a cell's neuron vector. Values are clamped to [-1, 1]
// after every propagation.
type Activations [NumNeurons]float32

// String returns the slot's identifier, e.g. "move_x".
func (n NeuronID) String() string {
	if int(n) < NumNeurons {
		return NeuronDescriptors()[n].ID
	}
	return fmt.Sprintf("neuron(%d)", uint8(n))
}

// IsInput reports whether the slot is overwritten by input injection.
func (n NeuronID) IsInput() bool {
	return n <= InputTime
}

// IsOutput reports whether the slot drives movement.
func (n NeuronID) IsOutput() bool {
	return n == OutputMoveX || n == OutputMoveY
}

// Clamp saturates every activation to [-1, 1]. Values exactly at a bound are kept.
func (a *Activations) Clamp() {
	for i, v := range a {
		if v > 1 {
			a[i] = 1
		} else if v < -1 {
			a[i] = -1
		}
	}
}

// Normalize maps v in [0, n) to [-1, 1) the way position and time inputs are encoded.
func Normalize(v, n int) float32 {
	return (float32(v)/float32(n) - 0.5) * 2
}
