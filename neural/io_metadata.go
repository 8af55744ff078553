package neural

// IODescriptor describes a neuron slot for UI display.
type IODescriptor struct {
	ID          string  // Unique identifier
	Label       string  // Display name
	Description string  // Tooltip/extended description
	Min         float32 // Minimum value
	Max         float32 // Maximum value
	IsCentered  bool    // True for centered bar display (e.g., -1 to +1)
	Group       string  // Logical grouping: "input", "output" or "internal"
}

// NeuronDescriptors returns metadata for every neuron slot.
// Order matches the NeuronID values.
func NeuronDescriptors() []IODescriptor {
	return []IODescriptor{
		{ID: "bias", Label: "Bias", Description: "Constant input (always 1.0)", Min: 0, Max: 1, Group: "input"},
		{ID: "pos_x", Label: "Pos X", Description: "Column normalized to [-1, 1)", Min: -1, Max: 1, IsCentered: true, Group: "input"},
		{ID: "pos_y", Label: "Pos Y", Description: "Row normalized to [-1, 1)", Min: -1, Max: 1, IsCentered: true, Group: "input"},
		{ID: "time", Label: "Time", Description: "Step within generation normalized to [-1, 1)", Min: -1, Max: 1, IsCentered: true, Group: "input"},
		{ID: "move_x", Label: "Move X", Description: "Moves one column when exactly +1 or -1", Min: -1, Max: 1, IsCentered: true, Group: "output"},
		{ID: "move_y", Label: "Move Y", Description: "Moves one row when exactly +1 or -1", Min: -1, Max: 1, IsCentered: true, Group: "output"},
		{ID: "internal_a", Label: "Int A", Description: "Hidden unit", Min: -1, Max: 1, IsCentered: true, Group: "internal"},
	}
}

// InputNeurons lists the slots written by input injection.
func InputNeurons() []NeuronID {
	return []NeuronID{InputBias, InputPosX, InputPosY, InputTime}
}

// OutputNeurons lists the slots read by movement resolution.
func OutputNeurons() []NeuronID {
	return []NeuronID{OutputMoveX, OutputMoveY}
}
