package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayZones    OverlayID = "zones"
	OverlayGrid     OverlayID = "grid"
	OverlayMovers   OverlayID = "movers"
	OverlayActivity OverlayID = "activity"
	OverlayStats    OverlayID = "stats"
	OverlayPerf     OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "Z", "G")
	Category    string      // Grouping: "field", "cells" or "panels"
	Default     bool        // Enabled at startup
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayZones,
		Name:        "Zones",
		Description: "Shade food and the current poison region",
		Key:         rl.KeyZ,
		KeyLabel:    "Z",
		Category:    "field",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "Draw cell boundaries when zoomed in",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "field",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayMovers,
		Name:        "Movers",
		Description: "Dim cells whose genes cannot reach a move output",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "cells",
		Exclusive:   []OverlayID{OverlayActivity},
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayActivity,
		Name:        "Activity",
		Description: "Color cells by their move X output",
		Key:         rl.KeyA,
		KeyLabel:    "A",
		Category:    "cells",
		Exclusive:   []OverlayID{OverlayMovers},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayStats,
		Name:        "Generation Stats",
		Description: "Last recorded generation statistics",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Category:    "panels",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Update and phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key was pressed this frame.
// It returns the toggled IDs and their new states.
func (r *OverlayRegistry) HandleKeys() map[OverlayID]bool {
	var changed map[OverlayID]bool
	for _, desc := range r.descriptors {
		if desc.Key == 0 || !rl.IsKeyPressed(desc.Key) {
			continue
		}
		if changed == nil {
			changed = make(map[OverlayID]bool)
		}
		changed[desc.ID] = r.Toggle(desc.ID)
	}
	return changed
}
