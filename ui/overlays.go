package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a toggleable panel.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayStandings OverlayID = "standings"
	OverlayEvents    OverlayID = "events"
	OverlayControls  OverlayID = "controls"
	OverlayHitboxes  OverlayID = "hitboxes"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID // Unique identifier
	Name     string    // Display name
	Key      int32     // Keyboard key to toggle (0 = no key)
	KeyLabel string    // Key label for display
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
// Standings, events and controls start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}

	reg.Register(OverlayDescriptor{ID: OverlayStandings, Name: "Standings", Key: rl.KeyL, KeyLabel: "L"})
	reg.Register(OverlayDescriptor{ID: OverlayEvents, Name: "Events", Key: rl.KeyE, KeyLabel: "E"})
	reg.Register(OverlayDescriptor{ID: OverlayControls, Name: "Controls", Key: rl.KeyC, KeyLabel: "C"})
	reg.Register(OverlayDescriptor{ID: OverlayHitboxes, Name: "Hitboxes", Key: rl.KeyB, KeyLabel: "B"})

	reg.enabled[OverlayStandings] = true
	reg.enabled[OverlayEvents] = true
	reg.enabled[OverlayControls] = true
	return reg
}

// Register adds an overlay to the registry, disabled.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
