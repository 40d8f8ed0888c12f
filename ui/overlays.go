package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayLeaderSensors    OverlayID = "leader_sensors"
	OverlayAllSensors       OverlayID = "all_sensors"
	OverlayTargetLine       OverlayID = "target_line"
	OverlayCollisionBoxes   OverlayID = "collision_boxes"
	OverlayCheckpointLabels OverlayID = "checkpoint_labels"
	OverlayDeadPilots       OverlayID = "dead_pilots"
	OverlayInspector        OverlayID = "inspector"
	OverlayBrain            OverlayID = "brain"
	OverlayPerf             OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Category    string      // Grouping (e.g., "visual", "debug", "ai")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// defaultOverlays lists the built-in overlays in display order, grouped by
// category.
var defaultOverlays = []OverlayDescriptor{
	{OverlayLeaderSensors, "Leader Sensors", "Sensor rays of the leading pilot", rl.KeyS, "S", "sensors", []OverlayID{OverlayAllSensors}},
	{OverlayAllSensors, "All Sensors", "Sensor rays of every pilot still flying", rl.KeyA, "A", "sensors", []OverlayID{OverlayLeaderSensors}},
	{OverlayTargetLine, "Heading Target", "Line from the leader to the point it steers for", rl.KeyT, "T", "sensors", nil},

	{OverlayCheckpointLabels, "Checkpoint Order", "Number checkpoints in flight order", rl.KeyN, "N", "course", nil},
	{OverlayDeadPilots, "Wrecks", "Keep drawing pilots that crashed this generation", rl.KeyW, "W", "course", nil},

	{OverlayCollisionBoxes, "Collision Boxes", "Pilot bounding boxes", rl.KeyB, "B", "debug", nil},
	{OverlayInspector, "Inspector", "Brain inputs and outputs of the selected pilot", rl.KeyI, "I", "debug", nil},
	{OverlayBrain, "Brain", "The focused pilot's network with live activations", rl.KeyD, "D", "debug", nil},
	{OverlayPerf, "Performance", "Per-phase step timings", rl.KeyF, "F", "debug", nil},
}

// OverlayRegistry tracks which overlays are on. Descriptors keep their
// registration order for display.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	index       map[OverlayID]int
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry holding the built-in overlays, all
// switched off.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		index:   make(map[OverlayID]int, len(defaultOverlays)),
		enabled: make(map[OverlayID]bool, len(defaultOverlays)),
	}
	for _, desc := range defaultOverlays {
		reg.Register(desc)
	}
	return reg
}

// Register adds an overlay, replacing any earlier one with the same ID.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.descriptors[i] = desc
	} else {
		r.index[desc.ID] = len(r.descriptors)
		r.descriptors = append(r.descriptors, desc)
	}
	r.enabled[desc.ID] = false
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.index[id]; !ok {
		return false
	}
	on := !r.enabled[id]
	r.SetEnabled(id, on)
	return on
}

// SetEnabled sets an overlay's state. Turning one on switches off the
// overlays it excludes.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if !enabled {
		return
	}
	for _, excl := range r.descriptors[i].Exclusive {
		r.enabled[excl] = false
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return OverlayDescriptor{}, false
	}
	return r.descriptors[i], true
}

// All returns every overlay in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns the overlays of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns the distinct categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, desc := range r.descriptors {
		if !slices.Contains(cats, desc.Category) {
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key, if any.
// Returns the overlay ID, its new state and whether a toggle happened.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	i := slices.IndexFunc(r.descriptors, func(d OverlayDescriptor) bool { return d.Key == key })
	if i < 0 {
		return "", false, false
	}
	id := r.descriptors[i].ID
	return id, r.Toggle(id), true
}

// EnabledOverlays returns the IDs of the overlays that are on, in
// registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
