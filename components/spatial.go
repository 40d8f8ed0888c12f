package components

// Position represents a pilot's arena position, synced from its agent after
// every tick.
type Position struct {
	X, Y float32
}

// Rotation holds a pilot's heading in degrees (0 = nose up).
type Rotation struct {
	Deg float32
}
