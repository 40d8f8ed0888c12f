package components

// Body holds the half extents of a pilot's collision box.
type Body struct {
	HalfW float32
	HalfH float32
}
