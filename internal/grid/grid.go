// Package grid holds the value types describing grid-aligned displacement
// and location used by timeline events and the playback dispatcher.
package grid

import "fmt"

// Vector is a pure value type: a signed displacement on the grid. It carries
// no identity and is the shape stored inside timeline events (movement
// deltas, ability target positions).
type Vector struct {
	X int32
	Y int32
}

// Zero is the null displacement.
var Zero = Vector{}

// Add returns the component-wise sum of v and other.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Location is the entity-attached variant: the current grid position held by
// a character or ghost. It is a distinct type from Vector so that "a delta"
// and "a place" are never confused at a call site; Position and FromVector
// provide the explicit conversion the spec requires.
type Location struct {
	X int32
	Y int32
}

// Position converts a Location to the pure value type.
func (l Location) Position() Vector {
	return Vector{X: l.X, Y: l.Y}
}

// FromVector builds a Location from a pure value, taking no ownership of v.
func FromVector(v Vector) Location {
	return Location{X: v.X, Y: v.Y}
}

// Translate returns the Location obtained by applying delta.
func (l Location) Translate(delta Vector) Location {
	return Location{X: l.X + delta.X, Y: l.Y + delta.Y}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}
