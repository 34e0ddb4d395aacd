// Package graphics provides the geometry value types shared by the render
// surface and the painter backend.
package graphics

// Offset is a 2D translation in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Size is a 2D extent in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle positioned by its top-left corner.
type Rect struct {
	Origin Offset
	Size   Size
}

// RectFrom builds a rectangle from an origin and a size.
func RectFrom(origin Offset, size Size) Rect {
	return Rect{Origin: origin, Size: size}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}
