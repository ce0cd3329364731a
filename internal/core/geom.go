// Package core provides fundamental types and utilities shared by the game
// simulation and its frontends. It has no terminal or windowing dependencies
// so game logic stays pure and testable.
package core

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in field pixels.
// Field coordinates grow right and down; Y may be negative above the field.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Y }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Overlaps reports whether two boxes share interior area.
// Touching edges do not count as overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left() < o.Right() && b.Right() > o.Left() &&
		b.Top() < o.Bottom() && b.Bottom() > o.Top()
}

// OverlapsX reports whether the horizontal spans of two boxes overlap.
func (b Box) OverlapsX(o Box) bool {
	return b.Left() < o.Right() && b.Right() > o.Left()
}

// Inset shrinks the box by dx on the left and right and dy on the top and bottom.
// Negative values grow it. The size never goes below zero.
func (b Box) Inset(dx, dy float64) Box {
	out := Box{X: b.X + dx, Y: b.Y + dy, W: b.W - 2*dx, H: b.H - 2*dy}
	if out.W < 0 {
		out.X += out.W / 2
		out.W = 0
	}
	if out.H < 0 {
		out.Y += out.H / 2
		out.H = 0
	}
	return out
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, W: b.W, H: b.H}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
