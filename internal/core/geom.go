// Package core holds the platform-neutral types shared by games and front
// ends: actions, the screen buffer and runtime configuration. It has no
// terminal dependencies.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w x h rectangle centered inside r. It is clamped to the
// top-left corner when it does not fit.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + max(0, (r.W-w)/2), Y: r.Y + max(0, (r.H-h)/2), W: w, H: h}
}
