package physics

// Body is a kinematic body. Pos is the center. A body is either a circle
// (R > 0) or an axis-aligned rectangle (W and H set). Velocities are in
// pixels per tick.
type Body struct {
	Pos Vec2
	Vel Vec2
	W   float64
	H   float64
	R   float64
}

// NewCircle returns a circular body centered at (x, y).
func NewCircle(x, y, r float64) Body {
	return Body{Pos: Vec2{X: x, Y: y}, R: r}
}

// NewBox returns a rectangular body centered at (x, y).
func NewBox(x, y, w, h float64) Body {
	return Body{Pos: Vec2{X: x, Y: y}, W: w, H: h}
}

// Step advances the body by one tick.
func (b *Body) Step() {
	b.Pos = b.Pos.Add(b.Vel)
}

// HitsRect reports whether the circle b overlaps the rectangle rect,
// using the closest point on the rectangle to the circle center.
func (b *Body) HitsRect(rect *Body) bool {
	cx := Clamp(b.Pos.X, rect.Pos.X-rect.W/2, rect.Pos.X+rect.W/2)
	cy := Clamp(b.Pos.Y, rect.Pos.Y-rect.H/2, rect.Pos.Y+rect.H/2)
	dx := b.Pos.X - cx
	dy := b.Pos.Y - cy
	return dx*dx+dy*dy <= b.R*b.R
}
