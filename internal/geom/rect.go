package geom

// Rect is an axis-aligned rectangle in the X/Y plane.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// CenteredRect builds the rectangle of size w×h centered on (cx, cy).
func CenteredRect(cx, cy, w, h float64) Rect {
	hw, hh := w*0.5, h*0.5
	return Rect{
		MinX: cx - hw,
		MaxX: cx + hw,
		MinY: cy - hh,
		MaxY: cy + hh,
	}
}

// ContainsStrict reports whether (x, y) lies inside r. Points on an edge are outside.
func (r Rect) ContainsStrict(x, y float64) bool {
	return x > r.MinX && x < r.MaxX && y > r.MinY && y < r.MaxY
}
