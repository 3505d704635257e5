package engine

// rect is an axis-aligned rectangle within one floor's footprint.
type rect struct {
	x, y, w, h float64
}

func (r rect) area() float64 {
	return r.w * r.h
}

// contains reports whether other lies entirely within r, edges included.
func (r rect) contains(other rect) bool {
	return other.x >= r.x &&
		other.y >= r.y &&
		other.x+other.w <= r.x+r.w &&
		other.y+other.h <= r.y+r.h
}

// intersects reports whether the open interiors of r and other overlap.
// Touching edges do not count as an intersection.
func (r rect) intersects(other rect) bool {
	return !(other.x >= r.x+r.w ||
		other.x+other.w <= r.x ||
		other.y >= r.y+r.h ||
		other.y+other.h <= r.y)
}
