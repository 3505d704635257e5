package engine

import "math"

// maxRectsBSSF is a MaxRects packer with the Best Short Side Fit heuristic.
// It maintains the set of free rectangles for one floor: each placement
// splits every intersecting free rect into up to four residual strips, then
// free rects contained by another are pruned.
type maxRectsBSSF struct {
	binWidth  float64
	binHeight float64
	freeRects []rect
	usedRects []rect
}

func newMaxRectsBSSF(width, height float64) *maxRectsBSSF {
	return &maxRectsBSSF{
		binWidth:  width,
		binHeight: height,
		freeRects: []rect{{0, 0, width, height}},
	}
}

// insert tries to place a width x height rectangle, optionally rotated 90
// degrees. For every free rect and allowed orientation that fits, the
// candidate is scored by its smaller leftover side, ties broken by the
// larger one. Candidate order follows the free list, so the outcome is
// deterministic for a given insertion history. Returns the placed rect and
// whether it was rotated; ok is false when nothing fits.
func (p *maxRectsBSSF) insert(width, height float64, allowRotation bool) (placed rect, rotated, ok bool) {
	bestShort := math.Inf(1)
	bestLong := math.Inf(1)

	for _, free := range p.freeRects {
		if width <= free.w && height <= free.h {
			leftoverX := math.Abs(free.w - width)
			leftoverY := math.Abs(free.h - height)
			shortSide := math.Min(leftoverX, leftoverY)
			longSide := math.Max(leftoverX, leftoverY)

			if shortSide < bestShort || (shortSide == bestShort && longSide < bestLong) {
				placed = rect{free.x, free.y, width, height}
				bestShort = shortSide
				bestLong = longSide
				rotated = false
				ok = true
			}
		}

		if allowRotation && height <= free.w && width <= free.h {
			leftoverX := math.Abs(free.w - height)
			leftoverY := math.Abs(free.h - width)
			shortSide := math.Min(leftoverX, leftoverY)
			longSide := math.Max(leftoverX, leftoverY)

			if shortSide < bestShort || (shortSide == bestShort && longSide < bestLong) {
				placed = rect{free.x, free.y, height, width}
				bestShort = shortSide
				bestLong = longSide
				rotated = true
				ok = true
			}
		}
	}

	if !ok {
		return rect{}, false, false
	}

	p.placeRect(placed)
	return placed, rotated, true
}

// placeRect records used as occupied and rebuilds the free list. Free rects
// untouched by used are kept as-is; intersecting ones are replaced by their
// residual right, left, top and bottom strips (only those with positive
// extent).
func (p *maxRectsBSSF) placeRect(used rect) {
	p.usedRects = append(p.usedRects, used)

	newFree := make([]rect, 0, len(p.freeRects))
	for _, free := range p.freeRects {
		if !used.intersects(free) {
			newFree = append(newFree, free)
			continue
		}

		// Right strip
		if used.x+used.w < free.x+free.w {
			newFree = append(newFree, rect{
				x: used.x + used.w,
				y: free.y,
				w: free.x + free.w - used.x - used.w,
				h: free.h,
			})
		}
		// Left strip
		if used.x > free.x {
			newFree = append(newFree, rect{
				x: free.x,
				y: free.y,
				w: used.x - free.x,
				h: free.h,
			})
		}
		// Top strip
		if used.y+used.h < free.y+free.h {
			newFree = append(newFree, rect{
				x: free.x,
				y: used.y + used.h,
				w: free.w,
				h: free.y + free.h - used.y - used.h,
			})
		}
		// Bottom strip
		if used.y > free.y {
			newFree = append(newFree, rect{
				x: free.x,
				y: free.y,
				w: free.w,
				h: used.y - free.y,
			})
		}
	}

	p.freeRects = newFree
	p.pruneFreeRects()
}

// pruneFreeRects drops every free rect fully contained by another, keeping
// the free set minimal.
func (p *maxRectsBSSF) pruneFreeRects() {
	pruned := make([]rect, 0, len(p.freeRects))
	for i, a := range p.freeRects {
		contained := false
		for j, b := range p.freeRects {
			if i != j && b.contains(a) {
				contained = true
				break
			}
		}
		if !contained {
			pruned = append(pruned, a)
		}
	}
	p.freeRects = pruned
}
