package engine

import (
	"github.com/loadwise/trailerpack/internal/apperrors"
)

// BoundsTolerance absorbs floating point rounding from rotation and unit
// conversion when checking the trailer bounds.
const BoundsTolerance = 0.001

// CheckNoOverlap verifies that no two placements share 3D volume. Overlap
// is strict interval overlap on all three axes; touching faces are fine.
// A failure is a defect in the packer, not an input problem.
func CheckNoOverlap(placed []PlacedBox) error {
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			xOverlap := a.X < b.X+b.Length && b.X < a.X+a.Length
			yOverlap := a.Y < b.Y+b.Width && b.Y < a.Y+a.Width
			zOverlap := a.Z < b.Z+b.Height && b.Z < a.Z+a.Height
			if xOverlap && yOverlap && zOverlap {
				return apperrors.Newf(apperrors.TypeInternal,
					"overlapping placements: %s at (%g,%g,%g) and %s at (%g,%g,%g)",
					a.SKU, a.X, a.Y, a.Z, b.SKU, b.X, b.Y, b.Z)
			}
		}
	}
	return nil
}

// CheckWithinBounds verifies that every placement lies inside the trailer:
// non-negative origin, and origin plus extent within the trailer extent
// plus BoundsTolerance on each axis.
func CheckWithinBounds(placed []PlacedBox, trailerLength, trailerWidth, trailerHeight float64) error {
	for _, p := range placed {
		if p.X < 0 || p.Y < 0 || p.Z < 0 {
			return apperrors.Newf(apperrors.TypeInternal,
				"placement %s has negative origin (%g,%g,%g)", p.SKU, p.X, p.Y, p.Z)
		}
		if p.X+p.Length > trailerLength+BoundsTolerance ||
			p.Y+p.Width > trailerWidth+BoundsTolerance ||
			p.Z+p.Height > trailerHeight+BoundsTolerance {
			return apperrors.Newf(apperrors.TypeInternal,
				"placement %s at (%g,%g,%g) size %gx%gx%g exceeds trailer %gx%gx%g",
				p.SKU, p.X, p.Y, p.Z, p.Length, p.Width, p.Height,
				trailerLength, trailerWidth, trailerHeight)
		}
	}
	return nil
}
