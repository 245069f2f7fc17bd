package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// EmptyAABB is the identity element of Union
var EmptyAABB = AABB{
	Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
	Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB
	for _, p := range points {
		box = box.Union(AABB{Min: p, Max: p})
	}
	return box
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if min <= max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && other.Max.X <= aabb.Max.X &&
		aabb.Min.Y <= other.Min.Y && other.Max.Y <= aabb.Max.Y &&
		aabb.Min.Z <= other.Min.Z && other.Max.Z <= aabb.Max.Z
}

// RayInverse caches the per-ray data used by the slab test: the origin, the
// reciprocal direction and, per axis, which box corner is the near one.
// A zero direction component yields a signed infinity.
type RayInverse struct {
	Origin [3]float64
	Inv    [3]float64
	Sign   [3]int
}

// NewRayInverse precomputes the slab test data for a ray
func NewRayInverse(ray Ray) RayInverse {
	q := RayInverse{
		Origin: [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z},
		Inv:    [3]float64{1 / ray.Direction.X, 1 / ray.Direction.Y, 1 / ray.Direction.Z},
	}
	for axis := 0; axis < 3; axis++ {
		// Signbit treats -0 as negative so 1/-0 = -Inf selects the max corner first.
		if math.Signbit(q.Inv[axis]) {
			q.Sign[axis] = 1
		}
	}
	return q
}

// Hit tests if a ray intersects the box within the interval
func (aabb AABB) Hit(ray Ray, interval Interval) bool {
	q := NewRayInverse(ray)
	return aabb.HitInverse(&q, interval)
}

// HitInverse is the slab test against precomputed ray data.
// The near/far corner is picked by indexing with the direction sign instead
// of swapping, and the interval is narrowed with min/max selects only.
func (aabb AABB) HitInverse(q *RayInverse, interval Interval) bool {
	corners := [2]Vec3{aabb.Min, aabb.Max}
	tMin, tMax := interval.Min, interval.Max

	tMin = maxIgnoringNaN((corners[q.Sign[0]].X-q.Origin[0])*q.Inv[0], tMin)
	tMax = minIgnoringNaN((corners[1-q.Sign[0]].X-q.Origin[0])*q.Inv[0], tMax)

	tMin = maxIgnoringNaN((corners[q.Sign[1]].Y-q.Origin[1])*q.Inv[1], tMin)
	tMax = minIgnoringNaN((corners[1-q.Sign[1]].Y-q.Origin[1])*q.Inv[1], tMax)

	tMin = maxIgnoringNaN((corners[q.Sign[2]].Z-q.Origin[2])*q.Inv[2], tMin)
	tMax = minIgnoringNaN((corners[1-q.Sign[2]].Z-q.Origin[2])*q.Inv[2], tMax)

	return tMin < tMax
}

// maxIgnoringNaN returns the larger of candidate and current. A NaN candidate
// (0 * Inf, a ray parallel to and lying on a slab plane) leaves current as is,
// so the ray counts as inside that slab. The builtin max would propagate the NaN.
func maxIgnoringNaN(candidate, current float64) float64 {
	if candidate > current {
		return candidate
	}
	return current
}

// minIgnoringNaN is the min counterpart of maxIgnoringNaN
func minIgnoringNaN(candidate, current float64) float64 {
	if candidate < current {
		return candidate
	}
	return current
}
