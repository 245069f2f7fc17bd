package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Hittable is anything a ray can be intersected with: a single primitive, a
// flat list or a BVH. A hit is only reported for t strictly inside interval.
type Hittable interface {
	Hit(ray core.Ray, interval core.Interval) (core.HitRecord, bool)
	BoundingBox() core.AABB
}
