package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// List is a flat collection of primitives tested one by one. It is the
// reference the BVH must agree with and is fine for very small scenes.
type List []Primitive

// Hit returns the closest intersection among all primitives
func (l List) Hit(ray core.Ray, interval core.Interval) (core.HitRecord, bool) {
	var closest core.HitRecord
	hitAnything := false
	for _, p := range l {
		if hit, ok := p.Hit(ray, interval); ok {
			hitAnything = true
			interval.Max = hit.T
			closest = hit
		}
	}
	return closest, hitAnything
}

// BoundingBox returns the union of all primitive boxes
func (l List) BoundingBox() core.AABB {
	box := core.EmptyAABB
	for _, p := range l {
		box = box.Union(p.BoundingBox())
	}
	return box
}
