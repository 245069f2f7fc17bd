package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShapeKind tags the geometry stored in a Primitive
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota
)

// Primitive is a renderable shape bound to a material from the scene's
// material arena. The set of shapes is closed; dispatch is a switch on Kind.
type Primitive struct {
	Kind     ShapeKind
	Sphere   Sphere
	Material material.ID
}

// NewSpherePrimitive creates a sphere primitive using material mat
func NewSpherePrimitive(center core.Vec3, radius float64, mat material.ID) Primitive {
	return Primitive{Kind: ShapeSphere, Sphere: NewSphere(center, radius), Material: mat}
}

// Hit intersects the underlying shape and stamps the material handle on the record
func (p Primitive) Hit(ray core.Ray, interval core.Interval) (core.HitRecord, bool) {
	switch p.Kind {
	case ShapeSphere:
		hit, ok := p.Sphere.Hit(ray, interval)
		if ok {
			hit.Material = p.Material
		}
		return hit, ok
	default:
		return core.HitRecord{}, false
	}
}

// BoundingBox returns the box of the underlying shape
func (p Primitive) BoundingBox() core.AABB {
	switch p.Kind {
	case ShapeSphere:
		return p.Sphere.BoundingBox()
	default:
		return core.EmptyAABB
	}
}
