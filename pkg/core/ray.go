package core

// Ray represents a ray with an origin and direction. Rays are values: every
// bounce creates a new one.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// HitRecord contains information about a ray-object intersection.
// It is created fresh for every query and never stored.
type HitRecord struct {
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Surface normal, always facing against the ray
	T         float64 // Parameter t along the ray
	FrontFace bool    // Whether the ray hit the outside of the surface
	Material  int     // Index into the scene's material arena
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
