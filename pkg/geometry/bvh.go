package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BuildOptions controls BVH construction
type BuildOptions struct {
	LeafSize int // Nodes with this many primitives or fewer become leaves
	MaxDepth int // Nodes at this depth become leaves regardless of size
}

// DefaultBuildOptions returns the build settings used by the renderer
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{LeafSize: 4, MaxDepth: 32}
}

// BVHNode represents a node in the Bounding Volume Hierarchy. Internal nodes
// have both children; leaves reference Primitives[Start : Start+Count].
type BVHNode struct {
	Box   core.AABB
	Left  *BVHNode
	Right *BVHNode
	Axis  int // Split axis of an internal node
	Start int
	Count int
}

// IsLeaf reports whether the node stores primitives directly
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It owns a reordered copy of the primitives and is immutable once built, so
// any number of goroutines may query it.
type BVH struct {
	Root       *BVHNode
	Primitives []Primitive
	options    BuildOptions
}

// NewBVH constructs a BVH from a slice of primitives. The input slice is not
// modified. Empty input yields a BVH that never reports a hit.
func NewBVH(primitives []Primitive, opts BuildOptions) *BVH {
	if opts.LeafSize < 1 {
		opts.LeafSize = 1
	}
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}

	bvh := &BVH{
		Primitives: make([]Primitive, len(primitives)),
		options:    opts,
	}
	copy(bvh.Primitives, primitives)

	if len(primitives) > 0 {
		bvh.Root = bvh.build(0, len(primitives), 0)
	}
	return bvh
}

// build recursively builds the subtree over Primitives[start:end] with a
// median split on the axis where the centroids are spread the most
func (bvh *BVH) build(start, end, depth int) *BVHNode {
	prims := bvh.Primitives[start:end]

	box := core.EmptyAABB
	centroids := core.EmptyAABB
	for _, p := range prims {
		b := p.BoundingBox()
		box = box.Union(b)
		c := b.Centroid()
		centroids = centroids.Union(core.NewAABB(c, c))
	}

	count := end - start
	if count <= bvh.options.LeafSize || depth >= bvh.options.MaxDepth {
		return &BVHNode{Box: box, Start: start, Count: count}
	}

	axis := splitAxis(box, centroids)

	// Stable so that equal centroids keep their input order and builds are reproducible
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Centroid().Axis(axis) < prims[j].BoundingBox().Centroid().Axis(axis)
	})

	mid := start + count/2
	left := bvh.build(start, mid, depth+1)
	right := bvh.build(mid, end, depth+1)

	return &BVHNode{
		Box:   left.Box.Union(right.Box),
		Left:  left,
		Right: right,
		Axis:  axis,
	}
}

// splitAxis picks the axis of greatest centroid extent. When every centroid
// coincides there is nothing to separate, so the longest box axis is used.
func splitAxis(box, centroids core.AABB) int {
	extent := centroids.Size()
	if extent.X <= 0 && extent.Y <= 0 && extent.Z <= 0 {
		return box.LongestAxis()
	}
	return centroids.LongestAxis()
}

// Hit returns the closest primitive intersection strictly inside interval
func (bvh *BVH) Hit(ray core.Ray, interval core.Interval) (core.HitRecord, bool) {
	if bvh.Root == nil {
		return core.HitRecord{}, false
	}
	q := core.NewRayInverse(ray)
	return bvh.hitNode(bvh.Root, ray, &q, interval)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, q *core.RayInverse, interval core.Interval) (core.HitRecord, bool) {
	if !node.Box.HitInverse(q, interval) {
		return core.HitRecord{}, false
	}

	if node.IsLeaf() {
		var closest core.HitRecord
		hitAnything := false
		for i := node.Start; i < node.Start+node.Count; i++ {
			if hit, ok := bvh.Primitives[i].Hit(ray, interval); ok {
				hitAnything = true
				interval.Max = hit.T
				closest = hit
			}
		}
		return closest, hitAnything
	}

	// Visit the child on the ray's side of the split first so the far child
	// is tested against an already shortened interval
	near, far := node.Left, node.Right
	if q.Sign[node.Axis] == 1 {
		near, far = far, near
	}

	closest, hitAnything := bvh.hitNode(near, ray, q, interval)
	if hitAnything {
		interval.Max = closest.T
	}
	if hit, ok := bvh.hitNode(far, ray, q, interval); ok {
		return hit, true
	}
	return closest, hitAnything
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB
	}
	return bvh.Root.Box
}

// Visit walks every node depth first, root at depth 0
func (bvh *BVH) Visit(fn func(node *BVHNode, depth int)) {
	if bvh.Root == nil {
		return
	}
	var walk func(node *BVHNode, depth int)
	walk = func(node *BVHNode, depth int) {
		fn(node, depth)
		if !node.IsLeaf() {
			walk(node.Left, depth+1)
			walk(node.Right, depth+1)
		}
	}
	walk(bvh.Root, 0)
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes       int
	Leaves      int
	MaxDepth    int
	AvgDepth    float64 // Mean leaf depth
	Primitives  int
	LargestLeaf int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	bvh.Visit(func(node *BVHNode, depth int) {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if node.IsLeaf() {
			stats.Leaves++
			stats.Primitives += node.Count
			stats.AvgDepth += float64(depth)
			if node.Count > stats.LargestLeaf {
				stats.LargestLeaf = node.Count
			}
		}
	})

	if stats.Leaves > 0 {
		stats.AvgDepth /= float64(stats.Leaves)
	}
	return stats
}
