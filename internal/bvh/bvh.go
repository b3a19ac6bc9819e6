// Package bvh builds a CPU bounding-volume hierarchy over a flat triangle
// soup and answers first-hit ray queries, the way the teacher's picking
// package answers ray/AABB queries against scene objects but specialized to
// per-triangle precision and median-split construction.
package bvh

import (
	gomath "math"

	"github.com/zdray-go/lightbake/pkg/math"
)

// Triangle indexes three vertices in the owning vertex array.
type Triangle struct {
	A, B, C uint32
}

// Hit describes the closest intersection found by FindFirstHit.
type Hit struct {
	Triangle int     // index into the BVH's Triangles slice, or -1 on miss
	Fraction float32 // distance along the ray as a fraction of maxDist
}

// Miss is the zero-value sentinel returned by FindFirstHit when nothing is hit.
var Miss = Hit{Triangle: -1}

type node struct {
	bounds       math.BBox
	left, right  int32 // child node indices, -1 if this is a leaf
	firstTri     int32 // index into the reordered triangle order, leaves only
	triCount     int32
}

// BVH is a read-only triangle acceleration structure. Build it once per
// mesh snapshot; rebuild from scratch when vertices or indices change.
type BVH struct {
	vertices []math.Vec3
	tris     []Triangle // reordered during Build; tris[i] corresponds to origIndex[i]
	origIndex []int32   // origIndex[i] is the triangle's index in the input indices array
	nodes    []node
}

// OriginalIndex maps a Hit.Triangle (an index into the BVH's internal,
// reordered triangle array) back to its index in the indices slice
// passed to Build, i.e. the triangle number as seen by the caller.
func (b *BVH) OriginalIndex(hitTriangle int) int {
	if hitTriangle < 0 || hitTriangle >= len(b.origIndex) {
		return -1
	}
	return int(b.origIndex[hitTriangle])
}

// Build constructs a BVH from a flat vertex array and a triangle index
// list (three uint32 per triangle). It performs a median split on the
// longest axis of each node's bounds, matching the "no SIMD, median-split
// on longest axis" requirement for authoring-time geometric queries.
func Build(vertices []math.Vec3, indices []uint32) *BVH {
	triCount := len(indices) / 3
	tris := make([]Triangle, triCount)
	for i := 0; i < triCount; i++ {
		tris[i] = Triangle{indices[i*3], indices[i*3+1], indices[i*3+2]}
	}

	b := &BVH{vertices: vertices, tris: tris}
	if triCount == 0 {
		b.nodes = []node{{bounds: math.EmptyBBox(), left: -1, right: -1}}
		return b
	}

	order := make([]int, triCount)
	for i := range order {
		order[i] = i
	}
	centroids := make([]math.Vec3, triCount)
	bounds := make([]math.BBox, triCount)
	for i, tri := range tris {
		bb := math.EmptyBBox()
		bb = bb.AddPoint(vertices[tri.A]).AddPoint(vertices[tri.B]).AddPoint(vertices[tri.C])
		bounds[i] = bb
		centroids[i] = bb.Center()
	}

	b.nodes = make([]node, 0, triCount*2)
	b.buildRange(order, bounds, centroids, 0, triCount)

	// Reorder triangles to match the leaf-contiguous order produced by
	// buildRange so leaves can reference a contiguous [firstTri, firstTri+triCount) range.
	reordered := make([]Triangle, triCount)
	origIndex := make([]int32, triCount)
	for i, idx := range order {
		reordered[i] = tris[idx]
		origIndex[i] = int32(idx)
	}
	b.tris = reordered
	b.origIndex = origIndex
	return b
}

// buildRange recursively partitions order[lo:hi) and appends nodes,
// returning the index of the node it created.
func (b *BVH) buildRange(order []int, bounds []math.BBox, centroids []math.Vec3, lo, hi int) int32 {
	nodeBounds := math.EmptyBBox()
	for i := lo; i < hi; i++ {
		nodeBounds = nodeBounds.Union(bounds[order[i]])
	}

	count := hi - lo
	const leafSize = 4
	if count <= leafSize {
		idx := int32(len(b.nodes))
		b.nodes = append(b.nodes, node{
			bounds:   nodeBounds,
			left:     -1,
			right:    -1,
			firstTri: int32(lo),
			triCount: int32(count),
		})
		return idx
	}

	axis := nodeBounds.LongestAxis()
	sub := order[lo:hi]
	// Median split: partial sort around the midpoint by centroid on axis.
	medianSelect(sub, centroids, axis)
	mid := lo + count/2

	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{bounds: nodeBounds, left: -1, right: -1})

	left := b.buildRange(order, bounds, centroids, lo, mid)
	right := b.buildRange(order, bounds, centroids, mid, hi)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

// medianSelect partitions sub in place so that the element at the middle
// index is in its sorted position by centroid[axis], using a simple
// quickselect (Hoare partition scheme).
func medianSelect(sub []int, centroids []math.Vec3, axis int) {
	lo, hi := 0, len(sub)-1
	mid := len(sub) / 2
	for lo < hi {
		pivot := math.Axis(centroids[sub[mid]], axis)
		i, j := lo, hi
		for i <= j {
			for math.Axis(centroids[sub[i]], axis) < pivot {
				i++
			}
			for math.Axis(centroids[sub[j]], axis) > pivot {
				j--
			}
			if i <= j {
				sub[i], sub[j] = sub[j], sub[i]
				i++
				j--
			}
		}
		if mid <= j {
			hi = j
		} else if mid >= i {
			lo = i
		} else {
			break
		}
	}
}

// FindFirstHit returns the closest triangle intersected by the segment
// from origin to end, or Miss if none is hit.
func (b *BVH) FindFirstHit(origin, end math.Vec3) Hit {
	dir := end.Sub(origin)
	maxDist := dir.Length()
	if maxDist <= 0 {
		return Miss
	}
	dir = dir.Scale(1.0 / maxDist)

	invDir := math.Vec3{X: safeInv(dir.X), Y: safeInv(dir.Y), Z: safeInv(dir.Z)}

	best := Miss
	bestDist := maxDist
	b.traverse(0, origin, dir, invDir, &bestDist, &best)
	if best.Triangle < 0 {
		return Miss
	}
	best.Fraction = bestDist / maxDist
	return best
}

func (b *BVH) traverse(nodeIdx int32, origin, dir, invDir math.Vec3, bestDist *float32, best *Hit) {
	if nodeIdx < 0 || int(nodeIdx) >= len(b.nodes) {
		return
	}
	n := &b.nodes[nodeIdx]
	if _, _, ok := n.bounds.IntersectRay(origin, invDir, *bestDist); !ok {
		return
	}

	if n.left < 0 {
		for i := int32(0); i < n.triCount; i++ {
			triIdx := n.firstTri + i
			tri := b.tris[triIdx]
			if dist, ok := intersectTriangle(origin, dir, b.vertices[tri.A], b.vertices[tri.B], b.vertices[tri.C], *bestDist); ok {
				*bestDist = dist
				*best = Hit{Triangle: int(triIdx)}
			}
		}
		return
	}

	b.traverse(n.left, origin, dir, invDir, bestDist, best)
	b.traverse(n.right, origin, dir, invDir, bestDist, best)
}

func safeInv(x float32) float32 {
	if x == 0 {
		return float32(gomath.Inf(1))
	}
	return 1.0 / x
}

// intersectTriangle is the Möller-Trumbore ray/triangle test.
func intersectTriangle(origin, dir, a, b, c math.Vec3, maxDist float32) (float32, bool) {
	const epsilon = 1e-7

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	h := dir.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	invDet := 1.0 / det
	s := origin.Sub(a)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := invDet * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := invDet * edge2.Dot(q)
	if t <= epsilon || t >= maxDist {
		return 0, false
	}
	return t, true
}

// Triangles returns the (reordered) triangle list backing this BVH. The
// index into this slice is the Hit.Triangle value, used by callers (e.g.
// LevelMesh.Trace) to map a hit back to owning surface data.
func (b *BVH) Triangles() []Triangle {
	return b.tris
}
