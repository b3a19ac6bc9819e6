package math

// BBox is an axis-aligned world-space bounding box.
type BBox struct {
	Min, Max Vec3
}

// EmptyBBox returns a degenerate box suitable as an accumulation seed.
func EmptyBBox() BBox {
	const inf = 1e30
	return BBox{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// AddPoint grows the box to include p.
func (b BBox) AddPoint(p Vec3) BBox {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
	return b
}

// Union returns the smallest box containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Center returns the midpoint of the box.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the box's full size along each axis.
func (b BBox) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// LongestAxis returns 0, 1, or 2 for X, Y, Z according to which extent is
// largest.
func (b BBox) LongestAxis() int {
	e := b.Extent()
	axis := 0
	longest := e.X
	if e.Y > longest {
		axis, longest = 1, e.Y
	}
	if e.Z > longest {
		axis = 2
	}
	return axis
}

// Abs32 returns the absolute value of a float32.
func Abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Axis returns the component of v along the given axis (0=X, 1=Y, 2=Z).
func Axis(v Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IntersectRay tests a ray against the box, returning the entry/exit
// distances along the ray. ok is false if the ray misses.
func (b BBox) IntersectRay(origin, invDir Vec3, maxDist float32) (tmin, tmax float32, ok bool) {
	tmin, tmax = 0, maxDist

	t1 := (b.Min.X - origin.X) * invDir.X
	t2 := (b.Max.X - origin.X) * invDir.X
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > tmin {
		tmin = t1
	}
	if t2 < tmax {
		tmax = t2
	}

	t1 = (b.Min.Y - origin.Y) * invDir.Y
	t2 = (b.Max.Y - origin.Y) * invDir.Y
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > tmin {
		tmin = t1
	}
	if t2 < tmax {
		tmax = t2
	}

	t1 = (b.Min.Z - origin.Z) * invDir.Z
	t2 = (b.Max.Z - origin.Z) * invDir.Z
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > tmin {
		tmin = t1
	}
	if t2 < tmax {
		tmax = t2
	}

	return tmin, tmax, tmax >= tmin
}
