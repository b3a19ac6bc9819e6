package math

// Vec4 is a homogeneous 4-vector, also used to store plane coefficients
// (x, y, z = normal, w = offset).
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ returns the first three components as a Vec3.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Dot returns the 4-component dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// PlaneFromNormalPoint builds a plane (nx, ny, nz, d) such that
// n·p + d == 0 for every p on the plane through point with the given
// (already normalized) normal.
func PlaneFromNormalPoint(normal Vec3, point Vec3) Vec4 {
	return Vec4{normal.X, normal.Y, normal.Z, -normal.Dot(point)}
}

// DistanceToPoint returns the signed distance from a plane to a point.
func (v Vec4) DistanceToPoint(p Vec3) float32 {
	return v.XYZ().Dot(p) + v.W
}

// MulVec4 transforms a Vec4 by this matrix.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}
