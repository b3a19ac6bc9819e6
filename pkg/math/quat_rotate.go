package math

// RotateVec3 rotates v by this quaternion.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	return q.ToMat4().TransformDirection3(v)
}

// TransformDirection3 transforms a direction vector by the upper-left 3x3
// of this matrix (ignores translation), returning a Vec3.
func (m Mat4) TransformDirection3(v Vec3) Vec3 {
	d := m.TransformDirection([3]float32{v.X, v.Y, v.Z})
	return Vec3{d[0], d[1], d[2]}
}
