package levelmesh

import "github.com/zdray-go/lightbake/pkg/math"

// MeshLocation addresses a surface's contiguous run of vertices and
// indices within the LevelMesh's flat arrays.
type MeshLocation struct {
	StartVert   int
	NumVerts    int
	StartIndex  int
	NumIndices  int
}

// Surface is the unit of lighting: a convex, coplanar polygon
// triangulated into the mesh.
type Surface struct {
	MeshLocation

	Plane  math.Vec4 // (a,b,c,d), |(a,b,c)| == 1
	Bounds math.BBox

	SectorGroup int
	PortalIndex int // 0 = none

	IsSky        bool
	Alpha        float32
	TextureID    int
	AlwaysUpdate bool

	LightmapTileIndex int // -1 if unlit
	PlaneGroup        int // assigned by BuildPlaneGroups

	SamplingDistance float32 // world units per lightmap texel

	EmissiveColor     math.Vec3
	EmissiveIntensity float32
	EmissiveDistance  float32 // <= 0: not emissive

	Lights []int // indices into LevelMesh.Lights
}

// Portal is an affine transform applied to a ray's origin and direction
// when it crosses the portal's surface. Portal index 0 is always the
// identity sentinel.
type Portal struct {
	Rotation    math.Quat
	Translation math.Vec3
}

// IdentityPortal returns the value stored at Portals[0].
func IdentityPortal() Portal {
	return Portal{Rotation: math.QuatIdentity()}
}

// TransformOrigin maps a world-space ray origin across this portal.
func (p Portal) TransformOrigin(origin math.Vec3) math.Vec3 {
	return p.Rotation.RotateVec3(origin).Add(p.Translation)
}

// TransformDirection maps a world-space ray direction across this portal.
func (p Portal) TransformDirection(dir math.Vec3) math.Vec3 {
	return p.Rotation.RotateVec3(dir)
}

// Light is a point or spot light source. The sun is not stored among the
// level's lights; the pipeline evaluates it separately.
type Light struct {
	Origin    math.Vec3
	Radius    float32
	Intensity float32
	Color     math.Vec3

	SpotDir       math.Vec3
	InnerAngleCos float32
	OuterAngleCos float32 // -1 for omni
}

// IsOmni reports whether this light has no spot cone.
func (l Light) IsOmni() bool {
	return l.OuterAngleCos < -0.999
}

// SurfaceInfo is the GPU-facing per-surface payload uploaded to the
// surface-info storage buffer, grounded in the SurfaceInfo struct
// described by the scene's binary interface.
type SurfaceInfo struct {
	Normal            math.Vec3
	EmissiveDistance  float32
	EmissiveColor     math.Vec3
	EmissiveIntensity float32
	Sky               float32 // 0 or 1
	SamplingDistance  float32
	_                 [2]float32 // padding to a 16-byte-aligned stride
}

// ToSurfaceInfo builds the GPU payload for a surface. The normal is taken
// from the surface's plane; vertex normals are not consulted.
func (s Surface) ToSurfaceInfo() SurfaceInfo {
	sky := float32(0)
	if s.IsSky {
		sky = 1
	}
	return SurfaceInfo{
		Normal:            s.Plane.XYZ(),
		EmissiveDistance:  s.EmissiveDistance,
		EmissiveColor:     s.EmissiveColor,
		EmissiveIntensity: s.EmissiveIntensity,
		Sky:               sky,
		SamplingDistance:  s.SamplingDistance,
	}
}
