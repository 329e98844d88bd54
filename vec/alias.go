// GLSL-like aliases for the vector types. The unprefixed names are the
// float32 variants, matching GLSL's vec2/vec3/vec4.

package vec

type (
	IVec2 = Vec2[int32]
	IVec3 = Vec3[int32]
	IVec4 = Vec4[int32]

	UVec2 = Vec2[uint32]
	UVec3 = Vec3[uint32]
	UVec4 = Vec4[uint32]

	FVec2 = Vec2[float32]
	FVec3 = Vec3[float32]
	FVec4 = Vec4[float32]

	DVec2 = Vec2[float64]
	DVec3 = Vec3[float64]
	DVec4 = Vec4[float64]

	V2 = FVec2
	V3 = FVec3
	V4 = FVec4
)
