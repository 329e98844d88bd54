// Package vec provides small fixed-size vector types with properties
// similar to those of GLSL vectors: componentwise arithmetic, splat
// construction, and the usual family of element-type aliases.
package vec

// Number is the element constraint for all vector types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Vec2 is a two-component vector.
type Vec2[T Number] [2]T

// Vec3 is a three-component vector.
type Vec3[T Number] [3]T

// Vec4 is a four-component vector.
type Vec4[T Number] [4]T

// New2 creates a Vec2 from its components.
func New2[T Number](x, y T) Vec2[T] {
	return Vec2[T]{x, y}
}

// New3 creates a Vec3 from its components.
func New3[T Number](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// New4 creates a Vec4 from its components.
func New4[T Number](x, y, z, w T) Vec4[T] {
	return Vec4[T]{x, y, z, w}
}

// Single2 creates a Vec2 with every component set to v.
func Single2[T Number](v T) Vec2[T] {
	return Vec2[T]{v, v}
}

// Single3 creates a Vec3 with every component set to v.
func Single3[T Number](v T) Vec3[T] {
	return Vec3[T]{v, v, v}
}

// Single4 creates a Vec4 with every component set to v.
func Single4[T Number](v T) Vec4[T] {
	return Vec4[T]{v, v, v, v}
}

// Array returns the vector's components as an array.
func (v Vec2[T]) Array() [2]T { return v }

// Array returns the vector's components as an array.
func (v Vec3[T]) Array() [3]T { return v }

// Array returns the vector's components as an array.
func (v Vec4[T]) Array() [4]T { return v }

// X returns the first component.
func (v Vec2[T]) X() T { return v[0] }

// Y returns the second component.
func (v Vec2[T]) Y() T { return v[1] }

// X returns the first component.
func (v Vec3[T]) X() T { return v[0] }

// Y returns the second component.
func (v Vec3[T]) Y() T { return v[1] }

// Z returns the third component.
func (v Vec3[T]) Z() T { return v[2] }

// X returns the first component.
func (v Vec4[T]) X() T { return v[0] }

// Y returns the second component.
func (v Vec4[T]) Y() T { return v[1] }

// Z returns the third component.
func (v Vec4[T]) Z() T { return v[2] }

// W returns the fourth component.
func (v Vec4[T]) W() T { return v[3] }
