// Componentwise operators for the vector types.

package vec

// Add returns the componentwise sum.
func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] {
	return Vec2[T]{v[0] + o[0], v[1] + o[1]}
}

// Sub returns the componentwise difference.
func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] {
	return Vec2[T]{v[0] - o[0], v[1] - o[1]}
}

// Mul returns the componentwise product.
func (v Vec2[T]) Mul(o Vec2[T]) Vec2[T] {
	return Vec2[T]{v[0] * o[0], v[1] * o[1]}
}

// Div returns the componentwise quotient.
func (v Vec2[T]) Div(o Vec2[T]) Vec2[T] {
	return Vec2[T]{v[0] / o[0], v[1] / o[1]}
}

// Neg returns the componentwise negation.
func (v Vec2[T]) Neg() Vec2[T] {
	return Vec2[T]{-v[0], -v[1]}
}

// Scale multiplies every component by s.
func (v Vec2[T]) Scale(s T) Vec2[T] {
	return Vec2[T]{v[0] * s, v[1] * s}
}

// Dot returns the dot product.
func (v Vec2[T]) Dot(o Vec2[T]) T {
	return v[0]*o[0] + v[1]*o[1]
}

// Sum returns the sum of all components.
func (v Vec2[T]) Sum() T {
	return v[0] + v[1]
}

// Add returns the componentwise sum.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the componentwise difference.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Mul returns the componentwise product.
func (v Vec3[T]) Mul(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

// Div returns the componentwise quotient.
func (v Vec3[T]) Div(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] / o[0], v[1] / o[1], v[2] / o[2]}
}

// Neg returns the componentwise negation.
func (v Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{-v[0], -v[1], -v[2]}
}

// Scale multiplies every component by s.
func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product.
func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Sum returns the sum of all components.
func (v Vec3[T]) Sum() T {
	return v[0] + v[1] + v[2]
}

// Add returns the componentwise sum.
func (v Vec4[T]) Add(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub returns the componentwise difference.
func (v Vec4[T]) Sub(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Mul returns the componentwise product.
func (v Vec4[T]) Mul(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

// Div returns the componentwise quotient.
func (v Vec4[T]) Div(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v[0] / o[0], v[1] / o[1], v[2] / o[2], v[3] / o[3]}
}

// Neg returns the componentwise negation.
func (v Vec4[T]) Neg() Vec4[T] {
	return Vec4[T]{-v[0], -v[1], -v[2], -v[3]}
}

// Scale multiplies every component by s.
func (v Vec4[T]) Scale(s T) Vec4[T] {
	return Vec4[T]{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Dot returns the dot product.
func (v Vec4[T]) Dot(o Vec4[T]) T {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] + v[3]*o[3]
}

// Sum returns the sum of all components.
func (v Vec4[T]) Sum() T {
	return v[0] + v[1] + v[2] + v[3]
}
