package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief A 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/**
	 * @brief The matrix elements, stored column-major:
	 * element (row, col) lives at Data[col*4+row].
	 */
	Data [16]float32
}

/**
 * @brief Represents a single textured vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
}

/** @brief The packed size in bytes of a Vertex3D (3 position + 2 texcoord floats). */
const Vertex3DStride = 5 * 4
