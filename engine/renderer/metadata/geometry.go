package metadata

import (
	"github.com/spaghettifunk/cubana/engine/math"
)

/**
 * @brief Represents the configuration for a geometry: a flat, non-indexed
 * vertex list uploaded once to the GPU.
 */
type GeometryConfig struct {
	/** @brief The number of vertices. */
	VertexCount uint32
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief The Name of the geometry. */
	Name string
}

/**
 * @brief Generates the fixed unit cube used for every object in the scene:
 * 36 vertices (two triangles per face, six faces), position plus texture
 * coordinate, counter-clockwise winding viewed from outside.
 */
func GenerateUnitCubeConfig(name string) *GeometryConfig {
	const h = 0.5

	quad := func(bl, br, tr, tl math.Vec3) []math.Vertex3D {
		return []math.Vertex3D{
			{Position: bl, Texcoord: math.NewVec2(0, 1)},
			{Position: br, Texcoord: math.NewVec2(1, 1)},
			{Position: tr, Texcoord: math.NewVec2(1, 0)},
			{Position: bl, Texcoord: math.NewVec2(0, 1)},
			{Position: tr, Texcoord: math.NewVec2(1, 0)},
			{Position: tl, Texcoord: math.NewVec2(0, 0)},
		}
	}

	var vertices []math.Vertex3D
	// Front (+z)
	vertices = append(vertices, quad(
		math.NewVec3(-h, -h, h), math.NewVec3(h, -h, h),
		math.NewVec3(h, h, h), math.NewVec3(-h, h, h))...)
	// Back (-z)
	vertices = append(vertices, quad(
		math.NewVec3(h, -h, -h), math.NewVec3(-h, -h, -h),
		math.NewVec3(-h, h, -h), math.NewVec3(h, h, -h))...)
	// Left (-x)
	vertices = append(vertices, quad(
		math.NewVec3(-h, -h, -h), math.NewVec3(-h, -h, h),
		math.NewVec3(-h, h, h), math.NewVec3(-h, h, -h))...)
	// Right (+x)
	vertices = append(vertices, quad(
		math.NewVec3(h, -h, h), math.NewVec3(h, -h, -h),
		math.NewVec3(h, h, -h), math.NewVec3(h, h, h))...)
	// Top (+y)
	vertices = append(vertices, quad(
		math.NewVec3(-h, h, h), math.NewVec3(h, h, h),
		math.NewVec3(h, h, -h), math.NewVec3(-h, h, -h))...)
	// Bottom (-y)
	vertices = append(vertices, quad(
		math.NewVec3(-h, -h, -h), math.NewVec3(h, -h, -h),
		math.NewVec3(h, -h, h), math.NewVec3(-h, -h, h))...)

	return &GeometryConfig{
		VertexCount: uint32(len(vertices)),
		Vertices:    vertices,
		Name:        name,
	}
}
