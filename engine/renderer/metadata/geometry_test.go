package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnitCubeConfig(t *testing.T) {
	cfg := GenerateUnitCubeConfig("cube")
	require.EqualValues(t, 36, cfg.VertexCount)
	require.Len(t, cfg.Vertices, 36)
	assert.Equal(t, "cube", cfg.Name)

	for i, v := range cfg.Vertices {
		// Unit cube centered at the origin.
		assert.InDelta(t, 0.5, abs32(v.Position.X), 1e-6, "vertex %d", i)
		assert.InDelta(t, 0.5, abs32(v.Position.Y), 1e-6, "vertex %d", i)
		assert.InDelta(t, 0.5, abs32(v.Position.Z), 1e-6, "vertex %d", i)
		// Texcoords stay inside the texture.
		assert.GreaterOrEqual(t, v.Texcoord.X, float32(0))
		assert.LessOrEqual(t, v.Texcoord.X, float32(1))
		assert.GreaterOrEqual(t, v.Texcoord.Y, float32(0))
		assert.LessOrEqual(t, v.Texcoord.Y, float32(1))
	}
}

func TestGenerateUnitCubeWindingFrontFace(t *testing.T) {
	cfg := GenerateUnitCubeConfig("cube")
	// First triangle is on the +z face; CCW winding viewed from outside
	// means its normal points along +z.
	a, b, c := cfg.Vertices[0].Position, cfg.Vertices[1].Position, cfg.Vertices[2].Position
	n := b.Sub(a).Cross(c.Sub(a))
	assert.Greater(t, n.Z, float32(0))
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
