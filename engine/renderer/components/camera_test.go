package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/math"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.True(t, c.Position.Compare(math.NewVec3Zero(), 0))
	assert.True(t, c.EulerRotation.Compare(math.NewVec3Zero(), 0))
	assert.EqualValues(t, 15.0, c.MoveSpeed)
	assert.InDelta(t, 1.6, float64(c.LookSpeed), 1e-6)
	assert.True(t, c.GetView().Compare(math.NewMat4Identity(), 1e-6))
}

func TestGetViewInvertsWorldTransform(t *testing.T) {
	c := NewCamera()
	c.SetPosition(math.NewVec3(0, 0, 10))

	// View times world transform gives identity.
	world := math.NewMat4Translation(c.Position)
	assert.True(t, c.GetView().Mul(world).Compare(math.NewMat4Identity(), 1e-5))
}

func TestCameraFacesNegativeZByDefault(t *testing.T) {
	c := NewCamera()
	assert.True(t, c.Forward().Compare(math.NewVec3(0, 0, -1), 1e-6))
}

func TestYawTurnsForwardVector(t *testing.T) {
	c := NewCamera()
	c.Yaw(math.K_HALF_PI)
	assert.True(t, c.Forward().Compare(math.NewVec3(-1, 0, 0), 1e-4))
}

func TestPitchClamped(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 100; i++ {
		c.Pitch(0.5)
	}
	assert.InDelta(t, float64(pitchLimit), float64(c.EulerRotation.X), 1e-6)

	for i := 0; i < 200; i++ {
		c.Pitch(-0.5)
	}
	assert.InDelta(t, float64(-pitchLimit), float64(c.EulerRotation.X), 1e-6)
}

func TestIntegrateMovesAlongHeldKeys(t *testing.T) {
	require.NoError(t, core.InputInitialize())
	defer core.InputShutdown()

	c := NewCamera()
	c.MoveSpeed = 10.0

	require.NoError(t, core.InputProcessKey(core.KEY_W, true))
	c.Integrate(0.5)
	require.NoError(t, core.InputProcessKey(core.KEY_W, false))

	// Forward is -Z for an unrotated camera.
	assert.True(t, c.Position.Compare(math.NewVec3(0, 0, -5), 1e-5))

	// Held vertical keys compose additively with nothing else held.
	require.NoError(t, core.InputProcessKey(core.KEY_SPACE, true))
	c.Integrate(0.5)
	require.NoError(t, core.InputProcessKey(core.KEY_SPACE, false))
	assert.True(t, c.Position.Compare(math.NewVec3(0, 0, -5).Add(math.NewVec3(0, 5, 0)), 1e-5))
}

func TestIntegrateLookKeys(t *testing.T) {
	require.NoError(t, core.InputInitialize())
	defer core.InputShutdown()

	c := NewCamera()
	c.LookSpeed = 2.0

	require.NoError(t, core.InputProcessKey(core.KEY_LEFT, true))
	c.Integrate(0.25)
	require.NoError(t, core.InputProcessKey(core.KEY_LEFT, false))
	assert.InDelta(t, 0.5, float64(c.EulerRotation.Y), 1e-6)

	require.NoError(t, core.InputProcessKey(core.KEY_DOWN, true))
	c.Integrate(0.25)
	require.NoError(t, core.InputProcessKey(core.KEY_DOWN, false))
	assert.InDelta(t, -0.5, float64(c.EulerRotation.X), 1e-6)
}
