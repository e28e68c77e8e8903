package components

import (
	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

// Pitch is clamped just inside +-90 degrees to avoid gimbal flip.
const pitchLimit = float32(1.55334306) // 89 degrees in radians

/**
 * @brief Represents a free-fly first person camera. Position and Euler
 * rotation (pitch=X, yaw=Y) are integrated from held keys once per frame;
 * the view matrix is cached and rebuilt lazily whenever either changes.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll).
	 * NOTE: Do not set this directly, use SetEulerRotation() instead
	 * so the view matrix is recalculated when needed.
	 */
	EulerRotation math.Vec3
	/** @brief Movement speed in world units per second. */
	MoveSpeed float32
	/** @brief Look rotation speed in radians per second. */
	LookSpeed float32
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.EulerRotation = math.NewVec3Zero()
	c.Position = math.NewVec3Zero()
	c.MoveSpeed = 15.0
	c.LookSpeed = 1.6
	c.IsDirty = false
	c.ViewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.EulerRotation = rotation
	c.IsDirty = true
}

// GetView returns the view matrix: the inverse of the camera's world
// transform (translation times rotation), rebuilt only when stale.
func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		rotation := math.NewMat4EulerXYZ(c.EulerRotation.X, c.EulerRotation.Y, c.EulerRotation.Z)
		translation := math.NewMat4Translation(c.Position)

		c.ViewMatrix = translation.Mul(rotation).Inverse()
		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) Forward() math.Vec3 {
	return c.GetView().Forward()
}

func (c *Camera) Backward() math.Vec3 {
	return c.GetView().Backward()
}

func (c *Camera) Left() math.Vec3 {
	return c.GetView().Left()
}

func (c *Camera) Right() math.Vec3 {
	return c.GetView().Right()
}

func (c *Camera) MoveForward(amount float32) {
	direction := c.Forward()
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveBackward(amount float32) {
	direction := c.Backward()
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveLeft(amount float32) {
	direction := c.Left()
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveRight(amount float32) {
	direction := c.Right()
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveUp(amount float32) {
	direction := math.NewVec3Up()
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveDown(amount float32) {
	direction := math.NewVec3Down()
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) Yaw(amount float32) {
	c.EulerRotation.Y += amount
	c.IsDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.EulerRotation.X += amount

	// Clamp to avoid gimbal lock.
	c.EulerRotation.X = math.Clamp(c.EulerRotation.X, -pitchLimit, pitchLimit)

	c.IsDirty = true
}

/**
 * @brief Integrates the camera pose from the currently held movement and
 * look keys. Held keys compose additively, so diagonals come for free.
 * WASD moves along the current basis, space/shift move vertically and the
 * arrow keys adjust yaw and pitch. A negative or NaN dt is a caller
 * contract violation and is not checked here.
 */
func (c *Camera) Integrate(dt float64) {
	moveAmount := c.MoveSpeed * float32(dt)
	lookAmount := c.LookSpeed * float32(dt)

	if core.InputIsKeyDown(core.KEY_W) {
		c.MoveForward(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_S) {
		c.MoveBackward(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_A) {
		c.MoveLeft(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_D) {
		c.MoveRight(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_SPACE) {
		c.MoveUp(moveAmount)
	}
	if core.InputIsKeyDown(core.KEY_LSHIFT) || core.InputIsKeyDown(core.KEY_RSHIFT) {
		c.MoveDown(moveAmount)
	}

	if core.InputIsKeyDown(core.KEY_LEFT) {
		c.Yaw(lookAmount)
	}
	if core.InputIsKeyDown(core.KEY_RIGHT) {
		c.Yaw(-lookAmount)
	}
	if core.InputIsKeyDown(core.KEY_UP) {
		c.Pitch(lookAmount)
	}
	if core.InputIsKeyDown(core.KEY_DOWN) {
		c.Pitch(-lookAmount)
	}
}
