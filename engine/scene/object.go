package scene

import (
	"github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

// CompositionOrder selects how the translation, rotation and scale
// sub-transforms are combined into a model matrix.
type CompositionOrder int

const (
	// Translate-Rotate-Scale: T·(R·S), scale applied first.
	OrderTRS CompositionOrder = iota
	// Rotate-Translate-Scale: R·(T·S).
	OrderRTS
	// Scale-Rotate-Translate: S·(R·T), translation applied first.
	OrderSRT
)

func (o CompositionOrder) String() string {
	switch o {
	case OrderTRS:
		return "TRS"
	case OrderRTS:
		return "RTS"
	case OrderSRT:
		return "SRT"
	}
	return "unknown"
}

// Object is one cube instance: its transform parameters, per-axis angular
// velocity and the texture it is drawn with. ResourceID refers to the GPU
// uniform buffer and draw binding acquired for it at creation time, so an
// object is never observable in a half-initialized state.
type Object struct {
	ID            string
	Translation   math.Vec3
	Rotation      math.Vec3
	Scale         float32
	RotationSpeed math.Vec3
	TextureName   string
	ResourceID    uint32
}

// Integrate advances the object's auto-rotation by dt seconds. Applied to
// every live object unconditionally every frame.
func (o *Object) Integrate(dt float64) {
	o.Rotation.X += o.RotationSpeed.X * float32(dt)
	o.Rotation.Y += o.RotationSpeed.Y * float32(dt)
	o.Rotation.Z += o.RotationSpeed.Z * float32(dt)
}

// BuildModelMatrix combines the object's translation, combined rotation
// R = Rz·Ry·Rx (x applied first) and uniform scale according to order.
// An unrecognized order falls back to TRS.
func (o *Object) BuildModelMatrix(order CompositionOrder) math.Mat4 {
	t := math.NewMat4Translation(o.Translation)
	r := math.NewMat4EulerXYZ(o.Rotation.X, o.Rotation.Y, o.Rotation.Z)
	s := math.NewMat4Scale(math.NewVec3(o.Scale, o.Scale, o.Scale))

	switch order {
	case OrderRTS:
		return r.Mul(t.Mul(s))
	case OrderSRT:
		return s.Mul(r.Mul(t))
	case OrderTRS:
		fallthrough
	default:
		return t.Mul(r.Mul(s))
	}
}

// Renderable packages the object for the renderer under the given global
// composition order.
func (o *Object) Renderable(order CompositionOrder) metadata.RenderableData {
	return metadata.RenderableData{
		Model:      o.BuildModelMatrix(order),
		ResourceID: o.ResourceID,
	}
}
