package metadata

import (
	"github.com/spaghettifunk/cubana/engine/math"
)

/**
 * @brief Everything the renderer needs to draw one object for one frame:
 * its finished model matrix and the identifier of the GPU resources
 * (uniform buffer + draw binding) acquired for it at spawn time.
 */
type RenderableData struct {
	Model      math.Mat4
	ResourceID uint32
}

/**
 * @brief A packet built by the frame loop and handed to the renderer,
 * describing a complete frame. Renderables are listed in draw order.
 */
type RenderPacket struct {
	DeltaTime   float64
	View        math.Mat4
	Projection  math.Mat4
	Renderables []RenderableData
}
