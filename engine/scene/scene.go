package scene

import (
	"fmt"
	m "math"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

// Spawn randomization ranges.
const (
	spawnTranslationRange float32 = 25.0 // per axis, [-25, 25]
	spawnScaleMin         float32 = 0.5
	spawnScaleMax         float32 = 2.0
	spawnRotSpeedRange    float32 = 2.0 // per axis, [-2, 2]
)

// reservedKeys are the keys that never spawn objects: camera movement and
// look keys, the composition-order toggles, quit and the debug pose key.
var reservedKeys = map[core.KeyCode]struct{}{
	core.KEY_W:      {},
	core.KEY_A:      {},
	core.KEY_S:      {},
	core.KEY_D:      {},
	core.KEY_SPACE:  {},
	core.KEY_LSHIFT: {},
	core.KEY_RSHIFT: {},
	core.KEY_LEFT:   {},
	core.KEY_RIGHT:  {},
	core.KEY_UP:     {},
	core.KEY_DOWN:   {},
	core.KEY_1:      {},
	core.KEY_2:      {},
	core.KEY_3:      {},
	core.KEY_ESCAPE: {},
	core.KEY_P:      {},
}

// KeyIsReserved reports whether the key belongs to the reserved
// movement/toggle set and therefore never triggers a spawn.
func KeyIsReserved(key core.KeyCode) bool {
	_, ok := reservedKeys[key]
	return ok
}

// ResourceAcquirer creates the GPU-side uniform storage and draw binding
// for one object, returning an identifier for both. Implemented by the
// renderer; test code substitutes a stub.
type ResourceAcquirer interface {
	AcquireObjectResources(textureName string) (uint32, error)
}

// Config bounds the scene and names the texture slots new objects pick from.
type Config struct {
	// MaxObjects caps the object list; spawns beyond it are dropped with a
	// warning. Guards the otherwise unbounded session growth.
	MaxObjects int
	// TextureNames are the logical texture slot names, chosen from uniformly
	// at random on spawn.
	TextureNames []string
}

// Scene is the simulation context: the insertion-ordered object list, the
// global composition-order toggle and the spawn machinery. It owns no GPU
// state and runs headless, which is what makes the frame logic unit-testable.
type Scene struct {
	Objects []*Object
	// Order is the global composition order applied to every object at
	// matrix-build time. Toggled by the 1/2/3 keys.
	Order CompositionOrder

	config    *Config
	resources ResourceAcquirer
	rng       *rand.Rand
}

func New(config *Config, resources ResourceAcquirer, rng *rand.Rand) (*Scene, error) {
	if config.MaxObjects <= 0 {
		return nil, fmt.Errorf("scene.New: config.MaxObjects must be > 0")
	}
	if len(config.TextureNames) == 0 {
		return nil, fmt.Errorf("scene.New: at least one texture slot is required")
	}
	return &Scene{
		Objects:   make([]*Object, 0, config.MaxObjects),
		Order:     OrderTRS,
		config:    config,
		resources: resources,
		rng:       rng,
	}, nil
}

// SpawnPrimary creates the initial cube at the world origin. Called once at
// startup, before the first frame.
func (s *Scene) SpawnPrimary() (*Object, error) {
	obj := &Object{
		ID:            uuid.New().String(),
		Translation:   math.NewVec3Zero(),
		Rotation:      math.NewVec3Zero(),
		Scale:         1.0,
		RotationSpeed: math.NewVec3(0.9, 1.3, 0.0),
		TextureName:   s.config.TextureNames[0],
	}
	return s.add(obj)
}

// TrySpawn creates one randomized object in response to a key press.
// Reserved keys (movement, look, order toggles) never spawn. Returns the
// new object, or nil when the key is reserved or the scene is full.
func (s *Scene) TrySpawn(key core.KeyCode) (*Object, error) {
	if KeyIsReserved(key) {
		return nil, nil
	}
	if len(s.Objects) >= s.config.MaxObjects {
		core.LogWarn("scene is full (%d objects), dropping spawn", len(s.Objects))
		return nil, nil
	}

	obj := &Object{
		ID: uuid.New().String(),
		Translation: math.NewVec3(
			s.randomInRange(-spawnTranslationRange, spawnTranslationRange),
			s.randomInRange(-spawnTranslationRange, spawnTranslationRange),
			s.randomInRange(-spawnTranslationRange, spawnTranslationRange)),
		Rotation: math.NewVec3(
			s.randomInRange(0, math.K_PI_2),
			s.randomInRange(0, math.K_PI_2),
			s.randomInRange(0, math.K_PI_2)),
		Scale: s.randomInRange(spawnScaleMin, spawnScaleMax),
		// Angular velocities come from random phase angles pushed through
		// sine/cosine, biasing speeds away from the extremes.
		RotationSpeed: math.NewVec3(
			spawnRotSpeedRange*sin32(s.randomInRange(0, math.K_PI_2)),
			spawnRotSpeedRange*cos32(s.randomInRange(0, math.K_PI_2)),
			spawnRotSpeedRange*sin32(s.randomInRange(0, math.K_PI_2))),
		TextureName: s.config.TextureNames[s.rng.Intn(len(s.config.TextureNames))],
	}

	o, err := s.add(obj)
	if err != nil {
		return nil, err
	}

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_OBJECT_SPAWNED,
		Data: o.ID,
	})
	return o, nil
}

// add acquires GPU resources for the object and appends it, in that order:
// an object only becomes drawable once its uniform storage and draw binding
// exist.
func (s *Scene) add(obj *Object) (*Object, error) {
	id, err := s.resources.AcquireObjectResources(obj.TextureName)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire GPU resources for object: %w", err)
	}
	obj.ResourceID = id
	s.Objects = append(s.Objects, obj)
	return obj, nil
}

// Update advances every live object's auto-rotation by dt seconds.
func (s *Scene) Update(dt float64) {
	for _, obj := range s.Objects {
		obj.Integrate(dt)
	}
}

// UpdateOrderFromInput applies the global composition-order toggle from the
// currently held keys. Checks run 1, then 2, then 3, so when several toggle
// keys are held at once the last checked wins. The chosen order sticks for
// all subsequent frames until another toggle key is held.
func (s *Scene) UpdateOrderFromInput() {
	if core.InputIsKeyDown(core.KEY_1) {
		s.Order = OrderTRS
	}
	if core.InputIsKeyDown(core.KEY_2) {
		s.Order = OrderRTS
	}
	if core.InputIsKeyDown(core.KEY_3) {
		s.Order = OrderSRT
	}
}

// Renderables returns the per-object draw data in strict insertion order:
// the primary object first, then every spawn in creation order.
func (s *Scene) Renderables() []metadata.RenderableData {
	out := make([]metadata.RenderableData, 0, len(s.Objects))
	for _, obj := range s.Objects {
		out = append(out, obj.Renderable(s.Order))
	}
	return out
}

func (s *Scene) randomInRange(min, max float32) float32 {
	return min + s.rng.Float32()*(max-min)
}

func sin32(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func cos32(x float32) float32 {
	return float32(m.Cos(float64(x)))
}
