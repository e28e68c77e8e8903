package testbed

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/spaghettifunk/cubana/engine"
	"github.com/spaghettifunk/cubana/engine/containers"
	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/renderer/components"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
	"github.com/spaghettifunk/cubana/engine/scene"
)

const spawnQueueSize = 64

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera
	Scene       *scene.Scene

	// key presses staged by the event handler, drained once per update
	spawnRequests *containers.RingQueue[core.KeyCode]

	width  uint32
	height uint32
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				spawnRequests: containers.NewRingQueue[core.KeyCode](spawnQueueSize),
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.State.(*gameState)
	state.width = g.ApplicationConfig.StartWidth
	state.height = g.ApplicationConfig.StartHeight

	state.WorldCamera = g.SystemManager.DefaultCamera()
	state.WorldCamera.MoveSpeed = g.ApplicationConfig.CameraMoveSpeed
	state.WorldCamera.LookSpeed = g.ApplicationConfig.CameraLookSpeed
	state.WorldCamera.SetPosition(math.NewVec3(0, 0, 30.0))

	// All texture slots resolve at startup; a spawn never waits on disk.
	if err := g.SystemManager.PreloadTextures(g.ApplicationConfig.TextureNames); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	s, err := scene.New(&scene.Config{
		MaxObjects:   int(g.ApplicationConfig.MaxObjects),
		TextureNames: g.ApplicationConfig.TextureNames,
	}, g.SystemManager, rng)
	if err != nil {
		return err
	}
	state.Scene = s

	if _, err := s.SpawnPrimary(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g.onKeyPressed)
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, g.onKeyReleased)
	core.EventRegister(core.EVENT_CODE_OBJECT_SPAWNED, g.onObjectSpawned)

	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// Spawns staged by key events since the last update.
	for !state.spawnRequests.IsEmpty() {
		key, err := state.spawnRequests.Dequeue()
		if err != nil {
			break
		}
		if _, err := state.Scene.TrySpawn(key); err != nil {
			core.LogError("spawn failed: %v", err)
		}
	}

	state.WorldCamera.Integrate(deltaTime)
	state.Scene.UpdateOrderFromInput()
	state.Scene.Update(deltaTime)

	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)
	packet.View = state.WorldCamera.GetView()
	packet.Projection = g.SystemManager.Renderer().Projection()
	packet.Renderables = state.Scene.Renderables()
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	return nil
}

func (g *TestGame) onKeyPressed(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	if scene.KeyIsReserved(ke.KeyCode) {
		return
	}
	state := g.State.(*gameState)
	if err := state.spawnRequests.Enqueue(ke.KeyCode); err != nil {
		core.LogWarn("spawn queue full, dropping key 0x%X", ke.KeyCode)
	}
}

func (g *TestGame) onKeyReleased(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	if ke.KeyCode != core.KEY_P {
		return
	}
	state := g.State.(*gameState)
	pos := state.WorldCamera.GetPosition()
	rot := state.WorldCamera.GetEulerRotation()
	core.LogInfo("camera pos: [%.3f, %.3f, %.3f] rot: [%.3f, %.3f, %.3f]",
		pos.X, pos.Y, pos.Z,
		math.RadToDeg(rot.X), math.RadToDeg(rot.Y), math.RadToDeg(rot.Z))
}

func (g *TestGame) onObjectSpawned(context core.EventContext) {
	id, ok := context.Data.(string)
	if !ok {
		return
	}
	state := g.State.(*gameState)
	core.LogInfo("spawned cube %s (%d total)", id, len(state.Scene.Objects))
}
