package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/platform"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

var errUniformUpload = errors.New("uniform upload rejected")

// fakeBackend records calls so the frontend systems can be exercised
// without a window or a GPU.
type fakeBackend struct {
	texturesCreated []string
	nextObjectID    uint32

	beginCalls     int
	endCalls       int
	draws          int
	uniformUpdates int
	// 1-based index of the UpdateObjectUniform call that fails; 0 disables.
	failUniformAt int
}

func (f *fakeBackend) Initialize(appName string, width, height uint32, p *platform.Platform) error {
	return nil
}
func (f *fakeBackend) Shutdown() error { return nil }

func (f *fakeBackend) Resized(width, height uint32) error { return nil }

func (f *fakeBackend) TextureCreate(texture *metadata.Texture) error {
	f.texturesCreated = append(f.texturesCreated, texture.Name)
	texture.Generation++
	return nil
}
func (f *fakeBackend) TextureDestroy(texture *metadata.Texture) error { return nil }

func (f *fakeBackend) AcquireObjectResources(texture *metadata.Texture) (uint32, error) {
	id := f.nextObjectID
	f.nextObjectID++
	return id, nil
}
func (f *fakeBackend) RebindObjectTexture(id uint32, texture *metadata.Texture) error { return nil }

func (f *fakeBackend) UpdateObjectUniform(id uint32, mvp math.Mat4) error {
	f.uniformUpdates++
	if f.failUniformAt != 0 && f.uniformUpdates == f.failUniformAt {
		return errUniformUpload
	}
	return nil
}

func (f *fakeBackend) BeginFrame(deltaTime float64) error { f.beginCalls++; return nil }
func (f *fakeBackend) DrawObject(id uint32) error         { f.draws++; return nil }
func (f *fakeBackend) EndFrame(deltaTime float64) error   { f.endCalls++; return nil }

func testPacket(count int) *metadata.RenderPacket {
	packet := &metadata.RenderPacket{
		DeltaTime:  0.016,
		View:       math.NewMat4Identity(),
		Projection: math.NewMat4Identity(),
	}
	for i := 0; i < count; i++ {
		packet.Renderables = append(packet.Renderables, metadata.RenderableData{
			Model:      math.NewMat4Identity(),
			ResourceID: uint32(i),
		})
	}
	return packet
}

func TestDrawFrameDrawsEveryRenderable(t *testing.T) {
	fb := &fakeBackend{}
	rs := &RendererSystem{backend: fb}

	require.NoError(t, rs.DrawFrame(testPacket(3)))
	assert.Equal(t, 1, fb.beginCalls)
	assert.Equal(t, 3, fb.draws)
	assert.Equal(t, 1, fb.endCalls)
}

func TestDrawFrameClosesFrameOnObjectError(t *testing.T) {
	fb := &fakeBackend{failUniformAt: 2}
	rs := &RendererSystem{backend: fb}

	err := rs.DrawFrame(testPacket(3))
	require.ErrorIs(t, err, errUniformUpload)

	// The first object was drawn, the failed one and the rest were not,
	// and the frame was still submitted and presented.
	assert.Equal(t, 1, fb.draws)
	assert.Equal(t, 1, fb.endCalls)
}
