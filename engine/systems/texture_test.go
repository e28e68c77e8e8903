package systems

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/cubana/engine/assets"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

func writeTexturePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 120, G: 80, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestTextureSystem(t *testing.T) (*TextureSystem, *fakeBackend, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "textures"), 0o755))

	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root))
	t.Cleanup(func() { am.Shutdown() })

	fb := &fakeBackend{}
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 8},
		am, &RendererSystem{backend: fb})
	require.NoError(t, err)
	require.NoError(t, ts.Initialize())
	return ts, fb, root
}

func TestPreloadRegistersEverySlot(t *testing.T) {
	ts, fb, root := newTestTextureSystem(t)
	writeTexturePNG(t, filepath.Join(root, "textures", "crate.png"))

	require.NoError(t, ts.Preload([]string{"crate", "bricks"}))
	assert.True(t, ts.IsRegistered("crate"))
	assert.True(t, ts.IsRegistered("bricks"))

	// crate came from disk, bricks fell back to the checkerboard.
	crate, err := ts.Acquire("crate")
	require.NoError(t, err)
	assert.EqualValues(t, 2, crate.Width)
	bricks, err := ts.Acquire("bricks")
	require.NoError(t, err)
	assert.Equal(t, metadata.FallbackTextureDimension, bricks.Width)

	// Default plus the two slots were uploaded during preload; the
	// acquires above resolved from the registry without re-uploading.
	assert.Equal(t, []string{metadata.DEFAULT_TEXTURE_NAME, "crate", "bricks"}, fb.texturesCreated)
}

func TestAcquireDefaultTexture(t *testing.T) {
	ts, _, _ := newTestTextureSystem(t)

	tex, err := ts.Acquire(metadata.DEFAULT_TEXTURE_NAME)
	require.NoError(t, err)
	assert.Same(t, ts.DefaultTexture, tex)
	assert.False(t, ts.IsRegistered(metadata.DEFAULT_TEXTURE_NAME))
}
