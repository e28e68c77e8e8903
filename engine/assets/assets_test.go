package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

func writeTestPNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestAssetManager(t *testing.T) (*AssetManager, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "textures"), 0o755))

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root))
	t.Cleanup(func() { am.Shutdown() })
	return am, root
}

func TestLoadTexture(t *testing.T) {
	am, root := newTestAssetManager(t)
	writeTestPNG(t, filepath.Join(root, "textures", "crate.png"), color.RGBA{R: 200, G: 50, B: 10, A: 255})

	tex, err := am.LoadTexture("crate")
	require.NoError(t, err)
	assert.Equal(t, "crate", tex.Name)
	assert.EqualValues(t, 2, tex.Width)
	assert.EqualValues(t, 2, tex.Height)
	assert.Equal(t, metadata.TextureChannelCount, tex.ChannelCount)
	require.Len(t, tex.Pixels, 2*2*4)
	assert.Equal(t, uint8(200), tex.Pixels[0])
	assert.Equal(t, uint8(255), tex.Pixels[3])
}

func TestLoadTextureMissing(t *testing.T) {
	am, _ := newTestAssetManager(t)
	_, err := am.LoadTexture("nope")
	assert.Error(t, err)
}

func TestTextureNameForPath(t *testing.T) {
	am, root := newTestAssetManager(t)

	assert.Equal(t, "crate", am.TextureNameForPath(filepath.Join(root, "textures", "crate.png")))
	assert.Equal(t, "bricks", am.TextureNameForPath(filepath.Join(root, "textures", "bricks.jpeg")))
	// Non-texture files and paths outside the textures dir map to nothing.
	assert.Empty(t, am.TextureNameForPath(filepath.Join(root, "textures", "notes.txt")))
	assert.Empty(t, am.TextureNameForPath(filepath.Join(root, "other", "crate.png")))
	assert.Empty(t, am.TextureNameForPath("/elsewhere/crate.png"))
}

func TestPendingChangesDrains(t *testing.T) {
	am, _ := newTestAssetManager(t)

	am.mutex.Lock()
	am.pending = append(am.pending, "a", "b")
	am.mutex.Unlock()

	assert.Equal(t, []string{"a", "b"}, am.PendingChanges())
	assert.Nil(t, am.PendingChanges())
}
