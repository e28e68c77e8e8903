package metadata

const (
	/** @brief The default (fallback) texture name. */
	DEFAULT_TEXTURE_NAME string = "default"
	/** @brief The side length in pixels of the generated fallback texture. */
	FallbackTextureDimension uint32 = 128
	/** @brief The number of channels of every texture handled by the engine. */
	TextureChannelCount uint8 = 4
)

/** @brief An invalid resource identifier. */
const InvalidID uint32 = 0xFFFFFFFF

/**
 * @brief Represents a texture: decoded RGBA8 pixel data plus the opaque
 * GPU-side object created for it by the renderer backend.
 */
type Texture struct {
	/** @brief The texture Name, which doubles as its lookup key. */
	Name string
	/** @brief The texture Width in pixels. */
	Width uint32
	/** @brief The texture Height in pixels. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief The decoded pixel data, Width*Height*ChannelCount bytes. */
	Pixels []uint8
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief Backend-owned GPU object; opaque to everything else. */
	InternalData interface{}
}

/**
 * @brief Returns the byte size of one row of pixel data
 * (Width * ChannelCount).
 */
func (t *Texture) Pitch() uint32 {
	return uint32(t.ChannelCount) * t.Width
}

// Fallback checkerboard shades.
const (
	fallbackLight uint8 = 230
	fallbackDark  uint8 = 35
)

/**
 * @brief Generates the deterministic fallback texture: a 128x128 RGBA8
 * checkerboard of 16-pixel tiles. Pixel (x, y) is light where
 * ((x>>4)&1) XOR ((y>>4)&1) is nonzero, dark otherwise. Substituted for
 * any texture that fails to load.
 */
func GenerateFallbackPixels() []uint8 {
	dim := FallbackTextureDimension
	pixels := make([]uint8, dim*dim*uint32(TextureChannelCount))
	for y := uint32(0); y < dim; y++ {
		for x := uint32(0); x < dim; x++ {
			shade := fallbackDark
			if (x>>4)&1^(y>>4)&1 != 0 {
				shade = fallbackLight
			}
			i := (y*dim + x) * uint32(TextureChannelCount)
			pixels[i+0] = shade
			pixels[i+1] = shade
			pixels[i+2] = shade
			pixels[i+3] = 255
		}
	}
	return pixels
}

/**
 * @brief Creates the fallback Texture around freshly generated checkerboard
 * pixels.
 */
func NewFallbackTexture(name string) *Texture {
	return &Texture{
		Name:         name,
		Width:        FallbackTextureDimension,
		Height:       FallbackTextureDimension,
		ChannelCount: TextureChannelCount,
		Pixels:       GenerateFallbackPixels(),
	}
}
