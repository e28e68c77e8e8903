package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

// ImageLoader decodes texture image files (PNG or JPEG) into the RGBA8
// pixel layout every engine texture uses.
type ImageLoader struct{}

// Load reads and decodes the image at path. Whatever the source pixel
// format, the result is converted to tightly packed RGBA8.
func (il *ImageLoader) Load(path string) (*metadata.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)

	return &metadata.Texture{
		Name:         path,
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		ChannelCount: metadata.TextureChannelCount,
		Pixels:       rgba.Pix,
	}, nil
}
