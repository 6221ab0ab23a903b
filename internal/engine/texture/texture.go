// Package texture decodes images and uploads them as GPU textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/logger"
)

// ErrDecode is returned when image data cannot be decoded.
var ErrDecode = errors.New("texture decode failed")

// Fallback colors for maps that fail to load. They encode a flat surface:
// zero distortion for a du/dv map, straight up for a normal map.
var (
	FlatDuDv   = color.RGBA{R: 128, G: 128, B: 0, A: 255}
	FlatNormal = color.RGBA{R: 128, G: 128, B: 255, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Options controls how a texture is read and sampled.
type Options struct {
	Wrap    int32
	Mipmaps bool
	// Read fetches file contents; nil reads from disk.
	Read func(path string) ([]byte, error)
}

// DefaultOptions repeats in both directions and builds mipmaps.
func DefaultOptions() Options {
	return Options{Wrap: gfx.Repeat, Mipmaps: true}
}

// Texture is an RGBA texture resident on the GPU.
type Texture struct {
	dev      gfx.Device
	id       uint32
	name     string
	width    int
	height   int
	fallback bool
}

// Decode decodes PNG, JPEG, BMP, TIFF, WebP or TGA data. name is used to
// pick the TGA decoder by extension.
func Decode(data []byte, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	return img, nil
}

// ToRGBA converts img to RGBA. With flipY the first row of the result is the
// bottom row of img, which is the order OpenGL expects.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if flipY {
		FlipRows(rgba.Pix, rgba.Stride, b.Dy())
	}
	return rgba
}

// FlipRows reverses the order of rows in a tightly packed pixel buffer.
func FlipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Upload creates a texture from RGBA pixels.
func Upload(dev gfx.Device, name string, img *image.RGBA, opts Options) *Texture {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	t := &Texture{dev: dev, name: name, width: w, height: h, id: dev.GenTexture()}

	wrap := opts.Wrap
	if wrap == 0 {
		wrap = gfx.Repeat
	}
	minFilter := gfx.Linear
	if opts.Mipmaps {
		minFilter = gfx.LinearMipmapLinear
	}

	dev.BindTexture(t.id)
	dev.TexImage2D(gfx.RGBA8, int32(w), int32(h), gfx.RGBA, gfx.UnsignedByte, img.Pix)
	dev.TexParameteri(gfx.TextureWrapS, wrap)
	dev.TexParameteri(gfx.TextureWrapT, wrap)
	dev.TexParameteri(gfx.TextureMinFilter, minFilter)
	dev.TexParameteri(gfx.TextureMagFilter, gfx.Linear)
	if opts.Mipmaps {
		dev.GenerateMipmap()
	}
	dev.BindTexture(0)

	return t
}

// Load reads, decodes, flips and uploads an image file.
func Load(dev gfx.Device, path string, opts Options) (*Texture, error) {
	read := opts.Read
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	return Upload(dev, path, ToRGBA(img, true), opts), nil
}

// Solid creates a 1x1 texture of a single color.
func Solid(dev gfx.Device, name string, c color.RGBA) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return Upload(dev, name, img, Options{Wrap: gfx.Repeat})
}

// LoadOrFallback loads path, or logs the failure and returns a 1x1 texture
// of the fallback color. It never returns an invalid handle.
func LoadOrFallback(dev gfx.Device, path string, opts Options, fallback color.RGBA) *Texture {
	t, err := Load(dev, path, opts)
	if err == nil {
		return t
	}

	logger.Named("texture").Warn("using fallback texture",
		zap.String("path", path),
		zap.Error(err))

	t = Solid(dev, path, fallback)
	t.fallback = true
	return t
}

// ID returns the texture handle.
func (t *Texture) ID() uint32 { return t.id }

// Name returns the source path or name.
func (t *Texture) Name() string { return t.name }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Fallback reports whether t replaced a texture that failed to load.
func (t *Texture) Fallback() bool { return t.fallback }

// Destroy deletes the texture. Safe to call more than once.
func (t *Texture) Destroy() {
	if t.id != 0 {
		t.dev.DeleteTexture(t.id)
		t.id = 0
	}
}
