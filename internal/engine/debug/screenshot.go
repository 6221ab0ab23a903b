// Package debug provides developer capture tools.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Faultbox/island/internal/engine/framebuffer"
	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/texture"
)

// ScreenshotCapture writes PNG screenshots of the window and the water targets.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// OutputDir returns the directory screenshots are written to.
func (sc *ScreenshotCapture) OutputDir() string {
	return sc.outputDir
}

// GenerateFilename returns a unique path for a capture of the named source.
// A random suffix keeps captures taken within the same second apart.
func (sc *ScreenshotCapture) GenerateFilename(source string) string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	id := uuid.NewString()[:8]
	filename := fmt.Sprintf("%s_%s_%s_%s.png", sc.prefix, source, timestamp, id)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// CaptureFromPixels saves bottom-up RGBA pixels as returned by ReadPixels.
// The image is flipped vertically since OpenGL has origin at bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(source string, pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	texture.FlipRows(img.Pix, img.Stride, height)

	return sc.CaptureFromImage(source, img)
}

// CaptureFromImage saves img as a PNG.
func (sc *ScreenshotCapture) CaptureFromImage(source string, img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename(source)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// CaptureFrame saves the window and both water targets. The window
// framebuffer is bound again on return.
func (sc *ScreenshotCapture) CaptureFrame(dev gfx.Device, targets *framebuffer.Manager) ([]string, error) {
	var files []string

	for _, t := range []*framebuffer.Target{targets.Reflection, targets.Refraction} {
		w, h := t.Size()
		path, err := sc.CaptureFromPixels(t.Name(), t.ReadPixels(), int(w), int(h))
		if err != nil {
			targets.Unbind()
			return files, err
		}
		files = append(files, path)
	}

	targets.Unbind()
	w, h := targets.DrawableSize()
	path, err := sc.CaptureFromPixels("window", dev.ReadPixels(0, 0, w, h), int(w), int(h))
	if err != nil {
		return files, err
	}
	return append(files, path), nil
}
