// Package render provides the Ebiten-based overlay window for go-bongo.
// This file implements sprite loading for PNG, JPEG, GIF, BMP and WebP images.
package render

import (
	"errors"
	"fmt"
	"image"
	// Register image decoders for common formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes an image from r in any registered format.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// LoadImageFile decodes the image at path.
func LoadImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ScaleImage returns img resized to w x h with Catmull-Rom resampling.
// Images already at that size are returned unchanged.
func ScaleImage(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ScaleMask resizes img to w x h by nearest-neighbor sampling, so every
// destination pixel keeps the exact alpha of a source pixel and the
// transparent region is not widened or narrowed by filtering.
func ScaleMask(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ImageCache caches decoded images by path so the shape mask and the
// background sprite share one decode.
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

// NewImageCache creates a new image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		cache: make(map[string]image.Image),
	}
}

// Load decodes an image from a file, using the cache if available.
// Uses double-checked locking to prevent race conditions and duplicate loads.
func (ic *ImageCache) Load(path string) (image.Image, error) {
	ic.mu.RLock()
	if img, ok := ic.cache[path]; ok {
		ic.mu.RUnlock()
		return img, nil
	}
	ic.mu.RUnlock()

	ic.mu.Lock()
	defer ic.mu.Unlock()

	if img, ok := ic.cache[path]; ok {
		return img, nil
	}

	img, err := LoadImageFile(path)
	if err != nil {
		return nil, err
	}
	ic.cache[path] = img
	return img, nil
}

// Get retrieves an image from the cache without loading.
// Returns nil if the image is not cached.
func (ic *ImageCache) Get(path string) image.Image {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.cache[path]
}

// Clear removes all images from the cache.
func (ic *ImageCache) Clear() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.cache = make(map[string]image.Image)
}

// Size returns the number of images in the cache.
func (ic *ImageCache) Size() int {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return len(ic.cache)
}

// SpritePaths names the five sprite files.
type SpritePaths struct {
	Background string
	LeftUp     string
	LeftDown   string
	RightUp    string
	RightDown  string
}

// Frames holds decoded sprites scaled to the window size. Every sprite covers
// the whole window and is drawn at the origin.
type Frames struct {
	Background image.Image
	LeftUp     image.Image
	LeftDown   image.Image
	RightUp    image.Image
	RightDown  image.Image
}

// LoadFrames decodes every sprite through cache and scales it to w x h.
// All failures are reported together.
func LoadFrames(cache *ImageCache, paths SpritePaths, w, h int) (*Frames, error) {
	if cache == nil {
		cache = NewImageCache()
	}

	var (
		frames Frames
		errs   []error
	)
	for _, s := range []struct {
		path   string
		target *image.Image
	}{
		{paths.Background, &frames.Background},
		{paths.LeftUp, &frames.LeftUp},
		{paths.LeftDown, &frames.LeftDown},
		{paths.RightUp, &frames.RightUp},
		{paths.RightDown, &frames.RightDown},
	} {
		img, err := cache.Load(s.path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*s.target = ScaleImage(img, w, h)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to load sprites: %w", err)
	}
	return &frames, nil
}

// SpriteSet holds the GPU-side copies of Frames.
type SpriteSet struct {
	Background *ebiten.Image
	LeftUp     *ebiten.Image
	LeftDown   *ebiten.Image
	RightUp    *ebiten.Image
	RightDown  *ebiten.Image
}

// NewSpriteSet uploads frames. Nil frames stay nil and are skipped when drawing.
func NewSpriteSet(f *Frames) *SpriteSet {
	upload := func(img image.Image) *ebiten.Image {
		if img == nil {
			return nil
		}
		return ebiten.NewImageFromImage(img)
	}
	return &SpriteSet{
		Background: upload(f.Background),
		LeftUp:     upload(f.LeftUp),
		LeftDown:   upload(f.LeftDown),
		RightUp:    upload(f.RightUp),
		RightDown:  upload(f.RightDown),
	}
}

// Deallocate releases the GPU images. It is a no-op on a nil set.
func (s *SpriteSet) Deallocate() {
	if s == nil {
		return
	}
	for _, img := range []*ebiten.Image{s.Background, s.LeftUp, s.LeftDown, s.RightUp, s.RightDown} {
		if img != nil {
			img.Deallocate()
		}
	}
}
