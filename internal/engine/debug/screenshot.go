package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Screenshotter writes framebuffer captures as timestamped PNG files.
type Screenshotter struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// NewScreenshotter creates a screenshotter writing to dir.
func NewScreenshotter(dir, prefix string) *Screenshotter {
	return &Screenshotter{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture would be written to.
func (s *Screenshotter) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.Prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// CaptureRGBA saves raw RGBA pixels read bottom-up from a GL framebuffer
// and returns the written path.
func (s *Screenshotter) CaptureRGBA(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", errors.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return s.save(img)
}

func (s *Screenshotter) save(img image.Image) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", errors.Wrap(err, "create screenshot dir")
		}
	}
	name := s.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", errors.Wrap(err, "create screenshot")
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", errors.Wrap(err, "encode screenshot")
	}
	return name, nil
}
