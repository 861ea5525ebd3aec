package texture

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Decoder turns image sources into RGBA pixels ready for upload.
type Decoder interface {
	// DecodeFile reads and decodes the image at path.
	DecodeFile(path string) (*image.RGBA, error)
	// DecodeBytes decodes an in-memory image; name is used for format hints and errors.
	DecodeBytes(name string, data []byte) (*image.RGBA, error)
}

// FileDecoder decodes images from the local filesystem.
type FileDecoder struct {
	// MaxSize downsizes images whose larger side exceeds it, keeping aspect ratio. 0 disables.
	MaxSize int
}

// NewFileDecoder creates a decoder with the given size limit.
func NewFileDecoder(maxSize int) *FileDecoder {
	return &FileDecoder{MaxSize: maxSize}
}

// DecodeFile implements Decoder.
func (d *FileDecoder) DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}
	return d.DecodeBytes(path, data)
}

// DecodeBytes implements Decoder.
func (d *FileDecoder) DecodeBytes(name string, data []byte) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image data")
	}

	var (
		img image.Image
		err error
	)

	kind, _ := filetype.Match(data)
	switch {
	case kind != filetype.Unknown && kind.MIME.Type == "image":
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", kind.Extension)
		}
	case strings.EqualFold(filepath.Ext(name), ".tga"):
		img, err = DecodeTGA(data)
		if err != nil {
			return nil, err
		}
	case kind != filetype.Unknown:
		return nil, errors.Errorf("not an image (detected %s)", kind.MIME.Value)
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "unrecognized image format")
		}
	}

	return d.fit(img), nil
}

// fit converts to RGBA and applies the size limit.
func (d *FileDecoder) fit(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if d.MaxSize > 0 && (w > d.MaxSize || h > d.MaxSize) {
		nw, nh := d.MaxSize, d.MaxSize
		if w > h {
			nh = max(1, h*d.MaxSize/w)
		} else {
			nw = max(1, w*d.MaxSize/h)
		}
		return transform.Resize(img, nw, nh, transform.Linear)
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	return clone.AsRGBA(img)
}
