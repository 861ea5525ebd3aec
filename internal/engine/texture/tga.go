package texture

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// MaxTGADimension bounds either side of a TGA image.
const MaxTGADimension = 16384

// tgaMaxRun is the pixel count of the longest RLE packet.
const tgaMaxRun = 128

// DecodeTGA decodes a true-color TGA image, uncompressed (type 2) or RLE (type 10),
// at 24 or 32 bits per pixel. TGA has no magic number, so callers route here by extension.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header truncated")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, errors.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, errors.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.Errorf("tga: empty image %dx%d", width, height)
	}
	if width > MaxTGADimension || height > MaxTGADimension {
		return nil, errors.Errorf("tga: image %dx%d exceeds %d", width, height, MaxTGADimension)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errors.New("tga: data truncated")
	}

	src := data[offset:]
	pixelSize := bpp / 8
	// The header must be backed by enough payload before any allocation.
	if maxPixels(imageType, len(src), pixelSize) < width*height {
		return nil, errors.Errorf("tga: pixel data truncated for %dx%d", width, height)
	}

	d := &tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         src,
		width:       width,
		height:      height,
		pixelSize:   pixelSize,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		d.decodeRaw()
	} else {
		d.decodeRLE()
	}

	return d.img, nil
}

// maxPixels is the most pixels n payload bytes can describe.
// An RLE stream is densest as back-to-back run packets of tgaMaxRun pixels.
func maxPixels(imageType, n, pixelSize int) int {
	if imageType == TGATypeUncompressed {
		return n / pixelSize
	}
	return (n + pixelSize) / (1 + pixelSize) * tgaMaxRun
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	width       int
	height      int
	pixelSize   int
	topToBottom bool
}

// next reads one BGR(A) pixel from the source stream.
func (d *tgaDecoder) next() (color.RGBA, bool) {
	if d.pos+d.pixelSize > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.pixelSize]
	d.pos += d.pixelSize

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.pixelSize == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores the pixel with linear index i, honoring the origin bit.
func (d *tgaDecoder) put(i int, c color.RGBA) {
	x := i % d.width
	y := i / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

// decodeRaw expects the payload length to have been checked by DecodeTGA.
func (d *tgaDecoder) decodeRaw() {
	total := d.width * d.height
	for i := 0; i < total; i++ {
		c, _ := d.next()
		d.put(i, c)
	}
}

// decodeRLE fills as many pixels as the stream provides; a short stream leaves
// the remainder transparent rather than failing the whole texture.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	i := 0

	for i < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.next()
			if !ok {
				return
			}
			for n := 0; n < count && i < total; n++ {
				d.put(i, c)
				i++
			}
			continue
		}

		for n := 0; n < count && i < total; n++ {
			c, ok := d.next()
			if !ok {
				return
			}
			d.put(i, c)
			i++
		}
	}
}
