package texture

import (
	"errors"
	"image"
)

// Uploader hands decoded pixels to a graphics backend and frees them again.
type Uploader interface {
	Upload(img *image.RGBA) (uint32, error)
	Release(id uint32)
}

// MemoryUploader is a headless Uploader that keeps pixels in memory and hands
// out sequential non-zero handles. Tools and tests use it in place of a GPU.
type MemoryUploader struct {
	next   uint32
	images map[uint32]*image.RGBA
}

// NewMemoryUploader creates an empty headless uploader.
func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{images: make(map[uint32]*image.RGBA)}
}

// Upload implements Uploader.
func (u *MemoryUploader) Upload(img *image.RGBA) (uint32, error) {
	if img == nil {
		return 0, errors.New("nil image")
	}
	u.next++
	u.images[u.next] = img
	return u.next, nil
}

// Release implements Uploader.
func (u *MemoryUploader) Release(id uint32) {
	delete(u.images, id)
}

// Image returns the pixels stored under id.
func (u *MemoryUploader) Image(id uint32) (*image.RGBA, bool) {
	img, ok := u.images[id]
	return img, ok
}

// Live returns how many handles have not been released.
func (u *MemoryUploader) Live() int {
	return len(u.images)
}
