package texture

import (
	"image"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/logger"
)

// Cache maps normalized texture paths to backend handles so each image is
// decoded and uploaded at most once. Failed loads are remembered as well, so a
// broken file costs one decode attempt per cache, not one per mesh.
//
// The cache owns every handle it hands out; Close releases them.
type Cache struct {
	mu       sync.Mutex
	id       uuid.UUID
	decoder  Decoder
	uploader Uploader
	log      *zap.Logger

	entries map[string]uint32 // 0 marks a failed load

	hits     int
	misses   int
	failures int
}

// NewCache creates a texture cache. A nil logger uses the global one.
func NewCache(decoder Decoder, uploader Uploader, log *zap.Logger) *Cache {
	if log == nil {
		log = logger.Named("texture")
	}
	id := uuid.Must(uuid.NewV7())
	return &Cache{
		id:       id,
		decoder:  decoder,
		uploader: uploader,
		log:      log.With(zap.Stringer("cache", id)),
		entries:  make(map[string]uint32),
	}
}

// GetOrLoad returns the texture for path, decoding and uploading it on first use.
// On failure it logs a LoadError and returns a texture with ID 0.
func (c *Cache) GetOrLoad(path string, kind Kind) Texture {
	key := NormalizePath(path)
	return c.getOrLoad(key, kind, func() (*image.RGBA, error) {
		return c.decoder.DecodeFile(key)
	})
}

// GetOrLoadData is GetOrLoad for images that do not live in their own file,
// such as textures embedded in a binary scene. data is only called on a miss.
func (c *Cache) GetOrLoadData(key string, kind Kind, data func() ([]byte, error)) Texture {
	key = NormalizePath(key)
	return c.getOrLoad(key, kind, func() (*image.RGBA, error) {
		raw, err := data()
		if err != nil {
			return nil, err
		}
		return c.decoder.DecodeBytes(key, raw)
	})
}

func (c *Cache) getOrLoad(key string, kind Kind, decode func() (*image.RGBA, error)) Texture {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.entries[key]; ok {
		c.hits++
		return Texture{ID: id, Kind: kind, Path: key}
	}
	c.misses++

	id, err := c.load(decode)
	if err != nil {
		c.failures++
		c.log.Warn("texture load failed",
			zap.String("path", key),
			zap.Stringer("kind", kind),
			zap.Error(&LoadError{Path: key, Err: err}),
		)
	} else {
		c.log.Debug("texture loaded",
			zap.String("path", key),
			zap.Stringer("kind", kind),
			zap.Uint32("id", id),
		)
	}

	c.entries[key] = id
	return Texture{ID: id, Kind: kind, Path: key}
}

func (c *Cache) load(decode func() (*image.RGBA, error)) (uint32, error) {
	img, err := decode()
	if err != nil {
		return 0, err
	}
	return c.uploader.Upload(img)
}

// Len returns the number of cached paths, failed ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses, failures int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.failures
}

// Close releases every uploaded handle and empties the cache.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	released := 0
	for _, id := range c.entries {
		if id != 0 {
			c.uploader.Release(id)
			released++
		}
	}
	c.entries = make(map[string]uint32)
	c.log.Debug("texture cache closed", zap.Int("released", released))
}
