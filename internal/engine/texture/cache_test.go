package texture

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingDecoder records every decode call and fails for paths in fail.
type countingDecoder struct {
	files map[string]int
	bytes map[string]int
	fail  map[string]bool
}

func newCountingDecoder() *countingDecoder {
	return &countingDecoder{
		files: make(map[string]int),
		bytes: make(map[string]int),
		fail:  make(map[string]bool),
	}
}

func (d *countingDecoder) DecodeFile(path string) (*image.RGBA, error) {
	d.files[path]++
	if d.fail[path] {
		return nil, errors.New("corrupt")
	}
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (d *countingDecoder) DecodeBytes(name string, data []byte) (*image.RGBA, error) {
	d.bytes[name]++
	if d.fail[name] {
		return nil, errors.New("corrupt")
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestGetOrLoadDecodesOnce(t *testing.T) {
	dec := newCountingDecoder()
	up := NewMemoryUploader()
	c := NewCache(dec, up, zap.NewNop())

	first := c.GetOrLoad("a.png", Diffuse)
	second := c.GetOrLoad("a.png", Diffuse)

	assert.True(t, first.Valid())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, dec.files["a.png"])
	assert.Equal(t, 1, up.Live())

	hits, misses, failures := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 0, failures)
}

func TestGetOrLoadNormalizesPath(t *testing.T) {
	dec := newCountingDecoder()
	c := NewCache(dec, NewMemoryUploader(), zap.NewNop())

	a := c.GetOrLoad("textures/../textures/wood.png", Diffuse)
	b := c.GetOrLoad("textures/./wood.png", Diffuse)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "textures/wood.png", a.Path)
	assert.Equal(t, 1, dec.files["textures/wood.png"])
	assert.Equal(t, 1, c.Len())
}

func TestGetOrLoadSharesHandleAcrossSlots(t *testing.T) {
	dec := newCountingDecoder()
	c := NewCache(dec, NewMemoryUploader(), zap.NewNop())

	diffuse := c.GetOrLoad("shared.png", Diffuse)
	specular := c.GetOrLoad("shared.png", Specular)

	assert.Equal(t, diffuse.ID, specular.ID)
	assert.Equal(t, Diffuse, diffuse.Kind)
	assert.Equal(t, Specular, specular.Kind)
	assert.Equal(t, 1, dec.files["shared.png"])
}

func TestGetOrLoadDistinctPaths(t *testing.T) {
	c := NewCache(newCountingDecoder(), NewMemoryUploader(), zap.NewNop())

	a := c.GetOrLoad("a.png", Diffuse)
	b := c.GetOrLoad("b.png", Diffuse)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, c.Len())
}

func TestGetOrLoadFailureReturnsSentinel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	dec := newCountingDecoder()
	dec.fail["broken.png"] = true
	up := NewMemoryUploader()
	c := NewCache(dec, up, zap.New(core))

	tex := c.GetOrLoad("broken.png", Diffuse)
	again := c.GetOrLoad("broken.png", Diffuse)

	assert.False(t, tex.Valid())
	assert.Equal(t, uint32(0), again.ID)
	assert.Equal(t, 1, dec.files["broken.png"], "failed loads are remembered")
	assert.Equal(t, 0, up.Live())

	entries := logs.FilterMessage("texture load failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broken.png", entries[0].ContextMap()["path"])

	_, _, failures := c.Stats()
	assert.Equal(t, 1, failures)
}

func TestGetOrLoadDataOnlyReadsOnMiss(t *testing.T) {
	dec := newCountingDecoder()
	c := NewCache(dec, NewMemoryUploader(), zap.NewNop())

	reads := 0
	data := func() ([]byte, error) {
		reads++
		return []byte{1, 2, 3}, nil
	}

	a := c.GetOrLoadData("scene.glb#image0", Diffuse, data)
	b := c.GetOrLoadData("scene.glb#image0", Diffuse, data)

	assert.True(t, a.Valid())
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, reads)
	assert.Equal(t, 1, dec.bytes["scene.glb#image0"])
}

func TestGetOrLoadDataReadError(t *testing.T) {
	dec := newCountingDecoder()
	c := NewCache(dec, NewMemoryUploader(), zap.NewNop())

	tex := c.GetOrLoadData("scene.glb#image3", Specular, func() ([]byte, error) {
		return nil, errors.New("buffer view out of range")
	})

	assert.False(t, tex.Valid())
	assert.Equal(t, Specular, tex.Kind)
	assert.Equal(t, 0, dec.bytes["scene.glb#image3"])
}

func TestCloseReleasesHandles(t *testing.T) {
	dec := newCountingDecoder()
	dec.fail["bad.png"] = true
	up := NewMemoryUploader()
	c := NewCache(dec, up, zap.NewNop())

	c.GetOrLoad("a.png", Diffuse)
	c.GetOrLoad("b.png", Specular)
	c.GetOrLoad("bad.png", Diffuse)
	require.Equal(t, 2, up.Live())

	c.Close()

	assert.Equal(t, 0, up.Live())
	assert.Equal(t, 0, c.Len())

	// A closed cache starts over.
	c.GetOrLoad("a.png", Diffuse)
	assert.Equal(t, 2, dec.files["a.png"])
}

func TestKindUniformName(t *testing.T) {
	assert.Equal(t, "texture_diffuse", Diffuse.UniformName())
	assert.Equal(t, "texture_specular", Specular.UniformName())
	assert.Equal(t, "specular", Specular.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestLoadErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &LoadError{Path: "x.png", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "x.png")
}
