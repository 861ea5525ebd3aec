package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/scenepick/internal/engine/texture"
)

// docDecoder serves an in-memory document regardless of path.
type docDecoder struct {
	doc   *gltf.Document
	calls int
}

func (d *docDecoder) Decode(string) (*gltf.Document, error) {
	d.calls++
	return d.doc, nil
}

var quadPositions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

func addQuadMesh(doc *gltf.Document, name string, attrs map[string]uint32, indices *uint32) uint32 {
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Indices:    indices,
		}},
	})
	return uint32(len(doc.Meshes) - 1)
}

func quadDoc() *gltf.Document {
	doc := gltf.NewDocument()
	attrs := map[string]uint32{
		"POSITION":   modeler.WritePosition(doc, quadPositions),
		"NORMAL":     modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}),
		"TEXCOORD_0": modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}),
	}
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2, 2, 3, 0})
	mesh := addQuadMesh(doc, "quad", attrs, gltf.Index(idx))
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "root", Mesh: gltf.Index(mesh)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func newObservedImporter(dec SceneDecoder, cache *texture.Cache) (*Importer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewImporter(dec, cache, zap.New(core)), logs
}

func newTestCache() (*texture.Cache, *texture.MemoryUploader) {
	up := texture.NewMemoryUploader()
	return texture.NewCache(texture.NewFileDecoder(0), up, zap.NewNop()), up
}

func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.Set(i%2, i/2, c)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImportQuad(t *testing.T) {
	im, _ := newObservedImporter(&docDecoder{doc: quadDoc()}, nil)

	meshes, err := im.Import("quad.gltf")
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, "quad/0", m.Name)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, m.Indices)
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, [3]float32{1, 1, 0}, m.Vertices[2].Position)
	assert.Equal(t, [3]float32{0, 0, 1}, m.Vertices[2].Normal)
	assert.Equal(t, [2]float32{1, 1}, m.Vertices[2].TexCoord)
	assert.Equal(t, [3]float32{0, 0, 0}, m.Bounds.Min)
	assert.Equal(t, [3]float32{1, 1, 0}, m.Bounds.Max)
	assert.Empty(t, m.Textures)
	assert.False(t, m.GPU.Uploaded())
}

func TestImportMissingFile(t *testing.T) {
	im, logs := newObservedImporter(nil, nil)

	meshes, err := im.Import(filepath.Join(t.TempDir(), "nope.glb"))
	assert.Nil(t, meshes)

	var ierr *ImportError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "decode failed", ierr.Reason)

	entries := logs.FilterMessage("scene import failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap(), "import")
}

func TestImportFromGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	require.NoError(t, gltf.SaveBinary(quadDoc(), path))

	im, _ := newObservedImporter(nil, nil)
	meshes, err := im.Import(path)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Len(t, meshes[0].Vertices, 4)
}

func TestImportPreOrder(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, quadPositions[:3])
	for _, name := range []string{"a", "b", "c", "d"} {
		addQuadMesh(doc, name, map[string]uint32{"POSITION": pos}, nil)
	}
	// a -> (b -> c), d
	doc.Nodes = []*gltf.Node{
		{Name: "a", Mesh: gltf.Index(0), Children: []uint32{1, 3}},
		{Name: "b", Mesh: gltf.Index(1), Children: []uint32{2}},
		{Name: "c", Mesh: gltf.Index(2)},
		{Name: "d", Mesh: gltf.Index(3)},
	}
	doc.Scenes[0].Nodes = []uint32{0}

	im, _ := newObservedImporter(&docDecoder{doc: doc}, nil)
	meshes, err := im.Import("tree.gltf")
	require.NoError(t, err)

	var names []string
	for _, m := range meshes {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a/0", "b/0", "c/0", "d/0"}, names)
}

func TestImportSeveralRootNodes(t *testing.T) {
	doc := quadDoc()
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "second", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = []uint32{0, 1}

	im, _ := newObservedImporter(&docDecoder{doc: doc}, nil)
	meshes, err := im.Import("two.gltf")
	require.NoError(t, err)
	assert.Len(t, meshes, 2)
}

func TestImportMissingAttributesDefaultToZero(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, quadPositions[:3])
	addQuadMesh(doc, "bare", map[string]uint32{"POSITION": pos}, nil)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = []uint32{0}

	im, _ := newObservedImporter(&docDecoder{doc: doc}, nil)
	meshes, err := im.Import("bare.gltf")
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	for _, v := range m.Vertices {
		assert.Equal(t, [2]float32{}, v.TexCoord)
		assert.Equal(t, [3]float32{}, v.Normal)
	}
}

func TestImportSkipsMalformedPrimitive(t *testing.T) {
	doc := quadDoc()
	pos := doc.Meshes[0].Primitives[0].Attributes["POSITION"]
	bad := modeler.WriteIndices(doc, []uint32{0, 1, 9})
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, &gltf.Primitive{
		Attributes: map[string]uint32{"POSITION": pos},
		Indices:    gltf.Index(bad),
	})
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, &gltf.Primitive{
		Attributes: map[string]uint32{"POSITION": pos},
		Mode:       gltf.PrimitiveLines,
	})

	im, logs := newObservedImporter(&docDecoder{doc: doc}, nil)
	meshes, err := im.Import("bad.gltf")
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, "quad/0", meshes[0].Name)
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed primitive").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping non-triangle primitive").Len())
}

func TestImportIncompleteScene(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*gltf.Document)
		reason string
	}{
		{"dangling node", func(d *gltf.Document) { d.Scenes[0].Nodes = []uint32{7} }, "incomplete scene"},
		{"dangling mesh", func(d *gltf.Document) { d.Nodes[0].Mesh = gltf.Index(4) }, "incomplete scene"},
		{"node cycle", func(d *gltf.Document) { d.Nodes[0].Children = []uint32{0} }, "incomplete scene"},
		{"dangling accessor", func(d *gltf.Document) {
			d.Meshes[0].Primitives[0].Attributes["NORMAL"] = 99
		}, "incomplete scene"},
		{"no scene nodes", func(d *gltf.Document) { d.Scenes[0].Nodes = nil }, "no root node"},
		{"no scenes", func(d *gltf.Document) { d.Scenes = nil; d.Scene = nil }, "no root node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := quadDoc()
			tt.mutate(doc)
			im, logs := newObservedImporter(&docDecoder{doc: doc}, nil)

			meshes, err := im.Import("broken.gltf")
			assert.Nil(t, meshes)
			var ierr *ImportError
			require.True(t, errors.As(err, &ierr), "got %v", err)
			assert.Equal(t, tt.reason, ierr.Reason)
			assert.Equal(t, "broken.gltf", ierr.Path)
			assert.Equal(t, 1, logs.FilterMessage("scene import failed").Len())
		})
	}
}

func addMaterial(doc *gltf.Document, diffuseImage uint32, specularImage *uint32) uint32 {
	doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(diffuseImage)})
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorTexture: &gltf.TextureInfo{Index: uint32(len(doc.Textures) - 1)},
	}
	if specularImage != nil {
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: specularImage})
		pbr.MetallicRoughnessTexture = &gltf.TextureInfo{Index: uint32(len(doc.Textures) - 1)}
	}
	doc.Materials = append(doc.Materials, &gltf.Material{PBRMetallicRoughness: pbr})
	return uint32(len(doc.Materials) - 1)
}

func TestImportSharedExternalTextureLoadedOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tex"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tex", "wall.png"), pngBytes(t, color.RGBA{R: 255, A: 255}), 0o644))

	doc := quadDoc()
	doc.Images = append(doc.Images, &gltf.Image{URI: "tex/wall.png"})
	first := addMaterial(doc, 0, nil)
	second := addMaterial(doc, 0, gltf.Index(0))
	doc.Meshes[0].Primitives[0].Material = gltf.Index(first)
	pos := doc.Meshes[0].Primitives[0].Attributes["POSITION"]
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, &gltf.Primitive{
		Attributes: map[string]uint32{"POSITION": pos},
		Material:   gltf.Index(second),
	})

	cache, up := newTestCache()
	im, _ := newObservedImporter(&docDecoder{doc: doc}, cache)
	meshes, err := im.Import(filepath.Join(dir, "scene.gltf"))
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	require.Len(t, meshes[0].Textures, 1)
	require.Len(t, meshes[1].Textures, 2)
	diffuse := meshes[0].Textures[0]
	assert.True(t, diffuse.Valid())
	assert.Equal(t, texture.Diffuse, diffuse.Kind)
	assert.Equal(t, texture.NormalizePath(filepath.Join(dir, "tex", "wall.png")), diffuse.Path)

	assert.Equal(t, diffuse.ID, meshes[1].Textures[0].ID)
	assert.Equal(t, diffuse.ID, meshes[1].Textures[1].ID)
	assert.Equal(t, texture.Specular, meshes[1].Textures[1].Kind)
	assert.Equal(t, 1, up.Live())
	assert.Equal(t, 1, cache.Len())
}

func TestImportEmbeddedTexture(t *testing.T) {
	doc := quadDoc()
	img, err := modeler.WriteImage(doc, "checker", "image/png", bytes.NewReader(pngBytes(t, color.RGBA{G: 255, A: 255})))
	require.NoError(t, err)
	mat := addMaterial(doc, img, nil)
	doc.Meshes[0].Primitives[0].Material = gltf.Index(mat)

	cache, up := newTestCache()
	im, _ := newObservedImporter(&docDecoder{doc: doc}, cache)
	meshes, err := im.Import("embedded.glb")
	require.NoError(t, err)
	require.Len(t, meshes[0].Textures, 1)

	tex := meshes[0].Textures[0]
	assert.True(t, tex.Valid())
	assert.Equal(t, "embedded.glb#image0", tex.Path)
	rgba, ok := up.Image(tex.ID)
	require.True(t, ok)
	assert.Equal(t, uint8(255), rgba.RGBAAt(0, 0).G)
}

func TestImportMissingTextureFileKeepsMesh(t *testing.T) {
	doc := quadDoc()
	doc.Images = append(doc.Images, &gltf.Image{URI: "missing.png"})
	doc.Meshes[0].Primitives[0].Material = gltf.Index(addMaterial(doc, 0, nil))

	cache, _ := newTestCache()
	im, _ := newObservedImporter(&docDecoder{doc: doc}, cache)
	meshes, err := im.Import(filepath.Join(t.TempDir(), "scene.gltf"))
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	require.Len(t, meshes[0].Textures, 1)
	assert.False(t, meshes[0].Textures[0].Valid())
	_, _, failures := cache.Stats()
	assert.Equal(t, 1, failures)
}

func TestImportNoMaterialHasNoTextures(t *testing.T) {
	cache, up := newTestCache()
	im, _ := newObservedImporter(&docDecoder{doc: quadDoc()}, cache)
	meshes, err := im.Import("plain.gltf")
	require.NoError(t, err)
	assert.Empty(t, meshes[0].Textures)
	assert.Zero(t, up.Live())
}

func TestImportMaterialWithoutTextures(t *testing.T) {
	doc := quadDoc()
	doc.Materials = append(doc.Materials, &gltf.Material{Name: "flat"})
	doc.Meshes[0].Primitives[0].Material = gltf.Index(0)

	cache, _ := newTestCache()
	im, _ := newObservedImporter(&docDecoder{doc: doc}, cache)
	meshes, err := im.Import("flat.gltf")
	require.NoError(t, err)
	assert.Empty(t, meshes[0].Textures)
}

func TestImportErrorMessage(t *testing.T) {
	err := &ImportError{Path: "a.glb", Reason: "decode failed", Err: errors.New("eof")}
	assert.Equal(t, "import a.glb: decode failed: eof", err.Error())
	assert.Equal(t, "import a.glb: no root node", (&ImportError{Path: "a.glb", Reason: "no root node"}).Error())
}
