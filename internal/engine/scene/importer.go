package scene

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/engine/texture"
	"github.com/Faultbox/scenepick/internal/logger"
)

// SceneDecoder turns a scene file into a glTF document.
type SceneDecoder interface {
	Decode(path string) (*gltf.Document, error)
}

// GLTFDecoder reads .gltf and .glb files from disk, including external buffers.
type GLTFDecoder struct{}

// Decode implements SceneDecoder.
func (GLTFDecoder) Decode(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return doc, nil
}

// ImportError reports a scene that could not be imported at all.
type ImportError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("import %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("import %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

var errSkipPrimitive = errors.New("primitive skipped")

// Importer flattens a scene graph into MeshData records, resolving textures
// through a shared cache.
type Importer struct {
	decoder  SceneDecoder
	textures *texture.Cache
	log      *zap.Logger
}

// NewImporter creates an importer. A nil decoder reads glTF from disk; a nil
// cache skips texture resolution entirely.
func NewImporter(decoder SceneDecoder, textures *texture.Cache, log *zap.Logger) *Importer {
	if decoder == nil {
		decoder = GLTFDecoder{}
	}
	if log == nil {
		log = logger.Named("scene")
	}
	return &Importer{decoder: decoder, textures: textures, log: log}
}

// Import reads the scene at path and returns one MeshData per triangle
// primitive, in pre-order node order. On failure the error is logged and
// returned together with a nil slice; callers that only need something to
// draw may ignore it.
func (im *Importer) Import(path string) ([]*MeshData, error) {
	session, err := uuid.NewV7()
	if err != nil {
		session = uuid.New()
	}
	log := im.log.With(zap.String("path", path), zap.Stringer("import", session))
	start := time.Now()

	meshes, err := im.importScene(path, log)
	if err != nil {
		log.Error("scene import failed", zap.Error(err))
		return nil, err
	}

	log.Info("scene imported",
		zap.Int("meshes", len(meshes)),
		zap.Duration("elapsed", time.Since(start)))
	return meshes, nil
}

func (im *Importer) importScene(path string, log *zap.Logger) ([]*MeshData, error) {
	doc, err := im.decoder.Decode(path)
	if err != nil {
		return nil, &ImportError{Path: path, Reason: "decode failed", Err: err}
	}

	root, err := buildTree(doc)
	if err != nil {
		return nil, &ImportError{Path: path, Reason: "incomplete scene", Err: err}
	}
	if root == nil {
		return nil, &ImportError{Path: path, Reason: "no root node"}
	}

	w := &walker{
		doc:      doc,
		path:     path,
		dir:      filepath.Dir(path),
		textures: im.textures,
		log:      log,
	}
	var meshes []*MeshData
	if err := w.visit(root, &meshes); err != nil {
		return nil, &ImportError{Path: path, Reason: "incomplete scene", Err: err}
	}
	return meshes, nil
}

// buildTree converts the default scene into a SceneNode tree. A scene with
// several top-level nodes gets a synthetic root.
func buildTree(doc *gltf.Document) (*SceneNode, error) {
	if len(doc.Scenes) == 0 {
		return nil, nil
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx >= len(doc.Scenes) {
		return nil, errors.Errorf("default scene %d does not exist", sceneIdx)
	}
	sc := doc.Scenes[sceneIdx]
	if len(sc.Nodes) == 0 {
		return nil, nil
	}

	visiting := make(map[uint32]bool)
	var build func(idx uint32) (*SceneNode, error)
	build = func(idx uint32) (*SceneNode, error) {
		if int(idx) >= len(doc.Nodes) {
			return nil, errors.Errorf("node %d does not exist", idx)
		}
		if visiting[idx] {
			return nil, errors.Errorf("node %d is its own ancestor", idx)
		}
		visiting[idx] = true
		defer delete(visiting, idx)

		n := doc.Nodes[idx]
		out := &SceneNode{Name: n.Name}
		if n.Mesh != nil {
			if int(*n.Mesh) >= len(doc.Meshes) {
				return nil, errors.Errorf("node %d references missing mesh %d", idx, *n.Mesh)
			}
			out.Meshes = append(out.Meshes, int(*n.Mesh))
		}
		for _, c := range n.Children {
			child, err := build(c)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, child)
		}
		return out, nil
	}

	if len(sc.Nodes) == 1 {
		return build(sc.Nodes[0])
	}
	root := &SceneNode{Name: sc.Name}
	for _, idx := range sc.Nodes {
		child, err := build(idx)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	return root, nil
}

type walker struct {
	doc      *gltf.Document
	path     string
	dir      string
	textures *texture.Cache
	log      *zap.Logger
}

// visit appends the node's meshes, then recurses into its children.
func (w *walker) visit(node *SceneNode, out *[]*MeshData) error {
	for _, mi := range node.Meshes {
		mesh := w.doc.Meshes[mi]
		for pi, prim := range mesh.Primitives {
			name := fmt.Sprintf("%s/%d", meshName(mesh, mi), pi)
			md, err := w.convert(prim, name)
			if errors.Is(err, errSkipPrimitive) {
				continue
			}
			if err != nil {
				return errors.Wrapf(err, "mesh %q", name)
			}
			*out = append(*out, md)
		}
	}
	for _, child := range node.Children {
		if err := w.visit(child, out); err != nil {
			return err
		}
	}
	return nil
}

func meshName(m *gltf.Mesh, idx int) string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("mesh%d", idx)
}

func (w *walker) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(w.doc.Accessors) {
		return nil, errors.Errorf("accessor %d does not exist", idx)
	}
	return w.doc.Accessors[idx], nil
}

// convert copies one primitive into a MeshData. Positions are taken in the
// mesh's local space; node transforms are not applied.
func (w *walker) convert(prim *gltf.Primitive, name string) (*MeshData, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		w.log.Warn("skipping non-triangle primitive", zap.String("mesh", name))
		return nil, errSkipPrimitive
	}
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		w.log.Warn("skipping primitive without positions", zap.String("mesh", name))
		return nil, errSkipPrimitive
	}

	acr, err := w.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(w.doc, acr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if acr, err = w.accessor(idx); err != nil {
			return nil, err
		}
		if normals, err = modeler.ReadNormal(w.doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read normals")
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if acr, err = w.accessor(idx); err != nil {
			return nil, err
		}
		if uvs, err = modeler.ReadTextureCoord(w.doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read texcoords")
		}
	}

	md := &MeshData{
		Name:     name,
		Vertices: make([]Vertex, len(positions)),
	}
	for i, p := range positions {
		v := Vertex{Position: p}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		md.Vertices[i] = v
	}

	if prim.Indices != nil {
		if acr, err = w.accessor(*prim.Indices); err != nil {
			return nil, err
		}
		if md.Indices, err = modeler.ReadIndices(w.doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "read indices")
		}
	} else {
		md.Indices = make([]uint32, len(positions))
		for i := range md.Indices {
			md.Indices[i] = uint32(i)
		}
	}

	if err := md.Validate(); err != nil {
		w.log.Warn("skipping malformed primitive", zap.String("mesh", name), zap.Error(err))
		return nil, errSkipPrimitive
	}

	md.Bounds = ComputeBounds(md.Vertices)
	md.Textures = w.materialTextures(prim.Material, name)
	return md, nil
}

// materialTextures resolves the diffuse and specular slots of a material.
// The PBR base color feeds the diffuse slot and the metallic-roughness map
// the specular slot.
func (w *walker) materialTextures(matIdx *uint32, mesh string) []texture.Texture {
	if matIdx == nil || w.textures == nil {
		return nil
	}
	if int(*matIdx) >= len(w.doc.Materials) {
		w.log.Warn("primitive references missing material",
			zap.String("mesh", mesh), zap.Uint32("material", *matIdx))
		return nil
	}
	pbr := w.doc.Materials[*matIdx].PBRMetallicRoughness
	if pbr == nil {
		return nil
	}

	var out []texture.Texture
	slots := []struct {
		kind texture.Kind
		info *gltf.TextureInfo
	}{
		{texture.Diffuse, pbr.BaseColorTexture},
		{texture.Specular, pbr.MetallicRoughnessTexture},
	}
	for _, s := range slots {
		if s.info == nil {
			continue
		}
		if tex, ok := w.resolveTexture(s.info.Index, s.kind); ok {
			out = append(out, tex)
		}
	}
	return out
}

func (w *walker) resolveTexture(texIdx uint32, kind texture.Kind) (texture.Texture, bool) {
	if int(texIdx) >= len(w.doc.Textures) {
		w.log.Warn("material references missing texture", zap.Uint32("texture", texIdx))
		return texture.Texture{}, false
	}
	src := w.doc.Textures[texIdx].Source
	if src == nil || int(*src) >= len(w.doc.Images) {
		w.log.Warn("texture has no usable image", zap.Uint32("texture", texIdx))
		return texture.Texture{}, false
	}
	imgIdx := *src
	img := w.doc.Images[imgIdx]
	key := fmt.Sprintf("%s#image%d", w.path, imgIdx)

	switch {
	case img.BufferView != nil:
		bv := *img.BufferView
		return w.textures.GetOrLoadData(key, kind, func() ([]byte, error) {
			return w.bufferView(bv)
		}), true
	case img.IsEmbeddedResource():
		return w.textures.GetOrLoadData(key, kind, img.MarshalData), true
	case img.URI != "":
		return w.textures.GetOrLoad(w.resolveURI(img.URI), kind), true
	default:
		w.log.Warn("image has neither uri nor buffer view", zap.Uint32("image", imgIdx))
		return texture.Texture{}, false
	}
}

// resolveURI maps an image URI relative to the scene file's directory.
func (w *walker) resolveURI(uri string) string {
	if p, err := url.PathUnescape(uri); err == nil {
		uri = p
	}
	if filepath.IsAbs(uri) {
		return filepath.Clean(uri)
	}
	return filepath.Join(w.dir, filepath.FromSlash(uri))
}

func (w *walker) bufferView(idx uint32) ([]byte, error) {
	if int(idx) >= len(w.doc.BufferViews) {
		return nil, errors.Errorf("buffer view %d does not exist", idx)
	}
	bv := w.doc.BufferViews[idx]
	if int(bv.Buffer) >= len(w.doc.Buffers) {
		return nil, errors.Errorf("buffer %d does not exist", bv.Buffer)
	}
	data := w.doc.Buffers[bv.Buffer].Data
	start := uint64(bv.ByteOffset)
	end := start + uint64(bv.ByteLength)
	if end > uint64(len(data)) {
		return nil, errors.Errorf("buffer view %d overruns buffer (%d > %d)", idx, end, len(data))
	}
	return data[start:end], nil
}
