// Package importer converts glTF 2.0 documents into viewer scenes.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/logger"
	"github.com/Faultbox/modelview/pkg/math"
)

// ErrUnsupportedFormat is returned for files that are not .gltf or .glb.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Load reads a .gltf or .glb file.
func Load(path string) (*scene.Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	sc, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	triangles, bounds := sc.Stats()
	logger.Info("model imported",
		zap.String("path", path),
		zap.Int("meshes", len(sc.Meshes)),
		zap.Int("triangles", triangles),
		zap.Any("bounds_min", bounds.Min),
		zap.Any("bounds_max", bounds.Max),
		zap.Any("bounds_center", bounds.Center()),
		zap.Any("bounds_size", bounds.Size()),
		zap.Stringer("flags", sc.Flags),
	)
	return sc, nil
}

// FromDocument builds a scene from the default scene of doc, or its first
// scene when no default is set.
//
// Every triangle primitive becomes one mesh. Primitives that cannot be
// drawn as triangle lists are skipped and the scene is flagged with
// scene.FlagValidationWarning. A scene without any mesh is flagged
// scene.FlagIncomplete.
func FromDocument(doc *gltf.Document) (*scene.Scene, error) {
	if len(doc.Scenes) == 0 {
		return nil, scene.ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d of %d: %w", sceneIdx, len(doc.Scenes), scene.ErrNoScene)
	}

	b := &builder{
		doc:     doc,
		sc:      &scene.Scene{Flags: scene.FlagValidated},
		meshMap: make([][]int, len(doc.Meshes)),
		visited: make(map[int]bool),
		log:     logger.Named("importer"),
	}
	for i, m := range doc.Meshes {
		b.meshMap[i] = b.convertMesh(i, m)
	}

	top := doc.Scenes[sceneIdx].Nodes
	var roots []*scene.Node
	for _, idx := range top {
		if n := b.convertNode(idx); n != nil {
			roots = append(roots, n)
		}
	}

	switch len(roots) {
	case 0:
		return nil, scene.ErrNoRoot
	case 1:
		b.sc.Root = roots[0]
	default:
		b.sc.Root = &scene.Node{
			Name:      "root",
			Transform: mgl32.Ident4(),
			Children:  roots,
		}
	}

	if len(b.sc.Meshes) == 0 {
		b.sc.Flags |= scene.FlagIncomplete
	}
	return b.sc, nil
}

type builder struct {
	doc     *gltf.Document
	sc      *scene.Scene
	meshMap [][]int
	visited map[int]bool
	log     *zap.Logger
}

func (b *builder) warn(msg string, fields ...zap.Field) {
	b.sc.Flags |= scene.FlagValidationWarning
	b.log.Warn(msg, fields...)
}

// convertNode converts node idx and its subtree. Nodes reached twice are
// dropped so the resulting tree is acyclic.
func (b *builder) convertNode(idx int) *scene.Node {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		b.warn("node index out of range", zap.Int("node", idx))
		return nil
	}
	if b.visited[idx] {
		b.warn("node referenced more than once", zap.Int("node", idx))
		return nil
	}
	b.visited[idx] = true

	src := b.doc.Nodes[idx]
	n := &scene.Node{
		Name:      src.Name,
		Transform: localTransform(src),
	}
	if n.Name == "" {
		n.Name = fmt.Sprintf("node_%d", idx)
	}

	if src.Mesh != nil {
		if m := *src.Mesh; m >= 0 && m < len(b.meshMap) {
			n.Meshes = append(n.Meshes, b.meshMap[m]...)
		} else {
			b.warn("mesh index out of range", zap.String("node", n.Name), zap.Int("mesh", m))
		}
	}

	for _, c := range src.Children {
		if child := b.convertNode(c); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// localTransform prefers an explicit matrix and falls back to TRS.
func localTransform(n *gltf.Node) mgl32.Mat4 {
	m := math.FromColumnMajor64(n.Matrix)
	if m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
		return m
	}
	return math.Compose(n.Translation, n.Rotation, n.Scale)
}

func (b *builder) convertMesh(idx int, m *gltf.Mesh) []int {
	var out []int
	for p, prim := range m.Primitives {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", idx)
		}
		if len(m.Primitives) > 1 {
			name = fmt.Sprintf("%s.%d", name, p)
		}

		mesh, err := b.convertPrimitive(name, prim)
		if err != nil {
			b.warn("primitive skipped", zap.String("mesh", name), zap.Error(err))
			continue
		}
		out = append(out, len(b.sc.Meshes))
		b.sc.Meshes = append(b.sc.Meshes, mesh)
	}
	return out
}

func (b *builder) convertPrimitive(name string, prim *gltf.Primitive) (model.Mesh, error) {
	mesh := model.Mesh{Name: name}

	if prim.Mode != gltf.PrimitiveTriangles {
		return mesh, fmt.Errorf("primitive mode %d: %w", prim.Mode, model.ErrNotTriangles)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return mesh, errors.New("no POSITION attribute")
	}
	accessor, err := b.accessor(posIdx)
	if err != nil {
		return mesh, err
	}
	positions, err := modeler.ReadPosition(b.doc, accessor, nil)
	if err != nil {
		return mesh, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normalIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if accessor, err := b.accessor(normalIdx); err == nil {
			normals, err = modeler.ReadNormal(b.doc, accessor, nil)
			if err != nil || len(normals) != len(positions) {
				normals = nil
			}
		}
	}

	mesh.Vertices = make([]model.Vertex, len(positions))
	for i, pos := range positions {
		mesh.Vertices[i] = model.Vertex{
			Position: mgl32.Vec3(pos),
			Color:    model.DefaultColor,
		}
		if normals != nil {
			mesh.Vertices[i].Normal = mgl32.Vec3(normals[i])
		}
	}

	if prim.Indices != nil {
		accessor, err := b.accessor(*prim.Indices)
		if err != nil {
			return mesh, err
		}
		mesh.Indices, err = modeler.ReadIndices(b.doc, accessor, nil)
		if err != nil {
			return mesh, fmt.Errorf("read indices: %w", err)
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	if err := mesh.Validate(); err != nil {
		return mesh, err
	}

	if normals == nil {
		mesh.GenerateNormals()
		b.sc.Flags |= scene.FlagNormalsGenerated
	}
	return mesh, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d of %d out of range", idx, len(b.doc.Accessors))
	}
	return b.doc.Accessors[idx], nil
}
