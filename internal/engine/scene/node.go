// Package scene holds the imported node hierarchy and walks it for drawing.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/model"
)

var (
	// ErrNoScene is returned when the importer produced nothing.
	ErrNoScene = errors.New("no scene")
	// ErrNoRoot is returned when the scene has no root node.
	ErrNoRoot = errors.New("scene has no root node")
	// ErrIncomplete is returned when the importer flagged the scene incomplete.
	ErrIncomplete = errors.New("scene is incomplete")
)

// Flags reports importer post-processing results.
type Flags uint32

const (
	FlagIncomplete Flags = 1 << iota
	FlagValidated
	FlagValidationWarning
	FlagNormalsGenerated
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	names := []struct {
		flag Flags
		name string
	}{
		{FlagIncomplete, "incomplete"},
		{FlagValidated, "validated"},
		{FlagValidationWarning, "validation-warning"},
		{FlagNormalsGenerated, "normals-generated"},
	}
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Node is one element of the hierarchy. Transform is local to the parent.
type Node struct {
	Name      string
	Transform mgl32.Mat4
	Meshes    []int
	Children  []*Node
}

// Scene is an imported model: a node tree indexing into a flat mesh list.
type Scene struct {
	Root   *Node
	Meshes []model.Mesh
	Flags  Flags
}

// Validate rejects a missing scene, a missing root, or a scene the importer
// marked incomplete. Every other flag combination is accepted.
func Validate(s *Scene) error {
	if s == nil {
		return ErrNoScene
	}
	if s.Flags.Has(FlagIncomplete) {
		return fmt.Errorf("flags %s: %w", s.Flags, ErrIncomplete)
	}
	if s.Root == nil {
		return ErrNoRoot
	}
	return nil
}

// DanglingMeshRefs returns the number of node mesh references that do not
// index into s.Meshes. Traverse skips those references.
func (s *Scene) DanglingMeshRefs() int {
	count := 0
	Walk(s.Root, func(n *Node, _ int) {
		for _, m := range n.Meshes {
			if m < 0 || m >= len(s.Meshes) {
				count++
			}
		}
	})
	return count
}

// Stats returns the total triangle count and the union of the mesh bounds
// in mesh space. A scene without meshes yields a zero box.
func (s *Scene) Stats() (triangles int, bounds model.Bounds) {
	for i := range s.Meshes {
		m := &s.Meshes[i]
		triangles += m.TriangleCount()
		if i == 0 {
			bounds = m.Bounds()
		} else {
			bounds = bounds.Union(m.Bounds())
		}
	}
	return triangles, bounds
}

// Walk calls fn for every node in pre-order with its depth.
func Walk(root *Node, fn func(n *Node, depth int)) {
	if root == nil {
		return
	}
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(it.node, it.depth)
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

// Dump renders the hierarchy one node per line, indented by depth, with the
// mesh count, child count, parent matrix and accumulated model matrix.
func Dump(root *Node) string {
	var b strings.Builder
	walkWithParent(root, mgl32.Ident4(), func(n *Node, depth int, parent, world mgl32.Mat4) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%s%s meshes=%d children=%d\n", indent, displayName(n), len(n.Meshes), len(n.Children))
		fmt.Fprintf(&b, "%s  parent=%v\n", indent, formatMat(parent))
		fmt.Fprintf(&b, "%s  model=%v\n", indent, formatMat(world))
	})
	return b.String()
}

// QuadScene wraps model.Quad in a single-node scene.
func QuadScene() *Scene {
	return &Scene{
		Root: &Node{
			Name:      "quad",
			Transform: mgl32.Ident4(),
			Meshes:    []int{0},
		},
		Meshes: []model.Mesh{model.Quad()},
		Flags:  FlagValidated,
	}
}

func walkWithParent(root *Node, parent mgl32.Mat4, fn func(n *Node, depth int, parent, world mgl32.Mat4)) {
	if root == nil {
		return
	}
	type item struct {
		node   *Node
		depth  int
		parent mgl32.Mat4
	}
	stack := []item{{root, 0, parent}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		world := it.parent.Mul4(it.node.Transform)
		fn(it.node, it.depth, it.parent, world)
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1, world})
		}
	}
}

func displayName(n *Node) string {
	if n.Name == "" {
		return "<unnamed>"
	}
	return n.Name
}

func formatMat(m mgl32.Mat4) string {
	rows := make([]string, 4)
	for r := 0; r < 4; r++ {
		row := m.Row(r)
		rows[r] = fmt.Sprintf("[%.3g %.3g %.3g %.3g]", row[0], row[1], row[2], row[3])
	}
	return strings.Join(rows, " ")
}
