package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/pkg/math"
)

// DrawTarget receives the per-node parameters and draw requests produced by
// Traverse.
type DrawTarget interface {
	SetModel(m mgl32.Mat4)
	SetNormal(m mgl32.Mat3)
	// DrawMesh draws mesh i and reports whether it exists.
	DrawMesh(i int) bool
}

// Traverse walks the tree under root in pre-order, children in declared
// order. For every node it composes model = parent * local, spins it about
// the Z axis through the node's own origin, sends the spun model matrix and
// its normal matrix relative to view, then draws the node's meshes in order.
// Children inherit the unspun model matrix.
//
// The walk uses an explicit stack. Node trees are assumed acyclic.
func Traverse(root *Node, parent mgl32.Mat4, spin float32, view mgl32.Mat4, t DrawTarget) {
	if root == nil {
		return
	}

	type frame struct {
		node   *Node
		parent mgl32.Mat4
	}
	stack := []frame{{root, parent}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		model := f.parent.Mul4(f.node.Transform)
		spun := math.SpinZ(math.Translation(model), spin).Mul4(model)

		t.SetModel(spun)
		t.SetNormal(math.NormalMatrix(view.Mul4(spun)))

		for _, m := range f.node.Meshes {
			t.DrawMesh(m)
		}

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], model})
		}
	}
}
