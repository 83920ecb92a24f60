package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/logger"
)

// Set is the ordered list of uploaded meshes a scene indexes into.
type Set struct {
	meshes []*GPUMesh
}

// UploadAll uploads every mesh in order. If any upload fails the meshes
// already uploaded are released and the error is returned.
func UploadAll(dev gpu.Device, meshes []model.Mesh) (*Set, error) {
	s := &Set{meshes: make([]*GPUMesh, 0, len(meshes))}
	for i, m := range meshes {
		g, err := Upload(dev, m)
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("upload mesh %d: %w", i, err)
		}
		s.meshes = append(s.meshes, g)
	}
	logger.Debug("meshes uploaded", zap.Int("count", len(s.meshes)))
	return s, nil
}

// Len returns the number of meshes in the set.
func (s *Set) Len() int {
	return len(s.meshes)
}

// Get returns mesh i, or nil when i is out of range.
func (s *Set) Get(i int) *GPUMesh {
	if i < 0 || i >= len(s.meshes) {
		return nil
	}
	return s.meshes[i]
}

// Draw draws mesh i and reports whether it exists.
func (s *Set) Draw(i int) bool {
	g := s.Get(i)
	if g == nil {
		return false
	}
	g.Draw()
	return true
}

// Release releases every mesh and empties the set.
func (s *Set) Release() {
	for _, g := range s.meshes {
		g.Release()
	}
	s.meshes = nil
}
