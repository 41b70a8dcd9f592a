package mesh

import "github.com/go-gl/mathgl/mgl32"

// Mesh is the visible-surface geometry derived from a chunk's voxel grid:
// vertex positions in chunk-local space, per-vertex normals and colors, and
// triangle indices. A chunk with no renderable voxel yields an empty mesh,
// not an error.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec3
	Indices   []uint32
}

// Empty reports whether the mesh carries no geometry.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// QuadCount returns the number of emitted faces.
func (m *Mesh) QuadCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 6
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Release drops the geometry buffers so the backing arrays can be reclaimed.
// Rebuilding a chunk mesh releases the previous one.
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	m.Positions = nil
	m.Normals = nil
	m.Colors = nil
	m.Indices = nil
}
