package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"voxelfield/internal/world"
)

// face indexes into the per-material color triple.
type face int

const (
	faceTop face = iota
	faceSide
	faceBottom
)

// cubeFace describes one axis-aligned face of a unit cube: the neighbor
// offset that decides culling, the outward normal, corner offsets in
// counter-clockwise winding viewed from outside, and which material color
// the face uses.
type cubeFace struct {
	dx, dy, dz int
	normal     mgl32.Vec3
	corners    [4][3]float32
	color      face
}

var cubeFaces = [6]cubeFace{
	{0, 1, 0, mgl32.Vec3{0, 1, 0},
		[4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}, faceTop},
	{0, -1, 0, mgl32.Vec3{0, -1, 0},
		[4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, faceBottom},
	{1, 0, 0, mgl32.Vec3{1, 0, 0},
		[4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}, faceSide},
	{-1, 0, 0, mgl32.Vec3{-1, 0, 0},
		[4][3]float32{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}}, faceSide},
	{0, 0, 1, mgl32.Vec3{0, 0, 1},
		[4][3]float32{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}}, faceSide},
	{0, 0, -1, mgl32.Vec3{0, 0, -1},
		[4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}, faceSide},
}

// Builder converts chunks into face-culled surface meshes. Material colors
// are parsed from the block registry once and cached.
type Builder struct {
	palette map[world.BlockType][3]mgl32.Vec3
}

func NewBuilder() *Builder {
	return &Builder{palette: make(map[world.BlockType][3]mgl32.Vec3)}
}

// Build walks every non-air voxel and emits a quad for each of its six faces
// whose neighbor is absent, air or transparent. Neighbor lookups outside the
// chunk's own bounds read as air: vertical chunk boundaries always render,
// and horizontal boundaries are meshed without consulting adjacent chunks.
func (b *Builder) Build(c *world.Chunk) *Mesh {
	m := &Mesh{}
	c.ForEachBlock(func(x, y, z int, t world.BlockType) bool {
		colors := b.colorsFor(t)
		for _, f := range cubeFaces {
			neighbor := c.TypeAt(x+f.dx, y+f.dy, z+f.dz)
			if neighbor != world.BlockAir && !world.DefOf(neighbor).Transparent {
				continue
			}
			b.emitQuad(m, x, y, z, f, colors[f.color])
		}
		return true
	})
	return m
}

func (b *Builder) emitQuad(m *Mesh, x, y, z int, f cubeFace, color mgl32.Vec3) {
	base := uint32(len(m.Positions))
	for _, corner := range f.corners {
		m.Positions = append(m.Positions, mgl32.Vec3{
			float32(x) + corner[0],
			float32(y) + corner[1],
			float32(z) + corner[2],
		})
		m.Normals = append(m.Normals, f.normal)
		m.Colors = append(m.Colors, color)
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

func (b *Builder) colorsFor(t world.BlockType) [3]mgl32.Vec3 {
	if cached, ok := b.palette[t]; ok {
		return cached
	}
	def := world.DefOf(t)
	colors := [3]mgl32.Vec3{
		parseHexColor(def.Top),
		parseHexColor(def.Side),
		parseHexColor(def.Bottom),
	}
	b.palette[t] = colors
	return colors
}

func parseHexColor(hex string) mgl32.Vec3 {
	c, err := colorful.Hex(hex)
	if err != nil {
		// Unknown color strings render neutral gray rather than failing.
		return mgl32.Vec3{0.5, 0.5, 0.5}
	}
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
