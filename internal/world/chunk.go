package world

// MeshHandle is the surface geometry a chunk derives from its voxel grid.
// The concrete type lives with the mesher; the world only needs to know when
// a mesh is empty and how to release it.
type MeshHandle interface {
	Empty() bool
	Release()
}

// Chunk stores a dense voxel grid of size x height x size, addressed by
// chunk-local coordinates, plus the derived surface mesh and a dirty flag
// marking the mesh stale relative to the voxels.
type Chunk struct {
	Coord  ChunkCoord
	size   int
	height int
	blocks []BlockType
	dirty  bool
	mesh   MeshHandle
}

func NewChunk(coord ChunkCoord, size, height int) *Chunk {
	return &Chunk{
		Coord:  coord,
		size:   size,
		height: height,
		blocks: make([]BlockType, size*size*height),
	}
}

func (c *Chunk) Size() int   { return c.size }
func (c *Chunk) Height() int { return c.height }

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.height && z >= 0 && z < c.size
}

func (c *Chunk) index(x, y, z int) int {
	return (x*c.size+z)*c.height + y
}

// TypeAt returns the material at chunk-local coordinates. Out-of-range
// lookups read as air, never a fault.
func (c *Chunk) TypeAt(x, y, z int) BlockType {
	if !c.inBounds(x, y, z) {
		return BlockAir
	}
	t := c.blocks[c.index(x, y, z)]
	if t == "" {
		return BlockAir
	}
	return t
}

// Block returns the voxel at chunk-local coordinates as a detached block
// carrying world coordinates. Air slots and out-of-range coordinates report
// absent.
func (c *Chunk) Block(x, y, z int) (Block, bool) {
	t := c.TypeAt(x, y, z)
	if t == BlockAir {
		return Block{}, false
	}
	worldX, worldZ := LocalToWorld(c.Coord, x, z, c.size)
	return Block{Type: t, X: worldX, Y: y, Z: worldZ}, true
}

// SetBlock installs a material at chunk-local coordinates and marks the
// chunk dirty. Air clears the slot. Out-of-range writes are silently
// ignored.
func (c *Chunk) SetBlock(x, y, z int, t BlockType) bool {
	if !c.inBounds(x, y, z) {
		return false
	}
	if t == BlockAir {
		t = ""
	}
	c.blocks[c.index(x, y, z)] = t
	c.dirty = true
	return true
}

// SetColumn replaces the vertical slice at (x, z) from y=0 upward. Slots
// beyond the provided column are cleared.
func (c *Chunk) SetColumn(x, z int, column []BlockType) bool {
	if x < 0 || x >= c.size || z < 0 || z >= c.size {
		return false
	}
	base := c.index(x, 0, z)
	for y := 0; y < c.height; y++ {
		var t BlockType
		if y < len(column) && column[y] != BlockAir {
			t = column[y]
		}
		c.blocks[base+y] = t
	}
	c.dirty = true
	return true
}

// ForEachBlock visits every non-air voxel in chunk-local coordinates. The
// callback returning false stops iteration.
func (c *Chunk) ForEachBlock(fn func(x, y, z int, t BlockType) bool) {
	for x := 0; x < c.size; x++ {
		for z := 0; z < c.size; z++ {
			base := c.index(x, 0, z)
			for y := 0; y < c.height; y++ {
				t := c.blocks[base+y]
				if t == "" || t == BlockAir {
					continue
				}
				if !fn(x, y, z, t) {
					return
				}
			}
		}
	}
}

// Dirty reports whether the mesh is stale relative to the voxel grid.
func (c *Chunk) Dirty() bool { return c.dirty }

// Mesh returns the current surface mesh, which may be nil before the first
// build.
func (c *Chunk) Mesh() MeshHandle { return c.mesh }

// SetMesh installs a freshly built mesh, releasing any previous one, and
// clears the dirty flag.
func (c *Chunk) SetMesh(mesh MeshHandle) {
	if c.mesh != nil {
		c.mesh.Release()
	}
	c.mesh = mesh
	c.dirty = false
}

// Close releases the chunk's mesh resources.
func (c *Chunk) Close() {
	if c.mesh != nil {
		c.mesh.Release()
		c.mesh = nil
	}
}
