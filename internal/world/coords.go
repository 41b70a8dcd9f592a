package world

// ChunkCoord identifies a chunk column in global chunk space. World space is
// partitioned into non-overlapping chunk columns of a fixed footprint
// spanning the full world height.
type ChunkCoord struct {
	X int
	Z int
}

// Chebyshev returns the Chebyshev distance between two chunk coordinates,
// the metric used for square-shaped streaming radii.
func (c ChunkCoord) Chebyshev(other ChunkCoord) int {
	dx := absInt(c.X - other.X)
	dz := absInt(c.Z - other.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// floorDiv divides rounding toward negative infinity so negative world
// coordinates resolve to the correct chunk.
func floorDiv(value, size int) int {
	if size <= 0 {
		return 0
	}
	if value >= 0 {
		return value / size
	}
	return -((-value - 1) / size) - 1
}

// floorMod returns the non-negative remainder paired with floorDiv.
func floorMod(value, size int) int {
	if size <= 0 {
		return 0
	}
	m := value % size
	if m < 0 {
		m += size
	}
	return m
}

// WorldToChunk maps world block coordinates to the owning chunk coordinate.
func WorldToChunk(worldX, worldZ, size int) ChunkCoord {
	return ChunkCoord{X: floorDiv(worldX, size), Z: floorDiv(worldZ, size)}
}

// WorldToLocal maps world block coordinates to chunk-local offsets.
func WorldToLocal(worldX, worldZ, size int) (int, int) {
	return floorMod(worldX, size), floorMod(worldZ, size)
}

// LocalToWorld reverses WorldToChunk/WorldToLocal.
func LocalToWorld(coord ChunkCoord, localX, localZ, size int) (int, int) {
	return coord.X*size + localX, coord.Z*size + localZ
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
