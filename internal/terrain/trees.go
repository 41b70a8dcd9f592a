package terrain

import (
	"voxelfield/internal/biome"
	"voxelfield/internal/world"
)

const (
	trunkBaseHeight = 4
	trunkExtraRange = 3
	leafAcceptance  = 0.8
)

// placeTrees runs after every column is filled. Placement draws from a
// per-column seeded stream, so regenerating the same chunk yields the same
// trees. Canopies are clipped at the chunk edge; trees never write into
// neighboring chunks.
func (g *Generator) placeTrees(chunk *world.Chunk, coord world.ChunkCoord, heights []int, biomes []biome.Biome) {
	for localX := 0; localX < g.chunkSize; localX++ {
		for localZ := 0; localZ < g.chunkSize; localZ++ {
			idx := localX*g.chunkSize + localZ
			surface := heights[idx]
			b := biomes[idx]

			// Trees only take root above sea level.
			if surface <= g.seaLevel || b.TreeChance <= 0 {
				continue
			}

			worldX, worldZ := world.LocalToWorld(coord, localX, localZ, g.chunkSize)
			rng := newColumnRNG(worldX, worldZ, g.cfg.Seed)
			if rng.float64() >= b.TreeChance {
				continue
			}

			g.growTree(chunk, rng, localX, surface, localZ, b)
		}
	}
}

// growTree writes a vertical wood trunk, then scatters leaves in a bounded
// neighborhood above the trunk top. Each candidate offset within the biome's
// Manhattan radius is accepted with a fixed probability.
func (g *Generator) growTree(chunk *world.Chunk, rng *columnRNG, localX, surface, localZ int, b biome.Biome) {
	trunkHeight := trunkBaseHeight + rng.intn(trunkExtraRange)
	for dy := 1; dy <= trunkHeight; dy++ {
		chunk.SetBlock(localX, surface+dy, localZ, world.BlockWood)
	}

	topY := surface + trunkHeight
	for dy := 0; dy <= b.LeafSpread; dy++ {
		for dx := -b.LeafRadius; dx <= b.LeafRadius; dx++ {
			for dz := -b.LeafRadius; dz <= b.LeafRadius; dz++ {
				if absInt(dx)+absInt(dz) > b.LeafRadius {
					continue
				}
				if dx == 0 && dz == 0 && dy == 0 {
					// Trunk top stays wood.
					continue
				}
				if rng.float64() >= leafAcceptance {
					continue
				}
				x := localX + dx
				y := topY + dy
				z := localZ + dz
				if chunk.TypeAt(x, y, z) != world.BlockAir {
					continue
				}
				chunk.SetBlock(x, y, z, world.BlockLeaves)
			}
		}
	}
}

// columnRNG is a small xorshift stream keyed by column coordinates and the
// world seed, giving reproducible per-column randomness without a shared
// source.
type columnRNG struct {
	state uint64
}

func newColumnRNG(x, z int, seed int64) *columnRNG {
	state := uint64(uint32(x))<<32 ^ uint64(uint32(z))<<1 ^ uint64(seed)
	if state == 0 {
		state = 0x9e3779b97f4a7c15
	}
	return &columnRNG{state: state}
}

func (r *columnRNG) next() uint64 {
	r.state ^= r.state << 7
	r.state ^= r.state >> 9
	r.state ^= r.state << 8
	return r.state
}

func (r *columnRNG) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

func (r *columnRNG) float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
