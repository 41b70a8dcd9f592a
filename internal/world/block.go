package world

// BlockType enumerates known block materials.
type BlockType string

const (
	BlockAir    BlockType = "air"
	BlockGrass  BlockType = "grass"
	BlockDirt   BlockType = "dirt"
	BlockStone  BlockType = "stone"
	BlockWood   BlockType = "wood"
	BlockLeaves BlockType = "leaves"
	BlockWater  BlockType = "water"
	BlockSand   BlockType = "sand"
)

// Block is a voxel in transit. X, Y and Z are world coordinates and are only
// meaningful while the block is detached from a chunk; once embedded, its
// position is implied by its slot.
type Block struct {
	Type    BlockType
	X, Y, Z int
}

// IsAir reports whether the block denotes an empty slot. The zero value
// counts as air so uninitialized grid slots read as absent.
func (b Block) IsAir() bool {
	return b.Type == "" || b.Type == BlockAir
}

// BlockDef carries the static per-material attributes: whether the material
// is collidable, whether it is see-through for face culling, and its face
// colors. Materials with a single color set all three faces to it.
type BlockDef struct {
	Name        string
	Solid       bool
	Transparent bool
	Top         string // hex color
	Side        string
	Bottom      string
}

func uniform(name, hex string, solid bool) BlockDef {
	return BlockDef{Name: name, Solid: solid, Top: hex, Side: hex, Bottom: hex}
}

var blockDefs = map[BlockType]BlockDef{
	BlockAir: {Name: "air", Transparent: true},
	BlockGrass: {
		Name:   "grass",
		Solid:  true,
		Top:    "#5d9b3d",
		Side:   "#7a6a3f",
		Bottom: "#8b5a2b",
	},
	BlockDirt:  uniform("dirt", "#8b5a2b", true),
	BlockStone: uniform("stone", "#7f7f82", true),
	BlockWood: {
		Name:   "wood",
		Solid:  true,
		Top:    "#9a7748",
		Side:   "#6b4a2a",
		Bottom: "#9a7748",
	},
	BlockLeaves: uniform("leaves", "#3c7a2e", true),
	BlockWater: {
		Name:        "water",
		Transparent: true,
		Top:         "#3b6fb0",
		Side:        "#3b6fb0",
		Bottom:      "#3b6fb0",
	},
	BlockSand: uniform("sand", "#d8c86e", true),
}

// DefOf returns the material definition for a block type. Unknown types read
// as air.
func DefOf(t BlockType) BlockDef {
	if def, ok := blockDefs[t]; ok {
		return def
	}
	return blockDefs[BlockAir]
}
