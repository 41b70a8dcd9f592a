package world

import "testing"

func TestChunkSetAndGetBlock(t *testing.T) {
	chunk := NewChunk(ChunkCoord{X: 0, Z: 0}, 4, 8)

	if !chunk.SetBlock(1, 2, 3, BlockStone) {
		t.Fatal("in-range set rejected")
	}
	block, ok := chunk.Block(1, 2, 3)
	if !ok {
		t.Fatal("expected block at (1,2,3)")
	}
	if block.Type != BlockStone {
		t.Fatalf("block type = %q, want stone", block.Type)
	}
	if block.X != 1 || block.Y != 2 || block.Z != 3 {
		t.Fatalf("detached block coords = (%d,%d,%d), want (1,2,3)", block.X, block.Y, block.Z)
	}
}

func TestChunkDetachedBlockCarriesWorldCoords(t *testing.T) {
	chunk := NewChunk(ChunkCoord{X: -1, Z: 2}, 16, 32)
	chunk.SetBlock(15, 5, 0, BlockDirt)

	block, ok := chunk.Block(15, 5, 0)
	if !ok {
		t.Fatal("expected block")
	}
	if block.X != -1 || block.Z != 32 {
		t.Fatalf("world coords = (%d,%d), want (-1,32)", block.X, block.Z)
	}
}

func TestChunkOutOfRangeAccessIsNoOp(t *testing.T) {
	chunk := NewChunk(ChunkCoord{}, 4, 8)

	outOfRange := [][3]int{
		{-1, 0, 0}, {4, 0, 0},
		{0, -1, 0}, {0, 8, 0},
		{0, 0, -1}, {0, 0, 4},
	}
	for _, c := range outOfRange {
		if chunk.SetBlock(c[0], c[1], c[2], BlockStone) {
			t.Fatalf("out-of-range set (%v) accepted", c)
		}
		if _, ok := chunk.Block(c[0], c[1], c[2]); ok {
			t.Fatalf("out-of-range get (%v) returned a block", c)
		}
		if got := chunk.TypeAt(c[0], c[1], c[2]); got != BlockAir {
			t.Fatalf("out-of-range TypeAt (%v) = %q, want air", c, got)
		}
	}
}

func TestChunkAirClearsSlot(t *testing.T) {
	chunk := NewChunk(ChunkCoord{}, 4, 8)
	chunk.SetBlock(0, 0, 0, BlockSand)
	chunk.SetBlock(0, 0, 0, BlockAir)
	if _, ok := chunk.Block(0, 0, 0); ok {
		t.Fatal("air write should clear the slot")
	}
}

type fakeMesh struct {
	released bool
	empty    bool
}

func (m *fakeMesh) Empty() bool { return m.empty }
func (m *fakeMesh) Release()    { m.released = true }

func TestChunkDirtyFlagAndMeshLifecycle(t *testing.T) {
	chunk := NewChunk(ChunkCoord{}, 4, 8)
	if chunk.Dirty() {
		t.Fatal("fresh chunk should not be dirty")
	}

	chunk.SetBlock(0, 0, 0, BlockStone)
	if !chunk.Dirty() {
		t.Fatal("mutation should mark chunk dirty")
	}

	first := &fakeMesh{}
	chunk.SetMesh(first)
	if chunk.Dirty() {
		t.Fatal("meshing should clear the dirty flag")
	}

	second := &fakeMesh{}
	chunk.SetMesh(second)
	if !first.released {
		t.Fatal("replacing a mesh must release the previous one")
	}

	chunk.Close()
	if !second.released {
		t.Fatal("closing a chunk must release its mesh")
	}
	if chunk.Mesh() != nil {
		t.Fatal("closed chunk should hold no mesh")
	}
}

func TestChunkSetColumn(t *testing.T) {
	chunk := NewChunk(ChunkCoord{}, 4, 8)
	column := []BlockType{BlockStone, BlockStone, BlockDirt, BlockGrass}
	if !chunk.SetColumn(2, 1, column) {
		t.Fatal("in-range column rejected")
	}
	for y, want := range column {
		if got := chunk.TypeAt(2, y, 1); got != want {
			t.Fatalf("column slot %d = %q, want %q", y, got, want)
		}
	}
	for y := len(column); y < 8; y++ {
		if got := chunk.TypeAt(2, y, 1); got != BlockAir {
			t.Fatalf("slot above column height = %q, want air", got)
		}
	}
	if chunk.SetColumn(4, 0, column) {
		t.Fatal("out-of-range column accepted")
	}
}

func TestChunkForEachBlockSkipsAir(t *testing.T) {
	chunk := NewChunk(ChunkCoord{}, 4, 8)
	chunk.SetBlock(0, 0, 0, BlockStone)
	chunk.SetBlock(3, 7, 3, BlockGrass)

	var visited int
	chunk.ForEachBlock(func(x, y, z int, bt BlockType) bool {
		visited++
		if bt == BlockAir {
			t.Fatalf("iteration yielded air at (%d,%d,%d)", x, y, z)
		}
		return true
	})
	if visited != 2 {
		t.Fatalf("visited %d blocks, want 2", visited)
	}
}
