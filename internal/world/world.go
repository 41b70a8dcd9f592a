package world

import (
	"context"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Generator describes terrain population for chunks.
type Generator interface {
	Generate(ctx context.Context, coord ChunkCoord) (*Chunk, error)
}

// Mesher builds the visible-surface geometry for a chunk.
type Mesher interface {
	Build(c *Chunk) MeshHandle
}

// MesherFunc adapts a function to the Mesher interface.
type MesherFunc func(c *Chunk) MeshHandle

func (f MesherFunc) Build(c *Chunk) MeshHandle { return f(c) }

// ChunkListener observes chunk lifecycle so render collaborators can pick up
// new meshes and withdraw unloaded ones.
type ChunkListener interface {
	ChunkAdded(c *Chunk)
	ChunkRemoved(coord ChunkCoord)
}

// World owns the table of loaded chunks and drives the streaming lifecycle
// around a moving observer. A chunk coordinate is present in the table iff
// it has been generated and not yet unloaded.
type World struct {
	size           int
	height         int
	renderDistance int
	unloadPadding  int

	generator Generator
	mesher    Mesher
	listeners []ChunkListener
	logger    *log.Logger

	chunks map[ChunkCoord]*Chunk
}

// Options configures a World; zero values fall back to safe defaults.
type Options struct {
	ChunkSize      int
	WorldHeight    int
	RenderDistance int
	UnloadPadding  int
	Generator      Generator
	Mesher         Mesher
	Logger         *log.Logger
}

func New(opts Options) *World {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 16
	}
	if opts.WorldHeight <= 0 {
		opts.WorldHeight = 128
	}
	if opts.UnloadPadding <= 0 {
		opts.UnloadPadding = 2
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "world ", log.LstdFlags)
	}
	return &World{
		size:           opts.ChunkSize,
		height:         opts.WorldHeight,
		renderDistance: opts.RenderDistance,
		unloadPadding:  opts.UnloadPadding,
		generator:      opts.Generator,
		mesher:         opts.Mesher,
		logger:         logger,
		chunks:         make(map[ChunkCoord]*Chunk),
	}
}

// AddListener registers a chunk lifecycle observer.
func (w *World) AddListener(l ChunkListener) {
	if l == nil {
		return
	}
	w.listeners = append(w.listeners, l)
}

// ChunkSize returns the horizontal chunk footprint in blocks.
func (w *World) ChunkSize() int { return w.size }

// Height returns the world height in blocks.
func (w *World) Height() int { return w.height }

// ChunkCount reports how many chunks are currently loaded.
func (w *World) ChunkCount() int { return len(w.chunks) }

// ChunkAt returns the loaded chunk at the given coordinate, if any.
func (w *World) ChunkAt(coord ChunkCoord) (*Chunk, bool) {
	c, ok := w.chunks[coord]
	return c, ok
}

// ObserverChunk maps a continuous observer position to its chunk coordinate.
func (w *World) ObserverChunk(observer mgl64.Vec3) ChunkCoord {
	return WorldToChunk(
		int(math.Floor(observer.X())),
		int(math.Floor(observer.Z())),
		w.size,
	)
}

// Update advances streaming by one tick: every chunk within the render
// distance (Chebyshev, inclusive) of the observer's chunk is generated and
// meshed if missing, and every loaded chunk beyond renderDistance plus the
// hysteresis padding is unloaded. Generation runs to completion inside this
// call.
func (w *World) Update(ctx context.Context, observer mgl64.Vec3) error {
	center := w.ObserverChunk(observer)

	for dx := -w.renderDistance; dx <= w.renderDistance; dx++ {
		for dz := -w.renderDistance; dz <= w.renderDistance; dz++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if _, ok := w.chunks[coord]; ok {
				continue
			}
			if err := w.loadChunk(ctx, coord); err != nil {
				return err
			}
		}
	}

	limit := w.renderDistance + w.unloadPadding
	for coord, chunk := range w.chunks {
		if coord.Chebyshev(center) <= limit {
			continue
		}
		chunk.Close()
		delete(w.chunks, coord)
		for _, l := range w.listeners {
			l.ChunkRemoved(coord)
		}
		w.logger.Printf("chunk (%d,%d) unloaded", coord.X, coord.Z)
	}

	return nil
}

func (w *World) loadChunk(ctx context.Context, coord ChunkCoord) error {
	chunk, err := w.generator.Generate(ctx, coord)
	if err != nil {
		return err
	}
	if w.mesher != nil {
		chunk.SetMesh(w.mesher.Build(chunk))
	}
	w.chunks[coord] = chunk
	for _, l := range w.listeners {
		l.ChunkAdded(chunk)
	}
	return nil
}

// locate resolves world block coordinates to a loaded chunk and local
// offsets. Absent chunk or out-of-range y reports false.
func (w *World) locate(x, y, z int) (*Chunk, int, int, bool) {
	if y < 0 || y >= w.height {
		return nil, 0, 0, false
	}
	chunk, ok := w.chunks[WorldToChunk(x, z, w.size)]
	if !ok {
		return nil, 0, 0, false
	}
	localX, localZ := WorldToLocal(x, z, w.size)
	return chunk, localX, localZ, true
}

// GetBlock returns the voxel at world coordinates, absent if the owning
// chunk is not loaded, y is out of range, or the slot is air.
func (w *World) GetBlock(x, y, z int) (Block, bool) {
	chunk, localX, localZ, ok := w.locate(x, y, z)
	if !ok {
		return Block{}, false
	}
	return chunk.Block(localX, y, localZ)
}

// SetBlock installs (or clears, for air) a voxel at world coordinates,
// marks the chunk dirty and rebuilds its mesh immediately. Returns false if
// the target chunk is not loaded or y is out of range.
func (w *World) SetBlock(x, y, z int, t BlockType) bool {
	chunk, localX, localZ, ok := w.locate(x, y, z)
	if !ok {
		return false
	}
	if !chunk.SetBlock(localX, y, localZ, t) {
		return false
	}
	if w.mesher != nil {
		chunk.SetMesh(w.mesher.Build(chunk))
	}
	return true
}

// IsBlockSolid reports whether a voxel exists at world coordinates and its
// material is collidable.
func (w *World) IsBlockSolid(x, y, z int) bool {
	block, ok := w.GetBlock(x, y, z)
	if !ok {
		return false
	}
	return DefOf(block.Type).Solid
}

// Close unloads every chunk, releasing mesh resources.
func (w *World) Close() {
	for coord, chunk := range w.chunks {
		chunk.Close()
		delete(w.chunks, coord)
		for _, l := range w.listeners {
			l.ChunkRemoved(coord)
		}
	}
}
