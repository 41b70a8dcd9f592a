package preview

import (
	"log"
	"os"

	"voxelfield/internal/world"
)

// Renderer mirrors the loaded chunk set as preview PNGs on disk: a file is
// written when a chunk streams in and removed when it streams out. It
// implements world.ChunkListener.
type Renderer struct {
	outputDir string
	logger    *log.Logger
}

func NewRenderer(outputDir string, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(log.Writer(), "preview ", log.LstdFlags)
	}
	return &Renderer{outputDir: outputDir, logger: logger}
}

func (r *Renderer) ChunkAdded(c *world.Chunk) {
	if err := SaveChunkPreview(c, r.outputDir); err != nil {
		r.logger.Printf("chunk (%d,%d) preview failed: %v", c.Coord.X, c.Coord.Z, err)
	}
}

func (r *Renderer) ChunkRemoved(coord world.ChunkCoord) {
	if err := os.Remove(previewPath(r.outputDir, coord)); err != nil && !os.IsNotExist(err) {
		r.logger.Printf("chunk (%d,%d) preview cleanup failed: %v", coord.X, coord.Z, err)
	}
}
