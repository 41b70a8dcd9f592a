package terrain

import (
	"context"
	"log"
	"math"
	"runtime"
	"sync"
	"time"

	"voxelfield/internal/biome"
	"voxelfield/internal/config"
	"voxelfield/internal/noise"
	"voxelfield/internal/world"
)

// Height noise bands: three fixed scales with fixed amplitudes summed around
// sea level.
const (
	broadScale  = 0.01
	mediumScale = 0.05
	fineScale   = 0.1

	broadAmplitude  = 30.0
	mediumAmplitude = 15.0
	fineAmplitude   = 5.0
)

// Column banding depths measured from the surface slot.
const (
	dirtBandDepth = 3
	sandBandDepth = 3
	oceanFloorDip = 10
	peakThreshold = 20
)

// Generator produces deterministic chunk terrain: a single integer surface
// height per column (no overhangs or caves), biome-banded materials below
// it, and trees above it.
type Generator struct {
	cfg        config.TerrainConfig
	chunkSize  int
	height     int
	seaLevel   int
	field      *noise.Field
	classifier *biome.Classifier
	logger     *log.Logger
}

func NewGenerator(cfg config.TerrainConfig, worldCfg config.WorldConfig, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(log.Writer(), "terrain ", log.LstdFlags)
	}
	return &Generator{
		cfg:        cfg,
		chunkSize:  worldCfg.ChunkSize,
		height:     worldCfg.WorldHeight,
		seaLevel:   worldCfg.SeaLevel,
		field:      noise.NewField(cfg.Seed),
		classifier: biome.NewClassifier(cfg.Seed),
		logger:     logger,
	}
}

// Classifier exposes the biome classifier sharing the generator's seed.
func (g *Generator) Classifier() *biome.Classifier {
	return g.classifier
}

// HeightAt computes the surface height for a column: three noise bands
// summed around sea level, a biome adjustment, then clamping into the
// configured range. Ocean columns are pinned below sea level instead of
// adjusted.
func (g *Generator) HeightAt(worldX, worldZ int, b biome.Biome) int {
	fx := float64(worldX)
	fz := float64(worldZ)

	h := float64(g.seaLevel)
	h += broadAmplitude * g.field.Noise2D(fx*broadScale, fz*broadScale)
	h += mediumAmplitude * g.field.Noise2D(fx*mediumScale, fz*mediumScale)
	h += fineAmplitude * g.field.Noise2D(fx*fineScale, fz*fineScale)

	if b.ID == biome.Ocean {
		h = float64(g.seaLevel - oceanFloorDip)
	} else {
		h += float64(b.HeightAdjust)
	}

	return clampInt(int(math.Floor(h)), g.cfg.MinHeight, g.cfg.MaxHeight)
}

// fillColumn builds the vertical material profile for a column of the given
// surface height, from slot 0 to the surface inclusive. Slots above stay
// air.
func (g *Generator) fillColumn(surface int, b biome.Biome) []world.BlockType {
	column := make([]world.BlockType, surface+1)
	for y := 0; y <= surface; y++ {
		column[y] = g.materialAt(y, surface, b)
	}
	return column
}

func (g *Generator) materialAt(y, surface int, b biome.Biome) world.BlockType {
	depth := surface - y
	aboveSea := surface > g.seaLevel

	switch b.ID {
	case biome.Desert:
		if depth <= sandBandDepth {
			return world.BlockSand
		}
		return world.BlockStone
	case biome.Mountains:
		// Peaks stay bare stone; lower mountain slopes keep the normal
		// grass and dirt banding.
		if surface > g.seaLevel+peakThreshold {
			return world.BlockStone
		}
	}

	if !aboveSea {
		return world.BlockStone
	}
	switch {
	case depth == 0:
		return world.BlockGrass
	case depth <= dirtBandDepth:
		return world.BlockDirt
	default:
		return world.BlockStone
	}
}

// Generate fills every column of the chunk through a bounded worker pool,
// then runs the single-threaded tree pass. The call is synchronous: it
// returns only once the chunk is fully populated, and the result depends
// only on the seed and the chunk coordinate.
func (g *Generator) Generate(ctx context.Context, coord world.ChunkCoord) (*world.Chunk, error) {
	started := time.Now()
	chunk := world.NewChunk(coord, g.chunkSize, g.height)

	totalColumns := g.chunkSize * g.chunkSize
	if totalColumns <= 0 {
		return chunk, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type columnTask struct {
		localX int
		localZ int
	}

	type columnResult struct {
		localX int
		localZ int
		height int
		biome  biome.Biome
		column []world.BlockType
		err    error
	}

	workers := g.workerCount(totalColumns)
	tasks := make(chan columnTask, workers)
	results := make(chan columnResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				if err := ctx.Err(); err != nil {
					select {
					case results <- columnResult{err: err}:
					default:
					}
					return
				}

				worldX, worldZ := world.LocalToWorld(coord, task.localX, task.localZ, g.chunkSize)
				b := g.classifier.Classify(worldX, worldZ)
				surface := g.HeightAt(worldX, worldZ, b)

				select {
				case results <- columnResult{
					localX: task.localX,
					localZ: task.localZ,
					height: surface,
					biome:  b,
					column: g.fillColumn(surface, b),
				}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for x := 0; x < g.chunkSize; x++ {
			for z := 0; z < g.chunkSize; z++ {
				select {
				case <-ctx.Done():
					return
				case tasks <- columnTask{localX: x, localZ: z}:
				}
			}
		}
	}()

	heights := make([]int, totalColumns)
	biomes := make([]biome.Biome, totalColumns)
	for result := range results {
		if result.err != nil {
			cancel()
			return nil, result.err
		}
		chunk.SetColumn(result.localX, result.localZ, result.column)
		idx := result.localX*g.chunkSize + result.localZ
		heights[idx] = result.height
		biomes[idx] = result.biome
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.placeTrees(chunk, coord, heights, biomes)

	g.logger.Printf("chunk (%d,%d) generated in %s", coord.X, coord.Z, time.Since(started).Round(time.Microsecond))
	return chunk, nil
}

func (g *Generator) workerCount(totalColumns int) int {
	if g.cfg.Workers > 0 {
		if g.cfg.Workers < totalColumns {
			return g.cfg.Workers
		}
		return totalColumns
	}

	workers := runtime.GOMAXPROCS(0) * 2
	if workers > totalColumns {
		workers = totalColumns
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
