package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"

	"voxelfield/internal/config"
	"voxelfield/internal/mesh"
	"voxelfield/internal/preview"
	"voxelfield/internal/terrain"
	"voxelfield/internal/world"
)

// worldprobe generates a block of chunks through the real terrain pipeline
// and reports what came out: per-biome column counts, surface height range
// and mesh size. Useful for eyeballing a seed before running the simulation.
func main() {
	var (
		seed       = flag.Int64("seed", 12345, "terrain seed")
		centerX    = flag.Int("x", 0, "center chunk x")
		centerZ    = flag.Int("z", 0, "center chunk z")
		radius     = flag.Int("radius", 1, "chunk radius around the center (Chebyshev)")
		previewDir = flag.String("previews", "", "write isometric previews into this directory")
	)
	flag.Parse()

	if *radius < 0 {
		fmt.Fprintln(os.Stderr, "radius cannot be negative")
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.Terrain.Seed = *seed

	generator := terrain.NewGenerator(cfg.Terrain, cfg.World,
		log.New(os.Stderr, "terrain ", log.LstdFlags))
	builder := mesh.NewBuilder()
	classifier := generator.Classifier()

	color.Blue("== World Probe ==")
	fmt.Printf("Seed: %d\n", *seed)
	fmt.Printf("Center chunk: (%d,%d), radius %d\n", *centerX, *centerZ, *radius)
	fmt.Printf("Chunk size %d, world height %d, sea level %d\n",
		cfg.World.ChunkSize, cfg.World.WorldHeight, cfg.World.SeaLevel)

	biomeColumns := map[string]int{}
	minSurface, maxSurface := cfg.World.WorldHeight, 0
	totalQuads := 0
	totalChunks := 0
	start := time.Now()

	ctx := context.Background()
	for cx := *centerX - *radius; cx <= *centerX+*radius; cx++ {
		for cz := *centerZ - *radius; cz <= *centerZ+*radius; cz++ {
			coord := world.ChunkCoord{X: cx, Z: cz}
			chunk, err := generator.Generate(ctx, coord)
			if err != nil {
				color.Red("chunk (%d,%d) failed: %v", cx, cz, err)
				os.Exit(1)
			}
			totalChunks++

			for x := 0; x < cfg.World.ChunkSize; x++ {
				for z := 0; z < cfg.World.ChunkSize; z++ {
					worldX, worldZ := world.LocalToWorld(coord, x, z, cfg.World.ChunkSize)
					b := classifier.Classify(worldX, worldZ)
					biomeColumns[b.Name]++
					surface := generator.HeightAt(worldX, worldZ, b)
					if surface < minSurface {
						minSurface = surface
					}
					if surface > maxSurface {
						maxSurface = surface
					}
				}
			}

			m := builder.Build(chunk)
			totalQuads += m.QuadCount()
			fmt.Printf("chunk (%d,%d): %d quads, %d triangles\n",
				cx, cz, m.QuadCount(), m.TriangleCount())

			if *previewDir != "" {
				if err := preview.SaveChunkPreview(chunk, *previewDir); err != nil {
					color.Red("chunk (%d,%d) preview failed: %v", cx, cz, err)
					os.Exit(1)
				}
			}
		}
	}

	color.Green("Generated %d chunks in %s", totalChunks, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Surface height range: %d..%d\n", minSurface, maxSurface)
	fmt.Printf("Total quads: %d\n", totalQuads)

	names := make([]string, 0, len(biomeColumns))
	for name := range biomeColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Biome columns:")
	for _, name := range names {
		fmt.Printf("  %-10s %d\n", name, biomeColumns[name])
	}
	if *previewDir != "" {
		fmt.Printf("Previews written to %s\n", *previewDir)
	}
}
