package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"voxelfield/internal/config"
	"voxelfield/internal/mesh"
	"voxelfield/internal/physics"
	"voxelfield/internal/preview"
	"voxelfield/internal/sim"
	"voxelfield/internal/terrain"
	"voxelfield/internal/world"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to world configuration file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	generator := terrain.NewGenerator(cfg.Terrain, cfg.World,
		log.New(log.Writer(), "terrain ", log.LstdFlags))
	builder := mesh.NewBuilder()

	w := world.New(world.Options{
		ChunkSize:      cfg.World.ChunkSize,
		WorldHeight:    cfg.World.WorldHeight,
		RenderDistance: cfg.World.RenderDistance,
		UnloadPadding:  cfg.World.UnloadPadding,
		Generator:      generator,
		Mesher: world.MesherFunc(func(c *world.Chunk) world.MeshHandle {
			return builder.Build(c)
		}),
		Logger: log.New(log.Writer(), "world ", log.LstdFlags),
	})
	defer w.Close()

	if cfg.Preview.Enabled {
		w.AddListener(preview.NewRenderer(cfg.Preview.OutputDir,
			log.New(log.Writer(), "preview ", log.LstdFlags)))
	}

	body := spawnBody(cfg, generator)
	resolver := physics.NewResolver(cfg.Physics.Gravity, w.IsBlockSolid)
	engine := sim.New(cfg.Sim, w, resolver, body, sim.Wander(cfg.Terrain.Seed),
		log.New(log.Writer(), "sim ", log.LstdFlags))

	ctx, cancel := signalContext()
	defer cancel()

	log.Printf("world seed %d, observer spawned at (%.1f, %.1f, %.1f)",
		cfg.Terrain.Seed, body.Position.X(), body.Position.Y(), body.Position.Z())

	engine.Start(ctx)
	engine.Wait()
	log.Printf("simulation stopped")
}

// spawnBody places the observer one block above the terrain surface at the
// world origin.
func spawnBody(cfg *config.Config, generator *terrain.Generator) *physics.Body {
	b := generator.Classifier().Classify(0, 0)
	surface := generator.HeightAt(0, 0, b)
	return &physics.Body{
		Position: mgl64.Vec3{0.5, float64(surface + 2), 0.5},
		Radius:   cfg.Physics.PlayerRadius,
		Height:   cfg.Physics.PlayerHeight,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}

		// Ensure the process terminates if shutdown stalls.
		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
