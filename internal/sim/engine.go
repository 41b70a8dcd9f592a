package sim

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"voxelfield/internal/config"
	"voxelfield/internal/physics"
	"voxelfield/internal/world"
)

// Intent is the observer's desired motion for one tick. Move is a direction
// on the X/Z plane; magnitudes above 1 are scaled down so diagonal input
// cannot exceed the configured speed.
type Intent struct {
	Move mgl64.Vec2
	Jump bool
}

// IntentFunc supplies the observer intent each tick. Tests use scripted
// functions; the headless binary uses Wander.
type IntentFunc func(elapsed time.Duration, body *physics.Body) Intent

type tickerFactory func(time.Duration) (<-chan time.Time, func())

type timeSource func() time.Time

func defaultTickerFactory() tickerFactory {
	return func(d time.Duration) (<-chan time.Time, func()) {
		ticker := time.NewTicker(d)
		return ticker.C, ticker.Stop
	}
}

// Engine advances the simulation: per tick it applies the observer intent,
// steps collision physics and streams chunks around the resulting position.
type Engine struct {
	cfg      config.SimConfig
	world    *world.World
	resolver *physics.Resolver
	body     *physics.Body
	intent   IntentFunc
	logger   *log.Logger

	wg        sync.WaitGroup
	newTicker tickerFactory
	now       timeSource

	elapsed   time.Duration
	sinceStat time.Duration
}

func New(cfg config.SimConfig, w *world.World, resolver *physics.Resolver, body *physics.Body, intent IntentFunc, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(log.Writer(), "sim ", log.LstdFlags)
	}
	if intent == nil {
		intent = func(time.Duration, *physics.Body) Intent { return Intent{} }
	}
	return &Engine{
		cfg:       cfg,
		world:     w,
		resolver:  resolver,
		body:      body,
		intent:    intent,
		logger:    logger,
		newTicker: defaultTickerFactory(),
		now:       time.Now,
	}
}

// Body exposes the observer body for inspection.
func (e *Engine) Body() *physics.Body {
	return e.body
}

// Start launches the tick loop. The loop exits when ctx is cancelled; use
// Wait to block until it has drained.
func (e *Engine) Start(ctx context.Context) {
	if e == nil || e.world == nil {
		return
	}
	e.wg.Add(1)
	go e.run(ctx)
}

func (e *Engine) run(ctx context.Context) {
	defer e.wg.Done()
	if e.newTicker == nil {
		e.newTicker = defaultTickerFactory()
	}
	if e.now == nil {
		e.now = time.Now
	}

	tick := e.cfg.TickRate.Duration()
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	tickerC, stop := e.newTicker(tick)
	defer stop()

	last := e.now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tickerC:
			delta := now.Sub(last)
			if delta <= 0 || delta > 10*tick {
				delta = tick
			}
			last = now
			if err := e.Step(ctx, delta); err != nil {
				if ctx.Err() != nil {
					return
				}
				e.logger.Printf("tick failed: %v", err)
			}
		}
	}
}

// Step advances the simulation by one frame of delta. Exported so tests can
// drive the engine deterministically without a wall clock.
func (e *Engine) Step(ctx context.Context, delta time.Duration) error {
	dt := delta.Seconds()
	e.elapsed += delta

	in := e.intent(e.elapsed, e.body)
	e.applyIntent(in)
	e.resolver.Step(e.body, dt)

	if err := e.world.Update(ctx, e.body.Position); err != nil {
		return err
	}

	e.sinceStat += delta
	if interval := e.cfg.StatInterval.Duration(); interval > 0 && e.sinceStat >= interval {
		e.sinceStat = 0
		coord := e.world.ObserverChunk(e.body.Position)
		e.logger.Printf("observer at (%.1f, %.1f, %.1f) chunk (%d,%d), %d chunks loaded",
			e.body.Position.X(), e.body.Position.Y(), e.body.Position.Z(),
			coord.X, coord.Z, e.world.ChunkCount())
	}
	return nil
}

func (e *Engine) applyIntent(in Intent) {
	move := in.Move
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	e.body.Velocity[0] = move.X() * e.cfg.MoveSpeed
	e.body.Velocity[2] = move.Y() * e.cfg.MoveSpeed
	if in.Jump && e.body.OnGround {
		e.body.Velocity[1] = e.cfg.JumpSpeed
		e.body.OnGround = false
	}
}

// Wait blocks until the tick loop has exited.
func (e *Engine) Wait() {
	if e == nil {
		return
	}
	e.wg.Wait()
}

// Wander returns a deterministic roaming intent: the observer walks in a
// direction that drifts over time and hops whenever it has been grounded
// for a couple of seconds.
func Wander(seed int64) IntentFunc {
	lastJump := time.Duration(0)
	return func(elapsed time.Duration, body *physics.Body) Intent {
		// Angle advances a full turn roughly every 40 seconds, offset
		// by the seed so different worlds roam differently.
		angle := float64(seed%360)*(math.Pi/180) + elapsed.Seconds()*0.157
		in := Intent{Move: mgl64.Vec2{math.Cos(angle), math.Sin(angle)}}
		if body.OnGround && elapsed-lastJump > 2*time.Second {
			in.Jump = true
			lastJump = elapsed
		}
		return in
	}
}
