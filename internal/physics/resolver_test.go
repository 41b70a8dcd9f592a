package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// flatGround is solid everywhere at or below layer 40.
func flatGround(_, y, _ int) bool {
	return y <= 40
}

func newTestBody() *Body {
	return &Body{
		Position: mgl64.Vec3{8.5, 41, 8.5},
		Radius:   0.3,
		Height:   1.8,
	}
}

func TestRestingBodyIsStable(t *testing.T) {
	resolver := NewResolver(24.0, flatGround)
	body := newTestBody()

	for i := 0; i < 200; i++ {
		resolver.Step(body, 1.0/60.0)
		if body.Position != (mgl64.Vec3{8.5, 41, 8.5}) {
			t.Fatalf("step %d: body drifted to %v", i, body.Position)
		}
		if !body.OnGround {
			t.Fatalf("step %d: ground contact lost", i)
		}
		if body.Velocity.Y() != 0 {
			t.Fatalf("step %d: residual vertical velocity %v", i, body.Velocity.Y())
		}
	}
}

func TestFallingBodyLandsOnSurface(t *testing.T) {
	resolver := NewResolver(24.0, flatGround)
	body := newTestBody()
	body.Position[1] = 50

	for i := 0; i < 300 && !body.OnGround; i++ {
		resolver.Step(body, 1.0/60.0)
	}
	if !body.OnGround {
		t.Fatal("body never landed")
	}
	if body.Position.Y() != 41 {
		t.Fatalf("landed at y=%v, want exactly 41", body.Position.Y())
	}
}

func TestAirborneBodyReportsNoGroundContact(t *testing.T) {
	resolver := NewResolver(24.0, flatGround)
	body := newTestBody()
	body.Position[1] = 60
	body.OnGround = true

	resolver.Step(body, 1.0/60.0)
	if body.OnGround {
		t.Fatal("free-falling body still reports ground contact")
	}
}

func TestJumpBumpsHeadOnCeiling(t *testing.T) {
	// Floor at 40 and a ceiling slab at layer 44.
	solid := func(_, y, _ int) bool {
		return y <= 40 || y == 44
	}
	resolver := NewResolver(24.0, solid)
	body := newTestBody()
	body.Velocity[1] = 12

	bumped := false
	for i := 0; i < 120; i++ {
		resolver.Step(body, 1.0/60.0)
		if body.Position.Y()+body.Height > 44+1e-9 {
			t.Fatalf("step %d: head penetrated ceiling, y=%v", i, body.Position.Y())
		}
		if body.Position.Y() == 44-body.Height {
			bumped = true
		}
	}
	if !bumped {
		t.Fatal("body never reached the ceiling snap position")
	}
}

func TestWallBlocksHorizontalMotion(t *testing.T) {
	// Ground plus a wall occupying x=10.
	solid := func(x, y, _ int) bool {
		return y <= 40 || (x == 10 && y >= 41 && y <= 44)
	}
	resolver := NewResolver(24.0, solid)
	body := newTestBody()
	body.Position[0] = 9.5

	for i := 0; i < 120; i++ {
		body.Velocity[0] = 4.5
		resolver.Step(body, 1.0/60.0)
	}
	if body.Position.X()+body.Radius >= 10 {
		t.Fatalf("body pushed into wall, x=%v", body.Position.X())
	}
	if body.Velocity.X() != 0 {
		t.Fatalf("velocity not zeroed against wall: %v", body.Velocity.X())
	}
}

func TestWallOnZAxisBlocksIndependently(t *testing.T) {
	solid := func(_, y, z int) bool {
		return y <= 40 || (z == 12 && y >= 41 && y <= 44)
	}
	resolver := NewResolver(24.0, solid)
	body := newTestBody()
	body.Position[2] = 11.4

	for i := 0; i < 60; i++ {
		body.Velocity[0] = 1.0
		body.Velocity[2] = 4.5
		resolver.Step(body, 1.0/60.0)
	}
	if body.Position.Z()+body.Radius >= 12 {
		t.Fatalf("body pushed through z wall, z=%v", body.Position.Z())
	}
	if body.Position.X() <= 8.5 {
		t.Fatal("x motion should continue while z is blocked")
	}
}

func TestStepOrderResolvesVerticalFirst(t *testing.T) {
	// A ledge: falling diagonally onto its top must land, not clip the
	// side, because Y resolves before X against the updated position.
	solid := func(x, y, _ int) bool {
		return x >= 10 && y <= 44
	}
	resolver := NewResolver(24.0, solid)
	body := &Body{
		Position: mgl64.Vec3{10.5, 45.02, 8.5},
		Velocity: mgl64.Vec3{0, -2, 0},
		Radius:   0.3,
		Height:   1.8,
	}

	resolver.Step(body, 1.0/60.0)
	if !body.OnGround {
		t.Fatal("body should have landed on the ledge")
	}
	if body.Position.Y() != 45 {
		t.Fatalf("landed at %v, want 45", body.Position.Y())
	}
}

func TestZeroAndNegativeDtAreNoOps(t *testing.T) {
	resolver := NewResolver(24.0, flatGround)
	body := newTestBody()
	before := *body
	resolver.Step(body, 0)
	resolver.Step(body, -1)
	if *body != before {
		t.Fatalf("non-positive dt mutated body: %+v", body)
	}
}

func TestFootprintCoversRadiusOverlap(t *testing.T) {
	// Only the column at (9,40,8) is solid; a body centered at x=9.8 with
	// radius 0.3 still overlaps it and must land.
	solid := func(x, y, z int) bool {
		return x == 9 && y == 40 && z == 8
	}
	resolver := NewResolver(24.0, solid)
	body := &Body{
		Position: mgl64.Vec3{9.8, 41.5, 8.5},
		Radius:   0.3,
		Height:   1.8,
	}

	for i := 0; i < 60 && !body.OnGround; i++ {
		resolver.Step(body, 1.0/60.0)
	}
	if !body.OnGround || body.Position.Y() != 41 {
		t.Fatalf("body missed partial footprint support: y=%v onGround=%v",
			body.Position.Y(), body.OnGround)
	}
	if math.Abs(body.Position.X()-9.8) > 1e-9 {
		t.Fatalf("x drifted to %v", body.Position.X())
	}
}
