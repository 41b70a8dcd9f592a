package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SolidFunc reports whether the voxel at integer world coordinates is
// collidable. It is the resolver's only dependency on world state; the
// resolver never mutates voxels.
type SolidFunc func(x, y, z int) bool

// Body is an axis-aligned observer body. Position is the center of the feet;
// the body spans Position.Y to Position.Y+Height vertically and +-Radius on
// X and Z.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64
	Height   float64
	OnGround bool
}

// Resolver performs discrete voxel collision resolution. Axes are resolved
// sequentially in the order Y, X, Z, each against the position already
// adjusted by the prior axis. There is no continuous sweep: at extreme
// per-frame velocities a body can pass through a one-voxel wall, which is
// acceptable for the bounded speeds this system runs at.
type Resolver struct {
	gravity float64
	solid   SolidFunc
}

func NewResolver(gravity float64, solid SolidFunc) *Resolver {
	return &Resolver{gravity: gravity, solid: solid}
}

// Step integrates gravity and resolves one frame of motion.
func (r *Resolver) Step(b *Body, dt float64) {
	if b == nil || dt <= 0 {
		return
	}
	b.Velocity[1] -= r.gravity * dt
	r.resolveVertical(b, dt)
	r.resolveHorizontal(b, dt, 0)
	r.resolveHorizontal(b, dt, 2)
}

func (r *Resolver) resolveVertical(b *Body, dt float64) {
	vy := b.Velocity.Y()
	if vy == 0 {
		return
	}
	next := b.Position.Y() + vy*dt

	if vy < 0 {
		footLayer := int(math.Floor(next))
		if r.footprintSolid(b, footLayer) {
			// Rest exactly on top of the hit layer.
			b.Position[1] = float64(footLayer + 1)
			b.Velocity[1] = 0
			b.OnGround = true
			return
		}
		b.Position[1] = next
		b.OnGround = false
		return
	}

	headLayer := int(math.Floor(next + b.Height))
	if r.footprintSolid(b, headLayer) {
		b.Position[1] = float64(headLayer) - b.Height
		b.Velocity[1] = 0
	} else {
		b.Position[1] = next
	}
	b.OnGround = false
}

// footprintSolid scans every integer column the body's radius overlaps at
// one voxel layer.
func (r *Resolver) footprintSolid(b *Body, layer int) bool {
	minX := int(math.Floor(b.Position.X() - b.Radius))
	maxX := int(math.Floor(b.Position.X() + b.Radius))
	minZ := int(math.Floor(b.Position.Z() - b.Radius))
	maxZ := int(math.Floor(b.Position.Z() + b.Radius))
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			if r.solid(x, layer, z) {
				return true
			}
		}
	}
	return false
}

// resolveHorizontal handles one horizontal axis (0 for X, 2 for Z): the
// leading-edge voxel column in the direction of travel is scanned across
// every layer the body's height spans; any solid hit reverts the axis and
// zeroes its velocity.
func (r *Resolver) resolveHorizontal(b *Body, dt float64, axis int) {
	vel := b.Velocity[axis]
	if vel == 0 {
		return
	}
	next := b.Position[axis] + vel*dt

	lead := int(math.Floor(next + math.Copysign(b.Radius, vel)))
	var colX, colZ int
	if axis == 0 {
		colX = lead
		colZ = int(math.Floor(b.Position.Z()))
	} else {
		colX = int(math.Floor(b.Position.X()))
		colZ = lead
	}

	bottom := int(math.Floor(b.Position.Y()))
	top := int(math.Floor(b.Position.Y() + b.Height))
	for y := bottom; y <= top; y++ {
		if r.solid(colX, y, colZ) {
			b.Velocity[axis] = 0
			return
		}
	}
	b.Position[axis] = next
}
