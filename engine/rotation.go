package engine

import (
	"math"

	"github.com/plus3/welltris/piece"
)

// RotationScheduler animates accepted rotations a step per tick and enforces
// the cooldown between them. Requests are queued first in, first out.
type RotationScheduler struct {
	step          float64
	cooldownTicks int
	epsilon       float64

	queue    []piece.Euler
	target   piece.Euler
	cooldown int
}

func NewRotationScheduler(step float64, cooldownTicks int, epsilon float64) *RotationScheduler {
	return &RotationScheduler{
		step:          step,
		cooldownTicks: cooldownTicks,
		epsilon:       epsilon,
	}
}

// Animating reports whether a rotation is in progress.
func (r *RotationScheduler) Animating() bool {
	return len(r.queue) > 0
}

// Cooldown returns the ticks left before gravity and new rotations resume.
func (r *RotationScheduler) Cooldown() int {
	return r.cooldown
}

// Ready reports whether a new rotation would be accepted.
func (r *RotationScheduler) Ready() bool {
	return !r.Animating() && r.cooldown == 0
}

// Pending returns the number of queued rotations.
func (r *RotationScheduler) Pending() int {
	return len(r.queue)
}

// Request queues delta for animation and starts the cooldown. A zero delta is
// refused. The caller is
// responsible for checking the target orientation against the well.
func (r *RotationScheduler) Request(from piece.Euler, delta piece.Euler) bool {
	if delta.IsZero() || !r.Ready() {
		return false
	}
	r.queue = append(r.queue, delta)
	r.target = from.Add(delta).Snapped()
	r.cooldown = r.cooldownTicks
	return true
}

// TickCooldown consumes one tick of cooldown and reports whether any was
// left.
func (r *RotationScheduler) TickCooldown() bool {
	if r.cooldown > 0 {
		r.cooldown--
		return true
	}
	return false
}

// Advance turns p one step toward the head of the queue. When every axis of
// the remaining delta falls under epsilon the orientation snaps to the
// nearest quarter turn, the head is dropped and Advance returns true.
func (r *RotationScheduler) Advance(p *piece.Instance) bool {
	if len(r.queue) == 0 {
		return false
	}

	remaining := &r.queue[0]
	step := piece.Euler{
		X: r.stepToward(remaining.X),
		Y: r.stepToward(remaining.Y),
		Z: r.stepToward(remaining.Z),
	}

	p.Rotation = p.Rotation.Add(step)
	*remaining = remaining.Sub(step)

	if math.Abs(remaining.X) < r.epsilon && math.Abs(remaining.Y) < r.epsilon && math.Abs(remaining.Z) < r.epsilon {
		p.Rotation = p.Rotation.Snapped()
		r.queue = r.queue[1:]
		return true
	}
	return false
}

// Finish applies every queued rotation to p at once.
func (r *RotationScheduler) Finish(p *piece.Instance) {
	if len(r.queue) == 0 {
		return
	}
	p.Rotation = r.target
	r.queue = r.queue[:0]
}

// Reset drops queued rotations and the cooldown.
func (r *RotationScheduler) Reset() {
	r.queue = r.queue[:0]
	r.target = piece.Euler{}
	r.cooldown = 0
}

func (r *RotationScheduler) stepToward(remaining float64) float64 {
	if math.Abs(remaining) <= r.step {
		return remaining
	}
	return math.Copysign(r.step, remaining)
}
