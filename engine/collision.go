package engine

import (
	"fmt"

	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/well"
)

// DetectFallCollision reports whether p cannot descend another cell: some
// sub-block sits on the floor or on an occupied cell. Cells above the ceiling
// never block.
func DetectFallCollision(g *well.Grid, p piece.Instance) bool {
	for _, c := range p.Cells() {
		below := c.Below()
		if below.Y < 0 {
			return true
		}
		if below.Y >= g.Height() {
			continue
		}
		if g.IsOccupied(below) {
			return true
		}
	}
	return false
}

// CheckMovementCollision reports whether any sub-block of p lies outside the
// well or on an occupied cell.
func CheckMovementCollision(g *well.Grid, p piece.Instance) bool {
	for _, c := range p.Cells() {
		if g.IsOccupied(c) {
			return true
		}
	}
	return false
}

// CanRotate reports whether p may turn by delta without colliding.
func CanRotate(g *well.Grid, p piece.Instance, delta piece.Euler) bool {
	return !CheckMovementCollision(g, p.Rotated(delta))
}

// Place writes p into the well. Every target is validated first, so a
// failed placement leaves the well unchanged.
func Place(g *well.Grid, p piece.Instance) error {
	cells := p.Cells()
	seen := make(map[well.Coord]struct{}, len(cells))
	for _, c := range cells {
		if c.Y >= g.Height() {
			return fmt.Errorf("%w: %s locked above the ceiling at %v", ErrTopOut, p.Kind, c)
		}
		if _, dup := seen[c]; dup || g.IsOccupied(c) {
			return fmt.Errorf("%w: %s locked onto occupied cell %v", ErrTopOut, p.Kind, c)
		}
		seen[c] = struct{}{}
	}

	for _, c := range cells {
		g.Set(c, p.Material)
	}
	return nil
}

// Project returns p moved straight down to the lowest pose it can reach.
func Project(g *well.Grid, p piece.Instance) piece.Instance {
	for !DetectFallCollision(g, p) {
		p = p.Translated(piece.Vec3{Y: -1})
	}
	return p
}
