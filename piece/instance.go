package piece

import (
	"fmt"
	"math"

	"github.com/plus3/welltris/well"
)

// Instance is a piece in flight: a kind at a continuous position and
// orientation.
type Instance struct {
	Kind     Kind
	Material well.Material
	Position Vec3
	Rotation Euler
}

// New returns an unrotated instance of k at the origin.
func New(k Kind, m well.Material) Instance {
	return Instance{Kind: k, Material: m}
}

func (p Instance) IsBomb() bool {
	return p.Kind.IsBomb()
}

// Cells returns the grid coordinates covered by the piece, one per sub-block
// in catalog order. Each sub-block center is rotated, translated and rounded
// to the nearest cell.
func (p Instance) Cells() []well.Coord {
	def := catalog[p.Kind]
	cells := make([]well.Coord, len(def.Offsets))
	for i, o := range def.Offsets {
		r := p.Rotation.apply(Vec3{X: float64(o.X), Y: float64(o.Y), Z: float64(o.Z)})
		cells[i] = well.Coord{
			X: place(p.Position.X, r.X),
			Y: place(p.Position.Y, r.Y),
			Z: place(p.Position.Z, r.Z),
		}
	}
	return cells
}

// place rounds a sub-block center on one axis. Whole-cell offsets are added
// after rounding the pivot so a rigid piece never splits across a tie.
func place(pivot, offset float64) int {
	d := denoise(offset)
	if d == math.Trunc(d) {
		return roundHalfUp(pivot) + int(d)
	}
	return roundHalfUp(pivot + d)
}

// Pivot returns the cell containing the piece pivot.
func (p Instance) Pivot() well.Coord {
	return well.Coord{
		X: roundHalfUp(p.Position.X),
		Y: roundHalfUp(p.Position.Y),
		Z: roundHalfUp(p.Position.Z),
	}
}

func (p Instance) Translated(d Vec3) Instance {
	p.Position = p.Position.Add(d)
	return p
}

func (p Instance) Rotated(d Euler) Instance {
	p.Rotation = p.Rotation.Add(d)
	return p
}

// Snapped returns p with its rotation settled on the nearest quarter turns.
func (p Instance) Snapped() Instance {
	p.Rotation = p.Rotation.Snapped()
	return p
}

func (p Instance) String() string {
	return fmt.Sprintf("%s@(%.3f,%.3f,%.3f)", p.Kind, p.Position.X, p.Position.Y, p.Position.Z)
}
