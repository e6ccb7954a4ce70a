package piece

import "math"

// Vec3 is a continuous position in cell units.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Euler is an orientation in radians, applied in X, Y, Z order so that the
// combined rotation is Rx * Ry * Rz.
type Euler struct {
	X, Y, Z float64
}

func (e Euler) Add(o Euler) Euler {
	return Euler{X: e.X + o.X, Y: e.Y + o.Y, Z: e.Z + o.Z}
}

func (e Euler) Sub(o Euler) Euler {
	return Euler{X: e.X - o.X, Y: e.Y - o.Y, Z: e.Z - o.Z}
}

func (e Euler) IsZero() bool {
	return e == Euler{}
}

// Snapped rounds every axis to the nearest multiple of a quarter turn.
func (e Euler) Snapped() Euler {
	return Euler{X: snapQuarter(e.X), Y: snapQuarter(e.Y), Z: snapQuarter(e.Z)}
}

// Quarter turns along a single axis.
var (
	QuarterXPos = Euler{X: math.Pi / 2}
	QuarterXNeg = Euler{X: -math.Pi / 2}
	QuarterYPos = Euler{Y: math.Pi / 2}
	QuarterYNeg = Euler{Y: -math.Pi / 2}
	QuarterZPos = Euler{Z: math.Pi / 2}
	QuarterZNeg = Euler{Z: -math.Pi / 2}
)

func snapQuarter(a float64) float64 {
	const quarter = math.Pi / 2
	return math.Round(a/quarter) * quarter
}

// apply rotates v about the origin.
func (e Euler) apply(v Vec3) Vec3 {
	sx, cx := math.Sincos(e.X)
	sy, cy := math.Sincos(e.Y)
	sz, cz := math.Sincos(e.Z)

	// Rz
	x := v.X*cz - v.Y*sz
	y := v.X*sz + v.Y*cz
	z := v.Z
	// Ry
	x, z = x*cy+z*sy, -x*sy+z*cy
	// Rx
	y, z = y*cx-z*sx, y*sx+z*cx

	return Vec3{X: x, Y: y, Z: z}
}

// offsetPrecision discards trigonometric noise from rotated offsets so that
// sub-blocks sharing a fractional height round the same way.
const offsetPrecision = 1e9

func denoise(v float64) float64 {
	return math.Round(v*offsetPrecision) / offsetPrecision
}

// roundHalfUp rounds to the nearest integer with ties toward +inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
