package well

import "fmt"

// Coord addresses a single cell. Y is the vertical axis; layer 0 is the
// floor of the well.
type Coord struct {
	X, Y, Z int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

func (c Coord) Below() Coord {
	return Coord{X: c.X, Y: c.Y - 1, Z: c.Z}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}
