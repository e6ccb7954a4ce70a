package well

// Explode empties the cube of cells centered on center, clipped to the grid.
// A reach of r covers offsets from -(r-1) to r-1 on every axis. It returns the
// coordinates that were occupied before the blast.
func (g *Grid) Explode(center Coord, reach int) []Coord {
	span := reach - 1
	var removed []Coord
	for y := center.Y - span; y <= center.Y+span; y++ {
		for z := center.Z - span; z <= center.Z+span; z++ {
			for x := center.X - span; x <= center.X+span; x++ {
				c := Coord{X: x, Y: y, Z: z}
				if g.Clear(c) {
					removed = append(removed, c)
				}
			}
		}
	}
	return removed
}
