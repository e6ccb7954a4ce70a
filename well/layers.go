package well

import (
	"bufio"
	"fmt"
	"strings"
)

// ClearFullLayers removes every full layer and shifts the layers above it down
// by one. After a removal the same index is scanned again, since a full layer
// may have dropped into it. It returns the index of each removal in order; an
// index repeats when consecutive full layers collapse onto it.
func (g *Grid) ClearFullLayers() []int {
	var cleared []int
	for y := 0; y < g.height; y++ {
		if !g.LayerFull(y) {
			continue
		}
		g.removeLayer(y)
		cleared = append(cleared, y)
		y--
	}
	return cleared
}

func (g *Grid) removeLayer(y int) {
	size := g.layerSize()
	copy(g.cells[y*size:], g.cells[(y+1)*size:])
	clear(g.cells[(g.height-1)*size:])
}

// ParseLayer fills layer y from rows of text, one row per Z and one column
// per X. '#' marks an occupied cell; '.' or a space leaves it empty.
func (g *Grid) ParseLayer(y int, text string, m Material) error {
	if y < 0 || y >= g.height {
		return fmt.Errorf("well: layer %d out of range", y)
	}

	z := 0
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		row := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}
		if z >= g.depth {
			return fmt.Errorf("well: layer %d has more than %d rows", y, g.depth)
		}
		if len(row) > g.width {
			return fmt.Errorf("well: layer %d row %d is wider than %d", y, z, g.width)
		}
		for x, ch := range []byte(row) {
			switch ch {
			case '#':
				g.Set(Coord{X: x, Y: y, Z: z}, m)
			case '.', ' ':
				g.Set(Coord{X: x, Y: y, Z: z}, Empty)
			default:
				return fmt.Errorf("well: unexpected %q in layer %d", ch, y)
			}
		}
		z++
	}
	return scanner.Err()
}
