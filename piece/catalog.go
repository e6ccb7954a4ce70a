package piece

import "slices"

// Offset is a sub-block position relative to the piece pivot, in cells.
type Offset struct {
	X, Y, Z int
}

// Definition lists the sub-blocks of a kind. Every regular kind is flat in
// the XZ plane with four sub-blocks; the bomb is a single block.
type Definition struct {
	Kind    Kind
	Offsets []Offset
}

var catalog = [...]Definition{
	I:    {Kind: I, Offsets: []Offset{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}}},
	J:    {Kind: J, Offsets: []Offset{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {1, 0, -1}}},
	L:    {Kind: L, Offsets: []Offset{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {-1, 0, -1}}},
	O:    {Kind: O, Offsets: []Offset{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}, {1, 0, -1}}},
	S:    {Kind: S, Offsets: []Offset{{-1, 0, 0}, {0, 0, 0}, {0, 0, -1}, {1, 0, -1}}},
	T:    {Kind: T, Offsets: []Offset{{-1, 0, 0}, {0, 0, 0}, {1, 0, 0}, {0, 0, -1}}},
	Z:    {Kind: Z, Offsets: []Offset{{-1, 0, -1}, {0, 0, -1}, {0, 0, 0}, {1, 0, 0}}},
	Bomb: {Kind: Bomb, Offsets: []Offset{{0, 0, 0}}},
}

// Lookup returns a copy of the definition for k. It panics on an unknown
// kind.
func Lookup(k Kind) Definition {
	if int(k) >= len(catalog) {
		panic("piece: unknown kind " + k.String())
	}
	def := catalog[k]
	def.Offsets = slices.Clone(def.Offsets)
	return def
}

// BombMaterialRGB is the fixed color of the bomb.
const BombMaterialRGB = 0xff0000
