package well

import "fmt"

// Material is the appearance tag of an occupied cell, packed as 0xAARRGGBB.
// The zero value is Empty.
type Material uint32

const Empty Material = 0

// NewMaterial returns an opaque material for the given 0xRRGGBB color.
func NewMaterial(rgb uint32) Material {
	return Material(0xFF000000 | rgb&0xFFFFFF)
}

func (m Material) Occupied() bool {
	return m != Empty
}

// RGB returns the color without its alpha channel.
func (m Material) RGB() uint32 {
	return uint32(m) & 0xFFFFFF
}

// RGBA returns the color channels in 8-bit form.
func (m Material) RGBA() (r, g, b, a uint8) {
	return uint8(m >> 16), uint8(m >> 8), uint8(m), uint8(m >> 24)
}

func (m Material) String() string {
	if m == Empty {
		return "empty"
	}
	return fmt.Sprintf("#%06x", m.RGB())
}
