package main

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// domCode names an ebiten key the way browsers report KeyboardEvent.code, the
// format key bindings are stored in.
func domCode(k ebiten.Key) string {
	name := k.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return "Key" + name
	}
	return name
}
