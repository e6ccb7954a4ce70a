package engine_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/well"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/txtar"
)

var stone = well.NewMaterial(0x808080)

func newGame(t *testing.T, rules engine.Rules) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(rules, engine.WithSeed(1), engine.WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	return g
}

// loadWell fills the session well from a txtar archive of "y=N" layers.
func loadWell(t *testing.T, g *engine.Game, path string) {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	for _, f := range archive.Files {
		y, err := strconv.Atoi(strings.TrimPrefix(f.Name, "y="))
		if err != nil {
			t.Fatalf("bad layer name %q in %s", f.Name, path)
		}
		if err := g.Session().Well.ParseLayer(y, string(f.Data), stone); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
	}
}

// setActive replaces the falling piece with an unrotated kind at pos.
func setActive(g *engine.Game, k piece.Kind, pos piece.Vec3) *piece.Instance {
	p := piece.New(k, well.NewMaterial(0x00ff00)).Translated(pos)
	g.Session().Active = &p
	return g.Session().Active
}

var spawn = piece.Vec3{X: 3, Y: 10, Z: 3}

func recordEvents(g *engine.Game) *[]engine.Event {
	var events []engine.Event
	g.Events().SubscribeAll(func(e engine.Event) {
		events = append(events, e)
	})
	return &events
}

func kinds(events []engine.Event) []engine.EventKind {
	out := make([]engine.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
