package engine

import (
	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/well"
)

// PieceState is the wire form of a piece.
type PieceState struct {
	Kind     string       `msgpack:"kind" json:"kind"`
	Material uint32       `msgpack:"material" json:"material"`
	Cells    []well.Coord `msgpack:"cells" json:"cells"`
}

// State is a read-only snapshot of the session for presentation layers.
type State struct {
	Tick uint64 `msgpack:"tick" json:"tick"`
	Mode string `msgpack:"mode" json:"mode"`

	Score         int     `msgpack:"score" json:"score"`
	LayersCleared int     `msgpack:"layers_cleared" json:"layers_cleared"`
	Level         int     `msgpack:"level" json:"level"`
	FallingSpeed  float64 `msgpack:"falling_speed" json:"falling_speed"`
	PiecesPlaced  int     `msgpack:"pieces_placed" json:"pieces_placed"`

	OpponentHP    int     `msgpack:"opponent_hp" json:"opponent_hp"`
	TimeRemaining float64 `msgpack:"time_remaining" json:"time_remaining"`

	GameOver bool   `msgpack:"game_over" json:"game_over"`
	Won      bool   `msgpack:"won" json:"won"`
	Outcome  string `msgpack:"outcome" json:"outcome"`

	FastDrop bool `msgpack:"fast_drop" json:"fast_drop"`
	Rotating bool `msgpack:"rotating" json:"rotating"`
	Cooldown int  `msgpack:"cooldown" json:"cooldown"`

	Active *PieceState `msgpack:"active,omitempty" json:"active,omitempty"`
	Shadow *PieceState `msgpack:"shadow,omitempty" json:"shadow,omitempty"`
	Next   string      `msgpack:"next" json:"next"`

	// Heights is the column height map indexed as [z][x].
	Heights [][]int `msgpack:"heights" json:"heights"`
}

// State captures the current session.
func (g *Game) State() State {
	s := g.session
	return State{
		Tick:          g.scheduler.Tick(),
		Mode:          s.Mode.String(),
		Score:         s.Score,
		LayersCleared: s.LayersCleared,
		Level:         s.Level,
		FallingSpeed:  s.FallingSpeed,
		PiecesPlaced:  s.PiecesPlaced,
		OpponentHP:    s.OpponentHP,
		TimeRemaining: s.TimeRemaining,
		GameOver:      s.GameOver,
		Won:           s.Won(),
		Outcome:       s.Outcome.String(),
		FastDrop:      s.FastDrop,
		Rotating:      g.rotation.Animating(),
		Cooldown:      g.rotation.Cooldown(),
		Active:        pieceState(s.Active),
		Shadow:        pieceState(s.Shadow),
		Next:          s.Next.Kind.String(),
		Heights:       s.Well.Heights(),
	}
}

func pieceState(p *piece.Instance) *PieceState {
	if p == nil {
		return nil
	}
	return &PieceState{
		Kind:     p.Kind.String(),
		Material: uint32(p.Material),
		Cells:    p.Cells(),
	}
}
