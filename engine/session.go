package engine

import (
	"fmt"

	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/well"
)

// Mode selects between endless play and a campaign match.
type Mode int

const (
	ModeArcade Mode = iota
	ModeStory
)

func (m Mode) String() string {
	switch m {
	case ModeArcade:
		return "arcade"
	case ModeStory:
		return "story"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Outcome records how a session ended.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeToppedOut
	OutcomeTimedOut
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeToppedOut:
		return "topped-out"
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomeWon:
		return "won"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Err maps a terminal outcome to its sentinel error.
func (o Outcome) Err() error {
	switch o {
	case OutcomeToppedOut:
		return ErrTopOut
	case OutcomeTimedOut:
		return ErrTimeout
	default:
		return nil
	}
}

// Session is the mutable state of a single game.
type Session struct {
	Mode Mode
	Well *well.Grid

	Active *piece.Instance
	Shadow *piece.Instance
	Next   piece.Instance

	Score         int
	LayersCleared int
	Level         int
	FallingSpeed  float64
	PiecesPlaced  int
	Explosions    int
	FastDrop      bool

	OpponentHP    int
	TimeRemaining float64

	GameOver bool
	Outcome  Outcome
}

// Over reports whether the session has ended for any reason.
func (s *Session) Over() bool {
	return s.GameOver
}

// Won reports whether the opponent was defeated.
func (s *Session) Won() bool {
	return s.Outcome == OutcomeWon
}

func (s *Session) end(outcome Outcome) {
	s.GameOver = true
	s.Outcome = outcome
	s.Active = nil
	s.Shadow = nil
	s.FastDrop = false
}
