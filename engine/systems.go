package engine

import "github.com/plus3/welltris/sim"

type lander interface {
	land()
}

// GravitySystem waits out the rotation cooldown, then lowers the active piece
// and lands it once it can fall no further.
type GravitySystem struct {
	Session  sim.Resource[Session]
	Rules    sim.Resource[Rules]
	Rotation sim.Resource[RotationScheduler]

	lander lander
}

func (s *GravitySystem) Execute(frame *sim.Frame) {
	session := s.Session.Get()
	if session.GameOver || session.Active == nil {
		return
	}

	rotation := s.Rotation.Get()
	if rotation.TickCooldown() || rotation.Animating() {
		return
	}

	rules := s.Rules.Get()
	speed := session.FallingSpeed
	if session.FastDrop {
		speed *= rules.FastDropMultiplier
	}

	// Steps of at most one cell so no layer is skipped between checks.
	for speed > 0 {
		step := min(speed, 1)
		speed -= step
		session.Active.Position.Y -= step
		if DetectFallCollision(session.Well, *session.Active) {
			s.lander.land()
			return
		}
	}
}

// RotationSystem advances the rotation animation of the active piece.
type RotationSystem struct {
	Session  sim.Resource[Session]
	Rotation sim.Resource[RotationScheduler]
}

func (s *RotationSystem) Execute(frame *sim.Frame) {
	session := s.Session.Get()
	if session.GameOver || session.Active == nil {
		return
	}
	s.Rotation.Get().Advance(session.Active)
}

// ShadowSystem keeps the landing preview in step with the active piece while
// it is at rest.
type ShadowSystem struct {
	Session  sim.Resource[Session]
	Rotation sim.Resource[RotationScheduler]
}

func (s *ShadowSystem) Execute(frame *sim.Frame) {
	session := s.Session.Get()
	if session.GameOver || session.Active == nil {
		return
	}
	if s.Rotation.Get().Animating() {
		return
	}
	shadow := Project(session.Well, *session.Active)
	session.Shadow = &shadow
}

type referee interface {
	checkWin() bool
	timeOut()
}

// StoryClockSystem runs the match clock and decides story sessions.
type StoryClockSystem struct {
	Session sim.Resource[Session]

	referee referee
}

func (s *StoryClockSystem) Execute(frame *sim.Frame) {
	session := s.Session.Get()
	if session.Mode != ModeStory || session.GameOver {
		return
	}
	if s.referee.checkWin() {
		return
	}

	session.TimeRemaining -= frame.DeltaTime
	if session.TimeRemaining <= 0 {
		session.TimeRemaining = 0
		s.referee.timeOut()
	}
}

type publisher interface {
	flush()
}

// EventSystem publishes the events raised during the tick once every other
// system has run.
type EventSystem struct {
	publisher publisher
}

func (s *EventSystem) Execute(frame *sim.Frame) {
	frame.Commands.Defer(s.publisher.flush)
}
