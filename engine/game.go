package engine

import (
	"fmt"
	"time"

	"github.com/plus3/welltris/piece"
	"github.com/plus3/welltris/sim"
	"github.com/plus3/welltris/story"
	"github.com/plus3/welltris/well"
	"go.uber.org/zap"
)

// Game owns a session and the systems that advance it. All methods must be
// called from a single goroutine.
type Game struct {
	rules  Rules
	logger *zap.Logger
	seed   uint64

	session   *Session
	rotation  *RotationScheduler
	generator *piece.Generator
	scheduler *sim.Scheduler
	bus       *Bus

	pending []Event
}

type Option func(*Game)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithSeed fixes the piece sequence.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.seed = seed
	}
}

// NewGame builds an idle game. Call Start to begin a session.
func NewGame(rules Rules, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		rules:  rules,
		logger: zap.NewNop(),
		seed:   uint64(time.Now().UnixNano()),
		bus:    NewBus(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.generator = piece.NewGenerator(g.seed, rules.generatorConfig())
	g.rotation = NewRotationScheduler(rules.RotationStep, rules.RotationCooldown, rules.SnapEpsilon)
	g.session = &Session{
		Well:         well.New(rules.Width, rules.Height, rules.Depth),
		Level:        1,
		FallingSpeed: rules.BaseFallingSpeed,
	}

	resources := sim.NewResources()
	resources.Add(g.session)
	resources.Add(&g.rules)
	resources.Add(g.rotation)

	g.scheduler = sim.NewScheduler(resources)
	g.scheduler.Register(&GravitySystem{lander: g})
	g.scheduler.Register(&RotationSystem{})
	g.scheduler.Register(&ShadowSystem{})
	g.scheduler.Register(&StoryClockSystem{referee: g})
	g.scheduler.Register(&EventSystem{publisher: g})

	return g, nil
}

func (g *Game) Rules() Rules                 { return g.rules }
func (g *Game) Seed() uint64                 { return g.seed }
func (g *Game) Session() *Session            { return g.session }
func (g *Game) Rotation() *RotationScheduler { return g.rotation }
func (g *Game) Scheduler() *sim.Scheduler    { return g.scheduler }
func (g *Game) Events() *Bus                 { return g.bus }
func (g *Game) Generator() *piece.Generator  { return g.generator }
func (g *Game) WellSnapshot() *well.Grid     { return g.session.Well.Clone() }

// Start resets the session and spawns the first piece. Story mode requires a
// segment with an opponent.
func (g *Game) Start(mode Mode, segment *story.Segment) error {
	if mode == ModeStory && (segment == nil || segment.Epilogue()) {
		return fmt.Errorf("engine: story mode needs a segment with an opponent")
	}

	grid := g.session.Well
	grid.Reset()
	*g.session = Session{
		Mode:         mode,
		Well:         grid,
		Level:        1,
		FallingSpeed: g.rules.BaseFallingSpeed,
	}
	if mode == ModeStory {
		g.session.OpponentHP = segment.OpponentHP
		g.session.TimeRemaining = segment.TimeLimit
	}
	g.rotation.Reset()
	g.pending = g.pending[:0]
	g.session.Next = g.generator.Next(0)

	g.logger.Info("session started",
		zap.Stringer("mode", mode),
		zap.Int("opponent_hp", g.session.OpponentHP),
		zap.Float64("time_limit", g.session.TimeRemaining),
	)

	err := g.spawn()
	g.flush()
	return err
}

// Tick advances the session by one fixed step.
func (g *Game) Tick() {
	g.scheduler.Once(g.rules.TickSeconds)
}

// Spawn promotes the next piece to the spawn point. A blocked spawn ends the
// session with ErrTopOut and leaves no active piece.
func (g *Game) Spawn() error {
	defer g.flush()
	return g.spawn()
}

func (g *Game) spawn() error {
	s := g.session
	if s.GameOver {
		return s.Outcome.Err()
	}

	next := s.Next
	next.Position = g.rules.spawnPosition()
	next.Rotation = piece.Euler{}
	g.rotation.Reset()

	if CheckMovementCollision(s.Well, next) {
		g.topOut()
		return fmt.Errorf("%w: spawn blocked at %v", ErrTopOut, next.Pivot())
	}

	s.Active = &next
	s.Next = g.generator.Next(s.PiecesPlaced)
	g.refreshShadow()
	g.emit(Event{Kind: EventPieceSpawned, Cell: next.Pivot()})
	return nil
}

// HandleAction applies a player command to the falling piece. Rejected moves
// and rotations leave the session untouched.
func (g *Game) HandleAction(a Action) error {
	defer g.flush()

	s := g.session
	if s.GameOver || s.Active == nil {
		return ErrNoActivePiece
	}

	if d, ok := translations[a]; ok {
		return g.translate(d)
	}
	if d, ok := rotations[a]; ok {
		return g.rotate(d)
	}

	switch a {
	case ActionFastDropOn:
		s.FastDrop = true
	case ActionFastDropOff:
		s.FastDrop = false
	case ActionHardDrop:
		g.hardDrop()
	default:
		return fmt.Errorf("engine: unknown action %v", a)
	}
	return nil
}

func (g *Game) translate(d piece.Vec3) error {
	s := g.session
	candidate := s.Active.Translated(d)
	if CheckMovementCollision(s.Well, candidate) {
		return fmt.Errorf("%w: %s to %v", ErrInvalidMove, s.Active.Kind, candidate.Pivot())
	}
	if g.rotation.Animating() {
		settled := candidate
		settled.Rotation = g.rotation.target
		if CheckMovementCollision(s.Well, settled) {
			return fmt.Errorf("%w: %s blocked once its rotation settles", ErrInvalidMove, s.Active.Kind)
		}
	}

	*s.Active = candidate
	if !g.rotation.Animating() {
		g.refreshShadow()
	}
	return nil
}

func (g *Game) rotate(delta piece.Euler) error {
	s := g.session
	if !g.rotation.Ready() {
		return fmt.Errorf("%w: rotation cooling down for %d ticks", ErrInvalidRotation, g.rotation.Cooldown())
	}
	if !CanRotate(s.Well, *s.Active, delta) {
		return fmt.Errorf("%w: %s cannot turn by %+v", ErrInvalidRotation, s.Active.Kind, delta)
	}
	g.rotation.Request(s.Active.Rotation, delta)
	return nil
}

// HardDrop drops and locks the falling piece at once.
func (g *Game) HardDrop() error {
	return g.HandleAction(ActionHardDrop)
}

// hardDrop settles any pending rotation, drops the piece as far as it goes
// and locks it.
func (g *Game) hardDrop() {
	s := g.session
	g.rotation.Finish(s.Active)
	*s.Active = Project(s.Well, *s.Active)
	g.land()
}

// land resolves a piece that can fall no further: bombs detonate, everything
// else locks and clears layers. A new piece follows unless the session ended.
func (g *Game) land() {
	s := g.session
	p := *s.Active
	s.Active = nil
	s.Shadow = nil

	if p.IsBomb() {
		g.explode(p)
	} else {
		if err := Place(s.Well, p); err != nil {
			g.logger.Info("piece failed to lock", zap.Error(err))
			g.topOut()
			return
		}
		s.PiecesPlaced++
		g.emit(Event{Kind: EventPieceLocked, Cell: p.Pivot()})
		g.clearLayers()
	}

	if s.GameOver {
		return
	}
	if err := g.spawn(); err != nil {
		g.logger.Info("spawn failed", zap.Error(err))
	}
}

func (g *Game) explode(p piece.Instance) {
	s := g.session
	center := p.Cells()[0]
	removed := s.Well.Explode(center, g.rules.BombRange)
	s.Explosions++

	g.logger.Debug("bomb exploded", zap.Stringer("center", center), zap.Int("destroyed", len(removed)))
	g.emit(Event{Kind: EventBombExploded, Cell: center, Count: len(removed)})
}

// refreshShadow recomputes the landing preview of the active piece.
func (g *Game) refreshShadow() {
	s := g.session
	if s.Active == nil {
		s.Shadow = nil
		return
	}
	shadow := Project(s.Well, *s.Active)
	s.Shadow = &shadow
}

func (g *Game) topOut() {
	g.session.end(OutcomeToppedOut)
	g.logger.Info("session topped out", zap.Int("score", g.session.Score))
	g.emit(Event{Kind: EventTopOut})
}

func (g *Game) timeOut() {
	g.session.end(OutcomeTimedOut)
	g.logger.Info("session timed out", zap.Int("score", g.session.Score), zap.Int("opponent_hp", g.session.OpponentHP))
	g.emit(Event{Kind: EventTimeout})
}

// checkWin ends a story session whose opponent has no HP left and reports
// whether it did.
func (g *Game) checkWin() bool {
	s := g.session
	if s.Mode != ModeStory || s.GameOver || s.OpponentHP > 0 {
		return false
	}
	s.end(OutcomeWon)
	g.logger.Info("opponent defeated", zap.Int("score", s.Score))
	g.emit(Event{Kind: EventOpponentDefeated})
	return true
}

func (g *Game) emit(e Event) {
	e.Tick = g.scheduler.Tick()
	g.pending = append(g.pending, e)
}

// flush publishes queued events in the order they were raised.
func (g *Game) flush() {
	for len(g.pending) > 0 {
		batch := g.pending
		g.pending = nil
		for _, e := range batch {
			g.bus.Publish(e)
		}
	}
}
