package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/plus3/welltris/engine"
)

// Bot sends random actions with a fixed chance per tick.
type Bot struct {
	rng     *rand.Rand
	rate    float64
	actions []engine.Action
}

func NewBot(seed uint64, rate float64) *Bot {
	return &Bot{
		rng:     rand.New(rand.NewPCG(seed, seed^0x5eed)),
		rate:    rate,
		actions: engine.Actions(),
	}
}

// Next returns the action for this tick, if any.
func (b *Bot) Next() (engine.Action, bool) {
	if b.rng.Float64() >= b.rate {
		return 0, false
	}
	return b.actions[b.rng.IntN(len(b.actions))], true
}

// Soak plays arcade games back to back until ctx ends or maxTicks ticks have
// run, restarting after every top-out, and fills in r.
func Soak(ctx context.Context, game *engine.Game, bot *Bot, maxTicks uint64, r *Report) error {
	tallies := make(map[engine.EventKind]int)
	game.Events().SubscribeAll(func(e engine.Event) {
		tallies[e.Kind]++
		switch e.Kind {
		case engine.EventLayersCleared:
			r.Layers += e.Count
		case engine.EventLevelUp:
			r.MaxLevel = max(r.MaxLevel, e.Level)
		}
	})

	if err := game.Start(engine.ModeArcade, nil); err != nil {
		return err
	}
	r.Games = 1
	r.MaxLevel = 1

	startTime := time.Now()
	startTick := game.Scheduler().Tick()

Loop:
	for maxTicks == 0 || game.Scheduler().Tick()-startTick < maxTicks {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		if a, ok := bot.Next(); ok {
			r.Actions++
			err := game.HandleAction(a)
			if errors.Is(err, engine.ErrInvalidMove) || errors.Is(err, engine.ErrInvalidRotation) {
				r.Rejected++
			}
		}

		tickStart := time.Now()
		game.Tick()
		r.TickTime.Samples = append(r.TickTime.Samples, time.Since(tickStart))

		if s := game.Session(); s.GameOver {
			r.record(s)
			if err := game.Start(engine.ModeArcade, nil); err != nil {
				return err
			}
			r.Games++
		}
	}

	r.record(game.Session())
	r.TotalTime = time.Since(startTime)
	r.Ticks = game.Scheduler().Tick() - startTick
	r.TickTime.Finalize()
	r.Systems = game.Scheduler().GetStats().Systems

	for kind, n := range tallies {
		r.Events = append(r.Events, EventCount{Name: kind.String(), Count: n})
	}
	sort.Slice(r.Events, func(i, j int) bool { return r.Events[i].Name < r.Events[j].Name })
	r.TopOuts = tallies[engine.EventTopOut]
	return nil
}

func (r *Report) record(s *engine.Session) {
	r.Pieces += s.PiecesPlaced
	r.Explosions += s.Explosions
	r.BestScore = max(r.BestScore, s.Score)
}
