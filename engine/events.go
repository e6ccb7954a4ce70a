package engine

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/welltris/well"
)

// EventKind classifies gameplay events.
type EventKind uint8

const (
	EventPieceSpawned EventKind = iota + 1
	EventPieceLocked
	EventLayersCleared
	EventBombExploded
	EventLevelUp
	EventTopOut
	EventTimeout
	EventOpponentDefeated
)

var eventNames = map[EventKind]string{
	EventPieceSpawned:     "piece-spawned",
	EventPieceLocked:      "piece-locked",
	EventLayersCleared:    "layers-cleared",
	EventBombExploded:     "bomb-exploded",
	EventLevelUp:          "level-up",
	EventTopOut:           "top-out",
	EventTimeout:          "timeout",
	EventOpponentDefeated: "opponent-defeated",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is published after the state change it describes has been applied.
type Event struct {
	Kind EventKind
	Tick uint64
	// Count is the number of layers cleared or cells destroyed.
	Count int
	// Level is the level reached on EventLevelUp.
	Level int
	// Cell is the bomb center or the pivot of the locked piece.
	Cell well.Coord
}

type Listener func(Event)

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	byKind *intmap.Map[EventKind, []Listener]
	all    []Listener
}

func NewBus() *Bus {
	return &Bus{byKind: intmap.New[EventKind, []Listener](8)}
}

// Subscribe registers l for events of the given kind.
func (b *Bus) Subscribe(kind EventKind, l Listener) {
	listeners, _ := b.byKind.Get(kind)
	b.byKind.Put(kind, append(listeners, l))
}

// SubscribeAll registers l for every event.
func (b *Bus) SubscribeAll(l Listener) {
	b.all = append(b.all, l)
}

func (b *Bus) Publish(e Event) {
	if listeners, ok := b.byKind.Get(e.Kind); ok {
		for _, l := range listeners {
			l(e)
		}
	}
	for _, l := range b.all {
		l(e)
	}
}
