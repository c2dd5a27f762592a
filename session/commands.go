package session

import (
	"fmt"

	"github.com/plus3/welltris/well"
)

// Command is a player input applied to the active piece.
type Command int

const (
	MoveLeft Command = iota + 1
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case SoftDrop:
		return "SoftDrop"
	case HardDrop:
		return "HardDrop"
	case RotateCW:
		return "RotateCW"
	case RotateCCW:
		return "RotateCCW"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// EventKind identifies what happened in an Event.
type EventKind int

const (
	EventSpawned EventKind = iota + 1
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "Spawned"
	case EventLocked:
		return "Locked"
	case EventLinesCleared:
		return "LinesCleared"
	case EventLevelUp:
		return "LevelUp"
	case EventGameOver:
		return "GameOver"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event reports a state change produced during a tick. Piece is set for
// spawn, lock and game-over events; Lines and Level for clears and level-ups.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Piece well.Piece
	Lines int
	Level int
}

// Commands buffers work that must wait until every system of the tick has
// run: deferred functions and events for listeners.
type Commands struct {
	events []Event
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Emit queues an event for delivery at the end of the tick.
func (c *Commands) Emit(event Event) {
	c.events = append(c.events, event)
}

// Defer queues a function to run at the end of the tick, after events are
// delivered.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the events emitted so far this tick and not yet delivered.
func (c *Commands) Pending() []Event {
	return c.events
}

// Flush delivers queued events to every listener in emission order, then
// runs the deferred functions. Events and functions queued while flushing,
// by a listener or a deferred function, are handled in further rounds until
// both buffers are empty, so a listener that emits on every event never
// returns.
func (c *Commands) Flush(listeners []func(Event)) {
	for len(c.events) > 0 || len(c.defers) > 0 {
		events := c.events
		c.events = nil
		for _, event := range events {
			for _, listen := range listeners {
				listen(event)
			}
		}

		defers := c.defers
		c.defers = nil
		for _, fn := range defers {
			fn()
		}
	}
}
