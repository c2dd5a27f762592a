package session

import "github.com/plus3/welltris/well"

// InputSystem applies queued player commands to the active piece. Commands
// that arrive with no piece in play are discarded.
type InputSystem struct{}

func (s *InputSystem) Execute(frame *Frame) {
	session := frame.Session
	defer func() {
		clear(session.queue)
		session.queue = session.queue[:0]
	}()

	if session.Active == nil || session.State.GameOver {
		return
	}

	for _, cmd := range session.queue {
		switch cmd {
		case MoveLeft:
			session.Move(0, -1)
		case MoveRight:
			session.Move(0, 1)
		case SoftDrop:
			if session.Move(1, 0) {
				session.State.FallTimer = 0
			}
		case RotateCW:
			session.Rotate(1)
		case RotateCCW:
			session.Rotate(-1)
		case HardDrop:
			session.HardDrop()
			// Nothing may move a piece after it was dropped.
			return
		}
	}
}

// GravitySystem pulls the active piece down one row each time a full fall
// interval has accumulated.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *Frame) {
	session := frame.Session
	if session.Active == nil || session.State.GameOver {
		return
	}

	state := &session.State
	state.FallTimer += frame.DeltaTime

	speed := session.FallSpeed()
	if speed <= 0 || state.FallTimer < 1.0/speed {
		return
	}
	state.FallTimer = 0

	if !session.Resting() {
		session.Move(1, 0)
	}
}

// LockSystem merges the active piece into the well once it has rested for
// the configured lock delay, or immediately after a hard drop.
type LockSystem struct{}

func (s *LockSystem) Execute(frame *Frame) {
	session := frame.Session
	if session.Active == nil || session.State.GameOver {
		return
	}

	state := &session.State
	if !session.Resting() {
		state.LockTimer = 0
		session.lockNow = false
		return
	}

	state.LockTimer += frame.DeltaTime
	if !session.lockNow && state.LockTimer < session.config.LockDelay {
		return
	}

	piece := *session.Active
	session.Well.Land(piece.Shape(), piece.Position)
	session.Active = nil
	session.lockNow = false

	state.PiecesLocked++
	state.LockTimer = 0
	state.FallTimer = 0
	state.SpawnTimer = 0

	frame.Commands.Emit(Event{Kind: EventLocked, Tick: frame.Tick, Piece: piece})
}

// LineClearSystem removes completed rows and advances the level.
type LineClearSystem struct{}

func (s *LineClearSystem) Execute(frame *Frame) {
	session := frame.Session
	lines := session.Well.ClearLines()
	if lines == 0 {
		return
	}

	state := &session.State
	state.LinesCleared += lines
	frame.Commands.Emit(Event{Kind: EventLinesCleared, Tick: frame.Tick, Lines: lines, Level: state.Level})

	level := session.config.StartLevel + state.LinesCleared/session.config.LinesPerLevel
	if level > state.Level {
		state.Level = level
		frame.Commands.Emit(Event{Kind: EventLevelUp, Tick: frame.Tick, Level: level})
		session.logf("level %d reached after %d lines", level, state.LinesCleared)
	}
}

// SpawnSystem brings in the next piece once the spawn delay has passed. A
// spawn that collides ends the game.
type SpawnSystem struct{}

func (s *SpawnSystem) Execute(frame *Frame) {
	session := frame.Session
	state := &session.State
	if session.Active != nil || state.GameOver {
		return
	}

	state.SpawnTimer += frame.DeltaTime
	if state.SpawnTimer < session.config.SpawnDelay {
		return
	}
	state.SpawnTimer = 0

	piece := well.Spawn(session.supplier.Next())
	if session.Well.Collides(piece.Shape(), piece.Position) {
		state.GameOver = true
		frame.Commands.Emit(Event{Kind: EventGameOver, Tick: frame.Tick, Piece: piece, Lines: state.LinesCleared, Level: state.Level})
		session.logf("game over: %s blocked after %d pieces, %d lines", piece.Kind, state.PiecesLocked, state.LinesCleared)
		return
	}

	session.Active = &piece
	frame.Commands.Emit(Event{Kind: EventSpawned, Tick: frame.Tick, Piece: piece})
}
