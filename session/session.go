// Package session drives a single game of falling blocks on top of a
// well.Well. A Session owns the well, the active piece and the game state;
// a Scheduler advances it one tick at a time by running Systems in order,
// then flushing the deferred Commands and events they produced.
//
// Every move is validated against the well before it is committed, pieces
// lock only once they rest, and full rows are cleared in the same tick a
// piece locks. Nothing here is safe for concurrent use.
package session

import (
	"errors"
	"fmt"

	"github.com/plus3/welltris/well"
)

// Logger receives session milestones. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Config holds the timing and progression rules of a session. Times are in
// seconds, matching Frame.DeltaTime.
type Config struct {
	BaseFallSpeed float64 // rows per second at level 0
	FallSpeedStep float64 // rows per second added per level
	LockDelay     float64
	SpawnDelay    float64
	LinesPerLevel int
	StartLevel    int // level of a new or reset game; 0 means 1
	Logger        Logger
}

// DefaultConfig returns the rules used by the bundled frontends.
func DefaultConfig() Config {
	return Config{
		BaseFallSpeed: 1.0,
		FallSpeedStep: 0.1,
		LockDelay:     0.5,
		SpawnDelay:    0.1,
		LinesPerLevel: 10,
		StartLevel:    1,
	}
}

// Validate reports rules no game can be played with. Zero LinesPerLevel and
// StartLevel are allowed and replaced with defaults by New.
func (c Config) Validate() error {
	var errs []error
	if c.StartLevel < 0 {
		errs = append(errs, fmt.Errorf("start level %d is negative", c.StartLevel))
	}
	if c.LinesPerLevel < 0 {
		errs = append(errs, fmt.Errorf("lines per level %d is negative", c.LinesPerLevel))
	}
	if c.LockDelay < 0 || c.SpawnDelay < 0 {
		errs = append(errs, fmt.Errorf("delays must not be negative (lock %v, spawn %v)", c.LockDelay, c.SpawnDelay))
	}
	level := max(c.StartLevel, 1)
	if speed := c.BaseFallSpeed + c.FallSpeedStep*float64(level); speed <= 0 {
		errs = append(errs, fmt.Errorf("fall speed %v at level %d is not positive", speed, level))
	}
	return errors.Join(errs...)
}

// State is the mutable progress of a session.
type State struct {
	LinesCleared int
	Level        int
	PiecesLocked int
	GameOver     bool

	SpawnTimer float64
	FallTimer  float64
	LockTimer  float64
}

// Session is one game: a well, the piece currently falling in it, and the
// state around them.
type Session struct {
	Well   *well.Well
	Active *well.Piece
	State  State

	config   Config
	supplier Supplier
	queue    []Command
	lockNow  bool
}

// New creates a session with an empty well. Pieces are drawn from supplier.
func New(config Config, supplier Supplier) *Session {
	if config.LinesPerLevel <= 0 {
		config.LinesPerLevel = DefaultConfig().LinesPerLevel
	}
	if config.StartLevel <= 0 {
		config.StartLevel = 1
	}
	return &Session{
		Well:     well.New(),
		State:    State{Level: config.StartLevel},
		config:   config,
		supplier: supplier,
	}
}

// Config returns the rules the session was created with.
func (s *Session) Config() Config {
	return s.config
}

// Reset empties the well and starts the game over. The supplier keeps its
// sequence.
func (s *Session) Reset() {
	s.Well.Reset()
	s.Active = nil
	s.State = State{Level: s.config.StartLevel}
	s.queue = s.queue[:0]
	s.lockNow = false
}

// Upcoming returns up to n kinds the supplier will deal next, or nil when
// the supplier cannot look ahead.
func (s *Session) Upcoming(n int) []well.Kind {
	if p, ok := s.supplier.(Previewer); ok {
		return p.Preview(n)
	}
	return nil
}

// Enqueue queues player commands for the next InputSystem run.
func (s *Session) Enqueue(cmds ...Command) {
	s.queue = append(s.queue, cmds...)
}

// FallSpeed returns the gravity in rows per second at the current level.
func (s *Session) FallSpeed() float64 {
	return s.config.BaseFallSpeed + s.config.FallSpeedStep*float64(s.State.Level)
}

// Move shifts the active piece by the given rows and columns if the target
// position is free. It reports whether the piece moved.
func (s *Session) Move(dRow, dCol int) bool {
	if s.Active == nil {
		return false
	}
	return s.commit(s.Active.Moved(dRow, dCol))
}

// Rotate turns the active piece one step in dir if the rotated shape fits
// where it is.
func (s *Session) Rotate(dir int) bool {
	if s.Active == nil {
		return false
	}
	return s.commit(s.Active.Rotated(dir))
}

// HardDrop moves the active piece straight down until it rests and marks it
// to lock on the next LockSystem run. It returns the rows dropped.
func (s *Session) HardDrop() int {
	if s.Active == nil {
		return 0
	}
	target := s.Well.DropPosition(s.Active.Shape(), s.Active.Position)
	rows := target.Row - s.Active.Position.Row
	s.Active.Position = target
	s.lockNow = true
	return rows
}

// Ghost returns where the active piece would land if hard dropped.
func (s *Session) Ghost() (well.Piece, bool) {
	if s.Active == nil {
		return well.Piece{}, false
	}
	ghost := *s.Active
	ghost.Position = s.Well.DropPosition(ghost.Shape(), ghost.Position)
	return ghost, true
}

// Resting reports whether the active piece cannot fall further.
func (s *Session) Resting() bool {
	return s.Active != nil && s.Well.Resting(s.Active.Shape(), s.Active.Position)
}

func (s *Session) commit(candidate well.Piece) bool {
	if s.Well.Collides(candidate.Shape(), candidate.Position) {
		return false
	}
	*s.Active = candidate
	return true
}

func (s *Session) logf(format string, v ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Printf(format, v...)
	}
}
