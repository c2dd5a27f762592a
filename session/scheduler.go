package session

import (
	"context"
	"reflect"
	"time"
)

// System is one step of a tick. Systems run in registration order and may
// mutate the frame's session directly; anything that must wait for the end
// of the tick goes through frame.Commands.
type System interface {
	Execute(frame *Frame)
}

// Frame is the context handed to every system during one tick.
type Frame struct {
	Tick      uint64
	DeltaTime float64
	Session   *Session
	Commands  *Commands
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Ticks   uint64
	Systems []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemTiming struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *systemTiming) observe(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	t.min = min(t.min, d)
	t.max = max(t.max, d)
}

// Scheduler advances a session by running its systems once per tick.
type Scheduler struct {
	session   *Session
	systems   []System
	timings   []*systemTiming
	listeners []func(Event)
	commands  *Commands
	tick      uint64
}

// NewScheduler creates a scheduler for session with no systems registered.
func NewScheduler(session *Session) *Scheduler {
	return &Scheduler{
		session:  session,
		commands: newCommands(),
	}
}

// NewGameScheduler creates a scheduler with the standard game systems
// registered in tick order: input, gravity, lock, line clear, spawn.
func NewGameScheduler(session *Session) *Scheduler {
	s := NewScheduler(session)
	s.Register(&InputSystem{})
	s.Register(&GravitySystem{})
	s.Register(&LockSystem{})
	s.Register(&LineClearSystem{})
	s.Register(&SpawnSystem{})
	return s
}

// Register appends a system to the tick.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.timings = append(s.timings, &systemTiming{
		name: systemType.Name(),
		min:  time.Duration(1<<63 - 1),
	})
}

// Subscribe adds a listener that receives every event at the end of the tick
// it was emitted in.
func (s *Scheduler) Subscribe(listener func(Event)) {
	s.listeners = append(s.listeners, listener)
}

// Session returns the session the scheduler drives.
func (s *Scheduler) Session() *Session {
	return s.session
}

// Once runs every system once with the given delta time in seconds, then
// flushes the tick's commands.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := &Frame{
		Tick:      s.tick,
		DeltaTime: dt,
		Session:   s.session,
		Commands:  s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].observe(time.Since(start))
	}

	s.commands.Flush(s.listeners)
}

// Run executes ticks at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns execution statistics for every registered system.
func (s *Scheduler) Stats() SchedulerStats {
	stats := SchedulerStats{
		Ticks:   s.tick,
		Systems: make([]SystemStats, len(s.timings)),
	}

	for i, t := range s.timings {
		var avg time.Duration
		minDuration := t.min
		if t.count > 0 {
			avg = t.total / time.Duration(t.count)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.count,
			MinDuration:    minDuration,
			MaxDuration:    t.max,
			AvgDuration:    avg,
			LastDuration:   t.last,
			TotalDuration:  t.total,
		}
	}

	return stats
}
