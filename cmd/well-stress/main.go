package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/welltris/session"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	seed := flag.Uint64("seed", 1, "Seed for the piece bag and the input bot.")
	tickRate := flag.Int("tps", 60, "Simulated ticks per second of game time.")
	actionsPerTick := flag.Float64("apt", 0.3, "Average bot commands per tick.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log session milestones.")
	flag.Parse()

	log.Println("Starting well stress test...")

	config := session.DefaultConfig()
	if *verbose {
		config.Logger = log.Default()
	}

	s := session.New(config, session.NewBagSupplier(*seed))
	scheduler := session.NewGameScheduler(s)
	stats := session.NewStats()
	scheduler.Subscribe(stats.Record)

	bot := newBot(*seed, *actionsPerTick)

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		TickRate:       *tickRate,
		GCPauseMetrics: *gcPauseMetrics,
		Stats:          stats,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := 1.0 / float64(max(*tickRate, 1))
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if s.State.GameOver {
				s.Reset()
			}
			bot.act(s)

			tickStart := time.Now()
			scheduler.Once(dt)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Scheduler = scheduler.Stats()
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// bot presses random keys, weighted towards sideways moves.
type bot struct {
	rng  *rand.Rand
	rate float64
}

var botCommands = []session.Command{
	session.MoveLeft, session.MoveLeft, session.MoveLeft,
	session.MoveRight, session.MoveRight, session.MoveRight,
	session.RotateCW, session.RotateCCW,
	session.SoftDrop, session.SoftDrop,
	session.HardDrop,
}

func newBot(seed uint64, rate float64) *bot {
	return &bot{
		rng:  rand.New(rand.NewPCG(seed, ^seed)),
		rate: rate,
	}
}

func (b *bot) act(s *session.Session) {
	if s.Active == nil || b.rng.Float64() >= b.rate {
		return
	}
	s.Enqueue(botCommands[b.rng.IntN(len(botCommands))])
}
