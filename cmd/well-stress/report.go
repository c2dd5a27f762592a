package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/welltris/session"
	"github.com/plus3/welltris/well"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	TickRate int

	// Results
	TotalTime      time.Duration
	TickTime       Stats
	Stats          *session.Stats
	Scheduler      session.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// SimulatedTime is the game time covered by the run.
func (r *Report) SimulatedTime() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Scheduler.Ticks) * time.Second / time.Duration(r.TickRate)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Well Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Tick Rate:** {{.TickRate}}/s

## Game Results
- **Total Ticks:** {{.Scheduler.Ticks}} ({{.SimulatedTime}} of game time)
- **Games Finished:** {{.Stats.Games}}
- **Pieces Locked:** {{.Stats.PiecesLocked}}
- **Lines Cleared:** {{.Stats.LinesCleared}}
- **Highest Level:** {{.Stats.HighestLevel}}
- **Clears by Size:**{{range $n := clearSizes}}
  - {{$n}} line(s): {{$.Stats.Clears $n}}{{end}}
- **Spawns by Kind:**{{range $k := kinds}}
  - {{$k}}: {{$.Stats.Spawns $k}}{{end}}

## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
- **Systems:**{{range .Scheduler.Systems}}
  - {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}, total {{.TotalDuration}}{{end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"clearSizes": func() []int {
			return []int{1, 2, 3, 4}
		},
		"kinds": func() []well.Kind {
			return well.Kinds[:]
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
