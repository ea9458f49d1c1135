package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/snek/ecs"
	"github.com/plus3/snek/internal/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Width    int
	Height   int
	Seed     uint64
	Paced    bool

	// Results
	TotalTime     time.Duration
	TickTime      Stats
	Session       game.Stats
	Final         game.Outcome
	Fallbacks     int
	Scheduler     *ecs.SchedulerStats
	Err           error
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Snake Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Grid:** {{.Width}}x{{.Height}}
- **Seed:** {{.Seed}}
- **Paced:** {{.Paced}}

## Session
- **Ticks:** {{.Session.Ticks}}
- **Apples:** {{.Session.Apples}}
- **Deaths:** {{.Session.Deaths}}
- **Best Length:** {{.Session.BestLength}}
- **Max Hazards:** {{.Session.MaxHazards}}
- **Final Level:** {{.Final.Level}} ({{.Final.TickRate}} ticks/s)
- **Placement Fallbacks:** {{.Fallbacks}}
{{- if .Err}}
- **Stopped By:** {{.Err}}
{{- end}}

## Tick Time
- **Total Test Time:** {{.TotalTime}}
{{- if .TickTime.Samples}}
- **Avg:** {{.TickTime.Avg}}
- **Min:** {{.TickTime.Min}}
- **Max:** {{.TickTime.Max}}
{{- end}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
