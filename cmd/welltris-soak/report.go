package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/welltris/sim"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Seed       uint64
	ActionRate float64

	// Results
	Ticks      uint64
	TotalTime  time.Duration
	TickTime   Stats
	Games      int
	TopOuts    int
	Actions    int
	Rejected   int
	Pieces     int
	Layers     int
	Explosions int
	MaxLevel   int
	BestScore  int
	Events     []EventCount
	Systems    []sim.SystemStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type EventCount struct {
	Name  string
	Count int
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

const reportTemplate = `
# Welltris Soak Report

## Configuration
- **Run Limit:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Action Rate:** {{printf "%.2f" .ActionRate}}

## Gameplay
- **Ticks:** {{.Ticks}}
- **Games:** {{.Games}} ({{.TopOuts}} top-outs)
- **Actions:** {{.Actions}} ({{.Rejected}} rejected)
- **Pieces Placed:** {{.Pieces}}
- **Layers Cleared:** {{.Layers}}
- **Bomb Explosions:** {{.Explosions}}
- **Highest Level:** {{.MaxLevel}}
- **Best Score:** {{.BestScore}}

## Events
{{range .Events}}- {{.Name}}: {{.Count}}
{{end}}
## Performance
- **Total Time:** {{.TotalTime}}
- **Tick Time:** avg {{.TickTime.Avg}}, min {{.TickTime.Min}}, max {{.TickTime.Max}}

| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
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
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
