package sim_test

import (
	"fmt"

	"github.com/plus3/welltris/sim"
)

type Score struct {
	Points int
}

type ScoringSystem struct {
	Score sim.Resource[Score]
	Rate  float64
}

func (s *ScoringSystem) Execute(frame *sim.Frame) {
	s.Score.Get().Points += int(s.Rate * frame.DeltaTime)
}

// ExampleScheduler shows systems sharing a resource across ticks. Resource
// fields are bound when the system is registered.
func ExampleScheduler() {
	resources := sim.NewResources()
	resources.Add(Score{})

	scheduler := sim.NewScheduler(resources)
	scheduler.Register(&ScoringSystem{Rate: 100})

	for range 3 {
		scheduler.Once(0.5)
	}

	var score *Score
	resources.Read(&score)
	fmt.Printf("ticks=%d points=%d\n", scheduler.Tick(), score.Points)
	// Output: ticks=3 points=150
}
