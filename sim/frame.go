package sim

// Frame is handed to every system during a single scheduler tick.
type Frame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Resources *Resources
}

func newFrame(tick uint64, dt float64, resources *Resources) *Frame {
	return &Frame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  newCommands(),
		Resources: resources,
	}
}
