package sim

// System is a unit of per-tick behavior. Systems may carry Resource fields,
// which the Scheduler initializes on registration, as well as custom state
// that persists between ticks.
type System interface {
	Execute(frame *Frame)
}
