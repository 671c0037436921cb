package ecs

// UpdateFrame is what a system sees during one Scheduler.Once call. Tick
// counts calls to Once, starting at 1.
type UpdateFrame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
