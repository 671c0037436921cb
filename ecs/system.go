package ecs

// System is a unit of per-frame behaviour. Query and Singleton fields on the
// system struct are bound to storage when it is registered with a Scheduler;
// any other fields keep their values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
