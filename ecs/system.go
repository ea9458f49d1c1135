package ecs

// System is one step of the per-tick pipeline. Implementations may declare
// Singleton fields, which the Scheduler initializes on Register, and keep
// their own state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
