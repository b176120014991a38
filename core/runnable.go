package core

// Runnable is the unit of work executed on a dedicated thread of control.
// Run is invoked exactly once per Thread the Runnable is attached to; it
// takes no arguments and returns nothing. Implementations may close over
// shared state, which must be guarded externally (see Monitor and Guarded).
type Runnable interface {
	Run()
}

// RunnableFunc adapts a plain function to the Runnable interface.
type RunnableFunc func()

// Run invokes the function.
func (f RunnableFunc) Run() {
	f()
}
