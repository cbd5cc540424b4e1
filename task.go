package steptrace

// A Task is a suspendable computation.
//
// Step advances the task by one scheduling step. When the task completes,
// Step returns the final output and true. Otherwise, it returns false, the
// output must be ignored, and the task needs to be stepped again later.
// Stepping a task that has already completed is undefined.
type Task[T any] interface {
	Step() (out T, done bool)
}

// TaskFunc adapts an ordinary function to a Task.
type TaskFunc[T any] func() (T, bool)

// Step calls f.
func (f TaskFunc[T]) Step() (T, bool) {
	return f()
}
